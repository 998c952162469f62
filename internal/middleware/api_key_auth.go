package middleware

import (
	"github.com/SscSPs/payables_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header service clients put their key in.
const APIKeyHeader = "X-API-Key"

// APIKeyUserID is the audit identity recorded for requests authenticated by API key.
const APIKeyUserID = "api-key-client"

// APIKeyAuth authenticates service clients whose key matches the configured bcrypt hash.
// Requests without a key, or with a wrong one, fall through to the next auth middleware.
func APIKeyAuth(apiKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || apiKeyHash == "" {
			c.Next()
			return
		}

		if !utils.CheckAPIKeyHash(key, apiKeyHash) {
			GetLoggerFromCtx(c.Request.Context()).Warn("API key rejected")
			c.Next()
			return
		}

		setAuthenticated(c, APIKeyUserID, "api_key")
		c.Next()
	}
}
