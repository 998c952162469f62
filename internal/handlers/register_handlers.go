package handlers

import (
	"fmt"

	"github.com/SscSPs/payables_ledger/cmd/docs"
	portssvc "github.com/SscSPs/payables_ledger/internal/core/ports/services"
	"github.com/SscSPs/payables_ledger/internal/middleware"
	"github.com/SscSPs/payables_ledger/internal/platform/config"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	RegisterValidators()

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.APIKeyHeader, middleware.RequestIDHeader)
		corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"}
		r.Use(cors.New(corsConfig))
	}

	// Add health check route
	registerHealthRoutes(r)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	var chain []gin.HandlerFunc
	if cfg.RateLimit != "" {
		limiter, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			return fmt.Errorf("configure rate limit: %w", err)
		}
		chain = append(chain, middleware.RateLimit(limiter))
	}
	if cfg.AuthEnabled {
		if cfg.APIKeyHash != "" {
			chain = append(chain, middleware.APIKeyAuth(cfg.APIKeyHash))
		}
		chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	}
	v1 := r.Group("/api/v1", chain...)

	limits := pagination.Limits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}

	// Delegate route registration to specific handlers, passing required services
	registerCategoryRoutes(v1, service.Category, limits)
	registerBankAccountRoutes(v1, service.BankAccount, limits)
	registerObligationRoutes(v1, service.Obligation, service.Settlement, limits)
	registerJournalRoutes(v1, service.Journal, limits)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
