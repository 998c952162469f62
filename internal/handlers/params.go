package handlers

import (
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/SscSPs/payables_ledger/internal/dto"
	"github.com/SscSPs/payables_ledger/internal/middleware"
	"github.com/SscSPs/payables_ledger/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// anonymousUser is recorded in audit fields when authentication is disabled.
const anonymousUser = "anonymous"

// utcNow is the clock obligation views use to decide isExpired, matching the services' UTC calendar.
func utcNow() time.Time {
	return time.Now().UTC()
}

// actor returns the authenticated user id for audit fields.
func actor(c *gin.Context) string {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return userID
	}
	return anonymousUser
}

// pageRequest reads ?page=&size=&sort=&order= against an entity's sort whitelist.
func pageRequest(c *gin.Context, spec pagination.SortSpec, limits pagination.Limits) (pagination.PageRequest, error) {
	return pagination.ParsePageRequest(c.Query("page"), c.Query("size"), c.Query("sort"), c.Query("order"), spec, limits)
}

// requiredDate parses a mandatory YYYY-MM-DD (or RFC 3339) query parameter.
func requiredDate(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperrors.Validation("query parameter %q is required", name)
	}
	d, err := dto.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.Validation("query parameter %q: %v", name, err)
	}
	return d.Time, nil
}

// requiredInstant parses a mandatory query parameter as an RFC 3339 instant. A bare date
// is read as midnight UTC when it opens a range and as the last instant of that day when it closes one.
func requiredInstant(c *gin.Context, name string, endOfDay bool) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, apperrors.Validation("query parameter %q is required", name)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		return time.Time{}, apperrors.Validation("query parameter %q must be YYYY-MM-DD or RFC 3339, got %q", name, raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// optionalDirection parses an optional direction query parameter.
func optionalDirection(c *gin.Context, name string) (*domain.Direction, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDirection(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
