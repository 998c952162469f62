package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: fmt.Errorf("%w: obligation", apperrors.ErrNotFound), want: http.StatusNotFound},
		{name: "validation", err: apperrors.Validation("amount must be positive"), want: http.StatusBadRequest},
		{name: "business rule", err: apperrors.BusinessRule("already paid"), want: http.StatusConflict},
		{name: "duplicate", err: apperrors.ErrDuplicate, want: http.StatusConflict},
		{name: "unauthorized", err: apperrors.ErrUnauthorized, want: http.StatusUnauthorized},
		{name: "unexpected", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorStatus(tt.err))
		})
	}
}

func TestUTCNow(t *testing.T) {
	local := time.Local
	time.Local = time.FixedZone("UTC+14", 14*60*60)
	defer func() { time.Local = local }()

	now := utcNow()

	assert.Equal(t, time.UTC, now.Location())
	assert.Equal(t, domain.DateOf(time.Now().UTC()), domain.DateOf(now))
}
