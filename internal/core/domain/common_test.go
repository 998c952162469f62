package domain_test

import (
	"testing"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExceedsMoneyRange(t *testing.T) {
	assert.False(t, domain.ExceedsMoneyRange(domain.MaxMoney))
	assert.False(t, domain.ExceedsMoneyRange(domain.MaxMoney.Neg()))
	assert.True(t, domain.ExceedsMoneyRange(decimal.RequireFromString("100000000000000000")))
	assert.True(t, domain.ExceedsMoneyRange(decimal.RequireFromString("-100000000000000000")))
}
