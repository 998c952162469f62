package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObligation_IsExpired(t *testing.T) {
	today := time.Date(2026, 3, 10, 15, 4, 5, 0, time.UTC)
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     domain.ObligationStatus
		expiration time.Time
		want       bool
	}{
		{name: "pending past due", status: domain.Pending, expiration: yesterday, want: true},
		{name: "pending due today", status: domain.Pending, expiration: todayDate, want: false},
		{name: "pending not yet due", status: domain.Pending, expiration: tomorrow, want: false},
		{name: "paid past due", status: domain.Paid, expiration: yesterday, want: false},
		{name: "paid not yet due", status: domain.Paid, expiration: tomorrow, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := domain.Obligation{Status: tt.status, ExpirationDate: tt.expiration}
			assert.Equal(t, tt.want, o.IsExpired(today))
		})
	}
}

func TestObligation_MarkAsPaidIsOneWay(t *testing.T) {
	o := domain.Obligation{
		ObligationID: "obl_1",
		Description:  "Electricity",
		Amount:       decimal.RequireFromString("150.00"),
		Status:       domain.Pending,
	}
	payAt := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

	require.NoError(t, o.MarkAsPaid(payAt))
	assert.True(t, o.IsPaid())
	require.NotNil(t, o.PaymentDate)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *o.PaymentDate)

	err := o.MarkAsPaid(payAt.Add(24 * time.Hour))
	assert.ErrorIs(t, err, apperrors.ErrBusinessRule)
	assert.Equal(t, domain.Paid, o.Status, "a second payment must not revert the status")
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *o.PaymentDate)
}

func TestObligation_SettlementDescription(t *testing.T) {
	o := domain.Obligation{Description: "Internet"}
	assert.Equal(t, "Payment for: Internet", o.SettlementDescription())
}

func TestParseStatus(t *testing.T) {
	s, err := domain.ParseStatus("pending")
	assert.NoError(t, err)
	assert.Equal(t, domain.Pending, s)

	s, err = domain.ParseStatus("PAID")
	assert.NoError(t, err)
	assert.Equal(t, domain.Paid, s)

	_, err = domain.ParseStatus("OVERDUE")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBankAccount_DebitAllowsNegative(t *testing.T) {
	acc := domain.BankAccount{CurrentBalance: decimal.RequireFromString("100.00")}

	prev, cur := acc.Debit(decimal.RequireFromString("150.50"))

	assert.True(t, prev.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, cur.Equal(decimal.RequireFromString("-50.50")))
	assert.True(t, acc.CurrentBalance.Equal(cur))
}

func TestCategory_SameName(t *testing.T) {
	c := domain.Category{Name: "Utilities"}
	assert.True(t, c.SameName(" utilities "))
	assert.False(t, c.SameName("Utility"))
}
