package dto

import (
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to open a bank account.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Bank           string          `json:"bank" binding:"required,max=100"`
	CurrentBalance decimal.Decimal `json:"currentBalance" binding:"dgte0"` // Opening balance
}

// UpdateBankAccountRequest overwrites every mutable field of a bank account.
type UpdateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required,max=100"`
	Bank           string          `json:"bank" binding:"required,max=100"`
	CurrentBalance decimal.Decimal `json:"currentBalance" binding:"dgte0"`
}

// UpdateBalanceRequest sets a bank account balance directly.
type UpdateBalanceRequest struct {
	Balance decimal.Decimal `json:"balance" binding:"dgte0"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	Bank           string          `json:"bank"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// TotalBalanceResponse is the sum of balances across active bank accounts.
type TotalBalanceResponse struct {
	TotalBalance decimal.Decimal `json:"totalBalance"`
}

// ToBankAccountResponse converts a domain.BankAccount to BankAccountResponse DTO
func ToBankAccountResponse(b *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  b.BankAccountID,
		Name:           b.Name,
		Bank:           b.Bank,
		CurrentBalance: b.CurrentBalance,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		CreatedBy:      b.CreatedBy,
		LastUpdatedAt:  b.LastUpdatedAt,
		LastUpdatedBy:  b.LastUpdatedBy,
	}
}

// ToListBankAccountResponse converts a slice of domain.BankAccount to DTOs
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}
