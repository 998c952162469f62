package dto

import (
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest defines the data needed to register a payable or receivable.
type CreateObligationRequest struct {
	Description    string          `json:"description" binding:"required,max=255"`
	Amount         decimal.Decimal `json:"amount" binding:"dgt0"`
	ExpirationDate Date            `json:"expirationDate"` // YYYY-MM-DD, strictly after today
	CategoryID     string          `json:"categoryID" binding:"required"`
	BankAccountID  string          `json:"bankAccountID" binding:"required"`
	Direction      string          `json:"direction" binding:"required"` // PAYABLE or RECEIVABLE
}

// UpdateObligationRequest carries the same fields as creation; every field is overwritten.
type UpdateObligationRequest CreateObligationRequest

// PayObligationRequest settles an obligation against a bank account.
type PayObligationRequest struct {
	ObligationID  string `json:"obligationID" binding:"required"`
	BankAccountID string `json:"bankAccountID" binding:"required"`
	Direction     string `json:"direction"` // Optional, defaults to the obligation's direction
}

// CategorySummary is the category embedded in an obligation response.
type CategorySummary struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
}

// BankAccountSummary is the bank account embedded in an obligation response.
type BankAccountSummary struct {
	BankAccountID string `json:"bankAccountID"`
	Name          string `json:"name"`
	Bank          string `json:"bank"`
}

// ObligationResponse defines the data returned for an obligation.
type ObligationResponse struct {
	ObligationID   string                  `json:"obligationID"`
	Description    string                  `json:"description"`
	Amount         decimal.Decimal         `json:"amount"`
	ExpirationDate Date                    `json:"expirationDate"`
	PaymentDate    *Date                   `json:"paymentDate"`
	Status         domain.ObligationStatus `json:"status"`
	Direction      domain.Direction        `json:"direction"`
	IsExpired      bool                    `json:"isExpired"`
	Category       CategorySummary         `json:"category"`
	BankAccount    BankAccountSummary      `json:"bankAccount"`
	CreatedAt      time.Time               `json:"createdAt"`
	CreatedBy      string                  `json:"createdBy"`
	LastUpdatedAt  time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy  string                  `json:"lastUpdatedBy"`
}

// DirectionTotalResponse is the total obligation amount for one direction.
type DirectionTotalResponse struct {
	Direction   domain.Direction `json:"direction"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
}

// ToObligationResponse converts a domain.Obligation to its DTO. asOf decides isExpired.
func ToObligationResponse(o *domain.Obligation, asOf time.Time) ObligationResponse {
	return ObligationResponse{
		ObligationID:   o.ObligationID,
		Description:    o.Description,
		Amount:         o.Amount,
		ExpirationDate: NewDate(o.ExpirationDate),
		PaymentDate:    DatePtr(o.PaymentDate),
		Status:         o.Status,
		Direction:      o.Direction,
		IsExpired:      o.IsExpired(asOf),
		Category: CategorySummary{
			CategoryID: o.CategoryID,
			Name:       o.CategoryName,
		},
		BankAccount: BankAccountSummary{
			BankAccountID: o.BankAccountID,
			Name:          o.BankAccountName,
			Bank:          o.BankName,
		},
		CreatedAt:     o.CreatedAt,
		CreatedBy:     o.CreatedBy,
		LastUpdatedAt: o.LastUpdatedAt,
		LastUpdatedBy: o.LastUpdatedBy,
	}
}
