package dto

import (
	"time"

	"github.com/SscSPs/payables_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID               string           `json:"entryID"`
	BankAccountID         string           `json:"bankAccountID"`
	BankAccountName       string           `json:"bankAccountName,omitempty"`
	ObligationID          *string          `json:"obligationID"`
	ObligationDescription string           `json:"obligationDescription,omitempty"`
	Direction             domain.Direction `json:"direction"`
	Amount                decimal.Decimal  `json:"amount"`
	Description           string           `json:"description"`
	PreviousBalance       decimal.Decimal  `json:"previousBalance"`
	CurrentBalance        decimal.Decimal  `json:"currentBalance"`
	TransactionDate       time.Time        `json:"transactionDate"`
	CreatedBy             string           `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:               e.EntryID,
		BankAccountID:         e.BankAccountID,
		BankAccountName:       e.BankAccountName,
		ObligationID:          e.ObligationID,
		ObligationDescription: e.ObligationDescription,
		Direction:             e.Direction,
		Amount:                e.Amount,
		Description:           e.Description,
		PreviousBalance:       e.PreviousBalance,
		CurrentBalance:        e.CurrentBalance,
		TransactionDate:       e.TransactionDate,
		CreatedBy:             e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of journal entries to DTOs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
