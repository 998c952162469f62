package domain

import (
	"strings"

	"github.com/SscSPs/payables_ledger/internal/apperrors"
)

// Direction indicates whether an obligation or journal entry is money owed or money due.
type Direction string

const (
	Payable    Direction = "PAYABLE"
	Receivable Direction = "RECEIVABLE"
)

// Directions lists every valid direction.
var Directions = []Direction{Payable, Receivable}

// ParseDirection converts a free-text token into a Direction.
// Matching is case-insensitive; unknown tokens yield apperrors.ErrValidation.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToUpper(strings.TrimSpace(s))) {
	case Payable:
		return Payable, nil
	case Receivable:
		return Receivable, nil
	}
	return "", apperrors.Validation("unknown direction %q, expected one of PAYABLE, RECEIVABLE", s)
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == Payable || d == Receivable
}
