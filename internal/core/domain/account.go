package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType classifies the legal document backing an account.
type DocumentType string

const (
	Personal  DocumentType = "PERSONAL"
	Corporate DocumentType = "CORPORATE"
)

// Account represents a holder of a monetary balance within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	Name         string          `json:"name"`         // Display name of the holder
	Document     string          `json:"document"`     // Legal document number
	DocumentType DocumentType    `json:"documentType"` // PERSONAL or CORPORATE
	Balance      decimal.Decimal `json:"balance"`      // Current balance; mutated only by the transaction engine
	CreatedAt    time.Time       `json:"createdAt"`
}
