package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/velopix/pix_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string              `json:"name" binding:"required"`
	Document       string              `json:"document" binding:"required"`
	DocumentType   domain.DocumentType `json:"documentType" binding:"required,oneof=PERSONAL CORPORATE"`
	InitialBalance decimal.Decimal     `json:"initialBalance"` // Optional, defaults to zero
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID    string              `json:"accountID"`
	Name         string              `json:"name"`
	Document     string              `json:"document"`
	DocumentType domain.DocumentType `json:"documentType"`
	Balance      decimal.Decimal     `json:"balance"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// AccountWithKeysResponse bundles an account with its currently active keys.
type AccountWithKeysResponse struct {
	AccountResponse
	Keys []PaymentKeyResponse `json:"keys"`
}

// AccountBalanceResponse defines the data returned for a balance-only query.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    acc.AccountID,
		Name:         acc.Name,
		Document:     acc.Document,
		DocumentType: acc.DocumentType,
		Balance:      acc.Balance,
		CreatedAt:    acc.CreatedAt,
	}
}

// ToListAccountsResponse converts a slice of domain.Account to the list DTO
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
