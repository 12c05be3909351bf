// Package ledger holds the wallet ledger domain: accounts, transactions and the
// withdrawal state machine. Amounts are fixed-point decimals; balances are never
// negative at a commit boundary.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a user's wallet account.
// Invariant: Balance >= 0 at every commit boundary. Balance is only mutated
// through the ledger store's atomic operations, never assigned directly.
type Account struct {
	ID        uuid.UUID
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates an account with a zero balance.
func NewAccount() *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
