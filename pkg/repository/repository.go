// Package repository defines the ledger store contracts. All balance and
// status mutation in the system flows through these interfaces; no other code
// path touches raw storage handles.
package repository

import (
	"context"

	"github.com/cryptofolio/wallet/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository provides data access for wallet accounts.
//
// Debit and Credit execute the balance arithmetic in storage rather than in
// application memory, so two concurrent mutations can never base themselves on
// the same stale read.
type AccountRepository interface {
	Create(ctx context.Context, create dto.AccountCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// GetForUpdate reads the account under an exclusive row lock. Only valid
	// inside a unit of work; the lock is held until the unit commits or rolls
	// back, which makes check-and-decrement sequences linearizable per account.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error)

	// Debit decreases the balance by amount. The caller must hold the row lock
	// from GetForUpdate and have verified the balance covers the amount.
	Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error

	// Credit increases the balance by amount.
	Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
}

// TransactionRepository provides data access for ledger transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, create dto.TransactionCreate) error
	Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error)

	// ListByAccount returns all records for an account, most recent first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error)

	// MarkCompletedIfPending flips status PENDING→COMPLETED as a single
	// conditional update and reports how many rows changed. Zero means the
	// record is missing or already terminal; the caller distinguishes the two.
	MarkCompletedIfPending(ctx context.Context, id uuid.UUID) (int64, error)

	// MarkFailedIfPending flips status PENDING→FAILED under the same contract
	// as MarkCompletedIfPending.
	MarkFailedIfPending(ctx context.Context, id uuid.UUID) (int64, error)
}
