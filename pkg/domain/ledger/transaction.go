package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger transaction.
type TransactionType string

const (
	// TypeDeposit credits an account. Deposits are recorded COMPLETED; they do
	// not pass through the withdrawal state machine.
	TypeDeposit TransactionType = "DEPOSIT"
	// TypeWithdrawal debits an account at reservation time and is settled later
	// by an approve or reject transition.
	TypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionStatus is the lifecycle state of a transaction.
//
// Transitions:
//
//	PENDING → COMPLETED (approve; no balance change)
//	PENDING → FAILED    (reject; amount refunded)
//
// COMPLETED and FAILED are terminal: no record ever leaves them.
type TransactionStatus string

const (
	// StatusPending marks a withdrawal whose funds left the balance but whose
	// settlement has not been confirmed or rejected yet.
	StatusPending TransactionStatus = "PENDING"
	// StatusCompleted marks a settled transaction. Terminal.
	StatusCompleted TransactionStatus = "COMPLETED"
	// StatusFailed marks a rejected withdrawal whose amount was refunded. Terminal.
	StatusFailed TransactionStatus = "FAILED"
)

// Terminal reports whether no further transition is permitted from s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Detail carries per-type metadata for a transaction. The variant set is
// closed: only WithdrawalDetail is legal on withdrawals and only DepositDetail
// on deposits.
type Detail interface {
	detail()
}

// WithdrawalDetail annotates a withdrawal with its off-platform destination.
type WithdrawalDetail struct {
	// DestinationAddress is the external wallet address funds are sent to.
	DestinationAddress string
}

func (WithdrawalDetail) detail() {}

// DepositDetail annotates a deposit with its funding source.
type DepositDetail struct {
	// FundingSource names where the funds came from, e.g. "bank-transfer".
	FundingSource string
}

func (DepositDetail) detail() {}

// Transaction is a single ledger record for an account.
// Invariants:
//   - Amount is strictly positive.
//   - CreatedAt is immutable.
//   - Status changes at most once, from PENDING to a terminal state.
type Transaction struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Status      TransactionStatus
	Description string
	Detail      Detail
	CreatedAt   time.Time
}

// NewWithdrawal builds a PENDING withdrawal record for the given account.
// Returns ErrAmountMustBePositive when amount <= 0.
func NewWithdrawal(
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
	detail *WithdrawalDetail,
) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountMustBePositive
	}
	tx := &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Type:        TypeWithdrawal,
		Amount:      amount,
		Status:      StatusPending,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if detail != nil {
		tx.Detail = *detail
	}
	return tx, nil
}

// NewDeposit builds a COMPLETED deposit record for the given account.
// Returns ErrAmountMustBePositive when amount <= 0.
func NewDeposit(
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
	detail *DepositDetail,
) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrAmountMustBePositive
	}
	tx := &Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		Type:        TypeDeposit,
		Amount:      amount,
		Status:      StatusCompleted,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if detail != nil {
		tx.Detail = *detail
	}
	return tx, nil
}
