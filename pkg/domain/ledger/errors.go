package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when the referenced transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAlreadyProcessed is returned when a terminal transition is attempted on a
	// transaction that is no longer PENDING. The losing side of a concurrent
	// approve/reject race always observes this error and never a silent success.
	ErrAlreadyProcessed = errors.New("transaction already processed")

	// ErrAmountMustBePositive is returned when a deposit or withdrawal amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")

	// ErrBalanceMustBeNonNegative is returned when an opening balance is negative.
	// Zero is a valid opening balance.
	ErrBalanceMustBeNonNegative = errors.New("balance must be non-negative")
)

// InsufficientFundsError is returned when a withdrawal exceeds the available balance.
// It carries both amounts so callers can surface them to the user.
type InsufficientFundsError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"insufficient funds: required %s, available %s",
		e.Required.StringFixed(2),
		e.Available.StringFixed(2),
	)
}

// ErrInsufficientFunds can be used with errors.Is to match any InsufficientFundsError.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Is makes errors.Is(err, ErrInsufficientFunds) match regardless of the amounts carried.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// StorageError wraps an infrastructure fault from the ledger store. The wrapped
// operation is guaranteed to have left no partial effect behind.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
