package wallet_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	walletsvc "github.com/cryptofolio/wallet/pkg/service/wallet"
)

func newService(store *fakeStore) *walletsvc.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return walletsvc.New(store.uow(), logger)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreateWithdrawal_ReservesFunds(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("1000.00")
	svc := newService(store)

	tx, err := svc.CreateWithdrawal(context.Background(), accountID, dec("400.00"), "payout", nil)
	require.NoError(t, err)

	assert.Equal(t, ledger.StatusPending, tx.Status)
	assert.Equal(t, ledger.TypeWithdrawal, tx.Type)
	assert.True(t, tx.Amount.Equal(dec("400.00")))
	assert.True(t, store.balance(accountID).Equal(dec("600.00")),
		"balance should be 600.00, got %s", store.balance(accountID))

	persisted := store.transaction(tx.ID)
	assert.Equal(t, string(ledger.StatusPending), persisted.Status)
}

func TestCreateWithdrawal_InsufficientFunds(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("600.00")
	svc := newService(store)

	_, err := svc.CreateWithdrawal(context.Background(), accountID, dec("700.00"), "", nil)

	var insufficientErr *ledger.InsufficientFundsError
	require.ErrorAs(t, err, &insufficientErr)
	assert.True(t, insufficientErr.Required.Equal(dec("700.00")))
	assert.True(t, insufficientErr.Available.Equal(dec("600.00")))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	// No mutation whatsoever: balance unchanged, no transaction recorded.
	assert.True(t, store.balance(accountID).Equal(dec("600.00")))
	assert.Zero(t, store.transactionCount())
}

func TestCreateWithdrawal_ExactBalanceSucceeds(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("600.00")
	svc := newService(store)

	_, err := svc.CreateWithdrawal(context.Background(), accountID, dec("600.00"), "", nil)
	require.NoError(t, err)
	assert.True(t, store.balance(accountID).IsZero())
}

func TestCreateWithdrawal_NonPositiveAmount(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("100.00")
	svc := newService(store)

	_, err := svc.CreateWithdrawal(context.Background(), accountID, decimal.Zero, "", nil)
	assert.ErrorIs(t, err, ledger.ErrAmountMustBePositive)
	assert.Zero(t, store.transactionCount())
}

func TestCreateWithdrawal_AccountNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	_, err := svc.CreateWithdrawal(context.Background(), uuid.New(), dec("10.00"), "", nil)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
}

func TestCreateWithdrawal_RollsBackOnStorageFault(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("1000.00")
	store.fail["transaction create"] = errors.New("connection reset")
	svc := newService(store)

	_, err := svc.CreateWithdrawal(context.Background(), accountID, dec("400.00"), "", nil)

	var storageErr *ledger.StorageError
	require.ErrorAs(t, err, &storageErr)

	// The debit happened inside the unit but the unit failed: nothing committed.
	assert.True(t, store.balance(accountID).Equal(dec("1000.00")),
		"balance must be untouched after rollback, got %s", store.balance(accountID))
	assert.Zero(t, store.transactionCount())
}

func TestApproveWithdrawal(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("1000.00")
	svc := newService(store)

	tx, err := svc.CreateWithdrawal(context.Background(), accountID, dec("400.00"), "", nil)
	require.NoError(t, err)

	approved, err := svc.ApproveWithdrawal(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, ledger.StatusCompleted, approved.Status)
	// Approval performs no balance change; funds left at reservation time.
	assert.True(t, store.balance(accountID).Equal(dec("600.00")))
}

func TestApproveWithdrawal_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	_, err := svc.ApproveWithdrawal(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestApproveWithdrawal_AlreadyProcessed(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("1000.00")
	svc := newService(store)

	tx, err := svc.CreateWithdrawal(context.Background(), accountID, dec("400.00"), "", nil)
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(context.Background(), tx.ID)
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ledger.ErrAlreadyProcessed)

	_, err = svc.RejectWithdrawal(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ledger.ErrAlreadyProcessed)

	// A completed withdrawal must never be refunded.
	assert.True(t, store.balance(accountID).Equal(dec("600.00")))
}

func TestRejectWithdrawal_RefundsExactly(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("600.00")
	svc := newService(store)

	tx, err := svc.CreateWithdrawal(context.Background(), accountID, dec("300.00"), "", nil)
	require.NoError(t, err)
	require.True(t, store.balance(accountID).Equal(dec("300.00")))

	rejected, err := svc.RejectWithdrawal(context.Background(), tx.ID)
	require.NoError(t, err)

	assert.Equal(t, ledger.StatusFailed, rejected.Status)
	assert.True(t, store.balance(accountID).Equal(dec("600.00")),
		"reject must restore the pre-withdrawal balance exactly, got %s",
		store.balance(accountID))
}

func TestRejectWithdrawal_SecondCallDoesNotDoubleRefund(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("600.00")
	svc := newService(store)

	tx, err := svc.CreateWithdrawal(context.Background(), accountID, dec("300.00"), "", nil)
	require.NoError(t, err)

	_, err = svc.RejectWithdrawal(context.Background(), tx.ID)
	require.NoError(t, err)

	_, err = svc.RejectWithdrawal(context.Background(), tx.ID)
	assert.ErrorIs(t, err, ledger.ErrAlreadyProcessed)
	assert.True(t, store.balance(accountID).Equal(dec("600.00")))
}

func TestRejectWithdrawal_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)

	_, err := svc.RejectWithdrawal(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestRejectWithdrawal_RollsBackStatusWhenRefundFails(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("600.00")
	svc := newService(store)

	tx, err := svc.CreateWithdrawal(context.Background(), accountID, dec("300.00"), "", nil)
	require.NoError(t, err)

	store.fail["account credit"] = errors.New("connection reset")
	_, err = svc.RejectWithdrawal(context.Background(), tx.ID)

	var storageErr *ledger.StorageError
	require.ErrorAs(t, err, &storageErr)

	// Status flip and refund are one atomic unit: the record must still be
	// PENDING so a later reject can refund it.
	assert.Equal(t, string(ledger.StatusPending), store.transaction(tx.ID).Status)
	assert.True(t, store.balance(accountID).Equal(dec("300.00")))

	delete(store.fail, "account credit")
	_, err = svc.RejectWithdrawal(context.Background(), tx.ID)
	require.NoError(t, err)
	assert.True(t, store.balance(accountID).Equal(dec("600.00")))
}

// Reconciliation: balance always equals the initial balance plus completed
// deposits, minus withdrawals that are PENDING or COMPLETED, with FAILED
// withdrawals refunded.
func TestReconciliation(t *testing.T) {
	store := newFakeStore()
	accountID := store.seedAccount("1000.00")
	svc := newService(store)
	ctx := context.Background()

	_, err := svc.Deposit(ctx, accountID, dec("250.00"), "", nil)
	require.NoError(t, err)

	w1, err := svc.CreateWithdrawal(ctx, accountID, dec("100.00"), "", nil)
	require.NoError(t, err)
	w2, err := svc.CreateWithdrawal(ctx, accountID, dec("200.00"), "", nil)
	require.NoError(t, err)
	w3, err := svc.CreateWithdrawal(ctx, accountID, dec("300.00"), "", nil)
	require.NoError(t, err)

	_, err = svc.ApproveWithdrawal(ctx, w1.ID)
	require.NoError(t, err)
	_, err = svc.RejectWithdrawal(ctx, w2.ID)
	require.NoError(t, err)
	_ = w3 // stays PENDING

	// 1000 + 250 - 100 (completed) - 300 (pending) = 850; the 200 was refunded.
	assert.True(t, store.balance(accountID).Equal(dec("850.00")),
		"reconciled balance mismatch: got %s", store.balance(accountID))
	assert.False(t, store.balance(accountID).IsNegative())
}
