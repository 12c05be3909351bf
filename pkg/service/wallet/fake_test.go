package wallet_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/dto"
	"github.com/cryptofolio/wallet/pkg/repository"
)

// fakeStore is an in-memory ledger store with real commit/rollback semantics:
// Do runs against a cloned state and only swaps it in when the unit succeeds,
// so a failing unit leaves no partial effect, like the gorm implementation.
type fakeStore struct {
	mu    sync.Mutex
	state *fakeState
	// fail injects a storage fault for a named operation.
	fail map[string]error
}

type fakeState struct {
	accounts map[uuid.UUID]dto.AccountRead
	txs      map[uuid.UUID]dto.TransactionRead
	order    []uuid.UUID // insertion order of transactions
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		state: &fakeState{
			accounts: map[uuid.UUID]dto.AccountRead{},
			txs:      map[uuid.UUID]dto.TransactionRead{},
		},
		fail: map[string]error{},
	}
}

func (s *fakeState) clone() *fakeState {
	next := &fakeState{
		accounts: make(map[uuid.UUID]dto.AccountRead, len(s.accounts)),
		txs:      make(map[uuid.UUID]dto.TransactionRead, len(s.txs)),
		order:    append([]uuid.UUID(nil), s.order...),
	}
	for id, acc := range s.accounts {
		next.accounts[id] = acc
	}
	for id, tx := range s.txs {
		next.txs[id] = tx
	}
	return next
}

// seedAccount inserts an account with the given balance, bypassing the service.
func (s *fakeStore) seedAccount(balance string) uuid.UUID {
	id := uuid.New()
	s.state.accounts[id] = dto.AccountRead{
		ID:      id,
		Balance: decimal.RequireFromString(balance),
	}
	return id
}

func (s *fakeStore) balance(id uuid.UUID) decimal.Decimal {
	return s.state.accounts[id].Balance
}

func (s *fakeStore) transaction(id uuid.UUID) dto.TransactionRead {
	return s.state.txs[id]
}

func (s *fakeStore) transactionCount() int {
	return len(s.state.txs)
}

// uow returns a repository.UnitOfWork backed by the store.
func (s *fakeStore) uow() repository.UnitOfWork {
	return &fakeUoW{store: s}
}

type fakeUoW struct {
	store *fakeStore
	tx    *fakeState // nil outside Do
}

func (u *fakeUoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	working := u.store.state.clone()
	if err := fn(&fakeUoW{store: u.store, tx: working}); err != nil {
		return err
	}
	u.store.state = working
	return nil
}

func (u *fakeUoW) Accounts() (repository.AccountRepository, error) {
	if u.tx == nil {
		return nil, errors.New("no active unit of work")
	}
	return &fakeAccounts{store: u.store, state: u.tx}, nil
}

func (u *fakeUoW) Transactions() (repository.TransactionRepository, error) {
	if u.tx == nil {
		return nil, errors.New("no active unit of work")
	}
	return &fakeTransactions{store: u.store, state: u.tx}, nil
}

type fakeAccounts struct {
	store *fakeStore
	state *fakeState
}

func (f *fakeAccounts) Create(ctx context.Context, create dto.AccountCreate) error {
	if err := f.store.fail["account create"]; err != nil {
		return &ledger.StorageError{Op: "account create", Err: err}
	}
	f.state.accounts[create.ID] = dto.AccountRead{ID: create.ID, Balance: create.Balance}
	return nil
}

func (f *fakeAccounts) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	acc, ok := f.state.accounts[id]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return &acc, nil
}

func (f *fakeAccounts) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	return f.Get(ctx, id)
}

func (f *fakeAccounts) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if err := f.store.fail["account debit"]; err != nil {
		return &ledger.StorageError{Op: "account debit", Err: err}
	}
	acc, ok := f.state.accounts[id]
	if !ok || acc.Balance.LessThan(amount) {
		return ledger.ErrInsufficientFunds
	}
	acc.Balance = acc.Balance.Sub(amount)
	f.state.accounts[id] = acc
	return nil
}

func (f *fakeAccounts) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	if err := f.store.fail["account credit"]; err != nil {
		return &ledger.StorageError{Op: "account credit", Err: err}
	}
	acc, ok := f.state.accounts[id]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(amount)
	f.state.accounts[id] = acc
	return nil
}

type fakeTransactions struct {
	store *fakeStore
	state *fakeState
}

func (f *fakeTransactions) Create(ctx context.Context, create dto.TransactionCreate) error {
	if err := f.store.fail["transaction create"]; err != nil {
		return &ledger.StorageError{Op: "transaction create", Err: err}
	}
	f.state.txs[create.ID] = dto.TransactionRead{
		ID:                 create.ID,
		AccountID:          create.AccountID,
		Type:               create.Type,
		Amount:             create.Amount,
		Status:             create.Status,
		Description:        create.Description,
		DestinationAddress: create.DestinationAddress,
		FundingSource:      create.FundingSource,
		CreatedAt:          create.CreatedAt,
	}
	f.state.order = append(f.state.order, create.ID)
	return nil
}

func (f *fakeTransactions) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	tx, ok := f.state.txs[id]
	if !ok {
		return nil, ledger.ErrTransactionNotFound
	}
	return &tx, nil
}

func (f *fakeTransactions) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	var result []*dto.TransactionRead
	// insertion order reversed == most recent first
	for i := len(f.state.order) - 1; i >= 0; i-- {
		tx := f.state.txs[f.state.order[i]]
		if tx.AccountID == accountID {
			read := tx
			result = append(result, &read)
		}
	}
	return result, nil
}

func (f *fakeTransactions) MarkCompletedIfPending(ctx context.Context, id uuid.UUID) (int64, error) {
	return f.flip(id, string(ledger.StatusCompleted))
}

func (f *fakeTransactions) MarkFailedIfPending(ctx context.Context, id uuid.UUID) (int64, error) {
	return f.flip(id, string(ledger.StatusFailed))
}

func (f *fakeTransactions) flip(id uuid.UUID, status string) (int64, error) {
	if err := f.store.fail["transaction status update"]; err != nil {
		return 0, &ledger.StorageError{Op: "transaction status update", Err: err}
	}
	tx, ok := f.state.txs[id]
	if !ok || tx.Status != string(ledger.StatusPending) {
		return 0, nil
	}
	tx.Status = status
	f.state.txs[id] = tx
	return 1, nil
}
