// Package account implements the account repository on gorm/PostgreSQL.
package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cryptofolio/wallet/infra/repository/model"
	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/dto"
	repo "github.com/cryptofolio/wallet/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository bound to the given gorm session.
func New(db *gorm.DB) repo.AccountRepository {
	return &repository{db: db}
}

// Create implements repository.AccountRepository.
func (r *repository) Create(ctx context.Context, create dto.AccountCreate) error {
	acc := model.Account{
		ID:      create.ID,
		Balance: create.Balance,
	}
	if err := r.db.WithContext(ctx).Create(&acc).Error; err != nil {
		return &ledger.StorageError{Op: "account create", Err: err}
	}
	return nil
}

// Get implements repository.AccountRepository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var acc model.Account
	if err := r.db.WithContext(ctx).First(&acc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, &ledger.StorageError{Op: "account get", Err: err}
	}
	return mapModelToRead(&acc), nil
}

// GetForUpdate implements repository.AccountRepository. The row stays locked
// until the surrounding unit of work commits or rolls back.
func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var acc model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&acc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, &ledger.StorageError{Op: "account lock", Err: err}
	}
	return mapModelToRead(&acc), nil
}

// Debit implements repository.AccountRepository. The balance >= amount guard in
// the WHERE clause keeps the non-negative invariant even if a caller skipped
// the row lock; the arithmetic runs in SQL so no stale in-memory balance is
// ever written back.
func (r *repository) Debit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ? AND balance >= ?", id, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return &ledger.StorageError{Op: "account debit", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ledger.ErrInsufficientFunds
	}
	return nil
}

// Credit implements repository.AccountRepository.
func (r *repository) Credit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return &ledger.StorageError{Op: "account credit", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func mapModelToRead(acc *model.Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        acc.ID,
		Balance:   acc.Balance,
		CreatedAt: acc.CreatedAt,
		UpdatedAt: acc.UpdatedAt,
	}
}
