// Package transaction implements the ledger transaction repository on gorm/PostgreSQL.
package transaction

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cryptofolio/wallet/infra/repository/model"
	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/dto"
	repo "github.com/cryptofolio/wallet/pkg/repository"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the given gorm session.
func New(db *gorm.DB) repo.TransactionRepository {
	return &repository{db: db}
}

// Create implements repository.TransactionRepository.
func (r *repository) Create(ctx context.Context, create dto.TransactionCreate) error {
	tx := mapCreateToModel(create)
	if err := r.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return &ledger.StorageError{Op: "transaction create", Err: err}
	}
	return nil
}

// Get implements repository.TransactionRepository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var tx model.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrTransactionNotFound
		}
		return nil, &ledger.StorageError{Op: "transaction get", Err: err}
	}
	return mapModelToRead(&tx), nil
}

// ListByAccount implements repository.TransactionRepository. The query takes no
// row locks; readers only ever see fully committed units.
func (r *repository) ListByAccount(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*dto.TransactionRead, error) {
	var txs []model.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&txs).Error
	if err != nil {
		return nil, &ledger.StorageError{Op: "transaction list", Err: err}
	}
	result := make([]*dto.TransactionRead, 0, len(txs))
	for i := range txs {
		result = append(result, mapModelToRead(&txs[i]))
	}
	return result, nil
}

// MarkCompletedIfPending implements repository.TransactionRepository. The
// status condition in the WHERE clause is the compare-and-swap that makes
// terminal transitions exactly-once: of two concurrent transitions only one
// can match the PENDING row.
func (r *repository) MarkCompletedIfPending(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.flipStatusIfPending(ctx, id, string(ledger.StatusCompleted))
}

// MarkFailedIfPending implements repository.TransactionRepository.
func (r *repository) MarkFailedIfPending(ctx context.Context, id uuid.UUID) (int64, error) {
	return r.flipStatusIfPending(ctx, id, string(ledger.StatusFailed))
}

func (r *repository) flipStatusIfPending(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, string(ledger.StatusPending)).
		Update("status", status)
	if res.Error != nil {
		return 0, &ledger.StorageError{Op: "transaction status update", Err: res.Error}
	}
	return res.RowsAffected, nil
}

func mapCreateToModel(create dto.TransactionCreate) model.Transaction {
	tx := model.Transaction{
		ID:          create.ID,
		AccountID:   create.AccountID,
		Type:        create.Type,
		Amount:      create.Amount,
		Status:      create.Status,
		Description: create.Description,
		CreatedAt:   create.CreatedAt,
	}
	if create.DestinationAddress != "" {
		addr := create.DestinationAddress
		tx.DestinationAddress = &addr
	}
	if create.FundingSource != "" {
		src := create.FundingSource
		tx.FundingSource = &src
	}
	return tx
}

func mapModelToRead(tx *model.Transaction) *dto.TransactionRead {
	read := &dto.TransactionRead{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Status:      tx.Status,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
	if tx.DestinationAddress != nil {
		read.DestinationAddress = *tx.DestinationAddress
	}
	if tx.FundingSource != nil {
		read.FundingSource = *tx.FundingSource
	}
	return read
}
