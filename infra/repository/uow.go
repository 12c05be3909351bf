// Package repository provides the gorm-backed unit of work for the ledger store.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	accountrepo "github.com/cryptofolio/wallet/infra/repository/account"
	transactionrepo "github.com/cryptofolio/wallet/infra/repository/transaction"
	repo "github.com/cryptofolio/wallet/pkg/repository"
)

// ErrNoActiveUnit is returned when a repository is requested outside a Do block.
var ErrNoActiveUnit = errors.New("no active unit of work; repositories are only available inside Do")

// UoW implements repository.UnitOfWork over a gorm transaction. Repositories
// handed out inside Do share the transaction session, so every read and write
// of one unit commits or rolls back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a unit-of-work factory for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary, providing a UoW bound to it.
func (u *UoW) Do(ctx context.Context, fn func(uow repo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// Accounts returns the account repository bound to the current transaction.
func (u *UoW) Accounts() (repo.AccountRepository, error) {
	if u.tx == nil {
		return nil, ErrNoActiveUnit
	}
	return accountrepo.New(u.tx), nil
}

// Transactions returns the transaction repository bound to the current transaction.
func (u *UoW) Transactions() (repo.TransactionRepository, error) {
	if u.tx == nil {
		return nil, ErrNoActiveUnit
	}
	return transactionrepo.New(u.tx), nil
}
