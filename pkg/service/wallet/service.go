// Package wallet provides the business logic of the wallet ledger: account
// provisioning, deposit crediting, withdrawal reservation and its terminal
// transitions, and the audit query over an account's history.
//
// Every mutating operation runs inside a single unit of work, so a balance
// change and its transaction record commit or roll back together. Callers are
// trusted to supply an authenticated account id; identity is handled upstream.
package wallet

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/dto"
	"github.com/cryptofolio/wallet/pkg/repository"
)

// Service exposes the ledger core operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service with the provided unit of work and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// CreateAccount provisions a wallet account with the given opening balance.
// Opening balances come from the onboarding flow; a negative one is rejected.
func (s *Service) CreateAccount(
	ctx context.Context,
	openingBalance decimal.Decimal,
) (*ledger.Account, error) {
	if openingBalance.IsNegative() {
		return nil, ledger.ErrBalanceMustBeNonNegative
	}
	acc := ledger.NewAccount()
	acc.Balance = openingBalance

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		return accounts.Create(ctx, dto.AccountCreate{ID: acc.ID, Balance: acc.Balance})
	})
	if err != nil {
		s.logger.Error("account creation failed", "error", err)
		return nil, err
	}
	s.logger.Info("account created", "accountID", acc.ID, "balance", acc.Balance.String())
	return acc, nil
}

// GetBalance returns the current balance of an account.
func (s *Service) GetBalance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		acc, err := accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		balance = acc.Balance
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
