package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/repository"
)

// Deposit credits an account and records a COMPLETED deposit in one atomic
// unit. Deposits do not pass through the withdrawal state machine; the record
// shares the transaction shape so the audit history stays uniform.
func (s *Service) Deposit(
	ctx context.Context,
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
	detail *ledger.DepositDetail,
) (*ledger.Transaction, error) {
	logger := s.logger.With("accountID", accountID, "amount", amount.String())

	tx, err := ledger.NewDeposit(accountID, amount, description, detail)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if err := accounts.Credit(ctx, accountID, amount); err != nil {
			return err
		}
		return transactions.Create(ctx, mapTransactionToCreate(tx))
	})
	if err != nil {
		logger.Warn("deposit failed", "error", err)
		return nil, err
	}

	logger.Info("deposit credited", "transactionID", tx.ID)
	return tx, nil
}
