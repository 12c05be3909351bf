package wallet

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/repository"
)

// CreateWithdrawal reserves a withdrawal: in one atomic unit it verifies the
// balance covers the amount, debits the account and records a PENDING
// withdrawal. Funds leave the visible balance here; they only return if the
// withdrawal is later rejected.
//
// Fails with InsufficientFundsError (carrying required and available amounts)
// and no mutation when the balance is too low.
func (s *Service) CreateWithdrawal(
	ctx context.Context,
	accountID uuid.UUID,
	amount decimal.Decimal,
	description string,
	detail *ledger.WithdrawalDetail,
) (*ledger.Transaction, error) {
	logger := s.logger.With("accountID", accountID, "amount", amount.String())

	tx, err := ledger.NewWithdrawal(accountID, amount, description, detail)
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

		// Exclusive lock: two concurrent reservations against one account
		// serialize here, so both can never pass the check on the same funds.
		acc, err := accounts.GetForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		if acc.Balance.LessThan(amount) {
			return &ledger.InsufficientFundsError{
				Required:  amount,
				Available: acc.Balance,
			}
		}
		if err := accounts.Debit(ctx, accountID, amount); err != nil {
			return err
		}
		return transactions.Create(ctx, mapTransactionToCreate(tx))
	})
	if err != nil {
		logger.Warn("withdrawal reservation failed", "error", err)
		return nil, err
	}

	logger.Info("withdrawal reserved", "transactionID", tx.ID)
	return tx, nil
}

// ApproveWithdrawal confirms a PENDING withdrawal was settled externally and
// marks it COMPLETED. The balance does not change: the amount already left it
// at reservation time.
//
// Fails with ErrTransactionNotFound if the record does not exist and with
// ErrAlreadyProcessed if it is already terminal; a second approve or reject
// attempt never silently succeeds.
func (s *Service) ApproveWithdrawal(
	ctx context.Context,
	transactionID uuid.UUID,
) (*ledger.Transaction, error) {
	logger := s.logger.With("transactionID", transactionID)

	var approved *ledger.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}

		rows, err := transactions.MarkCompletedIfPending(ctx, transactionID)
		if err != nil {
			return err
		}
		if rows == 0 {
			// The conditional update matched nothing: either the record is
			// missing or it already reached a terminal state.
			if _, err := transactions.Get(ctx, transactionID); err != nil {
				return err
			}
			return ledger.ErrAlreadyProcessed
		}

		read, err := transactions.Get(ctx, transactionID)
		if err != nil {
			return err
		}
		approved = mapReadToTransaction(read)
		return nil
	})
	if err != nil {
		logger.Warn("withdrawal approval failed", "error", err)
		return nil, err
	}

	logger.Info("withdrawal approved")
	return approved, nil
}

// RejectWithdrawal fails a PENDING withdrawal and refunds its amount in the
// same atomic unit. The status condition guarantees at most one refund per
// transaction regardless of concurrent reject attempts.
func (s *Service) RejectWithdrawal(
	ctx context.Context,
	transactionID uuid.UUID,
) (*ledger.Transaction, error) {
	logger := s.logger.With("transactionID", transactionID)

	var rejected *ledger.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}

		rows, err := transactions.MarkFailedIfPending(ctx, transactionID)
		if err != nil {
			return err
		}
		if rows == 0 {
			if _, err := transactions.Get(ctx, transactionID); err != nil {
				return err
			}
			return ledger.ErrAlreadyProcessed
		}

		read, err := transactions.Get(ctx, transactionID)
		if err != nil {
			return err
		}
		if err := accounts.Credit(ctx, read.AccountID, read.Amount); err != nil {
			return err
		}
		rejected = mapReadToTransaction(read)
		return nil
	})
	if err != nil {
		logger.Warn("withdrawal rejection failed", "error", err)
		return nil, err
	}

	logger.Info("withdrawal rejected and refunded",
		"accountID", rejected.AccountID,
		"amount", rejected.Amount.String(),
	)
	return rejected, nil
}
