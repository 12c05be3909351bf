package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/repository"
)

// ListTransactions returns the account's full transaction history, most recent
// first. The query is read-only and takes no locks, so it can run concurrently
// with any number of reservations and terminal transitions.
func (s *Service) ListTransactions(
	ctx context.Context,
	accountID uuid.UUID,
) ([]*ledger.Transaction, error) {
	var history []*ledger.Transaction
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.Accounts()
		if err != nil {
			return err
		}
		transactions, err := uow.Transactions()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, accountID); err != nil {
			return err
		}
		reads, err := transactions.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		history = make([]*ledger.Transaction, 0, len(reads))
		for _, read := range reads {
			history = append(history, mapReadToTransaction(read))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}
