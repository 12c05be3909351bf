package repository

import "context"

// UnitOfWork groups reads and writes into one atomic unit and hands out
// repositories bound to that unit's storage session.
//
// Keeping repository access on the UnitOfWork guarantees every repository used
// inside Do shares the same transaction, so a balance decrement and its
// transaction record commit or roll back together.
type UnitOfWork interface {
	// Do executes fn inside a transaction boundary. If fn returns an error the
	// whole unit rolls back and no effect is observable afterward.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Accounts returns the account repository bound to the current unit.
	Accounts() (AccountRepository, error)

	// Transactions returns the transaction repository bound to the current unit.
	Transactions() (TransactionRepository, error)
}
