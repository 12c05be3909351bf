package wallet

import (
	"github.com/cryptofolio/wallet/pkg/domain/ledger"
	"github.com/cryptofolio/wallet/pkg/dto"
)

func mapTransactionToCreate(tx *ledger.Transaction) dto.TransactionCreate {
	create := dto.TransactionCreate{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Status:      string(tx.Status),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
	switch d := tx.Detail.(type) {
	case ledger.WithdrawalDetail:
		create.DestinationAddress = d.DestinationAddress
	case ledger.DepositDetail:
		create.FundingSource = d.FundingSource
	}
	return create
}

func mapReadToTransaction(read *dto.TransactionRead) *ledger.Transaction {
	tx := &ledger.Transaction{
		ID:          read.ID,
		AccountID:   read.AccountID,
		Type:        ledger.TransactionType(read.Type),
		Amount:      read.Amount,
		Status:      ledger.TransactionStatus(read.Status),
		Description: read.Description,
		CreatedAt:   read.CreatedAt,
	}
	switch {
	case read.DestinationAddress != "":
		tx.Detail = ledger.WithdrawalDetail{DestinationAddress: read.DestinationAddress}
	case read.FundingSource != "":
		tx.Detail = ledger.DepositDetail{FundingSource: read.FundingSource}
	}
	return tx
}
