package wallet

import (
	"time"

	"github.com/google/uuid"

	"github.com/cryptofolio/wallet/pkg/domain/ledger"
)

// CreateAccountRequest is the body for provisioning an account. The opening
// balance is a decimal string to avoid binary floating-point rounding.
type CreateAccountRequest struct {
	OpeningBalance string `json:"opening_balance" validate:"omitempty"`
}

// DepositRequest is the body for crediting an account.
type DepositRequest struct {
	Amount        string `json:"amount" validate:"required"`
	Description   string `json:"description" validate:"omitempty,max=255"`
	FundingSource string `json:"funding_source" validate:"omitempty,max=64"`
}

// WithdrawRequest is the body for reserving a withdrawal.
type WithdrawRequest struct {
	Amount             string `json:"amount" validate:"required"`
	Description        string `json:"description" validate:"omitempty,max=255"`
	DestinationAddress string `json:"destination_address" validate:"omitempty,max=128"`
}

// TransactionResponse is the wire shape of a ledger transaction.
type TransactionResponse struct {
	ID                 uuid.UUID `json:"id"`
	AccountID          uuid.UUID `json:"account_id"`
	Type               string    `json:"type"`
	Amount             string    `json:"amount"`
	Status             string    `json:"status"`
	Description        string    `json:"description,omitempty"`
	DestinationAddress string    `json:"destination_address,omitempty"`
	FundingSource      string    `json:"funding_source,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// BalanceResponse is the wire shape of an account balance.
type BalanceResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Balance   string    `json:"balance"`
}

func toTransactionResponse(tx *ledger.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Type:        string(tx.Type),
		Amount:      tx.Amount.String(),
		Status:      string(tx.Status),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
	switch d := tx.Detail.(type) {
	case ledger.WithdrawalDetail:
		resp.DestinationAddress = d.DestinationAddress
	case ledger.DepositDetail:
		resp.FundingSource = d.FundingSource
	}
	return resp
}
