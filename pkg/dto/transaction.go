package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRead is a read-optimized DTO for audit queries and API responses.
type TransactionRead struct {
	ID                 uuid.UUID
	AccountID          uuid.UUID
	Type               string
	Amount             decimal.Decimal
	Status             string
	Description        string
	DestinationAddress string // withdrawals only
	FundingSource      string // deposits only
	CreatedAt          time.Time
}

// TransactionCreate carries the fields persisted when a ledger record is inserted.
// The status written here is the record's initial state; later changes go
// through the conditional status transitions only.
type TransactionCreate struct {
	ID                 uuid.UUID
	AccountID          uuid.UUID
	Type               string
	Amount             decimal.Decimal
	Status             string
	Description        string
	DestinationAddress string
	FundingSource      string
	CreatedAt          time.Time
}
