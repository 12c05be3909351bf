// Package model holds the gorm persistence models for the ledger store.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is the persisted wallet account row.
type Account struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Transaction is the persisted ledger record row. The composite index on
// (account_id, created_at) backs the most-recent-first audit query.
type Transaction struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID          uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_account_created,priority:1"`
	Type               string          `gorm:"type:varchar(16);not null"`
	Amount             decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Status             string          `gorm:"type:varchar(16);not null"`
	Description        string          `gorm:"type:text"`
	DestinationAddress *string         `gorm:"type:varchar(128)"`
	FundingSource      *string         `gorm:"type:varchar(64)"`
	CreatedAt          time.Time       `gorm:"index:idx_transactions_account_created,priority:2"`

	Account Account `gorm:"foreignKey:AccountID"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
