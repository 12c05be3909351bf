package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRead is a read-optimized DTO for account queries and API responses.
type AccountRead struct {
	ID        uuid.UUID
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountCreate carries the fields persisted when an account is provisioned.
type AccountCreate struct {
	ID      uuid.UUID
	Balance decimal.Decimal
}
