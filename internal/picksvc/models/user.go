package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents the users table. Subscription state lives here so the
// auth boundary can mint tokens carrying the premium capability; the query
// layer itself only ever sees the resulting boolean.
type User struct {
	UserId    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Premium   bool            `json:"premium"`
	PlanPrice decimal.Decimal `json:"plan_price"`
	Status    string          `json:"status,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
