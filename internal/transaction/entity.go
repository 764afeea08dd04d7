// AngelaMos | 2026
// entity.go

package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrAmountOutOfRange   = errors.New("amount out of range")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrFinalized means the transaction already left the pending
	// state. Approved and rejected are terminal.
	ErrFinalized = errors.New("transaction already finalized")
)

type Type string

const (
	TypeDeposit  Type = "deposit"
	TypeWithdraw Type = "withdraw"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseTerminalStatus accepts only the states reachable through review.
// Pending is the creation state and is not a valid target.
func ParseTerminalStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusApproved:
		return StatusApproved, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Transaction struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	Type      Type            `db:"type"`
	Status    Status          `db:"status"`
	TxID      *string         `db:"txid"`
	Address   *string         `db:"address"`
	Network   *string         `db:"network"`
	PlanName  *string         `db:"plan_name"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (t *Transaction) IsPending() bool {
	return t.Status == StatusPending
}
