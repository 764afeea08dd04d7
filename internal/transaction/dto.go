// AngelaMos | 2026
// dto.go

package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type DepositRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	TxID     string          `json:"txid"      validate:"required,min=1,max=128"`
	PlanName string          `json:"plan_name" validate:"omitempty,max=32"`
}

// WithdrawRequest carries the amount as a string; the service parses it
// so malformed input maps to a domain error instead of a decode error.
type WithdrawRequest struct {
	Amount   string `json:"amount"   validate:"required"`
	Address  string `json:"address"  validate:"required,min=1,max=256"`
	Password string `json:"password" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type TransactionResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Type      Type            `json:"type"`
	Status    Status          `json:"status"`
	TxID      *string         `json:"txid,omitempty"`
	Address   *string         `json:"address,omitempty"`
	Network   *string         `json:"network,omitempty"`
	PlanName  *string         `json:"plan_name,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func ToTransactionResponse(t *Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Amount:    t.Amount,
		Type:      t.Type,
		Status:    t.Status,
		TxID:      t.TxID,
		Address:   t.Address,
		Network:   t.Network,
		PlanName:  t.PlanName,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func ToTransactionResponseList(txns []Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		responses = append(responses, ToTransactionResponse(&t))
	}
	return responses
}
