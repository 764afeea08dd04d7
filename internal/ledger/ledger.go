// AngelaMos | 2026
// ledger.go

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidPlan         = errors.New("invalid plan")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Store is the persistence surface the ledger mutates. Implementations
// must apply balance arithmetic in the database, not read-modify-write,
// so concurrent mutations against the same user compose.
type Store interface {
	// AddBalance executes balance = balance + amount.
	AddBalance(ctx context.Context, userID string, amount decimal.Decimal) error

	// DeductBalance executes balance = balance - amount guarded by
	// balance >= amount, and returns ErrInsufficientBalance when the
	// guard rejects the write.
	DeductBalance(ctx context.Context, userID string, amount decimal.Decimal) error

	SetPlan(ctx context.Context, userID string, plan Plan) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Credit adds amount to the user's balance. A zero amount is accepted
// and is a no-op on the stored value.
func (s *Service) Credit(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
) error {
	if amount.IsNegative() {
		return fmt.Errorf("credit %s: %w", amount, ErrInvalidAmount)
	}

	if err := s.store.AddBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("credit user %s: %w", userID, err)
	}

	return nil
}

// Debit subtracts amount from the user's balance. The deduction is
// conditional on sufficient funds at write time.
func (s *Service) Debit(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
) error {
	if !amount.IsPositive() {
		return fmt.Errorf("debit %s: %w", amount, ErrInvalidAmount)
	}

	if err := s.store.DeductBalance(ctx, userID, amount); err != nil {
		return fmt.Errorf("debit user %s: %w", userID, err)
	}

	return nil
}

// ActivatePlan sets the user's plan. Switching between plans in either
// direction is allowed.
func (s *Service) ActivatePlan(
	ctx context.Context,
	userID string,
	plan Plan,
) error {
	if !plan.Valid() {
		return fmt.Errorf("activate plan %q: %w", plan, ErrInvalidPlan)
	}

	if err := s.store.SetPlan(ctx, userID, plan); err != nil {
		return fmt.Errorf("activate plan for user %s: %w", userID, err)
	}

	return nil
}
