// AngelaMos | 2026
// service.go

package referral

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
)

// UserStore resolves invitation codes to their owners.
type UserStore interface {
	CodeStore
	Referrer(ctx context.Context, code string) (id, email string, err error)
}

// Ledger credits the referral bonus.
type Ledger interface {
	Credit(ctx context.Context, userID string, amount decimal.Decimal) error
}

type Service struct {
	users  UserStore
	ledger Ledger
	gen    *CodeGenerator
	bonus  decimal.Decimal
}

func NewService(
	users UserStore,
	ledger Ledger,
	gen *CodeGenerator,
	bonus decimal.Decimal,
) *Service {
	return &Service{
		users:  users,
		ledger: ledger,
		gen:    gen,
		bonus:  bonus,
	}
}

// NewCode issues a fresh invitation code for a new account.
func (s *Service) NewCode(ctx context.Context) (string, error) {
	return s.gen.Generate(ctx)
}

// Referrer resolves a referral code supplied at signup. An unknown code
// yields core.ErrNotFound; callers treat that as "no referral", not as
// a signup failure.
func (s *Service) Referrer(
	ctx context.Context,
	code string,
) (string, string, error) {
	id, email, err := s.users.Referrer(ctx, code)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", "", err
		}
		return "", "", fmt.Errorf("resolve referrer: %w", err)
	}

	return id, email, nil
}

// AwardBonus credits the flat signup bonus to the referrer.
func (s *Service) AwardBonus(ctx context.Context, referrerID string) error {
	if err := s.ledger.Credit(ctx, referrerID, s.bonus); err != nil {
		return fmt.Errorf("award referral bonus: %w", err)
	}

	slog.Info("referral bonus awarded",
		"referrer_id", referrerID,
		"amount", s.bonus,
	)

	return nil
}
