// AngelaMos | 2026
// service.go

package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/user"
)

var (
	ErrNoPlanActivated  = errors.New("no plan activated")
	ErrAlreadyCompleted = errors.New("task already completed today")
)

// UserStore is the slice of the user repository the task engine needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	CompleteDailyTask(
		ctx context.Context,
		id string,
		earning decimal.Decimal,
	) (bool, error)
}

type Service struct {
	users       UserStore
	completions Repository
}

func NewService(users UserStore, completions Repository) *Service {
	return &Service{
		users:       users,
		completions: completions,
	}
}

type Result struct {
	Balance        decimal.Decimal
	Plan           string
	TodayEarning   decimal.Decimal
	CompletedTasks []Completion
}

// Complete credits the plan's daily earning once per calendar day. The
// per-day guard lives in the users row update, so concurrent calls for
// the same user settle on exactly one credit.
func (s *Service) Complete(ctx context.Context, userID string) (*Result, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !u.HasPlan() {
		return nil, fmt.Errorf("complete task: %w", ErrNoPlanActivated)
	}

	plan := *u.Plan
	earning := plan.DailyEarning()

	credited, err := s.users.CompleteDailyTask(ctx, userID, earning)
	if err != nil {
		return nil, err
	}
	if !credited {
		return nil, fmt.Errorf("complete task: %w", ErrAlreadyCompleted)
	}

	completion := &Completion{
		ID:     uuid.New().String(),
		UserID: userID,
		Plan:   plan.String(),
		Amount: earning,
	}
	if err := s.completions.Create(ctx, completion); err != nil {
		// The credit already landed; the history row is best effort.
		slog.Error("task completion record failed",
			"user_id", userID,
			"plan", plan,
			"error", err,
		)
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.completions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	slog.Info("daily task completed",
		"user_id", userID,
		"plan", plan,
		"earning", earning,
	)

	return &Result{
		Balance:        updated.Balance,
		Plan:           plan.String(),
		TodayEarning:   earning,
		CompletedTasks: history,
	}, nil
}

// History returns the profile-facing completion list.
func (s *Service) History(
	ctx context.Context,
	userID string,
) ([]user.CompletedTask, error) {
	completions, err := s.completions.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := make([]user.CompletedTask, 0, len(completions))
	for _, c := range completions {
		history = append(history, user.CompletedTask{
			Plan:        c.Plan,
			Amount:      c.Amount,
			CompletedAt: c.CompletedAt,
		})
	}

	return history, nil
}
