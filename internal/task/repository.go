// AngelaMos | 2026
// repository.go

package task

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
)

type Completion struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Plan        string          `db:"plan"`
	Amount      decimal.Decimal `db:"amount"`
	CompletedAt time.Time       `db:"completed_at"`
}

type Repository interface {
	Create(ctx context.Context, completion *Completion) error
	ListByUser(ctx context.Context, userID string) ([]Completion, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(
	ctx context.Context,
	completion *Completion,
) error {
	query := `
		INSERT INTO task_completions (id, user_id, plan, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING completed_at`

	err := r.db.GetContext(ctx, &completion.CompletedAt, query,
		completion.ID,
		completion.UserID,
		completion.Plan,
		completion.Amount,
	)
	if err != nil {
		return fmt.Errorf("create task completion: %w", err)
	}

	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Completion, error) {
	query := `
		SELECT id, user_id, plan, amount, completed_at
		FROM task_completions
		WHERE user_id = $1
		ORDER BY completed_at ASC`

	var completions []Completion
	if err := r.db.SelectContext(ctx, &completions, query, userID); err != nil {
		return nil, fmt.Errorf("list task completions: %w", err)
	}

	return completions, nil
}
