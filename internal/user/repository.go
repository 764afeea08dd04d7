// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
)

const userColumns = `id, email, password_hash, role, balance, plan,
	       invitation_code, referred_by, last_task_date,
	       today_earning_amount, today_earning_date,
	       created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByInvitationCode(ctx context.Context, code string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)

	// ledger.Store
	AddBalance(ctx context.Context, id string, amount decimal.Decimal) error
	DeductBalance(ctx context.Context, id string, amount decimal.Decimal) error
	SetPlan(ctx context.Context, id string, plan ledger.Plan) error

	// CompleteDailyTask credits the daily earning and stamps the task
	// date in one guarded write. It reports false when the user already
	// completed a task today.
	CompleteDailyTask(
		ctx context.Context,
		id string,
		earning decimal.Decimal,
	) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, balance,
		                   invitation_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, user, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Balance,
		user.InvitationCode,
		user.ReferredBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE email = $1`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByInvitationCode(
	ctx context.Context,
	code string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE invitation_code = $1`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by invitation code: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by invitation code: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) CodeExists(
	ctx context.Context,
	code string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE invitation_code = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		return false, fmt.Errorf("check invitation code exists: %w", err)
	}

	return exists, nil
}

func (r *repository) AddBalance(
	ctx context.Context,
	id string,
	amount decimal.Decimal,
) error {
	query := `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("add balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("add balance: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("add balance: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeductBalance(
	ctx context.Context,
	id string,
	amount decimal.Decimal,
) error {
	query := `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance >= $2`

	result, err := r.db.ExecContext(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("deduct balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deduct balance: %w", err)
	}

	if rows == 0 {
		exists, existsErr := r.exists(ctx, id)
		if existsErr != nil {
			return fmt.Errorf("deduct balance: %w", existsErr)
		}
		if !exists {
			return fmt.Errorf("deduct balance: %w", core.ErrNotFound)
		}
		return fmt.Errorf("deduct balance: %w", ledger.ErrInsufficientBalance)
	}

	return nil
}

func (r *repository) SetPlan(
	ctx context.Context,
	id string,
	plan ledger.Plan,
) error {
	query := `
		UPDATE users
		SET plan = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, plan.String())
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set plan: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set plan: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CompleteDailyTask(
	ctx context.Context,
	id string,
	earning decimal.Decimal,
) (bool, error) {
	// The date guard makes the whole mutation first-writer-wins for a
	// given calendar day.
	query := `
		UPDATE users
		SET balance = balance + $2,
		    last_task_date = CURRENT_DATE,
		    today_earning_amount = $2,
		    today_earning_date = CURRENT_DATE,
		    updated_at = NOW()
		WHERE id = $1
		  AND (last_task_date IS NULL OR last_task_date < CURRENT_DATE)`

	result, err := r.db.ExecContext(ctx, query, id, earning)
	if err != nil {
		return false, fmt.Errorf("complete daily task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete daily task: %w", err)
	}

	if rows == 0 {
		exists, existsErr := r.exists(ctx, id)
		if existsErr != nil {
			return false, fmt.Errorf("complete daily task: %w", existsErr)
		}
		if !exists {
			return false, fmt.Errorf("complete daily task: %w", core.ErrNotFound)
		}
		return false, nil
	}

	return true, nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR invitation_code ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.Role != "" {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, params.Role)
		argIdx++
	}

	if params.Plan != "" {
		conditions = append(conditions, fmt.Sprintf("plan = $%d", argIdx))
		args = append(args, params.Plan)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		userColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

func (r *repository) exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
