// AngelaMos | 2026
// repository.go

package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	ListByStatus(ctx context.Context, status Status) ([]Transaction, error)
	CountPending(ctx context.Context) (int, error)

	// UpdateStatusIfPending flips the status only when the row is still
	// pending, so a transaction is finalized at most once no matter how
	// many reviewers race on it.
	UpdateStatusIfPending(
		ctx context.Context,
		id string,
		status Status,
	) (bool, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const txnColumns = `id, user_id, amount, type, status, txid, address,
	       network, plan_name, created_at, updated_at`

func (r *repository) Create(ctx context.Context, txn *Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, amount, type, status,
		                          txid, address, network, plan_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, txn, query,
		txn.ID,
		txn.UserID,
		txn.Amount,
		txn.Type,
		txn.Status,
		txn.TxID,
		txn.Address,
		txn.Network,
		txn.PlanName,
	)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE id = $1`, txnColumns)

	var txn Transaction
	err := r.db.GetContext(ctx, &txn, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get transaction: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return &txn, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
) ([]Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`, txnColumns)

	var txns []Transaction
	if err := r.db.SelectContext(ctx, &txns, query, userID); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txns, nil
}

func (r *repository) ListByStatus(
	ctx context.Context,
	status Status,
) ([]Transaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM transactions
		WHERE status = $1
		ORDER BY created_at ASC`, txnColumns)

	var txns []Transaction
	if err := r.db.SelectContext(ctx, &txns, query, status); err != nil {
		return nil, fmt.Errorf("list transactions by status: %w", err)
	}

	return txns, nil
}

func (r *repository) CountPending(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE status = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, StatusPending); err != nil {
		return 0, fmt.Errorf("count pending transactions: %w", err)
	}

	return count, nil
}

func (r *repository) UpdateStatusIfPending(
	ctx context.Context,
	id string,
	status Status,
) (bool, error) {
	query := `
		UPDATE transactions
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	result, err := r.db.ExecContext(ctx, query, id, status, StatusPending)
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}

	return rows > 0, nil
}
