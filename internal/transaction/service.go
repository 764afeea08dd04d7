// AngelaMos | 2026
// service.go

package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/user"
)

// Ledger applies the balance and plan side effects of an approval.
type Ledger interface {
	Credit(ctx context.Context, userID string, amount decimal.Decimal) error
	Debit(ctx context.Context, userID string, amount decimal.Decimal) error
	ActivatePlan(ctx context.Context, userID string, plan ledger.Plan) error
}

type UserStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Config struct {
	WithdrawMin decimal.Decimal
	WithdrawMax decimal.Decimal
	Network     string
}

type Service struct {
	repo   Repository
	users  UserStore
	ledger Ledger
	cfg    Config
}

func NewService(
	repo Repository,
	users UserStore,
	ledgerSvc Ledger,
	cfg Config,
) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		ledger: ledgerSvc,
		cfg:    cfg,
	}
}

// Deposit records a pending deposit request. Nothing is credited and no
// plan changes until an admin approves it.
func (s *Service) Deposit(
	ctx context.Context,
	userID string,
	req DepositRequest,
) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf(
			"deposit amount %s: %w",
			req.Amount,
			ledger.ErrInvalidAmount,
		)
	}

	txid := strings.TrimSpace(req.TxID)
	if txid == "" {
		return nil, fmt.Errorf("deposit txid: %w", ErrMissingField)
	}

	var planName *string
	if req.PlanName != "" && req.PlanName != "None" {
		plan, err := ledger.ParsePlan(req.PlanName)
		if err != nil {
			return nil, err
		}
		name := plan.String()
		planName = &name
	}

	txn := &Transaction{
		ID:       uuid.New().String(),
		UserID:   userID,
		Amount:   req.Amount,
		Type:     TypeDeposit,
		Status:   StatusPending,
		TxID:     &txid,
		PlanName: planName,
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, err
	}

	slog.Info("deposit requested",
		"transaction_id", txn.ID,
		"user_id", userID,
		"amount", txn.Amount,
	)

	return txn, nil
}

// Withdraw records a pending withdrawal request. The balance is checked
// here for fast feedback but only debited at approval time.
func (s *Service) Withdraw(
	ctx context.Context,
	userID string,
	req WithdrawRequest,
) (*Transaction, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	valid, _, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&u.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("withdraw: %w", ErrInvalidCredentials)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf(
			"withdraw amount %q: %w",
			req.Amount,
			ledger.ErrInvalidAmount,
		)
	}

	if amount.LessThan(s.cfg.WithdrawMin) ||
		amount.GreaterThan(s.cfg.WithdrawMax) {
		return nil, fmt.Errorf(
			"withdraw amount %s outside [%s, %s]: %w",
			amount,
			s.cfg.WithdrawMin,
			s.cfg.WithdrawMax,
			ErrAmountOutOfRange,
		)
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, fmt.Errorf("withdraw address: %w", ErrMissingField)
	}

	if u.Balance.LessThan(amount) {
		return nil, fmt.Errorf("withdraw: %w", ledger.ErrInsufficientBalance)
	}

	network := s.cfg.Network

	txn := &Transaction{
		ID:      uuid.New().String(),
		UserID:  userID,
		Amount:  amount,
		Type:    TypeWithdraw,
		Status:  StatusPending,
		Address: &address,
		Network: &network,
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		return nil, err
	}

	slog.Info("withdrawal requested",
		"transaction_id", txn.ID,
		"user_id", userID,
		"amount", txn.Amount,
	)

	return txn, nil
}

func (s *Service) List(
	ctx context.Context,
	userID string,
) ([]Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListPending(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

// UpdateStatus finalizes a pending transaction. The status row is the
// synchronization point: side effects only run on the request that wins
// the pending-to-terminal transition, so re-review cannot double-apply
// them.
func (s *Service) UpdateStatus(
	ctx context.Context,
	id, statusStr string,
) (*Transaction, error) {
	status, err := ParseTerminalStatus(statusStr)
	if err != nil {
		return nil, fmt.Errorf("update status %q: %w", statusStr, err)
	}

	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !txn.IsPending() {
		return nil, fmt.Errorf(
			"transaction %s is %s: %w",
			txn.ID,
			txn.Status,
			ErrFinalized,
		)
	}

	switch {
	case status == StatusRejected:
		err = s.reject(ctx, txn)
	case txn.Type == TypeWithdraw:
		err = s.approveWithdrawal(ctx, txn)
	default:
		err = s.approveDeposit(ctx, txn)
	}
	if err != nil {
		return nil, err
	}

	txn.Status = status

	slog.Info("transaction reviewed",
		"transaction_id", txn.ID,
		"user_id", txn.UserID,
		"type", txn.Type,
		"status", status,
	)

	return txn, nil
}

// reject flips the status and leaves the ledger untouched.
func (s *Service) reject(ctx context.Context, txn *Transaction) error {
	ok, err := s.repo.UpdateStatusIfPending(ctx, txn.ID, StatusRejected)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("reject transaction %s: %w", txn.ID, ErrFinalized)
	}
	return nil
}

// approveDeposit wins the status transition first; the ledger effects
// run once on the winning request. A storage failure after the flip is
// surfaced for operator attention rather than retried here.
func (s *Service) approveDeposit(ctx context.Context, txn *Transaction) error {
	var plan ledger.Plan
	if txn.PlanName != nil {
		parsed, err := ledger.ParsePlan(*txn.PlanName)
		if err != nil {
			return fmt.Errorf("approve deposit %s: %w", txn.ID, err)
		}
		plan = parsed
	}

	ok, err := s.repo.UpdateStatusIfPending(ctx, txn.ID, StatusApproved)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("approve transaction %s: %w", txn.ID, ErrFinalized)
	}

	if plan != "" {
		if err := s.ledger.ActivatePlan(ctx, txn.UserID, plan); err != nil {
			slog.Error("plan activation failed after approval",
				"transaction_id", txn.ID,
				"user_id", txn.UserID,
				"plan", plan,
				"error", err,
			)
			return fmt.Errorf("approve deposit %s: %w", txn.ID, err)
		}
	}

	if err := s.ledger.Credit(ctx, txn.UserID, txn.Amount); err != nil {
		slog.Error("credit failed after approval",
			"transaction_id", txn.ID,
			"user_id", txn.UserID,
			"amount", txn.Amount,
			"error", err,
		)
		return fmt.Errorf("approve deposit %s: %w", txn.ID, err)
	}

	return nil
}

// approveWithdrawal debits first so funds can never leave twice. When
// the guarded debit fails the transaction stays pending and can be
// retried or rejected.
func (s *Service) approveWithdrawal(
	ctx context.Context,
	txn *Transaction,
) error {
	if err := s.ledger.Debit(ctx, txn.UserID, txn.Amount); err != nil {
		return fmt.Errorf("approve withdrawal %s: %w", txn.ID, err)
	}

	ok, err := s.repo.UpdateStatusIfPending(ctx, txn.ID, StatusApproved)
	if err != nil {
		return err
	}
	if !ok {
		// Lost the race after taking the funds; give them back.
		if creditErr := s.ledger.Credit(ctx, txn.UserID, txn.Amount); creditErr != nil {
			slog.Error("compensating credit failed",
				"transaction_id", txn.ID,
				"user_id", txn.UserID,
				"amount", txn.Amount,
				"error", creditErr,
			)
		}
		return fmt.Errorf("approve transaction %s: %w", txn.ID, ErrFinalized)
	}

	return nil
}
