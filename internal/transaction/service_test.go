// AngelaMos | 2026
// service_test.go

package transaction

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/user"
)

type mockRepo struct {
	created   *Transaction
	createErr error

	getResult *Transaction
	getErr    error

	casResult bool
	casErr    error
	casCalls  []Status

	listResult []Transaction
	listErr    error
}

func (m *mockRepo) Create(_ context.Context, txn *Transaction) error {
	m.created = txn
	return m.createErr
}

func (m *mockRepo) GetByID(_ context.Context, _ string) (*Transaction, error) {
	return m.getResult, m.getErr
}

func (m *mockRepo) ListByUser(
	_ context.Context,
	_ string,
) ([]Transaction, error) {
	return m.listResult, m.listErr
}

func (m *mockRepo) ListByStatus(
	_ context.Context,
	_ Status,
) ([]Transaction, error) {
	return m.listResult, m.listErr
}

func (m *mockRepo) CountPending(_ context.Context) (int, error) {
	return len(m.listResult), nil
}

func (m *mockRepo) UpdateStatusIfPending(
	_ context.Context,
	_ string,
	status Status,
) (bool, error) {
	m.casCalls = append(m.casCalls, status)
	return m.casResult, m.casErr
}

type mockUserStore struct {
	user *user.User
	err  error
}

func (m *mockUserStore) GetByID(
	_ context.Context,
	_ string,
) (*user.User, error) {
	return m.user, m.err
}

type mockLedger struct {
	credits     []decimal.Decimal
	creditErr   error
	debits      []decimal.Decimal
	debitErr    error
	activated   []ledger.Plan
	activateErr error
}

func (m *mockLedger) Credit(
	_ context.Context,
	_ string,
	amount decimal.Decimal,
) error {
	if m.creditErr != nil {
		return m.creditErr
	}
	m.credits = append(m.credits, amount)
	return nil
}

func (m *mockLedger) Debit(
	_ context.Context,
	_ string,
	amount decimal.Decimal,
) error {
	if m.debitErr != nil {
		return m.debitErr
	}
	m.debits = append(m.debits, amount)
	return nil
}

func (m *mockLedger) ActivatePlan(
	_ context.Context,
	_ string,
	plan ledger.Plan,
) error {
	if m.activateErr != nil {
		return m.activateErr
	}
	m.activated = append(m.activated, plan)
	return nil
}

var (
	testHashOnce sync.Once
	testHash     string
)

const testPassword = "correct-horse-battery"

func passwordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		hash, err := core.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("hash password: %v", err)
		}
		testHash = hash
	})
	return testHash
}

func testConfig() Config {
	return Config{
		WithdrawMin: decimal.NewFromInt(30),
		WithdrawMax: decimal.NewFromInt(10000),
		Network:     "BEP20-USDT",
	}
}

func newService(
	repo *mockRepo,
	users *mockUserStore,
	lgr *mockLedger,
) *Service {
	return NewService(repo, users, lgr, testConfig())
}

func strPtr(s string) *string {
	return &s
}

func TestDepositCreatesPending(t *testing.T) {
	repo := &mockRepo{}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	txn, err := svc.Deposit(context.Background(), "u1", DepositRequest{
		Amount:   decimal.NewFromInt(500),
		TxID:     "0xabc",
		PlanName: "Golden",
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, txn.Status)
	assert.Equal(t, TypeDeposit, txn.Type)
	assert.Equal(t, "Golden", *txn.PlanName)
	assert.Equal(t, "0xabc", *txn.TxID)
	require.NotNil(t, repo.created)

	// Nothing hits the ledger until approval.
	assert.Empty(t, lgr.credits)
	assert.Empty(t, lgr.activated)
}

func TestDepositPlanNoneMeansNoPlan(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, &mockUserStore{}, &mockLedger{})

	txn, err := svc.Deposit(context.Background(), "u1", DepositRequest{
		Amount:   decimal.NewFromInt(100),
		TxID:     "0xabc",
		PlanName: "None",
	})

	require.NoError(t, err)
	assert.Nil(t, txn.PlanName)
}

func TestDepositInvalidAmount(t *testing.T) {
	svc := newService(&mockRepo{}, &mockUserStore{}, &mockLedger{})

	_, err := svc.Deposit(context.Background(), "u1", DepositRequest{
		Amount: decimal.Zero,
		TxID:   "0xabc",
	})

	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestDepositMissingTxID(t *testing.T) {
	svc := newService(&mockRepo{}, &mockUserStore{}, &mockLedger{})

	_, err := svc.Deposit(context.Background(), "u1", DepositRequest{
		Amount: decimal.NewFromInt(100),
		TxID:   "   ",
	})

	require.ErrorIs(t, err, ErrMissingField)
}

func TestDepositUnknownPlan(t *testing.T) {
	svc := newService(&mockRepo{}, &mockUserStore{}, &mockLedger{})

	_, err := svc.Deposit(context.Background(), "u1", DepositRequest{
		Amount:   decimal.NewFromInt(100),
		TxID:     "0xabc",
		PlanName: "Bronze",
	})

	require.ErrorIs(t, err, ledger.ErrInvalidPlan)
}

func withdrawUser(t *testing.T, balance int64) *user.User {
	t.Helper()
	return &user.User{
		ID:           "u1",
		Email:        "user@example.com",
		PasswordHash: passwordHash(t),
		Balance:      decimal.NewFromInt(balance),
	}
}

func TestWithdrawCreatesPending(t *testing.T) {
	repo := &mockRepo{}
	lgr := &mockLedger{}
	users := &mockUserStore{user: withdrawUser(t, 1000)}
	svc := newService(repo, users, lgr)

	txn, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
		Amount:   "100",
		Address:  "0xdeadbeef",
		Password: testPassword,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, txn.Status)
	assert.Equal(t, TypeWithdraw, txn.Type)
	assert.Equal(t, "BEP20-USDT", *txn.Network)
	assert.Equal(t, "0xdeadbeef", *txn.Address)
	assert.True(t, decimal.NewFromInt(100).Equal(txn.Amount))

	// Request time never touches the balance.
	assert.Empty(t, lgr.debits)
}

func TestWithdrawWrongPassword(t *testing.T) {
	users := &mockUserStore{user: withdrawUser(t, 1000)}
	svc := newService(&mockRepo{}, users, &mockLedger{})

	_, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
		Amount:   "100",
		Address:  "0xdeadbeef",
		Password: "wrong-password",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestWithdrawPasswordCheckedBeforeAmount(t *testing.T) {
	users := &mockUserStore{user: withdrawUser(t, 1000)}
	svc := newService(&mockRepo{}, users, &mockLedger{})

	_, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
		Amount:   "not-a-number",
		Address:  "0xdeadbeef",
		Password: "wrong-password",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestWithdrawMalformedAmount(t *testing.T) {
	users := &mockUserStore{user: withdrawUser(t, 1000)}
	svc := newService(&mockRepo{}, users, &mockLedger{})

	_, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
		Amount:   "abc",
		Address:  "0xdeadbeef",
		Password: testPassword,
	})

	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestWithdrawAmountOutOfRange(t *testing.T) {
	users := &mockUserStore{user: withdrawUser(t, 100000)}
	svc := newService(&mockRepo{}, users, &mockLedger{})

	for _, amount := range []string{"29.99", "10000.01", "1"} {
		_, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
			Amount:   amount,
			Address:  "0xdeadbeef",
			Password: testPassword,
		})
		require.ErrorIs(t, err, ErrAmountOutOfRange, "amount %s", amount)
	}
}

func TestWithdrawBoundaryAmounts(t *testing.T) {
	users := &mockUserStore{user: withdrawUser(t, 100000)}

	for _, amount := range []string{"30", "10000"} {
		repo := &mockRepo{}
		svc := newService(repo, users, &mockLedger{})

		_, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
			Amount:   amount,
			Address:  "0xdeadbeef",
			Password: testPassword,
		})
		require.NoError(t, err, "amount %s", amount)
	}
}

func TestWithdrawInsufficientBalance(t *testing.T) {
	users := &mockUserStore{user: withdrawUser(t, 50)}
	svc := newService(&mockRepo{}, users, &mockLedger{})

	_, err := svc.Withdraw(context.Background(), "u1", WithdrawRequest{
		Amount:   "100",
		Address:  "0xdeadbeef",
		Password: testPassword,
	})

	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)
}

func pendingDeposit(planName *string) *Transaction {
	return &Transaction{
		ID:       "t1",
		UserID:   "u1",
		Amount:   decimal.NewFromInt(500),
		Type:     TypeDeposit,
		Status:   StatusPending,
		PlanName: planName,
	}
}

func pendingWithdrawal() *Transaction {
	return &Transaction{
		ID:     "t1",
		UserID: "u1",
		Amount: decimal.NewFromInt(100),
		Type:   TypeWithdraw,
		Status: StatusPending,
	}
}

func TestUpdateStatusInvalidTargets(t *testing.T) {
	svc := newService(&mockRepo{}, &mockUserStore{}, &mockLedger{})

	for _, status := range []string{"pending", "completed", "APPROVED", ""} {
		_, err := svc.UpdateStatus(context.Background(), "t1", status)
		require.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &mockRepo{getErr: core.ErrNotFound}
	svc := newService(repo, &mockUserStore{}, &mockLedger{})

	_, err := svc.UpdateStatus(context.Background(), "missing", "approved")

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestUpdateStatusAlreadyFinalized(t *testing.T) {
	txn := pendingDeposit(nil)
	txn.Status = StatusApproved

	repo := &mockRepo{getResult: txn}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	_, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.ErrorIs(t, err, ErrFinalized)
	assert.Empty(t, repo.casCalls)
	assert.Empty(t, lgr.credits)
}

func TestRejectLeavesLedgerUntouched(t *testing.T) {
	repo := &mockRepo{getResult: pendingWithdrawal(), casResult: true}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	txn, err := svc.UpdateStatus(context.Background(), "t1", "rejected")

	require.NoError(t, err)
	assert.Equal(t, StatusRejected, txn.Status)
	assert.Equal(t, []Status{StatusRejected}, repo.casCalls)
	assert.Empty(t, lgr.credits)
	assert.Empty(t, lgr.debits)
}

func TestApprovePlanDeposit(t *testing.T) {
	repo := &mockRepo{getResult: pendingDeposit(strPtr("Golden")), casResult: true}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	txn, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, txn.Status)
	assert.Equal(t, []ledger.Plan{ledger.PlanGolden}, lgr.activated)
	require.Len(t, lgr.credits, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(lgr.credits[0]))
}

func TestApprovePlainDeposit(t *testing.T) {
	repo := &mockRepo{getResult: pendingDeposit(nil), casResult: true}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	_, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.NoError(t, err)
	assert.Empty(t, lgr.activated)
	require.Len(t, lgr.credits, 1)
}

func TestApproveDepositLosesRace(t *testing.T) {
	repo := &mockRepo{getResult: pendingDeposit(strPtr("Silver")), casResult: false}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	_, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.ErrorIs(t, err, ErrFinalized)
	assert.Empty(t, lgr.credits)
	assert.Empty(t, lgr.activated)
}

func TestApproveWithdrawalDebits(t *testing.T) {
	repo := &mockRepo{getResult: pendingWithdrawal(), casResult: true}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	txn, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, txn.Status)
	require.Len(t, lgr.debits, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(lgr.debits[0]))
	assert.Empty(t, lgr.credits)
}

func TestApproveWithdrawalInsufficientBalance(t *testing.T) {
	repo := &mockRepo{getResult: pendingWithdrawal(), casResult: true}
	lgr := &mockLedger{debitErr: ledger.ErrInsufficientBalance}
	svc := newService(repo, &mockUserStore{}, lgr)

	_, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	// The transaction stays pending; no status write happened.
	assert.Empty(t, repo.casCalls)
}

func TestApproveWithdrawalLosesRaceRefunds(t *testing.T) {
	repo := &mockRepo{getResult: pendingWithdrawal(), casResult: false}
	lgr := &mockLedger{}
	svc := newService(repo, &mockUserStore{}, lgr)

	_, err := svc.UpdateStatus(context.Background(), "t1", "approved")

	require.ErrorIs(t, err, ErrFinalized)
	require.Len(t, lgr.debits, 1)
	require.Len(t, lgr.credits, 1)
	assert.True(t, lgr.debits[0].Equal(lgr.credits[0]))
}
