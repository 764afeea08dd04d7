// AngelaMos | 2026
// ledger_test.go

package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStore struct {
	addedUserID    string
	addedAmount    decimal.Decimal
	addErr         error
	deductedUserID string
	deductedAmount decimal.Decimal
	deductErr      error
	setPlanUserID  string
	setPlan        Plan
	setPlanErr     error
}

func (m *mockStore) AddBalance(
	_ context.Context,
	userID string,
	amount decimal.Decimal,
) error {
	m.addedUserID = userID
	m.addedAmount = amount
	return m.addErr
}

func (m *mockStore) DeductBalance(
	_ context.Context,
	userID string,
	amount decimal.Decimal,
) error {
	m.deductedUserID = userID
	m.deductedAmount = amount
	return m.deductErr
}

func (m *mockStore) SetPlan(
	_ context.Context,
	userID string,
	plan Plan,
) error {
	m.setPlanUserID = userID
	m.setPlan = plan
	return m.setPlanErr
}

func TestCredit(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.Credit(context.Background(), "u1", decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.Equal(t, "u1", store.addedUserID)
	assert.True(t, decimal.NewFromInt(100).Equal(store.addedAmount))
}

func TestCreditZeroIsAllowed(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.Credit(context.Background(), "u1", decimal.Zero)

	require.NoError(t, err)
	assert.Equal(t, "u1", store.addedUserID)
}

func TestCreditNegativeAmount(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.Credit(context.Background(), "u1", decimal.NewFromInt(-1))

	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, store.addedUserID)
}

func TestDebit(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.Debit(context.Background(), "u1", decimal.NewFromInt(40))

	require.NoError(t, err)
	assert.Equal(t, "u1", store.deductedUserID)
	assert.True(t, decimal.NewFromInt(40).Equal(store.deductedAmount))
}

func TestDebitNonPositiveAmount(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.Debit(context.Background(), "u1", decimal.Zero)
	require.ErrorIs(t, err, ErrInvalidAmount)

	err = svc.Debit(context.Background(), "u1", decimal.NewFromInt(-5))
	require.ErrorIs(t, err, ErrInvalidAmount)

	assert.Empty(t, store.deductedUserID)
}

func TestDebitInsufficientBalance(t *testing.T) {
	store := &mockStore{deductErr: ErrInsufficientBalance}
	svc := NewService(store)

	err := svc.Debit(context.Background(), "u1", decimal.NewFromInt(40))

	require.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestActivatePlan(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.ActivatePlan(context.Background(), "u1", PlanGolden)

	require.NoError(t, err)
	assert.Equal(t, "u1", store.setPlanUserID)
	assert.Equal(t, PlanGolden, store.setPlan)
}

func TestActivatePlanInvalid(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	err := svc.ActivatePlan(context.Background(), "u1", Plan("Bronze"))

	require.ErrorIs(t, err, ErrInvalidPlan)
	assert.Empty(t, store.setPlanUserID)
}

func TestActivatePlanAllowsSwitchingDown(t *testing.T) {
	store := &mockStore{}
	svc := NewService(store)

	require.NoError(t, svc.ActivatePlan(context.Background(), "u1", PlanDiamond))
	require.NoError(t, svc.ActivatePlan(context.Background(), "u1", PlanSilver))

	assert.Equal(t, PlanSilver, store.setPlan)
}
