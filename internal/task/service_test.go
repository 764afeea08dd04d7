// AngelaMos | 2026
// service_test.go

package task

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/user"
)

type mockUserStore struct {
	user   *user.User
	getErr error

	credited        bool
	creditedEarning decimal.Decimal
	completeErr     error
	completeCalls   int
}

func (m *mockUserStore) GetByID(
	_ context.Context,
	_ string,
) (*user.User, error) {
	return m.user, m.getErr
}

func (m *mockUserStore) CompleteDailyTask(
	_ context.Context,
	_ string,
	earning decimal.Decimal,
) (bool, error) {
	m.completeCalls++
	m.creditedEarning = earning
	if m.completeErr != nil {
		return false, m.completeErr
	}
	return m.credited, nil
}

type mockCompletions struct {
	created   []Completion
	createErr error
	history   []Completion
	listErr   error
}

func (m *mockCompletions) Create(
	_ context.Context,
	completion *Completion,
) error {
	if m.createErr != nil {
		return m.createErr
	}
	completion.CompletedAt = time.Now()
	m.created = append(m.created, *completion)
	return nil
}

func (m *mockCompletions) ListByUser(
	_ context.Context,
	_ string,
) ([]Completion, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append(m.history, m.created...), nil
}

func planUser(plan ledger.Plan, balance int64) *user.User {
	return &user.User{
		ID:      "u1",
		Email:   "user@example.com",
		Plan:    &plan,
		Balance: decimal.NewFromInt(balance),
	}
}

func TestCompleteCreditsDailyEarning(t *testing.T) {
	users := &mockUserStore{
		user:     planUser(ledger.PlanGolden, 102),
		credited: true,
	}
	completions := &mockCompletions{}
	svc := NewService(users, completions)

	result, err := svc.Complete(context.Background(), "u1")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(users.creditedEarning))
	assert.Equal(t, "Golden", result.Plan)
	assert.True(t, decimal.NewFromInt(2).Equal(result.TodayEarning))
	assert.True(t, decimal.NewFromInt(102).Equal(result.Balance))

	require.Len(t, completions.created, 1)
	assert.Equal(t, "Golden", completions.created[0].Plan)
	assert.True(t, decimal.NewFromInt(2).Equal(completions.created[0].Amount))

	require.Len(t, result.CompletedTasks, 1)
}

func TestCompleteEarningPerPlan(t *testing.T) {
	tests := []struct {
		plan ledger.Plan
		want decimal.Decimal
	}{
		{plan: ledger.PlanSilver, want: decimal.NewFromInt(1)},
		{plan: ledger.PlanGolden, want: decimal.NewFromInt(2)},
		{plan: ledger.PlanDiamond, want: decimal.NewFromFloat(3.5)},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			users := &mockUserStore{
				user:     planUser(tt.plan, 100),
				credited: true,
			}
			svc := NewService(users, &mockCompletions{})

			result, err := svc.Complete(context.Background(), "u1")

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(result.TodayEarning))
			assert.True(t, tt.want.Equal(users.creditedEarning))
		})
	}
}

func TestCompleteWithoutPlan(t *testing.T) {
	users := &mockUserStore{
		user: &user.User{ID: "u1", Email: "user@example.com"},
	}
	svc := NewService(users, &mockCompletions{})

	_, err := svc.Complete(context.Background(), "u1")

	require.ErrorIs(t, err, ErrNoPlanActivated)
	assert.Zero(t, users.completeCalls)
}

func TestCompleteTwiceSameDay(t *testing.T) {
	users := &mockUserStore{
		user:     planUser(ledger.PlanSilver, 100),
		credited: false,
	}
	completions := &mockCompletions{}
	svc := NewService(users, completions)

	_, err := svc.Complete(context.Background(), "u1")

	require.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Empty(t, completions.created)
}

func TestCompleteUserNotFound(t *testing.T) {
	users := &mockUserStore{getErr: core.ErrNotFound}
	svc := NewService(users, &mockCompletions{})

	_, err := svc.Complete(context.Background(), "u1")

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestCompleteSurvivesHistoryWriteFailure(t *testing.T) {
	users := &mockUserStore{
		user:     planUser(ledger.PlanDiamond, 100),
		credited: true,
	}
	completions := &mockCompletions{createErr: context.DeadlineExceeded}
	svc := NewService(users, completions)

	result, err := svc.Complete(context.Background(), "u1")

	// The credit landed, so the call succeeds even though the history
	// row was lost.
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(3.5).Equal(result.TodayEarning))
	assert.Empty(t, result.CompletedTasks)
}

func TestHistory(t *testing.T) {
	now := time.Now()
	completions := &mockCompletions{
		history: []Completion{
			{
				ID:          "c1",
				UserID:      "u1",
				Plan:        "Silver",
				Amount:      decimal.NewFromInt(1),
				CompletedAt: now.Add(-24 * time.Hour),
			},
			{
				ID:          "c2",
				UserID:      "u1",
				Plan:        "Golden",
				Amount:      decimal.NewFromInt(2),
				CompletedAt: now,
			},
		},
	}
	svc := NewService(&mockUserStore{}, completions)

	history, err := svc.History(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Silver", history[0].Plan)
	assert.True(t, decimal.NewFromInt(2).Equal(history[1].Amount))
}

var _ user.TaskHistory = (*Service)(nil)
