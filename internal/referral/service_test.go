// AngelaMos | 2026
// service_test.go

package referral

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
)

type mockUserStore struct {
	mockCodeStore
	referrerID    string
	referrerEmail string
	referrerErr   error
}

func (m *mockUserStore) Referrer(
	_ context.Context,
	_ string,
) (string, string, error) {
	if m.referrerErr != nil {
		return "", "", m.referrerErr
	}
	return m.referrerID, m.referrerEmail, nil
}

type mockLedger struct {
	creditedUserID string
	creditedAmount decimal.Decimal
	creditErr      error
}

func (m *mockLedger) Credit(
	_ context.Context,
	userID string,
	amount decimal.Decimal,
) error {
	m.creditedUserID = userID
	m.creditedAmount = amount
	return m.creditErr
}

func newTestService(
	users *mockUserStore,
	ledger *mockLedger,
) *Service {
	gen := NewCodeGenerator(users, "INV", 8, 5)
	return NewService(users, ledger, gen, decimal.NewFromInt(5))
}

func TestReferrerFound(t *testing.T) {
	users := &mockUserStore{
		referrerID:    "ref-1",
		referrerEmail: "referrer@example.com",
	}
	svc := newTestService(users, &mockLedger{})

	id, email, err := svc.Referrer(context.Background(), "INVABCD1234")

	require.NoError(t, err)
	assert.Equal(t, "ref-1", id)
	assert.Equal(t, "referrer@example.com", email)
}

func TestReferrerUnknownCode(t *testing.T) {
	users := &mockUserStore{
		referrerErr: fmt.Errorf("lookup: %w", core.ErrNotFound),
	}
	svc := newTestService(users, &mockLedger{})

	_, _, err := svc.Referrer(context.Background(), "INVNOPE0000")

	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestAwardBonus(t *testing.T) {
	ledger := &mockLedger{}
	svc := newTestService(&mockUserStore{}, ledger)

	err := svc.AwardBonus(context.Background(), "ref-1")

	require.NoError(t, err)
	assert.Equal(t, "ref-1", ledger.creditedUserID)
	assert.True(t, decimal.NewFromInt(5).Equal(ledger.creditedAmount))
}

func TestNewCodeUsesGenerator(t *testing.T) {
	users := &mockUserStore{}
	svc := newTestService(users, &mockLedger{})

	code, err := svc.NewCode(context.Background())

	require.NoError(t, err)
	assert.Len(t, code, 11)
}
