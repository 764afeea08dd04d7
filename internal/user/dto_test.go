// AngelaMos | 2026
// dto_test.go

package user

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
)

func TestToUserResponse(t *testing.T) {
	plan := ledger.PlanGolden
	referredBy := "referrer@example.com"
	lastTask := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	earningDate := lastTask

	u := &User{
		ID:             "u1",
		Email:          "user@example.com",
		Role:           RoleUser,
		Balance:        decimal.NewFromInt(105),
		Plan:           &plan,
		InvitationCode: "INVABCD1234",
		ReferredBy:     &referredBy,
		LastTaskDate:   &lastTask,
		TodayEarningAmount: decimal.NullDecimal{
			Decimal: decimal.NewFromInt(2),
			Valid:   true,
		},
		TodayEarningDate: &earningDate,
	}

	resp := ToUserResponse(u)

	require.NotNil(t, resp.Plan)
	assert.Equal(t, "Golden", *resp.Plan)
	require.NotNil(t, resp.LastTaskDate)
	assert.Equal(t, "2026-08-27", *resp.LastTaskDate)
	require.NotNil(t, resp.TodayEarning)
	assert.True(t, decimal.NewFromInt(2).Equal(resp.TodayEarning.Amount))
	assert.Equal(t, "2026-08-27", resp.TodayEarning.Date)
	assert.Equal(t, "referrer@example.com", *resp.ReferredBy)
}

func TestToUserResponseFreshAccount(t *testing.T) {
	u := &User{
		ID:             "u1",
		Email:          "user@example.com",
		Role:           RoleUser,
		Balance:        decimal.Zero,
		InvitationCode: "INVABCD1234",
	}

	resp := ToUserResponse(u)

	assert.Nil(t, resp.Plan)
	assert.Nil(t, resp.ReferredBy)
	assert.Nil(t, resp.LastTaskDate)
	assert.Nil(t, resp.TodayEarning)
}

func TestListUsersParamsNormalize(t *testing.T) {
	tests := []struct {
		name         string
		params       ListUsersParams
		wantPage     int
		wantPageSize int
	}{
		{
			name:         "defaults",
			params:       ListUsersParams{},
			wantPage:     1,
			wantPageSize: 20,
		},
		{
			name:         "negative page",
			params:       ListUsersParams{Page: -3, PageSize: 10},
			wantPage:     1,
			wantPageSize: 10,
		},
		{
			name:         "oversized page size capped",
			params:       ListUsersParams{Page: 2, PageSize: 500},
			wantPage:     2,
			wantPageSize: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()
			assert.Equal(t, tt.wantPage, tt.params.Page)
			assert.Equal(t, tt.wantPageSize, tt.params.PageSize)
		})
	}
}

func TestOffset(t *testing.T) {
	p := ListUsersParams{Page: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
}
