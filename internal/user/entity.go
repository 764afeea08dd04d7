// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/ledger"
)

type User struct {
	ID                 string              `db:"id"`
	Email              string              `db:"email"`
	PasswordHash       string              `db:"password_hash"`
	Role               string              `db:"role"`
	Balance            decimal.Decimal     `db:"balance"`
	Plan               *ledger.Plan        `db:"plan"`
	InvitationCode     string              `db:"invitation_code"`
	ReferredBy         *string             `db:"referred_by"`
	LastTaskDate       *time.Time          `db:"last_task_date"`
	TodayEarningAmount decimal.NullDecimal `db:"today_earning_amount"`
	TodayEarningDate   *time.Time          `db:"today_earning_date"`
	CreatedAt          time.Time           `db:"created_at"`
	UpdatedAt          time.Time           `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPlan reports whether a plan deposit has been approved for this user.
func (u *User) HasPlan() bool {
	return u.Plan != nil && u.Plan.Valid()
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
