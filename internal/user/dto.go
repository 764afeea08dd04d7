// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserResponse struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Role           string          `json:"role"`
	Balance        decimal.Decimal `json:"balance"`
	Plan           *string         `json:"plan"`
	InvitationCode string          `json:"invitation_code"`
	ReferredBy     *string         `json:"referred_by"`
	LastTaskDate   *string         `json:"last_task_date"`
	TodayEarning   *TodayEarning   `json:"today_earning,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type TodayEarning struct {
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

// ProfileResponse is the /users/me projection, the user plus their task
// history.
type ProfileResponse struct {
	UserResponse
	CompletedTasks []CompletedTask `json:"completed_tasks"`
}

// CompletedTask is one daily task credit, oldest first in listings.
type CompletedTask struct {
	Plan        string          `json:"plan"`
	Amount      decimal.Decimal `json:"amount"`
	CompletedAt time.Time       `json:"completed_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
	Plan     string `json:"plan"`
}

func (p *ListUsersParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	resp := UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Role:           u.Role,
		Balance:        u.Balance,
		InvitationCode: u.InvitationCode,
		ReferredBy:     u.ReferredBy,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}

	if u.Plan != nil {
		plan := u.Plan.String()
		resp.Plan = &plan
	}

	if u.LastTaskDate != nil {
		date := u.LastTaskDate.Format(time.DateOnly)
		resp.LastTaskDate = &date
	}

	if u.TodayEarningAmount.Valid && u.TodayEarningDate != nil {
		resp.TodayEarning = &TodayEarning{
			Amount: u.TodayEarningAmount.Decimal,
			Date:   u.TodayEarningDate.Format(time.DateOnly),
		}
	}

	return resp
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
