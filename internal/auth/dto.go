// AngelaMos | 2026
// dto.go

package auth

import (
	"github.com/shopspring/decimal"
)

type SignupRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Ref      string `json:"ref"      validate:"omitempty,max=32"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the account projection auth works with, provided by the
// user package.
type UserInfo struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	PasswordHash   string          `json:"-"`
	Role           string          `json:"role"`
	Balance        decimal.Decimal `json:"balance"`
	Plan           *string         `json:"plan"`
	InvitationCode string          `json:"invitation_code"`
	ReferredBy     *string         `json:"referred_by"`
}

type CreateUserParams struct {
	Email          string
	PasswordHash   string
	InvitationCode string
	ReferredBy     *string
}

type AuthResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
}
