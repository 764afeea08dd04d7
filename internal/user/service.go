// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/auth"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	params auth.CreateUserParams,
) (*auth.UserInfo, error) {
	user := &User{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(params.Email),
		PasswordHash:   params.PasswordHash,
		Role:           RoleUser,
		Balance:        decimal.Zero,
		InvitationCode: params.InvitationCode,
		ReferredBy:     params.ReferredBy,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(email))
}

// CodeExists reports whether an invitation code is already taken.
func (s *Service) CodeExists(ctx context.Context, code string) (bool, error) {
	return s.repo.CodeExists(ctx, code)
}

// Referrer resolves an invitation code to its owner.
func (s *Service) Referrer(
	ctx context.Context,
	code string,
) (string, string, error) {
	user, err := s.repo.GetByInvitationCode(ctx, code)
	if err != nil {
		return "", "", err
	}

	return user.ID, user.Email, nil
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	return s.repo.List(ctx, params)
}

func toUserInfo(u *User) *auth.UserInfo {
	info := &auth.UserInfo{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Role:           u.Role,
		Balance:        u.Balance,
		InvitationCode: u.InvitationCode,
		ReferredBy:     u.ReferredBy,
	}

	if u.Plan != nil {
		plan := u.Plan.String()
		info.Plan = &plan
	}

	return info
}

var _ auth.UserProvider = (*Service)(nil)
