// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already registered")
)

const blacklistPrefix = "blacklist:"

// UserProvider is implemented by the user package.
type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(ctx context.Context, params CreateUserParams) (*UserInfo, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ReferralService issues invitation codes and settles signup bonuses.
type ReferralService interface {
	NewCode(ctx context.Context) (string, error)
	Referrer(ctx context.Context, code string) (id, email string, err error)
	AwardBonus(ctx context.Context, referrerID string) error
}

type Service struct {
	users     UserProvider
	referrals ReferralService
	jwt       *JWTManager
	redis     *redis.Client
}

func NewService(
	users UserProvider,
	referrals ReferralService,
	jwtManager *JWTManager,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:     users,
		referrals: referrals,
		jwt:       jwtManager,
		redis:     redisClient,
	}
}

// Signup creates the account with a fresh invitation code and, when a
// known referral code was supplied, records the referrer and credits
// their bonus. An unknown referral code is ignored rather than failing
// the signup.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (*AuthResponse, error) {
	exists, err := s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("signup: %w", ErrEmailExists)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	code, err := s.referrals.NewCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	var referredBy *string
	var referrerID string
	if req.Ref != "" {
		id, email, refErr := s.referrals.Referrer(ctx, req.Ref)
		switch {
		case refErr == nil:
			referrerID = id
			referredBy = &email
		case errors.Is(refErr, core.ErrNotFound):
			slog.Info("unknown referral code ignored", "code", req.Ref)
		default:
			return nil, fmt.Errorf("signup: %w", refErr)
		}
	}

	user, err := s.users.Create(ctx, CreateUserParams{
		Email:          req.Email,
		PasswordHash:   passwordHash,
		InvitationCode: code,
		ReferredBy:     referredBy,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("signup: %w", ErrEmailExists)
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	if referrerID != "" {
		if bonusErr := s.referrals.AwardBonus(ctx, referrerID); bonusErr != nil {
			// The account exists; a failed bonus credit must not undo
			// the signup.
			slog.Error("referral bonus credit failed",
				"referrer_id", referrerID,
				"new_user_id", user.ID,
				"error", bonusErr,
			)
		}
	}

	return s.buildAuthResponse(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Burn the same hashing cost as a real verification.
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	valid, _, err := core.VerifyPasswordTimingSafe(
		req.Password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	return s.buildAuthResponse(user)
}

// Logout blacklists the presented token's JTI until its natural expiry.
func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	key := blacklistPrefix + claims.JTI
	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

// VerifyAccessToken validates the signature and claims, then rejects
// tokens revoked through logout.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.redis.Exists(ctx, blacklistPrefix+claims.JTI).Result()
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked > 0 {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) buildAuthResponse(user *UserInfo) (*AuthResponse, error) {
	token, err := s.jwt.CreateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.AccessTokenTTL().Seconds()),
	}, nil
}

var _ middleware.TokenVerifier = (*Service)(nil)
