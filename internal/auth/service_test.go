// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WaseemAliSargani/WealthPro-backend/internal/config"
	"github.com/WaseemAliSargani/WealthPro-backend/internal/core"
)

type mockUserProvider struct {
	byEmail     *UserInfo
	byEmailErr  error
	emailExists bool
	existsErr   error

	created      *UserInfo
	createErr    error
	createParams *CreateUserParams
}

func (m *mockUserProvider) GetByEmail(
	_ context.Context,
	_ string,
) (*UserInfo, error) {
	return m.byEmail, m.byEmailErr
}

func (m *mockUserProvider) Create(
	_ context.Context,
	params CreateUserParams,
) (*UserInfo, error) {
	m.createParams = &params
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.created != nil {
		return m.created, nil
	}
	return &UserInfo{
		ID:             uuid.New().String(),
		Email:          params.Email,
		PasswordHash:   params.PasswordHash,
		Role:           "user",
		InvitationCode: params.InvitationCode,
		ReferredBy:     params.ReferredBy,
	}, nil
}

func (m *mockUserProvider) EmailExists(
	_ context.Context,
	_ string,
) (bool, error) {
	return m.emailExists, m.existsErr
}

type mockReferrals struct {
	code    string
	codeErr error

	referrerID    string
	referrerEmail string
	referrerErr   error

	bonusCalls []string
	bonusErr   error
}

func (m *mockReferrals) NewCode(_ context.Context) (string, error) {
	if m.codeErr != nil {
		return "", m.codeErr
	}
	if m.code != "" {
		return m.code, nil
	}
	return "INVTEST1234", nil
}

func (m *mockReferrals) Referrer(
	_ context.Context,
	_ string,
) (string, string, error) {
	if m.referrerErr != nil {
		return "", "", m.referrerErr
	}
	return m.referrerID, m.referrerEmail, nil
}

func (m *mockReferrals) AwardBonus(
	_ context.Context,
	referrerID string,
) error {
	m.bonusCalls = append(m.bonusCalls, referrerID)
	return m.bonusErr
}

func testJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: time.Hour,
		Issuer:            "wealthpro",
		Audience:          "wealthpro",
	})
	require.NoError(t, err)

	return manager
}

func newTestService(
	t *testing.T,
	users *mockUserProvider,
	referrals *mockReferrals,
) *Service {
	t.Helper()
	return NewService(users, referrals, testJWTManager(t), nil)
}

func TestSignupIssuesToken(t *testing.T) {
	users := &mockUserProvider{}
	referrals := &mockReferrals{}
	svc := newTestService(t, users, referrals)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "s3cret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, "INVTEST1234", resp.User.InvitationCode)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.NotEmpty(t, resp.AccessToken)

	require.NotNil(t, users.createParams)
	assert.NotEqual(
		t,
		"s3cret-password",
		users.createParams.PasswordHash,
		"password must be stored hashed",
	)
	assert.Nil(t, users.createParams.ReferredBy)
	assert.Empty(t, referrals.bonusCalls)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := &mockUserProvider{emailExists: true}
	svc := newTestService(t, users, &mockReferrals{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "taken@example.com",
		Password: "s3cret-password",
	})

	require.ErrorIs(t, err, ErrEmailExists)
}

func TestSignupDuplicateEmailRace(t *testing.T) {
	users := &mockUserProvider{createErr: core.ErrDuplicateKey}
	svc := newTestService(t, users, &mockReferrals{})

	_, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "taken@example.com",
		Password: "s3cret-password",
	})

	require.ErrorIs(t, err, ErrEmailExists)
}

func TestSignupWithReferral(t *testing.T) {
	users := &mockUserProvider{}
	referrals := &mockReferrals{
		referrerID:    "ref-1",
		referrerEmail: "referrer@example.com",
	}
	svc := newTestService(t, users, referrals)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "s3cret-password",
		Ref:      "INVREFCODE1",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.User.ReferredBy)
	assert.Equal(t, "referrer@example.com", *resp.User.ReferredBy)
	assert.Equal(t, []string{"ref-1"}, referrals.bonusCalls)
}

func TestSignupUnknownReferralCodeIgnored(t *testing.T) {
	users := &mockUserProvider{}
	referrals := &mockReferrals{referrerErr: core.ErrNotFound}
	svc := newTestService(t, users, referrals)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "s3cret-password",
		Ref:      "INVNOPE0000",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.User.ReferredBy)
	assert.Empty(t, referrals.bonusCalls)
}

func TestSignupSurvivesBonusFailure(t *testing.T) {
	users := &mockUserProvider{}
	referrals := &mockReferrals{
		referrerID:    "ref-1",
		referrerEmail: "referrer@example.com",
		bonusErr:      context.DeadlineExceeded,
	}
	svc := newTestService(t, users, referrals)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Email:    "new@example.com",
		Password: "s3cret-password",
		Ref:      "INVREFCODE1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLogin(t *testing.T) {
	hash, err := core.HashPassword("s3cret-password")
	require.NoError(t, err)

	users := &mockUserProvider{
		byEmail: &UserInfo{
			ID:           "u1",
			Email:        "user@example.com",
			PasswordHash: hash,
			Role:         "user",
		},
	}
	svc := newTestService(t, users, &mockReferrals{})

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "s3cret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := svc.jwt.VerifyAccessToken(
		context.Background(),
		resp.AccessToken,
	)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.JTI)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := core.HashPassword("s3cret-password")
	require.NoError(t, err)

	users := &mockUserProvider{
		byEmail: &UserInfo{
			ID:           "u1",
			Email:        "user@example.com",
			PasswordHash: hash,
		},
	}
	svc := newTestService(t, users, &mockReferrals{})

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &mockUserProvider{byEmailErr: core.ErrNotFound}
	svc := newTestService(t, users, &mockReferrals{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	manager := testJWTManager(t)

	_, err := manager.VerifyAccessToken(
		context.Background(),
		"not-a-token",
	)

	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: -time.Minute,
		Issuer:            "wealthpro",
		Audience:          "wealthpro",
	})
	require.NoError(t, err)

	token, err := manager.CreateAccessToken("u1", "user")
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(context.Background(), token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}
