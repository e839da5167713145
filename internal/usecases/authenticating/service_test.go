package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fund-kpi-api/internal/config"
	"github.com/vfg2006/fund-kpi-api/internal/domain"
	"github.com/vfg2006/fund-kpi-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{Auth: config.Auth{
		Secret:               "test-secret",
		OperatorEmail:        "Ops@Fund.io",
		OperatorPasswordHash: string(hash),
		TokenTTL:             time.Hour,
	}}

	svc := NewService(cfg).(*Service)
	svc.now = func() time.Time { return time.Date(2020, time.May, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Login(" ops@fund.io ", "s3nha-forte")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, time.Date(2020, time.May, 1, 11, 0, 0, 0, time.UTC).Unix(), resp.ExpiresAt)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ops@fund.io", claims.OperatorEmail)
	assert.Equal(t, domain.RoleOperator, claims.Role)
}

func TestLogin_Failures(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		email    string
		password string
		code     string
		base     error
	}{
		{"campos vazios", "", "", apiErrors.ErrMissingRequiredData, ErrMissingRequiredData},
		{"email errado", "other@fund.io", "s3nha-forte", apiErrors.ErrInvalidCredentials, ErrInvalidCredentials},
		{"senha errada", "ops@fund.io", "errada", apiErrors.ErrInvalidCredentials, ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.email, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.base)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.code, authErr.Code)
		})
	}
}

func TestLogin_OperatorNotConfigured(t *testing.T) {
	svc := NewService(&config.Config{}).(*Service)

	_, err := svc.Login("ops@fund.io", "x")
	assert.ErrorIs(t, err, ErrOperatorNotConfigured)
	assert.True(t, IsCredentialsError(err))
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.Login("ops@fund.io", "s3nha-forte")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2020, time.May, 1, 12, 0, 0, 0, time.UTC) }

	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.True(t, IsAuthorizationError(err))
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := generateJWT("ops@fund.io", svc.now().Add(time.Hour), "another-secret")
	require.NoError(t, err)
	_, err = svc.ValidateToken(other)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_WrongRole(t *testing.T) {
	svc := newTestService(t)

	claims := domain.Claims{
		OperatorEmail: "viewer@fund.io",
		Role:          "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(svc.now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInsufficientPrivilege)
}
