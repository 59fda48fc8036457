package auth

import (
	"testing"
	"time"

	"burgerhub/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth.AccessTokenTTL = ttl
	cfg.Env.ServiceName = "burgerhub"

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing", time.Hour))
	require.NoError(t, err)

	customerID := uuid.New()
	token, err := tokenService.GenerateToken(customerID, []string{"customer"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokenService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, customerID, claims.CustomerID)
	assert.Equal(t, customerID.String(), claims.Subject)
	assert.Equal(t, []string{"customer"}, claims.Roles)
	assert.Equal(t, "burgerhub", claims.Issuer)
	assert.Equal(t, time.Hour, tokenService.TokenDuration())
}

func TestJWTService_MissingSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig("", time.Hour))
	assert.Error(t, err)

	_, err = NewJWTService(nil)
	assert.Error(t, err)
}

func TestJWTService_DefaultTTL(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("secret", 0))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, tokenService.TokenDuration())
}

func TestJWTService_RejectsInvalidTokens(t *testing.T) {
	tokenService, err := NewJWTService(newTestConfig("secret-one", time.Hour))
	require.NoError(t, err)
	otherService, err := NewJWTService(newTestConfig("secret-two", time.Hour))
	require.NoError(t, err)

	foreign, err := otherService.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "signed with another secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokenService.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	ts, err := NewJWTService(newTestConfig("secret", time.Minute))
	require.NoError(t, err)

	svc, ok := ts.(*jwtService)
	require.True(t, ok)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateToken(uuid.New(), nil)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	ts, err := NewJWTService(newTestConfig("secret", time.Minute))
	require.NoError(t, err)

	claims := jwt.MapClaims{"cid": uuid.NewString(), "exp": time.Now().Add(time.Hour).Unix()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ts.ValidateToken(unsigned)
	assert.Error(t, err)
}
