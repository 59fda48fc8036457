package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"secretKey": map[string]any{
			"access": "",
			"admin":  "",
		},
		"cart": map[string]any{
			"pricing": "legacy",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "SECRETKEY_ADMIN", want: "secretKey.admin"},
		{envKey: "CART_PRICING", want: "cart.pricing"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestApplyDefaults_FillsMissingValues(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "legacy", cfg.Cart.Pricing)
	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultMinPasswordLength, cfg.Auth.MinPasswordLength)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.Database.Driver = "sqlite"
		cfg.Database.SQLitePath = "test.db"
		cfg.SecretKey.Access = "secret"

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres without section", mutate: func(cfg *Config) { cfg.Database.Driver = "postgres" }, wantErr: "postgres section"},
		{name: "url driver without url", mutate: func(cfg *Config) { cfg.Database.Driver = "postgres-url" }, wantErr: "database.url"},
		{name: "unknown driver", mutate: func(cfg *Config) { cfg.Database.Driver = "mysql" }, wantErr: "unknown database driver"},
		{name: "unknown pricing", mutate: func(cfg *Config) { cfg.Cart.Pricing = "free" }, wantErr: "unknown cart pricing"},
		{name: "missing access secret", mutate: func(cfg *Config) { cfg.SecretKey.Access = "" }, wantErr: "secretKey.access"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
