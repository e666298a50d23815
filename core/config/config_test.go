package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvOnly(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("PORT", "9090")

	var cfg Config
	require.NoError(t, Load("", &cfg, &cfg))
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, DefaultServiceName, cfg.HTTP.Service)
}

func TestLoadMissingTokenIsFatal(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	var cfg Config
	err := Load("", &cfg, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("telegram:\n  token: from-file\n  run_mode: polling\nhttp:\n  port: 7000\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))
	t.Setenv("BOT_TOKEN", "from-env")

	var cfg Config
	require.NoError(t, Load(path, &cfg, &cfg))
	assert.Equal(t, "from-env", cfg.Telegram.Token)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "x")
	var cfg Config
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg, &cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "webhook without url",
			cfg:     Config{Telegram: TelegramConfig{Token: "t", RunMode: "webhook"}},
			wantErr: "webhook.url is required",
		},
		{
			name:    "unknown run mode",
			cfg:     Config{Telegram: TelegramConfig{Token: "t", RunMode: "push"}},
			wantErr: "invalid telegram.run_mode",
		},
		{
			name:    "port out of range",
			cfg:     Config{Telegram: TelegramConfig{Token: "t"}, HTTP: HTTPConfig{Port: 70000}},
			wantErr: "invalid http port",
		},
		{
			name: "webhook port collides with liveness port",
			cfg: Config{
				Telegram: TelegramConfig{Token: "t", RunMode: "webhook"},
				Webhook:  WebhookConfig{URL: "https://example.org/hook", Port: 8000},
			},
			wantErr: "must differ",
		},
		{
			name:    "bad rate limit exclusion",
			cfg:     Config{Telegram: TelegramConfig{Token: "t"}, RateLimit: RateLimitConfig{ExcludeUpdates: []string{"poll"}}},
			wantErr: "invalid rate_limit.exclude_updates",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Normalize(&tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeLowercasesExclusions(t *testing.T) {
	cfg := Config{
		Telegram:  TelegramConfig{Token: "t"},
		RateLimit: RateLimitConfig{ExcludeUpdates: []string{" Callback "}},
	}
	require.NoError(t, Normalize(&cfg))
	assert.Equal(t, []string{"callback"}, cfg.RateLimit.ExcludeUpdates)
}

type appConfig struct {
	Config `yaml:",inline"`

	Extra struct {
		Name string `yaml:"name" envconfig:"APP_EXTRA_NAME"`
	} `yaml:"extra"`
}

func TestLoadEmbeddedAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telegram:\n  token: file\nextra:\n  name: lesson\n"), 0o644))
	t.Setenv("BOT_TOKEN", "")
	require.NoError(t, os.Unsetenv("BOT_TOKEN"))

	var cfg appConfig
	require.NoError(t, Load(path, &cfg, &cfg.Config))
	assert.Equal(t, "file", cfg.Telegram.Token)
	assert.Equal(t, "lesson", cfg.Extra.Name)
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)

	assert.Error(t, Load("", &cfg, nil))
}
