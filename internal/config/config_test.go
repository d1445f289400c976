package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/spice-ledger/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, DefaultFilePath, cfg.Store.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		values   map[string]string
		wantErr  error
		name     string
		wantPath string
		wantKind string
	}{
		{
			name:     "sqlite gets its own default path",
			values:   map[string]string{"store.backend": "SQLite "},
			wantKind: BackendSQLite,
			wantPath: DefaultSQLitePath,
		},
		{
			name:     "home is expanded",
			values:   map[string]string{"store.path": "~/ledger.txt"},
			wantKind: BackendFile,
			wantPath: filepath.Join(home, "ledger.txt"),
		},
		{
			name:    "unknown backend",
			values:  map[string]string{"store.backend": "csv"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "bad log level",
			values:  map[string]string{"logging.level": "loud"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "bad log format",
			values:  map[string]string{"logging.format": "xml"},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for key, value := range tt.values {
				v.Set(key, value)
			}

			cfg, err := Load(v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, cfg.Store.Backend)
			assert.Equal(t, tt.wantPath, cfg.Store.Path)
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("LEDGER_STORE_BACKEND", "sqlite")
	t.Setenv("LEDGER_STORE_PATH", "/tmp/ledger.db")
	t.Setenv("LEDGER_LOGGING_LEVEL", "debug")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/ledger.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LEDGER_DOTENV_PROBE=from-file\nLEDGER_DOTENV_KEEP=from-file\n"), 0600))

	t.Setenv("LEDGER_DOTENV_KEEP", "from-env")
	t.Setenv("LEDGER_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("LEDGER_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "from-file", os.Getenv("LEDGER_DOTENV_PROBE"))
	assert.Equal(t, "from-env", os.Getenv("LEDGER_DOTENV_KEEP"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("LEDGER_TEST_DIR", "/data")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "bare tilde", input: "~", expected: home},
		{name: "tilde prefix", input: "~/x/y.txt", expected: filepath.Join(home, "x", "y.txt")},
		{name: "env var", input: "$LEDGER_TEST_DIR/t.txt", expected: "/data/t.txt"},
		{name: "plain", input: "relative/t.txt", expected: "relative/t.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandPath(tt.input))
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}

	t.Run("no credentials", func(t *testing.T) {
		_, err := LoadSheetsConfig(newViper())
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-client")
		t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")
		t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "env-token")

		cfg, err := LoadSheetsConfig(newViper())
		require.NoError(t, err)
		assert.Equal(t, "env-client", cfg.ClientID)
		assert.Equal(t, "Budget Ledger", cfg.SpreadsheetName)
		assert.Equal(t, "UTC", cfg.TimeZone)
	})

	t.Run("viper wins over environment", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/env/key.json")

		v := newViper()
		v.Set("sheets.service_account_path", "/config/key.json")
		v.Set("sheets.spreadsheet_name", "Household")
		v.Set("sheets.time_zone", "Europe/Berlin")

		cfg, err := LoadSheetsConfig(v)
		require.NoError(t, err)
		assert.Equal(t, "/config/key.json", cfg.ServiceAccountPath)
		assert.Equal(t, "Household", cfg.SpreadsheetName)
		assert.Equal(t, "Europe/Berlin", cfg.TimeZone)
	})
}
