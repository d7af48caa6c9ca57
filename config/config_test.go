package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// clearEnv blanks a variable for the test while keeping t.Setenv's restore
// hook; godotenv refuses to override variables that merely exist, so tests
// that read from a file need them fully unset
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func pointEnvFileAt(t *testing.T, contents string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
	t.Setenv("ENV_FILE", path)
}

func TestLoadRequiresMongoTriple(t *testing.T) {
	clearEnv(t, "MONGO_URI", "DB_NAME", "COLLECTION_NAME")
	pointEnvFileAt(t, "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "MONGO_URI")
	require.Contains(t, err.Error(), "DB_NAME")
	require.Contains(t, err.Error(), "COLLECTION_NAME")
}

func TestLoadReportsOnlyTheMissingVariable(t *testing.T) {
	clearEnv(t, "MONGO_URI", "DB_NAME", "COLLECTION_NAME")
	pointEnvFileAt(t, "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "africa_energy")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "COLLECTION_NAME")
	require.NotContains(t, err.Error(), "MONGO_URI,")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t,
		"MONGO_URI", "DB_NAME", "COLLECTION_NAME", "POSTGRES_URL",
		"AEP_BASE_URL", "HEADLESS", "MAX_CONCURRENCY", "RATE_LIMIT_DELAY_MS",
		"MAX_RETRIES", "PAGE_TIMEOUT_S", "RENDER_WAIT_S",
		"CSV_FILE_PATH", "REPORT_PATH", "DEBUG")
	pointEnvFileAt(t, "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "africa_energy")
	t.Setenv("COLLECTION_NAME", "indicators")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://africa-energy-portal.org/country/", cfg.BaseURL)
	require.Empty(t, cfg.PostgresURL)
	require.True(t, cfg.Headless)
	require.Equal(t, 1, cfg.MaxConcurrency)
	require.Equal(t, 2000, cfg.RateLimitDelay)
	require.Equal(t, 2, cfg.MaxRetries)
	require.Equal(t, 60, cfg.PageTimeout)
	require.Equal(t, 6, cfg.RenderWait)
	require.Equal(t, "output/energy_data_backup.csv", cfg.CSVFilePath)
	require.Equal(t, "output/validation_report.json", cfg.ReportPath)
	require.False(t, cfg.Debug)
}

func TestLoadReadsEnvFile(t *testing.T) {
	clearEnv(t, "MONGO_URI", "DB_NAME", "COLLECTION_NAME", "MAX_CONCURRENCY")
	pointEnvFileAt(t, `MONGO_URI=mongodb://filehost:27017
DB_NAME=africa_energy
COLLECTION_NAME=indicators
MAX_CONCURRENCY=3
`)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "mongodb://filehost:27017", cfg.MongoURI)
	require.Equal(t, 3, cfg.MaxConcurrency)
}

func TestLoadClampsAndCoerces(t *testing.T) {
	clearEnv(t, "MONGO_URI", "DB_NAME", "COLLECTION_NAME")
	pointEnvFileAt(t, "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "africa_energy")
	t.Setenv("COLLECTION_NAME", "indicators")
	t.Setenv("MAX_CONCURRENCY", "0")
	t.Setenv("RATE_LIMIT_DELAY_MS", "not-a-number")
	t.Setenv("HEADLESS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 1, cfg.MaxConcurrency, "zero workers make no sense")
	require.Equal(t, 2000, cfg.RateLimitDelay, "garbage falls back to the default")
	require.False(t, cfg.Headless)
}
