package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "poke")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "pokemons")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "4242", cfg.HTTPPort)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.PokeAPIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.PokeAPITimeout)
	assert.Equal(t, "5 0 * * *", cfg.CronSchedule)
	assert.False(t, cfg.S3Enabled())
	assert.Equal(t, "host=localhost user=poke password=secret dbname=pokemons port=5432 sslmode=disable", cfg.DSN())
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	_, err := Load()
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	cfg := &Config{TimeZone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.TimeZone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.TimeZone = "Nowhere/Atlantis"
	_, err = cfg.Location()
	assert.Error(t, err)
}
