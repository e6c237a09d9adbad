package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestStore erstellt eine In-Memory-SQLite-Datenbank mit migriertem Schema.
func setupTestStore(t *testing.T) *PokemonStore {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to create test database")

	// Jede neue Verbindung wäre eine eigene, leere :memory:-Datenbank.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	store := NewPokemonStore(db, zap.NewNop())
	require.NoError(t, store.Migrate(), "Failed to migrate test database")
	return store
}
