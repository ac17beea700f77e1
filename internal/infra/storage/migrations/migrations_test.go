package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/estimate-scheduler/internal/infra/storage/dialect"
)

func TestUp_SQLite(t *testing.T) {
	ctx := context.Background()
	d := dialect.MustNew(dialect.SQLite)

	db, err := dialect.Open(d, dialect.SQLiteDSN(filepath.Join(t.TempDir(), "m.db"), 0))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Up(ctx, db, d, nil))
	// Повторный запуск ничего не делает
	require.NoError(t, Up(ctx, db, d, nil))

	version, err := Version(ctx, db, d)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	for _, table := range []string{"regions", "estimators", "bookings", "booking_log", "time_off"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestEmbeddedMigrationsInStep(t *testing.T) {
	pg, err := embedMigrations.ReadDir("postgres")
	require.NoError(t, err)
	lite, err := embedMigrations.ReadDir("sqlite")
	require.NoError(t, err)

	require.Equal(t, len(pg), len(lite))
	for i := range pg {
		assert.Equal(t, pg[i].Name(), lite[i].Name())
	}
}
