package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"assetdb/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteDSN(t *testing.T) string {
	return "file:" + filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on&_busy_timeout=5000"
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "x", Options{})
	assert.EqualError(t, err, "unsupported database driver: oracle")
}

func TestConnectAndMigrate(t *testing.T) {
	d, err := Connect(context.Background(), "sqlite", sqliteDSN(t), Options{MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(d) })

	require.NoError(t, Migrate(d))
	// повторная миграция не должна падать
	require.NoError(t, Migrate(d))

	for _, table := range []string{"sites", "locations", "hardware", "network_interfaces", "switch_connections", "users"} {
		assert.True(t, d.Migrator().HasTable(table), table)
	}
	assert.True(t, d.Migrator().HasIndex("locations", "idx_locations_rack"))
}

func TestConnectRetriesOnceThenFails(t *testing.T) {
	old := RetryDelay
	RetryDelay = 10 * time.Millisecond
	t.Cleanup(func() { RetryDelay = old })

	dsn := "file:" + filepath.Join(t.TempDir(), "missing", "dir", "x.db")
	start := time.Now()
	_, err := Connect(context.Background(), "sqlite", dsn, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unreachable")
	assert.GreaterOrEqual(t, time.Since(start), RetryDelay)
}

func TestClassifySQLiteConstraints(t *testing.T) {
	d, err := Open("sqlite", sqliteDSN(t), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(d) })
	require.NoError(t, Migrate(d))

	require.NoError(t, d.Create(&models.User{Username: "admin", PasswordHash: "x"}).Error)
	err = d.Create(&models.User{Username: "admin", PasswordHash: "y"}).Error
	kind, detail, ok := Classify(err)
	require.True(t, ok)
	assert.Equal(t, KindDuplicate, kind)
	assert.NotEmpty(t, detail)
	assert.True(t, IsDuplicate(err))

	err = d.Create(&models.Location{SiteID: 999, Room: "A", Rack: "R1"}).Error
	kind, _, ok = Classify(err)
	require.True(t, ok)
	assert.Equal(t, KindForeignKey, kind)

	_, _, ok = Classify(assert.AnError)
	assert.False(t, ok)
}
