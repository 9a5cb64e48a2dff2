package journal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pmxbuilder/internal/testutil"
)

func TestOpen_CreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o700), info.Mode().Perm())

	var mode string
	require.NoError(t, db.conn.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, db.conn.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	require.Equal(t, 1, fk)

	for _, table := range []string{"runs", "run_links"} {
		var name string
		err := db.conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpen_BacksUpExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	_, err = os.Stat(path + ".bak")
	require.True(t, os.IsNotExist(err), "first open must not create a backup")

	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = os.Stat(path + ".bak")
	require.NoError(t, err)
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	conn := testutil.NewTestDB(t)

	_, err := New(conn)
	require.NoError(t, err)
	_, err = New(conn)
	require.NoError(t, err)

	var version int
	require.NoError(t, conn.QueryRow(`SELECT version FROM schema_migrations`).Scan(&version))
	require.Equal(t, 1, version)
}
