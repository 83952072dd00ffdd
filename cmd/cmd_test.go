package cmd

import (
	"bitwise74/notes-api/config"
	"bitwise74/notes-api/db"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "notes-api dev")
}

func TestMigrateCommands(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "notes.db")
	flags := []string{"--db-driver", "sqlite", "--dsn", path, "--log-level", "error"}

	version := func() int64 {
		conn, err := db.New(&config.DatabaseConfig{Driver: "sqlite", DSN: path})
		require.NoError(t, err)
		defer db.Close(conn)

		v, err := db.Version(context.Background(), conn)
		require.NoError(t, err)
		return v
	}

	rootCmd.SetArgs(append([]string{"migrate", "up"}, flags...))
	require.NoError(t, rootCmd.Execute())
	assert.EqualValues(t, 3, version())

	rootCmd.SetArgs(append([]string{"migrate", "down"}, flags...))
	require.NoError(t, rootCmd.Execute())
	assert.EqualValues(t, 2, version())
}

func TestMigrateRejectsBadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	rootCmd.SetArgs([]string{"migrate", "up", "--db-driver", "mysql", "--dsn", "x"})
	assert.Error(t, rootCmd.Execute())
}
