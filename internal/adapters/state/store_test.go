package state

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazymesh/lazymesh/internal/core"
)

// newStateDB creates a throwaway state database mimicking the engine's
// `_environments` schema.
func newStateDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE _environments (
		name TEXT PRIMARY KEY,
		snapshots TEXT NOT NULL
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO _environments (name, snapshots) VALUES
		('prod', '[{"name":"\"db\".\"orders\"","identifier":"abc123","version":"v1"},{"name":"\"db\".\"customers\"","identifier":"def456"}]'),
		('staging', '[{"name":"\"db\".\"orders\"","identifier":"abc999"}]'),
		('empty', '[]')`)
	require.NoError(t, err)

	return path
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))
}

func TestListEnvironments(t *testing.T) {
	store, err := Open(newStateDB(t))
	require.NoError(t, err)
	defer store.Close()

	envs, err := store.ListEnvironments(context.Background())
	require.NoError(t, err)

	require.Len(t, envs, 3)
	// Sorted by name.
	assert.Equal(t, "empty", envs[0].Name)
	assert.Equal(t, "prod", envs[1].Name)
	assert.Equal(t, "staging", envs[2].Name)

	prod := envs[1]
	require.Len(t, prod.Snapshots, 2)
	assert.Equal(t, `"db"."orders"`, prod.Snapshots[0].Name)
	assert.Equal(t, "abc123", prod.Snapshots[0].Identifier)
	assert.Empty(t, envs[0].Snapshots)
}

func TestGetEnvironment(t *testing.T) {
	store, err := Open(newStateDB(t))
	require.NoError(t, err)
	defer store.Close()

	env, err := store.GetEnvironment(context.Background(), "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging", env.Name)
	require.Len(t, env.Snapshots, 1)
	assert.Equal(t, "abc999", env.Snapshots[0].Identifier)
}

func TestGetEnvironment_NotFound(t *testing.T) {
	store, err := Open(newStateDB(t))
	require.NoError(t, err)
	defer store.Close()

	_, err = store.GetEnvironment(context.Background(), "ghost")
	assert.True(t, core.IsCategory(err, core.ErrCatNotFound))
}

func TestParseSnapshots_Malformed(t *testing.T) {
	_, err := parseSnapshots([]byte(`{"not":"an array"}`))
	assert.Error(t, err)

	snaps, err := parseSnapshots(nil)
	require.NoError(t, err)
	assert.Nil(t, snaps)
}
