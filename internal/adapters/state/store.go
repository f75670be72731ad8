package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lazymesh/lazymesh/internal/core"
	_ "modernc.org/sqlite"
)

// Store provides read-only access to the environments recorded in a
// SQLMesh state database. The engine owns the schema and all writes; the UI
// only ever reads the `_environments` table, whose `snapshots` column holds
// a JSON array of snapshot descriptors.
type Store struct {
	db *sql.DB
}

// Open opens the state database at path in read-only mode.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, core.ErrNotFound("state database", path).WithCause(err)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro&_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// snapshotRecord mirrors the fields we need from the engine's snapshot id
// JSON. Unknown fields are ignored.
type snapshotRecord struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// ListEnvironments returns every environment in the state store, sorted by
// name.
func (s *Store) ListEnvironments(ctx context.Context) ([]core.Environment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, snapshots FROM _environments ORDER BY name`)
	if err != nil {
		return nil, core.ErrExecution(core.CodeStateStore, "listing environments").WithCause(err)
	}
	defer rows.Close()

	var envs []core.Environment
	for rows.Next() {
		var name string
		var snapshotsJSON []byte
		if err := rows.Scan(&name, &snapshotsJSON); err != nil {
			return nil, core.ErrExecution(core.CodeStateStore, "scanning environment row").WithCause(err)
		}
		snaps, err := parseSnapshots(snapshotsJSON)
		if err != nil {
			return nil, core.ErrExecution(core.CodeStateStore,
				fmt.Sprintf("decoding snapshots for environment %q", name)).WithCause(err)
		}
		envs = append(envs, core.Environment{Name: name, Snapshots: snaps})
	}
	if err := rows.Err(); err != nil {
		return nil, core.ErrExecution(core.CodeStateStore, "iterating environments").WithCause(err)
	}

	return envs, nil
}

// GetEnvironment returns one environment by name.
func (s *Store) GetEnvironment(ctx context.Context, name string) (*core.Environment, error) {
	var snapshotsJSON []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshots FROM _environments WHERE name = ?`, name).Scan(&snapshotsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound("environment", name)
	}
	if err != nil {
		return nil, core.ErrExecution(core.CodeStateStore, "loading environment").WithCause(err)
	}

	snaps, err := parseSnapshots(snapshotsJSON)
	if err != nil {
		return nil, core.ErrExecution(core.CodeStateStore,
			fmt.Sprintf("decoding snapshots for environment %q", name)).WithCause(err)
	}

	return &core.Environment{Name: name, Snapshots: snaps}, nil
}

func parseSnapshots(data []byte) ([]core.Snapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	snaps := make([]core.Snapshot, 0, len(records))
	for _, r := range records {
		snaps = append(snaps, core.Snapshot{Name: r.Name, Identifier: r.Identifier})
	}
	return snaps, nil
}
