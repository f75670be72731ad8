package core

// DefaultEnvironment is the environment assumed active when the user has not
// selected one.
const DefaultEnvironment = "prod"

// Environment is a named deployment target tracked by the state store,
// together with the snapshots recorded for it. The UI treats it as a
// read-only, transient cache: repopulated on every fetch, never written back.
type Environment struct {
	Name      string
	Snapshots []Snapshot
}

// Snapshot is a versioned unit of a transformation model as recorded in an
// environment.
type Snapshot struct {
	Name       string
	Identifier string
}
