// Package protocol holds constants shared by the ironlung binaries and
// packages: state directory layout, file names, and the activity schema.
package protocol

// Directory and path constants used throughout ironlung.
const (
	// IronlungDir is the user-level state directory (e.g., ~/.ironlung).
	IronlungDir = ".ironlung"

	// LogsDir holds log files under the state directory.
	LogsDir = "logs"

	// DopamineStateFile is the persisted streak/achievement snapshot.
	DopamineStateFile = "dopamine_state.json"

	// SessionStateFile is the crash-recovery snapshot of the active session.
	SessionStateFile = "session_state.json"

	// ActivityDBFile is the SQLite activity log.
	ActivityDBFile = "ironlung.db"

	// ConfigFile is the TOML settings file.
	ConfigFile = "config.toml"

	// PaletteFile lists user-defined palette shortcuts.
	PaletteFile = "palette.yaml"
)
