package config

// Config represents the full application configuration.
type Config struct {
	Diff      DiffConfig      `yaml:"diff"`
	Enumerate EnumerateConfig `yaml:"enumerate"`
	Git       GitConfig       `yaml:"git"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DiffConfig tunes patch construction. The window sizes are explicit
// parameters with documented defaults rather than process-wide state.
type DiffConfig struct {
	// SurroundingContext is the number of unchanged lines kept around each
	// change hunk when condensing. Default 5.
	SurroundingContext int `yaml:"surroundingContext"`
	// MinContextLines is the minimum reviewer-selection width; narrower
	// selections widen to the whole file. Default 5.
	MinContextLines int `yaml:"minContextLines"`
	// Condense enables collapsing of long unchanged runs.
	Condense bool `yaml:"condense"`
}

// EnumerateConfig tunes the change-set enumerator.
type EnumerateConfig struct {
	// Workers bounds the parallel per-path fan-out; 1 means serial.
	Workers int `yaml:"workers"`
	// MaxMatrixCells caps the edit-distance matrix size per file pair.
	// Oversized pairs are skipped and reported. 0 disables the cap.
	MaxMatrixCells int `yaml:"maxMatrixCells"`
}

// GitConfig locates the repository the local provider reads from.
type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // human, json
}
