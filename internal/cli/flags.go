package cli

import (
	"os"
	"path/filepath"

	"codeberg.org/snonux/lingosheet/internal/batch"
	"codeberg.org/snonux/lingosheet/internal/llm"
	"codeberg.org/snonux/lingosheet/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// Mode flags
	CfgFile    string
	Language   string
	BatchFile  string
	OutputFile string
	Chat       bool
	ListModels bool
	ListJobs   bool
	Archive    bool

	// Server flags
	Addr string

	// Provider flags
	Provider string
	Model    string
	BaseURL  string

	// Batch flags
	MaxRows     int
	MaxChars    int
	Overflow    string
	Concurrency int

	// Storage flags
	HistoryDB   string
	PromptsFile string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	defaults := batch.DefaultConfig()
	return &Flags{
		Language:    translation.DefaultLanguage,
		Addr:        ":8080",
		Provider:    llm.ProviderOpenAI,
		MaxRows:     defaults.MaxRows,
		MaxChars:    defaults.MaxChars,
		Overflow:    string(defaults.Overflow),
		Concurrency: defaults.Concurrency,
		HistoryDB:   DefaultHistoryDB(),
	}
}

// StateDir returns the directory for lingosheet's persistent state
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".lingosheet")
	}
	return filepath.Join(home, ".local", "state", "lingosheet")
}

// DefaultHistoryDB returns the default job history database path
func DefaultHistoryDB() string {
	return filepath.Join(StateDir(), "history.db")
}
