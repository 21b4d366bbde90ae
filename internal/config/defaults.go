package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Finder Finder `json:"finder"`
	Live   Live   `json:"live"`
	Limits Limits `json:"limits"`
	Grep   Grep   `json:"grep"`
}

type Finder struct {
	// Binary is the primary finder binary (fzf dialect).
	Binary string `json:"binary"` // Default: "fzf"
	// SkimBinary is the secondary dialect binary, used when Binary
	// resolves to it or the caller opts in.
	SkimBinary string `json:"skim_binary"` // Default: "sk"
	// Tmux runs the finder through fzf-tmux when set.
	Tmux bool `json:"tmux"`
	// TmuxPopup selects the popup (-p) mode of fzf-tmux.
	TmuxPopup bool `json:"tmux_popup"`
	// TmuxArgs are extra fzf-tmux wrapper arguments, prepended verbatim.
	TmuxArgs []string `json:"tmux_args"`
}

type Live struct {
	// DebounceMs is prepended as a sleep before live reload commands.
	// Zero disables the debounce.
	DebounceMs int `json:"debounce_ms"` // Default: 0
	// ExecEmptyQuery runs the full unfiltered command on an empty query
	// instead of suppressing output.
	ExecEmptyQuery bool `json:"exec_empty_query"`
}

type Limits struct {
	// InlineListMax is the byte threshold above which a static list is
	// materialized to a temp file instead of embedded inline.
	InlineListMax int `json:"inline_list_max"` // Default: 65536
	// MaxCommandOutputSize caps captured helper-process output.
	MaxCommandOutputSize int64 `json:"max_command_output_size"` // Default: 10 * 1024 * 1024 (10MB)
	// SpawnTimeoutSeconds bounds helper-process shutdown on cancel.
	SpawnTimeoutSeconds int `json:"spawn_timeout_seconds"` // Default: 600
}

type Grep struct {
	// Binary is the external search tool driven by the grep pickers.
	Binary string `json:"binary"` // Default: "rg"
	// ConfigPath is exported as RIPGREP_CONFIG_PATH for every rg spawn.
	ConfigPath string `json:"config_path"`
	// Args are the base arguments for grep invocations.
	Args []string `json:"args"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Finder: Finder{
			Binary:     "fzf",
			SkimBinary: "sk",
		},
		Live: Live{
			DebounceMs:     0,
			ExecEmptyQuery: false,
		},
		Limits: Limits{
			InlineListMax:        64 * 1024,
			MaxCommandOutputSize: 10 * 1024 * 1024,
			SpawnTimeoutSeconds:  600,
		},
		Grep: Grep{
			Binary: "rg",
			Args:   []string{"--column", "--line-number", "--no-heading", "--color=always", "--smart-case"},
		},
	}
}
