package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.Finder.Binary == "" {
		errs = append(errs, "finder.binary must not be empty")
	}
	if c.Finder.SkimBinary == "" {
		errs = append(errs, "finder.skim_binary must not be empty")
	}
	if c.Finder.TmuxPopup && !c.Finder.Tmux {
		errs = append(errs, "finder.tmux_popup requires finder.tmux")
	}

	if c.Live.DebounceMs < 0 {
		errs = append(errs, "live.debounce_ms must be >= 0")
	}

	if c.Limits.InlineListMax < 1 {
		errs = append(errs, "limits.inline_list_max must be >= 1")
	}
	if c.Limits.MaxCommandOutputSize < 1 {
		errs = append(errs, "limits.max_command_output_size must be >= 1")
	}
	if c.Limits.SpawnTimeoutSeconds < 1 {
		errs = append(errs, "limits.spawn_timeout_seconds must be >= 1")
	}

	if c.Grep.Binary == "" {
		errs = append(errs, "grep.binary must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
