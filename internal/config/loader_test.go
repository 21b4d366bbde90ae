package config

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{}, // Empty - no config file
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "fzf", cfg.Finder.Binary)
	assert.Equal(t, "rg", cfg.Grep.Binary)
	assert.Equal(t, 64*1024, cfg.Limits.InlineListMax)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"finder": {"binary": "sk", "skim_binary": "sk"}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "sk", cfg.Finder.Binary)                 // Overridden
	assert.Equal(t, "rg", cfg.Grep.Binary)                   // Default
	assert.Equal(t, 0, cfg.Live.DebounceMs)                  // Default
	assert.Contains(t, cfg.Grep.Args, "--smart-case")        // Default list
	assert.Equal(t, int64(10*1024*1024), cfg.Limits.MaxCommandOutputSize) // Default
}

func TestLoad_EmptyConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(`{}`),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "fzf", cfg.Finder.Binary)
}

func TestLoad_EmptyGrepArgs_ReplacesDefault(t *testing.T) {
	// Empty array SHOULD replace default (user explicitly wants empty)
	configJSON := `{"grep": {"args": []}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.Grep.Args)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(`{invalid json`),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	// Can't determine home dir - gracefully fall back to defaults
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "fzf", cfg.Finder.Binary) // Default
}

func TestLoad_EmptyFinderBinary_Rejected(t *testing.T) {
	// Explicit empty string fails validation after merge
	configJSON := `{"finder": {"binary": ""}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_PopupWithoutTmux_Rejected(t *testing.T) {
	configJSON := `{"finder": {"tmux_popup": true}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_NegativeDebounce_Rejected(t *testing.T) {
	configJSON := `{"live": {"debounce_ms": -5}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "debounce_ms")
}

func TestLoad_UnknownFields_Ignored(t *testing.T) {
	configJSON := `{"finder": {"binary": "fzf"}, "unknown_field": "ignored"}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			"/home/user/.config/gofzf/config.json": []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "fzf", cfg.Finder.Binary)
}

// --- DEFAULT CONFIG TESTS ---

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Grep.Args)
	assert.Greater(t, cfg.Limits.InlineListMax, 0)
	assert.Greater(t, cfg.Limits.SpawnTimeoutSeconds, 0)
}
