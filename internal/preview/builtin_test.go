package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_CmdLine(t *testing.T) {
	b := &Builtin{SelfExe: "/usr/local/bin/gofzf"}
	assert.Equal(t, "'/usr/local/bin/gofzf' headless --preview {}", b.CmdLine())

	assert.Empty(t, (&Builtin{}).CmdLine(), "no host binary, no preview flag")
}

func TestNewBuiltin_DefaultsToCurrentExecutable(t *testing.T) {
	b := NewBuiltin("")
	assert.NotEmpty(t, b.SelfExe)
	assert.Positive(t, b.MaxLines)

	assert.Equal(t, "/opt/gofzf", NewBuiltin("/opt/gofzf").SelfExe)
}

func TestBuiltin_RenderHeadOfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0o644))

	var out strings.Builder
	b := &Builtin{MaxLines: 2}
	require.NoError(t, b.Render(&out, path))

	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestBuiltin_RenderStripsLineSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hit.txt")
	require.NoError(t, os.WriteFile(path, []byte("match\n"), 0o644))

	var out strings.Builder
	b := &Builtin{}
	require.NoError(t, b.Render(&out, path+":12"))

	assert.Equal(t, "match\n", out.String())
}

func TestBuiltin_RenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody text\n"), 0o644))

	var out strings.Builder
	b := &Builtin{}
	require.NoError(t, b.Render(&out, path))

	assert.Contains(t, out.String(), "Title")
	assert.Contains(t, out.String(), "body text")
}

func TestBuiltin_RenderMissingFile(t *testing.T) {
	b := &Builtin{}
	err := b.Render(&strings.Builder{}, filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
