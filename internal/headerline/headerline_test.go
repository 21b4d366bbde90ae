package headerline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patnr/gofzf/internal/options"
)

func TestCompose_ExplicitHeaderWins(t *testing.T) {
	o := &options.Options{Header: "override", SearchText: "ignored"}
	assert.Equal(t, "override", Compose(o))
}

func TestCompose_ProcessCwdSuppressed(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	o := &options.Options{Cwd: wd}
	assert.Empty(t, Compose(o))
}

func TestCompose_ForeignCwdShown(t *testing.T) {
	o := &options.Options{Cwd: filepath.Join(os.TempDir(), "elsewhere")}
	assert.Contains(t, Compose(o), "cwd: ")
}

func TestCompose_CwdHeaderForcesClause(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	o := &options.Options{Cwd: wd, CwdHeader: true}
	assert.Contains(t, Compose(o), "cwd: ")
}

func TestCompose_CwdPromptSuppressesClause(t *testing.T) {
	o := &options.Options{
		Cwd:       filepath.Join(os.TempDir(), "elsewhere"),
		CwdHeader: true,
		CwdPrompt: true,
	}
	assert.NotContains(t, Compose(o), "cwd: ")
}

func TestCompose_ClauseOrder(t *testing.T) {
	o := &options.Options{
		SearchText:  "needle",
		RegexFilter: `\.go$`,
		Actions: options.Table{
			"ctrl-g": {HeaderLabel: "regex toggle"},
		},
	}

	got := Compose(o)
	search := "search: needle"
	filter := `filter: \.go$`
	legend := "ctrl-g to regex toggle"
	assert.Contains(t, got, search)
	assert.Contains(t, got, filter)
	assert.Contains(t, got, legend)
	assert.Less(t, strings.Index(got, search), strings.Index(got, filter))
	assert.Less(t, strings.Index(got, filter), strings.Index(got, legend))
}

func TestPrompt_FoldsCwd(t *testing.T) {
	o := &options.Options{Cwd: "/srv/data", Prompt: "> ", CwdPrompt: true}
	assert.Equal(t, "/srv/data > ", Prompt(o))

	o.CwdPrompt = false
	assert.Equal(t, "> ", Prompt(o))
}

func TestTitle_Badges(t *testing.T) {
	o := &options.Options{
		Title:         "Files",
		ActiveCommand: "fd --hidden --follow --color=never",
	}
	got := Title(o)
	assert.Contains(t, got, "Files")
	assert.Contains(t, got, "(h,f)")
}

func TestTitle_NoBadgesWithoutFlags(t *testing.T) {
	o := &options.Options{Title: "Files", ActiveCommand: "fd --color=never"}
	assert.Equal(t, "Files", Title(o))
}

func TestDisplayPath_HomeCollapses(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "~", DisplayPath(home))
	assert.Equal(t, filepath.Join("~", "src"), DisplayPath(filepath.Join(home, "src")))
}

func TestDisplayPath_UnderCwdGoesRelative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "sub", DisplayPath(filepath.Join(wd, "sub")))
}
