// Package headerline composes the finder's header line and window title
// from session state: working directory, active search text, filters
// and the action legend.
package headerline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/patnr/gofzf/internal/binds"
	"github.com/patnr/gofzf/internal/options"
)

var (
	cwdStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	searchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	legendStyle = lipgloss.NewStyle().Faint(true)
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Compose renders the header line. An explicit header override wins;
// otherwise the non-empty clauses are joined in fixed order: cwd,
// search text, language query, regex filter, action legend.
func Compose(o *options.Options) string {
	if o.Header != "" {
		return o.Header
	}

	var clauses []string
	if cwd := cwdClause(o); cwd != "" {
		clauses = append(clauses, cwdStyle.Render("cwd: "+cwd))
	}
	if o.SearchText != "" {
		clauses = append(clauses, searchStyle.Render("search: "+o.SearchText))
	}
	if o.LSPQuery != "" {
		clauses = append(clauses, searchStyle.Render("query: "+o.LSPQuery))
	}
	if o.RegexFilter != "" {
		clauses = append(clauses, filterStyle.Render("filter: "+o.RegexFilter))
	}
	if legend := binds.HeaderLegend(o); legend != "" {
		clauses = append(clauses, legendStyle.Render(legend))
	}
	return strings.Join(clauses, ", ")
}

// cwdClause yields the display form of the working directory, or "" when
// the clause is suppressed: the process cwd is noise unless explicitly
// requested, and a cwd folded into the prompt must not repeat here.
func cwdClause(o *options.Options) string {
	if o.CwdPrompt {
		return ""
	}
	if !o.CwdHeader {
		if wd, err := os.Getwd(); err == nil && wd == o.Cwd {
			return ""
		}
		if o.Cwd == "" {
			return ""
		}
	}
	return DisplayPath(o.Cwd)
}

// Prompt returns the session prompt, with the working directory folded
// in when cwd-prompt mode is on.
func Prompt(o *options.Options) string {
	if !o.CwdPrompt || o.Cwd == "" {
		return o.Prompt
	}
	return DisplayPath(o.Cwd) + " " + o.Prompt
}

// Title renders the window title with the toggle badges of the active
// backing command appended: h for hidden files, i for ignored files,
// f for following symlinks.
func Title(o *options.Options) string {
	title := o.Title
	badges := commandBadges(o.ActiveCommand)
	if len(badges) == 0 {
		return title
	}
	badge := badgeStyle.Render("(" + strings.Join(badges, ",") + ")")
	if title == "" {
		return badge
	}
	return title + " " + badge
}

func commandBadges(cmd string) []string {
	var badges []string
	for _, probe := range []struct {
		flag  string
		badge string
	}{
		{"--hidden", "h"},
		{"--no-ignore", "i"},
		{"--follow", "f"},
	} {
		if strings.Contains(cmd, probe.flag) {
			badges = append(badges, probe.badge)
		}
	}
	return badges
}

// DisplayPath abbreviates p for header display: the home directory
// collapses to ~, and paths under the process cwd become relative.
func DisplayPath(p string) string {
	if p == "" {
		return p
	}
	if wd, err := os.Getwd(); err == nil && wd != p {
		if rel, err := filepath.Rel(wd, p); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if p == home {
			return "~"
		}
		if strings.HasPrefix(p, home+string(filepath.Separator)) {
			return "~" + p[len(home):]
		}
	}
	return p
}
