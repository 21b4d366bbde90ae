// Package capability models the active finder binary: which dialect it
// speaks (fzf or its skim clone) and which semantic version it is. All
// version- and dialect-dependent decisions in the compilers go through
// the named gates here rather than re-deriving checks ad hoc.
package capability

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// Dialect names a finder flavor.
type Dialect string

const (
	DialectFzf  Dialect = "fzf"
	DialectSkim Dialect = "sk"
)

// Finder describes the active finder binary.
type Finder struct {
	Dialect Dialect
	Version string // MAJOR.MINOR.PATCH, no leading v
}

// IsSkim reports whether the secondary (skim) dialect is active.
func (f Finder) IsSkim() bool { return f.Dialect == DialectSkim }

// AtLeast reports whether the finder version is >= v (MAJOR.MINOR.PATCH).
// An unparsable version compares as older than everything.
func (f Finder) AtLeast(v string) bool {
	fv := "v" + f.Version
	if !semver.IsValid(fv) {
		return false
	}
	return semver.Compare(fv, "v"+v) >= 0
}

// Feature gates. Each corresponds to one behavioral divergence between
// finder versions or dialects; compilers consult these at their decision
// points instead of comparing versions inline.

// SupportsReloadBind reports whether reload=true actions can compile to a
// native execute-silent(...)+reload(...) bind. Skim cannot express it.
func (f Finder) SupportsReloadBind() bool {
	return !f.IsSkim() && f.AtLeast("0.36.0")
}

// SupportsTransform reports whether the transform bind action is
// available, enabling structural command rewrites without a relaunch.
func (f Finder) SupportsTransform() bool {
	return !f.IsSkim() && f.AtLeast("0.45.0")
}

// SupportsStartEvent reports whether the start event can carry binds, so
// the initial population can go through the same reload path as change.
func (f Finder) SupportsStartEvent() bool {
	return !f.IsSkim() && f.AtLeast("0.36.0")
}

// SupportsZeroEvent reports whether the zero event exists.
func (f Finder) SupportsZeroEvent() bool {
	return !f.IsSkim() && f.AtLeast("0.40.0")
}

// SupportsExecSilentArgs reports whether execute-silent takes its command
// in brackets. Older finders only accept the colon-terminated form, which
// cannot carry a postfix.
func (f Finder) SupportsExecSilentArgs() bool {
	return f.IsSkim() || f.AtLeast("0.25.0")
}

// RewritesAcceptPrint reports whether binds ending in a bare accept must
// be rewritten to print(<key>)+accept: newer finders removed the legacy
// mechanism that made the accepted key observable otherwise.
func (f Finder) RewritesAcceptPrint() bool {
	return !f.IsSkim() && f.AtLeast("0.53.0")
}

// SupportsColor reports whether the given --color flag name is accepted
// by this finder. Skim understands only the original subset.
func (f Finder) SupportsColor(flag string) bool {
	if !f.IsSkim() {
		return true
	}
	switch flag {
	case "fg", "bg", "fg+", "bg+", "hl", "hl+", "info", "prompt",
		"pointer", "marker", "spinner", "header", "border":
		return true
	}
	return false
}

// HasQueryEscapingDefect reports the known skim defect where an
// exclamation mark in the query is mangled on the way to the reload
// command. Guard builders must double-escape around it.
func (f Finder) HasQueryEscapingDefect() bool { return f.IsSkim() }

// UsesJoinedFlags reports whether argv tokens take the --flag=value shape
// (skim) rather than separate --flag value tokens (fzf).
func (f Finder) UsesJoinedFlags() bool { return f.IsSkim() }

type runner interface {
	Output(ctx context.Context, argv []string) (string, error)
}

var versionRe = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// Detect runs `<binary> --version` and parses the descriptor. The
// dialect is inferred from the binary name: "sk", "skim" (the usual
// package name) or an "sk-" prefix select skim.
func Detect(ctx context.Context, r runner, binary string) (Finder, error) {
	out, err := r.Output(ctx, []string{binary, "--version"})
	if err != nil {
		return Finder{}, &DetectError{Binary: binary, Cause: err}
	}
	m := versionRe.FindString(strings.TrimSpace(out))
	if m == "" {
		return Finder{}, &VersionParseError{Binary: binary, Output: strings.TrimSpace(out)}
	}
	d := DialectFzf
	base := binary
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if base == "sk" || base == "skim" || strings.HasPrefix(base, "sk-") {
		d = DialectSkim
	}
	return Finder{Dialect: d, Version: m}, nil
}
