// Package shellutil provides shell quoting, placeholder expansion and
// query-guard helpers shared by the command stringifier and the
// keybind/reload compilers. Two target shells are supported: POSIX sh
// and cmd.exe.
package shellutil

import "strings"

// Shell identifies the command shell a generated string will run under.
type Shell int

const (
	ShellPosix Shell = iota
	ShellCmd
)

// QueryPlaceholder is replaced by the finder's query expression when a
// command is expanded for live mode.
const QueryPlaceholder = "<query>"

// Escape wraps s in single quotes for POSIX sh, escaping embedded
// single quotes with the '\'' idiom.
func Escape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// EscapeCmd quotes s for cmd.exe. Exclamation marks get a doubled caret:
// under delayed expansion a single caret is consumed before the ! is
// seen, so ^^! is required to survive both passes.
func EscapeCmd(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '%':
			b.WriteString("%%")
		case '!':
			b.WriteString("^^!")
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// EscapeFor dispatches to the escaper for the given shell.
func EscapeFor(s string, sh Shell) string {
	if sh == ShellCmd {
		return EscapeCmd(s)
	}
	return Escape(s)
}

// IsEscaped reports whether s already looks like a quoted shell word.
// Callers must warn the user when this fires before skipping a second
// escape: silently accepting pre-escaped values hides double-escaping
// bugs in caller configuration.
func IsEscaped(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	if first != last {
		return false
	}
	return first == '\'' || first == '"'
}

// ExpandQuery substitutes the query placeholder in cmd with idx (the
// finder's field-index expression, e.g. {q}). When cmd carries no
// placeholder, idx is appended as a trailing argument instead.
func ExpandQuery(cmd, idx string) string {
	if strings.Contains(cmd, QueryPlaceholder) {
		return strings.ReplaceAll(cmd, QueryPlaceholder, idx)
	}
	return cmd + " " + idx
}

// GuardEmptyQuery wraps cmd so that an empty query expression produces
// no output instead of running the unfiltered command. queryExpr is the
// finder-side expression holding the current query (e.g. {q}).
func GuardEmptyQuery(cmd, queryExpr string, sh Shell) string {
	if sh == ShellCmd {
		// cmd.exe has no test(1); compare against an empty quoted string.
		// The carets keep the comparison intact when the query itself
		// contains metacharacters.
		return "if ^\"" + queryExpr + "^\" == ^\"^\" (call) else (" + cmd + ")"
	}
	return "[ -z " + queryExpr + " ] || " + cmd
}
