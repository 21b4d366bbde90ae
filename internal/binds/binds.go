// Package binds compiles the declarative action table and raw keymap
// into the finder's native bind-expression language, reconciling the
// dialect and version gates of the active finder.
package binds

import (
	"sort"
	"strings"

	"github.com/patnr/gofzf/internal/options"
)

// reservedEvents are bind targets that must occupy their own --bind
// argument: their action arguments may embed commas and brackets that
// comma-joining would ambiguate.
var reservedEvents = map[string]bool{
	"zero":   true,
	"load":   true,
	"start":  true,
	"resize": true,
}

// mouse pseudo-keys cannot appear in --expect and are bound to accept
// instead.
var bindOnlyKeys = map[string]bool{
	"double-click": true,
	"right-click":  true,
}

// Expect derives the --expect key list and any extra accept binds from
// the action table. Actions folded into binds (Ignored) take no part.
func Expect(t options.Table) (keys []string, extraBinds []string) {
	for _, key := range t.Keys() {
		a := t[key]
		if a == nil || a.Ignored() {
			continue
		}
		if key == "enter" || key == "default" {
			continue
		}
		if bindOnlyKeys[key] {
			extraBinds = append(extraBinds, key+":accept")
			continue
		}
		keys = append(keys, key)
	}
	return keys, extraBinds
}

// ConvertReloadActions rewrites every reload=true callback action. When
// the finder supports native reload binds, the action becomes
// execute-silent(<notify>)+reload(<reloadCmd>) and is folded into the
// keymap. Otherwise it degrades to the positional form with a trailing
// resume step: same final selection, full-interface redraw instead of
// an in-place reload.
func ConvertReloadActions(o *options.Options, reloadCmd string, notify func(key, field string) string, resume options.ActionFunc) {
	for key, a := range o.Actions {
		if a == nil || !a.Reload || a.Fn == nil {
			continue
		}
		if o.Finder.SupportsReloadBind() && notify != nil {
			o.Keymap[key] = "execute-silent(" + notify(key, a.Field) + ")+reload(" + reloadCmd + ")"
			a.Ignore()
			continue
		}
		fn := a.Fn
		a.Steps = []options.ActionFunc{fn}
		if resume != nil {
			a.Steps = append(a.Steps, resume)
		}
		a.Fn = nil
		a.Reload = false
	}
}

// ConvertExecSilentActions compiles exec_silent command actions into
// execute-silent binds. The bracket form carries an optional postfix;
// the colon-terminated form of older finders cannot, which is a
// configuration error when one is present.
func ConvertExecSilentActions(o *options.Options) error {
	for key, a := range o.Actions {
		if a == nil || !a.ExecSilent || a.Cmd == "" {
			continue
		}
		cmd := a.Cmd
		if a.Prefix != "" {
			cmd = a.Prefix + cmd
		}
		if a.Field != "" {
			cmd += " " + a.Field
		}
		if o.Finder.SupportsExecSilentArgs() {
			if a.Postfix != "" {
				cmd += a.Postfix
			}
			o.Keymap[key] = "execute-silent(" + cmd + ")"
		} else {
			if a.Postfix != "" {
				return &PostfixUnsupportedError{Key: key, Version: o.Finder.Version}
			}
			o.Keymap[key] = "execute-silent:" + cmd
		}
		a.Ignore()
	}
	return nil
}

// CreateBinds compiles the keymap into --bind argument values. Simple
// binds are comma-joined into the first value; binds carrying
// transform/execute/reload actions or bound to reserved events each get
// their own value.
func CreateBinds(o *options.Options) []string {
	keys := make([]string, 0, len(o.Keymap))
	for k := range o.Keymap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var simple []string
	var own []string
	for _, key := range keys {
		val := o.Keymap[key]
		val = rewriteAccept(o, key, val)
		entry := key + ":" + val
		if needsOwnArg(key, val) {
			own = append(own, entry)
			continue
		}
		simple = append(simple, entry)
	}

	var out []string
	if len(simple) > 0 {
		out = append(out, strings.Join(simple, ","))
	}
	out = append(out, own...)
	return out
}

func needsOwnArg(key, val string) bool {
	if reservedEvents[key] {
		return true
	}
	return strings.Contains(val, "transform") ||
		strings.Contains(val, "execute") ||
		strings.Contains(val, "reload")
}

// rewriteAccept turns a trailing bare accept into print(<key>)+accept
// on finders where the legacy accepted-key mechanism is gone.
func rewriteAccept(o *options.Options, key, val string) string {
	if !o.Finder.RewritesAcceptPrint() {
		return val
	}
	if !strings.HasSuffix(val, "accept") || strings.Contains(val, "print(") {
		return val
	}
	return strings.TrimSuffix(val, "accept") + "print(" + key + ")+accept"
}
