package binds

import (
	"errors"
	"strings"
	"testing"

	"github.com/patnr/gofzf/internal/capability"
	"github.com/patnr/gofzf/internal/options"
)

func newOpts(f capability.Finder) *options.Options {
	return &options.Options{
		Finder:  f,
		Actions: options.Table{},
		Keymap:  map[string]string{},
	}
}

func fzf(version string) capability.Finder {
	return capability.Finder{Dialect: capability.DialectFzf, Version: version}
}

func TestExpect_CollectsKeysSorted(t *testing.T) {
	tbl := options.Table{
		"ctrl-x": {Fn: func([]string, *options.Options) error { return nil }},
		"alt-a":  {Fn: func([]string, *options.Options) error { return nil }},
		"enter":  {Fn: func([]string, *options.Options) error { return nil }},
	}
	keys, extra := Expect(tbl)
	if len(keys) != 2 || keys[0] != "alt-a" || keys[1] != "ctrl-x" {
		t.Errorf("keys = %v", keys)
	}
	if len(extra) != 0 {
		t.Errorf("extra = %v", extra)
	}
}

func TestExpect_SkipsIgnoredAndBindsMouseKeys(t *testing.T) {
	ignored := &options.Action{Fn: func([]string, *options.Options) error { return nil }}
	ignored.Ignore()
	tbl := options.Table{
		"ctrl-x":       ignored,
		"double-click": {Fn: func([]string, *options.Options) error { return nil }},
	}
	keys, extra := Expect(tbl)
	if len(keys) != 0 {
		t.Errorf("keys = %v", keys)
	}
	if len(extra) != 1 || extra[0] != "double-click:accept" {
		t.Errorf("extra = %v", extra)
	}
}

func TestConvertReloadActions_NativeBind(t *testing.T) {
	o := newOpts(fzf("0.44.0"))
	o.Actions["ctrl-r"] = &options.Action{
		Fn:     func([]string, *options.Options) error { return nil },
		Reload: true,
		Field:  "{+}",
	}
	notify := func(key, field string) string { return "echo " + key + " " + field + " > /tmp/ctl" }

	ConvertReloadActions(o, "rg --files", notify, nil)

	bind, ok := o.Keymap["ctrl-r"]
	if !ok {
		t.Fatal("no bind emitted")
	}
	want := "execute-silent(echo ctrl-r {+} > /tmp/ctl)+reload(rg --files)"
	if bind != want {
		t.Errorf("bind = %q\nwant   %q", bind, want)
	}
	if !o.Actions["ctrl-r"].Ignored() {
		t.Error("converted action must be marked ignored")
	}
}

// Below the reload-bind minimum the action degrades to the positional
// form with a trailing resume step.
func TestConvertReloadActions_LegacyFallback(t *testing.T) {
	o := newOpts(fzf("0.30.0"))
	ran := false
	resumed := false
	o.Actions["ctrl-r"] = &options.Action{
		Fn:     func([]string, *options.Options) error { ran = true; return nil },
		Reload: true,
	}
	resume := func([]string, *options.Options) error { resumed = true; return nil }

	ConvertReloadActions(o, "rg --files", func(string, string) string { return "x" }, resume)

	a := o.Actions["ctrl-r"]
	if _, ok := o.Keymap["ctrl-r"]; ok {
		t.Fatal("no native bind expected below minimum version")
	}
	if a.Ignored() {
		t.Error("fallback action stays expect-dispatched")
	}
	if a.Fn != nil || a.Reload {
		t.Error("named fields must be cleared after conversion")
	}
	if len(a.Steps) != 2 {
		t.Fatalf("steps = %d, want callback + resume trailer", len(a.Steps))
	}
	for _, step := range a.Steps {
		_ = step(nil, o)
	}
	if !ran || !resumed {
		t.Error("both steps must execute")
	}
}

func TestConvertReloadActions_SkimAlwaysFallsBack(t *testing.T) {
	o := newOpts(capability.Finder{Dialect: capability.DialectSkim, Version: "99.0.0"})
	o.Actions["ctrl-r"] = &options.Action{
		Fn:     func([]string, *options.Options) error { return nil },
		Reload: true,
	}
	ConvertReloadActions(o, "cmd", func(string, string) string { return "x" }, nil)
	if _, ok := o.Keymap["ctrl-r"]; ok {
		t.Error("skim cannot express native reload binds")
	}
}

func TestConvertExecSilentActions_BracketForm(t *testing.T) {
	o := newOpts(fzf("0.44.0"))
	o.Actions["ctrl-y"] = &options.Action{
		ExecSilent: true,
		Cmd:        "git add",
		Field:      "{+}",
		Postfix:    " && echo done",
	}
	if err := ConvertExecSilentActions(o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "execute-silent(git add {+} && echo done)"
	if o.Keymap["ctrl-y"] != want {
		t.Errorf("bind = %q", o.Keymap["ctrl-y"])
	}
	if !o.Actions["ctrl-y"].Ignored() {
		t.Error("converted action must be marked ignored")
	}
}

func TestConvertExecSilentActions_ColonFormRejectsPostfix(t *testing.T) {
	o := newOpts(fzf("0.20.0"))
	o.Actions["ctrl-y"] = &options.Action{
		ExecSilent: true,
		Cmd:        "git add",
		Postfix:    " && echo done",
	}
	err := ConvertExecSilentActions(o)
	var pe *PostfixUnsupportedError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PostfixUnsupportedError, got %v", err)
	}

	o = newOpts(fzf("0.20.0"))
	o.Actions["ctrl-y"] = &options.Action{ExecSilent: true, Cmd: "git add"}
	if err := ConvertExecSilentActions(o); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Keymap["ctrl-y"] != "execute-silent:git add" {
		t.Errorf("bind = %q", o.Keymap["ctrl-y"])
	}
}

func TestCreateBinds_Separation(t *testing.T) {
	o := newOpts(fzf("0.44.0"))
	o.Keymap["ctrl-y"] = "up"
	o.Keymap["ctrl-d"] = "half-page-down"
	o.Keymap["ctrl-/"] = "transform:echo change-prompt(x)"

	args := CreateBinds(o)
	if len(args) != 2 {
		t.Fatalf("got %d bind args, want 2: %v", len(args), args)
	}
	if args[0] != "ctrl-d:half-page-down,ctrl-y:up" {
		t.Errorf("simple binds = %q", args[0])
	}
	if args[1] != "ctrl-/:transform:echo change-prompt(x)" {
		t.Errorf("own-arg bind = %q", args[1])
	}
}

func TestCreateBinds_ReservedEventsOwnArg(t *testing.T) {
	o := newOpts(fzf("0.44.0"))
	o.Keymap["zero"] = "abort"
	o.Keymap["ctrl-y"] = "up"

	args := CreateBinds(o)
	if len(args) != 2 {
		t.Fatalf("args = %v", args)
	}
	if args[0] != "ctrl-y:up" || args[1] != "zero:abort" {
		t.Errorf("args = %v", args)
	}
}

func TestCreateBinds_AcceptRewrite(t *testing.T) {
	o := newOpts(fzf("0.53.0"))
	o.Keymap["ctrl-s"] = "accept"
	args := CreateBinds(o)
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "ctrl-s:print(ctrl-s)+accept") {
		t.Errorf("accept not rewritten: %v", args)
	}

	old := newOpts(fzf("0.44.0"))
	old.Keymap["ctrl-s"] = "accept"
	args = CreateBinds(old)
	if args[0] != "ctrl-s:accept" {
		t.Errorf("old finder must keep bare accept: %v", args)
	}
}

func TestHeaderLegend_PinnedAndSorted(t *testing.T) {
	o := newOpts(fzf("0.44.0"))
	o.Actions["ctrl-a"] = &options.Action{Builtin: "unstage", HeaderLabel: "unstage"}
	o.Actions["ctrl-b"] = &options.Action{Builtin: "stage", HeaderLabel: "stage"}
	o.Actions["ctrl-z"] = &options.Action{HeaderLabel: "zap"}
	o.Actions["ctrl-c"] = &options.Action{HeaderLabel: "copy"}

	got := HeaderLegend(o)
	want := "ctrl-b to stage | ctrl-a to unstage | ctrl-c to copy | ctrl-z to zap"
	if got != want {
		t.Errorf("legend = %q\nwant     %q", got, want)
	}
}

func TestHeaderLegend_DynamicLabel(t *testing.T) {
	o := newOpts(fzf("0.44.0"))
	o.ActiveCommand = "rg --files --hidden"
	o.Actions["ctrl-h"] = &options.Action{HeaderFn: func(o *options.Options) string {
		if strings.Contains(o.ActiveCommand, "--hidden") {
			return "Disable hidden"
		}
		return "Enable hidden"
	}}
	if got := HeaderLegend(o); got != "ctrl-h to Disable hidden" {
		t.Errorf("legend = %q", got)
	}
}
