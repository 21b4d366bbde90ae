package args

import (
	"fmt"
	"math"
	"strings"

	"github.com/patnr/gofzf/internal/preview"
	"github.com/patnr/gofzf/internal/shellutil"
)

func (b *builder) preview() {
	o := b.opts

	// Descriptor-form preview commands: a raw command runs directly,
	// a data-producing one has the entry placeholder expanded into it.
	switch {
	case o.Preview.RawCmd != "":
		b.value("--preview", o.Preview.RawCmd)
	case o.Preview.Cmd != "":
		b.value("--preview", shellutil.ExpandQuery(o.Preview.Cmd, "{}"))
	}

	p := o.Previewer
	if p != nil {
		if cp, ok := p.(preview.CommandPreviewer); ok {
			if cl := cp.CmdLine(); cl != "" {
				b.value("--preview", cl)
			}
		}
		if dh, ok := p.(preview.DelimiterHinter); ok {
			if d := dh.Delimiter(); d != "" {
				b.value("--delimiter", d)
			}
		}
		if zh, ok := p.(preview.ZeroHandler); ok && o.Finder.SupportsZeroEvent() {
			if z := zh.Zero(); z != "" {
				if _, exists := o.Keymap["zero"]; !exists {
					o.Keymap["zero"] = z
				}
			}
		}
	}

	spec := b.previewWindowSpec()
	if wh, ok := p.(preview.WindowHinter); ok {
		if w := wh.PreviewWindow(); w != "" {
			spec = w
		}
	}
	if oh, ok := p.(preview.OffsetHinter); ok {
		if off := oh.PreviewOffset(); off != "" && spec != "" {
			spec += ":" + off
		}
	}
	if spec != "" {
		b.value("--preview-window", spec)
	}
}

// previewWindowSpec resolves the geometry string:
// <hidden|nohidden>:<wrap|nowrap>[:<border-style>]:<layout>. When the
// preview is flex-positioned and a flip threshold is configured, a
// conditional alternate layout is derived for narrow terminals.
func (b *builder) previewWindowSpec() string {
	o := b.opts
	p := o.Preview
	if p.Layout == "" {
		return ""
	}

	var parts []string
	if p.Hidden {
		parts = append(parts, "hidden")
	} else {
		parts = append(parts, "nohidden")
	}
	if p.Wrap {
		parts = append(parts, "wrap")
	} else {
		parts = append(parts, "nowrap")
	}
	if p.Border != "" {
		parts = append(parts, "border-"+p.Border)
	}
	base := strings.Join(parts, ":")

	if p.Layout == "flex" && p.FlipThreshold > 0 &&
		!o.Finder.IsSkim() && o.Finder.AtLeast("0.27.0") &&
		b.env != nil && b.env.Columns != nil {

		frac := p.MainWidthFrac
		if frac <= 0 || frac > 1 {
			frac = 1
		}
		mainWidth := float64(b.env.Columns(false)) * frac
		flipAt := p.FlipThreshold - int(math.Ceil(mainWidth)) + 1

		horizontal := p.Horizontal
		if horizontal == "" {
			horizontal = "right:50%"
		}
		vertical := p.Vertical
		if vertical == "" {
			vertical = "down:50%"
		}
		return fmt.Sprintf("%s:%s,<%d(%s:%s)", base, horizontal, flipAt, base, vertical)
	}

	layout := p.Layout
	if layout == "flex" {
		if p.Horizontal != "" {
			layout = p.Horizontal
		} else {
			layout = "right:50%"
		}
	}
	return base + ":" + layout
}
