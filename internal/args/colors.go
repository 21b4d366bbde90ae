package args

import (
	"sort"
	"strings"
)

// colors maps the color table into one comma-joined --color argument.
// For each flag the first highlight group the resolver knows wins;
// flags the active dialect does not support are dropped.
func (b *builder) colors() {
	o := b.opts
	if len(o.Colors) == 0 {
		return
	}

	flags := make([]string, 0, len(o.Colors))
	for flag := range o.Colors {
		flags = append(flags, flag)
	}
	sort.Strings(flags)

	var entries []string
	for _, flag := range flags {
		if !o.Finder.SupportsColor(flag) {
			b.env.warn("color flag " + flag + " unsupported by " + string(o.Finder.Dialect) + ", dropped")
			continue
		}
		spec := o.Colors[flag]

		val := spec.Attr
		if b.env != nil && b.env.Resolve != nil {
			for _, group := range spec.Groups {
				if v, ok := b.env.Resolve(group); ok {
					val = v
					break
				}
			}
		}
		if val == "" {
			continue
		}

		entry := flag + ":" + val
		if len(spec.Extra) > 0 {
			entry += ":" + strings.Join(spec.Extra, ":")
		}
		entries = append(entries, entry)
	}

	if len(entries) > 0 {
		b.value("--color", strings.Join(entries, ","))
	}
}
