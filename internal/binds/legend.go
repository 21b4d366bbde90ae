package binds

import (
	"sort"
	"strings"

	"github.com/patnr/gofzf/internal/options"
)

// pinnedLabels fixes legend positions for labels whose ordering users
// rely on; everything else follows in sorted-key order.
var pinnedLabels = map[string]int{
	"stage":   1,
	"unstage": 2,
}

// HeaderLegend renders the "<key> to <label>" action legend for the
// header line. Ignored actions and entries without a label are skipped.
func HeaderLegend(o *options.Options) string {
	type entry struct {
		key   string
		label string
		pin   int
	}

	var entries []entry
	for _, key := range o.Actions.Keys() {
		a := o.Actions[key]
		if a == nil || a.Ignored() {
			continue
		}
		label := a.Label(o)
		if label == "" {
			continue
		}
		pin := 0
		if p, ok := pinnedLabels[a.Builtin]; ok {
			pin = p
		}
		entries = append(entries, entry{key: key, label: label, pin: pin})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := entries[i].pin, entries[j].pin
		if pi != pj {
			if pi == 0 {
				return false
			}
			if pj == 0 {
				return true
			}
			return pi < pj
		}
		return entries[i].key < entries[j].key
	})

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.key+" to "+e.label)
	}
	return strings.Join(parts, " | ")
}
