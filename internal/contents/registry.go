package contents

import (
	"context"
	"sort"
	"sync"
)

// Factory builds a producer from a serialized options payload. Sources
// registered here can be re-executed out of process by the headless
// re-invocation wrapper, which is what makes reload binds work for
// producer-backed sessions.
type Factory func(ctx context.Context, optsJSON string) (ProducerFunc, error)

var registry = struct {
	sync.Mutex
	m map[string]Factory
}{m: make(map[string]Factory)}

// RegisterSource installs a named source factory. Later registrations
// under the same name win; builtin pickers register at init.
func RegisterSource(name string, f Factory) {
	registry.Lock()
	defer registry.Unlock()
	registry.m[name] = f
}

// LookupSource resolves a registered source factory.
func LookupSource(name string) (Factory, bool) {
	registry.Lock()
	defer registry.Unlock()
	f, ok := registry.m[name]
	return f, ok
}

// SourceNames lists registered sources, sorted.
func SourceNames() []string {
	registry.Lock()
	defer registry.Unlock()
	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
