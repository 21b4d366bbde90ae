package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/patnr/gofzf/internal/contents"
	"github.com/patnr/gofzf/internal/options"
)

// Registry holds resumable session state: the most recent options bag,
// contents and query. It is a single-owner object injected into the
// session wrapper; every new session overwrites it unless the session
// opted out.
type Registry struct {
	mu       sync.Mutex
	id       uuid.UUID
	opts     *options.Options
	contents contents.Contents
	query    string
	saved    bool
}

func NewRegistry() *Registry { return &Registry{} }

// Save records the session snapshot under a fresh session id.
func (r *Registry) Save(o *options.Options, c contents.Contents, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.id = uuid.New()
	r.opts = o
	r.contents = c
	r.query = query
	r.saved = true
}

// SaveQuery updates only the last query, preserving the snapshot. The
// finder prints the query even on abort, so resume restores it.
func (r *Registry) SaveQuery(query string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saved {
		r.query = query
	}
}

// Snapshot returns the recorded state. ok is false when nothing was
// saved yet.
func (r *Registry) Snapshot() (o *options.Options, c contents.Contents, query string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts, r.contents, r.query, r.saved
}

// ID returns the current session id.
func (r *Registry) ID() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}
