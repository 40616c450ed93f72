package memrepo

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kennel-io/kennel/internal/kind"
)

// Registry owns the shared store state: the table of per-kind buckets and
// the memoized superclass index. It is the single access point for that
// state — stores hold a reference to a Registry instead of reaching into
// package-level globals, so lifecycle (init, test reset) stays explicit.
type Registry struct {
	mu      sync.RWMutex
	buckets map[string]*bucket

	// lineage memoizes the registered-ancestor identifiers per kind.
	// Entries never expire and are never recomputed: the ancestor list a
	// kind sees is frozen the first time a store is constructed for it.
	lineage *gocache.Cache

	log *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger attaches a logger for registry-level debug events.
func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// New creates an isolated Registry. Production code normally uses
// Default; isolated registries are for tests and for embedding the store
// behind an explicit composition root.
func New(opts ...Option) *Registry {
	r := &Registry{
		buckets: make(map[string]*bucket),
		lineage: gocache.New(gocache.NoExpiration, 0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide Registry shared by stores that are not
// given an explicit one.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// Register eagerly creates an empty bucket for the kind, making it
// discoverable as an ancestor by stores constructed later. Repeated calls
// reset the bucket to empty — idempotent in resulting emptiness, not in
// content. Returns the kind for chaining.
//
// Register never touches already-frozen lineages: a kind registered after
// a descendant store was constructed is not retroactively observed.
func (r *Registry) Register(k *kind.Kind) *kind.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buckets[k.Name()] = newBucket()
	r.log.Debug("registered kind", zap.String("kind", k.Name()))
	return k
}

// ClearAll empties every bucket while keeping the bucket keys and the
// memoized lineages intact. Intended for test teardown, not general use.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.buckets {
		b.clear()
	}
	r.log.Debug("cleared all buckets", zap.Int("buckets", len(r.buckets)))
}

// Kinds returns the identifiers of every kind with a bucket, in no
// particular order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.buckets))
	for name := range r.buckets {
		out = append(out, name)
	}
	return out
}

// Lineage returns the frozen registered-ancestor identifiers for the
// kind, or ok=false when no store has been constructed for it yet.
func (r *Registry) Lineage(k *kind.Kind) ([]string, bool) {
	cached, found := r.lineage.Get(k.Name())
	if !found {
		return nil, false
	}
	return cached.([]string), true
}

// ensure performs the construction-time side effects for a kind: memoize
// its lineage (once, ever) and create its bucket when missing. Safe to
// call repeatedly.
func (r *Registry) ensure(k *kind.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := k.Name()
	if _, found := r.lineage.Get(name); !found {
		var lineage []string
		for _, ancestor := range k.Ancestors() {
			if _, exists := r.buckets[ancestor.Name()]; exists {
				lineage = append(lineage, ancestor.Name())
			}
		}
		r.lineage.Set(name, lineage, gocache.NoExpiration)
		r.log.Debug("froze lineage",
			zap.String("kind", name),
			zap.Strings("lineage", lineage))
	}
	if _, exists := r.buckets[name]; !exists {
		r.buckets[name] = newBucket()
	}
}

// lineageLocked returns the memoized lineage for a kind name. Callers
// must hold the registry lock; the kind must have gone through ensure.
func (r *Registry) lineageLocked(name string) []string {
	cached, found := r.lineage.Get(name)
	if !found {
		return nil
	}
	return cached.([]string)
}
