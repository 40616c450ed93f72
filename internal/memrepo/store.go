package memrepo

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kennel-io/kennel/internal/kind"
	"github.com/kennel-io/kennel/internal/repo"
)

// Store is a typed handle over one kind's shared bucket. Stores hold no
// object state of their own: constructing two stores for the same kind
// yields interchangeable handles over the same registry buckets.
//
// T is the object type as seen through this store. Ancestor stores are
// typically declared over an interface type that descendant object types
// satisfy, so a fanned-out object remains retrievable through them.
type Store[T any] struct {
	reg  *Registry
	base repo.Base[T]
	name string
}

// StoreOption configures a Store at construction.
type StoreOption[T any] func(*Store[T])

// WithFactory sets the object factory held by the store's base contract.
func WithFactory[T any](factory func() T) StoreOption[T] {
	return func(s *Store[T]) { s.base.Factory = factory }
}

// WithIDFunc overrides id extraction. Without it, T must implement
// repo.Identifiable.
func WithIDFunc[T any](idOf func(T) repo.ID) StoreOption[T] {
	return func(s *Store[T]) { s.base.IDOf = idOf }
}

// NewStore constructs a store for the kind, backed by the given registry
// (the process-wide default when nil).
//
// Construction is where hierarchy discovery happens: the first store
// constructed for a kind freezes the kind's lineage to the ancestors that
// are registered at that moment. Register ancestors first; see the
// package documentation for the ordering precondition.
func NewStore[T any](reg *Registry, k *kind.Kind, opts ...StoreOption[T]) *Store[T] {
	if reg == nil {
		reg = Default()
	}
	s := &Store[T]{
		reg:  reg,
		base: repo.NewBase[T](k, nil, nil),
		name: k.Name(),
	}
	for _, opt := range opts {
		opt(s)
	}
	reg.ensure(k)
	return s
}

// Kind returns the store's target kind.
func (s *Store[T]) Kind() *kind.Kind { return s.base.Kind }

// Get returns the object with the given id.
func (s *Store[T]) Get(id repo.ID) (T, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	var zero T
	b, ok := s.reg.buckets[s.name]
	if !ok {
		return zero, repo.NewNoRepository(s.name)
	}
	raw, ok := b.get(id)
	if !ok {
		return zero, repo.NewNotFound(s.name, id)
	}
	return s.cast(raw, id), nil
}

// Find returns the object with the given id, or ok=false when the id is
// absent. A missing bucket still surfaces as NO_REPOSITORY.
func (s *Store[T]) Find(id repo.ID) (T, bool, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	var zero T
	b, ok := s.reg.buckets[s.name]
	if !ok {
		return zero, false, repo.NewNoRepository(s.name)
	}
	raw, ok := b.get(id)
	if !ok {
		return zero, false, nil
	}
	return s.cast(raw, id), true, nil
}

// Exists reports whether the id is present in the kind's bucket.
func (s *Store[T]) Exists(id repo.ID) (bool, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	b, ok := s.reg.buckets[s.name]
	if !ok {
		return false, repo.NewNoRepository(s.name)
	}
	return b.has(id), nil
}

// All returns a snapshot of every object in the bucket, in insertion
// order. Callers must not rely on the ordering for correctness.
func (s *Store[T]) All() ([]T, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	b, ok := s.reg.buckets[s.name]
	if !ok {
		return nil, repo.NewNoRepository(s.name)
	}
	return s.snapshot(b), nil
}

// Count returns the bucket size, or with a predicate the number of
// matching objects. The predicate is always re-evaluated over the current
// bucket contents; no running count is maintained.
func (s *Store[T]) Count(pred repo.Predicate[T]) (int, error) {
	if pred == nil {
		s.reg.mu.RLock()
		defer s.reg.mu.RUnlock()

		b, ok := s.reg.buckets[s.name]
		if !ok {
			return 0, repo.NewNoRepository(s.name)
		}
		return b.size(), nil
	}

	matched, err := s.Filter(pred)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// Filter returns every object for which the predicate is true, preserving
// bucket iteration order. Full bucket scan; no indexing.
func (s *Store[T]) Filter(pred repo.Predicate[T]) ([]T, error) {
	s.reg.mu.RLock()
	defer s.reg.mu.RUnlock()

	b, ok := s.reg.buckets[s.name]
	if !ok {
		return nil, repo.NewNoRepository(s.name)
	}
	var out []T
	for _, obj := range s.snapshot(b) {
		if pred(obj) {
			out = append(out, obj)
		}
	}
	return out, nil
}

// Insert writes the object into the kind's bucket and fans it out to
// every bucket in the kind's frozen lineage.
//
// An id already present in an ancestor bucket is an identity conflict — a
// programming error, not a recoverable condition — and raises a panic
// carrying *repo.ConflictError. BatchUpdate recovers it per item; a direct
// Insert lets it propagate.
func (s *Store[T]) Insert(obj T) error {
	if err := s.base.PrecheckInsert(obj); err != nil {
		return err
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	b, ok := s.reg.buckets[s.name]
	if !ok {
		return repo.NewNoRepository(s.name)
	}
	id := s.base.IDOf(obj)
	b.put(id, obj)

	for _, ancestor := range s.reg.lineageLocked(s.name) {
		// Bucket keys are never removed once created, so every lineage
		// entry resolves to a live bucket.
		ab := s.reg.buckets[ancestor]
		if ab.has(id) {
			panic(&repo.ConflictError{Kind: s.name, Ancestor: ancestor, ID: id})
		}
		ab.put(id, obj)
	}

	s.reg.log.Debug("inserted object",
		zap.String("kind", s.name),
		zap.String("id", string(id)))
	return nil
}

// Update overwrites the object in the kind's own bucket. Unlike Insert it
// does not propagate to ancestor buckets.
func (s *Store[T]) Update(obj T) error {
	if err := s.base.PrecheckUpdate(obj); err != nil {
		return err
	}

	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	b, ok := s.reg.buckets[s.name]
	if !ok {
		return repo.NewNoRepository(s.name)
	}
	b.put(s.base.IDOf(obj), obj)
	return nil
}

// BatchUpdate applies the effect of Insert to each object independently,
// recording success per id. Identity conflicts and NOT_FOUND failures are
// recovered per item; any other failure aborts the whole batch. The
// result has one entry per input id.
func (s *Store[T]) BatchUpdate(objs []T) (map[repo.ID]bool, error) {
	if err := s.base.PrecheckBatch(objs); err != nil {
		return nil, err
	}

	recoverable := func(err error) bool {
		return repo.IsConflict(err) || repo.IsNotFound(err)
	}

	out := make(map[repo.ID]bool, len(objs))
	for _, obj := range objs {
		ok, err := repo.Guard(func() error { return s.Insert(obj) }, recoverable)
		if err != nil {
			return nil, err
		}
		out[s.base.IDOf(obj)] = ok
	}
	return out, nil
}

// Remove deletes the object, by its extracted id, from the kind's own
// bucket only. Ancestor buckets keep their entries.
func (s *Store[T]) Remove(obj T) error {
	_, err := s.Pop(s.base.IDOf(obj))
	return err
}

// Pop deletes the id from the kind's own bucket and returns the removed
// object.
func (s *Store[T]) Pop(id repo.ID) (T, error) {
	s.reg.mu.Lock()
	defer s.reg.mu.Unlock()

	var zero T
	b, ok := s.reg.buckets[s.name]
	if !ok {
		return zero, repo.NewNoRepository(s.name)
	}
	raw, ok := b.remove(id)
	if !ok {
		return zero, repo.NewNotFound(s.name, id)
	}
	return s.cast(raw, id), nil
}

// snapshot converts a bucket's ordered values to []T.
func (s *Store[T]) snapshot(b *bucket) []T {
	raws := b.values()
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		out = append(out, s.cast(raw, b.order[i]))
	}
	return out
}

// cast asserts a stored object to the store's type. A mismatch means a
// store was constructed over a type its bucket contents do not satisfy —
// a programming error surfaced loudly, like an identity conflict.
func (s *Store[T]) cast(raw any, id repo.ID) T {
	obj, ok := raw.(T)
	if !ok {
		panic(fmt.Sprintf("memrepo: bucket %s holds %T under id %q, which does not satisfy the store type", s.name, raw, string(id)))
	}
	return obj
}

// interface guard
var _ repo.Repository[any] = (*Store[any])(nil)
