package repo

import (
	"fmt"

	"github.com/kennel-io/kennel/internal/kind"
)

// ID identifies an object within one kind's bucket. Ids are unique per
// bucket; the same id may legitimately appear in the buckets of an
// object's own kind and of its registered ancestors.
type ID string

// Identifiable is the default id-extraction contract: stored objects that
// implement it need no explicit id function. EntityID must be stable for
// the lifetime of the object and unique within its kind.
type Identifiable interface {
	EntityID() ID
}

// Repository is the operation surface every store implements.
//
// Get and the other read operations fail with a NO_REPOSITORY Error when
// the kind has no bucket, and with NOT_FOUND when the id is absent. Find
// is the non-failing variant of Get for missing ids.
type Repository[T any] interface {
	// Get returns the object with the given id.
	Get(id ID) (T, error)

	// Find returns the object with the given id, or ok=false when absent.
	Find(id ID) (obj T, ok bool, err error)

	// Exists reports whether the id is present in the bucket.
	Exists(id ID) (bool, error)

	// All returns a snapshot of every object in the bucket.
	All() ([]T, error)

	// Count returns the bucket size, or the number of objects matching
	// the predicate when one is given.
	Count(pred Predicate[T]) (int, error)

	// Filter returns every object for which the predicate is true.
	Filter(pred Predicate[T]) ([]T, error)

	// Insert writes the object into the bucket and fans it out to every
	// registered ancestor bucket.
	Insert(obj T) error

	// Update overwrites the object in this kind's bucket only.
	Update(obj T) error

	// BatchUpdate applies the effect of Insert to each object
	// independently, recording success per id.
	BatchUpdate(objs []T) (map[ID]bool, error)

	// Remove deletes the object (by its extracted id) from this kind's
	// bucket only.
	Remove(obj T) error

	// Pop deletes the id from this kind's bucket and returns the removed
	// object.
	Pop(id ID) (T, error)
}

// Base carries the per-store collaborators shared by every repository
// implementation: the target kind, an optional object factory, and the
// id-extraction function. Its pre-checks run before every mutating
// operation; failures propagate to the caller unchanged.
type Base[T any] struct {
	// Kind is the target kind of the store.
	Kind *kind.Kind

	// Factory constructs new objects of the target kind. It is held for
	// collaborators that build objects through the store; the CRUD
	// operations themselves never call it.
	Factory func() T

	// IDOf extracts the id of an object.
	IDOf func(T) ID
}

// NewBase builds a Base for the given kind. When idOf is nil, objects must
// implement Identifiable; extraction then goes through EntityID.
func NewBase[T any](k *kind.Kind, factory func() T, idOf func(T) ID) Base[T] {
	if idOf == nil {
		idOf = func(obj T) ID {
			if ident, ok := any(obj).(Identifiable); ok {
				return ident.EntityID()
			}
			return ""
		}
	}
	return Base[T]{Kind: k, Factory: factory, IDOf: idOf}
}

// PrecheckInsert validates an object before insertion: the id must be
// extractable and non-empty.
func (b *Base[T]) PrecheckInsert(obj T) error {
	if b.IDOf(obj) == "" {
		return fmt.Errorf("insert into %s: object has no id", b.Kind.Name())
	}
	return nil
}

// PrecheckUpdate validates an object before an update.
func (b *Base[T]) PrecheckUpdate(obj T) error {
	if b.IDOf(obj) == "" {
		return fmt.Errorf("update in %s: object has no id", b.Kind.Name())
	}
	return nil
}

// PrecheckBatch validates a collection before a batch update. Individual
// objects are validated per item by the insert path, so only the
// collection itself is checked here.
func (b *Base[T]) PrecheckBatch(objs []T) error {
	if objs == nil {
		return fmt.Errorf("batch update in %s: nil collection", b.Kind.Name())
	}
	return nil
}
