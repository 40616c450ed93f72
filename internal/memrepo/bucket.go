package memrepo

import "github.com/kennel-io/kennel/internal/repo"

// bucket is one kind's id → object mapping. It preserves insertion order
// so snapshots and filters are deterministic; callers must not rely on
// that ordering for correctness.
type bucket struct {
	items map[repo.ID]any
	order []repo.ID
}

func newBucket() *bucket {
	return &bucket{items: make(map[repo.ID]any)}
}

// put writes the object under id, appending to the iteration order only
// when the id is new.
func (b *bucket) put(id repo.ID, obj any) {
	if _, exists := b.items[id]; !exists {
		b.order = append(b.order, id)
	}
	b.items[id] = obj
}

func (b *bucket) get(id repo.ID) (any, bool) {
	obj, ok := b.items[id]
	return obj, ok
}

func (b *bucket) has(id repo.ID) bool {
	_, ok := b.items[id]
	return ok
}

// remove deletes the id and returns the removed object.
func (b *bucket) remove(id repo.ID) (any, bool) {
	obj, ok := b.items[id]
	if !ok {
		return nil, false
	}
	delete(b.items, id)
	for i, existing := range b.order {
		if existing == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return obj, true
}

func (b *bucket) size() int { return len(b.items) }

// values returns the objects in insertion order.
func (b *bucket) values() []any {
	out := make([]any, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.items[id])
	}
	return out
}

// clear empties the bucket in place.
func (b *bucket) clear() {
	b.items = make(map[repo.ID]any)
	b.order = nil
}
