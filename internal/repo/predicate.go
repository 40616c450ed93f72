package repo

// Predicate is a boolean condition over a single object. Filtering is a
// full bucket scan; there is no indexing or query planning.
type Predicate[T any] func(T) bool

// And returns a predicate that is true when every given predicate is true.
// With no arguments it is true for every object.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(obj T) bool {
		for _, p := range preds {
			if !p(obj) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate that is true when any given predicate is true.
// With no arguments it is false for every object.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(obj T) bool {
		for _, p := range preds {
			if p(obj) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(obj T) bool { return !p(obj) }
}
