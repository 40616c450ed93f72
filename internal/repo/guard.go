package repo

// Guard runs fn and converts a chosen subset of failures into a boolean
// outcome. It is the per-item recovery helper behind BatchUpdate.
//
// Outcomes:
//   - fn returns nil: (true, nil).
//   - fn returns an error matched by recoverable: (false, nil).
//   - fn returns any other error: (false, err) — the caller decides.
//   - fn panics with an error matched by recoverable: (false, nil).
//   - fn panics with anything else: the panic propagates.
//
// Panics are inspected only when the panic value is an error; a conflict
// raised by insert fan-out panics with *ConflictError and is therefore
// recoverable when the caller says so.
func Guard(fn func() error, recoverable func(error) bool) (ok bool, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rerr, isErr := r.(error); isErr && recoverable(rerr) {
			ok, err = false, nil
			return
		}
		panic(r)
	}()

	if ferr := fn(); ferr != nil {
		if recoverable(ferr) {
			return false, nil
		}
		return false, ferr
	}
	return true, nil
}
