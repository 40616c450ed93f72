package kind

import (
	"fmt"
	"reflect"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies a class of stored objects and its declared ancestry.
//
// Ancestry is static: parents are fixed at construction and never change.
// A Kind is immutable after New returns, so it is safe to share across
// goroutines and store instances.
type Kind struct {
	name    string
	parents []*Kind
}

// New creates a Kind with the given qualified name and declared parents.
// The name is NFC-normalized before use as an identifier.
// New panics on an empty name: a kind without an identifier cannot key
// any registry state.
func New(name string, parents ...*Kind) *Kind {
	normalized := norm.NFC.String(name)
	if normalized == "" {
		panic("kind: empty name")
	}
	k := &Kind{name: normalized}
	if len(parents) > 0 {
		k.parents = make([]*Kind, len(parents))
		copy(k.parents, parents)
	}
	return k
}

// Of creates a Kind named after the Go type T, with the given declared
// parents. The name is derived with Qualified, so it is stable across
// processes for the same type.
func Of[T any](parents ...*Kind) *Kind {
	return New(Qualified(reflect.TypeOf((*T)(nil)).Elem()), parents...)
}

// Name returns the normalized identifier of the kind.
func (k *Kind) Name() string { return k.name }

// Parents returns the directly declared parent kinds, in declaration order.
func (k *Kind) Parents() []*Kind {
	out := make([]*Kind, len(k.parents))
	copy(out, k.parents)
	return out
}

// Ancestors returns every transitive ancestor of the kind, most-derived
// first, deduplicated, excluding the kind itself. The walk is a pre-order
// traversal of the declared parent chain, so the result is deterministic
// for a given declaration.
func (k *Kind) Ancestors() []*Kind {
	var out []*Kind
	seen := map[string]bool{k.name: true}
	var walk func(parents []*Kind)
	walk = func(parents []*Kind) {
		for _, p := range parents {
			if seen[p.name] {
				continue
			}
			seen[p.name] = true
			out = append(out, p)
			walk(p.parents)
		}
	}
	walk(k.parents)
	return out
}

// String implements fmt.Stringer.
func (k *Kind) String() string { return k.name }

// Qualified derives a stable identifier for a Go type: the package path
// joined with the type name, e.g. "github.com/acme/zoo.Animal". Pointer
// types resolve to their element type. Types without a package path
// (builtins, anonymous types) fall back to reflect's own notation.
func Qualified(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() != "" && t.Name() != "" {
		return norm.NFC.String(fmt.Sprintf("%s.%s", t.PkgPath(), t.Name()))
	}
	return norm.NFC.String(t.String())
}
