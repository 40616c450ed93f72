package manifest

import (
	"fmt"
	"sort"

	"github.com/kennel-io/kennel/internal/kind"
	"github.com/kennel-io/kennel/internal/memrepo"
	"github.com/kennel-io/kennel/internal/repo"
)

// World is a materialized manifest: the registry holding every bucket and
// a store per declared class.
type World struct {
	Registry *memrepo.Registry
	Stores   map[string]*memrepo.Store[Object]
	Kinds    map[string]*kind.Kind
}

// Store returns the store for a class name.
func (w *World) Store(class string) (*memrepo.Store[Object], bool) {
	s, ok := w.Stores[class]
	return s, ok
}

// Build materializes a validated manifest into the given registry.
//
// Every class is registered before any store is constructed, so each
// store's frozen lineage covers the complete declared hierarchy. Objects
// are then inserted in declaration order; an id collision across the
// hierarchy is reported as an error rather than a panic, since here it
// signals bad input, not a programming bug.
func Build(m *Manifest, reg *memrepo.Registry) (*World, error) {
	if errs := Validate(m); len(errs) > 0 {
		return nil, &errs[0]
	}

	kinds := make(map[string]*kind.Kind, len(m.Classes))
	var kindFor func(name string) *kind.Kind
	kindFor = func(name string) *kind.Kind {
		if k, ok := kinds[name]; ok {
			return k
		}
		c, _ := m.classByName(name)
		parents := make([]*kind.Kind, 0, len(c.Extends))
		for _, parent := range c.Extends {
			parents = append(parents, kindFor(parent))
		}
		k := kind.New(name, parents...)
		kinds[name] = k
		return k
	}

	// Deterministic registration and construction order.
	names := m.ClassNames()
	sort.Strings(names)

	for _, name := range names {
		reg.Register(kindFor(name))
	}

	stores := make(map[string]*memrepo.Store[Object], len(names))
	for _, name := range names {
		stores[name] = memrepo.NewStore[Object](reg, kinds[name])
	}

	for i, obj := range m.Objects {
		st := stores[obj.Class]
		ok, err := repo.Guard(func() error { return st.Insert(obj) }, repo.IsConflict)
		if err != nil {
			return nil, fmt.Errorf("object[%d] %s/%s: %w", i, obj.Class, string(obj.ID), err)
		}
		if !ok {
			return nil, fmt.Errorf("object[%d] %s/%s: id already present in an ancestor class",
				i, obj.Class, string(obj.ID))
		}
	}

	return &World{Registry: reg, Stores: stores, Kinds: kinds}, nil
}
