package manifest

import (
	"fmt"
	"strings"
)

// Validate checks hierarchy consistency and object declarations,
// collecting every defect rather than stopping at the first.
func Validate(m *Manifest) []ValidationError {
	var errs []ValidationError

	declared := make(map[string]bool, len(m.Classes))
	for _, c := range m.Classes {
		declared[c.Name] = true
	}

	for _, c := range m.Classes {
		for _, parent := range c.Extends {
			if !declared[parent] {
				errs = append(errs, ValidationError{
					Field:   "class." + c.Name,
					Message: fmt.Sprintf("extends undeclared class %q", parent),
					Code:    ErrCodeUnknownAncestor,
				})
			}
		}
	}

	errs = append(errs, detectCycles(m)...)

	seen := make(map[string]bool, len(m.Objects))
	for i, o := range m.Objects {
		if !declared[o.Class] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("object[%d]", i),
				Message: fmt.Sprintf("references undeclared class %q", o.Class),
				Code:    ErrCodeUnknownClass,
			})
			continue
		}
		key := o.Class + "/" + string(o.ID)
		if seen[key] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("object[%d]", i),
				Message: fmt.Sprintf("duplicate id %q in class %q", string(o.ID), o.Class),
				Code:    ErrCodeDuplicateID,
			})
		}
		seen[key] = true
	}

	return errs
}

// detectCycles walks the extends graph depth-first with the usual
// three-color marking. Unlike sync-rule cycle analysis, an inheritance
// cycle is always an error: a class cannot be its own ancestor.
func detectCycles(m *Manifest) []ValidationError {
	const (
		white = iota // unvisited
		gray         // on the current path
		black        // done
	)

	color := make(map[string]int, len(m.Classes))
	var errs []ValidationError

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		color[name] = gray
		path = append(path, name)

		if c, ok := m.classByName(name); ok {
			for _, parent := range c.Extends {
				switch color[parent] {
				case white:
					if _, declared := m.classByName(parent); declared {
						visit(parent, path)
					}
				case gray:
					errs = append(errs, ValidationError{
						Field:   "class." + parent,
						Message: fmt.Sprintf("inheritance cycle: %s", strings.Join(append(path, parent), " -> ")),
						Code:    ErrCodeCycle,
					})
				}
			}
		}

		color[name] = black
	}

	for _, c := range m.Classes {
		if color[c.Name] == white {
			visit(c.Name, nil)
		}
	}
	return errs
}
