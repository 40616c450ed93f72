package manifest

import (
	"fmt"

	"github.com/kennel-io/kennel/internal/repo"
)

// Class is one declared class and its direct ancestors.
type Class struct {
	Name    string   `json:"name"`
	Extends []string `json:"extends,omitempty"`
}

// Object is one declared object. Fields carry the object's payload as
// decoded from the manifest; predicates over manifest objects match on
// these fields.
type Object struct {
	Class  string         `json:"class"`
	ID     repo.ID        `json:"id"`
	Fields map[string]any `json:"fields,omitempty"`
}

// EntityID implements repo.Identifiable.
func (o Object) EntityID() repo.ID { return o.ID }

// Field returns a named payload field, or nil when absent.
func (o Object) Field(name string) any {
	if o.Fields == nil {
		return nil
	}
	return o.Fields[name]
}

// Manifest is the loaded declaration set: classes and objects in
// declaration order.
type Manifest struct {
	Classes []Class
	Objects []Object
}

// ClassNames returns the declared class names in declaration order.
func (m *Manifest) ClassNames() []string {
	out := make([]string, len(m.Classes))
	for i, c := range m.Classes {
		out[i] = c.Name
	}
	return out
}

// classByName returns the declaration for a class name.
func (m *Manifest) classByName(name string) (Class, bool) {
	for _, c := range m.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return Class{}, false
}

// ValidationError describes one manifest defect.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// Validation error codes.
const (
	ErrCodeUnknownAncestor = "M001" // extends references an undeclared class
	ErrCodeCycle           = "M002" // inheritance cycle
	ErrCodeUnknownClass    = "M003" // object references an undeclared class
	ErrCodeDuplicateID     = "M004" // duplicate id within one class
)
