// Package event implements the validate-then-commit hub shared by every
// mutable entity. "Before" handlers may veto a mutation; "on" handlers observe
// it after it has been applied.
package event

// Type names a kind of mutation.
type Type string

const (
	BoundsChanged    Type = "BoundsChanged"
	PropertyChanged  Type = "PropertyChanged"
	StyleChanged     Type = "StyleChanged"
	ChildAdded       Type = "ChildAdded"
	ChildRemoved     Type = "ChildRemoved"
	ZOrderChanged    Type = "ZOrderChanged"
	PathChanged      Type = "PathChanged"
	ShapesSelected   Type = "ShapesSelected"
	ShapesUnselected Type = "ShapesUnselected"
)

// Event describes one mutation. Old and New hold the values before and after
// the change; their concrete type depends on Type and Name.
type Event struct {
	Type   Type
	Source interface{}
	Name   string // property name for PropertyChanged
	Old    interface{}
	New    interface{}
}

// Validator inspects a pending mutation. Returning false vetoes it.
type Validator func(e *Event) bool

// Observer is notified after a mutation has been applied.
type Observer func(e *Event)
