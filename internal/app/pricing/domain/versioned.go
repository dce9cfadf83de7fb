package domain

// Versioned is implemented by every mutable business value.
// Versions start at 1 and each successor derived from a value increments it by exactly 1.
// Writers compare expected and actual versions to detect concurrent modification.
type Versioned interface {
	Version() int
}

// Droppable is a versioned value that can be soft-deleted.
// A dropped value is logically absent but physically retained so that a later
// write under the same identity continues the version lineage instead of restarting at 1.
type Droppable interface {
	Versioned
	Dropped() bool
	Exists() bool
}

var (
	_ Droppable = (*Price)(nil)
	_ Versioned = (*Prices)(nil)
)
