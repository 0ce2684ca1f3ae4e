// Package changeset models the output of the external structural-diff tool
// that compares an original and an optimized résumé, and normalizes it into a
// single index from path to change.
package changeset

import (
	"fmt"

	"github.com/jonathan/resume-diff/internal/resume"
)

// Field names used by the diff producer.
const (
	FieldTypeChanges   = "type_changes"
	FieldValuesChanged = "values_changed"
	FieldItemsAdded    = "iterable_item_added"
	FieldItemsRemoved  = "iterable_item_removed"
)

// Record is the detail attached to one path in the producer's output.
// Values are nil when the producer omitted them.
type Record struct {
	OldValue resume.Value
	NewValue resume.Value
	OldType  string
	NewType  string
}

// RawEntry is one path/record pair in document order.
type RawEntry struct {
	Path   string
	Record Record
}

// Raw is the change-set exactly as produced upstream: four mappings from
// path string to record. Entries keep document order.
type Raw struct {
	TypeChanges   []RawEntry
	ValuesChanged []RawEntry
	ItemsAdded    []RawEntry
	ItemsRemoved  []RawEntry
	// Malformed lists entries the decoder could not turn into a record.
	Malformed []Skipped
}

// Len returns the total number of entries across the four mappings.
func (r *Raw) Len() int {
	if r == nil {
		return 0
	}
	return len(r.TypeChanges) + len(r.ValuesChanged) + len(r.ItemsAdded) + len(r.ItemsRemoved)
}

// Kind identifies the variant of a Change.
type Kind int

const (
	KindAdded Kind = iota + 1
	KindRemoved
	KindModified
	KindTypeChanged
)

func (k Kind) String() string {
	switch k {
	case KindAdded:
		return "added"
	case KindRemoved:
		return "removed"
	case KindModified:
		return "modified"
	case KindTypeChanged:
		return "type_changed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Change is the normalized classification of one path. The set of
// implementations is closed: Added, Removed, Modified and TypeChanged.
type Change interface {
	Kind() Kind
	isChange()
}

// Added marks an array item present only in the optimized résumé.
type Added struct {
	Value resume.Value
}

// Removed marks an array item present only in the original résumé.
type Removed struct {
	Value resume.Value
}

// Modified marks a value that changed without changing type.
type Modified struct {
	Old resume.Value
	New resume.Value
}

// TypeChanged marks a value whose type changed, e.g. string to array.
type TypeChanged struct {
	OldType string
	NewType string
	Old     resume.Value
	New     resume.Value
}

func (Added) Kind() Kind       { return KindAdded }
func (Removed) Kind() Kind     { return KindRemoved }
func (Modified) Kind() Kind    { return KindModified }
func (TypeChanged) Kind() Kind { return KindTypeChanged }

func (Added) isChange()       {}
func (Removed) isChange()     {}
func (Modified) isChange()    {}
func (TypeChanged) isChange() {}

// Skipped describes an entry that was left out of the index.
type Skipped struct {
	Field  string
	Path   string
	Reason string
}

func (s Skipped) String() string {
	return fmt.Sprintf("%s %s: %s", s.Field, s.Path, s.Reason)
}
