package changeset

import (
	"github.com/jonathan/resume-diff/internal/diffpath"
)

// Index is a normalized change-set: one Change per path. It is built once
// and only read afterwards, so it is safe for concurrent use.
type Index struct {
	changes map[string]Change
	paths   []diffpath.Path
	skipped []Skipped
}

// Normalize folds the four producer mappings into an Index.
//
// A path listed in more than one mapping keeps the first classification in
// the order type_changes, values_changed, iterable_item_added,
// iterable_item_removed, i.e. modified beats added beats removed. Entries
// whose path does not parse are skipped and reported.
func Normalize(raw *Raw) *Index {
	ix := &Index{changes: make(map[string]Change)}
	if raw == nil {
		return ix
	}
	ix.skipped = append(ix.skipped, raw.Malformed...)

	ix.addAll(FieldTypeChanges, raw.TypeChanges, func(r Record) Change {
		return TypeChanged{OldType: r.OldType, NewType: r.NewType, Old: r.OldValue, New: r.NewValue}
	})
	ix.addAll(FieldValuesChanged, raw.ValuesChanged, func(r Record) Change {
		return Modified{Old: r.OldValue, New: r.NewValue}
	})
	ix.addAll(FieldItemsAdded, raw.ItemsAdded, func(r Record) Change {
		return Added{Value: r.NewValue}
	})
	ix.addAll(FieldItemsRemoved, raw.ItemsRemoved, func(r Record) Change {
		return Removed{Value: r.OldValue}
	})
	return ix
}

func (ix *Index) addAll(field string, entries []RawEntry, build func(Record) Change) {
	for _, e := range entries {
		path, err := diffpath.Parse(e.Path)
		if err != nil {
			ix.skipped = append(ix.skipped, Skipped{Field: field, Path: e.Path, Reason: err.Error()})
			continue
		}

		key := path.String()
		if existing, ok := ix.changes[key]; ok {
			ix.skipped = append(ix.skipped, Skipped{
				Field:  field,
				Path:   e.Path,
				Reason: "path already classified as " + existing.Kind().String(),
			})
			continue
		}
		ix.changes[key] = build(e.Record)
		ix.paths = append(ix.paths, path)
	}
}

// Lookup returns the change recorded for path. A nil Index has no changes.
func (ix *Index) Lookup(path diffpath.Path) (Change, bool) {
	if ix == nil {
		return nil, false
	}
	c, ok := ix.changes[path.String()]
	return c, ok
}

// Len returns the number of indexed paths.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.paths)
}

// Paths returns the indexed paths in normalization order.
func (ix *Index) Paths() []diffpath.Path {
	if ix == nil {
		return nil
	}
	out := make([]diffpath.Path, len(ix.paths))
	copy(out, ix.paths)
	return out
}

// Skipped returns the entries that were not indexed and why.
func (ix *Index) Skipped() []Skipped {
	if ix == nil {
		return nil
	}
	out := make([]Skipped, len(ix.skipped))
	copy(out, ix.skipped)
	return out
}
