package changeset

import (
	"errors"
	"testing"

	"github.com/jonathan/resume-diff/internal/diffpath"
	"github.com/jonathan/resume-diff/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleChanges = `{
	"type_changes": {
		"root['summary']": {"old_type": "str", "new_type": "list", "old_value": "Builder", "new_value": ["Builder", "Mentor"]}
	},
	"values_changed": {
		"root['title']": {"old_value": "Engineer", "new_value": "Senior Engineer"}
	},
	"iterable_item_added": {
		"root['skills'][1]": "Rust",
		"root['skills'][2]": {"new_value": "Kubernetes"}
	},
	"iterable_item_removed": {
		"root['certifications'][0]": {"name": "CKA", "year": 2020}
	}
}`

func TestParse_AllMappings(t *testing.T) {
	raw, err := Parse([]byte(sampleChanges))
	require.NoError(t, err)
	require.NotNil(t, raw)

	assert.Equal(t, 5, raw.Len())
	assert.Empty(t, raw.Malformed)

	require.Len(t, raw.TypeChanges, 1)
	tc := raw.TypeChanges[0]
	assert.Equal(t, "root['summary']", tc.Path)
	assert.Equal(t, "str", tc.Record.OldType)
	assert.Equal(t, "list", tc.Record.NewType)
	assert.Equal(t, resume.String("Builder"), tc.Record.OldValue)
	assert.Equal(t, resume.NewSequence(resume.String("Builder"), resume.String("Mentor")), tc.Record.NewValue)

	require.Len(t, raw.ValuesChanged, 1)
	assert.Equal(t, resume.String("Engineer"), raw.ValuesChanged[0].Record.OldValue)
	assert.Equal(t, resume.String("Senior Engineer"), raw.ValuesChanged[0].Record.NewValue)

	require.Len(t, raw.ItemsAdded, 2)
	assert.Equal(t, "root['skills'][1]", raw.ItemsAdded[0].Path)
	assert.Equal(t, resume.String("Rust"), raw.ItemsAdded[0].Record.NewValue, "bare items are the value itself")
	assert.Equal(t, resume.String("Kubernetes"), raw.ItemsAdded[1].Record.NewValue, "records carry new_value")

	require.Len(t, raw.ItemsRemoved, 1)
	removed, ok := raw.ItemsRemoved[0].Record.OldValue.(resume.Mapping)
	require.True(t, ok, "objects without record keys are bare items")
	assert.Equal(t, []string{"name", "year"}, removed.Keys())
}

func TestParse_CamelCaseAliases(t *testing.T) {
	raw, err := Parse([]byte(`{
		"valuesChanged": {"root['title']": {"old_value": "A", "new_value": "B"}},
		"itemsAdded": {"root['skills'][1]": {"new_value": "Rust"}}
	}`))
	require.NoError(t, err)

	assert.Len(t, raw.ValuesChanged, 1)
	require.Len(t, raw.ItemsAdded, 1)
	assert.Equal(t, resume.String("Rust"), raw.ItemsAdded[0].Record.NewValue)
}

func TestParse_EmptyDocuments(t *testing.T) {
	for _, input := range []string{"", "  ", "null", "{}"} {
		t.Run(input, func(t *testing.T) {
			raw, err := Parse([]byte(input))
			require.NoError(t, err)
			assert.Equal(t, 0, raw.Len())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", "{ invalid json }"},
		{"array", `["root['x']"]`},
		{"string", `"changes"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Parse([]byte(tt.input))
			assert.Nil(t, raw)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr), "error should be ParseError")
		})
	}
}

func TestParse_MalformedEntriesAreReported(t *testing.T) {
	raw, err := Parse([]byte(`{
		"type_changes": {"root['a']": {"old_value": 1, "new_value": "1"}},
		"values_changed": {
			"root['b']": {"new_value": "only new"},
			"root['c']": "not a record",
			"root['d']": {"old_value": "x", "new_value": "y"}
		},
		"iterable_item_added": {"root['e'][0]": {"old_value": "wrong side"}},
		"iterable_item_removed": ["not", "an", "object"]
	}`))
	require.NoError(t, err)

	assert.Empty(t, raw.TypeChanges)
	require.Len(t, raw.ValuesChanged, 1)
	assert.Equal(t, "root['d']", raw.ValuesChanged[0].Path)
	assert.Empty(t, raw.ItemsAdded)
	assert.Empty(t, raw.ItemsRemoved)

	require.Len(t, raw.Malformed, 5)
	assert.Equal(t, FieldTypeChanges, raw.Malformed[0].Field)
	assert.Equal(t, "root['a']", raw.Malformed[0].Path)
	assert.Equal(t, FieldItemsRemoved, raw.Malformed[4].Field)
	assert.Empty(t, raw.Malformed[4].Path)
}

func TestNormalize_Variants(t *testing.T) {
	raw, err := Parse([]byte(sampleChanges))
	require.NoError(t, err)

	ix := Normalize(raw)
	assert.Equal(t, 5, ix.Len())
	assert.Empty(t, ix.Skipped())

	c, ok := ix.Lookup(diffpath.MustParse("root['summary']"))
	require.True(t, ok)
	tc, ok := c.(TypeChanged)
	require.True(t, ok)
	assert.Equal(t, "str", tc.OldType)
	assert.Equal(t, "list", tc.NewType)

	c, ok = ix.Lookup(diffpath.MustParse("root['title']"))
	require.True(t, ok)
	assert.Equal(t, Modified{Old: resume.String("Engineer"), New: resume.String("Senior Engineer")}, c)

	c, ok = ix.Lookup(diffpath.MustParse("root['skills'][1]"))
	require.True(t, ok)
	assert.Equal(t, Added{Value: resume.String("Rust")}, c)

	c, ok = ix.Lookup(diffpath.MustParse("root['certifications'][0]"))
	require.True(t, ok)
	assert.Equal(t, KindRemoved, c.Kind())

	_, ok = ix.Lookup(diffpath.MustParse("root['skills'][0]"))
	assert.False(t, ok)
}

func TestNormalize_PrecedenceModifiedAddedRemoved(t *testing.T) {
	raw := &Raw{
		ItemsRemoved:  []RawEntry{{Path: "root['x'][0]", Record: Record{OldValue: resume.String("old")}}},
		ItemsAdded:    []RawEntry{{Path: "root['x'][0]", Record: Record{NewValue: resume.String("new")}}, {Path: "root['y'][0]"}},
		ValuesChanged: []RawEntry{{Path: "root['x'][0]", Record: Record{OldValue: resume.String("old"), NewValue: resume.String("new")}}},
	}
	raw.ItemsRemoved = append(raw.ItemsRemoved, RawEntry{Path: "root['y'][0]"})

	ix := Normalize(raw)

	c, ok := ix.Lookup(diffpath.MustParse("root['x'][0]"))
	require.True(t, ok)
	assert.Equal(t, KindModified, c.Kind(), "values_changed wins over added and removed")

	c, ok = ix.Lookup(diffpath.MustParse("root['y'][0]"))
	require.True(t, ok)
	assert.Equal(t, KindAdded, c.Kind(), "added wins over removed")

	assert.Len(t, ix.Skipped(), 3)
	assert.Equal(t, 2, ix.Len())
}

func TestNormalize_TypeChangeBeatsValueChange(t *testing.T) {
	ix := Normalize(&Raw{
		ValuesChanged: []RawEntry{{Path: "root['a']"}},
		TypeChanges:   []RawEntry{{Path: "root['a']", Record: Record{OldType: "int", NewType: "str"}}},
	})

	c, ok := ix.Lookup(diffpath.MustParse("root['a']"))
	require.True(t, ok)
	assert.Equal(t, KindTypeChanged, c.Kind())
}

func TestNormalize_FirstWriteWinsWithinMapping(t *testing.T) {
	ix := Normalize(&Raw{
		ValuesChanged: []RawEntry{
			{Path: "root['a']", Record: Record{NewValue: resume.String("first")}},
			{Path: `root["a"]`, Record: Record{NewValue: resume.String("second")}},
		},
	})

	c, ok := ix.Lookup(diffpath.MustParse("root['a']"))
	require.True(t, ok)
	assert.Equal(t, resume.String("first"), c.(Modified).New)
	assert.Len(t, ix.Skipped(), 1)
}

func TestNormalize_UnparseablePathsSkipped(t *testing.T) {
	ix := Normalize(&Raw{
		ValuesChanged: []RawEntry{
			{Path: "root.title"},
			{Path: "root['name']"},
		},
	})

	assert.Equal(t, 1, ix.Len())
	skipped := ix.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "root.title", skipped[0].Path)
	assert.Equal(t, FieldValuesChanged, skipped[0].Field)
}

func TestNormalize_CarriesMalformedEntries(t *testing.T) {
	ix := Normalize(&Raw{Malformed: []Skipped{{Field: FieldValuesChanged, Path: "root['a']", Reason: "bad"}}})
	require.Len(t, ix.Skipped(), 1)
	assert.Equal(t, "values_changed root['a']: bad", ix.Skipped()[0].String())
}

func TestIndex_NilSafe(t *testing.T) {
	var ix *Index
	_, ok := ix.Lookup(diffpath.MustParse("root['a']"))
	assert.False(t, ok)
	assert.Equal(t, 0, ix.Len())
	assert.Nil(t, ix.Paths())
	assert.Nil(t, ix.Skipped())

	empty := Normalize(nil)
	assert.Equal(t, 0, empty.Len())
}

func TestIndex_PathsInOrder(t *testing.T) {
	raw, err := Parse([]byte(sampleChanges))
	require.NoError(t, err)

	var got []string
	for _, p := range Normalize(raw).Paths() {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"root['summary']",
		"root['title']",
		"root['skills'][1]",
		"root['skills'][2]",
		"root['certifications'][0]",
	}, got)
}
