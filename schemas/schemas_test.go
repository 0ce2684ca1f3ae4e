package schemas

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

var schemaFiles = []string{
	ResultFile,
	ChangesFile,
	ResumeFile,
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Files.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_Compile(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := Files.ReadFile(schemaFile)
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))
			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			assert.Contains(t, schemaObj, "title")

			_, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			assert.NoError(t, err, "schema should compile: %s", schemaFile)
		})
	}
}

func TestEmbeddedFiles_NoStrays(t *testing.T) {
	matches, err := fs.Glob(Files, "*.schema.json")
	require.NoError(t, err)
	assert.ElementsMatch(t, schemaFiles, matches)
}

func TestChangesSchema_PathKeys(t *testing.T) {
	data, err := Files.ReadFile(ChangesFile)
	require.NoError(t, err)
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	require.NoError(t, err)

	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"quoted keys and index", `{"iterable_item_added": {"root['skills'][1]": "Kubernetes"}}`, true},
		{"double quoted key", `{"iterable_item_added": {"root[\"it's\"]": 1}}`, true},
		{"bare root", `{"values_changed": {"root": {"old_value": 1, "new_value": 2}}}`, true},
		{"null document", `null`, true},
		{"dotted path", `{"iterable_item_added": {"root.skills": 1}}`, false},
		{"unquoted key", `{"iterable_item_removed": {"root[skills]": 1}}`, false},
		{"value change missing new value", `{"values_changed": {"root['a']": {"old_value": 1}}}`, false},
		{"type change with non-string type", `{"type_changes": {"root['a']": {"old_type": 1, "new_type": "str"}}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := schema.Validate(gojsonschema.NewStringLoader(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid(), "%v", result.Errors())
		})
	}
}
