package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-diff/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResult = `{
	"initial_score": 61,
	"final_score": 84,
	"summary": "Stronger alignment with the platform role",
	"strengths": ["Go", "Kubernetes"],
	"weaknesses": ["No frontend"],
	"pdf_download_url": "/download/abc123",
	"diff": {
		"original": {"title": "Engineer", "skills": ["Go"]},
		"optimized": {"title": "Senior Engineer", "skills": ["Go", "Kubernetes"]},
		"changes": {
			"values_changed": {"root['title']": {"old_value": "Engineer", "new_value": "Senior Engineer"}},
			"iterable_item_added": {"root['skills'][1]": "Kubernetes"}
		}
	}
}`

func TestParseOptimizationResult_Valid(t *testing.T) {
	result, err := ParseOptimizationResult([]byte(sampleResult))
	require.NoError(t, err)

	assert.Equal(t, 61.0, result.InitialScore)
	assert.Equal(t, 84.0, result.FinalScore)
	assert.Equal(t, []string{"Go", "Kubernetes"}, result.Strengths)
	assert.Equal(t, "/download/abc123", result.PDFDownloadURL)
	require.NotNil(t, result.Diff)

	original, optimized, changes, err := result.Diff.Documents()
	require.NoError(t, err)

	title, ok := original.(resume.Mapping).Get("title")
	require.True(t, ok)
	assert.Equal(t, resume.String("Engineer"), title)

	title, ok = optimized.(resume.Mapping).Get("title")
	require.True(t, ok)
	assert.Equal(t, resume.String("Senior Engineer"), title)

	assert.Equal(t, 2, changes.Len())
}

func TestParseOptimizationResult_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"malformed JSON", `{ invalid json }`, "failed to unmarshal"},
		{"score above range", `{"initial_score": 120, "final_score": 80}`, "InitialScore"},
		{"negative score", `{"initial_score": 50, "final_score": -1}`, "FinalScore"},
		{"empty strength", `{"initial_score": 50, "final_score": 60, "strengths": [""]}`, "Strengths[0]"},
		{"diff without original", `{"initial_score": 50, "final_score": 60, "diff": {"optimized": {}}}`, "Original"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseOptimizationResult([]byte(tt.input))
			assert.Nil(t, result)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOptimizationResult_ValidationErrorsAreTyped(t *testing.T) {
	r := &OptimizationResult{InitialScore: 101}
	err := r.Validate()
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "InitialScore", validationErrs[0].Field())
}

func TestDiff_DocumentsWithoutChanges(t *testing.T) {
	d := &Diff{Original: []byte(`{"a": 1}`), Optimized: []byte(`{"a": 2}`)}

	original, optimized, changes, err := d.Documents()
	require.NoError(t, err)
	assert.NotNil(t, original)
	assert.NotNil(t, optimized)
	assert.Equal(t, 0, changes.Len())
}

func TestDiff_DocumentsNil(t *testing.T) {
	var d *Diff
	original, optimized, changes, err := d.Documents()
	require.NoError(t, err)
	assert.Nil(t, original)
	assert.Nil(t, optimized)
	assert.Equal(t, 0, changes.Len())
}

func TestDiff_DocumentsBadPart(t *testing.T) {
	d := &Diff{Original: []byte(`{"a": 1}`), Optimized: []byte(`{"a": `)}

	_, _, _, err := d.Documents()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimized")
}

func TestChangesFromDocument(t *testing.T) {
	tests := []struct {
		name  string
		input string
		count int
	}{
		{"full response", sampleResult, 2},
		{"top-level changes", `{"changes": {"iterable_item_added": {"root['a'][0]": 1}}}`, 1},
		{"bare change-set", `{"values_changed": {"root['a']": {"old_value": 1, "new_value": 2}}}`, 1},
		{"empty", ``, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := ChangesFromDocument([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.count, raw.Len())
		})
	}
}
