// Package types provides type definitions for the documents exchanged with the resume optimization backend.
package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-diff/internal/changeset"
	"github.com/jonathan/resume-diff/internal/resume"
	"github.com/tidwall/gjson"
)

// OptimizationResult is the backend response for one optimization run.
type OptimizationResult struct {
	InitialScore   float64  `json:"initial_score" validate:"gte=0,lte=100"`
	FinalScore     float64  `json:"final_score" validate:"gte=0,lte=100"`
	Summary        string   `json:"summary"`
	Strengths      []string `json:"strengths" validate:"dive,required"`
	Weaknesses     []string `json:"weaknesses" validate:"dive,required"`
	Feedback       string   `json:"feedback,omitempty"`
	PDFDownloadURL string   `json:"pdf_download_url,omitempty"`
	Diff           *Diff    `json:"diff,omitempty"`
}

// Diff carries the two résumé documents and the change-set between them.
// The parts stay raw until decoded with Documents.
type Diff struct {
	Original  json.RawMessage `json:"original" validate:"required"`
	Optimized json.RawMessage `json:"optimized" validate:"required"`
	Changes   json.RawMessage `json:"changes,omitempty"`
}

// Validate validates the OptimizationResult using the validator.
func (r *OptimizationResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ParseOptimizationResult decodes and validates a backend response.
func ParseOptimizationResult(data []byte) (*OptimizationResult, error) {
	var result OptimizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal optimization result: %w", err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid optimization result: %w", err)
	}
	return &result, nil
}

// Documents decodes the original and optimized résumés and the change-set.
// A missing change-set decodes as empty.
func (d *Diff) Documents() (original, optimized resume.Value, changes *changeset.Raw, err error) {
	if d == nil {
		return nil, nil, &changeset.Raw{}, nil
	}

	original, err = resume.Parse(d.Original)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode original resume: %w", err)
	}
	optimized, err = resume.Parse(d.Optimized)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode optimized resume: %w", err)
	}
	changes, err = changeset.Parse(d.Changes)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to decode changes: %w", err)
	}
	return original, optimized, changes, nil
}

// ChangesFromDocument decodes a change-set from either a bare change-set
// document or a response that nests it under diff.changes or changes.
func ChangesFromDocument(data []byte) (*changeset.Raw, error) {
	if gjson.ValidBytes(data) {
		for _, path := range []string{"diff.changes", "changes"} {
			if r := gjson.GetBytes(data, path); r.Exists() {
				return changeset.FromResult(r)
			}
		}
	}
	return changeset.Parse(data)
}
