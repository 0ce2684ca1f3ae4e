// Package schemas holds the JSON Schema documents shipped with the binary.
package schemas

import "embed"

// Files contains every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// File names of the shipped schemas.
const (
	ResultFile  = "result.schema.json"
	ChangesFile = "changes.schema.json"
	ResumeFile  = "resume.schema.json"
)
