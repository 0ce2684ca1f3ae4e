// Package scoring summarizes the before/after ATS scores returned by the
// optimization backend and parses its legacy feedback text.
package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Direction of a score change.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Improvement describes how the score moved between the original and the
// optimized résumé.
type Improvement struct {
	Initial   float64 `json:"initial" yaml:"initial"`
	Final     float64 `json:"final" yaml:"final"`
	Delta     float64 `json:"delta" yaml:"delta"`
	Percent   int     `json:"percent" yaml:"percent"`
	Direction string  `json:"direction" yaml:"direction"`
}

// Improve computes the change from initial to final. Percent is relative to
// the initial score, rounded half up; it is zero when the initial score is
// zero. A zero delta counts as up.
func Improve(initial, final float64) Improvement {
	imp := Improvement{
		Initial:   initial,
		Final:     final,
		Delta:     final - initial,
		Direction: DirectionUp,
	}
	if imp.Delta < 0 {
		imp.Direction = DirectionDown
	}
	if initial != 0 {
		imp.Percent = int(math.Floor(imp.Delta/initial*100 + 0.5))
	}
	return imp
}

// Feedback is the structured form of the backend's feedback string.
type Feedback struct {
	Summary    string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Strengths  []string `json:"strengths" yaml:"strengths"`
	Weaknesses []string `json:"weaknesses" yaml:"weaknesses"`
	ATSScore   *int     `json:"ats_score,omitempty" yaml:"ats_score,omitempty"`
	Iterations *int     `json:"iterations,omitempty" yaml:"iterations,omitempty"`
}

var (
	summaryPattern    = regexp.MustCompile(`Summary:\s*([^\n]+)`)
	strengthsPattern  = regexp.MustCompile(`Strengths:\s*\[([^\]]+)\]`)
	weaknessesPattern = regexp.MustCompile(`Weaknesses:\s*\[([^\]]+)\]`)
	atsScorePattern   = regexp.MustCompile(`(?i)ATS Score:\s*(\d+)`)
	iterationsPattern = regexp.MustCompile(`(?i)Iterations:\s*(\d+)`)
)

// ParseFeedback extracts the known sections of a feedback string such as
//
//	Summary: Strong backend profile
//	Strengths: ['Go', 'Distributed systems']
//	Weaknesses: ['No frontend']
//	ATS Score: 82
//	Iterations: 3
//
// Missing sections are left empty.
func ParseFeedback(text string) Feedback {
	fb := Feedback{
		Strengths:  []string{},
		Weaknesses: []string{},
	}

	if m := summaryPattern.FindStringSubmatch(text); m != nil {
		fb.Summary = strings.TrimSpace(m[1])
	}
	if m := strengthsPattern.FindStringSubmatch(text); m != nil {
		fb.Strengths = splitList(m[1])
	}
	if m := weaknessesPattern.FindStringSubmatch(text); m != nil {
		fb.Weaknesses = splitList(m[1])
	}
	fb.ATSScore = matchInt(atsScorePattern, text)
	fb.Iterations = matchInt(iterationsPattern, text)
	return fb
}

// splitList splits a Python-style list body ('a', 'b') into trimmed,
// unquoted items.
func splitList(body string) []string {
	parts := strings.Split(body, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		item := strings.TrimSpace(p)
		item = strings.Trim(item, `'"`)
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

func matchInt(pattern *regexp.Regexp, text string) *int {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
