package annotate

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-diff/internal/diffpath"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label turns a field key into a display label: underscores become spaces
// and the first letter of every word is upper-cased. The rest of each word is
// left as is, so "job_title" is "Job Title" and "ats_score" is "Ats Score".
func Label(key string) string {
	words := strings.Split(key, "_")
	// Casers keep state and must not be shared across goroutines.
	upper := cases.Upper(language.Und)
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = upper.String(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}

// IndexLabel is the display label of an array item.
func IndexLabel(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func segmentLabel(path diffpath.Path) (key, label string) {
	if len(path) == 0 {
		return "", "Root"
	}
	last := path[len(path)-1]
	if last.IsIndex() {
		return "", IndexLabel(last.Position())
	}
	return last.Name(), Label(last.Name())
}
