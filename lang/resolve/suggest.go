package resolve

import (
	"github.com/sahilm/fuzzy"
)

// maxSuggestions is the most "did you mean" candidates a diagnostic carries.
const maxSuggestions = 3

// suggest returns the candidates that best fuzzy-match name, best first.
func suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	var out []string

	for _, m := range fuzzy.Find(name, candidates) {
		if m.Str == name {
			continue
		}

		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}

	return out
}
