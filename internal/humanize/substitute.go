package humanize

import (
	"strings"

	"github.com/zxinyun/ai-humanizer-zh/internal/lexicon"
)

// Substitute replaces every canonical phrase of the replacement table with
// one of its alternatives. All occurrences of a phrase get the same choice.
// Phrases are processed in table order, so an earlier replacement can
// create or destroy a later match.
func Substitute(text string, v Variability, rng Rand) string {
	for _, r := range lexicon.Replacements {
		if !strings.Contains(text, r.Phrase) {
			continue
		}
		text = strings.ReplaceAll(text, r.Phrase, pickAlternative(r.Alternatives, v, rng))
	}
	return text
}

func pickAlternative(alternatives []string, v Variability, rng Rand) string {
	switch v {
	case VariabilityLow:
		return alternatives[0]
	case VariabilityMedium:
		return choose(rng, alternatives)
	default:
		if len(alternatives) < 2 {
			return alternatives[0]
		}
		return choose(rng, alternatives[len(alternatives)-2:])
	}
}
