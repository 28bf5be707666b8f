package humanize

import (
	"strings"

	"github.com/zxinyun/ai-humanizer-zh/internal/lexicon"
)

const dampenBaseProbability = 0.3

// Dampen softens AI markers inside whitespace separated tokens. Unsegmented
// Chinese is one token per run, so a token can hold several markers; at
// most one of them is rewritten. Whitespace is normalized to single spaces.
func Dampen(text string, v Variability, rng Rand) string {
	tokens := strings.Fields(text)
	p := dampenBaseProbability + v.dampenBonus()

	for i, token := range tokens {
		for _, marker := range lexicon.AIMarkers {
			if !strings.Contains(token, marker) || rng.Float64() >= p {
				continue
			}
			// markers without alternatives still consume the token
			if alternatives, ok := lexicon.MarkerAlternatives[marker]; ok {
				tokens[i] = strings.ReplaceAll(token, marker, choose(rng, alternatives))
			}
			break
		}
	}

	return strings.Join(tokens, " ")
}
