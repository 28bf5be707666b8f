// Package detector scans text for surface signals typical of generated
// Chinese prose. It never modifies its input.
package detector

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/zxinyun/ai-humanizer-zh/internal/lexicon"
)

var ideographRun = regexp.MustCompile(`[\x{4e00}-\x{9fff}]+`)

// The same separator recurring twice more; RE2 has no back-references.
var tripleStructure = regexp2.MustCompile(`([，,；;]).*?\1.*?\1`, regexp2.None)

// Detect counts every signal in text
func Detect(text string) Result {
	var result Result
	if text == "" {
		return result
	}

	for _, word := range ideographRun.FindAllString(text, -1) {
		if lexicon.IsAIMarker(word) {
			result.AIWords++
		}
	}

	for _, rule := range lexicon.NegationRules {
		result.NegativeParallelism += len(rule.Detect.FindAllStringIndex(text, -1))
	}

	result.TripleStructure = countMatches(tripleStructure, text)
	result.EmptyPhrase = countPresent(text, lexicon.EmptyPhrases)
	result.Exaggeration = countPresent(text, lexicon.ExaggerationPhrases)
	result.VagueAttribution = countPresent(text, lexicon.VagueAttributionPhrases)

	return result
}

// countPresent counts how many distinct phrases occur at least once
func countPresent(text string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			count++
		}
	}
	return count
}

func countMatches(re *regexp2.Regexp, text string) int {
	count := 0
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		count++
		m, err = re.FindNextMatch(m)
	}
	return count
}
