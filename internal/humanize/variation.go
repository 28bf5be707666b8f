package humanize

import (
	"strings"
	"unicode/utf8"

	"github.com/zxinyun/ai-humanizer-zh/internal/lexicon"
)

const (
	starterProbability     = 0.2
	fillerPassProbability  = 0.4
	fillerProbability      = 0.1
	synonymSwapProbability = 0.3

	fillerCutset = "。！？；,.!?;"
)

// Vary injects colloquial variation: sentence starters, filler particles
// and synonym swaps. Each sub-step has its own gate.
func Vary(text string, v Variability, style Style, rng Rand) string {
	text = injectStarters(text, v, style, rng)
	text = injectFillers(text, v, style, rng)
	text = swapSynonyms(text, v, rng)
	return text
}

func injectStarters(text string, v Variability, style Style, rng Rand) string {
	if !v.varied() || !style.relaxed() {
		return text
	}
	sentences := strings.Split(text, "。")
	if len(sentences) < 2 {
		return text
	}
	for i := 0; i < len(sentences)-1; i++ {
		if rng.Float64() >= starterProbability || hasStarter(sentences[i]) {
			continue
		}
		sentences[i] = choose(rng, lexicon.SentenceStarters) + sentences[i]
	}
	return strings.Join(sentences, "。")
}

func hasStarter(sentence string) bool {
	for _, starter := range lexicon.SentenceStarters {
		if strings.Contains(sentence, starter) {
			return true
		}
	}
	return false
}

func injectFillers(text string, v Variability, style Style, rng Rand) string {
	if !style.relaxed() || !v.varied() || rng.Float64() >= fillerPassProbability {
		return text
	}

	var b strings.Builder
	for _, segment := range splitAfterAny(text, fillerCutset) {
		b.WriteString(appendFiller(segment, rng))
	}
	return b.String()
}

// appendFiller puts a particle between a segment's content and its
// punctuation when the content starts with an ideograph. Trailing content
// without punctuation is never touched.
func appendFiller(segment string, rng Rand) string {
	last, size := utf8.DecodeLastRuneInString(segment)
	if !strings.ContainsRune(fillerCutset, last) {
		return segment
	}
	content := segment[:len(segment)-size]
	first, _ := utf8.DecodeRuneInString(content)
	if content == "" || !isIdeograph(first) || rng.Float64() >= fillerProbability {
		return segment
	}
	return content + choose(rng, lexicon.Fillers) + string(last)
}

func swapSynonyms(text string, v Variability, rng Rand) string {
	if !v.varied() {
		return text
	}
	for _, group := range lexicon.Synonyms {
		if strings.Contains(text, group.Phrase) && rng.Float64() < synonymSwapProbability {
			text = strings.ReplaceAll(text, group.Phrase, choose(rng, group.Alternatives))
		}
	}
	return text
}
