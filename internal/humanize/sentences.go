package humanize

import (
	"strings"
	"unicode/utf8"
)

const (
	sentenceTerminators = "。！？；.!?;"
	clauseSeparators    = "，,；;、"

	longSentenceIdeographs  = 40
	subSentenceIdeographs   = 15
	shortSentenceIdeographs = 10
	mergeTargetIdeographs   = 30
)

// Redistribute varies sentence length: long sentences are cut at clause
// separators, and at high variability short sentences are folded into a
// short predecessor. At low variability the text is returned unchanged.
func Redistribute(text string, v Variability) string {
	if v == VariabilityLow {
		return text
	}

	var out []string
	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		n := countIdeographs(sentence)
		switch {
		case n > longSentenceIdeographs:
			if pieces := splitClauses(sentence); len(pieces) > 3 {
				out = append(out, regroupClauses(pieces)...)
				continue
			}
		case n < shortSentenceIdeographs && v == VariabilityHigh && len(out) > 0:
			prev := out[len(out)-1]
			if countIdeographs(prev) < mergeTargetIdeographs {
				out[len(out)-1] = strings.TrimRight(prev, sentenceTerminators) + "，" + strings.TrimLeft(sentence, sentenceTerminators)
				continue
			}
		}

		out = append(out, sentence)
	}

	return strings.Join(out, "")
}

// splitSentences cuts text after every terminator. Content left after the
// last terminator is kept as a final, unterminated sentence.
func splitSentences(text string) []string {
	return splitAfterAny(text, sentenceTerminators)
}

func splitAfterAny(text, cutset string) []string {
	var parts []string
	start := 0
	for i, r := range text {
		if strings.ContainsRune(cutset, r) {
			end := i + utf8.RuneLen(r)
			parts = append(parts, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// splitClauses splits on clause separators, keeping each separator as its
// own piece: content, sep, content, sep, ..., content.
func splitClauses(sentence string) []string {
	var pieces []string
	start := 0
	for i, r := range sentence {
		if strings.ContainsRune(clauseSeparators, r) {
			pieces = append(pieces, sentence[start:i], string(r))
			start = i + utf8.RuneLen(r)
		}
	}
	return append(pieces, sentence[start:])
}

// regroupClauses closes a sub-sentence after a separator once it holds more
// than subSentenceIdeographs ideographs.
func regroupClauses(pieces []string) []string {
	var sentences []string
	var current strings.Builder

	for i, piece := range pieces {
		current.WriteString(piece)
		if i%2 == 1 && countIdeographs(current.String()) > subSentenceIdeographs {
			closed := strings.TrimSpace(current.String())
			closed = strings.TrimSuffix(closed, piece)
			sentences = append(sentences, strings.TrimSpace(closed)+"。")
			current.Reset()
		}
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		if !endsWithTerminator(rest) {
			rest += "。"
		}
		sentences = append(sentences, rest)
	}
	return sentences
}

func endsWithTerminator(s string) bool {
	for _, r := range sentenceTerminators {
		if strings.HasSuffix(s, string(r)) {
			return true
		}
	}
	return false
}

func isIdeograph(r rune) bool {
	return r >= 0x4e00 && r <= 0x9fff
}

func countIdeographs(s string) int {
	n := 0
	for _, r := range s {
		if isIdeograph(r) {
			n++
		}
	}
	return n
}
