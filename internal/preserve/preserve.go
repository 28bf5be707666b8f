// Package preserve shields caller chosen phrases from the rewrite stages by
// swapping them for reserved placeholder tokens before a run and back after.
package preserve

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
)

const placeholderPrefix = "__KEEP_"

// Span pairs a placeholder token with the phrase it stands for
type Span struct {
	Placeholder string `json:"placeholder"`
	Phrase      string `json:"phrase"`
}

// Set holds the spans of one protected text in phrase order. A nil or empty
// Set restores nothing.
type Set struct {
	spans    []Span
	restorer *strings.Replacer
}

// Spans returns a copy of the placeholder to phrase pairs
func (s *Set) Spans() []Span {
	if s == nil {
		return nil
	}
	return append([]Span(nil), s.spans...)
}

// Len returns the number of protected phrases
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.spans)
}

// Protect replaces every occurrence of each phrase with its placeholder.
// Phrases are matched in one left-to-right scan; where two phrases start at
// the same position the earlier one in the list wins. Empty and duplicate
// phrases are ignored.
func Protect(text string, phrases []string) (string, *Set) {
	phrases = uniquePhrases(phrases)
	if len(phrases) == 0 || text == "" {
		return text, &Set{}
	}

	nonce := newNonce(text, phrases)
	set := &Set{spans: make([]Span, 0, len(phrases))}
	protectPairs := make([]string, 0, 2*len(phrases))
	restorePairs := make([]string, 0, 2*len(phrases))

	for i, phrase := range phrases {
		placeholder := fmt.Sprintf("%s%s_%d__", placeholderPrefix, nonce, i)
		set.spans = append(set.spans, Span{Placeholder: placeholder, Phrase: phrase})
		protectPairs = append(protectPairs, phrase, placeholder)
		restorePairs = append(restorePairs, placeholder, phrase)
	}
	set.restorer = strings.NewReplacer(restorePairs...)

	return strings.NewReplacer(protectPairs...).Replace(text), set
}

// Restore puts the original phrases back in place of their placeholders
func (s *Set) Restore(text string) string {
	if s == nil || s.restorer == nil {
		return text
	}
	return s.restorer.Replace(text)
}

// Runner is anything that rewrites text with options, usually a
// *humanize.Pipeline.
type Runner interface {
	Run(text string, opts humanize.Options) humanize.Result
}

// Run protects phrases, rewrites the protected text and restores the result
func Run(r Runner, text string, phrases []string, opts humanize.Options) humanize.Result {
	protected, set := Protect(text, phrases)
	result := r.Run(protected, opts)
	result.Text = set.Restore(result.Text)
	return result
}

func uniquePhrases(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// newNonce draws placeholder nonces until one does not already appear in the
// text or in any phrase.
func newNonce(text string, phrases []string) string {
	for {
		nonce := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		marker := placeholderPrefix + nonce
		if strings.Contains(text, marker) {
			continue
		}
		clash := false
		for _, p := range phrases {
			if strings.Contains(p, marker) {
				clash = true
				break
			}
		}
		if !clash {
			return nonce
		}
	}
}
