package humanize

import "github.com/zxinyun/ai-humanizer-zh/internal/lexicon"

// RepairNegation rewrites "not merely X but Y" constructions into an
// explicit comma separated contrast. Rules run in declaration order, so a
// sentence may be touched by more than one of them.
//
// Each rule is reapplied once per match found before its first pass: a lazy
// match can swallow a second opening, which only becomes visible after the
// outer construction has been rewritten.
func RepairNegation(text string) string {
	for _, rule := range lexicon.NegationRules {
		n := len(rule.Rewrite.FindAllStringIndex(text, -1))
		for i := 0; i < n; i++ {
			text = rule.Rewrite.ReplaceAllString(text, rule.Template)
		}
	}
	return text
}
