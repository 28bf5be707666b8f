package humanize

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)

var repeatedTerminal = regexp2.MustCompile(`([。！？；])\1+`, regexp2.None)

// Cleanup collapses whitespace runs and repeated terminal punctuation, then trims.
func Cleanup(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	// regexp2 only errors on a match timeout, and none is set
	if collapsed, err := repeatedTerminal.Replace(text, "$1", -1, -1); err == nil {
		text = collapsed
	}
	return strings.TrimSpace(text)
}
