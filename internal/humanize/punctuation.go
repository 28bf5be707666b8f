package humanize

import "strings"

const exclamationProbability = 0.2

// Normalize loosens punctuation for casual and creative styles: semicolons
// become commas, and when the text has more than three period separated
// pieces some sentences end with an exclamation mark instead of a period.
// Colons are left as they are.
func Normalize(text string, style Style, rng Rand) string {
	if !style.relaxed() {
		return text
	}

	text = strings.ReplaceAll(text, "；", "，")

	sentences := strings.Split(text, "。")
	if len(sentences) <= 3 {
		return text
	}

	var b strings.Builder
	for i, sentence := range sentences {
		b.WriteString(sentence)
		if i == len(sentences)-1 {
			break
		}
		if rng.Float64() < exclamationProbability {
			b.WriteString("！")
		} else {
			b.WriteString("。")
		}
	}
	return b.String()
}
