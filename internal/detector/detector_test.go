package detector

import (
	"strings"
	"testing"
)

func TestDetectAIWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"exact runs", "创新 发展", 2},
		{"marker inside longer run is not counted", "我们要强调创新", 0},
		{"marker split by punctuation", "此外，我们要强调创新。", 1},
		{"non ideographic text", "innovation and growth", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text).AIWords; got != tt.want {
				t.Errorf("AIWords(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectNegativeParallelism(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"这不仅仅是创新更是发展", 1},
		{"并非偶然而是必然", 1},
		{"不只是口号而是行动", 1},
		// matched by both the 这不只是 and the 不只是 rule
		{"这不只是工具而是伙伴", 2},
		{"今天天气很好", 0},
	}
	for _, tt := range tests {
		if got := Detect(tt.text).NegativeParallelism; got != tt.want {
			t.Errorf("NegativeParallelism(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestDetectTripleStructure(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"一，二，三，四", 1},
		{"，，，，，，", 2},
		{"a,b；c,d；e", 0},
		{"甲；乙；丙；", 1},
		// separators on different lines do not combine
		{"一，二\n三，四", 0},
	}
	for _, tt := range tests {
		if got := Detect(tt.text).TripleStructure; got != tt.want {
			t.Errorf("TripleStructure(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestDetectPhraseListsArePresenceTests(t *testing.T) {
	r := Detect("研究表明研究表明研究表明")
	if r.VagueAttribution != 1 {
		t.Errorf("repeated phrase should count once, got %d", r.VagueAttribution)
	}

	r = Detect("研究表明，数据显示，专家认为这是革命性和颠覆性的发展趋势")
	if r.VagueAttribution != 3 {
		t.Errorf("VagueAttribution = %d, want 3", r.VagueAttribution)
	}
	if r.Exaggeration != 2 {
		t.Errorf("Exaggeration = %d, want 2", r.Exaggeration)
	}
	if r.EmptyPhrase != 1 {
		t.Errorf("EmptyPhrase = %d, want 1", r.EmptyPhrase)
	}
}

func TestDetectExcessiveFormalityAlwaysZero(t *testing.T) {
	text := strings.Repeat("综上所述，由此可见，至关重要。", 10)
	if got := Detect(text).ExcessiveFormality; got != 0 {
		t.Fatalf("ExcessiveFormality = %d, want 0", got)
	}
}

func TestDetectMonotonic(t *testing.T) {
	base := "这是一段普通的文字。"
	before := Detect(base)
	for _, phrase := range []string{"发展趋势", "革命性", "据报道", "这不仅仅是A更是B"} {
		after := Detect(base + phrase + base + phrase)
		for _, name := range SignalNames {
			if after.Count(name) < before.Count(name) {
				t.Errorf("adding %q decreased %s: %d -> %d", phrase, name, before.Count(name), after.Count(name))
			}
		}
	}
}

func TestDetectEmpty(t *testing.T) {
	if r := Detect(""); r != (Result{}) {
		t.Fatalf("expected zero result, got %+v", r)
	}
}

func TestResultTotalAndSignals(t *testing.T) {
	r := Result{AIWords: 2, TripleStructure: 1, VagueAttribution: 3}
	if r.Total() != 6 {
		t.Errorf("Total() = %d, want 6", r.Total())
	}
	signals := r.Signals()
	if len(signals) != len(SignalNames) {
		t.Fatalf("Signals() returned %d entries, want %d", len(signals), len(SignalNames))
	}
	for i, s := range signals {
		if s.Name != SignalNames[i] {
			t.Errorf("signal %d = %s, want %s", i, s.Name, SignalNames[i])
		}
	}
	if r.Count(SignalVagueAttribution) != 3 {
		t.Errorf("Count(vague_attribution) = %d", r.Count(SignalVagueAttribution))
	}
	if r.Count("unknown") != 0 {
		t.Error("unknown signal should count 0")
	}
}
