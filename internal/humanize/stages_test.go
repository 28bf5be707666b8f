package humanize

import (
	"strings"
	"testing"
)

// fixedRand returns the same draw every time. Choices are clamped to the
// last option so a large index always selects the final alternative.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

var (
	alwaysRand = fixedRand{f: 0, i: 0}
	neverRand  = fixedRand{f: 0.999, i: 0}
	lastRand   = fixedRand{f: 0, i: 1 << 20}
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name string
		text string
		v    Variability
		rng  Rand
		want string
	}{
		{"low picks first", "综上所述，因此我们进行研究", VariabilityLow, lastRand, "总的来说，所以我们做研究"},
		{"medium picks from whole list", "综上所述", VariabilityMedium, lastRand, "直白点说"},
		{"high restricted to last two", "综上所述", VariabilityHigh, alwaysRand, "整体来说"},
		{"earlier replacement feeds later one", "由此可见", VariabilityMedium, fixedRand{i: 2}, "一眼就能看出来"},
		{"no phrase", "今天下雨", VariabilityHigh, alwaysRand, "今天下雨"},
		{"empty", "", VariabilityMedium, alwaysRand, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Substitute(tt.text, tt.v, tt.rng); got != tt.want {
				t.Errorf("Substitute(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestSubstituteUsesOneChoicePerPhrase(t *testing.T) {
	got := Substitute("因此甲，因此乙，因此丙", VariabilityMedium, fixedRand{i: 2})
	if got != "故而甲，故而乙，故而丙" {
		t.Fatalf("got %q", got)
	}
}

func TestPickAlternativeSingleEntry(t *testing.T) {
	if got := pickAlternative([]string{"唯一"}, VariabilityHigh, lastRand); got != "唯一" {
		t.Fatalf("got %q", got)
	}
}

func TestRepairNegation(t *testing.T) {
	tests := []struct {
		text          string
		want          string
		first, second string
	}{
		{"这不仅仅是创新更是发展", "这不只是创新，更是发展", "创新", "发展"},
		{"这不只是工具而是伙伴", "其实这不是工具，而是伙伴", "工具", "伙伴"},
		{"不仅仅是速度而且是质量", "这不仅是速度，而且是质量", "速度", "质量"},
		{"不仅是产品更是服务", "这不只是产品，还是服务", "产品", "服务"},
		{"不只是口号而是行动", "其实它不是口号，而是行动", "口号", "行动"},
		{"并非偶然而是必然", "这不是偶然，而是必然", "偶然", "必然"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := RepairNegation(tt.text)
			if got != tt.want {
				t.Fatalf("RepairNegation(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if !strings.Contains(got, "，") || !strings.Contains(got, tt.first) || !strings.Contains(got, tt.second) {
				t.Errorf("rewrite lost a clause: %q", got)
			}
		})
	}
}

func TestRepairNegationNestedOpening(t *testing.T) {
	// the first pass swallows the third opening inside the second match
	got := RepairNegation("这不只是甲而是这不只是乙这不只是丙而是丁")
	want := "其实这不是甲，而是其实这不是乙其实这不是丙，，而是丁"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRepairNegationLeavesPlainText(t *testing.T) {
	text := "今天的会议很顺利。"
	if got := RepairNegation(text); got != text {
		t.Fatalf("got %q", got)
	}
}

func TestDampen(t *testing.T) {
	tests := []struct {
		name string
		text string
		rng  Rand
		want string
	}{
		{"marker with alternatives", "创新", alwaysRand, "出新招"},
		{"one substitution per token", "创新 发展", alwaysRand, "出新招 变好"},
		{"gate closed", "创新 发展", neverRand, "创新 发展"},
		// 强调 precedes 创新 in marker order and has no alternatives
		{"marker without alternatives consumes token", "强调创新", alwaysRand, "强调创新"},
		{"whitespace normalized", "甲  乙\n丙", neverRand, "甲 乙 丙"},
		{"empty", "", alwaysRand, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dampen(tt.text, VariabilityMedium, tt.rng); got != tt.want {
				t.Errorf("Dampen(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDampenProbabilityByVariability(t *testing.T) {
	// 0.45 passes only when the bonus lifts the gate above it
	rng := fixedRand{f: 0.45}
	if got := Dampen("趋势", VariabilityLow, rng); got != "趋势" {
		t.Errorf("low: got %q", got)
	}
	if got := Dampen("趋势", VariabilityMedium, rng); got != "风向" {
		t.Errorf("medium: got %q", got)
	}
	if got := Dampen("趋势", VariabilityHigh, fixedRand{f: 0.65}); got != "风向" {
		t.Errorf("high: got %q", got)
	}
}

const tenIdeographs = "甲乙丙丁戊己庚辛壬癸"

func TestRedistribute(t *testing.T) {
	c := tenIdeographs
	long := strings.Join([]string{c, c, c, c, c}, "，") + "。"

	tests := []struct {
		name string
		text string
		v    Variability
		want string
	}{
		{"low unchanged", "短句。没有结尾", VariabilityLow, "短句。没有结尾"},
		{"long sentence split", long, VariabilityMedium, c + "，" + c + "。" + c + "，" + c + "。" + c + "。"},
		{"short sentences merged at high", "今天天气好。我们去公园。", VariabilityHigh, "今天天气好，我们去公园。"},
		{"short sentences kept at medium", "今天天气好。我们去公园。", VariabilityMedium, "今天天气好。我们去公园。"},
		{"whitespace between sentences trimmed", "你好。 世界。", VariabilityMedium, "你好。世界。"},
		{"unterminated tail kept", "你好。世界", VariabilityMedium, "你好。世界"},
		{"empty", "", VariabilityHigh, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redistribute(tt.text, tt.v); got != tt.want {
				t.Errorf("Redistribute(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRedistributeLongSentenceWithFewClauses(t *testing.T) {
	c := tenIdeographs
	text := c + c + c + "，" + c + c + "。"
	if got := Redistribute(text, VariabilityHigh); got != text {
		t.Fatalf("got %q, want unchanged", got)
	}
}

func TestRedistributeDoesNotMergeIntoLongSentence(t *testing.T) {
	c := tenIdeographs
	text := c + c + c + "。好的。"
	if got := Redistribute(text, VariabilityHigh); got != text {
		t.Fatalf("got %q, want unchanged", got)
	}
}

func TestInjectStarters(t *testing.T) {
	got := injectStarters("甲。乙。", VariabilityMedium, StyleCasual, alwaysRand)
	if got != "你知道吗，甲。你知道吗，乙。" {
		t.Fatalf("got %q", got)
	}

	for _, tc := range []struct {
		v     Variability
		style Style
	}{
		{VariabilityLow, StyleCasual},
		{VariabilityHigh, StyleFormal},
	} {
		if got := injectStarters("甲。乙。", tc.v, tc.style, alwaysRand); got != "甲。乙。" {
			t.Errorf("%s/%s: got %q", tc.v, tc.style, got)
		}
	}

	if got := injectStarters("其实，甲。乙", VariabilityHigh, StyleCreative, alwaysRand); got != "其实，甲。乙" {
		t.Errorf("sentence with a starter or final sentence changed: %q", got)
	}
}

func TestInjectFillers(t *testing.T) {
	if got := injectFillers("我们走，好吗？", VariabilityMedium, StyleCasual, alwaysRand); got != "我们走，好吗呢？" {
		t.Errorf("got %q", got)
	}
	if got := injectFillers("OK，好", VariabilityMedium, StyleCasual, alwaysRand); got != "OK，好" {
		t.Errorf("non ideographic segment or tail changed: %q", got)
	}
	if got := injectFillers("我们走，好吗？", VariabilityLow, StyleCasual, alwaysRand); got != "我们走，好吗？" {
		t.Errorf("low variability changed text: %q", got)
	}
	if got := injectFillers("我们走，好吗？", VariabilityHigh, StyleFormal, alwaysRand); got != "我们走，好吗？" {
		t.Errorf("formal style changed text: %q", got)
	}
}

func TestSwapSynonyms(t *testing.T) {
	if got := swapSynonyms("非常非常好", VariabilityMedium, alwaysRand); got != "特别特别不错" {
		t.Errorf("got %q", got)
	}
	if got := swapSynonyms("非常好", VariabilityLow, alwaysRand); got != "非常好" {
		t.Errorf("low variability changed text: %q", got)
	}
	if got := swapSynonyms("非常好", VariabilityHigh, neverRand); got != "非常好" {
		t.Errorf("closed gate changed text: %q", got)
	}
}

func TestVaryNeverGate(t *testing.T) {
	text := "我们非常喜欢这个，真的很好。明天见。后天见。"
	for _, style := range []Style{StyleCasual, StyleFormal, StyleCreative} {
		for _, v := range []Variability{VariabilityLow, VariabilityMedium, VariabilityHigh} {
			if got := Vary(text, v, style, neverRand); got != text {
				t.Errorf("%s/%s: got %q", style, v, got)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		style Style
		rng   Rand
		want  string
	}{
		{"formal untouched", "甲；乙。", StyleFormal, alwaysRand, "甲；乙。"},
		{"semicolons become commas", "甲；乙：丙。", StyleCasual, neverRand, "甲，乙：丙。"},
		{"exclamations when many sentences", "一。二。三。四。", StyleCreative, alwaysRand, "一！二！三！四！"},
		{"no exclamation when gate closed", "一。二。三。四。", StyleCasual, neverRand, "一。二。三。四。"},
		{"few sentences keep periods", "一。二。", StyleCasual, alwaysRand, "一。二。"},
		{"empty pieces take exclamations too", "一。。二。三。", StyleCasual, alwaysRand, "一！！二！三！"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.text, tt.style, tt.rng); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"  你好   世界  ", "你好 世界"},
		{"好。。。真的！！吗？？", "好。真的！吗？"},
		{"结束。！", "结束。！"},
		{"你好　　世界\n\n", "你好 世界"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Cleanup(tt.text); got != tt.want {
			t.Errorf("Cleanup(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseStyle(" Formal "); err != nil || s != StyleFormal {
		t.Errorf("ParseStyle = %q, %v", s, err)
	}
	if _, err := ParseStyle("poetic"); err == nil {
		t.Error("expected error for unknown style")
	}
	if v, err := ParseVariability("HIGH"); err != nil || v != VariabilityHigh {
		t.Errorf("ParseVariability = %q, %v", v, err)
	}
	if _, err := ParseVariability("extreme"); err == nil {
		t.Error("expected error for unknown variability")
	}
}
