package humanize

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
	"github.com/zxinyun/ai-humanizer-zh/internal/lexicon"
)

func TestHumanizeNegationScenario(t *testing.T) {
	got := Humanize("这不仅仅是创新更是发展", StyleFormal, VariabilityLow)
	if got != "这不只是创新，更是发展" {
		t.Fatalf("got %q", got)
	}
}

func TestHumanizeFormalLowIsDeterministic(t *testing.T) {
	text := "综上所述，这不仅仅是创新更是发展。研究表明这很重要。我们进行了很多实验；结果非常好。"
	if total := detector.Detect(text).Total(); total > escalationThreshold {
		t.Fatalf("fixture escalates (total %d), pick a calmer text", total)
	}

	first := Humanize(text, StyleFormal, VariabilityLow)
	for i := 0; i < 50; i++ {
		if got := Humanize(text, StyleFormal, VariabilityLow); got != first {
			t.Fatalf("run %d differs:\n%q\n%q", i, got, first)
		}
	}
}

func TestHumanizeEmptyInput(t *testing.T) {
	for _, style := range []Style{StyleCasual, StyleFormal, StyleCreative} {
		for _, v := range []Variability{VariabilityLow, VariabilityMedium, VariabilityHigh} {
			if got := Humanize("", style, v); got != "" {
				t.Errorf("%s/%s: got %q", style, v, got)
			}
		}
	}
}

func TestHumanizeVariesWithRandomness(t *testing.T) {
	text := "综上所述。"
	a := New(WithRand(alwaysRand)).Humanize(text, StyleCasual, VariabilityMedium)
	b := New(WithRand(lastRand)).Humanize(text, StyleCasual, VariabilityMedium)
	if a == b {
		t.Fatalf("expected different outputs for different draws, both %q", a)
	}
}

func TestCreativePrePassRunsAtHighVariability(t *testing.T) {
	p := New(WithRand(alwaysRand))

	got := p.Humanize("甲。乙。", StyleCreative, VariabilityLow)
	if got != "你知道吗，甲呢。你知道吗，乙呢。" {
		t.Errorf("creative: got %q", got)
	}

	got = p.Humanize("甲。乙。", StyleFormal, VariabilityLow)
	if got != "甲。乙。" {
		t.Errorf("formal: got %q", got)
	}
}

func TestRunEscalatesVariability(t *testing.T) {
	text := "创新，发展，趋势，未来，挑战，机遇。"
	res := New(WithRand(neverRand)).Run(text, Options{Style: StyleFormal, Variability: VariabilityLow})
	if res.Detection.Total() <= escalationThreshold {
		t.Fatalf("fixture total %d does not exceed threshold", res.Detection.Total())
	}
	if res.EffectiveVariability != VariabilityMedium {
		t.Errorf("EffectiveVariability = %s, want medium", res.EffectiveVariability)
	}
	if res.Options.Variability != VariabilityLow {
		t.Errorf("requested variability overwritten: %s", res.Options.Variability)
	}
}

func TestRunAppliesDefaults(t *testing.T) {
	res := New(WithRand(neverRand)).Run("你好", Options{})
	if res.Options != DefaultOptions() {
		t.Errorf("Options = %+v, want defaults", res.Options)
	}
	if res.Text != "你好" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestEffectiveVariability(t *testing.T) {
	heavy := detector.Result{AIWords: 6}
	calm := detector.Result{AIWords: 5}

	if got := EffectiveVariability(heavy, VariabilityLow); got != VariabilityMedium {
		t.Errorf("heavy/low = %s", got)
	}
	if got := EffectiveVariability(calm, VariabilityLow); got != VariabilityLow {
		t.Errorf("calm/low = %s", got)
	}
	if got := EffectiveVariability(heavy, VariabilityHigh); got != VariabilityHigh {
		t.Errorf("heavy/high = %s", got)
	}
}

func TestRunLogsEveryStage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := New(WithRand(neverRand), WithLogger(zap.New(core)))
	p.Run("综上所述，这很好。", Options{Style: StyleCasual, Variability: VariabilityMedium})

	entries := logs.FilterMessage("Stage applied").All()
	if len(entries) != len(stages) {
		t.Fatalf("logged %d stages, want %d", len(entries), len(stages))
	}
	for i, e := range entries {
		if name := e.ContextMap()["stage"]; name != stages[i].name {
			t.Errorf("stage %d logged as %v, want %s", i, name, stages[i].name)
		}
	}
}

func TestHumanizeKeepsPlaceholderTokens(t *testing.T) {
	token := "__KEEP_ab12cd34_0__"
	text := "综上所述，" + token + "非常重要。这不仅仅是创新更是发展。"
	for _, style := range []Style{StyleCasual, StyleFormal, StyleCreative} {
		for _, rng := range []Rand{alwaysRand, neverRand, lastRand} {
			got := New(WithRand(rng)).Humanize(text, style, VariabilityHigh)
			if !strings.Contains(got, token) {
				t.Errorf("%s: placeholder lost in %q", style, got)
			}
		}
	}
}

func TestHumanizeCasualMediumUsesLexicon(t *testing.T) {
	got := New(WithRand(neverRand)).Humanize("综上所述，今天下雨。", StyleCasual, VariabilityMedium)
	if strings.Contains(got, "综上所述") {
		t.Fatalf("canonical phrase survived: %q", got)
	}
	found := false
	for _, alt := range lexicon.Replacements[0].Alternatives {
		if strings.HasPrefix(got, alt) {
			found = true
		}
	}
	if !found {
		t.Errorf("output %q does not start with a known alternative", got)
	}
}
