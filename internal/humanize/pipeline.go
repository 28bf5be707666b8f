// Package humanize rewrites Chinese text that reads as machine generated into
// more varied, colloquial prose. A run detects AI-style signals, then threads
// the text through a fixed sequence of surface-level rewrite stages.
package humanize

import (
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
)

// escalationThreshold is the signal total above which a low variability
// request is treated as medium.
const escalationThreshold = 5

// Options configures one run
type Options struct {
	Style       Style       `json:"style"`
	Variability Variability `json:"variability"`
}

// DefaultOptions returns casual style with medium variability
func DefaultOptions() Options {
	return Options{Style: StyleCasual, Variability: VariabilityMedium}
}

func (o Options) withDefaults() Options {
	if o.Style == "" {
		o.Style = StyleCasual
	}
	if o.Variability == "" {
		o.Variability = VariabilityMedium
	}
	return o
}

// Result is the outcome of one run
type Result struct {
	Text                 string          `json:"text"`
	Detection            detector.Result `json:"signals"`
	Options              Options         `json:"options"`
	EffectiveVariability Variability     `json:"effective_variability"`
	Duration             time.Duration   `json:"duration"`
}

// run carries the per-invocation configuration through the stages.
type run struct {
	style       Style
	variability Variability
	rng         Rand
}

type stage struct {
	name  string
	apply func(text string, r run) string
}

// stages is the fixed order every run goes through.
var stages = []stage{
	{"substitute", func(text string, r run) string {
		return Substitute(text, r.variability, r.rng)
	}},
	{"repair_negation", func(text string, r run) string {
		return RepairNegation(text)
	}},
	{"dampen", func(text string, r run) string {
		// formal output at low variability has no random branch
		if r.style == StyleFormal && r.variability == VariabilityLow {
			return text
		}
		return Dampen(text, r.variability, r.rng)
	}},
	{"style_dispatch", func(text string, r run) string {
		if r.style == StyleCreative {
			return Vary(text, VariabilityHigh, StyleCreative, r.rng)
		}
		return text
	}},
	{"redistribute", func(text string, r run) string {
		return Redistribute(text, r.variability)
	}},
	{"vary", func(text string, r run) string {
		return Vary(text, r.variability, r.style, r.rng)
	}},
	{"normalize", func(text string, r run) string {
		return Normalize(text, r.style, r.rng)
	}},
	{"cleanup", func(text string, r run) string {
		return Cleanup(text)
	}},
}

// Pipeline runs the detector and rewrite stages. It holds no per-run state,
// so one Pipeline may serve concurrent callers when its Rand is safe for
// concurrent use.
type Pipeline struct {
	rng    Rand
	logger *zap.Logger
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithRand replaces the randomness source
func WithRand(rng Rand) Option {
	return func(p *Pipeline) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithLogger sets the logger used for stage tracing
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a pipeline drawing from the process-wide random source
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		rng:    DefaultRand(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Humanize rewrites text and returns only the final string
func (p *Pipeline) Humanize(text string, style Style, variability Variability) string {
	return p.Run(text, Options{Style: style, Variability: variability}).Text
}

// Run rewrites text and reports what the run saw and decided
func (p *Pipeline) Run(text string, opts Options) Result {
	start := time.Now()
	opts = opts.withDefaults()

	detection := detector.Detect(text)
	effective := EffectiveVariability(detection, opts.Variability)

	r := run{style: opts.Style, variability: effective, rng: p.rng}
	for _, s := range stages {
		before := utf8.RuneCountInString(text)
		text = s.apply(text, r)
		p.logger.Debug("Stage applied",
			zap.String("stage", s.name),
			zap.Int("chars_before", before),
			zap.Int("chars_after", utf8.RuneCountInString(text)),
		)
	}

	result := Result{
		Text:                 text,
		Detection:            detection,
		Options:              opts,
		EffectiveVariability: effective,
		Duration:             time.Since(start),
	}

	if effective != opts.Variability {
		p.logger.Debug("Variability escalated",
			zap.String("requested", string(opts.Variability)),
			zap.String("effective", string(effective)),
			zap.Int("signal_total", detection.Total()),
		)
	}

	return result
}

// EffectiveVariability escalates low to medium when the text shows more than
// a handful of AI-style signals. Other values pass through.
func EffectiveVariability(detection detector.Result, requested Variability) Variability {
	if requested == VariabilityLow && detection.Total() > escalationThreshold {
		return VariabilityMedium
	}
	return requested
}

var defaultPipeline = New()

// Humanize rewrites text with the default pipeline
func Humanize(text string, style Style, variability Variability) string {
	return defaultPipeline.Humanize(text, style, variability)
}
