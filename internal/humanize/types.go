package humanize

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Style selects the target register
type Style string

const (
	StyleCasual   Style = "casual"
	StyleFormal   Style = "formal"
	StyleCreative Style = "creative"
)

// Variability controls how aggressively choices are randomized
type Variability string

const (
	VariabilityLow    Variability = "low"
	VariabilityMedium Variability = "medium"
	VariabilityHigh   Variability = "high"
)

// ParseStyle converts a user supplied value into a Style
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleCasual:
		return StyleCasual, nil
	case StyleFormal:
		return StyleFormal, nil
	case StyleCreative:
		return StyleCreative, nil
	}
	return "", fmt.Errorf("invalid style: %q (must be casual, formal, or creative)", s)
}

// ParseVariability converts a user supplied value into a Variability
func ParseVariability(s string) (Variability, error) {
	switch Variability(strings.ToLower(strings.TrimSpace(s))) {
	case VariabilityLow:
		return VariabilityLow, nil
	case VariabilityMedium:
		return VariabilityMedium, nil
	case VariabilityHigh:
		return VariabilityHigh, nil
	}
	return "", fmt.Errorf("invalid variability: %q (must be low, medium, or high)", s)
}

// relaxed reports whether the style admits colloquial injections.
func (s Style) relaxed() bool {
	return s == StyleCasual || s == StyleCreative
}

// varied reports whether random lexical variation is allowed.
func (v Variability) varied() bool {
	return v == VariabilityMedium || v == VariabilityHigh
}

// dampenBonus is added to the base dampening probability.
func (v Variability) dampenBonus() float64 {
	switch v {
	case VariabilityMedium:
		return 0.2
	case VariabilityHigh:
		return 0.4
	}
	return 0
}

// Rand is the randomness every probabilistic stage draws from.
// Implementations used by concurrent pipelines must be safe for concurrent use.
type Rand interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// processRand draws from the process-wide math/rand/v2 source.
type processRand struct{}

func (processRand) Float64() float64 { return rand.Float64() }
func (processRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand returns the process-wide source.
func DefaultRand() Rand {
	return processRand{}
}

func choose(rng Rand, options []string) string {
	return options[rng.IntN(len(options))]
}
