package detector

// Signal names reported by Detect.
const (
	SignalAIWords             = "ai_words"
	SignalNegativeParallelism = "negative_parallelism"
	SignalTripleStructure     = "triple_structure"
	SignalExcessiveFormality  = "excessive_formality"
	SignalEmptyPhrase         = "empty_phrase"
	SignalExaggeration        = "exaggeration"
	SignalVagueAttribution    = "vague_attribution"
)

// SignalNames lists every signal in report order.
var SignalNames = []string{
	SignalAIWords,
	SignalNegativeParallelism,
	SignalTripleStructure,
	SignalExcessiveFormality,
	SignalEmptyPhrase,
	SignalExaggeration,
	SignalVagueAttribution,
}

// Result holds the AI-style signal counts found in one text
type Result struct {
	AIWords             int `json:"ai_words" yaml:"ai_words"`
	NegativeParallelism int `json:"negative_parallelism" yaml:"negative_parallelism"`
	TripleStructure     int `json:"triple_structure" yaml:"triple_structure"`
	// ExcessiveFormality has no detection rule and is always zero.
	ExcessiveFormality int `json:"excessive_formality" yaml:"excessive_formality"`
	EmptyPhrase        int `json:"empty_phrase" yaml:"empty_phrase"`
	Exaggeration       int `json:"exaggeration" yaml:"exaggeration"`
	VagueAttribution   int `json:"vague_attribution" yaml:"vague_attribution"`
}

// Signal is a single named count
type Signal struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Signals returns the counts in SignalNames order
func (r Result) Signals() []Signal {
	return []Signal{
		{SignalAIWords, r.AIWords},
		{SignalNegativeParallelism, r.NegativeParallelism},
		{SignalTripleStructure, r.TripleStructure},
		{SignalExcessiveFormality, r.ExcessiveFormality},
		{SignalEmptyPhrase, r.EmptyPhrase},
		{SignalExaggeration, r.Exaggeration},
		{SignalVagueAttribution, r.VagueAttribution},
	}
}

// Count returns the count for a signal name, or 0 for unknown names
func (r Result) Count(name string) int {
	for _, s := range r.Signals() {
		if s.Name == name {
			return s.Count
		}
	}
	return 0
}

// Total sums all signal counts
func (r Result) Total() int {
	total := 0
	for _, s := range r.Signals() {
		total += s.Count
	}
	return total
}
