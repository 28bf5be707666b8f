package batch

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
)

// Record represents a single record from the input dataset
type Record struct {
	ID   string `parquet:"id" json:"id"`
	Text string `parquet:"text" json:"text"`
}

// Result is one rewritten record
type Result struct {
	ID                   string          `json:"id"`
	Text                 string          `json:"text"`
	Humanized            string          `json:"humanized"`
	Style                string          `json:"style"`
	Variability          string          `json:"variability"`
	EffectiveVariability string          `json:"effective_variability"`
	Signals              detector.Result `json:"signals"`
	LengthChange         float64         `json:"length_change"`
}

// resultRow is the flat column layout used for CSV and Parquet output
type resultRow struct {
	ID                   string  `parquet:"id"`
	Text                 string  `parquet:"text"`
	Humanized            string  `parquet:"humanized"`
	Style                string  `parquet:"style"`
	Variability          string  `parquet:"variability"`
	EffectiveVariability string  `parquet:"effective_variability"`
	AIWords              int64   `parquet:"ai_words"`
	NegativeParallelism  int64   `parquet:"negative_parallelism"`
	TripleStructure      int64   `parquet:"triple_structure"`
	ExcessiveFormality   int64   `parquet:"excessive_formality"`
	EmptyPhrase          int64   `parquet:"empty_phrase"`
	Exaggeration         int64   `parquet:"exaggeration"`
	VagueAttribution     int64   `parquet:"vague_attribution"`
	LengthChange         float64 `parquet:"length_change"`
}

func rowOf(r Result) resultRow {
	return resultRow{
		ID:                   r.ID,
		Text:                 r.Text,
		Humanized:            r.Humanized,
		Style:                r.Style,
		Variability:          r.Variability,
		EffectiveVariability: r.EffectiveVariability,
		AIWords:              int64(r.Signals.AIWords),
		NegativeParallelism:  int64(r.Signals.NegativeParallelism),
		TripleStructure:      int64(r.Signals.TripleStructure),
		ExcessiveFormality:   int64(r.Signals.ExcessiveFormality),
		EmptyPhrase:          int64(r.Signals.EmptyPhrase),
		Exaggeration:         int64(r.Signals.Exaggeration),
		VagueAttribution:     int64(r.Signals.VagueAttribution),
		LengthChange:         r.LengthChange,
	}
}

// ProcessingResult represents the result of processing a dataset
type ProcessingResult struct {
	TotalRecords   int64         `json:"total_records"`
	Processed      int64         `json:"processed"`
	RecordsInvalid int64         `json:"records_invalid"`
	Escalated      int64         `json:"escalated"`
	Duration       time.Duration `json:"duration"`
	Errors         []string      `json:"errors,omitempty"`
}

// Config contains batch pipeline configuration
type Config struct {
	BatchSize      int              `yaml:"batch_size" mapstructure:"batch_size"`
	WorkerCount    int              `yaml:"worker_count" mapstructure:"worker_count"`
	ProgressReport int              `yaml:"progress_report" mapstructure:"progress_report"`
	SkipEmpty      bool             `yaml:"skip_empty" mapstructure:"skip_empty"`
	Options        humanize.Options `yaml:"-" mapstructure:"-"`
	Preserve       []string         `yaml:"-" mapstructure:"-"`
}

// FileFormat represents supported file formats
type FileFormat string

const (
	FormatCSV     FileFormat = "csv"
	FormatParquet FileFormat = "parquet"
	FormatJSON    FileFormat = "json"
)

// DetectFileFormat detects file format from extension
func DetectFileFormat(filename string) FileFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".parquet":
		return FormatParquet
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON
	default:
		return FormatCSV // Default to CSV
	}
}
