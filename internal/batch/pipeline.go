// Package batch rewrites whole datasets of texts with a worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
	"github.com/zxinyun/ai-humanizer-zh/internal/preserve"
	"github.com/zxinyun/ai-humanizer-zh/internal/report"
)

// Pipeline reads records, humanizes them concurrently and writes the results
// in input order.
type Pipeline struct {
	runner preserve.Runner
	config *Config
	logger *zap.Logger

	processed atomic.Int64
	started   time.Time
}

// NewPipeline creates a new batch pipeline
func NewPipeline(runner preserve.Runner, config *Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := *config
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 100
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return &Pipeline{runner: runner, config: &cfg, logger: logger}
}

// ProcessFile rewrites every record of inPath into outPath
func (p *Pipeline) ProcessFile(ctx context.Context, inPath, outPath string) (*ProcessingResult, error) {
	p.logger.Info("Starting batch pipeline",
		zap.String("input", inPath),
		zap.String("output", outPath),
		zap.String("input_format", string(DetectFileFormat(inPath))),
		zap.String("output_format", string(DetectFileFormat(outPath))),
		zap.Int("batch_size", p.config.BatchSize),
		zap.Int("workers", p.config.WorkerCount))

	reader, err := OpenReader(inPath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	writer, err := CreateWriter(outPath)
	if err != nil {
		return nil, err
	}

	result, err := p.Process(ctx, reader, writer)
	if cerr := writer.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to finish output file: %w", cerr)
	}
	return result, err
}

// Process drains reader into writer
func (p *Pipeline) Process(ctx context.Context, reader RecordReader, writer ResultWriter) (*ProcessingResult, error) {
	p.started = time.Now()
	p.processed.Store(0)
	result := &ProcessingResult{}

	for {
		select {
		case <-ctx.Done():
			result.Duration = time.Since(p.started)
			return result, ctx.Err()
		default:
		}

		batch, eof, err := p.readBatch(reader, result)
		if err != nil {
			result.Duration = time.Since(p.started)
			return result, fmt.Errorf("failed to read batch: %w", err)
		}

		if len(batch) > 0 {
			results, err := p.processBatch(ctx, batch)
			if err != nil {
				result.Duration = time.Since(p.started)
				return result, err
			}
			for _, r := range results {
				if err := writer.Write(r); err != nil {
					result.Duration = time.Since(p.started)
					return result, fmt.Errorf("failed to write record %s: %w", r.ID, err)
				}
				if r.EffectiveVariability != r.Variability {
					result.Escalated++
				}
			}
			result.Processed += int64(len(results))
		}

		if eof {
			break
		}
	}

	result.Duration = time.Since(p.started)
	p.logger.Info("Batch pipeline completed",
		zap.Int64("total_records", result.TotalRecords),
		zap.Int64("processed", result.Processed),
		zap.Int64("records_invalid", result.RecordsInvalid),
		zap.Int64("escalated", result.Escalated),
		zap.Duration("total_duration", result.Duration))

	return result, nil
}

// readBatch reads up to BatchSize valid records
func (p *Pipeline) readBatch(reader RecordReader, result *ProcessingResult) ([]Record, bool, error) {
	batch := make([]Record, 0, p.config.BatchSize)
	for len(batch) < p.config.BatchSize {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return batch, true, nil
		}
		if err != nil {
			return batch, false, err
		}
		result.TotalRecords++

		if p.config.SkipEmpty && strings.TrimSpace(record.Text) == "" {
			result.RecordsInvalid++
			p.logger.Debug("Invalid record: empty text", zap.String("id", record.ID))
			continue
		}
		batch = append(batch, record)
	}
	return batch, false, nil
}

// processBatch humanizes one batch with the worker pool
func (p *Pipeline) processBatch(ctx context.Context, batch []Record) ([]Result, error) {
	results := make([]Result, len(batch))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(p.config.WorkerCount, len(batch)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.processRecord(batch[i])
				p.reportProgress()
			}
		}()
	}

	var err error
dispatch:
	for i := range batch {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) processRecord(record Record) Result {
	run := preserve.Run(p.runner, record.Text, p.config.Preserve, p.config.Options)
	change, _ := report.LengthChange(record.Text, run.Text)
	return Result{
		ID:                   record.ID,
		Text:                 record.Text,
		Humanized:            run.Text,
		Style:                string(run.Options.Style),
		Variability:          string(run.Options.Variability),
		EffectiveVariability: string(run.EffectiveVariability),
		Signals:              run.Detection,
		LengthChange:         change,
	}
}

// reportProgress logs every ProgressReport processed records
func (p *Pipeline) reportProgress() {
	n := p.processed.Add(1)
	every := int64(p.config.ProgressReport)
	if every <= 0 || n%every != 0 {
		return
	}

	elapsed := time.Since(p.started)
	p.logger.Info("Processing progress",
		zap.Int64("records_processed", n),
		zap.Float64("rate_per_sec", float64(n)/elapsed.Seconds()),
		zap.Duration("elapsed", elapsed))
}

// Options returns the rewrite options applied to every record
func (p *Pipeline) Options() humanize.Options {
	return p.config.Options
}
