package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zxinyun/ai-humanizer-zh/internal/batch"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
)

func newBatchCmd(g *globalFlags) *cobra.Command {
	opts := &optionFlags{}
	var (
		inputPath, outputPath string
		workers, batchSize    int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Rewrite a CSV, JSON-lines or Parquet dataset",
		Long: `batch rewrites every record of a dataset. Records need a text field and may
carry an id. The format of each file follows its extension: .csv, .jsonl/.json,
or .parquet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, log, err := g.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			options, phrases, err := opts.resolve(cfg)
			if err != nil {
				return err
			}

			bc := &batch.Config{
				BatchSize:      cfg.Batch.BatchSize,
				WorkerCount:    cfg.Batch.Workers,
				ProgressReport: cfg.Batch.ProgressReport,
				SkipEmpty:      cfg.Batch.SkipEmpty,
				Options:        options,
				Preserve:       phrases,
			}
			if cmd.Flags().Changed("workers") {
				bc.WorkerCount = workers
			}
			if cmd.Flags().Changed("batch-size") {
				bc.BatchSize = batchSize
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner := humanize.New(humanize.WithLogger(log.WithComponent("humanize").Logger))
			pipeline := batch.NewPipeline(runner, bc, log.WithComponent("batch").Logger)

			result, err := pipeline.ProcessFile(ctx, inputPath, outputPath)
			if err != nil {
				log.Error("Batch processing failed", zap.Error(err))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"✅ 批量处理完成：%d/%d 条记录（无效 %d，升级 %d），耗时 %s\n💾 处理后的数据已保存到 %s\n",
				result.Processed, result.TotalRecords, result.RecordsInvalid, result.Escalated,
				result.Duration.Round(time.Millisecond), outputPath)
			return err
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "输入数据集路径")
	cmd.Flags().StringVar(&outputPath, "output", "", "输出数据集路径")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of worker goroutines (default from config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 100, "Records per batch (default from config)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	opts.register(cmd)
	return cmd
}
