package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
	"github.com/zxinyun/ai-humanizer-zh/internal/logger"
	"github.com/zxinyun/ai-humanizer-zh/internal/preserve"
	"github.com/zxinyun/ai-humanizer-zh/internal/report"
)

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	opts := &optionFlags{}
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "humanizer [text]",
		Short: "AI-Humanizer-ZH - 中文AI文本人类化工具",
		Long: `humanizer rewrites Chinese text that reads as machine generated into more
varied, colloquial prose.

Run without a subcommand to rewrite a text given as an argument or with --input.

Commands:
  detect   Report AI-style signals without rewriting
  batch    Rewrite a CSV, JSON-lines or Parquet dataset
  serve    Run the HTTP API
  version  Show version information`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, g, opts, args, inputPath, outputPath)
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default: ./humanizer.yaml)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "显示调试信息")
	cmd.Flags().StringVar(&inputPath, "input", "", "输入文件路径")
	cmd.Flags().StringVar(&outputPath, "output", "", "输出文件路径")
	opts.register(cmd)

	cmd.AddCommand(
		newDetectCmd(g),
		newBatchCmd(g),
		newServeCmd(g),
		newVersionCmd(),
	)
	return cmd
}

func runRewrite(cmd *cobra.Command, g *globalFlags, opts *optionFlags, args []string, inputPath, outputPath string) error {
	text, err := readInput(args, inputPath)
	if err != nil {
		return err
	}

	_, cfg, log, err := g.setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	options, phrases, err := opts.resolve(cfg)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout())
	if g.debug {
		if err := printer.Detecting(); err != nil {
			return err
		}
		if err := printer.Signals(detector.Detect(text)); err != nil {
			return err
		}
	}

	if err := printer.Processing(options.Style, options.Variability); err != nil {
		return err
	}

	pipeline := humanize.New(humanize.WithLogger(log.WithComponent("humanize").Logger))
	result := preserve.Run(pipeline, text, phrases, options)

	log.LogRun(logger.RunFields{
		Style:                string(result.Options.Style),
		Variability:          string(result.Options.Variability),
		EffectiveVariability: string(result.EffectiveVariability),
		SignalTotal:          result.Detection.Total(),
		InputChars:           utf8.RuneCountInString(text),
		OutputChars:          utf8.RuneCountInString(result.Text),
		Preserved:            len(phrases),
		Duration:             result.Duration,
	})

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result.Text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	return printer.Summary(report.Summary{
		Original:    text,
		Humanized:   result.Text,
		Style:       result.Options.Style,
		Variability: result.Options.Variability,
		OutputPath:  outputPath,
	})
}
