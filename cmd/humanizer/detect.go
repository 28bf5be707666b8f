package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
	"github.com/zxinyun/ai-humanizer-zh/internal/report"
)

type detectOutput struct {
	Signals detector.Result `json:"signals" yaml:"signals"`
	Total   int             `json:"total" yaml:"total"`
}

func newDetectCmd(g *globalFlags) *cobra.Command {
	var inputPath, format string

	cmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Report AI-style signals without rewriting",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, inputPath)
			if err != nil {
				return err
			}
			return writeDetection(cmd, detector.Detect(text), format)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "输入文件路径")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table, json, yaml)")
	return cmd
}

func writeDetection(cmd *cobra.Command, result detector.Result, format string) error {
	out := detectOutput{Signals: result, Total: result.Total()}
	w := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(out)

	case "table", "":
		if err := report.Signals(w, result); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "  Total: %d\n", out.Total)
		return err

	default:
		return fmt.Errorf("unknown output format: %s (must be table, json, or yaml)", format)
	}
}
