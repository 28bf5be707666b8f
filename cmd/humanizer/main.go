package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zxinyun/ai-humanizer-zh/internal/config"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
	"github.com/zxinyun/ai-humanizer-zh/internal/logger"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// ErrNoInput is returned when neither text nor an input file was given
var ErrNoInput = errors.New("请提供文本输入或指定输入文件")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	debug      bool
}

// optionFlags select the rewrite options; empty values fall back to config
type optionFlags struct {
	style       string
	variability string
	preserve    []string
}

func (o *optionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.style, "style", "", "输出风格: casual/口语化, formal/正式, creative/创意 (default from config)")
	cmd.Flags().StringVar(&o.variability, "variability", "", "文本变化程度: low/低, medium/中, high/高 (default from config)")
	cmd.Flags().StringArrayVar(&o.preserve, "preserve", nil, "需要保留的关键词或短语 (repeatable)")
}

// resolve merges the flags over the configured defaults
func (o *optionFlags) resolve(cfg *config.Config) (humanize.Options, []string, error) {
	style := cfg.Humanize.Style
	if o.style != "" {
		style = o.style
	}
	variability := cfg.Humanize.Variability
	if o.variability != "" {
		variability = o.variability
	}

	s, err := humanize.ParseStyle(style)
	if err != nil {
		return humanize.Options{}, nil, err
	}
	v, err := humanize.ParseVariability(variability)
	if err != nil {
		return humanize.Options{}, nil, err
	}

	phrases := append(append([]string(nil), cfg.Humanize.Preserve...), o.preserve...)
	return humanize.Options{Style: s, Variability: v}, phrases, nil
}

// setup loads the configuration and builds the logger for one command
func (g *globalFlags) setup() (*config.Loader, *config.Config, *logger.Logger, error) {
	loader := config.NewLoader(nil)
	cfg, err := loader.Load(g.configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}
	if g.debug {
		logCfg.Level = "debug"
	}
	if cfg.Logging.File.Enabled {
		logCfg.File = &logger.FileConfig{
			Enabled: true,
			Path:    cfg.Logging.File.Path,
		}
	}

	log, err := logger.New(logCfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	loader.SetLogger(log.WithComponent("config").Logger)
	return loader, cfg, log, nil
}

// readInput prefers the input file over the positional text
func readInput(args []string, inputPath string) (string, error) {
	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return "", ErrNoInput
}
