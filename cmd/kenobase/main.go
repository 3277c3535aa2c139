package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/analysis"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/constant"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/logger"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	debug      bool
}

func main() {
	var gf globalFlags
	root := &cobra.Command{
		Use:           "kenobase",
		Short:         "Lottery combination match engine.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if gf.debug {
				level = slog.LevelDebug
			}
			logger.Init(&logger.Options{
				Level:      level,
				TimeFormat: time.RFC3339,
				Writer:     os.Stderr,
			})
		},
	}
	root.PersistentFlags().StringVarP(&gf.configPath, "config", "c", constant.DefaultConfig, "Path to config file.")
	root.PersistentFlags().BoolVar(&gf.debug, "debug", false, "Enable debug logs.")

	root.AddCommand(
		newRunCmd(&gf),
		newFreqCmd(&gf),
		newPoolCmd(&gf),
		newResultsCmd(&gf),
		newMatchCmd(&gf),
	)

	if err := root.Execute(); err != nil {
		logger.Error("Command failed", "err", err)
		os.Exit(1)
	}
}

// env is what every subcommand starts from.
type env struct {
	cfg     *config.Config
	history *draw.History
}

func loadEnv(gf *globalFlags) (*env, error) {
	cfg, err := config.Load(gf.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Info("Config loaded", "path", gf.configPath, "env", cfg.Environment, "analyses", len(cfg.Analyses))

	game, err := analysis.GameFromConfig(cfg.Game)
	if err != nil {
		return nil, err
	}
	h, err := analysis.LoadHistory(cfg.History, game)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	logger.Info("History loaded",
		"game", game.Name,
		"draws", h.Len(),
		"first", h.First().Format(time.DateOnly),
		"last", h.Last().Format(time.DateOnly),
	)
	if dups := h.DuplicateDates(); len(dups) > 0 {
		logger.Warn("History has repeated dates", "count", len(dups), "first", dups[0].Format(time.DateOnly))
	}
	return &env{cfg: cfg, history: h}, nil
}
