package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/kengiroy2-g/kenobase-sub007/internal/analysis"
	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/store/resultstore"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/logger"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/utils"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/events"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/infra"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/kvstore"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newRunCmd(gf *globalFlags) *cobra.Command {
	var (
		name       string
		sequential bool
		top        int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate every candidate combination of an analysis.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd.Context(), gf, name, sequential, top)
		},
	}
	cmd.Flags().StringVarP(&name, "analysis", "a", "", "Analysis to run.")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "Run on a single goroutine.")
	cmd.Flags().IntVar(&top, "top", 10, "Number of best combinations to print.")
	_ = cmd.MarkFlagRequired("analysis")
	return cmd
}

func runAnalysis(parent context.Context, gf *globalFlags, name string, sequential bool, top int) error {
	e, err := loadEnv(gf)
	if err != nil {
		return err
	}
	ac, err := e.cfg.Analyses.Get(name)
	if err != nil {
		return err
	}
	params, err := analysis.ParamsFromConfig(ac, e.history)
	if err != nil {
		return err
	}

	emitter, err := newEmitter(e.cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()

	var store resultstore.Store
	if e.cfg.Services.KVS.Type != "" {
		kv, err := kvstore.NewFromConfig(e.cfg.Services.KVS)
		if err != nil {
			return fmt.Errorf("open result store: %w", err)
		}
		store = resultstore.New(kv)
		defer store.Close()
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	candidates := combo.Count(params.Pool.Size(), params.K)
	logger.Info("Resolved pool", "pool", params.Pool.String(), "candidates", humanize.BigComma(candidates))

	run := analysis.Run
	if sequential || lo.FromPtr(ac.Sequential) {
		run = analysis.RunSequential
	}

	startEvent := map[string]any{"k": params.K, "pool": params.Pool.Numbers(), "max_shared": params.MaxShared}
	if err := emitter.EmitRunStarted(params.Name, startEvent); err != nil {
		logger.Warn("Emit run started failed", "err", err)
	}

	rep, runErr := run(ctx, params)
	if rep == nil {
		return runErr
	}
	rep.Sort()
	runID := resultstore.RunID(rep.Name, rep.StartedAt)

	if store != nil {
		if err := store.SaveReport(runID, rep); err != nil {
			logger.Error("Save report failed", "run_id", runID, "err", err)
		} else {
			logger.Info("Report saved", "run_id", runID)
		}
	}
	if rep.Counters.Unevaluated > 0 {
		if err := emitter.EmitUnevaluated(runID, rep.Counters.Unevaluated); err != nil {
			logger.Warn("Emit unevaluated failed", "err", err)
		}
	}
	if err := emitter.EmitRunCompleted(runID, rep.Summary); err != nil {
		logger.Warn("Emit run completed failed", "err", err)
	}

	printReport(rep, top)
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("Run interrupted; results above are partial", "run_id", runID)
		return nil
	}
	return runErr
}

func newEmitter(cfg *config.Config) (events.Emitter, error) {
	if !cfg.Services.Nats.Enabled {
		return events.NewNoopEmitter(), nil
	}
	nc, err := infra.GetNATSConnection(cfg.Services.Nats, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return events.NewEmitter(infra.NewNATSPublisher(nc), cfg.Services.Nats.SubjectPrefix, events.Options{}), nil
}

func printReport(rep *analysis.Report, top int) {
	s := rep.Summary
	fmt.Printf("run %s: generated=%s rejected=%s evaluated=%s unevaluated=%s elapsed=%s\n",
		rep.Name,
		humanize.Comma(int64(rep.Counters.Generated)),
		humanize.Comma(int64(rep.Counters.Rejected)),
		humanize.Comma(int64(rep.Counters.Evaluated)),
		humanize.Comma(int64(rep.Counters.Unevaluated)),
		rep.Elapsed.Round(time.Millisecond),
	)
	fmt.Printf("covered=%d coverage_rate=%s mean_draws=%s min=%d max=%d\n",
		s.Covered, s.CoverageRate.String(), s.MeanDrawsUntilCoverage.String(),
		s.MinDrawsUntilCoverage, s.MaxDrawsUntilCoverage)

	best := rep.Best(top)
	if len(best) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMBINATION\tDRAWS\tPAIRS\tTRIPLES\tQUADS")
	for _, e := range best {
		r := e.Result
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			utils.JoinInts(e.Combination, " "),
			r.DrawsUntilCoverage,
			len(r.Groups[2]), len(r.Groups[3]), len(r.Groups[4]),
		)
	}
	_ = w.Flush()
}
