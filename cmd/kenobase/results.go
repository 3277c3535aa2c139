package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/kengiroy2-g/kenobase-sub007/internal/store/resultstore"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/utils"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/kvstore"
	"github.com/spf13/cobra"
)

func newResultsCmd(gf *globalFlags) *cobra.Command {
	var (
		runID string
		top   int
	)
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List stored runs or show one run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(gf.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Services.KVS.Type == "" {
				return errors.New("no kvstore configured")
			}
			kv, err := kvstore.NewFromConfig(cfg.Services.KVS)
			if err != nil {
				return err
			}
			store := resultstore.New(kv)
			defer store.Close()

			if runID == "" {
				return listRuns(store)
			}
			return showRun(store, runID, top)
		},
	}
	cmd.Flags().StringVarP(&runID, "run", "r", "", "Run id to show.")
	cmd.Flags().IntVar(&top, "top", 10, "Number of evaluations to print.")
	return cmd
}

func listRuns(store resultstore.Store) error {
	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tEVALUATED\tCOVERED\tMEAN DRAWS\tCANCELLED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%t\n",
			r.ID,
			humanize.Time(r.StartedAt),
			humanize.Comma(int64(r.Counters.Evaluated)),
			r.Summary.Covered,
			r.Summary.MeanDrawsUntilCoverage.String(),
			r.Cancelled,
		)
	}
	return w.Flush()
}

func showRun(store resultstore.Store, runID string, top int) error {
	rec, err := store.LoadSummary(runID)
	if err != nil {
		return err
	}
	fmt.Printf("run %s (%s): evaluated=%d unevaluated=%d covered=%d coverage_rate=%s\n",
		rec.ID, rec.Name, rec.Counters.Evaluated, rec.Counters.Unevaluated,
		rec.Summary.Covered, rec.Summary.CoverageRate.String())

	evals, err := store.ListEvaluations(runID)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMBINATION\tDRAWS\tEXAMINED")
	for i, e := range evals {
		if top > 0 && i >= top {
			break
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", utils.JoinInts(e.Combination, " "), e.Result.DrawsUntilCoverage, e.Result.Examined)
	}
	return w.Flush()
}
