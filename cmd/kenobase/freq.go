package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kengiroy2-g/kenobase-sub007/internal/stats"
	"github.com/spf13/cobra"
)

func newFreqCmd(gf *globalFlags) *cobra.Command {
	var (
		window int
		top    int
	)
	cmd := &cobra.Command{
		Use:   "freq",
		Short: "Show number frequency and gaps over recent draws.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(gf)
			if err != nil {
				return err
			}
			counts, err := stats.Frequency(e.history, window)
			if err != nil {
				return err
			}
			gaps, err := stats.Gaps(e.history)
			if err != nil {
				return err
			}
			since := make(map[int]int, len(gaps))
			for _, g := range gaps {
				since[g.Number] = g.Since
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NUMBER\tCOUNT\tSINCE")
			for _, c := range stats.Top(counts, top) {
				fmt.Fprintf(w, "%d\t%d\t%d\n", c.Number, c.Count, since[c.Number])
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&window, "window", "w", 0, "Only count the last N draws (0 = all).")
	cmd.Flags().IntVar(&top, "top", 0, "Print only the N most frequent numbers (0 = all).")
	return cmd
}
