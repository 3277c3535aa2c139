package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kengiroy2-g/kenobase-sub007/internal/analysis"
	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/spf13/cobra"
)

func newPoolCmd(gf *globalFlags) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Print the resolved pool of an analysis and its candidate count.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(gf)
			if err != nil {
				return err
			}
			ac, err := e.cfg.Analyses.Get(name)
			if err != nil {
				return err
			}
			p, err := analysis.ParamsFromConfig(ac, e.history)
			if err != nil {
				return err
			}
			fmt.Printf("pool (%d): %s\n", p.Pool.Size(), p.Pool.String())
			fmt.Printf("C(%d,%d) = %s\n", p.Pool.Size(), p.K, humanize.BigComma(combo.Count(p.Pool.Size(), p.K)))
			fmt.Printf("window: %d of %d draws\n", p.Window.Size(e.history), e.history.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "analysis", "a", "", "Analysis to resolve.")
	_ = cmd.MarkFlagRequired("analysis")
	return cmd
}
