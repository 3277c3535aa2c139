package main

import (
	"fmt"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/match"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/utils"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newMatchCmd(gf *globalFlags) *cobra.Command {
	var (
		numbers string
		perDraw bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Scan the whole history for one combination.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(gf)
			if err != nil {
				return err
			}
			nums, err := utils.ParseIntList(numbers)
			if err != nil {
				return err
			}
			game := e.history.Game()
			for _, n := range nums {
				if !game.InRange(n) {
					return fmt.Errorf("%d is outside %d..%d", n, game.Min, game.Max)
				}
			}
			c := combo.New(lo.Uniq(nums)...)
			res, err := match.Scan(c, e.history, match.Window{}, match.ScanOptions{PerDrawGroups: perDraw})
			if err != nil {
				return err
			}
			shared, at := match.MaxShared(c, e.history)

			fmt.Printf("combination: %s\n", utils.JoinInts(c, " "))
			if res.Covered() {
				fmt.Printf("covered after %d of %d draws\n", res.DrawsUntilCoverage, e.history.Len())
			} else {
				fmt.Printf("not covered in %d draws\n", res.Examined)
			}
			for _, n := range c {
				fmt.Printf("  %2d: %d\n", n, res.PerNumberCount[n])
			}
			for _, size := range match.DefaultGroupSizes {
				fmt.Printf("groups of %d: %d\n", size, len(res.Groups[size]))
			}
			if at >= 0 {
				fmt.Printf("max shared with one draw: %d (%s)\n", shared, e.history.At(at).Date.Format("2006-01-02"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&numbers, "numbers", "n", "", "Combination, e.g. 1,5,6,11,12,15.")
	cmd.Flags().BoolVar(&perDraw, "per-draw", false, "Record co-occurrence groups once per draw.")
	_ = cmd.MarkFlagRequired("numbers")
	return cmd
}
