package analysis

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/internal/match"
	"github.com/kengiroy2-g/kenobase-sub007/internal/pool"
	"github.com/kengiroy2-g/kenobase-sub007/internal/worker"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
	"github.com/samber/lo"
)

// GameFromConfig resolves a built-in game or validates a custom one.
func GameFromConfig(gc config.GameConfig) (draw.Game, error) {
	if gc.Type != enum.GameTypeCustom {
		return draw.GameFor(gc.Type)
	}
	g := draw.Game{Name: string(gc.Type), Min: gc.Min, Max: gc.Max, DrawSize: gc.DrawSize}
	if err := g.Validate(); err != nil {
		return draw.Game{}, err
	}
	return g, nil
}

func LoadHistory(hc config.HistoryConfig, g draw.Game) (*draw.History, error) {
	opts := draw.CSVOptions{
		DateColumn:        hc.DateColumn,
		FirstNumberColumn: hc.FirstNumberColumn,
	}
	if hc.Delimiter != "" {
		opts.Delimiter, _ = utf8.DecodeRuneInString(hc.Delimiter)
	}
	return draw.LoadCSVFile(hc.Path, g, opts)
}

// ParamsFromConfig turns one analysis block into run parameters against h.
func ParamsFromConfig(ac config.AnalysisConfig, h *draw.History) (Params, error) {
	p := Params{
		Name:      ac.Name,
		History:   h,
		K:         ac.K,
		MaxShared: NoContainment,
		Predicate: predicateFromConfig(ac.Filter),
		Scan: match.ScanOptions{
			PerDrawGroups: lo.FromPtr(ac.Scan.PerDrawGroups),
			GroupSizes:    ac.Scan.GroupSizes,
		},
		Worker: worker.Config{
			Workers:   ac.Workers,
			BatchSize: ac.BatchSize,
		},
	}
	if ac.MaxShared != nil {
		p.MaxShared = *ac.MaxShared
	}

	var err error
	if p.Pool, err = poolFromConfig(ac.Pool, h); err != nil {
		return Params{}, fmt.Errorf("analysis %s: %w", ac.Name, err)
	}
	if p.Window, err = windowFromConfig(ac.Window, h); err != nil {
		return Params{}, fmt.Errorf("analysis %s: %w", ac.Name, err)
	}
	if err := p.validate(); err != nil {
		return Params{}, fmt.Errorf("analysis %s: %w", ac.Name, err)
	}
	return p, nil
}

func poolFromConfig(pc config.PoolConfig, h *draw.History) (*pool.Pool, error) {
	switch pc.Source {
	case enum.PoolSourceLiteral:
		return pool.FromLiteral(h.Game(), pc.Numbers)
	case enum.PoolSourceHistory:
		from, err := draw.ParseDate(pc.From)
		if err != nil {
			return nil, err
		}
		to := from
		if pc.To != "" {
			if to, err = draw.ParseDate(pc.To); err != nil {
				return nil, err
			}
		}
		return pool.FromHistoryRange(h, from, to)
	default:
		return nil, fmt.Errorf("%w: unknown pool source %q", pool.ErrInvalidPool, pc.Source)
	}
}

func windowFromConfig(wc config.WindowConfig, h *draw.History) (match.Window, error) {
	var w match.Window
	if wc.StartDate != "" || wc.EndDate != "" {
		start, end := time.Time{}, h.Last()
		var err error
		if wc.StartDate != "" {
			if start, err = draw.ParseDate(wc.StartDate); err != nil {
				return w, err
			}
		}
		if wc.EndDate != "" {
			if end, err = draw.ParseDate(wc.EndDate); err != nil {
				return w, err
			}
		}
		from, to := h.Span(start, end)
		if from == to {
			return w, fmt.Errorf("%w: no draws in window %s..%s", pool.ErrEmptyRange,
				start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
		w = match.Window{Start: from, End: to}
	}
	if wc.ExcludeDate != "" {
		d, err := draw.ParseDate(wc.ExcludeDate)
		if err != nil {
			return w, err
		}
		idx := h.IndexOf(d)
		if idx >= h.Len() || !h.At(idx).Date.Equal(draw.DateOf(d)) {
			return w, fmt.Errorf("no draw on %s to exclude", d.Format(time.DateOnly))
		}
		w = w.Excluding(idx)
	}
	return w, nil
}

func predicateFromConfig(fc config.FilterConfig) combo.Predicate {
	var preds []combo.Predicate
	if fc.MinSum > 0 {
		preds = append(preds, combo.MinSum(fc.MinSum))
	}
	if fc.MaxSum > 0 {
		preds = append(preds, combo.MaxSum(fc.MaxSum))
	}
	if fc.MaxPerDecade > 0 {
		preds = append(preds, combo.MaxPerDecade(10, fc.MaxPerDecade))
	}
	if fc.LowLimit > 0 && fc.MinLow > 0 {
		preds = append(preds, combo.MinMembersAtMost(fc.LowLimit, fc.MinLow))
	}
	if len(preds) == 0 {
		return nil
	}
	return combo.All(preds...)
}
