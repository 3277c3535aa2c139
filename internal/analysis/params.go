package analysis

import (
	"fmt"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
	"github.com/kengiroy2-g/kenobase-sub007/internal/match"
	"github.com/kengiroy2-g/kenobase-sub007/internal/pool"
	"github.com/kengiroy2-g/kenobase-sub007/internal/worker"
)

// NoContainment disables the at-most-N-shared prefilter.
const NoContainment = -1

// Params is everything a run needs. It is read-only once a run starts and
// may be shared between runs.
type Params struct {
	Name      string
	History   *draw.History
	Pool      *pool.Pool
	K         int
	Predicate combo.Predicate
	// MaxShared rejects combinations sharing more than this many numbers
	// with any single draw. NoContainment disables the check.
	MaxShared int
	Window    match.Window
	Scan      match.ScanOptions
	Worker    worker.Config
}

func (p Params) validate() error {
	if p.Pool == nil {
		return fmt.Errorf("%w: no pool", pool.ErrInvalidPool)
	}
	if p.K <= 0 || p.K > p.Pool.Size() {
		return fmt.Errorf("%w: k=%d with pool size %d", combo.ErrInvalidArity, p.K, p.Pool.Size())
	}
	if p.History == nil {
		return fmt.Errorf("%w: no history", match.ErrEmptyHistory)
	}
	if p.Window.Size(p.History) == 0 {
		return fmt.Errorf("%w: window [%d,%d) of %d draws", match.ErrEmptyHistory, p.Window.Start, p.Window.End, p.History.Len())
	}
	if p.MaxShared < NoContainment {
		return fmt.Errorf("max shared must be >= %d, got %d", NoContainment, p.MaxShared)
	}
	return nil
}
