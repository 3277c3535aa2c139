package match

import (
	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/draw"
)

// Passes reports whether no draw in h shares more than maxShared numbers
// with c. It stops at the first offending draw.
func Passes(c combo.Combination, h *draw.History, maxShared int) bool {
	return PassesMask(c.Mask(), h, maxShared)
}

// PassesMask is Passes for a precomputed mask.
func PassesMask(cm draw.Mask, h *draw.History, maxShared int) bool {
	for i := 0; i < h.Len(); i++ {
		if cm.Overlap(h.Mask(i)) > maxShared {
			return false
		}
	}
	return true
}

// MaxShared returns the largest overlap between c and any draw, and the
// index of the first draw reaching it. The index is -1 for an empty history.
func MaxShared(c combo.Combination, h *draw.History) (shared, index int) {
	cm := c.Mask()
	index = -1
	for i := 0; i < h.Len(); i++ {
		if o := cm.Overlap(h.Mask(i)); o > shared || index < 0 {
			shared, index = o, i
		}
	}
	return shared, index
}
