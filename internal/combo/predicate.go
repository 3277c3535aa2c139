package combo

// Predicate is a cheap structural check applied before matching. It must not
// retain or modify the combination it is given. Predicates run while
// candidates are generated; a panic there aborts the run.
type Predicate func(Combination) bool

func MinSum(target int) Predicate {
	return func(c Combination) bool { return c.Sum() >= target }
}

func MaxSum(limit int) Predicate {
	return func(c Combination) bool { return c.Sum() <= limit }
}

// MinMembersAtMost requires at least count members <= limit.
func MinMembersAtMost(limit, count int) Predicate {
	return func(c Combination) bool {
		hits := 0
		for _, n := range c {
			if n <= limit {
				hits++
				if hits >= count {
					return true
				}
			}
		}
		return hits >= count
	}
}

// MaxPerDecade rejects combinations where a band of width numbers
// (1..width, width+1..2*width and so on) contributes more than limit members.
func MaxPerDecade(width, limit int) Predicate {
	if width <= 0 {
		width = 10
	}
	return func(c Combination) bool {
		counts := make(map[int]int, len(c))
		for _, n := range c {
			band := (n - 1) / width
			counts[band]++
			if counts[band] > limit {
				return false
			}
		}
		return true
	}
}

// All accepts when every non-nil predicate accepts.
func All(preds ...Predicate) Predicate {
	return func(c Combination) bool {
		for _, p := range preds {
			if p != nil && !p(c) {
				return false
			}
		}
		return true
	}
}

func Not(p Predicate) Predicate {
	return func(c Combination) bool { return !p(c) }
}
