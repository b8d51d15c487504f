package scheduling

import "sort"

// MinutesPerDay bounds every interval this package works with.
const MinutesPerDay = 1440

// Interval is a half-open range [Start, End) in minutes from midnight.
// Valid intervals satisfy 0 <= Start < End <= MinutesPerDay.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) valid() bool {
	return iv.Start >= 0 && iv.Start < iv.End && iv.End <= MinutesPerDay
}

// sortIntervals orders intervals by start, then by end.
func sortIntervals(xs []Interval) {
	sort.Slice(xs, func(i, j int) bool {
		if xs[i].Start != xs[j].Start {
			return xs[i].Start < xs[j].Start
		}
		return xs[i].End < xs[j].End
	})
}

// MergeAdjacent merges touching or overlapping intervals into minimal form,
// preserving start order. Invalid entries are dropped.
func MergeAdjacent(xs []Interval) []Interval {
	var in []Interval
	for _, iv := range xs {
		if iv.valid() {
			in = append(in, iv)
		}
	}
	if len(in) == 0 {
		return nil
	}
	sortIntervals(in)

	merged := []Interval{in[0]}
	for _, iv := range in[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// Subtract removes every busy interval from the ordered free list and returns
// the remaining free sub-intervals in start order. Busy intervals outside any
// free interval are ignored; partial overlaps trim; full covers eliminate.
func Subtract(free, busy []Interval) []Interval {
	blocked := MergeAdjacent(busy)

	var out []Interval
	for _, f := range free {
		if !f.valid() {
			continue
		}
		cur := f
		for _, b := range blocked {
			if b.End <= cur.Start {
				continue
			}
			if b.Start >= cur.End {
				break
			}
			if b.Start > cur.Start {
				out = append(out, Interval{Start: cur.Start, End: b.Start})
			}
			if b.End >= cur.End {
				cur.Start = cur.End
				break
			}
			cur.Start = b.End
		}
		if cur.Start < cur.End {
			out = append(out, cur)
		}
	}
	return out
}

// nextHourAfter returns the first on-the-hour minute strictly after m.
func nextHourAfter(m int) int {
	return ((m / 60) + 1) * 60
}
