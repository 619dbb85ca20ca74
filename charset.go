package gram

import "sort"

// CharSet is an immutable set of unicode scalar values, represented as a
// sorted list of disjoint closed ranges. A complemented set stores the
// ranges it excludes rather than materializing the (possibly unbounded)
// set of runes it contains.
type CharSet struct {
	ranges []runeRange
	negate bool
}

type runeRange struct {
	lo, hi rune
}

// CharFromScalar returns the set containing exactly r.
func CharFromScalar(r rune) CharSet {
	return CharSet{ranges: []runeRange{{r, r}}}
}

// CharFromRange returns the set containing every scalar in the closed
// interval [lo, hi]. If lo > hi the bounds are swapped.
func CharFromRange(lo, hi rune) CharSet {
	if lo > hi {
		lo, hi = hi, lo
	}
	return CharSet{ranges: []runeRange{{lo, hi}}}
}

// CharFromString returns the set of scalars occurring in members, each
// counted at most once regardless of repeats in members.
func CharFromString(members string) CharSet {
	seen := make(map[rune]bool)
	var rs []rune
	for _, r := range members {
		if !seen[r] {
			seen[r] = true
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })

	var ranges []runeRange
	for _, r := range rs {
		if n := len(ranges); n > 0 && ranges[n-1].hi+1 == r {
			ranges[n-1].hi = r
		} else {
			ranges = append(ranges, runeRange{r, r})
		}
	}
	return CharSet{ranges: ranges}
}

// CharComplement returns the set of every scalar not in of.
func CharComplement(of CharSet) CharSet {
	return CharSet{ranges: of.ranges, negate: !of.negate}
}

// Contains reports whether r is a member of the set.
func (c CharSet) Contains(r rune) bool {
	in := false
	i := sort.Search(len(c.ranges), func(i int) bool { return c.ranges[i].hi >= r })
	if i < len(c.ranges) && c.ranges[i].lo <= r {
		in = true
	}
	if c.negate {
		return !in
	}
	return in
}

// Union returns the set of scalars contained in either c or other.
func (c CharSet) Union(other CharSet) CharSet {
	if !c.negate && !other.negate {
		return CharSet{ranges: mergeRanges(c.ranges, other.ranges)}
	}
	// General case: the union of any set with a negated set is itself
	// expressed as a negated set over the intersection of their
	// complements (De Morgan), which is always representable as a finite
	// range list when at least one side is negated:
	// complement(c) ∩ complement(other).
	cc := CharComplement(c)
	co := CharComplement(other)
	return CharComplement(CharSet{ranges: intersectRanges(cc.effectiveRanges(), co.effectiveRanges())})
}

// effectiveRanges returns the positive range list of the scalars in c. A
// negated set is resolved by inverting its ranges over [0, 0x10FFFF] (see
// invertRanges); a positive set's ranges are returned as they are.
func (c CharSet) effectiveRanges() []runeRange {
	if c.negate {
		return invertRanges(c.ranges)
	}
	return c.ranges
}

// Equal reports whether c and other contain exactly the same scalars.
func (c CharSet) Equal(other CharSet) bool {
	a, b := c.effectiveRanges(), other.effectiveRanges()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mergeRanges(a, b []runeRange) []runeRange {
	merged := append(append([]runeRange{}, a...), b...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].lo < merged[j].lo })

	var out []runeRange
	for _, r := range merged {
		if n := len(out); n > 0 && r.lo <= out[n-1].hi+1 {
			if r.hi > out[n-1].hi {
				out[n-1].hi = r.hi
			}
		} else {
			out = append(out, r)
		}
	}
	return out
}

// invertRanges returns the bounded-rune complement of a sorted,
// non-overlapping range list, clamped to the scalar range used by the
// rest of this implementation ([0, 0x10FFFF]).
func invertRanges(ranges []runeRange) []runeRange {
	const maxRune = 0x10FFFF
	var out []runeRange
	next := rune(0)
	for _, r := range ranges {
		if r.lo > next {
			out = append(out, runeRange{next, r.lo - 1})
		}
		if r.hi+1 > next {
			next = r.hi + 1
		}
	}
	if next <= maxRune {
		out = append(out, runeRange{next, maxRune})
	}
	return out
}

func intersectRanges(a, b []runeRange) []runeRange {
	var out []runeRange
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := a[i].lo
		if b[j].lo > lo {
			lo = b[j].lo
		}
		hi := a[i].hi
		if b[j].hi < hi {
			hi = b[j].hi
		}
		if lo <= hi {
			out = append(out, runeRange{lo, hi})
		}
		if a[i].hi < b[j].hi {
			i++
		} else {
			j++
		}
	}
	return out
}
