// Package poskey allocates lexicographically sortable order keys. A key is a
// short string over the lowercase letters a-z; plain string comparison of two
// keys yields their relative rank. Between any two keys there is always room
// for another, so inserting a card never renumbers its siblings.
package poskey

const (
	minDigit = 'a'
	maxDigit = 'z'

	// belowMin and aboveMax are virtual digits standing in for the open
	// boundaries: an exhausted lower neighbor reads as belowMin, an absent
	// upper neighbor as aboveMax.
	belowMin = int(minDigit) - 1
	aboveMax = int(maxDigit) + 1
)

// First returns the canonical key for the first card in an empty column. It
// sits in the middle of the key space so both prepends and appends stay
// short.
func First() string {
	return string(rune((int(minDigit) + aboveMax) / 2))
}

// After returns a key strictly greater than prev. Passing "" yields First().
func After(prev string) string {
	return Between(prev, "")
}

// Before returns a key strictly less than next. Passing "" yields First().
func Before(next string) string {
	return Between("", next)
}

// Between returns a key strictly between prev and next. An empty prev means
// no lower neighbor; an empty next means no upper neighbor. When both are
// non-empty, prev must sort strictly before next. The result is never equal
// to either argument and never ends in the minimum digit, which guarantees
// later insertions always have room on both sides.
func Between(prev, next string) string {
	key := make([]byte, 0, len(prev)+2)
	i := 0

	// Copy the shared prefix; the answer must carry it.
	for i < len(prev) && i < len(next) && prev[i] == next[i] {
		key = append(key, prev[i])
		i++
	}

	for {
		pd := belowMin
		if i < len(prev) {
			pd = int(prev[i])
		}
		nd := aboveMax
		if i < len(next) {
			nd = int(next[i])
		}

		switch {
		case nd-pd >= 2:
			mid := (pd + nd + 1) / 2
			if mid == int(minDigit) {
				// Only the minimum digit fits at this length. Take it, then
				// settle in the middle of the now fully open next position.
				key = append(key, minDigit, byte(First()[0]))
				return string(key)
			}
			key = append(key, byte(mid))
			return string(key)

		case pd >= int(minDigit):
			// Adjacent digits: keep prev's digit, then find a key strictly
			// greater than the rest of prev with no upper bound.
			key = append(key, byte(pd))
			i++
			for i < len(prev) && prev[i] == maxDigit {
				key = append(key, maxDigit)
				i++
			}
			tail := belowMin
			if i < len(prev) {
				tail = int(prev[i])
			}
			key = append(key, byte((tail+aboveMax+1)/2))
			return string(key)

		default:
			// prev is exhausted and next's digit here is the minimum: copy
			// it and keep descending below next's remainder.
			key = append(key, minDigit)
			i++
		}
	}
}

// Sequence returns n append keys starting after prev, each strictly greater
// than the one before it. It is what the loader uses to hand out positions
// for cards that arrived without one.
func Sequence(prev string, n int) []string {
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		prev = After(prev)
		keys = append(keys, prev)
	}
	return keys
}
