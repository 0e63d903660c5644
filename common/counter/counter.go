package counter

// Counter tallies occurrences per key.
type Counter[T comparable] map[T]int

// PopMax removes and returns the most counted key.
func (c Counter[T]) PopMax() (T, int) {
	var (
		maxKey T
		max    = -1
	)
	for key, n := range c {
		if n > max {
			maxKey, max = key, n
		}
	}
	delete(c, maxKey)
	return maxKey, max
}

func (c Counter[T]) Inc(key T, n int) {
	c[key] += n
}
