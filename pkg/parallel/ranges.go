package parallel

// Range is the half-open interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns Hi - Lo.
func (r Range) Len() int {
	return r.Hi - r.Lo
}

// Split divides [0, n) into at most parts contiguous, non-empty ranges whose
// lengths differ by at most one.
func Split(n, parts int) []Range {
	if n <= 0 {
		return nil
	}
	if parts <= 0 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	ranges := make([]Range, 0, parts)
	base, extra := n/parts, n%parts
	lo := 0
	for i := 0; i < parts; i++ {
		size := base
		if i < extra {
			size++
		}
		ranges = append(ranges, Range{Lo: lo, Hi: lo + size})
		lo += size
	}
	return ranges
}

// ForEachRange splits [0, n) across a pool of workers and calls fn once per
// range, returning after every call has finished. Results are indexed by
// range position so callers can merge them in a fixed order.
func ForEachRange(n, workers int, fn func(part int, r Range)) error {
	ranges := Split(n, workers)
	if len(ranges) <= 1 {
		for i, r := range ranges {
			fn(i, r)
		}
		return nil
	}

	pool, err := NewWorkerPool(len(ranges))
	if err != nil {
		return err
	}
	for i, r := range ranges {
		pool.Submit(func() { fn(i, r) })
	}
	return pool.Close()
}
