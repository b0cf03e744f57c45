package buffer

// DirtyRange accumulates the half-open row interval pending redraw.
// Edits, highlight passes, and scrolls widen it; the render pass takes
// it exactly once per frame and clears it.
type DirtyRange struct {
	start int
	end   int
	some  bool
}

// Expand widens the interval to include [start, end).
func (d *DirtyRange) Expand(start, end int) {
	if end <= start {
		return
	}
	if !d.some {
		d.start, d.end, d.some = start, end, true
		return
	}
	if start < d.start {
		d.start = start
	}
	if end > d.end {
		d.end = end
	}
}

// FullExpand marks every row of an n-row document dirty.
func (d *DirtyRange) FullExpand(n int) {
	d.Expand(0, n)
}

// Take returns the current interval and clears it.
func (d *DirtyRange) Take() (start, end int, ok bool) {
	if !d.some {
		return 0, 0, false
	}
	start, end = d.start, d.end
	d.start, d.end, d.some = 0, 0, false
	return start, end, true
}
