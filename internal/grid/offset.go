package grid

// PinnedOffset returns the distance from the container edge at which the
// column with the given id starts.
//
// Left-pinned columns stack from the left edge in sequence order, so the
// offset is the sum of the left-pinned columns before the target. Right-pinned
// columns stack from the right edge: the offset is the sum of the right-pinned
// columns after the target, which puts the last right-pinned column flush
// against the right edge. Unpinned and unknown columns return 0.
//
// Header and body cells must both use this function; a mismatch between them
// shows up as misaligned columns.
func PinnedOffset(cols []Column, id string) int {
	idx := -1
	for i, c := range cols {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}

	switch side := cols[idx].Pin; side {
	case PinLeft:
		offset := 0
		for _, c := range cols[:idx] {
			if c.Pin == PinLeft {
				offset += c.Size
			}
		}
		return offset
	case PinRight:
		offset := 0
		for _, c := range cols[idx+1:] {
			if c.Pin == PinRight {
				offset += c.Size
			}
		}
		return offset
	default:
		return 0
	}
}

// PinnedOffsets computes PinnedOffset for every pinned column in one pass.
// Unpinned columns are absent from the map.
func PinnedOffsets(cols []Column) map[string]int {
	out := make(map[string]int, len(cols))
	left := 0
	for _, c := range cols {
		if c.Pin == PinLeft {
			out[c.ID] = left
			left += c.Size
		}
	}
	right := 0
	for i := len(cols) - 1; i >= 0; i-- {
		c := cols[i]
		if c.Pin == PinRight {
			out[c.ID] = right
			right += c.Size
		}
	}
	return out
}

// PinnedWidth returns the total size of the columns pinned to side.
func PinnedWidth(cols []Column, side PinSide) int {
	total := 0
	for _, c := range cols {
		if side != PinNone && c.Pin == side {
			total += c.Size
		}
	}
	return total
}
