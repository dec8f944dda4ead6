package scene

// BringForward swaps s with the sibling drawn just above it. It reports
// whether the order changed; a shape without a parent or already on top is
// left alone.
func BringForward(s Shape) bool {
	return restack(s, func(i, n int) int { return i + 1 })
}

// SendBackward swaps s with the sibling drawn just below it.
func SendBackward(s Shape) bool {
	return restack(s, func(i, n int) int { return i - 1 })
}

// BringToFront moves s to the top of its parent's paint order.
func BringToFront(s Shape) bool {
	return restack(s, func(i, n int) int { return n - 1 })
}

// SendToBack moves s to the bottom of its parent's paint order.
func SendToBack(s Shape) bool {
	return restack(s, func(i, n int) int { return 0 })
}

func restack(s Shape, target func(i, n int) int) bool {
	if s == nil {
		return false
	}
	p := s.Parent()
	if p == nil {
		return false
	}
	i := p.IndexOf(s)
	to := target(i, len(p.children))
	if to < 0 || to >= len(p.children) || to == i {
		return false
	}
	return p.moveChild(s, to) == nil
}
