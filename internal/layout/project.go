package layout

// project maps packed items to renderable geometry. Items must be in
// the canonical order produced by assignLanes.
func (e *Engine) project(items []*item, win Window, laneCount int) (blocks []Block, totalHeight float64) {
	blocks = make([]Block, 0, len(items))

	switch e.opts.Mode {
	case ModeFixedRow:
		for _, it := range items {
			b := e.newBlock(it, win)
			b.Top = float64(it.lane) * e.opts.FixedRowHeight
			b.Height = e.opts.FixedRowHeight - e.opts.RowGap
			blocks = append(blocks, b)
		}
		totalHeight = float64(laneCount) * e.opts.FixedRowHeight

	default: // ModeFreeStack
		// cum[l] is lane l's occupied height including the spacing
		// after its last block.
		cum := make([]float64, laneCount)
		for _, it := range items {
			height := e.estimator.EstimateHeight(it.ev, e.opts.ContentWidth)
			if height < e.opts.BaseBlockHeight {
				height = e.opts.BaseBlockHeight
			}

			b := e.newBlock(it, win)
			b.Top = cum[it.lane]
			b.Height = height
			cum[it.lane] += height + e.opts.VerticalSpacing
			blocks = append(blocks, b)
		}
		for _, c := range cum {
			if c > totalHeight {
				totalHeight = c
			}
		}
		if len(items) > 0 {
			// No spacing after the last block in a lane.
			totalHeight -= e.opts.VerticalSpacing
		}
	}

	return blocks, totalHeight
}

// newBlock fills the mode-independent horizontal geometry: position
// and width as percentages of the day window.
func (e *Engine) newBlock(it *item, win Window) Block {
	total := float64(win.Minutes())
	left := float64(it.start-win.StartMinutes) / total * 100
	width := float64(it.end-it.start) / total * 100
	if left+width > 100 {
		// Right-edge rounding must never overflow the day column.
		width = 100 - left
	}

	return Block{
		Event:        it.ev,
		Lane:         it.lane,
		StartMinutes: it.start,
		EndMinutes:   it.end,
		LeftPercent:  left,
		WidthPercent: width,
	}
}
