package slot

// FindScatters collects every scatter cell in the grid, scanning row-major.
// Scatters count from any position, independent of paylines.
func FindScatters(grid Grid) []Cell {
	var cells []Cell
	for r := 0; r < Rows; r++ {
		for c := 0; c < Reels; c++ {
			if grid[r][c] == Scatter {
				cells = append(cells, Cell{Row: r, Reel: c})
			}
		}
	}
	return cells
}

// freeSpinAward maps a scatter count to the free spins granted: 3 scatters
// award 10, 4 award 12, 5 award 15. Fewer than 3 award nothing.
func freeSpinAward(scatters int) int {
	switch {
	case scatters >= 5:
		return 15
	case scatters == 4:
		return 12
	case scatters == 3:
		return 10
	default:
		return 0
	}
}
