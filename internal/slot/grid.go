package slot

// Rand is the randomness the game math consumes. *engine.Rand satisfies it;
// tests substitute fixed sequences.
type Rand interface {
	// Float01 returns a uniform float64 in [0, 1).
	Float01() float64
	// IntN returns a uniform int in [0, n); n must be positive.
	IntN(n int) int
}

// Grid is the visible 3x5 window, row-major with row 0 on top.
type Grid [Rows][Reels]Symbol

// SampleGrid draws one stop index per reel and projects the three-cell window
// onto the circular strip: top = stop-1, middle = stop, bottom = stop+1, with
// wraparound at both ends. Reels are sampled strictly left to right against
// the shared RNG stream so that a seed reproduces the same grid.
func SampleGrid(strips [Reels][]Symbol, rng Rand) (Grid, [Reels]int) {
	var grid Grid
	var stops [Reels]int
	for reel := 0; reel < Reels; reel++ {
		strip := strips[reel]
		n := len(strip)
		stop := rng.IntN(n)
		stops[reel] = stop
		grid[0][reel] = strip[((stop-1)+n)%n]
		grid[1][reel] = strip[stop]
		grid[2][reel] = strip[(stop+1)%n]
	}
	return grid, stops
}
