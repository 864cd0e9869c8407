package slot

import "github.com/shopspring/decimal"

// LineWin describes one winning payline.
type LineWin struct {
	// Line is the payline index in declaration order.
	Line int `json:"line"`
	// Symbol is the matched symbol.
	Symbol Symbol `json:"symbol"`
	// Count is the run length (3..5).
	Count int `json:"count"`
	// Cells are the winning positions, left to right, for highlighting.
	Cells []Cell `json:"cells"`
	// Amount is the win, rounded to cents.
	Amount decimal.Decimal `json:"amount"`
}

// EvaluateLines scans the ten paylines left to right. A line pays when the
// leftmost symbol repeats on 3+ consecutive reels starting at reel 0; the
// scatter never pays as a line. Every qualifying line pays independently.
// Free spins apply fsMult (2 during a free spin, 1 otherwise) on top of the
// global RTP multiplier.
func EvaluateLines(grid Grid, bet, rtpMult, fsMult decimal.Decimal) ([]LineWin, decimal.Decimal) {
	var wins []LineWin
	total := decimal.Zero

	for lineIdx, line := range paylines {
		first := grid[line[0]][0]
		if first == Scatter {
			continue
		}

		runLen := 1
		for reel := 1; reel < Reels; reel++ {
			if grid[line[reel]][reel] != first {
				break
			}
			runLen++
		}
		if runLen < 3 {
			continue
		}

		mult, ok := paytable[first][runLen]
		if !ok {
			continue
		}
		amount := bet.Mul(mult).Mul(rtpMult).Mul(fsMult).Round(2)
		if !amount.IsPositive() {
			continue
		}

		cells := make([]Cell, runLen)
		for reel := 0; reel < runLen; reel++ {
			cells[reel] = Cell{Row: line[reel], Reel: reel}
		}
		wins = append(wins, LineWin{
			Line:   lineIdx,
			Symbol: first,
			Count:  runLen,
			Cells:  cells,
			Amount: amount,
		})
		total = total.Add(amount).Round(2)
	}

	return wins, total
}
