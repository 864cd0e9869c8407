package slot

import "github.com/shopspring/decimal"

// SpinOutcome is the immutable record of one spin. It is the only channel of
// information out of the machine; once returned it is never mutated, so it
// may be shared freely with renderers, journals or any other observer.
type SpinOutcome struct {
	Grid     Grid            `json:"grid"`
	Stops    [Reels]int      `json:"stops"`
	Bet      decimal.Decimal `json:"bet"`
	FreeSpin bool            `json:"free_spin"`

	LineWins  []LineWin       `json:"line_wins"`
	LineTotal decimal.Decimal `json:"line_total"`

	ScatterCells     []Cell `json:"scatter_cells,omitempty"`
	FreeSpinsAwarded int    `json:"free_spins_awarded"`

	JackpotWins  []JackpotWin    `json:"jackpot_wins,omitempty"`
	JackpotTotal decimal.Decimal `json:"jackpot_total"`

	TotalWin decimal.Decimal `json:"total_win"`

	Balance            decimal.Decimal          `json:"balance"`
	Jackpots           map[Tier]decimal.Decimal `json:"jackpots"`
	FreeSpinsRemaining int                      `json:"free_spins_remaining"`

	// SessionTotal is the free-spin session accumulator after this spin.
	// When FreeSpinsEnded is true the run just finished: SessionFinal holds
	// the finalized session total and SessionTotal has been reset to zero.
	SessionTotal   decimal.Decimal `json:"free_spin_session_total"`
	FreeSpinsEnded bool            `json:"free_spins_ended"`
	SessionFinal   decimal.Decimal `json:"free_spin_session_final"`
}
