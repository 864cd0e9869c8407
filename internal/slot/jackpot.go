package slot

import "github.com/shopspring/decimal"

// Tier identifies one progressive jackpot pool.
type Tier string

const (
	TierMini    Tier = "mini"
	TierMinor   Tier = "minor"
	TierJackpot Tier = "jackpot"
	TierGrand   Tier = "grand"
)

// tierOrder fixes iteration order; the roll consumes one float per tier, so
// the order is part of the reproducible RNG stream.
var tierOrder = [4]Tier{TierMini, TierMinor, TierJackpot, TierGrand}

// jackpotBase holds each tier's reset value.
var jackpotBase = map[Tier]decimal.Decimal{
	TierMini:    dec("20.00"),
	TierMinor:   dec("50.00"),
	TierJackpot: dec("500.00"),
	TierGrand:   dec("2500.00"),
}

// jackpotBaseProb is the per-spin win probability for each tier before bet
// scaling.
var jackpotBaseProb = map[Tier]float64{
	TierMini:    1.0 / 500.0,
	TierMinor:   1.0 / 2000.0,
	TierJackpot: 1.0 / 25000.0,
	TierGrand:   1.0 / 500000.0,
}

// jackpotProbCap is the absolute ceiling on any tier's effective probability.
const jackpotProbCap = 0.25

var jackpotAccrualRate = dec("0.01")

// JackpotWin records one tier paid out during a spin.
type JackpotWin struct {
	Tier   Tier            `json:"tier"`
	Amount decimal.Decimal `json:"amount"`
}

// JackpotLedger holds the four progressive pools. Pools accrue on every
// real-money spin and reset to their base value when won. The ledger is owned
// by one Machine and is not safe for concurrent use.
type JackpotLedger struct {
	current map[Tier]decimal.Decimal
}

// NewJackpotLedger creates a ledger with every pool at its base value.
func NewJackpotLedger() *JackpotLedger {
	current := make(map[Tier]decimal.Decimal, len(jackpotBase))
	for tier, base := range jackpotBase {
		current[tier] = base
	}
	return &JackpotLedger{current: current}
}

// Accrue bumps every pool by 1% of the bet. Called only for real-money spins;
// free spins cost nothing and feed nothing.
func (l *JackpotLedger) Accrue(bet decimal.Decimal) {
	inc := bet.Mul(jackpotAccrualRate).Round(2)
	for _, tier := range tierOrder {
		l.current[tier] = l.current[tier].Add(inc).Round(2)
	}
}

// Roll draws one float per tier, in fixed tier order, and awards each tier
// whose draw lands under its effective probability. Tiers win independently:
// a single spin can take several pools. Won pools reset to base.
func (l *JackpotLedger) Roll(bet decimal.Decimal, rng Rand) []JackpotWin {
	var wins []JackpotWin
	for _, tier := range tierOrder {
		p := effectiveProbability(tier, bet)
		if rng.Float01() < p {
			amount := l.current[tier].Round(2)
			wins = append(wins, JackpotWin{Tier: tier, Amount: amount})
			l.current[tier] = jackpotBase[tier]
		}
	}
	return wins
}

// effectiveProbability scales the tier's base probability linearly with bet
// size: base odds apply at a bet of 10, clamped to [0.1x, 5x], and the result
// never exceeds jackpotProbCap.
func effectiveProbability(tier Tier, bet decimal.Decimal) float64 {
	betF, _ := bet.Float64()
	scale := betF / 10.0
	if scale < 0.1 {
		scale = 0.1
	} else if scale > 5.0 {
		scale = 5.0
	}
	p := jackpotBaseProb[tier] * scale
	if p > jackpotProbCap {
		p = jackpotProbCap
	}
	return p
}

// Snapshot returns a copy of the current pool values.
func (l *JackpotLedger) Snapshot() map[Tier]decimal.Decimal {
	snap := make(map[Tier]decimal.Decimal, len(l.current))
	for tier, cur := range l.current {
		snap[tier] = cur
	}
	return snap
}

// Current returns one pool's current value.
func (l *JackpotLedger) Current(tier Tier) decimal.Decimal {
	return l.current[tier]
}

// JackpotBase returns one tier's configured reset value.
func JackpotBase(tier Tier) decimal.Decimal {
	return jackpotBase[tier]
}
