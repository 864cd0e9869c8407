package slot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MJE43/haunted-slots-go/internal/engine"
)

// RTPMode selects the global multiplier applied to every line win.
type RTPMode string

const (
	RTPTight    RTPMode = "TIGHT"
	RTPStandard RTPMode = "STANDARD"
	RTPLoose    RTPMode = "LOOSE"
)

// ParseRTPMode converts a config string to an RTPMode, case-insensitively.
func ParseRTPMode(s string) (RTPMode, error) {
	switch m := RTPMode(strings.ToUpper(s)); m {
	case RTPTight, RTPStandard, RTPLoose:
		return m, nil
	default:
		return "", fmt.Errorf("unknown rtp mode %q", s)
	}
}

// Multiplier returns the line-win scalar for the mode: 0.9 tight, 1.0
// standard, 1.1 loose.
func (m RTPMode) Multiplier() decimal.Decimal {
	switch m {
	case RTPTight:
		return dec("0.9")
	case RTPLoose:
		return dec("1.1")
	default:
		return dec("1.0")
	}
}

// freeSpinMultiplier is the flat boost applied to line wins during free spins.
var freeSpinMultiplier = dec("2")

// Config carries the construction-time settings of a machine.
type Config struct {
	Volatility      Volatility
	RTPMode         RTPMode
	StartingBalance decimal.Decimal
	BetOptions      []decimal.Decimal
}

// DefaultConfig matches the cabinet's stock setup: medium volatility,
// standard RTP, 10,000 starting balance and the classic denomination ladder.
func DefaultConfig() Config {
	return Config{
		Volatility:      VolatilityMedium,
		RTPMode:         RTPStandard,
		StartingBalance: dec("10000"),
		BetOptions: []decimal.Decimal{
			dec("1"), dec("2"), dec("3"), dec("5"),
			dec("10"), dec("20"), dec("50"), dec("100"),
		},
	}
}

func (c Config) validate() error {
	if _, err := ParseVolatility(string(c.Volatility)); err != nil {
		return err
	}
	if _, err := ParseRTPMode(string(c.RTPMode)); err != nil {
		return err
	}
	if c.StartingBalance.IsNegative() {
		return fmt.Errorf("starting balance must not be negative, got %s", c.StartingBalance)
	}
	if len(c.BetOptions) == 0 {
		return fmt.Errorf("at least one bet denomination is required")
	}
	for _, bet := range c.BetOptions {
		if !bet.IsPositive() {
			return fmt.Errorf("bet denominations must be positive, got %s", bet)
		}
	}
	return nil
}

// Machine is one slot session: balance, free-spin entitlement, jackpot pools
// and the RNG stream, all owned exclusively by this instance. A spin is one
// atomic transition; Machine performs no I/O and never blocks. It is not safe
// for concurrent use — callers embedding it in a concurrent host must
// serialize spins per session.
type Machine struct {
	cfg     Config
	rng     *engine.Rand
	strips  [Reels][]Symbol
	rtpMult decimal.Decimal

	balance      decimal.Decimal
	freeSpins    int
	sessionTotal decimal.Decimal
	jackpots     *JackpotLedger
}

// New creates a machine with a crypto-seeded RNG.
func New(cfg Config) (*Machine, error) {
	rng, err := engine.New()
	if err != nil {
		return nil, err
	}
	return newMachine(cfg, rng)
}

// NewSeeded creates a machine with an explicit RNG seed, for reproducible
// sessions and dispute replay.
func NewSeeded(cfg Config, seed []byte) (*Machine, error) {
	rng, err := engine.NewFromSeed(seed)
	if err != nil {
		return nil, err
	}
	return newMachine(cfg, rng)
}

func newMachine(cfg Config, rng *engine.Rand) (*Machine, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid machine config: %w", err)
	}

	m := &Machine{
		cfg:          cfg,
		rng:          rng,
		rtpMult:      cfg.RTPMode.Multiplier(),
		balance:      cfg.StartingBalance.Round(2),
		sessionTotal: decimal.Zero,
		jackpots:     NewJackpotLedger(),
	}
	strip := BuildStrip(cfg.Volatility)
	for i := range m.strips {
		m.strips[i] = strip
	}
	return m, nil
}

// Spin runs one complete spin transaction and returns the outcome record.
//
// In base mode the bet is validated, debited, and fed to the jackpot meters.
// With free spins pending, the spin consumes one entitlement instead: no
// debit, no accrual, and line wins are doubled. The bet amount still scales
// the jackpot roll, carried from the denomination selected by the player.
// On InvalidBetError no state has changed, including the RNG stream.
func (m *Machine) Spin(bet decimal.Decimal) (*SpinOutcome, error) {
	freeSpin := m.freeSpins > 0

	if !freeSpin {
		if err := m.validateBet(bet); err != nil {
			return nil, err
		}
		m.balance = m.balance.Sub(bet).Round(2)
		m.jackpots.Accrue(bet)
	}

	grid, stops := SampleGrid(m.strips, m.rng)

	fsMult := dec("1")
	if freeSpin {
		fsMult = freeSpinMultiplier
	}
	lineWins, lineTotal := EvaluateLines(grid, bet, m.rtpMult, fsMult)

	scatterCells := FindScatters(grid)
	awarded := freeSpinAward(len(scatterCells))
	m.freeSpins += awarded

	jackpotWins := m.jackpots.Roll(bet, m.rng)
	jackpotTotal := decimal.Zero
	for _, w := range jackpotWins {
		jackpotTotal = jackpotTotal.Add(w.Amount).Round(2)
	}

	totalWin := lineTotal.Add(jackpotTotal).Round(2)
	m.balance = m.balance.Add(totalWin).Round(2)

	ended := false
	sessionFinal := decimal.Zero
	if freeSpin {
		m.freeSpins--
		m.sessionTotal = m.sessionTotal.Add(totalWin).Round(2)
		if m.freeSpins == 0 {
			ended = true
			sessionFinal = m.sessionTotal
			m.sessionTotal = decimal.Zero
		}
	}

	return &SpinOutcome{
		Grid:               grid,
		Stops:              stops,
		Bet:                bet,
		FreeSpin:           freeSpin,
		LineWins:           lineWins,
		LineTotal:          lineTotal,
		ScatterCells:       scatterCells,
		FreeSpinsAwarded:   awarded,
		JackpotWins:        jackpotWins,
		JackpotTotal:       jackpotTotal,
		TotalWin:           totalWin,
		Balance:            m.balance,
		Jackpots:           m.jackpots.Snapshot(),
		FreeSpinsRemaining: m.freeSpins,
		SessionTotal:       m.sessionTotal,
		FreeSpinsEnded:     ended,
		SessionFinal:       sessionFinal,
	}, nil
}

func (m *Machine) validateBet(bet decimal.Decimal) error {
	accepted := false
	for _, opt := range m.cfg.BetOptions {
		if bet.Equal(opt) {
			accepted = true
			break
		}
	}
	if !accepted {
		return &InvalidBetError{Bet: bet, Reason: "not an accepted denomination"}
	}
	if bet.GreaterThan(m.balance) {
		return &InvalidBetError{Bet: bet, Reason: "exceeds current balance"}
	}
	return nil
}

// Balance returns the current balance.
func (m *Machine) Balance() decimal.Decimal { return m.balance }

// FreeSpins returns the pending free-spin entitlement.
func (m *Machine) FreeSpins() int { return m.freeSpins }

// FreeSpinSessionTotal returns the running total of the active free-spin
// session, zero outside one.
func (m *Machine) FreeSpinSessionTotal() decimal.Decimal { return m.sessionTotal }

// Jackpots returns a snapshot of the current pool values.
func (m *Machine) Jackpots() map[Tier]decimal.Decimal { return m.jackpots.Snapshot() }

// Config returns the construction-time configuration.
func (m *Machine) Config() Config { return m.cfg }
