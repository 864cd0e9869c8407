package slot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewSeeded(DefaultConfig(), testSeed())
	if err != nil {
		t.Fatalf("NewSeeded() error = %v", err)
	}
	return m
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad volatility", func(c *Config) { c.Volatility = "EXTREME" }},
		{"bad rtp mode", func(c *Config) { c.RTPMode = "RIGGED" }},
		{"negative balance", func(c *Config) { c.StartingBalance = dec("-1") }},
		{"no denominations", func(c *Config) { c.BetOptions = nil }},
		{"zero denomination", func(c *Config) { c.BetOptions = []decimal.Decimal{dec("0")} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewSeeded(cfg, testSeed()); err == nil {
				t.Error("expected config error, got nil")
			}
		})
	}
}

func TestSpinRejectsUnknownDenomination(t *testing.T) {
	m := newTestMachine(t)
	before := m.Balance()

	_, err := m.Spin(dec("4"))
	var invalid *InvalidBetError
	if !errors.As(err, &invalid) {
		t.Fatalf("Spin(4) error = %v, want InvalidBetError", err)
	}
	if !m.Balance().Equal(before) {
		t.Errorf("balance changed on rejected bet: %s -> %s", before, m.Balance())
	}
}

func TestSpinRejectsBetExceedingBalance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartingBalance = dec("50")
	m, err := NewSeeded(cfg, testSeed())
	if err != nil {
		t.Fatalf("NewSeeded() error = %v", err)
	}

	_, err = m.Spin(dec("100"))
	var invalid *InvalidBetError
	if !errors.As(err, &invalid) {
		t.Fatalf("Spin(100) error = %v, want InvalidBetError", err)
	}
	if !m.Balance().Equal(dec("50")) {
		t.Errorf("balance = %s, want unchanged 50", m.Balance())
	}
}

func TestRejectedBetLeavesNoTrace(t *testing.T) {
	// A rejected bet must not touch balance, meters, or the RNG stream: the
	// machine keeps producing the same outcomes as one that never saw it.
	clean := newTestMachine(t)
	dirty := newTestMachine(t)

	if _, err := dirty.Spin(dec("7")); err == nil {
		t.Fatal("expected invalid bet error")
	}
	for tier, want := range clean.Jackpots() {
		if got := dirty.Jackpots()[tier]; !got.Equal(want) {
			t.Errorf("jackpot %s = %s after rejected bet, want %s", tier, got, want)
		}
	}

	for i := 0; i < 20; i++ {
		a, err := clean.Spin(dec("10"))
		if err != nil {
			t.Fatalf("clean spin %d error = %v", i, err)
		}
		b, err := dirty.Spin(dec("10"))
		if err != nil {
			t.Fatalf("dirty spin %d error = %v", i, err)
		}
		if a.Stops != b.Stops {
			t.Fatalf("spin %d stops diverged after rejected bet: %v != %v", i, a.Stops, b.Stops)
		}
	}
}

func TestSpinGoldenFirst(t *testing.T) {
	m := newTestMachine(t)
	out, err := m.Spin(dec("10"))
	if err != nil {
		t.Fatalf("Spin() error = %v", err)
	}

	if out.Stops != [Reels]int{59, 3, 103, 6, 59} {
		t.Errorf("stops = %v, want [59 3 103 6 59]", out.Stops)
	}
	if out.FreeSpin {
		t.Error("first spin reported as free spin")
	}
	if len(out.LineWins) != 0 || !out.TotalWin.IsZero() {
		t.Errorf("expected winless spin, got wins=%+v total=%s", out.LineWins, out.TotalWin)
	}
	if !out.Balance.Equal(dec("9990")) {
		t.Errorf("balance = %s, want 9990", out.Balance)
	}
	if got := out.Jackpots[TierMini]; !got.Equal(dec("20.10")) {
		t.Errorf("mini meter = %s, want 20.10 after one accrual", got)
	}
	if got := out.Jackpots[TierGrand]; !got.Equal(dec("2500.10")) {
		t.Errorf("grand meter = %s, want 2500.10 after one accrual", got)
	}
}

// TestSpinGoldenSession replays the first 27 spins of the sequential seed at
// bet 10. The sequence covers a scatter trigger, a retrigger inside free
// spins, a mini jackpot during free spins, and the finalized session total.
// Expected values were produced by an independent implementation.
func TestSpinGoldenSession(t *testing.T) {
	m := newTestMachine(t)

	var outcomes []*SpinOutcome
	for i := 1; i <= 27; i++ {
		out, err := m.Spin(dec("10"))
		if err != nil {
			t.Fatalf("spin %d error = %v", i, err)
		}
		outcomes = append(outcomes, out)
	}
	at := func(n int) *SpinOutcome { return outcomes[n-1] }

	// Spin 7: three scatters in reel 0's column award 10 free spins.
	if got := at(7).ScatterCells; len(got) != 3 {
		t.Fatalf("spin 7 scatters = %v, want 3 cells", got)
	}
	if at(7).FreeSpinsAwarded != 10 || at(7).FreeSpinsRemaining != 10 {
		t.Errorf("spin 7 awarded/remaining = %d/%d, want 10/10",
			at(7).FreeSpinsAwarded, at(7).FreeSpinsRemaining)
	}
	if at(7).FreeSpin {
		t.Error("spin 7 is the triggering spin and must still be a paid spin")
	}

	// Spins 8 onward consume entitlement: no debit, no accrual.
	if !at(8).FreeSpin {
		t.Error("spin 8 should be a free spin")
	}
	if !at(8).Balance.Equal(at(7).Balance) {
		t.Errorf("free spin debited balance: %s -> %s", at(7).Balance, at(8).Balance)
	}
	if got, want := at(8).Jackpots[TierMini], at(7).Jackpots[TierMini]; !got.Equal(want) {
		t.Errorf("free spin accrued jackpot meter: %s -> %s", want, got)
	}

	// Spin 11 retriggers: +10 on top of the 6 remaining.
	if at(11).FreeSpinsAwarded != 10 || at(11).FreeSpinsRemaining != 16 {
		t.Errorf("spin 11 awarded/remaining = %d/%d, want 10/16",
			at(11).FreeSpinsAwarded, at(11).FreeSpinsRemaining)
	}

	// Spin 17 hits the mini jackpot: 20.00 base + 7 paid accruals of 0.10.
	if len(at(17).JackpotWins) != 1 || at(17).JackpotWins[0].Tier != TierMini {
		t.Fatalf("spin 17 jackpot wins = %+v, want one mini win", at(17).JackpotWins)
	}
	if !at(17).JackpotWins[0].Amount.Equal(dec("20.70")) {
		t.Errorf("mini payout = %s, want 20.70", at(17).JackpotWins[0].Amount)
	}
	if !at(17).Jackpots[TierMini].Equal(dec("20.00")) {
		t.Errorf("mini meter after win = %s, want reset to 20.00", at(17).Jackpots[TierMini])
	}

	// Spin 20 lands all-beetle: every payline pays 10 x 0.5, doubled in free
	// spins, for a 100.00 line total.
	if len(at(20).LineWins) != 10 {
		t.Fatalf("spin 20 line wins = %d, want 10", len(at(20).LineWins))
	}
	if !at(20).LineTotal.Equal(dec("100")) {
		t.Errorf("spin 20 line total = %s, want 100", at(20).LineTotal)
	}

	// Spin 27 ends the run: 20 free spins consumed in total.
	if !at(27).FreeSpinsEnded {
		t.Fatal("spin 27 should end the free-spin run")
	}
	if !at(27).SessionFinal.Equal(dec("120.70")) {
		t.Errorf("session final = %s, want 120.70", at(27).SessionFinal)
	}
	if !at(27).SessionTotal.IsZero() {
		t.Errorf("session accumulator = %s after finalization, want 0", at(27).SessionTotal)
	}
	if at(27).FreeSpinsRemaining != 0 || m.FreeSpins() != 0 {
		t.Error("entitlement should be exhausted after spin 27")
	}
	if !at(27).Balance.Equal(dec("10050.70")) {
		t.Errorf("final balance = %s, want 10050.70", at(27).Balance)
	}

	freeCount := 0
	sessionSum := decimal.Zero
	for _, out := range outcomes {
		if out.FreeSpin {
			freeCount++
			sessionSum = sessionSum.Add(out.TotalWin).Round(2)
		}
	}
	if freeCount != 20 {
		t.Errorf("free spins consumed = %d, want 20 (10 + 10 retrigger)", freeCount)
	}
	if !sessionSum.Equal(dec("120.70")) {
		t.Errorf("sum of free-spin wins = %s, want session final 120.70", sessionSum)
	}
}

func TestBalanceArithmeticExactOverLongSession(t *testing.T) {
	m := newTestMachine(t)
	bet := dec("1")
	expected := m.Balance()

	for i := 0; i < 10000; i++ {
		free := m.FreeSpins() > 0
		out, err := m.Spin(bet)
		if err != nil {
			t.Fatalf("spin %d error = %v", i, err)
		}
		if !free {
			expected = expected.Sub(bet).Round(2)
		}
		expected = expected.Add(out.TotalWin).Round(2)
		if !out.Balance.Equal(expected) {
			t.Fatalf("spin %d balance drifted: got %s, want %s", i, out.Balance, expected)
		}
		if out.Balance.Exponent() < -2 {
			t.Fatalf("spin %d balance has sub-cent precision: %s", i, out.Balance)
		}
	}
}

func TestJackpotMetersMonotonicExceptOnWin(t *testing.T) {
	m := newTestMachine(t)
	prev := m.Jackpots()

	for i := 0; i < 5000; i++ {
		out, err := m.Spin(dec("2"))
		if err != nil {
			t.Fatalf("spin %d error = %v", i, err)
		}
		won := make(map[Tier]bool)
		for _, w := range out.JackpotWins {
			won[w.Tier] = true
		}
		for tier, before := range prev {
			after := out.Jackpots[tier]
			if won[tier] {
				if !after.Equal(JackpotBase(tier)) {
					t.Fatalf("spin %d: %s won but meter = %s, want base %s", i, tier, after, JackpotBase(tier))
				}
			} else if after.LessThan(before) {
				t.Fatalf("spin %d: %s decreased without a win: %s -> %s", i, tier, before, after)
			}
		}
		prev = out.Jackpots
	}
}

func TestReproducibleOutcomeSequences(t *testing.T) {
	a := newTestMachine(t)
	b := newTestMachine(t)
	bets := []decimal.Decimal{dec("1"), dec("5"), dec("10"), dec("2"), dec("20")}

	for i := 0; i < 2000; i++ {
		bet := bets[i%len(bets)]
		oa, err := a.Spin(bet)
		if err != nil {
			t.Fatalf("machine a spin %d error = %v", i, err)
		}
		ob, err := b.Spin(bet)
		if err != nil {
			t.Fatalf("machine b spin %d error = %v", i, err)
		}
		ja, err := json.Marshal(oa)
		if err != nil {
			t.Fatalf("marshal outcome a: %v", err)
		}
		jb, err := json.Marshal(ob)
		if err != nil {
			t.Fatalf("marshal outcome b: %v", err)
		}
		if string(ja) != string(jb) {
			t.Fatalf("spin %d outcomes diverged:\n%s\n%s", i, ja, jb)
		}
	}
}

func TestFreeSpinRunConsumesExactEntitlement(t *testing.T) {
	m := newTestMachine(t)
	m.freeSpins = 3

	session := decimal.Zero
	for i := 1; i <= 3; i++ {
		out, err := m.Spin(dec("10"))
		if err != nil {
			t.Fatalf("free spin %d error = %v", i, err)
		}
		if !out.FreeSpin {
			t.Fatalf("spin %d not in free mode with entitlement pending", i)
		}
		session = session.Add(out.TotalWin).Round(2)
		if i < 3 {
			if out.FreeSpinsEnded {
				t.Fatalf("run ended early at spin %d", i)
			}
			if !out.SessionTotal.Equal(session) {
				t.Fatalf("spin %d session total = %s, want %s", i, out.SessionTotal, session)
			}
		} else {
			if !out.FreeSpinsEnded {
				t.Fatal("run did not end when entitlement reached zero")
			}
			if !out.SessionFinal.Equal(session) {
				t.Fatalf("session final = %s, want %s", out.SessionFinal, session)
			}
		}
	}

	if m.FreeSpins() != 0 {
		t.Errorf("entitlement = %d after run, want 0", m.FreeSpins())
	}
	if !m.FreeSpinSessionTotal().IsZero() {
		t.Errorf("session accumulator = %s after run, want 0", m.FreeSpinSessionTotal())
	}

	// Next spin is a paid base spin again.
	out, err := m.Spin(dec("10"))
	if err != nil {
		t.Fatalf("base spin after run error = %v", err)
	}
	if out.FreeSpin {
		t.Error("machine stayed in free-spin mode after entitlement ran out")
	}
}

func TestAccessorsBeforeFirstSpin(t *testing.T) {
	m := newTestMachine(t)
	if !m.Balance().Equal(dec("10000")) {
		t.Errorf("Balance() = %s, want 10000", m.Balance())
	}
	if m.FreeSpins() != 0 {
		t.Errorf("FreeSpins() = %d, want 0", m.FreeSpins())
	}
	for tier, want := range map[Tier]string{
		TierMini: "20.00", TierMinor: "50.00", TierJackpot: "500.00", TierGrand: "2500.00",
	} {
		if got := m.Jackpots()[tier]; !got.Equal(dec(want)) {
			t.Errorf("Jackpots()[%s] = %s, want %s", tier, got, want)
		}
	}
}

func BenchmarkSpin(b *testing.B) {
	cfg := DefaultConfig()
	cfg.StartingBalance = decimal.NewFromInt(1_000_000_000)
	m, err := NewSeeded(cfg, testSeed())
	if err != nil {
		b.Fatalf("NewSeeded() error = %v", err)
	}
	bet := dec("1")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.Spin(bet); err != nil {
			b.Fatal(err)
		}
	}
}
