// Package sim runs Monte Carlo audits of the slot math: many machines, many
// spins, aggregate RTP and feature frequencies. This is how paytable or strip
// changes get sanity-checked before they ship.
package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MJE43/haunted-slots-go/internal/slot"
)

// Params configures one simulation run.
type Params struct {
	Config slot.Config
	Bet    decimal.Decimal
	// Spins is the number of paid spins to simulate. Free spins triggered
	// along the way run in addition to this count.
	Spins int
	// Workers defaults to GOMAXPROCS when zero. Each worker drives its own
	// independently seeded machine; results are merged at the end.
	Workers int
}

// Result aggregates a simulation run.
type Result struct {
	PaidSpins       int64               `json:"paid_spins"`
	FreeSpins       int64               `json:"free_spins"`
	TotalBet        decimal.Decimal     `json:"total_bet"`
	TotalWin        decimal.Decimal     `json:"total_win"`
	LineHits        int64               `json:"line_hits"`
	ScatterTriggers int64               `json:"scatter_triggers"`
	JackpotHits     map[slot.Tier]int64 `json:"jackpot_hits"`
	MaxWin          decimal.Decimal     `json:"max_win"`

	// RTP is TotalWin / TotalBet.
	RTP float64 `json:"rtp"`
}

type workerResult struct {
	res Result
	err error
}

// Run executes the simulation. Paid spins are split across workers; the
// context can cancel a long run early, returning an error.
func Run(ctx context.Context, p Params) (Result, error) {
	if p.Spins <= 0 {
		return Result{}, fmt.Errorf("spins must be positive, got %d", p.Spins)
	}
	if !p.Bet.IsPositive() {
		return Result{}, fmt.Errorf("bet must be positive, got %s", p.Bet)
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > p.Spins {
		workers = p.Spins
	}

	// Each worker gets a balance that cannot run out mid-simulation.
	cfg := p.Config
	cfg.StartingBalance = p.Bet.Mul(decimal.NewFromInt(int64(p.Spins + 1)))
	cfg.BetOptions = []decimal.Decimal{p.Bet}

	results := make(chan workerResult, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		share := p.Spins / workers
		if w < p.Spins%workers {
			share++
		}
		wg.Add(1)
		go func(spins int) {
			defer wg.Done()
			res, err := runWorker(ctx, cfg, p.Bet, spins)
			results <- workerResult{res: res, err: err}
		}(share)
	}
	wg.Wait()
	close(results)

	total := Result{
		TotalBet:    decimal.Zero,
		TotalWin:    decimal.Zero,
		MaxWin:      decimal.Zero,
		JackpotHits: make(map[slot.Tier]int64),
	}
	for wr := range results {
		if wr.err != nil {
			return Result{}, wr.err
		}
		total.PaidSpins += wr.res.PaidSpins
		total.FreeSpins += wr.res.FreeSpins
		total.TotalBet = total.TotalBet.Add(wr.res.TotalBet)
		total.TotalWin = total.TotalWin.Add(wr.res.TotalWin)
		total.LineHits += wr.res.LineHits
		total.ScatterTriggers += wr.res.ScatterTriggers
		for tier, n := range wr.res.JackpotHits {
			total.JackpotHits[tier] += n
		}
		if wr.res.MaxWin.GreaterThan(total.MaxWin) {
			total.MaxWin = wr.res.MaxWin
		}
	}

	if total.TotalBet.IsPositive() {
		rtp, _ := total.TotalWin.Div(total.TotalBet).Float64()
		total.RTP = rtp
	}
	return total, nil
}

func runWorker(ctx context.Context, cfg slot.Config, bet decimal.Decimal, paidSpins int) (Result, error) {
	machine, err := slot.New(cfg)
	if err != nil {
		return Result{}, fmt.Errorf("create machine: %w", err)
	}

	res := Result{
		TotalBet:    decimal.Zero,
		TotalWin:    decimal.Zero,
		MaxWin:      decimal.Zero,
		JackpotHits: make(map[slot.Tier]int64),
	}
	for res.PaidSpins < int64(paidSpins) {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("simulation cancelled: %w", err)
		}
		out, err := machine.Spin(bet)
		if err != nil {
			return Result{}, fmt.Errorf("spin: %w", err)
		}

		if out.FreeSpin {
			res.FreeSpins++
		} else {
			res.PaidSpins++
			res.TotalBet = res.TotalBet.Add(bet)
		}
		res.TotalWin = res.TotalWin.Add(out.TotalWin)
		if len(out.LineWins) > 0 {
			res.LineHits++
		}
		if out.FreeSpinsAwarded > 0 {
			res.ScatterTriggers++
		}
		for _, w := range out.JackpotWins {
			res.JackpotHits[w.Tier]++
		}
		if out.TotalWin.GreaterThan(res.MaxWin) {
			res.MaxWin = out.TotalWin
		}
	}
	return res, nil
}
