package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MJE43/haunted-slots-go/internal/sim"
	"github.com/MJE43/haunted-slots-go/internal/slot"
)

func main() {
	spins := flag.Int("spins", 1_000_000, "paid spins to simulate")
	bet := flag.String("bet", "10", "bet per spin")
	volatility := flag.String("volatility", "MEDIUM", "reel volatility: LOW, MEDIUM, HIGH")
	rtpMode := flag.String("rtp", "STANDARD", "payout mode: TIGHT, STANDARD, LOOSE")
	workers := flag.Int("workers", 0, "worker count (0 = GOMAXPROCS)")
	flag.Parse()

	cfg := slot.DefaultConfig()
	var err error
	if cfg.Volatility, err = slot.ParseVolatility(*volatility); err != nil {
		log.Fatalf("rtp-sim: %v", err)
	}
	if cfg.RTPMode, err = slot.ParseRTPMode(*rtpMode); err != nil {
		log.Fatalf("rtp-sim: %v", err)
	}
	betAmount, err := decimal.NewFromString(*bet)
	if err != nil {
		log.Fatalf("rtp-sim: bet %q: %v", *bet, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := sim.Run(ctx, sim.Params{
		Config:  cfg,
		Bet:     betAmount,
		Spins:   *spins,
		Workers: *workers,
	})
	if err != nil {
		log.Fatalf("rtp-sim: %v", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("=== RTP Simulation (%s / %s) ===\n", cfg.Volatility, cfg.RTPMode)
	fmt.Printf("Paid spins:       %d (%.0f spins/sec)\n", res.PaidSpins, float64(res.PaidSpins+res.FreeSpins)/elapsed.Seconds())
	fmt.Printf("Free spins:       %d\n", res.FreeSpins)
	fmt.Printf("Total bet:        %s\n", res.TotalBet)
	fmt.Printf("Total win:        %s\n", res.TotalWin)
	fmt.Printf("RTP:              %.4f\n", res.RTP)
	fmt.Printf("Line hit rate:    %.4f\n", float64(res.LineHits)/float64(res.PaidSpins+res.FreeSpins))
	fmt.Printf("Scatter triggers: %d (1 in %.0f spins)\n", res.ScatterTriggers, safeRatio(res.PaidSpins+res.FreeSpins, res.ScatterTriggers))
	fmt.Printf("Max single win:   %s\n", res.MaxWin)
	for _, tier := range []slot.Tier{slot.TierMini, slot.TierMinor, slot.TierJackpot, slot.TierGrand} {
		if n := res.JackpotHits[tier]; n > 0 {
			fmt.Printf("Jackpot %-8s %d hits\n", tier+":", n)
		}
	}
	fmt.Printf("Elapsed:          %s\n", elapsed.Round(time.Millisecond))
}

func safeRatio(total, hits int64) float64 {
	if hits == 0 {
		return 0
	}
	return float64(total) / float64(hits)
}
