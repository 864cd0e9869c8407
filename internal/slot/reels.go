package slot

import (
	"fmt"
	"strings"
)

// Volatility selects how spiky the reel strips play.
type Volatility string

const (
	VolatilityLow    Volatility = "LOW"
	VolatilityMedium Volatility = "MEDIUM"
	VolatilityHigh   Volatility = "HIGH"
)

// ParseVolatility converts a config string to a Volatility, case-insensitively.
func ParseVolatility(s string) (Volatility, error) {
	switch v := Volatility(strings.ToUpper(s)); v {
	case VolatilityLow, VolatilityMedium, VolatilityHigh:
		return v, nil
	default:
		return "", fmt.Errorf("unknown volatility %q", s)
	}
}

// baseCounts is the MEDIUM symbol-frequency table. Strip length is the sum of
// the final counts (115 for MEDIUM).
var baseCounts = map[Symbol]int{
	Beetle:       24,
	Spider:       20,
	Bat:          18,
	Ghost:        16,
	Goblin:       10,
	Skeleton:     8,
	Mummy:        6,
	Vampire:      4,
	Witch:        3,
	Werewolf:     2,
	HauntedHouse: 1,
	Scatter:      3,
}

// BuildStrip constructs the virtual reel strip for a volatility profile. The
// same strip template is used for all five reels. LOW pads the low-pay
// symbols and trims the top end; HIGH does the opposite. No adjustment may
// drive a symbol's count below 1.
func BuildStrip(v Volatility) []Symbol {
	counts := make(map[Symbol]int, len(baseCounts))
	for sym, n := range baseCounts {
		counts[sym] = n
	}

	switch v {
	case VolatilityLow:
		counts[Beetle] += 8
		counts[Spider] += 6
		counts[Bat] += 4
		counts[Witch] = max(1, counts[Witch]-1)
		counts[Werewolf] = max(1, counts[Werewolf]-1)
		counts[HauntedHouse] = 1
		counts[Scatter] = max(1, counts[Scatter]-1)
	case VolatilityHigh:
		counts[Beetle] = max(10, counts[Beetle]-8)
		counts[Spider] = max(8, counts[Spider]-6)
		counts[Ghost] += 2
		counts[Goblin] += 2
		counts[Skeleton]++
		counts[Mummy]++
		counts[Werewolf]++
		counts[HauntedHouse]++
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	strip := make([]Symbol, 0, total)
	for _, sym := range symbolOrder {
		for i := 0; i < counts[sym]; i++ {
			strip = append(strip, sym)
		}
	}
	return strip
}
