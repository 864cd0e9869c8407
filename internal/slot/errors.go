package slot

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidBetError rejects a spin before any state changes: no debit, no RNG
// draw, no jackpot accrual. The machine is left exactly as it was.
type InvalidBetError struct {
	Bet    decimal.Decimal
	Reason string
}

func (e *InvalidBetError) Error() string {
	return fmt.Sprintf("invalid bet %s: %s", e.Bet, e.Reason)
}
