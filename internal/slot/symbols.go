package slot

import "github.com/shopspring/decimal"

// Reel window dimensions: five reels, three visible rows.
const (
	Reels = 5
	Rows  = 3
)

// Symbol identifies one reel symbol.
type Symbol string

const (
	Beetle       Symbol = "beetle"
	Spider       Symbol = "spider"
	Bat          Symbol = "bat"
	Ghost        Symbol = "ghost"
	Goblin       Symbol = "goblin"
	Skeleton     Symbol = "skeleton"
	Mummy        Symbol = "mummy"
	Vampire      Symbol = "vampire"
	Witch        Symbol = "witch"
	Werewolf     Symbol = "werewolf"
	HauntedHouse Symbol = "haunted_house"

	// Scatter triggers free spins from any grid position. It never pays as a
	// line symbol and is deliberately absent from the paytable.
	Scatter Symbol = "freespins"
)

// symbolOrder fixes the deterministic order used when a weight table is
// flattened into a reel strip.
var symbolOrder = []Symbol{
	Beetle, Spider, Bat, Ghost, Goblin, Skeleton,
	Mummy, Vampire, Witch, Werewolf, HauntedHouse, Scatter,
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// paytable maps symbol -> run length -> bet multiplier.
var paytable = map[Symbol]map[int]decimal.Decimal{
	Beetle:       {3: dec("0.5"), 4: dec("1.0"), 5: dec("2.0")},
	Spider:       {3: dec("0.8"), 4: dec("1.5"), 5: dec("3.0")},
	Bat:          {3: dec("1.0"), 4: dec("2.0"), 5: dec("4.0")},
	Ghost:        {3: dec("1.2"), 4: dec("2.5"), 5: dec("5.0")},
	Goblin:       {3: dec("1.5"), 4: dec("3.0"), 5: dec("7.0")},
	Skeleton:     {3: dec("2.0"), 4: dec("4.0"), 5: dec("9.0")},
	Mummy:        {3: dec("2.5"), 4: dec("5.0"), 5: dec("12.0")},
	Vampire:      {3: dec("3.0"), 4: dec("7.0"), 5: dec("15.0")},
	Witch:        {3: dec("4.0"), 4: dec("10.0"), 5: dec("25.0")},
	Werewolf:     {3: dec("5.0"), 4: dec("15.0"), 5: dec("40.0")},
	HauntedHouse: {3: dec("8.0"), 4: dec("25.0"), 5: dec("80.0")},
}

// paylines are the ten fixed paths, one row index per reel. Declaration order
// is also evaluation and reporting order.
var paylines = [10][Reels]int{
	{1, 1, 1, 1, 1}, // middle
	{0, 0, 0, 0, 0}, // top
	{2, 2, 2, 2, 2}, // bottom
	{0, 1, 2, 1, 0}, // V
	{2, 1, 0, 1, 2}, // inverted V
	{0, 0, 1, 2, 2},
	{2, 2, 1, 0, 0},
	{0, 1, 1, 1, 2},
	{2, 1, 1, 1, 0},
	{1, 0, 1, 2, 1},
}

// Cell addresses one position in the visible grid.
type Cell struct {
	Row  int `json:"row"`
	Reel int `json:"reel"`
}
