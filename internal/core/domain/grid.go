package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GridKind identifies a storefront price grid: the fixed set of price endings
// a market publishes prices in. A market's grid is inferred from a single
// reference price, because each grid has a distinct terminal-digit signature.
type GridKind int

const (
	// GridBareDecade snaps to the nearest multiple of 10 (e.g. 110, 120).
	GridBareDecade GridKind = iota
	// GridDecadePlusEight is a multiple of 10 plus 8 (e.g. 98, 108).
	GridDecadePlusEight
	// GridHundredPlus99 is a multiple of 100 plus 99 (e.g. 999, 1099).
	GridHundredPlus99
	// GridFourNinetyNine holds prices ending in 4.99 (e.g. 14.99, 24.99).
	GridFourNinetyNine
	// GridFourNine holds prices ending in 4.9.
	GridFourNine
	// GridNineNinetyEight holds prices ending in 9.98.
	GridNineNinetyEight
	// GridNineNinetyNine holds prices ending in 9.99.
	GridNineNinetyNine
	// GridNineNine holds prices ending in 9.9.
	GridNineNine
	// GridEightNinetyNine holds prices ending in 8.99.
	GridEightNinetyNine
	// GridGenericNinetyNine keeps the integer part and appends .99.
	GridGenericNinetyNine
)

var gridNames = map[GridKind]string{
	GridBareDecade:        "decade",
	GridDecadePlusEight:   "decade+8",
	GridHundredPlus99:     "hundred+99",
	GridFourNinetyNine:    "4.99",
	GridFourNine:          "4.9",
	GridNineNinetyEight:   "9.98",
	GridNineNinetyNine:    "9.99",
	GridNineNine:          "9.9",
	GridEightNinetyNine:   "8.99",
	GridGenericNinetyNine: ".99",
}

func (k GridKind) String() string {
	if name, ok := gridNames[k]; ok {
		return name
	}
	return "unknown"
}

var (
	decadeStep  = decimal.NewFromInt(10)
	hundredStep = decimal.NewFromInt(100)
)

// fractionalGrids maps the literal decimal suffix of a fractional reference
// price to its grid. Order matters: "4.99" must be tested before "9.99"
// catches "...4.99"'s tail, mirroring the published grid signatures.
var fractionalGrids = []struct {
	refSuffix string
	kind      GridKind
}{
	{"4.99", GridFourNinetyNine},
	{"4.9", GridFourNine},
	{"9.98", GridNineNinetyEight},
	{"9.99", GridNineNinetyNine},
	{"9.9", GridNineNine},
	{"8.99", GridEightNinetyNine},
}

// gridSuffixes holds, per fractional grid, the decimal appended to the
// floored decade when generating candidates, and whether the same grid point
// is also approached from the decade above (a second candidate).
var gridSuffixes = map[GridKind]struct {
	suffix         decimal.Decimal
	fromNextDecade bool
}{
	GridFourNinetyNine:  {decimal.RequireFromString("4.99"), false},
	GridFourNine:        {decimal.RequireFromString("4.9"), false},
	GridNineNinetyEight: {decimal.RequireFromString("9.98"), true},
	GridNineNinetyNine:  {decimal.RequireFromString("9.99"), true},
	GridNineNine:        {decimal.RequireFromString("9.9"), true},
	GridEightNinetyNine: {decimal.RequireFromString("8.99"), true},
}

// ClassifyGrid infers the grid in force for a market from its reference
// price. Whole references classify off their trailing integer digits,
// fractional references off their literal decimal suffix.
func ClassifyGrid(ref decimal.Decimal) GridKind {
	if ref.IsInteger() {
		digits := ref.Truncate(0).String()
		switch {
		case strings.HasSuffix(digits, "8"):
			return GridDecadePlusEight
		case strings.HasSuffix(digits, "99"):
			return GridHundredPlus99
		default:
			return GridBareDecade
		}
	}
	literal := ref.String()
	for _, fg := range fractionalGrids {
		if strings.HasSuffix(literal, fg.refSuffix) {
			return fg.kind
		}
	}
	return GridGenericNinetyNine
}

// Candidates returns the grid-aligned prices bracketing price. The first
// candidate is always the round-up direction; it wins distance ties.
func (k GridKind) Candidates(price decimal.Decimal) []decimal.Decimal {
	switch k {
	case GridDecadePlusEight:
		decade := price.Div(decadeStep).Floor().Mul(decadeStep)
		return []decimal.Decimal{
			decade.Add(decimal.NewFromInt(8)),
			decade.Sub(decimal.NewFromInt(2)),
		}
	case GridHundredPlus99:
		hundred := price.Div(hundredStep).Floor().Mul(hundredStep)
		return []decimal.Decimal{
			hundred.Add(decimal.NewFromInt(99)),
			hundred.Sub(decimal.NewFromInt(1)),
		}
	case GridBareDecade:
		return []decimal.Decimal{price.Div(decadeStep).RoundBank(0).Mul(decadeStep)}
	case GridGenericNinetyNine:
		return []decimal.Decimal{price.Floor().Add(decimal.RequireFromString("0.99"))}
	default:
		sfx := gridSuffixes[k]
		decade := price.Div(decadeStep).Floor().Mul(decadeStep)
		upper := decade.Add(sfx.suffix)
		if !sfx.fromNextDecade {
			return []decimal.Decimal{upper}
		}
		return []decimal.Decimal{upper, upper.Sub(decadeStep)}
	}
}

// SnapToGrid picks the candidate nearest to price by absolute distance.
// A price already on-grid has distance zero and maps to itself.
func SnapToGrid(k GridKind, price decimal.Decimal) decimal.Decimal {
	candidates := k.Candidates(price)
	best := candidates[0]
	bestDist := best.Sub(price).Abs()
	for _, c := range candidates[1:] {
		if dist := c.Sub(price).Abs(); dist.LessThan(bestDist) {
			best = c
			bestDist = dist
		}
	}
	return best
}
