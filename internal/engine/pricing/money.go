package pricing

import (
	"math"
	"strconv"
	"strings"
)

// RoundCents rounds an amount to 2 decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney formats an amount like "$1,234.50".
func FormatMoney(amount float64, symbol string) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatFloat(RoundCents(amount), 'f', 2, 64)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.Grow(len(s) + len(whole)/3 + len(symbol) + 1)
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)

	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
