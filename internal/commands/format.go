package commands

import (
	"strings"

	"github.com/shopspring/decimal"
)

// formatKRW renders a whole-KRW amount with comma thousands grouping.
func formatKRW(v decimal.Decimal) string {
	s := v.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) > 3 {
		rem := len(s) % 3
		if rem == 0 {
			rem = 3
		}
		var b strings.Builder
		b.WriteString(s[:rem])
		for i := rem; i < len(s); i += 3 {
			b.WriteByte(',')
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// formatRate renders a fractional annual rate as a percentage, "0.041" => "4.1%".
func formatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
