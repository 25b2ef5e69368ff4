package models

import "strconv"

// Money amounts are stored as int64 rupiah. Rupiah has no commonly used
// sub-unit, so integer arithmetic keeps totals exact without decimal columns.

// FormatIDR renders an amount as "Rp2.015.000" with dot thousand separators.
func FormatIDR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	if negative {
		return "-Rp" + string(out)
	}
	return "Rp" + string(out)
}
