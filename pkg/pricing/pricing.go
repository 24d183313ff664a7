package pricing

import "strconv"

// FormatIDR renders a whole-rupiah amount the way the storefront displays it,
// e.g. 50000 -> "Rp 50.000". Amounts are integer rupiah; there are no cents.
func FormatIDR(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	out := "Rp " + string(grouped)
	if negative {
		out = "-" + out
	}
	return out
}
