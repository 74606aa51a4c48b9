// Package pricing converts transit price strings into display values.
package pricing

import "github.com/shopspring/decimal"

// FormatAmount renders a decimal price string as a display price, e.g.
// "19.5" becomes "$19.50". Amounts travel as strings to avoid
// floating-point rounding; this is the only place they are parsed.
// Malformed or missing amounts fall back to zero rather than failing -
// a bad price string must never break rendering.
func FormatAmount(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		d = decimal.Zero
	}
	return "$" + d.StringFixed(2)
}
