package envoi

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// priceDecimals is the number of fraction digits shown for currency.
const priceDecimals = 2

// FormatDate returns M/D/YYYY without zero padding, e.g. 3/5/2024.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// FormatPrice returns $X,XXX.XX. Negative amounts put the sign outside the
// currency symbol: -$1,234.50.
func FormatPrice(amount decimal.Decimal) string {
	abs := amount.Abs().Round(priceDecimals)

	// A fresh printer per call keeps this safe for concurrent use.
	p := message.NewPrinter(language.AmericanEnglish)
	s := "$" + p.Sprint(number.Decimal(abs.InexactFloat64(), number.Scale(priceDecimals)))

	if amount.IsNegative() && !abs.IsZero() {
		return "-" + s
	}
	return s
}

// FormatQuantity returns the shortest decimal form of a quantity (3, 1.5).
func FormatQuantity(q decimal.Decimal) string {
	return q.String()
}
