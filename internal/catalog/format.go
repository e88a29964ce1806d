package catalog

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var displayPrinter = message.NewPrinter(language.BritishEnglish)

// FormatPrice renders a lesson price for display, e.g. "£1,250.00".
func FormatPrice(price float64) string {
	return displayPrinter.Sprintf("£%v", number.Decimal(price,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatDate renders an optional lesson date in the en-GB long form used
// by the storefront, e.g. "2 January 2026, 15:04". A missing date renders
// as an empty string.
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format("2 January 2006, 15:04")
}
