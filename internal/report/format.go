package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatInt prints n with thousands separators, e.g. 6,624
func FormatInt(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatRate prints a strike rate with one decimal place
func FormatRate(f float64) string {
	return printer.Sprintf("%.1f", f)
}

// FormatPercent prints a share as a percentage with one decimal place
func FormatPercent(part, whole float64) string {
	if whole == 0 {
		return "0.0%"
	}
	return printer.Sprintf("%.1f%%", part/whole*100)
}
