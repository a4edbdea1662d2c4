package quote

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	lakh  = 1e5
	crore = 1e7
)

var printer = message.NewPrinter(language.English)

// FormatCurrency renders a rupee amount using lakh/crore units.
// The 1e9..1e12 range keeps no decimals while 1e7..1e9 keeps two; both are
// expressed in crore.
func FormatCurrency(v *float64) string {
	if v == nil {
		return "N/A"
	}
	switch x := *v; {
	case x >= 1e12:
		return fmt.Sprintf("₹%.2fL Cr", x/1e12)
	case x >= 1e9:
		return fmt.Sprintf("₹%.0f Cr", x/crore)
	case x >= crore:
		return fmt.Sprintf("₹%.2f Cr", x/crore)
	case x >= lakh:
		return fmt.Sprintf("₹%.2fL", x/lakh)
	default:
		return "₹" + printer.Sprintf("%.0f", x)
	}
}

// FormatVolume renders a share count as 12.50M, 45.3K or 512.
func FormatVolume(v *int64) string {
	if v == nil {
		return "N/A"
	}
	switch x := *v; {
	case x >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(x)/1e6)
	case x >= 1_000:
		return fmt.Sprintf("%.1fK", float64(x)/1e3)
	default:
		return strconv.FormatInt(x, 10)
	}
}
