package quote

import "strings"

// PrimarySuffix is the Yahoo Finance suffix for NSE listings.
const PrimarySuffix = ".NS"

// exchangeSuffixes are stripped before the primary suffix is appended.
var exchangeSuffixes = []string{".NS", ".BO"}

// NormalizeSymbol turns a user supplied ticker into an NSE qualified Yahoo
// symbol: "reliance" -> "RELIANCE.NS", "SBIN.BO" -> "SBIN.NS".
// Applying it to its own output is a no-op.
func NormalizeSymbol(ticker string) string {
	s := strings.ToUpper(strings.TrimSpace(ticker))
	for _, suffix := range exchangeSuffixes {
		if strings.HasSuffix(s, suffix) {
			s = s[:len(s)-len(suffix)]
			break
		}
	}
	return s + PrimarySuffix
}

// BaseSymbol returns the normalized ticker without its exchange suffix.
func BaseSymbol(ticker string) string {
	return strings.TrimSuffix(NormalizeSymbol(ticker), PrimarySuffix)
}
