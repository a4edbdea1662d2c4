package quote

import "fmt"

// SymbolHint lists tickers known to resolve, shown alongside a not-found error.
const SymbolHint = "Try symbols like RELIANCE, TCS, INFY, HDFCBANK"

// NotFoundError means the provider has no live price for the symbol.
type NotFoundError struct {
	Symbol string
	Hint   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("stock not found: %s", e.Symbol)
}

// Message is the text shown to API clients.
func (e *NotFoundError) Message() string {
	return fmt.Sprintf("Could not find data for symbol '%s'. Please check if it's a valid NSE stock symbol.", e.Symbol)
}

// ProviderError wraps any failure while fetching or shaping a quote.
// Err is for server logs only and must not be sent to clients.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Message is the text shown to API clients.
func (e *ProviderError) Message() string {
	return fmt.Sprintf("An error occurred while fetching data for '%s'. Please try again later.", e.Symbol)
}
