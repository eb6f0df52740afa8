package stocknote

import (
	"encoding/json"
	"fmt"
	"sort"
)

// HistoricalPrice is one monthly closing price record for a symbol.
type HistoricalPrice struct {
	Symbol string
	Month  YearMonth
	Price  Money
}

// PriceHistory stores monthly closing prices: a mapping from holding symbol
// to an ordered mapping from year-month key to price. Lookups are explicit,
// callers that want a fallback (the holding's current market price) decide
// so themselves.
type PriceHistory struct {
	prices map[string]map[YearMonth]Money
}

// NewPriceHistory creates an empty history.
func NewPriceHistory() *PriceHistory {
	return &PriceHistory{prices: make(map[string]map[YearMonth]Money)}
}

// Set records the closing price for a symbol and month, replacing any
// earlier value.
func (ph *PriceHistory) Set(symbol string, month YearMonth, price Money) {
	if ph.prices == nil {
		ph.prices = make(map[string]map[YearMonth]Money)
	}
	bySymbol, ok := ph.prices[symbol]
	if !ok {
		bySymbol = make(map[YearMonth]Money)
		ph.prices[symbol] = bySymbol
	}
	bySymbol[month] = price
}

// Apply records a batch of historical price records, last write wins.
func (ph *PriceHistory) Apply(records ...HistoricalPrice) {
	for _, r := range records {
		ph.Set(r.Symbol, r.Month, r.Price)
	}
}

// Price returns the closing price for a symbol and month. The boolean is
// false when the history has no entry.
func (ph *PriceHistory) Price(symbol string, month YearMonth) (Money, bool) {
	if ph == nil {
		return Money{}, false
	}
	p, ok := ph.prices[symbol][month]
	return p, ok
}

// Symbols returns the symbols with at least one recorded month, sorted.
func (ph *PriceHistory) Symbols() []string {
	symbols := make([]string, 0, len(ph.prices))
	for s := range ph.prices {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Months returns the recorded months for a symbol in chronological order.
func (ph *PriceHistory) Months(symbol string) []YearMonth {
	bySymbol := ph.prices[symbol]
	months := make([]YearMonth, 0, len(bySymbol))
	for ym := range bySymbol {
		months = append(months, ym)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// MarshalJSON writes the history as {"symbol": {"YYYY-MM": price}}.
func (ph PriceHistory) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]Money, len(ph.prices))
	for symbol, bySymbol := range ph.prices {
		months := make(map[string]Money, len(bySymbol))
		for ym, price := range bySymbol {
			months[ym.String()] = price
		}
		out[symbol] = months
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the {"symbol": {"YYYY-MM": price}} form. Prices carry
// the default currency until the owning store restamps them.
func (ph *PriceHistory) UnmarshalJSON(data []byte) error {
	var in map[string]map[string]Money
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	ph.prices = make(map[string]map[YearMonth]Money, len(in))
	for symbol, months := range in {
		for key, price := range months {
			ym, err := ParseYearMonthKey(key)
			if err != nil {
				return fmt.Errorf("price history for %q: %w", symbol, err)
			}
			ph.Set(symbol, ym, price.withCurrency(DefaultCurrency))
		}
	}
	return nil
}

// restamp replaces the currency on every stored price. The store is
// single-currency; whatever currency settings name is the one every price
// means, including prices pasted or fetched before a currency change.
func (ph *PriceHistory) restamp(currency string) {
	for _, bySymbol := range ph.prices {
		for ym, price := range bySymbol {
			bySymbol[ym] = M(price.Decimal(), currency)
		}
	}
}
