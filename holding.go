package stocknote

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Holding is one stock position: a symbol, its display name, the
// date-ordered list of trades it owns, and the latest known market price.
//
// Trades are kept sorted by date; trades on the same day keep their
// insertion order.
type Holding struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Trades      []Trade `json:"trades"`
	MarketPrice Money   `json:"marketPrice"`
}

// NewHolding creates an empty holding for a symbol.
func NewHolding(symbol, name string, marketPrice Money) (*Holding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("holding symbol is missing")
	}
	if marketPrice.IsNegative() {
		return nil, fmt.Errorf("holding %s: market price cannot be negative", symbol)
	}
	return &Holding{Symbol: symbol, Name: name, MarketPrice: marketPrice}, nil
}

// stableSort sorts trades by date. The sort is stable so trades on the same
// day keep their relative order.
func (h *Holding) stableSort() {
	sort.SliceStable(h.Trades, func(i, j int) bool {
		return h.Trades[i].Date.Before(h.Trades[j].Date)
	})
}

// Position returns the number of shares held after all trades dated on or
// before the given date.
func (h *Holding) Position(on Date) Quantity {
	var position Quantity
	for _, t := range h.Trades {
		if t.Date.After(on) {
			break
		}
		position = position.Add(t.signedShares())
	}
	return position
}

// validateTimeline replays a candidate trade list and rejects it if the
// position goes negative at any point. This is the entry-point guard the
// ledger engine relies on: by the time trades reach ComputeFinancials an
// oversell has already been refused here.
func validateTimeline(symbol string, trades []Trade) error {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var position Quantity
	for _, t := range sorted {
		position = position.Add(t.signedShares())
		if position.IsNegative() {
			return fmt.Errorf("%s: selling %s shares on %s exceeds the %s shares held at that date",
				symbol, t.Shares, t.Date, position.Add(t.Shares))
		}
	}
	return nil
}

// AddTrade validates and appends a trade, keeping the list date-ordered.
// A SELL that would drive the position negative at any point in time is
// refused and the holding is left untouched.
func (h *Holding) AddTrade(t Trade) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%s: %w", h.Symbol, err)
	}
	candidate := append(append([]Trade{}, h.Trades...), t)
	if err := validateTimeline(h.Symbol, candidate); err != nil {
		return err
	}
	h.Trades = append(h.Trades, t)
	h.stableSort()
	return nil
}

// ReplaceTrade swaps the trade carrying the given id for the replacement,
// subject to the same timeline validation as AddTrade. The replacement keeps
// the original identity.
func (h *Holding) ReplaceTrade(id uuid.UUID, t Trade) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%s: %w", h.Symbol, err)
	}
	idx := h.tradeIndex(id)
	if idx < 0 {
		return fmt.Errorf("%s: no trade with id %s", h.Symbol, id)
	}
	t.ID = id
	candidate := append([]Trade{}, h.Trades...)
	candidate[idx] = t
	if err := validateTimeline(h.Symbol, candidate); err != nil {
		return err
	}
	h.Trades[idx] = t
	h.stableSort()
	return nil
}

// RemoveTrade deletes the trade carrying the given id. Removing a BUY that
// later sells depend on is refused.
func (h *Holding) RemoveTrade(id uuid.UUID) error {
	idx := h.tradeIndex(id)
	if idx < 0 {
		return fmt.Errorf("%s: no trade with id %s", h.Symbol, id)
	}
	candidate := append(append([]Trade{}, h.Trades[:idx]...), h.Trades[idx+1:]...)
	if err := validateTimeline(h.Symbol, candidate); err != nil {
		return err
	}
	h.Trades = candidate
	return nil
}

func (h *Holding) tradeIndex(id uuid.UUID) int {
	for i, t := range h.Trades {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SetMarketPrice updates the latest known market price.
func (h *Holding) SetMarketPrice(price Money) error {
	if price.IsNegative() {
		return fmt.Errorf("holding %s: market price cannot be negative", h.Symbol)
	}
	h.MarketPrice = price
	return nil
}
