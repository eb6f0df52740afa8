package stocknote

import (
	"sort"
)

// SellDetail records the profit or loss locked in by one sell, computed
// against the weighted-average cost at the moment of the sale.
type SellDetail struct {
	Trade       Trade
	RealizedPnl Money
}

// Snapshot is the financial state of a holding derived from its full trade
// history and a market price. All figures use the weighted-average cost
// method: every sell is costed at the single blended cost-per-share of all
// shares held at that moment.
type Snapshot struct {
	Symbol        string
	CurrentShares Quantity
	AvgCost       Money // zero when the position is flat
	TotalCost     Money // cost basis of the current position, fees included
	UnrealizedPnl Money
	MarketPrice   Money
	SellDetails   []SellDetail // in trade order
}

// RealizedPnl sums the realized profit and loss of every sell.
func (s Snapshot) RealizedPnl() Money {
	var total Money
	for _, d := range s.SellDetails {
		total = total.Add(d.RealizedPnl)
	}
	return total
}

// TotalPnl is realized plus unrealized profit and loss.
func (s Snapshot) TotalPnl() Money { return s.RealizedPnl().Add(s.UnrealizedPnl) }

// ComputeFinancials replays the holding's trades in chronological order
// (stable on same-day trades) and returns its current snapshot.
//
// It is a calculator, not a validator: an internally inconsistent history
// (a sell exceeding the shares held at that point) still yields a result,
// the division-by-zero guard on an empty position being the only defense.
// Holding's mutation API refuses such histories before they get here.
//
// The function is pure: it never mutates the holding and identical input
// always yields identical output.
func ComputeFinancials(h *Holding) Snapshot {
	return replay(h.Symbol, h.Trades, h.MarketPrice)
}

// ComputeFinancialsAsOf replays only the trades dated on or before cutoff,
// valuing the position at the historical closing price for cutoff's month
// when the history has one, and at the holding's current market price
// otherwise. This is the same algorithm as ComputeFinancials restricted to a
// prefix of the history, not a separate one.
func ComputeFinancialsAsOf(h *Holding, cutoff Date, history *PriceHistory) Snapshot {
	var prefix []Trade
	for _, t := range h.Trades {
		if t.Date.After(cutoff) {
			continue
		}
		prefix = append(prefix, t)
	}

	price := h.MarketPrice
	if history != nil {
		if p, ok := history.Price(h.Symbol, cutoff.YearMonth()); ok {
			price = p
		}
	}
	return replay(h.Symbol, prefix, price)
}

func replay(symbol string, trades []Trade, marketPrice Money) Snapshot {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var totalShares Quantity
	var totalCost Money
	var sells []SellDetail

	for _, t := range sorted {
		switch t.Kind {
		case Buy:
			totalCost = totalCost.Add(t.Amount()).Add(t.Fee)
			totalShares = totalShares.Add(t.Shares)
		case Sell:
			var costPerShare Money
			if !totalShares.IsZero() {
				costPerShare = totalCost.Div(totalShares)
			}
			realized := t.Price.Sub(costPerShare).Mul(t.Shares).Sub(t.Fee)
			totalCost = totalCost.Sub(costPerShare.Mul(t.Shares))
			totalShares = totalShares.Sub(t.Shares)
			sells = append(sells, SellDetail{Trade: t, RealizedPnl: realized})
		}
	}

	snap := Snapshot{
		Symbol:        symbol,
		CurrentShares: totalShares,
		MarketPrice:   marketPrice,
		SellDetails:   sells,
	}
	if totalShares.IsPositive() {
		snap.AvgCost = totalCost.Div(totalShares)
		snap.TotalCost = totalCost
		snap.UnrealizedPnl = marketPrice.Sub(snap.AvgCost).Mul(totalShares)
	}
	return snap
}
