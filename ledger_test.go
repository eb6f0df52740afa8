package stocknote

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

// mustTrade builds a trade for tests, panicking on invalid fixtures.
func mustTrade(kind TradeKind, shares int, price float64, day string, fee int) Trade {
	t, err := NewTrade(kind, Q(shares), TWD(price), MustParseDate(day), TWD(fee))
	if err != nil {
		panic(err.Error())
	}
	return t
}

func decimalsClose(t *testing.T, want, got decimal.Decimal, context string) {
	t.Helper()
	tolerance := decimal.New(1, -9)
	if want.Sub(got).Abs().GreaterThan(tolerance) {
		t.Errorf("%s: want %s, got %s", context, want, got)
	}
}

func TestComputeFinancials_BuyThenSell(t *testing.T) {
	// The reference scenario: buy 1000 @ 500 with 150 fee, then sell 400 @
	// 600 with 90 fee. Average cost after the buy is 500.15, so the sell
	// realizes (600 - 500.15)*400 - 90 = 39850.
	h := &Holding{Symbol: "2330", Name: "台積電", MarketPrice: TWD(580)}
	if err := h.AddTrade(mustTrade(Buy, 1000, 500, "2024-01-10", 150)); err != nil {
		t.Fatal(err)
	}
	if err := h.AddTrade(mustTrade(Sell, 400, 600, "2024-06-10", 90)); err != nil {
		t.Fatal(err)
	}

	snap := ComputeFinancials(h)

	if !snap.CurrentShares.Equal(Q(600)) {
		t.Errorf("CurrentShares: want 600, got %s", snap.CurrentShares)
	}
	if len(snap.SellDetails) != 1 {
		t.Fatalf("SellDetails: want 1 entry, got %d", len(snap.SellDetails))
	}
	decimalsClose(t, decimal.NewFromInt(39850), snap.SellDetails[0].RealizedPnl.Decimal(), "realized pnl")
	decimalsClose(t, decimal.NewFromFloat(500.15), snap.AvgCost.Decimal(), "avg cost")
	// (580 - 500.15) * 600
	decimalsClose(t, decimal.NewFromFloat(47910), snap.UnrealizedPnl.Decimal(), "unrealized pnl")
}

func TestComputeFinancials_BuysOnly(t *testing.T) {
	h := &Holding{Symbol: "0050", MarketPrice: TWD(180)}
	for _, tr := range []Trade{
		mustTrade(Buy, 100, 150, "2024-01-05", 21),
		mustTrade(Buy, 200, 160, "2024-02-05", 45),
	} {
		if err := h.AddTrade(tr); err != nil {
			t.Fatal(err)
		}
	}

	snap := ComputeFinancials(h)

	// avgCost == totalCost / totalShares
	decimalsClose(t, snap.TotalCost.Decimal().Div(snap.CurrentShares.Decimal()), snap.AvgCost.Decimal(), "avg cost identity")
	// unrealizedPnl == (marketPrice - avgCost) * currentShares
	want := TWD(180).Sub(snap.AvgCost).Mul(snap.CurrentShares)
	decimalsClose(t, want.Decimal(), snap.UnrealizedPnl.Decimal(), "unrealized identity")
	if len(snap.SellDetails) != 0 {
		t.Errorf("SellDetails: want none, got %d", len(snap.SellDetails))
	}
}

func TestComputeFinancials_EmptyHolding(t *testing.T) {
	h := &Holding{Symbol: "2603", MarketPrice: TWD(75)}
	snap := ComputeFinancials(h)

	if !snap.CurrentShares.IsZero() {
		t.Errorf("CurrentShares: want 0, got %s", snap.CurrentShares)
	}
	if !snap.AvgCost.IsZero() || !snap.UnrealizedPnl.IsZero() {
		t.Errorf("flat position must report zero avg cost and unrealized pnl, got %s / %s", snap.AvgCost, snap.UnrealizedPnl)
	}
}

func TestComputeFinancials_FlatAfterSellAll(t *testing.T) {
	h := &Holding{Symbol: "2603", MarketPrice: TWD(75)}
	if err := h.AddTrade(mustTrade(Buy, 1000, 60, "2024-01-10", 85)); err != nil {
		t.Fatal(err)
	}
	if err := h.AddTrade(mustTrade(Sell, 1000, 70, "2024-03-10", 99)); err != nil {
		t.Fatal(err)
	}

	snap := ComputeFinancials(h)

	if !snap.CurrentShares.IsZero() {
		t.Errorf("CurrentShares: want 0, got %s", snap.CurrentShares)
	}
	if !snap.AvgCost.IsZero() {
		t.Errorf("AvgCost: want 0 on a flat position, got %s", snap.AvgCost)
	}
	if !snap.UnrealizedPnl.IsZero() {
		t.Errorf("UnrealizedPnl: want 0 on a flat position, got %s", snap.UnrealizedPnl)
	}
	// (70 - 60.085)*1000 - 99 = 9816
	decimalsClose(t, decimal.NewFromInt(9816), snap.RealizedPnl().Decimal(), "realized pnl")
}

// TestComputeFinancials_EconomicInvariant checks that for any valid history,
// realized plus unrealized P&L equals the total economic gain: final market
// value plus sell proceeds minus buy cost, all fees deducted.
func TestComputeFinancials_EconomicInvariant(t *testing.T) {
	histories := map[string][]Trade{
		"single buy": {
			mustTrade(Buy, 1000, 500, "2024-01-10", 150),
		},
		"buy sell buy sell": {
			mustTrade(Buy, 1000, 500, "2024-01-10", 150),
			mustTrade(Sell, 400, 600, "2024-02-10", 90),
			mustTrade(Buy, 300, 550, "2024-03-10", 70),
			mustTrade(Sell, 500, 620, "2024-04-10", 110),
		},
		"sell all then rebuy": {
			mustTrade(Buy, 500, 100, "2024-01-10", 20),
			mustTrade(Sell, 500, 120, "2024-02-10", 25),
			mustTrade(Buy, 700, 90, "2024-03-10", 30),
		},
		"fractional average": {
			mustTrade(Buy, 300, 33.3, "2024-01-10", 14),
			mustTrade(Buy, 700, 35.7, "2024-02-10", 35),
			mustTrade(Sell, 123, 40.1, "2024-03-10", 7),
		},
	}

	for name, trades := range histories {
		t.Run(name, func(t *testing.T) {
			marketPrice := TWD(580)
			h := &Holding{Symbol: "TEST", MarketPrice: marketPrice}
			for _, tr := range trades {
				if err := h.AddTrade(tr); err != nil {
					t.Fatal(err)
				}
			}
			snap := ComputeFinancials(h)

			cashOut := decimal.Zero // buys, fees included
			cashIn := decimal.Zero  // sells, fees deducted
			for _, tr := range trades {
				switch tr.Kind {
				case Buy:
					cashOut = cashOut.Add(tr.Amount().Add(tr.Fee).Decimal())
				case Sell:
					cashIn = cashIn.Add(tr.Amount().Sub(tr.Fee).Decimal())
				}
			}
			finalValue := marketPrice.Mul(snap.CurrentShares).Decimal()
			economic := finalValue.Add(cashIn).Sub(cashOut)

			decimalsClose(t, economic, snap.TotalPnl().Decimal(), "economic invariant")
		})
	}
}

func TestComputeFinancials_PureAndIdempotent(t *testing.T) {
	h := &Holding{Symbol: "2330", MarketPrice: TWD(580)}
	// Same-day trades to exercise the stable tie-break.
	for _, tr := range []Trade{
		mustTrade(Buy, 1000, 500, "2024-01-10", 150),
		mustTrade(Buy, 200, 510, "2024-01-10", 30),
		mustTrade(Sell, 400, 600, "2024-06-10", 90),
	} {
		if err := h.AddTrade(tr); err != nil {
			t.Fatal(err)
		}
	}
	before := append([]Trade{}, h.Trades...)

	first := ComputeFinancials(h)
	second := ComputeFinancials(h)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two computations over the same holding differ:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(before, h.Trades) {
		t.Errorf("ComputeFinancials mutated the holding's trades")
	}
}

func TestComputeFinancialsAsOf(t *testing.T) {
	h := &Holding{Symbol: "2330", MarketPrice: TWD(580)}
	for _, tr := range []Trade{
		mustTrade(Buy, 1000, 500, "2024-01-10", 150),
		mustTrade(Sell, 400, 600, "2024-06-10", 90),
		mustTrade(Buy, 100, 590, "2024-08-20", 25),
	} {
		if err := h.AddTrade(tr); err != nil {
			t.Fatal(err)
		}
	}

	history := NewPriceHistory()
	history.Set("2330", NewYearMonth(2024, 3), TWD(520))

	testCases := []struct {
		name       string
		cutoff     string
		wantShares Quantity
		wantPrice  Money // valuation price after the history lookup
	}{
		{
			name:       "before any trade",
			cutoff:     "2023-12-31",
			wantShares: Q(0),
			wantPrice:  TWD(580), // no history for 2023-12, falls back
		},
		{
			name:       "cutoff with historical price",
			cutoff:     "2024-03-31",
			wantShares: Q(1000),
			wantPrice:  TWD(520),
		},
		{
			name:       "cutoff without historical price falls back to market",
			cutoff:     "2024-07-31",
			wantShares: Q(600),
			wantPrice:  TWD(580),
		},
		{
			name:       "cutoff after everything",
			cutoff:     "2024-12-31",
			wantShares: Q(700),
			wantPrice:  TWD(580),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			snap := ComputeFinancialsAsOf(h, MustParseDate(tc.cutoff), history)
			if !snap.CurrentShares.Equal(tc.wantShares) {
				t.Errorf("CurrentShares: want %s, got %s", tc.wantShares, snap.CurrentShares)
			}
			if !snap.MarketPrice.Equal(tc.wantPrice) {
				t.Errorf("MarketPrice: want %s, got %s", tc.wantPrice, snap.MarketPrice)
			}
		})
	}
}
