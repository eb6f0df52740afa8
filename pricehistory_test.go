package stocknote

import (
	"testing"
	"time"
)

func TestPriceHistory_SetAndPrice(t *testing.T) {
	ph := NewPriceHistory()
	ph.Set("2330", NewYearMonth(2024, time.January), TWD(593))
	ph.Set("2330", NewYearMonth(2024, time.January), TWD(595)) // last write wins
	ph.Set("2330", NewYearMonth(2024, time.March), TWD(520))
	ph.Set("5483", NewYearMonth(2024, time.January), TWD(155))

	price, ok := ph.Price("2330", NewYearMonth(2024, time.January))
	if !ok || !price.Equal(TWD(595)) {
		t.Errorf("want 595, got %s (ok=%v)", price.Decimal(), ok)
	}
	if _, ok := ph.Price("2330", NewYearMonth(2024, time.February)); ok {
		t.Error("missing month must report not-ok, not a zero price")
	}
	if _, ok := ph.Price("9999", NewYearMonth(2024, time.January)); ok {
		t.Error("unknown symbol must report not-ok")
	}
}

func TestPriceHistory_OrderedIteration(t *testing.T) {
	ph := NewPriceHistory()
	ph.Set("2330", NewYearMonth(2024, time.March), TWD(520))
	ph.Set("2330", NewYearMonth(2023, time.December), TWD(570))
	ph.Set("2330", NewYearMonth(2024, time.January), TWD(593))

	months := ph.Months("2330")
	want := []string{"2023-12", "2024-01", "2024-03"}
	if len(months) != len(want) {
		t.Fatalf("want %d months, got %d", len(want), len(months))
	}
	for i, ym := range months {
		if ym.String() != want[i] {
			t.Errorf("month %d: want %s, got %s", i, want[i], ym)
		}
	}

	ph.Set("0050", NewYearMonth(2024, time.January), TWD(140))
	if got := ph.Symbols(); len(got) != 2 || got[0] != "0050" || got[1] != "2330" {
		t.Errorf("Symbols must be sorted, got %v", got)
	}
}

func TestPriceHistory_Apply(t *testing.T) {
	records, errs := ParseHistoricalPrices("5483,2024/01-2024/03,155,158,160.5")
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	ph := NewPriceHistory()
	ph.Apply(records...)

	price, ok := ph.Price("5483", NewYearMonth(2024, time.February))
	if !ok || !price.Equal(TWD(158)) {
		t.Errorf("want 158, got %s (ok=%v)", price.Decimal(), ok)
	}
}
