package stocknote

import "time"

// MonthCell is one month of an aggregated yearly report.
type MonthCell struct {
	Month      YearMonth
	Amount     Money
	Cumulative Money // running total since January
}

// DividendReport holds dividend income aggregated over one calendar year.
type DividendReport struct {
	Year   int
	Months [12]MonthCell
	Total  Money
}

// MonthlyDividends sums dividend amounts per calendar month of the given
// year with a running cumulative total. Empty input yields all-zero months.
func MonthlyDividends(dividends []Dividend, year int) DividendReport {
	report := DividendReport{Year: year}
	for i := range report.Months {
		report.Months[i].Month = NewYearMonth(year, time.Month(i+1))
	}
	for _, d := range dividends {
		if d.Date.Year() != year {
			continue
		}
		i := int(d.Date.Month()) - 1
		report.Months[i].Amount = report.Months[i].Amount.Add(d.Amount)
	}
	var running Money
	for i := range report.Months {
		running = running.Add(report.Months[i].Amount)
		report.Months[i].Cumulative = running
	}
	report.Total = running
	return report
}

// MonthValue is the total market value of all holdings at one month end.
type MonthValue struct {
	Month YearMonth
	Value Money
}

// YearlyValuation replays every holding at each month end of the given year
// and sums the position values, using the historical closing price for that
// month when the history has one and the holding's current market price
// otherwise. This feeds the asset growth chart.
func YearlyValuation(holdings []*Holding, history *PriceHistory, year int) []MonthValue {
	series := make([]MonthValue, 12)
	for i := range series {
		cutoff := NewDate(year, time.Month(i+1), 1).EndOfMonth()
		series[i].Month = cutoff.YearMonth()
		var total Money
		for _, h := range holdings {
			snap := ComputeFinancialsAsOf(h, cutoff, history)
			if snap.CurrentShares.IsPositive() {
				total = total.Add(snap.MarketPrice.Mul(snap.CurrentShares))
			}
		}
		series[i].Value = total
	}
	return series
}

// RealizedByYear sums the realized profit and loss of every sell dated in
// the given year, across all holdings.
func RealizedByYear(holdings []*Holding, year int) Money {
	var total Money
	for _, h := range holdings {
		snap := ComputeFinancials(h)
		for _, d := range snap.SellDetails {
			if d.Trade.Date.Year() == year {
				total = total.Add(d.RealizedPnl)
			}
		}
	}
	return total
}

// DonationTotal sums donations for the given year.
func DonationTotal(donations []Donation, year int) Money {
	var total Money
	for _, d := range donations {
		if d.Date.Year() == year {
			total = total.Add(d.Amount)
		}
	}
	return total
}
