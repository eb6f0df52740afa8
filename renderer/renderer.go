// Package renderer turns stocknote reports into markdown strings. The CLI
// decides how to display them (plain or through a terminal renderer).
package renderer

import (
	"fmt"
	"strings"

	"github.com/yuchih/stocknote"
)

// Snapshot renders one holding's financial snapshot, sell details included.
func Snapshot(h *stocknote.Holding, snap stocknote.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", h.Symbol, h.Name)
	fmt.Fprintln(&b, "| Shares | Avg Cost | Total Cost | Market Price | Unrealized P&L | Realized P&L |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|---:|---:|")
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
		snap.CurrentShares,
		snap.AvgCost,
		snap.TotalCost,
		snap.MarketPrice,
		snap.UnrealizedPnl.SignedString(),
		snap.RealizedPnl().SignedString(),
	)

	if len(snap.SellDetails) > 0 {
		fmt.Fprintf(&b, "\n## Sells\n\n")
		fmt.Fprintln(&b, "| Date | Shares | Price | Fee | Realized P&L |")
		fmt.Fprintln(&b, "|---|---:|---:|---:|---:|")
		for _, d := range snap.SellDetails {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				d.Trade.Date, d.Trade.Shares, d.Trade.Price, d.Trade.Fee, d.RealizedPnl.SignedString())
		}
	}
	return b.String()
}

// DividendReport renders the monthly dividend aggregation of one year.
func DividendReport(report stocknote.DividendReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dividends %d\n\n", report.Year)
	fmt.Fprintln(&b, "| Month | Amount | Cumulative |")
	fmt.Fprintln(&b, "|---|---:|---:|")
	for _, cell := range report.Months {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", cell.Month, cell.Amount, cell.Cumulative)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", report.Total)
	return b.String()
}

// Valuation renders the month-end portfolio value series of one year.
func Valuation(year int, series []stocknote.MonthValue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio value %d\n\n", year)
	fmt.Fprintln(&b, "| Month | Value |")
	fmt.Fprintln(&b, "|---|---:|")
	for _, mv := range series {
		fmt.Fprintf(&b, "| %s | %s |\n", mv.Month, mv.Value)
	}
	return b.String()
}

// ImportPreview renders a bulk import result for user confirmation: how many
// records parsed, and every line-scoped error so the user can fix the pasted
// block and resubmit without losing the valid lines.
func ImportPreview(kind stocknote.ImportKind, successes int, errs []stocknote.LineError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Import %s\n\n", kind)
	fmt.Fprintf(&b, "%d record(s) parsed, %d error(s).\n", successes, len(errs))
	if len(errs) > 0 {
		fmt.Fprintf(&b, "\n| Line | Error |\n")
		fmt.Fprintln(&b, "|---:|---|")
		for _, e := range errs {
			fmt.Fprintf(&b, "| %d | %s |\n", e.Line, e.Message)
		}
	}
	return b.String()
}
