package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yuchih/stocknote"
	"github.com/yuchih/stocknote/renderer"
)

type reportCmd struct {
	kind string
	year int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "yearly reports: dividends, valuation, realized, donations" }
func (*reportCmd) Usage() string {
	return `sn report -kind (dividends|valuation|realized|donations) [-year <YYYY>]

  dividends  monthly dividend income with a running total
  valuation  end-of-month portfolio value from the recorded price history
  realized   realized profit from sells settled that year
  donations  total donated that year

Example:
$ sn report -kind dividends -year 2024
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.kind, "kind", "dividends", "Report kind.")
	f.IntVar(&p.year, "year", stocknote.Today().Year(), "Calendar year.")
}

func (p *reportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch p.kind {
	case "dividends":
		printMarkdown(renderer.DividendReport(stocknote.MonthlyDividends(store.Dividends, p.year)))
	case "valuation":
		series := stocknote.YearlyValuation(store.Holdings, store.PriceHistory, p.year)
		printMarkdown(renderer.Valuation(p.year, series))
	case "realized":
		fmt.Printf("realized profit %d: %s\n", p.year, stocknote.RealizedByYear(store.Holdings, p.year))
	case "donations":
		fmt.Printf("donations %d: %s\n", p.year, stocknote.DonationTotal(store.Donations, p.year))
	default:
		fmt.Fprintf(os.Stderr, "unknown report kind %q\n", p.kind)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
