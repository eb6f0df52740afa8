package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/yuchih/stocknote"
)

type fetchCmd struct {
	symbol string
	from   string
	to     string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch monthly closing prices from FinMind" }
func (*fetchCmd) Usage() string {
	return `sn fetch [-symbol <symbol>] -from <YYYY/MM> [-to <YYYY/MM>]

  Fetches Taiwan stock closing prices and stores one price per month into
  the price history. Without -symbol every held symbol is fetched. Uses
  the API key from settings, or the FINMIND_TOKEN environment variable.

Example:
$ sn fetch -symbol 2330 -from 2024/01 -to 2024/06
`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "symbol", "", "Stock symbol; empty means every holding.")
	f.StringVar(&p.from, "from", "", "First month (YYYY/MM).")
	f.StringVar(&p.to, "to", stocknote.Today().YearMonth().String(), "Last month (YYYY/MM); defaults to the current month.")
}

func (p *fetchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	from, err := stocknote.ParseYearMonth(p.from)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	// The -to default prints as YYYY-MM, so accept both layouts.
	to, err := stocknote.ParseYearMonth(p.to)
	if err != nil {
		if to, err = stocknote.ParseYearMonthKey(p.to); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}
	months, err := stocknote.NewMonthRange(from, to)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var symbols []string
	if p.symbol != "" {
		symbols = []string{strings.ToUpper(strings.TrimSpace(p.symbol))}
	} else {
		for _, h := range store.Holdings {
			symbols = append(symbols, h.Symbol)
		}
	}
	if len(symbols) == 0 {
		fmt.Println("no holdings to fetch prices for")
		return subcommands.ExitSuccess
	}

	token := store.Settings.APIKey
	if token == "" {
		token = os.Getenv("FINMIND_TOKEN")
	}

	client := stocknote.NewCachedClient()
	if store.PriceHistory == nil {
		store.PriceHistory = stocknote.NewPriceHistory()
	}
	for _, symbol := range symbols {
		records, err := stocknote.FetchMonthlyCloses(client, token, symbol, months)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		// Closes arrive in the market's currency; the store's currency is
		// the one every recorded amount means.
		for i, rec := range records {
			records[i].Price = stocknote.M(rec.Price.Decimal(), currency(store))
		}
		store.PriceHistory.Apply(records...)
		// The freshest close doubles as the holding's market price.
		last := records[len(records)-1]
		if h, err := holdingBySymbol(store, symbol, false); err == nil {
			if err := h.SetMarketPrice(last.Price); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
		}
		fmt.Printf("%s: %d monthly closes stored\n", symbol, len(records))
	}

	if err := saveStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
