package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/yuchih/stocknote"
	"github.com/yuchih/stocknote/renderer"
)

// tradeCmd carries the flags shared by buy and sell.
type tradeCmd struct {
	symbol string
	name   string
	shares int64
	price  float64
	date   string
	fee    float64
}

func (p *tradeCmd) setFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "symbol", "", "Stock symbol (e.g. 2330).")
	f.StringVar(&p.name, "name", "", "Display name for a new holding.")
	f.Int64Var(&p.shares, "shares", 0, "Number of shares.")
	f.Float64Var(&p.price, "price", 0, "Unit price.")
	f.StringVar(&p.date, "date", stocknote.Today().String(), "Trade date (YYYY-MM-DD).")
	f.Float64Var(&p.fee, "fee", -1, "Fee; negative means estimate from settings.")
}

// execute records one trade of the given kind and prints the updated snapshot.
func (p *tradeCmd) execute(kind stocknote.TradeKind) subcommands.ExitStatus {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	day, err := stocknote.ParseDate(p.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	cur := currency(store)
	shares := stocknote.Q(p.shares)
	price := stocknote.M(decimal.NewFromFloat(p.price), cur)

	fee := stocknote.M(decimal.NewFromFloat(p.fee), cur)
	if p.fee < 0 {
		// Pure derivation from current settings, recomputed on demand.
		fee = store.Settings.EstimateFee(shares, price)
		if kind == stocknote.Sell {
			fee = fee.Add(store.Settings.EstimateSellTax(shares, price))
		}
	}

	trade, err := stocknote.NewTrade(kind, shares, price, day, fee)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	symbol := strings.ToUpper(strings.TrimSpace(p.symbol))
	holding, err := holdingBySymbol(store, symbol, kind == stocknote.Buy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if p.name != "" {
		holding.Name = p.name
	}
	if holding.MarketPrice.IsZero() {
		// Until a price is fetched, the last trade price is the best guess.
		holding.MarketPrice = price
	}

	// Oversell is refused here, before anything is stored.
	if err := holding.AddTrade(trade); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Snapshot(holding, stocknote.ComputeFinancials(holding)))
	return subcommands.ExitSuccess
}

type buyCmd struct{ tradeCmd }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy trade" }
func (*buyCmd) Usage() string {
	return `sn buy -symbol <symbol> -shares <n> -price <p> [-date <YYYY-MM-DD>] [-fee <f>]

  Records a buy. When -fee is omitted the brokerage fee is estimated from
  the fee rate in settings.

Example:
$ sn buy -symbol 2330 -shares 1000 -price 500 -date 2024-01-10
`
}
func (p *buyCmd) SetFlags(f *flag.FlagSet) { p.setFlags(f) }
func (p *buyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.execute(stocknote.Buy)
}

type sellCmd struct{ tradeCmd }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell trade" }
func (*sellCmd) Usage() string {
	return `sn sell -symbol <symbol> -shares <n> -price <p> [-date <YYYY-MM-DD>] [-fee <f>]

  Records a sell. A sell exceeding the shares held at that date is refused.
  When -fee is omitted, the brokerage fee plus the securities transaction
  tax are estimated from settings.

Example:
$ sn sell -symbol 2330 -shares 400 -price 600 -date 2024-06-10
`
}
func (p *sellCmd) SetFlags(f *flag.FlagSet) { p.setFlags(f) }
func (p *sellCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return p.execute(stocknote.Sell)
}
