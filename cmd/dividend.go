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
)

type dividendCmd struct {
	symbol   string
	amount   float64
	shares   int64
	perShare float64
	date     string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payout" }
func (*dividendCmd) Usage() string {
	return `sn dividend -symbol <symbol> (-amount <a> | -shares <n> -pershare <p>) [-date <YYYY-MM-DD>]

  Records a dividend. With -shares and -pershare the net amount is derived:
  shares times per-share payout, floored, minus the postal transfer fee.

Example:
$ sn dividend -symbol 5483 -shares 2000 -pershare 3.825 -date 2024-08-15
`
}

func (p *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "symbol", "", "Stock symbol.")
	f.Float64Var(&p.amount, "amount", 0, "Net amount received, when known.")
	f.Int64Var(&p.shares, "shares", 0, "Shares held on the payout date.")
	f.Float64Var(&p.perShare, "pershare", 0, "Cash dividend per share.")
	f.StringVar(&p.date, "date", stocknote.Today().String(), "Payout date (YYYY-MM-DD).")
}

func (p *dividendCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	symbol := strings.ToUpper(strings.TrimSpace(p.symbol))

	var d stocknote.Dividend
	if p.shares > 0 {
		d, err = stocknote.DeriveDividend(symbol, stocknote.Q(p.shares), stocknote.M(decimal.NewFromFloat(p.perShare), cur), day)
	} else {
		d, err = stocknote.NewDividend(symbol, stocknote.M(decimal.NewFromFloat(p.amount), cur), day)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	store.Dividends = append(store.Dividends, d)
	if err := saveStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("recorded dividend %s for %s on %s\n", d.Amount, d.Symbol, d.Date)
	return subcommands.ExitSuccess
}
