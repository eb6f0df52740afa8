package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/yuchih/stocknote"
	"github.com/yuchih/stocknote/renderer"
)

type holdingCmd struct {
	symbol string
	asof   string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "show position, cost basis and P&L" }
func (*holdingCmd) Usage() string {
	return `sn holding [-symbol <symbol>] [-asof <YYYY-MM-DD>]

  Shows position, average cost and profit for one symbol, or for every
  holding when -symbol is omitted. With -asof the figures are computed
  from trades up to that date, valued at that month's historical price
  when one is recorded.

Example:
$ sn holding -symbol 2330
`
}

func (p *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "symbol", "", "Stock symbol; empty means all holdings.")
	f.StringVar(&p.asof, "asof", "", "Value the holding as of this date.")
}

func (p *holdingCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := loadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	snapshot := stocknote.ComputeFinancials
	if p.asof != "" {
		cutoff, err := stocknote.ParseDate(p.asof)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		snapshot = func(h *stocknote.Holding) stocknote.Snapshot {
			return stocknote.ComputeFinancialsAsOf(h, cutoff, store.PriceHistory)
		}
	}

	if p.symbol != "" {
		h, err := holdingBySymbol(store, strings.ToUpper(strings.TrimSpace(p.symbol)), false)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.Snapshot(h, snapshot(h)))
		return subcommands.ExitSuccess
	}

	var md strings.Builder
	for _, h := range store.Holdings {
		md.WriteString(renderer.Snapshot(h, snapshot(h)))
		md.WriteString("\n")
	}
	if md.Len() == 0 {
		fmt.Println("no holdings yet")
		return subcommands.ExitSuccess
	}
	printMarkdown(md.String())
	return subcommands.ExitSuccess
}
