package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/yuchih/stocknote"
	"github.com/yuchih/stocknote/renderer"
)

type importCmd struct {
	kind   string
	file   string
	commit bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "bulk-import pasted records" }
func (*importCmd) Usage() string {
	return `sn import -kind (trades|dividends|donations|prices) [-file <path>] [-commit]

  Parses a pasted block of comma-separated lines (stdin by default) and
  prints a preview with per-line errors. Nothing is stored without -commit;
  with -commit only the well-formed lines are stored.

Example:
$ sn import -kind trades -commit <<EOF
2330,BUY,1000,500,2024-01-10,150
EOF
`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.kind, "kind", "", "Record kind: trades, dividends, donations or prices.")
	f.StringVar(&p.file, "file", "", "Read the block from a file instead of stdin.")
	f.BoolVar(&p.commit, "commit", false, "Store the well-formed records.")
}

func (p *importCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := stocknote.ParseImportKind(p.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var src io.Reader = os.Stdin
	if p.file != "" {
		f, err := os.Open(p.file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		src = f
	}
	raw, err := io.ReadAll(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	text := string(raw)

	store, err := loadStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var successes int
	var errs []stocknote.LineError
	apply := func() error { return nil }

	switch kind {
	case stocknote.ImportTrades:
		var records []stocknote.TradeRecord
		records, errs = stocknote.ParseTrades(text)
		successes = len(records)
		apply = func() error {
			for _, rec := range records {
				h, err := holdingBySymbol(store, rec.Symbol, true)
				if err != nil {
					return err
				}
				if err := h.AddTrade(rec.Trade); err != nil {
					return err
				}
			}
			return nil
		}
	case stocknote.ImportDividends:
		var records []stocknote.Dividend
		records, errs = stocknote.ParseDividends(text)
		successes = len(records)
		apply = func() error {
			store.Dividends = append(store.Dividends, records...)
			return nil
		}
	case stocknote.ImportDonations:
		var records []stocknote.Donation
		records, errs = stocknote.ParseDonations(text)
		successes = len(records)
		apply = func() error {
			store.Donations = append(store.Donations, records...)
			return nil
		}
	case stocknote.ImportHistoricalPrices:
		var records []stocknote.HistoricalPrice
		records, errs = stocknote.ParseHistoricalPrices(text)
		successes = len(records)
		apply = func() error {
			if store.PriceHistory == nil {
				store.PriceHistory = stocknote.NewPriceHistory()
			}
			for i, rec := range records {
				records[i].Price = stocknote.M(rec.Price.Decimal(), currency(store))
			}
			store.PriceHistory.Apply(records...)
			return nil
		}
	}

	printMarkdown(renderer.ImportPreview(kind, successes, errs))
	if !p.commit {
		fmt.Println("dry run, use -commit to store the well-formed records")
		return subcommands.ExitSuccess
	}

	if err := apply(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := saveStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("stored %d records\n", successes)
	return subcommands.ExitSuccess
}
