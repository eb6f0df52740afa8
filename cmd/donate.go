package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/yuchih/stocknote"
)

type donateCmd struct {
	amount      float64
	date        string
	description string
}

func (*donateCmd) Name() string     { return "donate" }
func (*donateCmd) Synopsis() string { return "record a charitable donation" }
func (*donateCmd) Usage() string {
	return `sn donate -amount <a> -description <text> [-date <YYYY-MM-DD>]

Example:
$ sn donate -amount 3000 -description "紅十字會" -date 2024-05-01
`
}

func (p *donateCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&p.amount, "amount", 0, "Donated amount.")
	f.StringVar(&p.date, "date", stocknote.Today().String(), "Donation date (YYYY-MM-DD).")
	f.StringVar(&p.description, "description", "", "What the donation was for.")
}

func (p *donateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	d, err := stocknote.NewDonation(stocknote.M(decimal.NewFromFloat(p.amount), currency(store)), day, p.description)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	store.Donations = append(store.Donations, d)
	if err := saveStore(store); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("recorded donation %s (%s) on %s\n", d.Amount, d.Description, d.Date)
	return subcommands.ExitSuccess
}
