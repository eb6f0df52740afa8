// Command sn is the stocknote CLI: a weighted-average cost tracker for a
// personal stock portfolio.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/yuchih/stocknote/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion; it exits the process when invoked
// by the shell's completion machinery and is a no-op otherwise.
func completion() {
	tradeFlags := map[string]complete.Predictor{
		"symbol": predict.Something,
		"shares": predict.Something,
		"price":  predict.Something,
		"date":   predict.Something,
		"fee":    predict.Something,
	}
	sn := &complete.Command{
		Flags: map[string]complete.Predictor{
			"data-file":     predict.Files("*.json"),
			"settings-file": predict.Files("*.yaml"),
			"plain":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"buy":  {Flags: tradeFlags},
			"sell": {Flags: tradeFlags},
			"dividend": {Flags: map[string]complete.Predictor{
				"symbol":   predict.Something,
				"amount":   predict.Something,
				"shares":   predict.Something,
				"pershare": predict.Something,
				"date":     predict.Something,
			}},
			"donate": {Flags: map[string]complete.Predictor{
				"amount":      predict.Something,
				"date":        predict.Something,
				"description": predict.Something,
			}},
			"import": {Flags: map[string]complete.Predictor{
				"kind":   predict.Set{"trades", "dividends", "donations", "prices"},
				"file":   predict.Files("*"),
				"commit": predict.Nothing,
			}},
			"holding": {Flags: map[string]complete.Predictor{
				"symbol": predict.Something,
				"asof":   predict.Something,
			}},
			"report": {Flags: map[string]complete.Predictor{
				"kind": predict.Set{"dividends", "valuation", "realized", "donations"},
				"year": predict.Something,
			}},
			"fetch": {Flags: map[string]complete.Predictor{
				"symbol": predict.Something,
				"from":   predict.Something,
				"to":     predict.Something,
			}},
			"assist": {Flags: map[string]complete.Predictor{
				"model": predict.Something,
			}},
		},
	}
	sn.Complete("sn")
}
