// Package cmd implements the CLI application to manage the stock tracker.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/yuchih/stocknote"
)

// Register registers all subcommands on the commander.
// A main package calls Register, then Execute on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "trades")
	c.Register(&sellCmd{}, "trades")
	c.Register(&dividendCmd{}, "records")
	c.Register(&donateCmd{}, "records")
	c.Register(&importCmd{}, "records")
	c.Register(&holdingCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")
	c.Register(&fetchCmd{}, "prices")
	c.Register(&assistCmd{}, "")
}

// The process is short lived, so package-level flags are fine.
var (
	dataFile     = flag.String("data-file", "stocknote.json", "Path to the data file (JSON backup format)")
	settingsFile = flag.String("settings-file", "stocknote.yaml", "Path to the settings file (YAML)")
	plain        = flag.Bool("plain", false, "Print raw markdown instead of rendering for the terminal")
)

func init() {
	// Optional .env for API keys (FINMIND_TOKEN, GEMINI_API_KEY).
	_ = godotenv.Load()
}

// loadStore reads the data file, starting empty when it does not exist yet.
func loadStore() (*stocknote.Backup, error) {
	f, err := os.Open(*dataFile)
	if os.IsNotExist(err) {
		settings, err := stocknote.LoadSettings(*settingsFile)
		if err != nil {
			return nil, err
		}
		return &stocknote.Backup{Settings: settings}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return stocknote.ReadBackup(f)
}

// saveStore writes the data file atomically.
func saveStore(b *stocknote.Backup) error {
	tmp := *dataFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := stocknote.WriteBackup(f, b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, *dataFile)
}

// holdingBySymbol finds a holding in the store, optionally creating it.
func holdingBySymbol(b *stocknote.Backup, symbol string, create bool) (*stocknote.Holding, error) {
	for _, h := range b.Holdings {
		if h.Symbol == symbol {
			return h, nil
		}
	}
	if !create {
		return nil, fmt.Errorf("no holding %q in %s", symbol, *dataFile)
	}
	h, err := stocknote.NewHolding(symbol, "", stocknote.M(0, currency(b)))
	if err != nil {
		return nil, err
	}
	b.Holdings = append(b.Holdings, h)
	return h, nil
}

func currency(b *stocknote.Backup) string {
	if b.Settings.Currency != "" {
		return b.Settings.Currency
	}
	return stocknote.DefaultCurrency
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering is not possible.
func printMarkdown(md string) {
	if !*plain {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100)); err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Print(md)
}
