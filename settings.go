package stocknote

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// Settings carries the user preferences the surrounding tooling consumes.
// The ledger engine and the import parser never read them; fee and tax
// estimation are pure derivations recomputed on demand.
type Settings struct {
	Currency    string `json:"currency" yaml:"currency"`
	FeeRate     string `json:"feeRate" yaml:"fee_rate"`  // e.g. "0.001425"
	TaxRate     string `json:"taxRate" yaml:"tax_rate"`  // e.g. "0.003", sells only
	DisplayMode string `json:"displayMode" yaml:"display_mode"`
	APIKey      string `json:"apiKey,omitempty" yaml:"api_key,omitempty"`
}

// DefaultSettings are the Taiwan-market defaults: the standard brokerage
// commission rate and the securities transaction tax rate.
func DefaultSettings() Settings {
	return Settings{
		Currency:    DefaultCurrency,
		FeeRate:     "0.001425",
		TaxRate:     "0.003",
		DisplayMode: "currency",
	}
}

// rate parses a rate field, falling back to a default when absent.
func rate(field, fallback string) decimal.Decimal {
	if field == "" {
		field = fallback
	}
	d, err := decimal.NewFromString(field)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}

// EstimateFee derives the brokerage fee for a trade: floor(shares * price *
// feeRate). The caller may override the result, it is a convenience default.
func (s Settings) EstimateFee(shares Quantity, price Money) Money {
	fee := price.Mul(shares).Decimal().Mul(rate(s.FeeRate, "0.001425")).Floor()
	return M(fee, price.Currency())
}

// EstimateSellTax derives the securities transaction tax charged on sells:
// floor(shares * price * taxRate).
func (s Settings) EstimateSellTax(shares Quantity, price Money) Money {
	tax := price.Mul(shares).Decimal().Mul(rate(s.TaxRate, "0.003")).Floor()
	return M(tax, price.Currency())
}

// WriteSettings writes settings as YAML.
func WriteSettings(w io.Writer, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("cannot marshal settings: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("cannot write settings: %w", err)
	}
	return nil
}

// ReadSettings reads YAML settings, filling absent fields with defaults.
func ReadSettings(r io.Reader) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Settings{}, fmt.Errorf("cannot read settings: %w", err)
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("cannot parse settings: %w", err)
	}
	if s.Currency == "" {
		s.Currency = DefaultCurrency
	}
	return s, nil
}

// LoadSettings reads the settings file, returning defaults when it does not
// exist yet.
func LoadSettings(path string) (Settings, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()
	return ReadSettings(f)
}
