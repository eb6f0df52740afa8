package stocknote

import (
	"encoding/json"
	"fmt"
	"io"
)

// Backup is the whole-file JSON form of every record store. It is a plain
// snapshot meant for export/import; record invariants are re-checked when a
// file is read back.
type Backup struct {
	Holdings     []*Holding    `json:"holdings"`
	Dividends    []Dividend    `json:"dividends"`
	Donations    []Donation    `json:"donations"`
	PriceHistory *PriceHistory `json:"priceHistory,omitempty"`
	Settings     Settings      `json:"settings"`
}

// WriteBackup writes the backup as indented JSON, the format the original
// tool exports from its file picker.
func WriteBackup(w io.Writer, b *Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("cannot write backup: %w", err)
	}
	return nil
}

// ReadBackup reads and validates a whole backup file. A malformed file
// yields a single blocking error and nothing is imported.
func ReadBackup(r io.Reader) (*Backup, error) {
	var b Backup
	dec := json.NewDecoder(r)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("malformed backup file: %w", err)
	}

	seen := make(map[string]struct{}, len(b.Holdings))
	for _, h := range b.Holdings {
		if h == nil || h.Symbol == "" {
			return nil, fmt.Errorf("malformed backup file: holding without a symbol")
		}
		if _, dup := seen[h.Symbol]; dup {
			return nil, fmt.Errorf("malformed backup file: duplicate holding %q", h.Symbol)
		}
		seen[h.Symbol] = struct{}{}
		h.stableSort()
		for _, t := range h.Trades {
			if err := t.Validate(); err != nil {
				return nil, fmt.Errorf("malformed backup file: holding %q: %w", h.Symbol, err)
			}
		}
		if err := validateTimeline(h.Symbol, h.Trades); err != nil {
			return nil, fmt.Errorf("malformed backup file: %w", err)
		}
	}
	for _, d := range b.Dividends {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("malformed backup file: %w", err)
		}
	}
	for _, d := range b.Donations {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("malformed backup file: %w", err)
		}
	}
	b.restampCurrency()
	return &b, nil
}

// restampCurrency restores the settings currency on every monetary value;
// amounts serialize as bare numbers since the tool is single-currency.
func (b *Backup) restampCurrency() {
	currency := b.Settings.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	for _, h := range b.Holdings {
		h.MarketPrice = h.MarketPrice.withCurrency(currency)
		for i, t := range h.Trades {
			t.Price = t.Price.withCurrency(currency)
			t.Fee = t.Fee.withCurrency(currency)
			h.Trades[i] = t
		}
	}
	for i, d := range b.Dividends {
		d.Amount = d.Amount.withCurrency(currency)
		d.PerShare = d.PerShare.withCurrency(currency)
		b.Dividends[i] = d
	}
	for i, d := range b.Donations {
		d.Amount = d.Amount.withCurrency(currency)
		b.Donations[i] = d
	}
	if b.PriceHistory != nil {
		b.PriceHistory.restamp(currency)
	}
}
