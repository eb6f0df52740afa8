package stocknote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TradeKind identifies the direction of a trade.
type TradeKind string

const (
	Buy  TradeKind = "BUY"
	Sell TradeKind = "SELL"
)

// ParseTradeKind parses a trade kind, case-insensitively.
func ParseTradeKind(s string) (TradeKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Buy):
		return Buy, nil
	case string(Sell):
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade kind %q, want BUY or SELL", s)
	}
}

// Trade is a single buy or sell of a holding. It is an immutable value:
// editing a trade means replacing it through Holding.ReplaceTrade.
type Trade struct {
	ID     uuid.UUID `json:"id"`
	Kind   TradeKind `json:"kind"`
	Shares Quantity  `json:"shares"`
	Price  Money     `json:"price"` // unit price
	Date   Date      `json:"date"`
	Fee    Money     `json:"fee"`
}

// NewTrade creates a validated trade with a fresh identity.
func NewTrade(kind TradeKind, shares Quantity, price Money, on Date, fee Money) (Trade, error) {
	t := Trade{ID: uuid.New(), Kind: kind, Shares: shares, Price: price, Date: on, Fee: fee}
	if err := t.Validate(); err != nil {
		return Trade{}, err
	}
	return t, nil
}

// Validate checks the trade's field invariants.
func (t Trade) Validate() error {
	if t.Kind != Buy && t.Kind != Sell {
		return fmt.Errorf("unknown trade kind %q, want BUY or SELL", t.Kind)
	}
	if !t.Shares.IsPositive() {
		return errors.New("trade shares must be positive")
	}
	if t.Price.IsNegative() {
		return errors.New("trade price cannot be negative")
	}
	if t.Fee.IsNegative() {
		return errors.New("trade fee cannot be negative")
	}
	if t.Date.IsZero() {
		return errors.New("trade date is missing")
	}
	return nil
}

// Amount returns shares times unit price, fee excluded.
func (t Trade) Amount() Money { return t.Price.Mul(t.Shares) }

// signedShares is the trade's effect on the position size.
func (t Trade) signedShares() Quantity {
	if t.Kind == Sell {
		return Q(0).Sub(t.Shares)
	}
	return t.Shares
}

// postalFee is the fixed handling fee the transfer agent deducts from a cash
// dividend payment.
var postalFee = TWD(10)

// Dividend is a cash dividend received for a holding. The holding is
// referenced by symbol, not owned.
type Dividend struct {
	ID     uuid.UUID `json:"id"`
	Symbol string    `json:"symbol"`
	Amount Money     `json:"amount"` // net amount, integer currency units
	Date   Date      `json:"date"`

	// SharesHeld and PerShare record how Amount was derived, when known.
	SharesHeld Quantity `json:"sharesHeld,omitempty"`
	PerShare   Money    `json:"perShare,omitempty"`
}

// NewDividend creates a dividend with an explicit net amount.
func NewDividend(symbol string, amount Money, on Date) (Dividend, error) {
	d := Dividend{ID: uuid.New(), Symbol: strings.ToUpper(strings.TrimSpace(symbol)), Amount: amount, Date: on}
	if err := d.Validate(); err != nil {
		return Dividend{}, err
	}
	return d, nil
}

// DeriveDividend creates a dividend from shares held at the record date and
// the per-share rate. The net amount is floor(sharesHeld*perShare) minus the
// postal fee, clamped at zero.
func DeriveDividend(symbol string, sharesHeld Quantity, perShare Money, on Date) (Dividend, error) {
	amount := perShare.Mul(sharesHeld).Sub(postalFee).Floor()
	if amount.IsNegative() {
		amount = M(0, amount.Currency())
	}
	d := Dividend{
		ID:         uuid.New(),
		Symbol:     strings.ToUpper(strings.TrimSpace(symbol)),
		Amount:     amount,
		Date:       on,
		SharesHeld: sharesHeld,
		PerShare:   perShare,
	}
	if err := d.Validate(); err != nil {
		return Dividend{}, err
	}
	return d, nil
}

// Validate checks the dividend's field invariants.
func (d Dividend) Validate() error {
	if d.Symbol == "" {
		return errors.New("dividend symbol is missing")
	}
	if d.Amount.IsNegative() {
		return errors.New("dividend amount cannot be negative")
	}
	if !d.Amount.Decimal().Equal(d.Amount.Decimal().Floor()) {
		return errors.New("dividend amount must be a whole currency amount")
	}
	if d.Date.IsZero() {
		return errors.New("dividend date is missing")
	}
	return nil
}

// Donation is a charitable donation, unrelated to any holding.
type Donation struct {
	ID          uuid.UUID `json:"id"`
	Amount      Money     `json:"amount"`
	Date        Date      `json:"date"`
	Description string    `json:"description"`
}

// NewDonation creates a validated donation.
func NewDonation(amount Money, on Date, description string) (Donation, error) {
	d := Donation{ID: uuid.New(), Amount: amount, Date: on, Description: strings.TrimSpace(description)}
	if err := d.Validate(); err != nil {
		return Donation{}, err
	}
	return d, nil
}

// Validate checks the donation's field invariants.
func (d Donation) Validate() error {
	if !d.Amount.IsPositive() {
		return errors.New("donation amount must be positive")
	}
	if d.Date.IsZero() {
		return errors.New("donation date is missing")
	}
	if d.Description == "" {
		return errors.New("donation description is missing")
	}
	return nil
}
