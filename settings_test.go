package stocknote

import (
	"bytes"
	"strings"
	"testing"
)

func TestSettings_EstimateFee(t *testing.T) {
	s := DefaultSettings()

	// floor(1000 * 500 * 0.001425) = floor(712.5) = 712
	if fee := s.EstimateFee(Q(1000), TWD(500)); !fee.Equal(TWD(712)) {
		t.Errorf("fee: want 712, got %s", fee.Decimal())
	}
	// floor(400 * 600 * 0.003) = 720
	if tax := s.EstimateSellTax(Q(400), TWD(600)); !tax.Equal(TWD(720)) {
		t.Errorf("tax: want 720, got %s", tax.Decimal())
	}
}

func TestSettings_EstimateFee_CustomRate(t *testing.T) {
	s := DefaultSettings()
	s.FeeRate = "0.001" // discounted commission

	if fee := s.EstimateFee(Q(1000), TWD(500)); !fee.Equal(TWD(500)) {
		t.Errorf("fee: want 500, got %s", fee.Decimal())
	}
	// A broken rate falls back to the standard one.
	s.FeeRate = "not-a-rate"
	if fee := s.EstimateFee(Q(1000), TWD(500)); !fee.Equal(TWD(712)) {
		t.Errorf("fee with broken rate: want 712, got %s", fee.Decimal())
	}
}

func TestSettings_YAMLRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.APIKey = "token-123"
	s.DisplayMode = "percent"

	var buf bytes.Buffer
	if err := WriteSettings(&buf, s); err != nil {
		t.Fatal(err)
	}
	back, err := ReadSettings(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back != s {
		t.Errorf("round trip: want %+v, got %+v", s, back)
	}
}

func TestReadSettings_FillsDefaults(t *testing.T) {
	back, err := ReadSettings(strings.NewReader("display_mode: percent\n"))
	if err != nil {
		t.Fatal(err)
	}
	if back.Currency != DefaultCurrency {
		t.Errorf("currency default: got %q", back.Currency)
	}
	if back.FeeRate != "0.001425" {
		t.Errorf("fee rate default: got %q", back.FeeRate)
	}
	if back.DisplayMode != "percent" {
		t.Errorf("explicit field lost: got %q", back.DisplayMode)
	}
}

func TestReadSettings_Malformed(t *testing.T) {
	if _, err := ReadSettings(strings.NewReader(":\n\t-")); err == nil {
		t.Error("malformed YAML must be refused")
	}
}
