package stocknote

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-06-10 ")
	if err != nil {
		t.Fatal(err)
	}
	if d.Year() != 2024 || d.Month() != time.June || d.Day() != 10 {
		t.Errorf("got %s", d)
	}

	for _, bad := range []string{"2024/06/10", "2024-6-10", "10-06-2024", "today", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) must fail", bad)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParseDate("2024-06-10")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2024-06-10"` {
		t.Errorf("wire form: %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != d {
		t.Errorf("round trip: want %s, got %s", d, back)
	}
}

func TestDate_EndOfMonth(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"2024-02-10", "2024-02-29"}, // leap year
		{"2023-02-10", "2023-02-28"},
		{"2024-12-05", "2024-12-31"},
		{"2024-04-30", "2024-04-30"},
	}
	for _, tc := range testCases {
		if got := MustParseDate(tc.in).EndOfMonth(); got.String() != tc.want {
			t.Errorf("EndOfMonth(%s): want %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2024/01")
	if err != nil {
		t.Fatal(err)
	}
	if ym.String() != "2024-01" {
		t.Errorf("canonical form: got %s", ym)
	}
	for _, bad := range []string{"2024-01", "2024/13", "01/2024", "2024"} {
		if _, err := ParseYearMonth(bad); err == nil {
			t.Errorf("ParseYearMonth(%q) must fail", bad)
		}
	}
}

func TestMonthRange(t *testing.T) {
	from := NewYearMonth(2023, time.November)
	to := NewYearMonth(2024, time.February)

	r, err := NewMonthRange(from, to)
	if err != nil {
		t.Fatal(err)
	}
	if r.Count() != 4 {
		t.Errorf("Count: want 4, got %d", r.Count())
	}
	months := r.Months()
	want := []string{"2023-11", "2023-12", "2024-01", "2024-02"}
	if len(months) != len(want) {
		t.Fatalf("Months: want %d, got %d", len(want), len(months))
	}
	for i, ym := range months {
		if ym.String() != want[i] {
			t.Errorf("month %d: want %s, got %s", i, want[i], ym)
		}
	}

	if _, err := NewMonthRange(to, from); err == nil {
		t.Error("reversed range must be refused")
	}

	single, err := NewMonthRange(from, from)
	if err != nil {
		t.Fatal(err)
	}
	if single.Count() != 1 {
		t.Errorf("single month range: want count 1, got %d", single.Count())
	}
}
