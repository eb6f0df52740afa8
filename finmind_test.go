package stocknote

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// finmindPayload mimics the TaiwanStockPrice dataset response.
const finmindPayload = `{
  "msg": "success",
  "status": 200,
  "data": [
    {"date": "2024-01-02", "stock_id": "2330", "close": 590.0},
    {"date": "2024-01-31", "stock_id": "2330", "close": 593.0},
    {"date": "2024-02-15", "stock_id": "2330", "close": 600.5},
    {"date": "2024-02-29", "stock_id": "2330", "close": 610.0},
    {"date": "2024-03-29", "stock_id": "2330", "close": 625.0}
  ]
}`

// fetchFrom rewrites the FinMind base URL to a test server.
func fetchFrom(t *testing.T, handler http.HandlerFunc, token string, months MonthRange) ([]HistoricalPrice, error) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := server.Client()
	client.Transport = rewriteHost{base: client.Transport, target: server.URL}
	return FetchMonthlyCloses(client, token, "2330", months)
}

type rewriteHost struct {
	base   http.RoundTripper
	target string
}

func (r rewriteHost) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = r.target[len("http://"):]
	return r.base.RoundTrip(req)
}

func TestFetchMonthlyCloses(t *testing.T) {
	var gotQuery string
	months, err := NewMonthRange(NewYearMonth(2024, time.January), NewYearMonth(2024, time.March))
	if err != nil {
		t.Fatal(err)
	}

	records, err := fetchFrom(t, func(w http.ResponseWriter, req *http.Request) {
		gotQuery = req.URL.RawQuery
		fmt.Fprint(w, finmindPayload)
	}, "token-123", months)
	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 3 {
		t.Fatalf("want 3 monthly closes, got %d", len(records))
	}
	// Each month reduces to its last trading day's close.
	wantCloses := map[string]float64{"2024-01": 593, "2024-02": 610, "2024-03": 625}
	for _, r := range records {
		if want, ok := wantCloses[r.Month.String()]; !ok || !r.Price.Equal(TWD(want)) {
			t.Errorf("%s: want %v, got %s", r.Month, wantCloses[r.Month.String()], r.Price.Decimal())
		}
	}

	for _, fragment := range []string{"dataset=TaiwanStockPrice", "data_id=2330", "token=token-123",
		"start_date=2024-01-01", "end_date=2024-03-31"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Errorf("query %q misses %q", gotQuery, fragment)
		}
	}
}

func TestFetchMonthlyCloses_Refused(t *testing.T) {
	months, err := NewMonthRange(NewYearMonth(2024, time.January), NewYearMonth(2024, time.March))
	if err != nil {
		t.Fatal(err)
	}
	_, err = fetchFrom(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"msg": "rate limit exceeded", "status": 402, "data": []}`)
	}, "", months)
	if err == nil {
		t.Fatal("a refused request must surface an error")
	}
}

func TestFetchMonthlyCloses_NoData(t *testing.T) {
	months, err := NewMonthRange(NewYearMonth(2020, time.January), NewYearMonth(2020, time.January))
	if err != nil {
		t.Fatal(err)
	}
	_, err = fetchFrom(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"msg": "success", "status": 200, "data": []}`)
	}, "", months)
	if err == nil {
		t.Fatal("an empty dataset must surface an error")
	}
}
