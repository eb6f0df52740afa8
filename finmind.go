package stocknote

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
)

// Monthly closing prices come from the FinMind open data API. This is
// historical data only, fetched on demand to fill the price history; the
// tracker never streams live quotes.

const finmindURL = "https://api.finmindtrade.com/api/v4/data"

// diskCache implements a simple disk cache for HTTP responses. The cache key
// includes the day, so entries expire daily.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	key := fmt.Sprintf("%s %s %s", Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(os.TempDir(), key), content, 0644)
}

// NewCachedClient returns an HTTP client whose responses are cached on disk
// with a daily expiry.
func NewCachedClient() *http.Client {
	client := new(http.Client)
	client.Transport = &diskCache{http.DefaultTransport}
	return client
}

// jwget performs an HTTP GET request and unmarshals the JSON response.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// FetchMonthlyCloses fetches daily closing prices for a symbol over a month
// range and reduces them to one closing price per month (the last trading
// day's close). The token is the FinMind API key from settings; the free
// tier works with an empty token at a lower rate limit.
func FetchMonthlyCloses(client *http.Client, token, symbol string, months MonthRange) ([]HistoricalPrice, error) {
	q := url.Values{}
	q.Set("dataset", "TaiwanStockPrice")
	q.Set("data_id", symbol)
	q.Set("start_date", NewDate(months.From.Year(), months.From.Month(), 1).String())
	q.Set("end_date", NewDate(months.To.Year(), months.To.Month(), 1).EndOfMonth().String())
	if token != "" {
		q.Set("token", token)
	}
	addr := finmindURL + "?" + q.Encode()

	var jobj any
	if err := jwget(client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch prices for %q: %w", symbol, err)
	}

	if jstatus, err := jsonpath.Get("$.status", jobj); err == nil {
		if status, ok := jstatus.(float64); ok && status != 200 {
			jmsg, _ := jsonpath.Get("$.msg", jobj)
			return nil, fmt.Errorf("finmind refused request for %q: %v %v", symbol, status, jmsg)
		}
	}

	jrows, err := jsonpath.Get("$.data[*]", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected finmind payload for %q: %w", symbol, err)
	}
	rows, ok := jrows.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list or a
		// single answer, so normalize to a list.
		rows = []any{jrows}
	}

	// The rows arrive date-ascending: the last close seen for a month is
	// that month's closing price.
	closes := make(map[YearMonth]Money)
	for _, jrow := range rows {
		row, ok := jrow.(map[string]any)
		if !ok {
			continue
		}
		dateStr, _ := row["date"].(string)
		closePrice, okClose := row["close"].(float64)
		day, errDate := ParseDate(dateStr)
		if !okClose || errDate != nil {
			continue
		}
		closes[day.YearMonth()] = TWD(closePrice)
	}

	var records []HistoricalPrice
	for _, ym := range months.Months() {
		if price, ok := closes[ym]; ok {
			records = append(records, HistoricalPrice{Symbol: symbol, Month: ym, Price: price})
		}
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no prices returned for %q in %s-%s", symbol, months.From, months.To)
	}
	return records, nil
}
