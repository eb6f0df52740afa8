package stocknote

import (
	"fmt"
	"iter"
	"strings"

	"github.com/shopspring/decimal"
)

// The bulk import wire contract: one record per non-blank line, fields
// comma-separated and individually trimmed. Blank lines are skipped and
// consume neither a success nor an error slot. A line that fails a field
// check contributes exactly one error and no record, and never stops the
// rest of the batch. Error messages are the user-facing strings of the
// original tool and are kept verbatim.

// LineError is a validation error scoped to one line of pasted text.
type LineError struct {
	Line    int // 1-based
	Message string
}

func (e LineError) Error() string { return fmt.Sprintf("第 %d 行：%s", e.Line, e.Message) }

// TradeRecord is a parsed trade import line: the trade plus the symbol of
// the holding it belongs to.
type TradeRecord struct {
	Symbol string
	Trade  Trade
}

// ImportKind selects which of the four wire formats a pasted block uses.
type ImportKind string

const (
	ImportTrades           ImportKind = "trades"
	ImportDividends        ImportKind = "dividends"
	ImportDonations        ImportKind = "donations"
	ImportHistoricalPrices ImportKind = "prices"
)

// ParseImportKind parses an import kind selector.
func ParseImportKind(s string) (ImportKind, error) {
	switch ImportKind(strings.ToLower(strings.TrimSpace(s))) {
	case ImportTrades:
		return ImportTrades, nil
	case ImportDividends:
		return ImportDividends, nil
	case ImportDonations:
		return ImportDonations, nil
	case ImportHistoricalPrices:
		return ImportHistoricalPrices, nil
	default:
		return "", fmt.Errorf("unknown import kind %q, want trades, dividends, donations or prices", s)
	}
}

// lines yields the non-blank lines of a pasted block with their 1-based
// line numbers, fields already comma-split and trimmed.
func lines(text string) iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		for i, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
			if line == "" {
				continue
			}
			fields := strings.Split(line, ",")
			for j := range fields {
				fields[j] = strings.TrimSpace(fields[j])
			}
			if !yield(i+1, fields) {
				return
			}
		}
	}
}

// parseNumber parses a finite decimal number.
func parseNumber(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

// ParseTrades parses pasted trade lines of the form
//
//	symbol,kind,shares,price,date,fee
//
// e.g. "2330,BUY,1000,500,2024-01-10,150".
func ParseTrades(text string) ([]TradeRecord, []LineError) {
	var records []TradeRecord
	var errs []LineError
	fail := func(n int, msg string) { errs = append(errs, LineError{Line: n, Message: msg}) }

	for n, f := range lines(text) {
		if len(f) != 6 {
			fail(n, "格式錯誤，應有 6 個欄位")
			continue
		}
		symbol := strings.ToUpper(f[0])
		if symbol == "" {
			fail(n, "代號不可為空白")
			continue
		}
		kind, err := ParseTradeKind(f[1])
		if err != nil {
			fail(n, "類別必須為 BUY 或 SELL")
			continue
		}
		shares, ok := parseNumber(f[2])
		if !ok || !shares.IsPositive() {
			fail(n, "股數必須為大於 0 的數字")
			continue
		}
		price, ok := parseNumber(f[3])
		if !ok || price.IsNegative() {
			fail(n, "價格必須為大於或等於 0 的數字")
			continue
		}
		day, err := ParseDate(f[4])
		if err != nil {
			fail(n, "日期格式錯誤，應為 YYYY-MM-DD")
			continue
		}
		fee, ok := parseNumber(f[5])
		if !ok || fee.IsNegative() {
			fail(n, "手續費必須為大於或等於 0 的數字")
			continue
		}
		trade, err := NewTrade(kind, Q(shares), TWD(price), day, TWD(fee))
		if err != nil {
			// Field checks above are exhaustive; this is a safety net.
			fail(n, err.Error())
			continue
		}
		records = append(records, TradeRecord{Symbol: symbol, Trade: trade})
	}
	return records, errs
}

// ParseDividends parses pasted dividend lines of the form
//
//	symbol,sharesHeld,dividendPerShare,date
//
// e.g. "00878,15000,0.51,2024-05-17". The net amount is derived as
// floor(sharesHeld*dividendPerShare) minus the fixed 10-unit postal fee,
// clamped at zero.
func ParseDividends(text string) ([]Dividend, []LineError) {
	var records []Dividend
	var errs []LineError
	fail := func(n int, msg string) { errs = append(errs, LineError{Line: n, Message: msg}) }

	for n, f := range lines(text) {
		if len(f) != 4 {
			fail(n, "格式錯誤，應有 4 個欄位")
			continue
		}
		symbol := strings.ToUpper(f[0])
		if symbol == "" {
			fail(n, "代號不可為空白")
			continue
		}
		sharesHeld, ok := parseNumber(f[1])
		if !ok || !sharesHeld.IsPositive() {
			fail(n, "持有股數必須為大於 0 的數字")
			continue
		}
		perShare, ok := parseNumber(f[2])
		if !ok || perShare.IsNegative() {
			fail(n, "每股配息必須為大於或等於 0 的數字")
			continue
		}
		day, err := ParseDate(f[3])
		if err != nil {
			fail(n, "日期格式錯誤，應為 YYYY-MM-DD")
			continue
		}
		dividend, err := DeriveDividend(symbol, Q(sharesHeld), TWD(perShare), day)
		if err != nil {
			fail(n, err.Error())
			continue
		}
		records = append(records, dividend)
	}
	return records, errs
}

// ParseDonations parses pasted donation lines of the form
//
//	amount,date,description
//
// e.g. "1000,2024-03-05,紅十字會".
func ParseDonations(text string) ([]Donation, []LineError) {
	var records []Donation
	var errs []LineError
	fail := func(n int, msg string) { errs = append(errs, LineError{Line: n, Message: msg}) }

	for n, f := range lines(text) {
		if len(f) != 3 {
			fail(n, "格式錯誤，應有 3 個欄位")
			continue
		}
		amount, ok := parseNumber(f[0])
		if !ok || !amount.IsPositive() {
			fail(n, "金額必須為大於 0 的數字")
			continue
		}
		day, err := ParseDate(f[1])
		if err != nil {
			fail(n, "日期格式錯誤，應為 YYYY-MM-DD")
			continue
		}
		if f[2] == "" {
			fail(n, "說明不可為空白")
			continue
		}
		donation, err := NewDonation(TWD(amount), day, f[2])
		if err != nil {
			fail(n, err.Error())
			continue
		}
		records = append(records, donation)
	}
	return records, errs
}

// ParseHistoricalPrices parses pasted monthly closing-price lines of the form
//
//	symbol,YYYY/MM-YYYY/MM,price,price,...
//
// e.g. "5483,2024/01-2024/03,155,158,160.5". The range expands to the
// inclusive month sequence and the trailing price count must match.
//
// Prices are validated in month order and the first invalid one stops the
// line: records already emitted for earlier months of that same line stay in
// the success list while the line still reports one error. Callers preview
// results before committing, which is why this split is kept.
func ParseHistoricalPrices(text string) ([]HistoricalPrice, []LineError) {
	var records []HistoricalPrice
	var errs []LineError
	fail := func(n int, msg string) { errs = append(errs, LineError{Line: n, Message: msg}) }

	for n, f := range lines(text) {
		if len(f) < 3 {
			fail(n, "格式錯誤，應至少有 3 個欄位")
			continue
		}
		symbol := strings.ToUpper(f[0])
		if symbol == "" {
			fail(n, "代號不可為空白")
			continue
		}
		bounds := strings.SplitN(f[1], "-", 2)
		if len(bounds) != 2 {
			fail(n, "區間格式錯誤，應為 YYYY/MM-YYYY/MM")
			continue
		}
		from, errFrom := ParseYearMonth(bounds[0])
		to, errTo := ParseYearMonth(bounds[1])
		if errFrom != nil || errTo != nil {
			fail(n, "區間格式錯誤，應為 YYYY/MM-YYYY/MM")
			continue
		}
		r, err := NewMonthRange(from, to)
		if err != nil {
			fail(n, "區間起始月份不可晚於結束月份")
			continue
		}
		months := r.Months()
		prices := f[2:]
		if len(prices) != len(months) {
			fail(n, fmt.Sprintf("價格數量不符，區間共 %d 個月，但提供了 %d 個價格", len(months), len(prices)))
			continue
		}
		for i, ym := range months {
			price, ok := parseNumber(prices[i])
			if !ok || price.IsNegative() {
				fail(n, fmt.Sprintf("%s 的價格必須為大於或等於 0 的數字", ym))
				break
			}
			records = append(records, HistoricalPrice{Symbol: symbol, Month: ym, Price: TWD(price)})
		}
	}
	return records, errs
}
