package trade

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rustyeddy/cryptotax/market"
)

// NotePrefix marks a line that annotates the trade above it.
const NotePrefix = "--- "

var lineRE = regexp.MustCompile(`^\[(?P<time>.+)\] ` +
	`(?P<volume_from>\S+) (?P<currency_from>\w+) => ` +
	`(?P<volume_to>\S+) (?P<currency_to>\w+) \(` +
	`(?P<currency_from_2>\w+)=(?P<price_from>\S+), ` +
	`(?P<currency_to_2>\w+)=(?P<price_to>\S+), ` +
	`(?P<exchange>\w+)\)$`)

// ParseError reports a malformed trade-log line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a single trade line, e.g.
//
//	[2017-01-01 00:00:00+00:00] 1000.0 USD => 0.99 BTC (USD=1.0, BTC=1000.0, Exchange_1)
func Parse(line string) (Trade, error) {
	line = strings.TrimRight(line, "\r\n ")
	m := lineRE.FindStringSubmatch(line)
	if m == nil {
		return Trade{}, &ParseError{Text: line, Err: fmt.Errorf("unrecognized trade line")}
	}
	get := func(name string) string { return m[lineRE.SubexpIndex(name)] }

	tm, err := market.ParseTime(get("time"))
	if err != nil {
		return Trade{}, &ParseError{Text: line, Err: fmt.Errorf("time: %w", err)}
	}

	t := Trade{
		Time:         tm,
		Exchange:     get("exchange"),
		CurrencyFrom: get("currency_from"),
		CurrencyTo:   get("currency_to"),
	}
	if get("currency_from_2") != t.CurrencyFrom {
		return Trade{}, &ParseError{Text: line, Err: fmt.Errorf("price currency %q does not match %q", get("currency_from_2"), t.CurrencyFrom)}
	}
	if get("currency_to_2") != t.CurrencyTo {
		return Trade{}, &ParseError{Text: line, Err: fmt.Errorf("price currency %q does not match %q", get("currency_to_2"), t.CurrencyTo)}
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"volume_from", &t.VolumeFrom},
		{"volume_to", &t.VolumeTo},
		{"price_from", &t.PriceFromUSD},
		{"price_to", &t.PriceToUSD},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(get(f.name), 64)
		if err != nil {
			return Trade{}, &ParseError{Text: line, Err: fmt.Errorf("%s: %w", f.name, err)}
		}
		*f.dst = v
	}

	if err := t.Validate(); err != nil {
		return Trade{}, &ParseError{Text: line, Err: err}
	}
	return t, nil
}

// Load reads a whole trade log. Blank lines are skipped and note lines attach
// to the preceding trade. Trades must be in non-decreasing time order.
func Load(r io.Reader) ([]Trade, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var trades []Trade
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, NotePrefix) {
			if len(trades) == 0 {
				return nil, &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("note before first trade")}
			}
			last := &trades[len(trades)-1]
			last.Notes = append(last.Notes, strings.TrimPrefix(line, NotePrefix))
			continue
		}

		t, err := Parse(line)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = lineNo
			}
			return nil, err
		}
		if n := len(trades); n > 0 && t.Time.Before(trades[n-1].Time) {
			return nil, &ParseError{Line: lineNo, Text: line, Err: fmt.Errorf("trade is older than the previous one")}
		}
		trades = append(trades, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trades: %w", err)
	}
	return trades, nil
}

// Write renders trades, and their notes when withNotes is set, in the format
// Load reads.
func Write(w io.Writer, trades []Trade, withNotes bool) error {
	bw := bufio.NewWriter(w)
	for _, t := range trades {
		if _, err := fmt.Fprintln(bw, t.String()); err != nil {
			return err
		}
		if !withNotes {
			continue
		}
		for _, n := range t.Notes {
			if _, err := fmt.Fprintln(bw, NotePrefix+n); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
