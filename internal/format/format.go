// Package format renders raw column values as table cell text.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/oakwood-commons/dirtab/internal/grid"
)

const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"

	// DateLayout is the abbreviated month/day/year layout used for dates.
	DateLayout = "Jan 2, 2006"
)

// suffixSymbol lists the languages that write the symbol after the amount.
var suffixSymbol = map[string]bool{
	"de": true, "fr": true, "es": true, "it": true, "nl": true,
	"pt": true, "pl": true, "sv": true, "fi": true, "da": true,
	"nb": true, "cs": true, "ru": true,
}

var symbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"CHF": "CHF ",
}

// Formatter formats cell values for one locale and currency.
type Formatter struct {
	Locale   string
	Currency string
}

// Default returns an en-US / USD formatter.
func Default() Formatter {
	return Formatter{Locale: DefaultLocale, Currency: DefaultCurrency}
}

// Money formats v as a whole amount in the formatter's currency.
func (f Formatter) Money(v float64) string {
	return Currency(v, f.Locale, f.Currency)
}

// Date formats t in the formatter's locale.
func (f Formatter) Date(t time.Time) string {
	return Date(t, f.Locale)
}

// Cell renders a raw value for the given column.
func (f Formatter) Cell(def grid.ColumnDef, v any) string {
	if v == nil {
		return ""
	}
	switch def.Kind {
	case grid.KindCurrency:
		if n, ok := toFloat(v); ok {
			return f.Money(n)
		}
	case grid.KindDate:
		if t, ok := v.(time.Time); ok {
			return f.Date(t)
		}
	case grid.KindBool:
		if b, ok := v.(bool); ok {
			return grid.YesNo(b)
		}
	}
	return fmt.Sprint(v)
}

// Currency formats v with zero decimal places, grouped per locale. The
// symbol leads ("$85,000") or trails ("85.000 €") as the locale's language
// writes it. An unusable locale or currency code falls back to a plain
// "$1,234" rendering.
func Currency(v float64, locale, code string) string {
	n := int64(math.Round(v))
	tag, err := language.Parse(locale)
	if err != nil {
		return fallbackCurrency(n)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fallbackCurrency(n)
	}
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	amount := message.NewPrinter(tag).Sprintf("%d", n)
	sym := symbol(unit.String())
	if base, _ := tag.Base(); suffixSymbol[base.String()] {
		return sign + amount + " " + strings.TrimSpace(sym)
	}
	return sign + sym + amount
}

func fallbackCurrency(n int64) string {
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

func symbol(code string) string {
	if s, ok := symbols[strings.ToUpper(code)]; ok {
		return s
	}
	return code + " "
}

// Date formats t as an abbreviated month, day and four-digit year. The
// layout and month names are en-US for every locale; the locale is only
// checked for validity. An unusable locale falls back to t.String().
func Date(t time.Time, locale string) string {
	if _, err := language.Parse(locale); err != nil {
		return t.String()
	}
	return t.Format(DateLayout)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
