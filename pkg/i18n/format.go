package i18n

import (
	"math"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// regionFormat holds the formatting conventions x/text does not cover:
// Go time layouts and where the currency symbol goes.
type regionFormat struct {
	date          string
	time          string
	dateTime      string
	symbolAfter   bool
	symbolSpacing bool
}

var isoFormat = regionFormat{
	date:     "2006-01-02",
	time:     "15:04",
	dateTime: "2006-01-02 15:04",
}

var regionFormats = map[string]regionFormat{
	"US": {date: "01/02/2006", time: "3:04 PM", dateTime: "01/02/2006 3:04 PM"},
	"GB": {date: "02/01/2006", time: "15:04", dateTime: "02/01/2006 15:04"},
	"AU": {date: "02/01/2006", time: "3:04 PM", dateTime: "02/01/2006 3:04 PM"},
	"CA": {date: "2006-01-02", time: "3:04 PM", dateTime: "2006-01-02 3:04 PM"},
	"CN": {date: "2006/01/02", time: "15:04", dateTime: "2006/01/02 15:04"},
	"HK": {date: "02/01/2006", time: "15:04", dateTime: "02/01/2006 15:04"},
	"TW": {date: "2006/01/02", time: "15:04", dateTime: "2006/01/02 15:04"},
	"SG": {date: "02/01/2006", time: "15:04", dateTime: "02/01/2006 15:04"},
	"DE": {date: "02.01.2006", time: "15:04", dateTime: "02.01.2006 15:04", symbolAfter: true, symbolSpacing: true},
	"FR": {date: "02/01/2006", time: "15:04", dateTime: "02/01/2006 15:04", symbolAfter: true, symbolSpacing: true},
}

// Formatter formats numbers, currency amounts and dates for one locale tag.
// It is immutable and safe for concurrent use.
type Formatter struct {
	printer  *message.Printer
	currency currency.Unit
	format   regionFormat
	tag      language.Tag
}

// NewFormatter returns a Formatter for the tag composed from locale and
// region (see Tag). Without a region the locale's likely region decides the
// default currency and date layout.
func NewFormatter(locale, region string) *Formatter {
	tag := Tag(locale, region)
	r, _ := tag.Region()

	f := &Formatter{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		currency: currency.USD,
		format:   isoFormat,
	}
	if unit, ok := currency.FromRegion(r); ok {
		f.currency = unit
	}
	if rf, ok := regionFormats[r.String()]; ok {
		f.format = rf
	}
	return f
}

// Tag returns the composed locale tag, e.g. "en-US".
func (f *Formatter) Tag() string {
	return f.tag.String()
}

// Currency returns the ISO code of the region's default currency.
func (f *Formatter) Currency() string {
	return f.currency.String()
}

// FormatNumber formats n with the locale's separators and digit grouping.
// Options from golang.org/x/text/number, such as number.MaxFractionDigits,
// are passed through.
func (f *Formatter) FormatNumber(n float64, opts ...number.Option) string {
	return f.printer.Sprint(number.Decimal(n, opts...))
}

// FormatPercent formats a ratio as a percentage; 0.5 becomes "50%".
func (f *Formatter) FormatPercent(n float64, opts ...number.Option) string {
	return f.printer.Sprint(number.Percent(n, opts...))
}

// FormatCurrency formats amount in the currency identified by the ISO 4217
// code. An empty or unknown code uses the region's currency. The amount is
// rounded to the currency's standard number of decimals.
func (f *Formatter) FormatCurrency(amount float64, code string) string {
	unit := f.currency
	if code != "" {
		if u, err := currency.ParseISO(code); err == nil {
			unit = u
		}
	}

	scale, _ := currency.Standard.Rounding(unit)
	symbol := f.printer.Sprint(currency.Symbol(unit))
	digits := f.printer.Sprint(number.Decimal(math.Abs(amount), number.Scale(scale)))

	sep := ""
	if f.format.symbolSpacing {
		sep = " "
	}

	result := symbol + sep + digits
	if f.format.symbolAfter {
		result = digits + sep + symbol
	}
	if amount < 0 {
		result = "-" + result
	}
	return result
}

// FormatDate formats the date part of t.
func (f *Formatter) FormatDate(t time.Time) string {
	return t.Format(f.format.date)
}

// FormatTime formats the clock part of t.
func (f *Formatter) FormatTime(t time.Time) string {
	return t.Format(f.format.time)
}

// FormatDateTime formats date and clock.
func (f *Formatter) FormatDateTime(t time.Time) string {
	return t.Format(f.format.dateTime)
}
