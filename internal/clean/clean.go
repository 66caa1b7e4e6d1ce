// Package clean provides the per-field normalizers shared by the
// cleaning pipelines. Every normalizer is a pure, total function: any
// input, including null and malformed text, maps to a canonical value
// or to null. Nothing in this package panics or returns an error.
package clean

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"retailq/internal/table"
)

// ISODate is the canonical date layout all dates normalize to.
const ISODate = "2006-01-02"

// lbToKg is the pound to kilogram conversion factor.
const lbToKg = 0.453592

var (
	emailPattern   = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	nonDigits      = regexp.MustCompile(`[^0-9]`)
	nonPriceChars  = regexp.MustCompile(`[^0-9.]`)
	nonAmountChars = regexp.MustCompile(`[^0-9.-]`)
)

// dateLayouts are tried in order; the first layout that parses wins.
// Ambiguous inputs like "03/04/2024" therefore resolve as day/month,
// by pattern order rather than calendar plausibility.
var dateLayouts = []string{
	"2/1/2006",
	"2006-1-2",
	"2-1-2006",
	"1/2/2006",
}

// Email lower-cases and trims an email address and validates it
// against the local@domain.tld grammar. Anything else becomes null.
func Email(v table.Value) table.Value {
	if v.Kind() != table.KindString {
		return table.Null()
	}

	e := strings.ToLower(strings.TrimSpace(v.Str()))
	if !emailPattern.MatchString(e) {
		return table.Null()
	}

	return table.String(e)
}

// Country normalizes a country name against an alias table. Unknown
// names fall back to the title-cased original; non-string input
// becomes null.
func Country(v table.Value, aliases map[string]string) table.Value {
	if v.Kind() != table.KindString {
		return table.Null()
	}

	c := strings.ToLower(strings.TrimSpace(v.Str()))
	if canonical, ok := aliases[c]; ok {
		return table.String(canonical)
	}

	return table.String(cases.Title(language.Und).String(strings.TrimSpace(v.Str())))
}

// Phone strips everything but digits and prepends defaultPrefix when
// nine or fewer digits remain. The output is digits only, no "+".
//
// A short number that already carries a foreign country code still
// gets the default prefix prepended. That matches the source data
// policy; this function does not try to detect existing prefixes.
func Phone(v table.Value, defaultPrefix string) table.Value {
	if v.Kind() != table.KindString {
		return table.Null()
	}

	digits := nonDigits.ReplaceAllString(v.Str(), "")
	if len(digits) <= 9 {
		digits = defaultPrefix + digits
	}

	return table.String(digits)
}

// Date parses a date using a fixed ordered list of layouts and
// reformats it to zero-padded ISO year-month-day. Unparseable input
// becomes null. Already-ISO input round-trips unchanged.
func Date(v table.Value) table.Value {
	if v.Kind() != table.KindString {
		return table.Null()
	}

	s := strings.TrimSpace(v.Str())
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return table.String(t.Format(ISODate))
		}
	}

	return table.Null()
}

// WeightForce parses a free-text weight into kilograms. Unit suffixes
// are substring tests evaluated in the order kg, g, lb/lbs, bare
// numeric; grams divide by 1000, pounds multiply by 0.453592. Parse
// failures become null.
func WeightForce(v table.Value) table.Value {
	switch v.Kind() {
	case table.KindNumber:
		return v
	case table.KindString:
	default:
		return table.Null()
	}

	w := strings.ReplaceAll(strings.ToLower(v.Str()), " ", "")

	var (
		f   float64
		err error
	)

	switch {
	case strings.Contains(w, "kg"):
		f, err = cast.ToFloat64E(strings.ReplaceAll(w, "kg", ""))
	case strings.Contains(w, "g"):
		f, err = cast.ToFloat64E(strings.ReplaceAll(w, "g", ""))
		f /= 1000
	case strings.Contains(w, "lb"):
		f, err = cast.ToFloat64E(nonPriceChars.ReplaceAllString(w, ""))
		f *= lbToKg
	default:
		f, err = cast.ToFloat64E(w)
	}

	if err != nil {
		return table.Null()
	}

	return table.Number(f)
}

// Price converts a raw price to a float in the canonical currency.
// Numeric input passes through unchanged. String input has commas
// normalized to dots and every non-numeric character stripped before
// parsing; prices marked "$" or "usd" are multiplied by usdRate and
// rounded to two decimals, all others are rounded to two decimals.
//
// On parse failure the result is (null, false) rather than an error,
// so a malformed price degrades like every other field and callers
// can count the failure into their quality KPIs.
func Price(v table.Value, usdRate float64) (table.Value, bool) {
	switch v.Kind() {
	case table.KindNumber:
		return v, true
	case table.KindString:
	default:
		return table.Null(), true
	}

	raw := v.Str()
	txt := strings.ReplaceAll(raw, ",", ".")

	f, err := cast.ToFloat64E(nonPriceChars.ReplaceAllString(txt, ""))
	if err != nil {
		return table.Null(), false
	}

	if strings.Contains(raw, "$") || strings.Contains(strings.ToLower(raw), "usd") {
		return table.Number(round2(f * usdRate)), true
	}

	return table.Number(round2(f)), true
}

// Amount converts a raw sale amount to the canonical currency while
// preserving its sign, so refunds stay negative. The raw amount keeps
// only digits, dot and minus before parsing; a currency of "USD" or
// "$" (trimmed, upper-cased) multiplies by usdRate with two-decimal
// rounding. Parse failure yields (null, false).
func Amount(amount, currency table.Value, usdRate float64) (table.Value, bool) {
	var raw string

	switch amount.Kind() {
	case table.KindString:
		raw = amount.Str()
	case table.KindNumber:
		raw = amount.Render()
	default:
		return table.Null(), false
	}

	f, err := cast.ToFloat64E(nonAmountChars.ReplaceAllString(raw, ""))
	if err != nil {
		return table.Null(), false
	}

	cur := strings.ToUpper(strings.TrimSpace(currency.Str()))
	if cur == "USD" || cur == "$" {
		f = round2(f * usdRate)
	}

	return table.Number(f), true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
