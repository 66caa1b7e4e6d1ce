package clean

import (
	"math"
	"testing"

	"retailq/internal/table"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		in   table.Value
		want table.Value
	}{
		{"Valid", table.String("Alice@Example.COM"), table.String("alice@example.com")},
		{"Surrounding whitespace", table.String("  bob@mail.fr  "), table.String("bob@mail.fr")},
		{"Already canonical", table.String("carol@shop.co.uk"), table.String("carol@shop.co.uk")},
		{"No at sign", table.String("not-an-email"), table.Null()},
		{"No TLD dot", table.String("user@localhost"), table.Null()},
		{"Empty", table.String(""), table.Null()},
		{"Null input", table.Null(), table.Null()},
		{"Number input", table.Number(42), table.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Email(tt.in); got != tt.want {
				t.Errorf("Email(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestEmail_Idempotent(t *testing.T) {
	once := Email(table.String(" Dave@Mail.COM "))
	twice := Email(once)

	if once != twice {
		t.Errorf("Email not idempotent: %v != %v", once, twice)
	}
}

func TestCountry(t *testing.T) {
	aliases := map[string]string{
		"fr":              "France",
		"france":          "France",
		"french republic": "France",
		"be":              "Belgique",
		"belgique":        "Belgique",
		"ch":              "suisse",
	}

	tests := []struct {
		name string
		in   table.Value
		want table.Value
	}{
		{"Alias fr", table.String("fr"), table.String("France")},
		{"Alias mixed case", table.String("  FRANCE "), table.String("France")},
		{"Alias phrase", table.String("French Republic"), table.String("France")},
		{"Alias be", table.String("be"), table.String("Belgique")},
		{"Alias ch keeps lower-case target", table.String("ch"), table.String("suisse")},
		{"Fallback title case", table.String("united kingdom"), table.String("United Kingdom")},
		{"Fallback preserves trimmed original", table.String(" germany "), table.String("Germany")},
		{"Null input", table.Null(), table.Null()},
		{"Number input", table.Number(1), table.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Country(tt.in, aliases); got != tt.want {
				t.Errorf("Country(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCountry_Idempotent(t *testing.T) {
	aliases := map[string]string{"fr": "France", "france": "France"}

	once := Country(table.String("fr"), aliases)
	twice := Country(once, aliases)

	if once != twice {
		t.Errorf("Country not idempotent: %v != %v", once, twice)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   table.Value
		want table.Value
	}{
		{"Nine digits gets prefix", table.String("0612345678"), table.String("330612345678")},
		{"International stays", table.String("+33612345678"), table.String("33612345678")},
		{"Formatted", table.String("06 12 34 56 78"), table.String("330612345678")},
		{"Dashes and dots", table.String("06-12.34.56.78"), table.String("330612345678")},
		{"Short foreign number still gets default prefix", table.String("+4412345"), table.String("334412345")},
		{"Empty digits", table.String("abc"), table.String("33")},
		{"Null input", table.Null(), table.Null()},
		{"Number input", table.Number(612345678), table.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Phone(tt.in, "33"); got != tt.want {
				t.Errorf("Phone(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   table.Value
		want table.Value
	}{
		{"ISO round-trip", table.String("2024-03-01"), table.String("2024-03-01")},
		{"Day slash month", table.String("15/06/2024"), table.String("2024-06-15")},
		{"Day dash month", table.String("15-06-2024"), table.String("2024-06-15")},
		{"Month slash day when day impossible", table.String("06/15/2024"), table.String("2024-06-15")},
		{"Ambiguous resolves day-first", table.String("03/04/2024"), table.String("2024-04-03")},
		{"Whitespace", table.String("  2024-03-01 "), table.String("2024-03-01")},
		{"Zero padding applied", table.String("5/6/2024"), table.String("2024-06-05")},
		{"Calendar invalid", table.String("32/01/2024"), table.Null()},
		{"Garbage", table.String("not a date"), table.Null()},
		{"Null input", table.Null(), table.Null()},
		{"Number input", table.Number(20240301), table.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.in); got != tt.want {
				t.Errorf("Date(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_Idempotent(t *testing.T) {
	once := Date(table.String("07/02/2023"))
	twice := Date(once)

	if once != twice {
		t.Errorf("Date not idempotent: %v != %v", once, twice)
	}
}

func TestWeightForce(t *testing.T) {
	tests := []struct {
		name string
		in   table.Value
		want table.Value
	}{
		{"Kilograms", table.String("2.5kg"), table.Number(2.5)},
		{"Kilograms with space", table.String("2.5 kg"), table.Number(2.5)},
		{"Grams", table.String("1500 g"), table.Number(1.5)},
		{"Pounds", table.String("2lbs"), table.Number(2 * 0.453592)},
		{"Pound singular", table.String("1 lb"), table.Number(0.453592)},
		{"Bare numeric", table.String("3.2"), table.Number(3.2)},
		{"Already numeric", table.Number(4), table.Number(4)},
		{"Unparseable", table.String("heavy"), table.Null()},
		{"Unit only", table.String("kg"), table.Null()},
		{"Null input", table.Null(), table.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightForce(tt.in)
			if !valuesClose(got, tt.want) {
				t.Errorf("WeightForce(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name   string
		in     table.Value
		want   table.Value
		wantOK bool
	}{
		{"Dollar converts", table.String("$12.50"), table.Number(11.5), true},
		{"USD word converts", table.String("12.50 USD"), table.Number(11.5), true},
		{"Comma decimal", table.String("12,50"), table.Number(12.5), true},
		{"Euro suffix stripped", table.String("9.99€"), table.Number(9.99), true},
		{"Already numeric passes through", table.Number(7.123), table.Number(7.123), true},
		{"Unparseable flags failure", table.String("free"), table.Null(), false},
		{"Null degrades quietly", table.Null(), table.Null(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Price(tt.in, 0.92)
			if !valuesClose(got, tt.want) || ok != tt.wantOK {
				t.Errorf("Price(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   table.Value
		currency table.Value
		want     table.Value
		wantOK   bool
	}{
		{"USD converts", table.String("$100"), table.String("USD"), table.Number(92), true},
		{"Dollar symbol currency", table.String("100"), table.String("$"), table.Number(92), true},
		{"EUR untouched", table.String("20.00"), table.String("EUR"), table.Number(20), true},
		{"Negative keeps sign", table.String("-20.00"), table.String("EUR"), table.Number(-20), true},
		{"Negative USD converts", table.String("-50"), table.String("usd "), table.Number(-46), true},
		{"Unparseable flags failure", table.String("n/a"), table.String("EUR"), table.Null(), false},
		{"Null amount flags failure", table.Null(), table.String("EUR"), table.Null(), false},
		{"Null currency means no conversion", table.String("30"), table.Null(), table.Number(30), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.amount, tt.currency, 0.92)
			if !valuesClose(got, tt.want) || ok != tt.wantOK {
				t.Errorf("Amount(%v, %v) = (%v, %v), want (%v, %v)",
					tt.amount, tt.currency, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// valuesClose compares values with a float tolerance for numbers.
func valuesClose(a, b table.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	if a.Kind() == table.KindNumber {
		return math.Abs(a.Float()-b.Float()) < 1e-9
	}

	return a == b
}
