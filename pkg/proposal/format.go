package proposal

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DateLayout is the day-month-year layout used for dates in documents and file names.
const DateLayout = "02-01-2006"

// Currency describes how amounts in one currency are written into a proposal.
type Currency struct {
	Code   string
	Symbol string
	// AdditionalFeaturePrice is the flat per-feature price quoted as <<AF-Price>>.
	AdditionalFeaturePrice int64
	// TaxNote is appended to the total, for example " + 18% GST".
	TaxNote string
}

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", AdditionalFeaturePrice: 250},
	"INR": {Code: "INR", Symbol: "₹", AdditionalFeaturePrice: 25000, TaxNote: " + 18% GST"},
}

// LookupCurrency returns the currency for an ISO 4217 code, case-insensitively.
func LookupCurrency(code string) (Currency, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return Currency{}, fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	c, ok := currencies[unit.String()]
	if !ok {
		return Currency{}, fmt.Errorf("unsupported currency %q", unit.String())
	}
	return c, nil
}

// SupportedCurrencies lists the codes LookupCurrency accepts.
func SupportedCurrencies() []string {
	return []string{"INR", "USD"}
}

// FormatAmount writes n with English thousands grouping: 10000 becomes "10,000".
func FormatAmount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatCurrency prefixes the grouped amount with the currency symbol.
func FormatCurrency(n int64, c Currency) string {
	return c.Symbol + FormatAmount(n)
}

// FormatDate writes t as dd-mm-yyyy. The zero time formats as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate reads a dd-mm-yyyy or yyyy-mm-dd date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected dd-mm-yyyy or yyyy-mm-dd", s)
	}
	return t, nil
}
