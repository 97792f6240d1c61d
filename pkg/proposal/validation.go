package proposal

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// PhonePrefix returns the dialling prefix a client number must start with.
func PhonePrefix(country string) string {
	if strings.EqualFold(strings.TrimSpace(country), "india") {
		return "+91"
	}
	return "+1"
}

// ValidatePhoneNumber checks the number against the country's prefix.
// An empty country or number is not checked.
func ValidatePhoneNumber(country, number string) error {
	if country == "" || number == "" {
		return nil
	}
	prefix := PhonePrefix(country)
	if !strings.HasPrefix(number, prefix) {
		return fmt.Errorf("phone number for %s should start with %s", country, prefix)
	}
	return nil
}

// Validate checks the form before any template is opened.
func (f Form) Validate() error {
	e := &ValidationError{}

	if err := ValidatePhoneNumber(f.Country, f.ClientNumber); err != nil {
		e.add("client_number", "%v", err)
	}

	if f.Currency != "" {
		if _, err := LookupCurrency(f.Currency); err != nil {
			e.add("currency", "%v", err)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(f.Prices)) {
		if value := f.Prices[key]; value < 0 {
			e.add("prices."+key, "price cannot be negative: %d", value)
		}
	}

	for _, key := range slices.Sorted(maps.Keys(f.Team)) {
		if count := f.Team[key]; count < 0 {
			e.add("team."+key, "count cannot be negative: %d", count)
		}
	}

	return e.err()
}
