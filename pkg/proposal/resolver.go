package proposal

import (
	"fmt"
	"strconv"
	"time"
)

// Form holds the values collected for one proposal.
type Form struct {
	ClientName   string    `yaml:"client_name"`
	ClientEmail  string    `yaml:"client_email"`
	ClientNumber string    `yaml:"client_number"`
	Country      string    `yaml:"country"`
	Date         time.Time `yaml:"date"`
	// Currency is an ISO 4217 code. Empty means the engine default.
	Currency string `yaml:"currency"`
	// Prices maps pricing token keys (MC-Price, ...) to whole amounts.
	Prices map[string]int64 `yaml:"prices"`
	// Team maps team role keys (P1, ...) to head counts.
	Team  map[string]int `yaml:"team"`
	Tools []string       `yaml:"tools"`
	// SpecialDates maps special field keys (VDate, ...) to dates.
	SpecialDates map[string]time.Time `yaml:"special_dates"`
}

const (
	accountManagementKey = "AM-Price"
	totalPriceKey        = "T-Price"
	additionalFeatureKey = "AF-Price"
)

var clientKeys = []string{"Client Name", "Client Email", "Client Number", "Date", "Country"}

var derivedPriceKeys = []string{accountManagementKey, totalPriceKey, additionalFeatureKey}

// minToolSlots is the number of tool tokens always resolved, even when empty.
const minToolSlots = 2

func toolKeys(n int) []string {
	if n < minToolSlots {
		n = minToolSlots
	}
	keys := make([]string, n)
	for i := range keys {
		keys[i] = "T" + strconv.Itoa(i+1)
	}
	return keys
}

// Resolve computes the token map for a variant from the form values. It
// never fails: missing values resolve to "" and an unknown currency falls
// back to USD. Call Form.Validate first to reject bad input.
func Resolve(v Variant, f Form) TokenMap {
	cur, err := LookupCurrency(f.Currency)
	if err != nil {
		cur = currencies["USD"]
	}

	tokens := TokenMap{
		Token("Client Name"):   f.ClientName,
		Token("Client Email"):  f.ClientEmail,
		Token("Client Number"): f.ClientNumber,
		Token("Date"):          FormatDate(f.Date),
		Token("Country"):       f.Country,
	}

	tokens.Merge(resolvePricing(v, f.Prices, cur))

	for _, role := range v.TeamRoles {
		tokens[Token(role.Key)] = strconv.Itoa(f.Team[role.Key])
	}

	for i, key := range toolKeys(len(f.Tools)) {
		value := ""
		if i < len(f.Tools) {
			value = f.Tools[i]
		}
		tokens[Token(key)] = value
	}

	for _, field := range v.SpecialFields {
		tokens[Token(field.Key)] = FormatDate(f.SpecialDates[field.Key])
	}

	return tokens
}

// resolvePricing formats each service price, then adds the account
// management fee (10% of the services, truncated), the total with the
// currency's tax note and the flat additional-feature price.
func resolvePricing(v Variant, prices map[string]int64, cur Currency) TokenMap {
	tokens := make(TokenMap, len(v.PricingFields)+len(derivedPriceKeys))

	var sum int64
	for _, field := range v.PricingFields {
		value := prices[field.Key]
		if value > 0 {
			tokens[Token(field.Key)] = FormatCurrency(value, cur)
			sum += value
		} else {
			tokens[Token(field.Key)] = ""
		}
	}

	accountManagement := sum / 10
	total := sum + accountManagement

	tokens[Token(accountManagementKey)] = FormatCurrency(accountManagement, cur)
	tokens[Token(totalPriceKey)] = FormatCurrency(total, cur) + cur.TaxNote
	tokens[Token(additionalFeatureKey)] = FormatCurrency(cur.AdditionalFeaturePrice, cur)
	return tokens
}

// Describe lists each token of the variant with a human label, in
// resolution order. Used to document what a template may reference.
func (v Variant) Describe() [][2]string {
	var out [][2]string
	add := func(key, label string) { out = append(out, [2]string{Token(key), label}) }

	for _, key := range clientKeys {
		add(key, key)
	}
	for _, f := range v.PricingFields {
		add(f.Key, fmt.Sprintf("%s price", f.Label))
	}
	add(accountManagementKey, "Account management (10% of services)")
	add(totalPriceKey, "Total price")
	add(additionalFeatureKey, "Additional feature price")
	for _, r := range v.TeamRoles {
		add(r.Key, fmt.Sprintf("%s count", r.Label))
	}
	for i, key := range toolKeys(0) {
		add(key, fmt.Sprintf("Additional tool %d", i+1))
	}
	for _, f := range v.SpecialFields {
		add(f.Key, f.Label)
	}
	return out
}
