package trade

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// legacyPricePattern matches notes such as "25.000 kg × 4,75 ₺/kg".
var legacyPricePattern = regexp.MustCompile(`×\s*([\d.,]+)\s*₺/kg`)

// RecoverLegacyUnitPrice extracts a unit price from the free-text
// description written by the old quick-shipment flow. Numbers use the
// Turkish format: "." groups thousands and "," is the decimal separator.
//
// This is technical debt. It depends on the exact wording of historical
// notes and must stay confined to the fallback pricing path.
func RecoverLegacyUnitPrice(description string) (decimal.Decimal, bool) {
	m := legacyPricePattern.FindStringSubmatch(description)
	if m == nil {
		return decimal.Zero, false
	}
	normalized := strings.ReplaceAll(m[1], ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	price, err := decimal.NewFromString(normalized)
	if err != nil || !price.IsPositive() {
		return decimal.Zero, false
	}
	return price, true
}

// FirstLegacyUnitPrice returns the price parsed from the first description
// that yields one.
func FirstLegacyUnitPrice(descriptions []string) (decimal.Decimal, bool) {
	for _, d := range descriptions {
		if p, ok := RecoverLegacyUnitPrice(d); ok {
			return p, true
		}
	}
	return decimal.Zero, false
}
