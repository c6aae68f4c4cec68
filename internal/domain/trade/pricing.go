package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceSource tells where a delivery's unit price came from
type PriceSource string

const (
	PriceFromSale     PriceSource = "sale"
	PriceFromPurchase PriceSource = "purchase"
	PriceFromLegacy   PriceSource = "legacy_description"
	PriceUnresolved   PriceSource = "unpriced"
)

// PricedDelivery is a delivery annotated with its recovered commercial price.
// Unpriced deliveries carry a zero total and Unpriced=true; they are never
// to be read as free.
type PricedDelivery struct {
	Delivery
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PriceSource PriceSource     `json:"price_source"`
	Unpriced    bool            `json:"unpriced"`
}

// PriceBook holds every price known for one contact's deliveries.
type PriceBook struct {
	SalePrices     map[uuid.UUID]decimal.Decimal
	PurchasePrices map[uuid.UUID]decimal.Decimal
	// FallbackIDs are delivery ids reached through purchase-referenced
	// account transactions; only these may use LegacyPrice.
	FallbackIDs map[uuid.UUID]struct{}
	LegacyPrice *decimal.Decimal
}

// Resolve picks a unit price for d: the linked sale first, then the linked
// purchase, then the contact-wide legacy price for fallback deliveries.
func (b PriceBook) Resolve(d Delivery) (decimal.Decimal, PriceSource) {
	if d.SaleID != nil {
		if p, ok := b.SalePrices[*d.SaleID]; ok {
			return p, PriceFromSale
		}
	}
	if d.PurchaseID != nil {
		if p, ok := b.PurchasePrices[*d.PurchaseID]; ok {
			return p, PriceFromPurchase
		}
	}
	if b.LegacyPrice != nil {
		if _, ok := b.FallbackIDs[d.ID]; ok {
			return *b.LegacyPrice, PriceFromLegacy
		}
	}
	return decimal.Zero, PriceUnresolved
}

// Price annotates every delivery with its unit price and total amount.
func (b PriceBook) Price(ds []Delivery) []PricedDelivery {
	out := make([]PricedDelivery, 0, len(ds))
	for _, d := range ds {
		price, src := b.Resolve(d)
		pd := PricedDelivery{Delivery: d, UnitPrice: price, PriceSource: src}
		if src == PriceUnresolved {
			pd.TotalAmount = decimal.Zero
			pd.Unpriced = true
		} else {
			pd.TotalAmount = d.NetWeight.Mul(price)
		}
		out = append(out, pd)
	}
	return out
}
