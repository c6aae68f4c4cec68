package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
)

// TopN is the length cap of every ranking in the season report
const TopN = 5

// OtherFeedType labels tonnage whose feed type cannot be resolved
const OtherFeedType = "Other"

// Accounting sign convention used by the season report. Revenue is the sum
// of sale-referenced debits and cost the sum of purchase-referenced credits.
// The convention is inherited from the existing ledger data and still awaits
// confirmation against a chart of accounts.
const (
	RevenueReference = ledger.ReferenceSale
	RevenueSide      = ledger.TransactionDebit
	CostReference    = ledger.ReferencePurchase
	CostSide         = ledger.TransactionCredit
	FreightType      = carrier.FreightCharge
)

// ContactTonnage ranks a customer or supplier by delivered weight
type ContactTonnage struct {
	ContactID uuid.UUID       `json:"contact_id"`
	Name      string          `json:"name"`
	Tonnage   decimal.Decimal `json:"tonnage"`
}

// CarrierFreight ranks a carrier by freight charged
type CarrierFreight struct {
	CarrierID uuid.UUID       `json:"carrier_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// FeedTypeTonnage is one slice of the feed-type distribution
type FeedTypeTonnage struct {
	FeedType string          `json:"feed_type"`
	Tonnage  decimal.Decimal `json:"tonnage"`
}

// SeasonReport is the financial and operational summary of one season
type SeasonReport struct {
	SeasonID             uuid.UUID         `json:"season_id"`
	SeasonName           string            `json:"season_name"`
	TotalDeliveries      int               `json:"total_deliveries"`
	TotalTonnage         decimal.Decimal   `json:"total_tonnage"`
	TotalRevenue         decimal.Decimal   `json:"total_revenue"`
	TotalCost            decimal.Decimal   `json:"total_cost"`
	TotalFreight         decimal.Decimal   `json:"total_freight"`
	NetProfit            decimal.Decimal   `json:"net_profit"`
	Margin               decimal.Decimal   `json:"margin"`
	TopCustomers         []ContactTonnage  `json:"top_customers"`
	TopSuppliers         []ContactTonnage  `json:"top_suppliers"`
	TopCarriers          []CarrierFreight  `json:"top_carriers"`
	FeedTypeDistribution []FeedTypeTonnage `json:"feed_type_distribution"`
}

// Financials returns net profit and margin percentage. Margin is zero when
// there is no revenue.
func Financials(revenue, cost, freight decimal.Decimal) (netProfit, margin decimal.Decimal) {
	netProfit = revenue.Sub(cost).Sub(freight)
	margin = decimal.Zero
	if revenue.IsPositive() {
		margin = netProfit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return netProfit, margin
}
