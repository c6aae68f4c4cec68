package report

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
)

// Ranked is a generic (id, metric) pair before name resolution
type Ranked struct {
	ID     uuid.UUID
	Metric decimal.Decimal
}

// Top sorts totals by metric descending and keeps at most n entries.
// Ties are broken by id so repeated calls on the same input agree.
func Top(totals map[uuid.UUID]decimal.Decimal, n int) []Ranked {
	out := make([]Ranked, 0, len(totals))
	for id, m := range totals {
		out = append(out, Ranked{ID: id, Metric: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Metric.Cmp(out[j].Metric); c != 0 {
			return c > 0
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// IDs returns the ids of ranked entries in rank order
func IDs(rs []Ranked) []uuid.UUID {
	ids := make([]uuid.UUID, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

// TonnageByContact folds delivery weight per sale (or purchase) into weight
// per contact, using owners to map each document id to its contact.
// Deliveries whose document is unknown are skipped.
func TonnageByContact(perDocument map[uuid.UUID]decimal.Decimal, owners map[uuid.UUID]uuid.UUID) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for docID, w := range perDocument {
		contactID, ok := owners[docID]
		if !ok {
			continue
		}
		out[contactID] = out[contactID].Add(w)
	}
	return out
}

// TonnageByDocument sums delivery weight per linked sale and per linked purchase
func TonnageByDocument(ds []trade.Delivery) (bySale, byPurchase map[uuid.UUID]decimal.Decimal) {
	bySale = make(map[uuid.UUID]decimal.Decimal)
	byPurchase = make(map[uuid.UUID]decimal.Decimal)
	for _, d := range ds {
		if d.SaleID != nil {
			bySale[*d.SaleID] = bySale[*d.SaleID].Add(d.NetWeight)
		}
		if d.PurchaseID != nil {
			byPurchase[*d.PurchaseID] = byPurchase[*d.PurchaseID].Add(d.NetWeight)
		}
	}
	return bySale, byPurchase
}

// FreightByCarrier sums carrier transaction amounts per carrier
func FreightByCarrier(txs []carrier.Transaction) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, tx := range txs {
		out[tx.CarrierID] = out[tx.CarrierID].Add(tx.Amount)
	}
	return out
}

// SumAmounts totals account transaction amounts
func SumAmounts(txs []ledger.AccountTransaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// SumCarrierAmounts totals carrier transaction amounts
func SumCarrierAmounts(txs []carrier.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// FeedTypeDistribution sums delivery weight per feed-type name. Deliveries
// whose document or feed type cannot be resolved count as OtherFeedType.
// The result is sorted by tonnage descending, then by name in Turkish order.
func FeedTypeDistribution(ds []trade.Delivery, docFeedType map[uuid.UUID]uuid.UUID, names map[uuid.UUID]string) []FeedTypeTonnage {
	totals := make(map[string]decimal.Decimal)
	for _, d := range ds {
		label := OtherFeedType
		var docID *uuid.UUID
		if d.SaleID != nil {
			docID = d.SaleID
		} else if d.PurchaseID != nil {
			docID = d.PurchaseID
		}
		if docID != nil {
			if ft, ok := docFeedType[*docID]; ok {
				if name, ok := names[ft]; ok && name != "" {
					label = name
				}
			}
		}
		totals[label] = totals[label].Add(d.NetWeight)
	}

	out := make([]FeedTypeTonnage, 0, len(totals))
	for name, t := range totals {
		out = append(out, FeedTypeTonnage{FeedType: name, Tonnage: t})
	}
	col := collate.New(language.Turkish)
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Tonnage.Cmp(out[j].Tonnage); c != 0 {
			return c > 0
		}
		return col.CompareString(out[i].FeedType, out[j].FeedType) < 0
	})
	return out
}
