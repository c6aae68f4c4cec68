package report

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFinancials(t *testing.T) {
	t.Run("profit and margin", func(t *testing.T) {
		profit, margin := Financials(dec("100000"), dec("60000"), dec("10000"))
		assert.True(t, profit.Equal(dec("30000")), profit.String())
		assert.True(t, margin.Equal(dec("30.0")), margin.String())
	})

	t.Run("zero revenue has zero margin", func(t *testing.T) {
		profit, margin := Financials(decimal.Zero, dec("500"), dec("100"))
		assert.True(t, profit.Equal(dec("-600")))
		assert.True(t, margin.IsZero())
	})

	t.Run("margin is rounded to cents", func(t *testing.T) {
		_, margin := Financials(dec("3"), dec("2"), decimal.Zero)
		assert.Equal(t, "33.33", margin.String())
	})
}

func TestTop(t *testing.T) {
	totals := map[uuid.UUID]decimal.Decimal{}
	for i := 1; i <= 8; i++ {
		totals[uuid.New()] = decimal.NewFromInt(int64(i * 100))
	}

	top := Top(totals, TopN)
	require.Len(t, top, TopN)
	for i := 1; i < len(top); i++ {
		assert.True(t, top[i-1].Metric.GreaterThan(top[i].Metric), "must be strictly descending")
	}
	assert.True(t, top[0].Metric.Equal(dec("800")))

	t.Run("fewer than n entries", func(t *testing.T) {
		assert.Len(t, Top(map[uuid.UUID]decimal.Decimal{uuid.New(): dec("1")}, TopN), 1)
		assert.Empty(t, Top(nil, TopN))
	})

	t.Run("ties are stable across calls", func(t *testing.T) {
		tied := map[uuid.UUID]decimal.Decimal{}
		for i := 0; i < 7; i++ {
			tied[uuid.New()] = dec("42")
		}
		first := IDs(Top(tied, TopN))
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, IDs(Top(tied, TopN)))
		}
	})
}

func TestTonnageByContact(t *testing.T) {
	ali, veli := uuid.New(), uuid.New()
	s1, s2, s3, orphan := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ds := []trade.Delivery{
		{SaleID: &s1, NetWeight: dec("1000")},
		{SaleID: &s2, NetWeight: dec("2500")},
		{SaleID: &s1, NetWeight: dec("500")},
		{SaleID: &s3, NetWeight: dec("700")},
		{SaleID: &orphan, NetWeight: dec("9999")},
	}
	bySale, byPurchase := TonnageByDocument(ds)
	assert.Empty(t, byPurchase)
	assert.True(t, bySale[s1].Equal(dec("1500")))

	perContact := TonnageByContact(bySale, map[uuid.UUID]uuid.UUID{s1: ali, s2: veli, s3: ali})
	assert.Len(t, perContact, 2)
	assert.True(t, perContact[ali].Equal(dec("2200")))
	assert.True(t, perContact[veli].Equal(dec("2500")))
}

func TestFreightByCarrierAndSums(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	txs := []carrier.Transaction{
		{CarrierID: c1, Amount: dec("1500")},
		{CarrierID: c2, Amount: dec("700")},
		{CarrierID: c1, Amount: dec("250.5")},
	}
	per := FreightByCarrier(txs)
	assert.True(t, per[c1].Equal(dec("1750.5")))
	assert.True(t, SumCarrierAmounts(txs).Equal(dec("2450.5")))

	sum := SumAmounts([]ledger.AccountTransaction{{Amount: dec("10")}, {Amount: dec("0.25")}})
	assert.True(t, sum.Equal(dec("10.25")))
}

func TestFeedTypeDistribution(t *testing.T) {
	arpa, saman := uuid.New(), uuid.New()
	s1, s2, p1, unknown := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	ds := []trade.Delivery{
		{SaleID: &s1, NetWeight: dec("1000")},
		{SaleID: &s2, NetWeight: dec("3000")},
		{PurchaseID: &p1, NetWeight: dec("500")},
		{SaleID: &unknown, NetWeight: dec("200")},
		{NetWeight: dec("50")},
	}
	docFeed := map[uuid.UUID]uuid.UUID{s1: arpa, s2: saman, p1: arpa}
	names := map[uuid.UUID]string{arpa: "Arpa", saman: "Saman"}

	dist := FeedTypeDistribution(ds, docFeed, names)
	require.Len(t, dist, 3)
	assert.Equal(t, "Saman", dist[0].FeedType)
	assert.Equal(t, "Arpa", dist[1].FeedType)
	assert.True(t, dist[1].Tonnage.Equal(dec("1500")))
	assert.Equal(t, OtherFeedType, dist[2].FeedType)
	assert.True(t, dist[2].Tonnage.Equal(dec("250")))
}

func TestFeedTypeDistribution_TurkishOrderOnTies(t *testing.T) {
	var ds []trade.Delivery
	docFeed := map[uuid.UUID]uuid.UUID{}
	names := map[uuid.UUID]string{}
	for _, n := range []string{"Yonca", "Çavdar", "Buğday"} {
		doc, ft := uuid.New(), uuid.New()
		docFeed[doc] = ft
		names[ft] = n
		d := doc
		ds = append(ds, trade.Delivery{SaleID: &d, NetWeight: dec("100")})
	}

	dist := FeedTypeDistribution(ds, docFeed, names)
	got := make([]string, len(dist))
	for i, d := range dist {
		got[i] = d.FeedType
	}
	assert.Equal(t, []string{"Buğday", "Çavdar", "Yonca"}, got, fmt.Sprint(got))
}
