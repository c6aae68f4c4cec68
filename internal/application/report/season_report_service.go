package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/report"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/season"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
)

// SeasonReportService aggregates the financial and operational summary of a season
type SeasonReportService struct {
	seasons    season.Repository
	deliveries trade.DeliveryRepository
	txs        ledger.TransactionRepository
	carrierTxs carrier.TransactionRepository
	sales      trade.SaleRepository
	purchases  trade.PurchaseRepository
	contacts   ledger.ContactRepository
	carriers   carrier.Repository
	feedTypes  trade.FeedTypeRepository
	cache      shared.QueryCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// SeasonReportRepositories groups the readers the report depends on
type SeasonReportRepositories struct {
	Seasons      season.Repository
	Deliveries   trade.DeliveryRepository
	Transactions ledger.TransactionRepository
	CarrierTxs   carrier.TransactionRepository
	Sales        trade.SaleRepository
	Purchases    trade.PurchaseRepository
	Contacts     ledger.ContactRepository
	Carriers     carrier.Repository
	FeedTypes    trade.FeedTypeRepository
}

// NewSeasonReportService creates a new SeasonReportService. cache may be nil.
func NewSeasonReportService(repos SeasonReportRepositories, cache shared.QueryCache, cacheTTL time.Duration, logger *zap.Logger) *SeasonReportService {
	return &SeasonReportService{
		seasons:    repos.Seasons,
		deliveries: repos.Deliveries,
		txs:        repos.Transactions,
		carrierTxs: repos.CarrierTxs,
		sales:      repos.Sales,
		purchases:  repos.Purchases,
		contacts:   repos.Contacts,
		carriers:   repos.Carriers,
		feedTypes:  repos.FeedTypes,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// GetSeasonReport computes the summary of one season. Any failing read fails
// the whole report.
func (s *SeasonReportService) GetSeasonReport(ctx context.Context, seasonID uuid.UUID) (_ *report.SeasonReport, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "season_report", "get",
		attribute.String("season.id", seasonID.String()))
	defer func() { telemetry.EndSpan(span, err) }()

	key := shared.CacheKey(shared.CachePrefixSeasonReport, seasonID)
	return shared.Cached(ctx, s.cache, key, s.cacheTTL, func(ctx context.Context) (*report.SeasonReport, error) {
		start := time.Now()
		r, err := s.build(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Season report built",
			zap.String("season_id", seasonID.String()),
			zap.String("trace_id", telemetry.GetTraceID(ctx)),
			zap.Int("deliveries", r.TotalDeliveries),
			zap.Duration("elapsed", time.Since(start)))
		return r, nil
	})
}

func (s *SeasonReportService) build(ctx context.Context, seasonID uuid.UUID) (*report.SeasonReport, error) {
	sn, err := s.seasons.FindByID(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	var (
		deliveries []trade.Delivery
		revenueTxs []ledger.AccountTransaction
		costTxs    []ledger.AccountTransaction
		freightTxs []carrier.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deliveries, err = s.deliveries.ListBySeason(gctx, seasonID)
		return wrap("list deliveries", err)
	})
	g.Go(func() (err error) {
		revenueTxs, err = s.txs.ListBySeason(gctx, seasonID, report.RevenueReference, report.RevenueSide)
		return wrap("list revenue transactions", err)
	})
	g.Go(func() (err error) {
		costTxs, err = s.txs.ListBySeason(gctx, seasonID, report.CostReference, report.CostSide)
		return wrap("list cost transactions", err)
	})
	g.Go(func() (err error) {
		freightTxs, err = s.carrierTxs.ListBySeason(gctx, seasonID, report.FreightType)
		return wrap("list freight transactions", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := &report.SeasonReport{
		SeasonID:        sn.ID,
		SeasonName:      sn.Name,
		TotalDeliveries: len(deliveries),
		TotalTonnage:    trade.TotalTonnage(deliveries),
		TotalRevenue:    report.SumAmounts(revenueTxs),
		TotalCost:       report.SumAmounts(costTxs),
		TotalFreight:    report.SumCarrierAmounts(freightTxs),
	}
	r.NetProfit, r.Margin = report.Financials(r.TotalRevenue, r.TotalCost, r.TotalFreight)

	bySale, byPurchase := report.TonnageByDocument(deliveries)
	var (
		sales     []trade.Sale
		purchases []trade.Purchase
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		sales, err = s.sales.FindByIDs(gctx, keys(bySale))
		return wrap("find sales", err)
	})
	g.Go(func() (err error) {
		purchases, err = s.purchases.FindByIDs(gctx, keys(byPurchase))
		return wrap("find purchases", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	saleOwners := make(map[uuid.UUID]uuid.UUID, len(sales))
	purchaseOwners := make(map[uuid.UUID]uuid.UUID, len(purchases))
	docFeedType := make(map[uuid.UUID]uuid.UUID)
	for _, sl := range sales {
		saleOwners[sl.ID] = sl.ContactID
		if sl.FeedTypeID != nil {
			docFeedType[sl.ID] = *sl.FeedTypeID
		}
	}
	for _, p := range purchases {
		purchaseOwners[p.ID] = p.ContactID
		if p.FeedTypeID != nil {
			docFeedType[p.ID] = *p.FeedTypeID
		}
	}

	topCustomers := report.Top(report.TonnageByContact(bySale, saleOwners), report.TopN)
	topSuppliers := report.Top(report.TonnageByContact(byPurchase, purchaseOwners), report.TopN)
	topCarriers := report.Top(report.FreightByCarrier(freightTxs), report.TopN)

	var (
		contactNames  map[uuid.UUID]string
		carrierNames  map[uuid.UUID]string
		feedTypeNames map[uuid.UUID]string
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		ids := shared.UniqueIDs(append(report.IDs(topCustomers), report.IDs(topSuppliers)...))
		contacts, err := s.contacts.FindByIDs(gctx, ids)
		if err != nil {
			return wrap("resolve contact names", err)
		}
		contactNames = make(map[uuid.UUID]string, len(contacts))
		for _, c := range contacts {
			contactNames[c.ID] = c.Name
		}
		return nil
	})
	g.Go(func() error {
		cs, err := s.carriers.FindByIDs(gctx, report.IDs(topCarriers))
		if err != nil {
			return wrap("resolve carrier names", err)
		}
		carrierNames = make(map[uuid.UUID]string, len(cs))
		for _, c := range cs {
			carrierNames[c.ID] = c.Name
		}
		return nil
	})
	g.Go(func() error {
		fts, err := s.feedTypes.FindByIDs(gctx, shared.UniqueIDs(values(docFeedType)))
		if err != nil {
			return wrap("resolve feed types", err)
		}
		feedTypeNames = make(map[uuid.UUID]string, len(fts))
		for _, ft := range fts {
			feedTypeNames[ft.ID] = ft.Name
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.TopCustomers = contactTonnage(topCustomers, contactNames)
	r.TopSuppliers = contactTonnage(topSuppliers, contactNames)
	r.TopCarriers = make([]report.CarrierFreight, len(topCarriers))
	for i, rk := range topCarriers {
		r.TopCarriers[i] = report.CarrierFreight{CarrierID: rk.ID, Name: carrierNames[rk.ID], Amount: rk.Metric}
	}
	r.FeedTypeDistribution = report.FeedTypeDistribution(deliveries, docFeedType, feedTypeNames)
	return r, nil
}

func contactTonnage(ranked []report.Ranked, names map[uuid.UUID]string) []report.ContactTonnage {
	out := make([]report.ContactTonnage, len(ranked))
	for i, rk := range ranked {
		out[i] = report.ContactTonnage{ContactID: rk.ID, Name: names[rk.ID], Tonnage: rk.Metric}
	}
	return out
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func keys(m map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

func values(m map[uuid.UUID]uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for _, id := range m {
		out = append(out, id)
	}
	return out
}
