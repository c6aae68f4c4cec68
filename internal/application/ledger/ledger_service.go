package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/telemetry"
)

// ServiceConfig tunes the ledger services
type ServiceConfig struct {
	CacheTTL time.Duration
	// AuditConcurrency bounds concurrent account checks in AuditAll
	AuditConcurrency int
}

// DefaultServiceConfig returns default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		CacheTTL:         30 * time.Second,
		AuditConcurrency: 4,
	}
}

// LedgerService reads and posts per-contact account ledgers
type LedgerService struct {
	contacts  ledger.ContactRepository
	summaries ledger.SummaryReader
	accounts  ledger.AccountRepository
	txs       ledger.TransactionRepository
	poster    ledger.Poster
	cache     shared.QueryCache
	logger    *zap.Logger
	config    ServiceConfig
}

// NewLedgerService creates a new LedgerService. cache may be nil.
func NewLedgerService(
	contacts ledger.ContactRepository,
	summaries ledger.SummaryReader,
	accounts ledger.AccountRepository,
	txs ledger.TransactionRepository,
	poster ledger.Poster,
	cache shared.QueryCache,
	logger *zap.Logger,
	config ServiceConfig,
) *LedgerService {
	if config.AuditConcurrency <= 0 {
		config.AuditConcurrency = 1
	}
	return &LedgerService{
		contacts:  contacts,
		summaries: summaries,
		accounts:  accounts,
		txs:       txs,
		poster:    poster,
		cache:     cache,
		logger:    logger,
		config:    config,
	}
}

// GetContactLedger returns the balance, totals and newest-first history of a
// contact. A contact without an account yields a ledger with HasAccount=false.
func (s *LedgerService) GetContactLedger(ctx context.Context, contactID uuid.UUID) (*ledger.ContactLedger, error) {
	key := shared.CacheKey(shared.CachePrefixLedger, contactID)
	return shared.Cached(ctx, s.cache, key, s.config.CacheTTL, func(ctx context.Context) (*ledger.ContactLedger, error) {
		return s.loadLedger(ctx, contactID)
	})
}

func (s *LedgerService) loadLedger(ctx context.Context, contactID uuid.UUID) (*ledger.ContactLedger, error) {
	summary, err := s.summaries.SummaryForContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("load account summary: %w", err)
	}
	if summary.AccountID == nil {
		return ledger.NewContactLedger(*summary, nil), nil
	}

	txs, err := s.txs.ListByAccount(ctx, *summary.AccountID)
	if err != nil {
		return nil, fmt.Errorf("load account history: %w", err)
	}
	return ledger.NewContactLedger(*summary, txs), nil
}

// VerifyAccount recomputes a contact's totals from its transactions and
// reports any drift from the stored totals.
func (s *LedgerService) VerifyAccount(ctx context.Context, contactID uuid.UUID) (*ledger.AccountReconciliation, error) {
	if _, err := s.contacts.FindByID(ctx, contactID); err != nil {
		return nil, err
	}
	acc, err := s.accounts.FindByContactID(ctx, contactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "contact has no account yet")
		}
		return nil, err
	}
	return s.verify(ctx, *acc)
}

func (s *LedgerService) verify(ctx context.Context, acc ledger.Account) (*ledger.AccountReconciliation, error) {
	txs, err := s.txs.ListByAccount(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("load account history: %w", err)
	}
	r := ledger.Reconcile(acc, txs)
	return &r, nil
}

// PostTransactionInput is the request to post an account transaction
type PostTransactionInput struct {
	ContactID uuid.UUID
	ledger.NewTransactionInput
}

// PostTransaction books a transaction against a contact's account and
// invalidates every cached query derived from that account.
func (s *LedgerService) PostTransaction(ctx context.Context, in PostTransactionInput) (_ *ledger.AccountTransaction, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "post_transaction",
		attribute.String("contact.id", in.ContactID.String()),
		attribute.String("transaction.type", string(in.Type)))
	defer func() { telemetry.EndSpan(span, err) }()

	tx, err := ledger.NewTransaction(in.NewTransactionInput)
	if err != nil {
		return nil, err
	}
	acc, err := s.poster.Post(ctx, in.ContactID, tx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account transaction posted",
		zap.String("contact_id", in.ContactID.String()),
		zap.String("account_id", acc.ID.String()),
		zap.String("type", string(tx.Type)),
		zap.String("amount", tx.Amount.String()),
		zap.String("balance_after", tx.BalanceAfter.String()))

	s.invalidate(ctx, in.ContactID, tx.SeasonID)
	return tx, nil
}

func (s *LedgerService) invalidate(ctx context.Context, contactID uuid.UUID, seasonID *uuid.UUID) {
	if s.cache == nil {
		return
	}
	keys := []string{
		shared.CacheKey(shared.CachePrefixLedger, contactID),
		shared.CacheKey(shared.CachePrefixContactDeliveries, contactID),
	}
	if seasonID != nil {
		keys = append(keys, shared.CacheKey(shared.CachePrefixSeasonReport, *seasonID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate cached ledger", zap.Strings("keys", keys), zap.Error(err))
	}
}

// ListAccountSummaries lists contact balances
func (s *LedgerService) ListAccountSummaries(ctx context.Context, filter ledger.SummaryFilter) ([]ledger.AccountSummary, error) {
	if filter.ContactType != "" && !filter.ContactType.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "invalid contact type")
	}
	return s.summaries.ListSummaries(ctx, filter)
}

// AuditResult summarizes a run of AuditAll
type AuditResult struct {
	Checked      int                            `json:"checked"`
	Inconsistent []ledger.AccountReconciliation `json:"inconsistent"`
}

// AuditAll verifies every account and returns the inconsistent ones.
func (s *LedgerService) AuditAll(ctx context.Context) (*AuditResult, error) {
	accounts, err := s.accounts.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	results := make([]*ledger.AccountReconciliation, len(accounts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.AuditConcurrency)
	for i := range accounts {
		g.Go(func() error {
			r, err := s.verify(gctx, accounts[i])
			if err != nil {
				return fmt.Errorf("verify account %s: %w", accounts[i].ID, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &AuditResult{Checked: len(accounts), Inconsistent: []ledger.AccountReconciliation{}}
	for _, r := range results {
		if !r.Consistent() {
			out.Inconsistent = append(out.Inconsistent, *r)
		}
	}
	return out, nil
}
