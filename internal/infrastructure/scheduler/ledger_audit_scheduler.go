package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	ledgerapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// LedgerAuditor verifies every account against its transaction history
type LedgerAuditor interface {
	AuditAll(ctx context.Context) (*ledgerapp.AuditResult, error)
}

// AuditRecorder receives the outcome of each completed audit
type AuditRecorder interface {
	RecordAudit(ctx context.Context, checked, inconsistent int, elapsed time.Duration)
}

// LedgerAuditScheduler runs the ledger audit on a cron schedule.
// A run still in progress when the next one is due causes that run to be skipped.
type LedgerAuditScheduler struct {
	cron       *cron.Cron
	auditor    LedgerAuditor
	spec       string
	jobTimeout time.Duration
	recorder   AuditRecorder
	logger     *zap.Logger

	mu      sync.Mutex
	started bool
	lastRun *ledgerapp.AuditResult
}

// NewLedgerAuditScheduler creates a scheduler for the configured cron expression
// (standard 5 fields: minute hour day-of-month month day-of-week).
func NewLedgerAuditScheduler(cfg config.SchedulerConfig, auditor LedgerAuditor, logger *zap.Logger) (*LedgerAuditScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := cron.ParseStandard(cfg.LedgerAuditCron); err != nil {
		return nil, fmt.Errorf("%w: ledger_audit_cron %q: %v", ErrInvalidConfig, cfg.LedgerAuditCron, err)
	}
	timeout := cfg.JobTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	cl := cronLogger{logger: logger.Sugar()}
	return &LedgerAuditScheduler{
		cron:       cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		auditor:    auditor,
		spec:       cfg.LedgerAuditCron,
		jobTimeout: timeout,
		logger:     logger,
	}, nil
}

// SetRecorder attaches r to receive audit outcomes. Call before Start.
func (s *LedgerAuditScheduler) SetRecorder(r AuditRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorder = r
}

// Start registers the audit job and starts the cron loop
func (s *LedgerAuditScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("schedule ledger audit: %w", err)
	}
	s.cron.Start()
	s.started = true
	s.logger.Info("Ledger audit scheduled", zap.String("cron", s.spec))
	return nil
}

// Stop stops the cron loop and waits for a running audit up to ctx
func (s *LedgerAuditScheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	started := s.started
	s.started = false
	s.mu.Unlock()
	if !started {
		return
	}

	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Ledger audit still running at shutdown")
	}
}

// RunNow performs one audit synchronously
func (s *LedgerAuditScheduler) RunNow(ctx context.Context) (*ledgerapp.AuditResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.auditor.AuditAll(ctx)
	if err != nil {
		s.logger.Error("Ledger audit failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, err
	}

	s.mu.Lock()
	s.lastRun = result
	recorder := s.recorder
	s.mu.Unlock()

	if recorder != nil {
		recorder.RecordAudit(ctx, result.Checked, len(result.Inconsistent), time.Since(start))
	}

	if len(result.Inconsistent) == 0 {
		s.logger.Info("Ledger audit completed",
			zap.Int("checked", result.Checked),
			zap.Duration("elapsed", time.Since(start)))
		return result, nil
	}

	for _, r := range result.Inconsistent {
		s.logger.Warn("Ledger account out of balance",
			zap.String("account_id", r.AccountID.String()),
			zap.String("contact_id", r.ContactID.String()),
			zap.Strings("discrepancies", r.Discrepancies))
	}
	s.logger.Warn("Ledger audit found inconsistent accounts",
		zap.Int("checked", result.Checked),
		zap.Int("inconsistent", len(result.Inconsistent)),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

// LastRun returns the result of the most recent successful audit
func (s *LedgerAuditScheduler) LastRun() *ledgerapp.AuditResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}

func (s *LedgerAuditScheduler) run() {
	_, _ = s.RunNow(context.Background())
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
