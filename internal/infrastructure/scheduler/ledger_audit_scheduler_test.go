package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	ledgerapp "github.com/sakhalil42-svg/dedeagalar-sub001/internal/application/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

type MockLedgerAuditor struct {
	mock.Mock
}

func (m *MockLedgerAuditor) AuditAll(ctx context.Context) (*ledgerapp.AuditResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerapp.AuditResult), args.Error(1)
}

type recordedAudit struct {
	checked, inconsistent int
}

type fakeRecorder struct {
	runs []recordedAudit
}

func (r *fakeRecorder) RecordAudit(_ context.Context, checked, inconsistent int, _ time.Duration) {
	r.runs = append(r.runs, recordedAudit{checked: checked, inconsistent: inconsistent})
}

func testSchedulerConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		Enabled:         true,
		LedgerAuditCron: "0 3 * * *",
		JobTimeout:      time.Second,
	}
}

func TestNewLedgerAuditScheduler_InvalidCron(t *testing.T) {
	cfg := testSchedulerConfig()
	cfg.LedgerAuditCron = "every night"

	_, err := NewLedgerAuditScheduler(cfg, new(MockLedgerAuditor), zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLedgerAuditScheduler_RunNow(t *testing.T) {
	ctx := context.Background()

	t.Run("logs every inconsistent account", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		auditor := new(MockLedgerAuditor)
		bad := ledger.AccountReconciliation{
			AccountID:     uuid.New(),
			ContactID:     uuid.New(),
			Discrepancies: []string{"total_debit 100 != sum of debits 90"},
		}
		auditor.On("AuditAll", mock.Anything).Return(&ledgerapp.AuditResult{
			Checked:      12,
			Inconsistent: []ledger.AccountReconciliation{bad},
		}, nil)

		s, err := NewLedgerAuditScheduler(testSchedulerConfig(), auditor, zap.New(core))
		require.NoError(t, err)

		result, err := s.RunNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 12, result.Checked)
		assert.Equal(t, 1, logs.FilterMessage("Ledger account out of balance").Len())
		assert.Same(t, result, s.LastRun())
	})

	t.Run("clean audit", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		auditor := new(MockLedgerAuditor)
		auditor.On("AuditAll", mock.Anything).Return(&ledgerapp.AuditResult{Checked: 3, Inconsistent: []ledger.AccountReconciliation{}}, nil)

		s, err := NewLedgerAuditScheduler(testSchedulerConfig(), auditor, zap.New(core))
		require.NoError(t, err)

		_, err = s.RunNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("Ledger audit completed").Len())
	})

	t.Run("reports outcome to the recorder", func(t *testing.T) {
		auditor := new(MockLedgerAuditor)
		auditor.On("AuditAll", mock.Anything).Return(&ledgerapp.AuditResult{
			Checked:      4,
			Inconsistent: []ledger.AccountReconciliation{{AccountID: uuid.New()}},
		}, nil)

		s, err := NewLedgerAuditScheduler(testSchedulerConfig(), auditor, zap.NewNop())
		require.NoError(t, err)
		rec := &fakeRecorder{}
		s.SetRecorder(rec)

		_, err = s.RunNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, []recordedAudit{{checked: 4, inconsistent: 1}}, rec.runs)
	})

	t.Run("failure keeps previous result", func(t *testing.T) {
		auditor := new(MockLedgerAuditor)
		auditor.On("AuditAll", mock.Anything).Return(nil, errors.New("db down"))

		s, err := NewLedgerAuditScheduler(testSchedulerConfig(), auditor, zap.NewNop())
		require.NoError(t, err)

		_, err = s.RunNow(ctx)
		assert.Error(t, err)
		assert.Nil(t, s.LastRun())
	})

	t.Run("run is bounded by the job timeout", func(t *testing.T) {
		auditor := new(MockLedgerAuditor)
		auditor.On("AuditAll", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		})).Return(&ledgerapp.AuditResult{}, nil)

		s, err := NewLedgerAuditScheduler(testSchedulerConfig(), auditor, zap.NewNop())
		require.NoError(t, err)
		_, err = s.RunNow(ctx)
		require.NoError(t, err)
		auditor.AssertExpectations(t)
	})
}

func TestLedgerAuditScheduler_StartStop(t *testing.T) {
	s, err := NewLedgerAuditScheduler(testSchedulerConfig(), new(MockLedgerAuditor), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
	assert.Len(t, s.cron.Entries(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	// stopping twice is harmless
	s.Stop(ctx)
}
