package telemetry

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts continuous profiling of CPU, heap and goroutines.
// A disabled configuration yields a no-op profiler.
func NewProfiler(cfg config.ProfilingConfig, applicationName string, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.Enabled {
		return p, nil
	}
	if cfg.ServerAddress == "" {
		return nil, errors.New("profiler server address is required when profiling is enabled")
	}

	tags := map[string]string{}
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          &pyroscopeLogger{logger: logger.Named("pyroscope").Sugar()},
		Tags:            tags,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", applicationName))
	return p, nil
}

// IsEnabled returns whether profiles are being collected.
func (p *Profiler) IsEnabled() bool {
	return p.profiler != nil
}

// Stop flushes pending profiles. It is safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || p.profiler == nil {
		p.stopped = true
		return nil
	}
	p.stopped = true

	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop profiler: %w", err)
	}
	return nil
}

type pyroscopeLogger struct {
	logger *zap.SugaredLogger
}

func (l *pyroscopeLogger) Infof(format string, args ...any)  { l.logger.Debugf(format, args...) }
func (l *pyroscopeLogger) Debugf(format string, args ...any) { l.logger.Debugf(format, args...) }
func (l *pyroscopeLogger) Errorf(format string, args ...any) { l.logger.Errorf(format, args...) }
