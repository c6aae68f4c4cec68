package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
)

// QueryPolicy bounds a read with a per-attempt timeout and retries
// transient failures with exponential backoff.
type QueryPolicy struct {
	Timeout        time.Duration
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultQueryPolicy returns the policy used when none is configured
func DefaultQueryPolicy() QueryPolicy {
	return QueryPolicy{
		Timeout:        5 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     2 * time.Second,
	}
}

// QueryPolicyFromConfig builds a policy from configuration
func QueryPolicyFromConfig(cfg config.QueryConfig) QueryPolicy {
	return QueryPolicy{
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
	}
}

// Read runs fn under the policy. fn receives a context carrying the attempt
// deadline. Non-transient errors are returned after the first attempt.
func (p QueryPolicy) Read(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.InitialBackoff
	eb.MaxInterval = p.MaxBackoff
	eb.MaxElapsedTime = 0

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)

	err := backoff.Retry(func() error {
		attemptCtx, cancel := p.attemptContext(ctx)
		defer cancel()

		err := fn(attemptCtx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b)
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, shared.ErrUnavailable, err)
	}
	return err
}

func (p QueryPolicy) attemptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.Timeout)
}

// IsTransient reports whether err is worth retrying: dropped connections,
// attempt timeouts and the PostgreSQL error classes for connection loss,
// serialization failures and resource exhaustion.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "53300", "57P01", "57P02", "57P03":
			return true
		}
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}
	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
