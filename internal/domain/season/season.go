package season

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// Season is a bounded operating period used to scope reporting.
// At most one season is active at a time.
type Season struct {
	shared.BaseEntity
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `json:"is_active"`
}

// NewSeason builds a season that will become the active one
func NewSeason(name string, start time.Time, end *time.Time) (*Season, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "season name cannot be empty")
	}
	if start.IsZero() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "season start date is required")
	}
	if end != nil && !end.After(start) {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "season end date must be after start date")
	}
	return &Season{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		StartDate:  start,
		EndDate:    end,
		IsActive:   true,
	}, nil
}

// Repository persists seasons
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Season, error)
	// FindActive returns NOT_FOUND when no season is active.
	FindActive(ctx context.Context) (*Season, error)
	// StartNew deactivates every season and inserts s as the active one in a
	// single transaction.
	StartNew(ctx context.Context, s *Season) error
}
