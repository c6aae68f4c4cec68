package preference

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// Key prefixes and keys of the per-user key-value store
const (
	MessageTemplatePrefix  = "msg_template_override:"
	ShipmentTemplatePrefix = "shipment_template:"
	KeyBalanceVisible      = "balance_visible"
	KeySeasonFilter        = "season_filter"
)

// SeasonFilterAll selects every season instead of a single one
const SeasonFilterAll = "all"

// Store is an explicit per-user key-value storage abstraction
type Store interface {
	// Get reports false when the key is absent.
	Get(ctx context.Context, userID, key string) (string, bool, error)
	Set(ctx context.Context, userID, key, value string) error
	Delete(ctx context.Context, userID, key string) error
	// List returns every key under prefix with the prefix kept.
	List(ctx context.Context, userID, prefix string) (map[string]string, error)
}

// ShipmentTemplate is a saved set of defaults for a recurring shipment
type ShipmentTemplate struct {
	Name        string     `json:"name"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CarrierID   *uuid.UUID `json:"carrier_id,omitempty"`
	FeedTypeID  *uuid.UUID `json:"feed_type_id,omitempty"`
	PlateNumber string     `json:"plate_number,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// SeasonFilter is either "all" or a single season id
type SeasonFilter struct {
	All      bool       `json:"all"`
	SeasonID *uuid.UUID `json:"season_id,omitempty"`
}

// String encodes the filter as stored
func (f SeasonFilter) String() string {
	if f.All || f.SeasonID == nil {
		return SeasonFilterAll
	}
	return f.SeasonID.String()
}

// ParseSeasonFilter decodes a stored filter
func ParseSeasonFilter(s string) (SeasonFilter, error) {
	if s == "" || s == SeasonFilterAll {
		return SeasonFilter{All: true}, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return SeasonFilter{}, shared.NewDomainError(shared.CodeInvalidInput, "season filter must be 'all' or a season id")
	}
	return SeasonFilter{SeasonID: &id}, nil
}

// ValidateName checks a template or override name used inside a key
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError(shared.CodeInvalidInput, "name cannot exceed 100 characters")
	}
	return nil
}
