package preference

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/preference"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// PreferenceService exposes the per-user application state kept server side
type PreferenceService struct {
	store  preference.Store
	logger *zap.Logger
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(store preference.Store, logger *zap.Logger) *PreferenceService {
	return &PreferenceService{store: store, logger: logger}
}

// GetMessageTemplate returns the user's override of a message template.
// found is false when the built-in template applies.
func (s *PreferenceService) GetMessageTemplate(ctx context.Context, userID, name string) (body string, found bool, err error) {
	if err := preference.ValidateName(name); err != nil {
		return "", false, err
	}
	return s.store.Get(ctx, userID, preference.MessageTemplatePrefix+name)
}

// ListMessageTemplates returns every override keyed by template name
func (s *PreferenceService) ListMessageTemplates(ctx context.Context, userID string) (map[string]string, error) {
	raw, err := s.store.List(ctx, userID, preference.MessageTemplatePrefix)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[strings.TrimPrefix(k, preference.MessageTemplatePrefix)] = v
	}
	return out, nil
}

// SetMessageTemplate stores an override of a message template
func (s *PreferenceService) SetMessageTemplate(ctx context.Context, userID, name, body string) error {
	if err := preference.ValidateName(name); err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError(shared.CodeInvalidInput, "template body cannot be empty")
	}
	return s.store.Set(ctx, userID, preference.MessageTemplatePrefix+name, body)
}

// DeleteMessageTemplate restores the built-in template
func (s *PreferenceService) DeleteMessageTemplate(ctx context.Context, userID, name string) error {
	if err := preference.ValidateName(name); err != nil {
		return err
	}
	return s.store.Delete(ctx, userID, preference.MessageTemplatePrefix+name)
}

// ListShipmentTemplates returns the user's shipment templates sorted by name.
// Entries that no longer decode are skipped.
func (s *PreferenceService) ListShipmentTemplates(ctx context.Context, userID string) ([]preference.ShipmentTemplate, error) {
	raw, err := s.store.List(ctx, userID, preference.ShipmentTemplatePrefix)
	if err != nil {
		return nil, err
	}
	out := make([]preference.ShipmentTemplate, 0, len(raw))
	for key, value := range raw {
		var tpl preference.ShipmentTemplate
		if err := json.Unmarshal([]byte(value), &tpl); err != nil {
			s.logger.Warn("Skipping undecodable shipment template",
				zap.String("user_id", userID),
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		tpl.Name = strings.TrimPrefix(key, preference.ShipmentTemplatePrefix)
		out = append(out, tpl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SaveShipmentTemplate creates or replaces a shipment template by name
func (s *PreferenceService) SaveShipmentTemplate(ctx context.Context, userID string, tpl preference.ShipmentTemplate) error {
	tpl.Name = strings.TrimSpace(tpl.Name)
	if err := preference.ValidateName(tpl.Name); err != nil {
		return err
	}
	b, err := json.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("encode shipment template: %w", err)
	}
	return s.store.Set(ctx, userID, preference.ShipmentTemplatePrefix+tpl.Name, string(b))
}

// DeleteShipmentTemplate removes a shipment template
func (s *PreferenceService) DeleteShipmentTemplate(ctx context.Context, userID, name string) error {
	if err := preference.ValidateName(name); err != nil {
		return err
	}
	return s.store.Delete(ctx, userID, preference.ShipmentTemplatePrefix+name)
}

// GetBalanceVisible reports whether balances are shown. Defaults to true.
func (s *PreferenceService) GetBalanceVisible(ctx context.Context, userID string) (bool, error) {
	v, found, err := s.store.Get(ctx, userID, preference.KeyBalanceVisible)
	if err != nil || !found {
		return true, err
	}
	visible, err := strconv.ParseBool(v)
	if err != nil {
		return true, nil
	}
	return visible, nil
}

// SetBalanceVisible stores the balance visibility toggle
func (s *PreferenceService) SetBalanceVisible(ctx context.Context, userID string, visible bool) error {
	return s.store.Set(ctx, userID, preference.KeyBalanceVisible, strconv.FormatBool(visible))
}

// GetSeasonFilter returns the season the user filters lists by. Defaults to all seasons.
func (s *PreferenceService) GetSeasonFilter(ctx context.Context, userID string) (preference.SeasonFilter, error) {
	v, found, err := s.store.Get(ctx, userID, preference.KeySeasonFilter)
	if err != nil {
		return preference.SeasonFilter{}, err
	}
	if !found {
		return preference.SeasonFilter{All: true}, nil
	}
	f, err := preference.ParseSeasonFilter(v)
	if err != nil {
		return preference.SeasonFilter{All: true}, nil
	}
	return f, nil
}

// SetSeasonFilter stores the season filter
func (s *PreferenceService) SetSeasonFilter(ctx context.Context, userID string, f preference.SeasonFilter) error {
	return s.store.Set(ctx, userID, preference.KeySeasonFilter, f.String())
}
