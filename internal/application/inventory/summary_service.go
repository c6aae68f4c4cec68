package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/inventory"
)

// SummaryService reports stock on hand
type SummaryService struct {
	reader inventory.SummaryReader
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(reader inventory.SummaryReader) *SummaryService {
	return &SummaryService{reader: reader}
}

// ListInventorySummary returns stock per warehouse and feed type, optionally
// restricted to one warehouse
func (s *SummaryService) ListInventorySummary(ctx context.Context, warehouseID *uuid.UUID) ([]inventory.StockLevel, error) {
	levels, err := s.reader.ListStock(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	if levels == nil {
		levels = []inventory.StockLevel{}
	}
	return levels, nil
}
