package carrier

import (
	"context"
	"fmt"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
)

// BalanceService lists what is owed to each carrier
type BalanceService struct {
	reader carrier.BalanceReader
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(reader carrier.BalanceReader) *BalanceService {
	return &BalanceService{reader: reader}
}

// ListCarrierBalances returns freight charged, paid and outstanding per carrier
func (s *BalanceService) ListCarrierBalances(ctx context.Context) ([]carrier.Balance, error) {
	balances, err := s.reader.ListBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("list carrier balances: %w", err)
	}
	if balances == nil {
		balances = []carrier.Balance{}
	}
	return balances, nil
}
