package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// recentBlocks número de movimientos recientes del dashboard.
const recentBlocks = 5

// Dashboard KPIs derivados de la cadena.
type Dashboard struct {
	TotalUnits  int64
	TotalValue  decimal.Decimal
	SKUCount    int
	ChainLength int
	Recent      []chain.Block
	LowStock    []inventory.LowStockItem
}

// Dashboard calcula los KPIs sobre una misma vista de la cadena.
func (s *Service) Dashboard() Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dashboard{
		TotalUnits:  s.state.TotalUnits(),
		TotalValue:  inventory.StockValue(s.state),
		SKUCount:    len(s.state.Products),
		ChainLength: len(s.blocks),
		Recent:      inventory.Recent(s.blocks, recentBlocks),
		LowStock:    inventory.LowStock(s.state, s.lowStock),
	}
}
