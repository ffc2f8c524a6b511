package dto

import "github.com/shopspring/decimal"

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	TotalUnits  int64           `json:"totalUnits"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	SKUCount    int             `json:"skuCount"`
	ChainLength int             `json:"chainLength"`
	Recent      []BlockDTO      `json:"recent"`   // últimos 5 movimientos
	LowStock    []LowStockDTO   `json:"lowStock"` // 0 < stock <= umbral, de menor a mayor
}

// LowStockDTO producto con existencias bajas.
type LowStockDTO struct {
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}
