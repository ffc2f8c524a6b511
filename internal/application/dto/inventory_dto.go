package dto

import "github.com/shopspring/decimal"

// InventoryItemDTO estado derivado de un producto.
type InventoryItemDTO struct {
	SKU       string           `json:"sku"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Category  string           `json:"category"`
	Total     int64            `json:"total"`
	Locations map[string]int64 `json:"locations"`
}

// InventoryResponse inventario completo ordenado por SKU.
type InventoryResponse struct {
	Items      []InventoryItemDTO `json:"items"`
	TotalUnits int64              `json:"totalUnits"` // de todo el inventario, sin filtrar
}

// ItemHistoryResponse historial de un SKU (más reciente primero).
type ItemHistoryResponse struct {
	SKU    string     `json:"sku"`
	Blocks []BlockDTO `json:"blocks"`
}
