package inventory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// LowStockThreshold umbral por defecto de stock bajo (unidades totales del producto).
const LowStockThreshold = 20

// LowStockItem producto con existencias bajas.
type LowStockItem struct {
	SKU   string
	Name  string
	Stock int64
}

// StockValue valor del inventario: Σ precio * unidades totales de cada producto.
func StockValue(state *entity.InventoryState) decimal.Decimal {
	total := decimal.Zero
	for _, p := range state.Products {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(p.Total())))
	}
	return total
}

// LowStock productos con 0 < stock <= threshold, del menor al mayor stock (desempate por SKU).
func LowStock(state *entity.InventoryState, threshold int64) []LowStockItem {
	var items []LowStockItem
	for _, sku := range state.SortedSKUs() {
		p := state.Products[sku]
		if total := p.Total(); total > 0 && total <= threshold {
			items = append(items, LowStockItem{SKU: sku, Name: p.Name, Stock: total})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Stock < items[j].Stock })
	return items
}

// Search SKUs cuyo nombre o SKU contiene query sin distinguir mayúsculas, en orden
// ascendente. Una búsqueda vacía devuelve todos.
func Search(state *entity.InventoryState, query string) []string {
	fold := cases.Fold()
	q := fold.String(norm.NFC.String(strings.TrimSpace(query)))
	skus := state.SortedSKUs()
	if q == "" {
		return skus
	}
	out := make([]string, 0, len(skus))
	for _, sku := range skus {
		p := state.Products[sku]
		if strings.Contains(fold.String(p.SKU), q) || strings.Contains(fold.String(p.Name), q) {
			out = append(out, sku)
		}
	}
	return out
}
