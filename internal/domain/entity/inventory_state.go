package entity

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// MaxUnits máximo de unidades que puede sumar todo el inventario. Cabe en un entero
// exacto de JSON (2^53) y mantiene las sumas de int64 lejos del desborde.
const MaxUnits int64 = 1_000_000_000_000_000

// ProductState estado derivado de un producto: datos del alta y cantidades por ubicación.
type ProductState struct {
	SKU       string
	Name      string
	Price     decimal.Decimal
	Category  string
	Locations map[string]int64 // ausencia de ubicación == 0
}

// InventoryState estado de inventario ("world state") derivado de la cadena.
// Nunca se persiste como fuente de verdad: se recalcula reproduciendo los bloques.
type InventoryState struct {
	Products map[string]*ProductState
}

// NewInventoryState crea un estado vacío.
func NewInventoryState() *InventoryState {
	return &InventoryState{Products: make(map[string]*ProductState)}
}

// Product devuelve el producto o nil.
func (s *InventoryState) Product(sku string) *ProductState {
	return s.Products[sku]
}

// Has indica si el SKU existe.
func (s *InventoryState) Has(sku string) bool {
	_, ok := s.Products[sku]
	return ok
}

// Quantity cantidad de sku en location (0 si no existe).
func (s *InventoryState) Quantity(sku, location string) int64 {
	p := s.Products[sku]
	if p == nil {
		return 0
	}
	return p.Locations[location]
}

// SortedSKUs SKUs en orden ascendente.
func (s *InventoryState) SortedSKUs() []string {
	skus := make([]string, 0, len(s.Products))
	for sku := range s.Products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// TotalUnits suma de unidades en todas las ubicaciones de todos los productos.
func (s *InventoryState) TotalUnits() int64 {
	var total int64
	for _, p := range s.Products {
		total = addUnits(total, p.Total())
	}
	return total
}

// Clone copia profunda; el llamador puede mutarla sin afectar al original.
func (s *InventoryState) Clone() *InventoryState {
	out := NewInventoryState()
	for sku, p := range s.Products {
		out.Products[sku] = p.Clone()
	}
	return out
}

// Total unidades del producto en todas sus ubicaciones.
func (p *ProductState) Total() int64 {
	var total int64
	for _, q := range p.Locations {
		total = addUnits(total, q)
	}
	return total
}

// SortedLocations ubicaciones en orden ascendente.
func (p *ProductState) SortedLocations() []string {
	locs := make([]string, 0, len(p.Locations))
	for loc := range p.Locations {
		locs = append(locs, loc)
	}
	sort.Strings(locs)
	return locs
}

// Clone copia profunda del producto.
func (p *ProductState) Clone() *ProductState {
	cp := *p
	cp.Locations = make(map[string]int64, len(p.Locations))
	for loc, q := range p.Locations {
		cp.Locations[loc] = q
	}
	return &cp
}

// addUnits suma cantidades no negativas saturando en math.MaxInt64.
func addUnits(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
