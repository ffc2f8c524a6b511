// Package inventory contiene el motor de transacciones (valida y aplica movimientos sobre
// InventoryState) y la reconstrucción del estado a partir de la cadena.
package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Mode política de aplicación.
type Mode int

const (
	// Strict valida contra el estado actual y calcula las cantidades antes/después.
	// Se usa al proponer transacciones nuevas.
	Strict Mode = iota
	// Replay reproduce transacciones ya aceptadas: un alta duplicada es un no-op y las
	// cantidades antes/después registradas se conservan tal cual.
	Replay
)

func (m Mode) String() string {
	if m == Replay {
		return "replay"
	}
	return "strict"
}

// Apply valida tx contra state y, si es aceptada, muta state y devuelve la transacción
// aplicada (en Strict con BeforeQuantity/AfterQuantity calculados).
// En caso de rechazo state no cambia y el error es un *domain.RejectionError o domain.ErrInvalidInput.
func Apply(tx entity.Transaction, state *entity.InventoryState, mode Mode) (entity.Transaction, error) {
	if err := validatePayload(tx); err != nil {
		return nil, err
	}

	switch t := tx.(type) {
	case entity.Genesis:
		return nil, domain.ErrUnexpectedGenesis

	case entity.CreateItem:
		if state.Has(t.SKU) {
			if mode == Replay {
				return t, nil
			}
			return nil, &domain.RejectionError{Code: domain.CodeDuplicateSku, SKU: t.SKU}
		}
		if err := checkCapacity(state, t.SKU, t.Quantity); err != nil {
			return nil, err
		}
		state.Products[t.SKU] = &entity.ProductState{
			SKU:       t.SKU,
			Name:      t.Name,
			Price:     t.Price,
			Category:  t.Category,
			Locations: map[string]int64{t.ToLocation: t.Quantity},
		}
		if mode == Strict {
			t.BeforeQuantity = 0
			t.AfterQuantity = t.Quantity
		}
		return t, nil

	case entity.StockIn:
		p := state.Product(t.SKU)
		if p == nil {
			return nil, &domain.RejectionError{Code: domain.CodeUnknownSku, SKU: t.SKU}
		}
		if err := checkCapacity(state, t.SKU, t.Quantity); err != nil {
			return nil, err
		}
		before := p.Locations[t.Location]
		p.Locations[t.Location] = before + t.Quantity
		if mode == Strict {
			t.BeforeQuantity, t.AfterQuantity = before, before+t.Quantity
		}
		return t, nil

	case entity.StockOut:
		p := state.Product(t.SKU)
		if p == nil {
			return nil, &domain.RejectionError{Code: domain.CodeUnknownSku, SKU: t.SKU}
		}
		before := p.Locations[t.Location]
		if before < t.Quantity {
			return nil, &domain.RejectionError{
				Code: domain.CodeInsufficientStock, SKU: t.SKU, Location: t.Location,
				Available: before, Requested: t.Quantity,
			}
		}
		p.Locations[t.Location] = before - t.Quantity
		if mode == Strict {
			t.BeforeQuantity, t.AfterQuantity = before, before-t.Quantity
		}
		return t, nil

	case entity.Move:
		p := state.Product(t.SKU)
		if p == nil {
			return nil, &domain.RejectionError{Code: domain.CodeUnknownSku, SKU: t.SKU}
		}
		if t.FromLocation == t.ToLocation {
			return nil, &domain.RejectionError{Code: domain.CodeSameLocation, SKU: t.SKU, Location: t.FromLocation}
		}
		fromQty, toQty := p.Locations[t.FromLocation], p.Locations[t.ToLocation]
		if fromQty < t.Quantity {
			return nil, &domain.RejectionError{
				Code: domain.CodeInsufficientStock, SKU: t.SKU, Location: t.FromLocation,
				Available: fromQty, Requested: t.Quantity,
			}
		}
		p.Locations[t.FromLocation] = fromQty - t.Quantity
		p.Locations[t.ToLocation] = toQty + t.Quantity
		if mode == Strict {
			t.BeforeQuantity = entity.LocationPair{From: fromQty, To: toQty}
			t.AfterQuantity = entity.LocationPair{From: fromQty - t.Quantity, To: toQty + t.Quantity}
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: tipo de transacción %T", domain.ErrInvalidInput, tx)
}

// validatePayload revisa la forma del payload (independiente del estado).
func validatePayload(tx entity.Transaction) error {
	invalid := func(msg string) error { return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg) }
	switch t := tx.(type) {
	case nil:
		return invalid("transacción vacía")
	case entity.Genesis:
		return nil
	case entity.CreateItem:
		if t.SKU == "" || t.Name == "" || t.ToLocation == "" {
			return invalid("sku, nombre y ubicación son requeridos")
		}
		if err := validateQuantity(t.Quantity); err != nil {
			return err
		}
		if t.Price.LessThan(decimal.Zero) {
			return invalid("el precio no puede ser negativo")
		}
	case entity.StockIn:
		return validateStock(t.SKU, t.Location, t.Quantity)
	case entity.StockOut:
		return validateStock(t.SKU, t.Location, t.Quantity)
	case entity.Move:
		if t.SKU == "" || t.FromLocation == "" || t.ToLocation == "" {
			return invalid("sku, origen y destino son requeridos")
		}
		return validateQuantity(t.Quantity)
	}
	return nil
}

func validateStock(sku, location string, qty int64) error {
	if sku == "" || location == "" {
		return fmt.Errorf("%w: sku y ubicación son requeridos", domain.ErrInvalidInput)
	}
	return validateQuantity(qty)
}

func validateQuantity(qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if qty > entity.MaxUnits {
		return fmt.Errorf("%w: la cantidad supera el máximo de %d unidades", domain.ErrInvalidInput, entity.MaxUnits)
	}
	return nil
}

// checkCapacity rechaza entradas que llevarían el inventario por encima de entity.MaxUnits.
// Un traslado no cambia el total, así que ninguna ubicación puede desbordar.
func checkCapacity(state *entity.InventoryState, sku string, qty int64) error {
	room := entity.MaxUnits - state.TotalUnits()
	if qty > room {
		return &domain.RejectionError{Code: domain.CodeQuantityLimit, SKU: sku, Available: room, Requested: qty}
	}
	return nil
}
