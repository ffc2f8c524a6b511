package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")

	// Rechazos de validación del motor de transacciones (recuperables).
	ErrDuplicateSku      = errors.New("el SKU ya existe")
	ErrUnknownSku        = errors.New("SKU desconocido")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrSameLocation      = errors.New("origen y destino son la misma ubicación")
	ErrQuantityLimit     = errors.New("la cantidad supera el máximo de unidades del inventario")

	// ErrUnexpectedGenesis: se intentó aplicar una transacción GENESIS fuera del bloque 0.
	// Es un error de programación, no de datos.
	ErrUnexpectedGenesis = errors.New("transacción génesis fuera del bloque 0")

	// ErrPersist: la cadena validada no pudo guardarse; el estado en memoria no cambia.
	ErrPersist = errors.New("no se pudo persistir la cadena")
)

// Códigos de rechazo expuestos a la API.
const (
	CodeDuplicateSku      = "DUPLICATE_SKU"
	CodeUnknownSku        = "UNKNOWN_SKU"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeSameLocation      = "SAME_LOCATION"
	CodeQuantityLimit     = "QUANTITY_LIMIT"
)

// RejectionError detalle de un rechazo del motor de transacciones.
// Unwrap devuelve el sentinel correspondiente, así que errors.Is sigue funcionando.
type RejectionError struct {
	Code      string
	SKU       string
	Location  string
	Available int64
	Requested int64
}

func (e *RejectionError) Error() string {
	switch e.Code {
	case CodeInsufficientStock:
		return fmt.Sprintf("stock insuficiente de %s en %s: disponible %d, solicitado %d",
			e.SKU, e.Location, e.Available, e.Requested)
	case CodeSameLocation:
		return fmt.Sprintf("no se puede mover %s a su misma ubicación (%s)", e.SKU, e.Location)
	case CodeDuplicateSku:
		return fmt.Sprintf("el producto %s ya existe", e.SKU)
	case CodeUnknownSku:
		return fmt.Sprintf("producto %s no encontrado", e.SKU)
	case CodeQuantityLimit:
		return fmt.Sprintf("no caben %d unidades de %s: quedan %d antes del máximo", e.Requested, e.SKU, e.Available)
	}
	return e.Code
}

func (e *RejectionError) Unwrap() error {
	switch e.Code {
	case CodeDuplicateSku:
		return ErrDuplicateSku
	case CodeUnknownSku:
		return ErrUnknownSku
	case CodeInsufficientStock:
		return ErrInsufficientStock
	case CodeSameLocation:
		return ErrSameLocation
	case CodeQuantityLimit:
		return ErrQuantityLimit
	}
	return nil
}

// IsRejection indica si err es un rechazo de validación (recuperable, culpa del cliente).
func IsRejection(err error) bool {
	return errors.Is(err, ErrDuplicateSku) ||
		errors.Is(err, ErrUnknownSku) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrSameLocation) ||
		errors.Is(err, ErrQuantityLimit) ||
		errors.Is(err, ErrInvalidInput)
}
