package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrStaleSnapshot otro escritor avanzó la cadena guardada desde que se leyó.
var ErrStaleSnapshot = errors.New("la cadena guardada cambió: snapshot desactualizado")

// ChainSnapshot cadena serializada lista para guardarse. BlockCount, TailHash y TotalValue
// se guardan aparte del payload para poder consultarlos sin decodificarlo.
type ChainSnapshot struct {
	Payload    []byte
	BlockCount int
	TailHash   string
	TotalValue decimal.Decimal // valorización del inventario tras el último bloque
}

// Follows indica si el snapshot puede reemplazar una cadena guardada de stored bloques:
// agrega exactamente un bloque, o es un génesis nuevo (reinicio).
func (s ChainSnapshot) Follows(stored int) bool {
	return s.BlockCount == 1 || s.BlockCount == stored+1
}

// ChainStore define el puerto de persistencia de la cadena completa (un único blob por ledger).
// Save reemplaza atómicamente el blob anterior.
type ChainStore interface {
	// Load devuelve el último blob guardado; domain.ErrNotFound si no existe.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, snapshot ChainSnapshot) error
}
