package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// TxType discriminador de la transacción dentro del bloque.
type TxType string

// Tipos de transacción del ledger.
const (
	TxGenesis    TxType = "GENESIS"
	TxCreateItem TxType = "CREATE_ITEM"
	TxStockIn    TxType = "STOCK_IN"
	TxStockOut   TxType = "STOCK_OUT"
	TxMove       TxType = "MOVE"
)

// SchemaVersion versión del esquema de atributos de las transacciones no génesis.
// Cualquier campo nuevo que entre al hash debe subir este número.
const SchemaVersion = 1

// DefaultCategory categoría asignada cuando el producto se crea sin una.
const DefaultCategory = "Uncategorized"

// Transaction es la unión etiquetada de transacciones. Sólo los tipos de este paquete la implementan.
type Transaction interface {
	Kind() TxType
	// Subject devuelve el SKU afectado ("" para GENESIS).
	Subject() string
	// Attributes devuelve el mapa exacto que se persiste y se hashea.
	Attributes() map[string]any
	isTransaction()
}

// Actor identidad de quien registra la transacción (procedencia).
type Actor struct {
	ID         string
	EmployeeID string
	Name       string
}

// CanonicalValue implementa canonical.Marshaler.
func (a Actor) CanonicalValue() any {
	return map[string]any{"id": a.ID, "employeeId": a.EmployeeID, "name": a.Name}
}

// LocationPair cantidades en origen y destino de un traslado.
type LocationPair struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// CanonicalValue implementa canonical.Marshaler.
func (p LocationPair) CanonicalValue() any {
	return map[string]any{"from": p.From, "to": p.To}
}

// Genesis transacción vacía del bloque 0.
type Genesis struct{}

// CreateItem alta de un producto con su cantidad inicial en una ubicación.
type CreateItem struct {
	SchemaVersion  int
	SKU            string
	Name           string
	Quantity       int64
	ToLocation     string
	Price          decimal.Decimal
	Category       string
	BeforeQuantity int64
	AfterQuantity  int64
	Actor          Actor
	At             time.Time
}

// StockIn entrada de unidades en una ubicación.
type StockIn struct {
	SchemaVersion  int
	SKU            string
	Quantity       int64
	Location       string
	BeforeQuantity int64
	AfterQuantity  int64
	Actor          Actor
	At             time.Time
}

// StockOut salida de unidades de una ubicación.
type StockOut struct {
	SchemaVersion  int
	SKU            string
	Quantity       int64
	Location       string
	BeforeQuantity int64
	AfterQuantity  int64
	Actor          Actor
	At             time.Time
}

// Move traslado de unidades entre dos ubicaciones del mismo producto.
type Move struct {
	SchemaVersion  int
	SKU            string
	Quantity       int64
	FromLocation   string
	ToLocation     string
	BeforeQuantity LocationPair
	AfterQuantity  LocationPair
	Actor          Actor
	At             time.Time
}

func (Genesis) Kind() TxType    { return TxGenesis }
func (CreateItem) Kind() TxType { return TxCreateItem }
func (StockIn) Kind() TxType    { return TxStockIn }
func (StockOut) Kind() TxType   { return TxStockOut }
func (Move) Kind() TxType       { return TxMove }

func (Genesis) Subject() string      { return "" }
func (t CreateItem) Subject() string { return t.SKU }
func (t StockIn) Subject() string    { return t.SKU }
func (t StockOut) Subject() string   { return t.SKU }
func (t Move) Subject() string       { return t.SKU }

func (Genesis) isTransaction()    {}
func (CreateItem) isTransaction() {}
func (StockIn) isTransaction()    {}
func (StockOut) isTransaction()   {}
func (Move) isTransaction()       {}

func (Genesis) Attributes() map[string]any {
	return map[string]any{"txType": string(TxGenesis)}
}

func (t CreateItem) Attributes() map[string]any {
	return map[string]any{
		"txType":         string(TxCreateItem),
		"schemaVersion":  t.SchemaVersion,
		"itemSku":        t.SKU,
		"itemName":       t.Name,
		"quantity":       t.Quantity,
		"toLocation":     t.ToLocation,
		"price":          t.Price,
		"category":       t.Category,
		"beforeQuantity": t.BeforeQuantity,
		"afterQuantity":  t.AfterQuantity,
		"actor":          t.Actor,
		"at":             t.At,
	}
}

func (t StockIn) Attributes() map[string]any {
	return stockAttributes(TxStockIn, t.SchemaVersion, t.SKU, t.Quantity, t.Location, t.BeforeQuantity, t.AfterQuantity, t.Actor, t.At)
}

func (t StockOut) Attributes() map[string]any {
	return stockAttributes(TxStockOut, t.SchemaVersion, t.SKU, t.Quantity, t.Location, t.BeforeQuantity, t.AfterQuantity, t.Actor, t.At)
}

func (t Move) Attributes() map[string]any {
	return map[string]any{
		"txType":         string(TxMove),
		"schemaVersion":  t.SchemaVersion,
		"itemSku":        t.SKU,
		"quantity":       t.Quantity,
		"fromLocation":   t.FromLocation,
		"toLocation":     t.ToLocation,
		"beforeQuantity": t.BeforeQuantity,
		"afterQuantity":  t.AfterQuantity,
		"actor":          t.Actor,
		"at":             t.At,
	}
}

func stockAttributes(kind TxType, version int, sku string, qty int64, location string, before, after int64, actor Actor, at time.Time) map[string]any {
	return map[string]any{
		"txType":         string(kind),
		"schemaVersion":  version,
		"itemSku":        sku,
		"quantity":       qty,
		"location":       location,
		"beforeQuantity": before,
		"afterQuantity":  after,
		"actor":          actor,
		"at":             at,
	}
}

// Normalize prepara un borrador recibido del exterior: recorta espacios, aplica NFC a
// identificadores y nombres, fija la versión de esquema y trunca At a milisegundos en UTC.
// No toca las cantidades antes/después: esas las calcula el motor al aplicar.
func Normalize(tx Transaction) Transaction {
	switch t := tx.(type) {
	case CreateItem:
		t.SchemaVersion = SchemaVersion
		t.SKU = clean(t.SKU)
		t.Name = clean(t.Name)
		t.ToLocation = clean(t.ToLocation)
		t.Category = clean(t.Category)
		if t.Category == "" {
			t.Category = DefaultCategory
		}
		t.Actor = cleanActor(t.Actor)
		t.At = truncate(t.At)
		return t
	case StockIn:
		t.SchemaVersion = SchemaVersion
		t.SKU = clean(t.SKU)
		t.Location = clean(t.Location)
		t.Actor = cleanActor(t.Actor)
		t.At = truncate(t.At)
		return t
	case StockOut:
		t.SchemaVersion = SchemaVersion
		t.SKU = clean(t.SKU)
		t.Location = clean(t.Location)
		t.Actor = cleanActor(t.Actor)
		t.At = truncate(t.At)
		return t
	case Move:
		t.SchemaVersion = SchemaVersion
		t.SKU = clean(t.SKU)
		t.FromLocation = clean(t.FromLocation)
		t.ToLocation = clean(t.ToLocation)
		t.Actor = cleanActor(t.Actor)
		t.At = truncate(t.At)
		return t
	}
	return tx
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func cleanActor(a Actor) Actor {
	return Actor{ID: clean(a.ID), EmployeeID: clean(a.EmployeeID), Name: clean(a.Name)}
}

func truncate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
