package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/canonical"
)

// DocumentVersion versión del formato persistido.
const DocumentVersion = 1

// ErrCorruptDocument el blob persistido no se pudo interpretar como cadena.
var ErrCorruptDocument = errors.New("chain: documento corrupto")

// Document cadena persistida junto con el algoritmo de hash con que se construyó.
type Document struct {
	Version       int
	HashAlgorithm string
	Blocks        []Block
}

type wireDocument struct {
	Version       int         `json:"version"`
	HashAlgorithm string      `json:"hashAlgorithm"`
	Blocks        []wireBlock `json:"blocks"`
}

type wireBlock struct {
	Index        int64           `json:"index"`
	Timestamp    string          `json:"timestamp"`
	Transaction  json.RawMessage `json:"transaction"`
	PreviousHash string          `json:"previousHash"`
	Hash         string          `json:"hash"`
}

type wireActor struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
}

// wireTransaction unión de todos los campos; txType decide cuáles aplican.
type wireTransaction struct {
	TxType         string          `json:"txType"`
	SchemaVersion  int             `json:"schemaVersion"`
	ItemSku        string          `json:"itemSku"`
	ItemName       string          `json:"itemName"`
	Quantity       int64           `json:"quantity"`
	Location       string          `json:"location"`
	FromLocation   string          `json:"fromLocation"`
	ToLocation     string          `json:"toLocation"`
	Price          decimal.Decimal `json:"price"`
	Category       string          `json:"category"`
	BeforeQuantity json.RawMessage `json:"beforeQuantity"`
	AfterQuantity  json.RawMessage `json:"afterQuantity"`
	Actor          wireActor       `json:"actor"`
	At             string          `json:"at"`
}

// Marshal serializa el documento. Cada transacción se escribe con su codificación canónica,
// es decir, exactamente los atributos que cubre el hash.
func Marshal(doc Document) ([]byte, error) {
	out := wireDocument{
		Version:       doc.Version,
		HashAlgorithm: doc.HashAlgorithm,
		Blocks:        make([]wireBlock, 0, len(doc.Blocks)),
	}
	if out.Version == 0 {
		out.Version = DocumentVersion
	}
	for _, b := range doc.Blocks {
		if b.Transaction == nil {
			return nil, fmt.Errorf("chain: bloque %d sin transacción", b.Index)
		}
		raw, err := canonical.Encode(b.Transaction.Attributes())
		if err != nil {
			return nil, fmt.Errorf("chain: serializar transacción del bloque %d: %w", b.Index, err)
		}
		out.Blocks = append(out.Blocks, wireBlock{
			Index:        b.Index,
			Timestamp:    canonical.FormatTime(b.Timestamp),
			Transaction:  raw,
			PreviousHash: b.PreviousHash,
			Hash:         b.Hash,
		})
	}
	return json.Marshal(out)
}

// Unmarshal interpreta un blob persistido. JSON inválido, una cadena vacía o un txType
// desconocido devuelven ErrCorruptDocument. Campos desconocidos se ignoran: si alteran
// el contenido hasheado, Validate lo reporta.
func Unmarshal(data []byte) (Document, error) {
	var in wireDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if len(in.Blocks) == 0 {
		return Document{}, fmt.Errorf("%w: cadena vacía", ErrCorruptDocument)
	}
	doc := Document{
		Version:       in.Version,
		HashAlgorithm: in.HashAlgorithm,
		Blocks:        make([]Block, 0, len(in.Blocks)),
	}
	if doc.HashAlgorithm == "" {
		doc.HashAlgorithm = AlgSHA256
	}
	for i, wb := range in.Blocks {
		ts, err := time.Parse(time.RFC3339Nano, wb.Timestamp)
		if err != nil {
			return Document{}, fmt.Errorf("%w: timestamp del bloque %d: %v", ErrCorruptDocument, i, err)
		}
		tx, err := decodeTransaction(wb.Transaction)
		if err != nil {
			return Document{}, fmt.Errorf("%w: transacción del bloque %d: %v", ErrCorruptDocument, i, err)
		}
		doc.Blocks = append(doc.Blocks, Block{
			Index:        wb.Index,
			Timestamp:    ts.UTC(),
			Transaction:  tx,
			PreviousHash: wb.PreviousHash,
			Hash:         wb.Hash,
		})
	}
	return doc, nil
}

func decodeTransaction(raw json.RawMessage) (entity.Transaction, error) {
	if len(raw) == 0 {
		return nil, errors.New("transacción ausente")
	}
	var w wireTransaction
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	if entity.TxType(w.TxType) == entity.TxGenesis {
		return entity.Genesis{}, nil
	}

	at, err := time.Parse(time.RFC3339Nano, w.At)
	if err != nil {
		return nil, fmt.Errorf("campo at: %w", err)
	}
	actor := entity.Actor{ID: w.Actor.ID, EmployeeID: w.Actor.EmployeeID, Name: w.Actor.Name}

	switch entity.TxType(w.TxType) {
	case entity.TxCreateItem:
		before, after, err := scalarSnapshots(w)
		if err != nil {
			return nil, err
		}
		return entity.CreateItem{
			SchemaVersion: w.SchemaVersion, SKU: w.ItemSku, Name: w.ItemName, Quantity: w.Quantity,
			ToLocation: w.ToLocation, Price: w.Price, Category: w.Category,
			BeforeQuantity: before, AfterQuantity: after, Actor: actor, At: at.UTC(),
		}, nil
	case entity.TxStockIn:
		before, after, err := scalarSnapshots(w)
		if err != nil {
			return nil, err
		}
		return entity.StockIn{
			SchemaVersion: w.SchemaVersion, SKU: w.ItemSku, Quantity: w.Quantity, Location: w.Location,
			BeforeQuantity: before, AfterQuantity: after, Actor: actor, At: at.UTC(),
		}, nil
	case entity.TxStockOut:
		before, after, err := scalarSnapshots(w)
		if err != nil {
			return nil, err
		}
		return entity.StockOut{
			SchemaVersion: w.SchemaVersion, SKU: w.ItemSku, Quantity: w.Quantity, Location: w.Location,
			BeforeQuantity: before, AfterQuantity: after, Actor: actor, At: at.UTC(),
		}, nil
	case entity.TxMove:
		var before, after entity.LocationPair
		if err := json.Unmarshal(w.BeforeQuantity, &before); err != nil {
			return nil, fmt.Errorf("beforeQuantity: %w", err)
		}
		if err := json.Unmarshal(w.AfterQuantity, &after); err != nil {
			return nil, fmt.Errorf("afterQuantity: %w", err)
		}
		return entity.Move{
			SchemaVersion: w.SchemaVersion, SKU: w.ItemSku, Quantity: w.Quantity,
			FromLocation: w.FromLocation, ToLocation: w.ToLocation,
			BeforeQuantity: before, AfterQuantity: after, Actor: actor, At: at.UTC(),
		}, nil
	}
	return nil, fmt.Errorf("txType desconocido %q", w.TxType)
}

func scalarSnapshots(w wireTransaction) (before, after int64, err error) {
	if err = json.Unmarshal(w.BeforeQuantity, &before); err != nil {
		return 0, 0, fmt.Errorf("beforeQuantity: %w", err)
	}
	if err = json.Unmarshal(w.AfterQuantity, &after); err != nil {
		return 0, 0, fmt.Errorf("afterQuantity: %w", err)
	}
	return before, after, nil
}
