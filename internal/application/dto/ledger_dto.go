package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ProposeTransactionRequest cuerpo de POST /api/ledger/transactions.
// Los campos aplicables dependen de txType:
//   - CREATE_ITEM: itemSku, itemName, quantity, toLocation, price, category (opcional)
//   - STOCK_IN / STOCK_OUT: itemSku, quantity, location
//   - MOVE: itemSku, quantity, fromLocation, toLocation
type ProposeTransactionRequest struct {
	TxType       string          `json:"txType"`
	ItemSku      string          `json:"itemSku"`
	ItemName     string          `json:"itemName,omitempty"`
	Quantity     int64           `json:"quantity"`
	Location     string          `json:"location,omitempty"`
	FromLocation string          `json:"fromLocation,omitempty"`
	ToLocation   string          `json:"toLocation,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category,omitempty"`
}

// BlockDTO bloque tal como se hashea: transaction es la codificación canónica.
type BlockDTO struct {
	Index        int64           `json:"index"`
	Timestamp    string          `json:"timestamp"`
	Transaction  json.RawMessage `json:"transaction" swaggertype:"object"`
	PreviousHash string          `json:"previousHash"`
	Hash         string          `json:"hash"`
}

// BlocksResponse página de bloques (del más antiguo al más reciente).
type BlocksResponse struct {
	Blocks []BlockDTO   `json:"blocks"`
	Page   PageResponse `json:"page"`
}

// VerificationDTO resultado de GET /api/ledger/verify.
type VerificationDTO struct {
	Valid         bool   `json:"valid"`
	Length        int    `json:"length"`
	HashAlgorithm string `json:"hashAlgorithm"`
	Index         *int64 `json:"index,omitempty"` // primer bloque inválido
	Reason        string `json:"reason,omitempty"`
	Expected      string `json:"expected,omitempty"`
	Actual        string `json:"actual,omitempty"`
}
