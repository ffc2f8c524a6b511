package chain

import (
	"fmt"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/canonical"
)

// GenesisPreviousHash valor centinela del previousHash del bloque 0.
const GenesisPreviousHash = "0"

// Block entrada inmutable del ledger.
type Block struct {
	Index        int64
	Timestamp    time.Time
	Transaction  entity.Transaction
	PreviousHash string
	Hash         string
}

// IsGenesis indica si el bloque tiene la forma del bloque génesis.
func (b Block) IsGenesis() bool {
	_, ok := b.Transaction.(entity.Genesis)
	return b.Index == 0 && ok && b.PreviousHash == GenesisPreviousHash
}

// CreateGenesisBlock construye el bloque 0.
func CreateGenesisBlock(h Hasher, now time.Time) (Block, error) {
	return CreateBlock(h, 0, entity.Genesis{}, GenesisPreviousHash, now)
}

// CreateBlock sella el bloque con now (UTC, milisegundos) y calcula su hash.
// No agrega el bloque a ninguna cadena: eso es responsabilidad del llamador.
func CreateBlock(h Hasher, index int64, tx entity.Transaction, previousHash string, now time.Time) (Block, error) {
	b := Block{
		Index:        index,
		Timestamp:    now.UTC().Truncate(time.Millisecond),
		Transaction:  tx,
		PreviousHash: previousHash,
	}
	hash, err := HashBlock(h, b)
	if err != nil {
		return Block{}, err
	}
	b.Hash = hash
	return b, nil
}

// HashBlock recalcula el hash sobre {index, timestamp, transaction, previousHash}.
func HashBlock(h Hasher, b Block) (string, error) {
	if b.Transaction == nil {
		return "", fmt.Errorf("chain: bloque %d sin transacción", b.Index)
	}
	data, err := canonical.Encode(map[string]any{
		"index":        b.Index,
		"timestamp":    b.Timestamp,
		"transaction":  b.Transaction.Attributes(),
		"previousHash": b.PreviousHash,
	})
	if err != nil {
		return "", fmt.Errorf("chain: codificar bloque %d: %w", b.Index, err)
	}
	return h.Sum(data), nil
}

// Tail último bloque de la cadena (ok=false si está vacía).
func Tail(blocks []Block) (Block, bool) {
	if len(blocks) == 0 {
		return Block{}, false
	}
	return blocks[len(blocks)-1], true
}
