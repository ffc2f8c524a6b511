package inventory

import (
	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Anomaly transacción de la cadena que el replay no pudo aplicar. Indica una cadena
// internamente inconsistente; la verificación de integridad es quien debe reportarla.
type Anomaly struct {
	Index int64
	Kind  entity.TxType
	SKU   string
	Err   error
}

// Rebuild reconstruye el inventario desde cero reproduciendo los bloques 1..n en modo Replay.
// Para una cadena fija el resultado es siempre el mismo.
func Rebuild(blocks []chain.Block) *entity.InventoryState {
	state, _ := ReplayChain(blocks)
	return state
}

// ReplayChain igual que Rebuild pero devuelve además los rechazos que se ignoraron.
func ReplayChain(blocks []chain.Block) (*entity.InventoryState, []Anomaly) {
	state := entity.NewInventoryState()
	var anomalies []Anomaly
	for i := 1; i < len(blocks); i++ {
		tx := blocks[i].Transaction
		if tx == nil {
			continue
		}
		if _, err := Apply(tx, state, Replay); err != nil {
			anomalies = append(anomalies, Anomaly{
				Index: blocks[i].Index,
				Kind:  tx.Kind(),
				SKU:   tx.Subject(),
				Err:   err,
			})
		}
	}
	return state, anomalies
}

// History bloques que afectan a sku, del más reciente al más antiguo.
func History(blocks []chain.Block, sku string) []chain.Block {
	var out []chain.Block
	for i := len(blocks) - 1; i >= 1; i-- {
		if tx := blocks[i].Transaction; tx != nil && tx.Subject() == sku {
			out = append(out, blocks[i])
		}
	}
	return out
}

// Recent últimos n bloques no génesis, del más reciente al más antiguo.
func Recent(blocks []chain.Block, n int) []chain.Block {
	out := make([]chain.Block, 0, n)
	for i := len(blocks) - 1; i >= 1 && len(out) < n; i-- {
		out = append(out, blocks[i])
	}
	return out
}
