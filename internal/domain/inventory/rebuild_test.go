package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

func chainOf(t *testing.T, txs ...entity.Transaction) []chain.Block {
	t.Helper()
	h := chain.SHA256Hasher{}
	g, err := chain.CreateGenesisBlock(h, t0)
	require.NoError(t, err)
	blocks := []chain.Block{g}
	for i, tx := range txs {
		b, err := chain.CreateBlock(h, int64(i+1), tx, blocks[i].Hash, t0.Add(time.Duration(i+1)*time.Second))
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	return blocks
}

func TestRebuild(t *testing.T) {
	blocks := chainOf(t,
		createLaptop(10),
		entity.Move{SchemaVersion: 1, SKU: "SKU-1", Quantity: 4, FromLocation: "Warehouse", ToLocation: "Retailer"},
		entity.StockOut{SchemaVersion: 1, SKU: "SKU-1", Quantity: 1, Location: "Retailer"},
	)

	state := inventory.Rebuild(blocks)
	assert.Equal(t, int64(6), state.Quantity("SKU-1", "Warehouse"))
	assert.Equal(t, int64(3), state.Quantity("SKU-1", "Retailer"))

	again := inventory.Rebuild(blocks)
	assert.Equal(t, state, again, "reconstruir dos veces da el mismo estado")
}

func TestRebuild_SoloGenesis(t *testing.T) {
	state := inventory.Rebuild(chainOf(t))
	assert.Empty(t, state.Products)
	assert.Empty(t, inventory.Rebuild(nil).Products)
}

func TestReplay_ToleraInconsistencias(t *testing.T) {
	blocks := chainOf(t,
		createLaptop(3),
		createLaptop(50), // alta duplicada: no-op
		entity.StockOut{SchemaVersion: 1, SKU: "SKU-1", Quantity: 9, Location: "Warehouse"},
		entity.StockIn{SchemaVersion: 1, SKU: "GHOST", Quantity: 1, Location: "Warehouse"},
	)

	state, anomalies := inventory.ReplayChain(blocks)
	assert.Equal(t, int64(3), state.Quantity("SKU-1", "Warehouse"))
	assert.False(t, state.Has("GHOST"))
	require.Len(t, anomalies, 2)
	assert.Equal(t, int64(3), anomalies[0].Index)
	assert.Equal(t, entity.TxStockOut, anomalies[0].Kind)
	assert.Equal(t, "GHOST", anomalies[1].SKU)
}

func TestHistoryYRecent(t *testing.T) {
	other := createLaptop(1)
	other.SKU = "SKU-2"
	blocks := chainOf(t,
		createLaptop(10),
		other,
		entity.StockIn{SchemaVersion: 1, SKU: "SKU-1", Quantity: 1, Location: "Warehouse"},
	)

	h := inventory.History(blocks, "SKU-1")
	require.Len(t, h, 2)
	assert.Equal(t, int64(3), h[0].Index)
	assert.Equal(t, int64(1), h[1].Index)
	assert.Empty(t, inventory.History(blocks, "NOPE"))

	r := inventory.Recent(blocks, 2)
	require.Len(t, r, 2)
	assert.Equal(t, int64(3), r[0].Index)
	assert.Len(t, inventory.Recent(blocks, 10), 3)
}

func TestValuacionYStockBajo(t *testing.T) {
	mouse := entity.CreateItem{SchemaVersion: 1, SKU: "M-1", Name: "Mouse", Quantity: 15, ToLocation: "A", Price: decimal.RequireFromString("10.25")}
	cable := entity.CreateItem{SchemaVersion: 1, SKU: "C-1", Name: "Cable", Quantity: 2, ToLocation: "A", Price: decimal.NewFromInt(3)}
	state := inventory.Rebuild(chainOf(t,
		createLaptop(30), mouse, cable,
		entity.StockOut{SchemaVersion: 1, SKU: "C-1", Quantity: 2, Location: "A"},
		entity.StockOut{SchemaVersion: 1, SKU: "M-1", Quantity: 10, Location: "A"},
	))

	// 30*1200.50 + 5*10.25 + 0*3
	assert.True(t, decimal.RequireFromString("36066.25").Equal(inventory.StockValue(state)))

	low := inventory.LowStock(state, inventory.LowStockThreshold)
	require.Len(t, low, 1, "los productos agotados no cuentan como stock bajo")
	assert.Equal(t, inventory.LowStockItem{SKU: "M-1", Name: "Mouse", Stock: 5}, low[0])
}

func TestSearch(t *testing.T) {
	state := entity.NewInventoryState()
	for _, p := range []entity.CreateItem{
		{SchemaVersion: 1, SKU: "LAP-01", Name: "Laptop Pro", Quantity: 1, ToLocation: "A"},
		{SchemaVersion: 1, SKU: "MOU-07", Name: "Mouse inalámbrico", Quantity: 1, ToLocation: "A"},
		{SchemaVersion: 1, SKU: "CAB-02", Name: "Cable USB", Quantity: 1, ToLocation: "A"},
	} {
		_, err := inventory.Apply(p, state, inventory.Strict)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"CAB-02", "LAP-01", "MOU-07"}, inventory.Search(state, ""))
	assert.Equal(t, []string{"LAP-01"}, inventory.Search(state, "  laptop "))
	assert.Equal(t, []string{"MOU-07"}, inventory.Search(state, "mou"), "coincide por SKU")
	assert.Equal(t, []string{"MOU-07"}, inventory.Search(state, "INALÁMBRICO"))
	assert.Empty(t, inventory.Search(state, "teclado"))
}
