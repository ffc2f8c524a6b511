package chain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var (
	t0    = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	admin = entity.Actor{ID: "u-1", EmployeeID: "E-001", Name: "Alice Admin"}
)

// buildChain construye una cadena de 5 bloques: génesis + alta + 3 movimientos.
func buildChain(t *testing.T, h chain.Hasher) []chain.Block {
	t.Helper()
	txs := []entity.Transaction{
		entity.CreateItem{SchemaVersion: 1, SKU: "SKU-1", Name: "Laptop", Quantity: 10, ToLocation: "Warehouse",
			Price: decimal.RequireFromString("1200.50"), Category: "Electronics", BeforeQuantity: 0, AfterQuantity: 10, Actor: admin, At: t0},
		entity.Move{SchemaVersion: 1, SKU: "SKU-1", Quantity: 4, FromLocation: "Warehouse", ToLocation: "Retailer",
			BeforeQuantity: entity.LocationPair{From: 10, To: 0}, AfterQuantity: entity.LocationPair{From: 6, To: 4}, Actor: admin, At: t0},
		entity.StockIn{SchemaVersion: 1, SKU: "SKU-1", Quantity: 5, Location: "Warehouse", BeforeQuantity: 6, AfterQuantity: 11, Actor: admin, At: t0},
		entity.StockOut{SchemaVersion: 1, SKU: "SKU-1", Quantity: 2, Location: "Retailer", BeforeQuantity: 4, AfterQuantity: 2, Actor: admin, At: t0},
	}

	genesis, err := chain.CreateGenesisBlock(h, t0)
	require.NoError(t, err)
	blocks := []chain.Block{genesis}
	for i, tx := range txs {
		b, err := chain.CreateBlock(h, int64(i+1), tx, blocks[i].Hash, t0.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
		blocks = append(blocks, b)
	}
	return blocks
}

func TestCreateGenesisBlock(t *testing.T) {
	g, err := chain.CreateGenesisBlock(chain.SHA256Hasher{}, t0)
	require.NoError(t, err)

	assert.Equal(t, int64(0), g.Index)
	assert.Equal(t, chain.GenesisPreviousHash, g.PreviousHash)
	assert.Equal(t, entity.Genesis{}, g.Transaction)
	assert.True(t, g.IsGenesis())
	assert.Len(t, g.Hash, 64)
}

func TestCreateBlock_HashDeterminista(t *testing.T) {
	h := chain.SHA256Hasher{}
	now := time.Date(2024, 5, 1, 9, 0, 0, 987654321, time.UTC)
	tx := entity.StockIn{SchemaVersion: 1, SKU: "SKU-1", Quantity: 1, Location: "A", Actor: admin, At: t0}

	a, err := chain.CreateBlock(h, 1, tx, "abc", now)
	require.NoError(t, err)
	b, err := chain.CreateBlock(h, 1, tx, "abc", now)
	require.NoError(t, err)

	assert.Equal(t, a.Hash, b.Hash)
	assert.Equal(t, 987*int(time.Millisecond), a.Timestamp.Nanosecond(), "el timestamp se trunca a milisegundos")

	recalculated, err := chain.HashBlock(h, a)
	require.NoError(t, err)
	assert.Equal(t, a.Hash, recalculated)
}

func TestValidate_CadenasTriviales(t *testing.T) {
	h := chain.SHA256Hasher{}
	assert.True(t, chain.Validate(h, nil).Valid)

	g, err := chain.CreateGenesisBlock(h, t0)
	require.NoError(t, err)
	res := chain.Validate(h, []chain.Block{g})
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Length)
}

func TestValidate_CadenaConstruidaEsValida(t *testing.T) {
	for _, h := range []chain.Hasher{chain.SHA256Hasher{}, chain.SHA3Hasher{}} {
		blocks := buildChain(t, h)
		res := chain.Validate(h, blocks)
		assert.True(t, res.Valid, h.Algorithm())
		assert.Equal(t, int64(-1), res.Index)
	}
}

func TestValidate_DetectaCambioDeCantidad(t *testing.T) {
	h := chain.SHA256Hasher{}
	blocks := buildChain(t, h)

	tampered := blocks[2].Transaction.(entity.Move)
	tampered.Quantity = 400
	blocks[2].Transaction = tampered

	res := chain.Validate(h, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(2), res.Index)
	assert.Equal(t, chain.ReasonHashMismatch, res.Reason)
}

func TestValidate_DetectaCambioEnCadaTipo(t *testing.T) {
	h := chain.SHA256Hasher{}
	mutations := map[int]func(entity.Transaction) entity.Transaction{
		1: func(tx entity.Transaction) entity.Transaction {
			c := tx.(entity.CreateItem)
			c.Price = decimal.RequireFromString("1.00")
			return c
		},
		3: func(tx entity.Transaction) entity.Transaction {
			s := tx.(entity.StockIn)
			s.Actor.Name = "Mallory"
			return s
		},
		4: func(tx entity.Transaction) entity.Transaction {
			s := tx.(entity.StockOut)
			s.AfterQuantity = 3
			return s
		},
	}
	for idx, mutate := range mutations {
		blocks := buildChain(t, h)
		blocks[idx].Transaction = mutate(blocks[idx].Transaction)

		res := chain.Validate(h, blocks)
		assert.False(t, res.Valid)
		assert.Equal(t, int64(idx), res.Index)
	}
}

// Sobrescribir sólo el hash del bloque 3: la relación rota es el hash recalculado del
// bloque 3 (se reporta primero). Si además se re-enlaza el bloque 4 con el hash falso, el
// fallo sigue en 3; si en cambio se repara el hash de 3 y se rompe sólo el enlace, falla 4.
func TestValidate_SobrescrituraDeHash(t *testing.T) {
	h := chain.SHA256Hasher{}

	blocks := buildChain(t, h)
	blocks[3].Hash = "deadbeef"
	res := chain.Validate(h, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(3), res.Index)
	assert.Equal(t, chain.ReasonHashMismatch, res.Reason)

	blocks = buildChain(t, h)
	blocks[4].PreviousHash = "deadbeef"
	res = chain.Validate(h, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(4), res.Index)
	assert.Equal(t, chain.ReasonPreviousHashMismatch, res.Reason)
	assert.Equal(t, blocks[3].Hash, res.Expected)
}

func TestValidate_GenesisManipulado(t *testing.T) {
	h := chain.SHA256Hasher{}
	blocks := buildChain(t, h)
	blocks[0].Timestamp = blocks[0].Timestamp.Add(time.Hour)

	res := chain.Validate(h, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(0), res.Index)
	assert.Equal(t, chain.ReasonHashMismatch, res.Reason)

	blocks = buildChain(t, h)
	blocks[0].PreviousHash = "1"
	res = chain.Validate(h, blocks)
	assert.Equal(t, chain.ReasonGenesisMalformed, res.Reason)
}

func TestValidate_IndiceFueraDeSecuencia(t *testing.T) {
	h := chain.SHA256Hasher{}
	blocks := buildChain(t, h)
	blocks[2].Index = 7

	res := chain.Validate(h, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(2), res.Index)
	assert.Equal(t, chain.ReasonIndexMismatch, res.Reason)
}

func TestValidate_HasherDistintoInvalida(t *testing.T) {
	blocks := buildChain(t, chain.SHA256Hasher{})
	res := chain.Validate(chain.SHA3Hasher{}, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(0), res.Index)
}

func TestValidate_GenesisFueraDelBloqueCero(t *testing.T) {
	h := chain.SHA256Hasher{}
	blocks := buildChain(t, h)

	// Un génesis bien sellado y enlazado en la posición 5 sigue siendo inválido.
	extra, err := chain.CreateBlock(h, int64(len(blocks)), entity.Genesis{}, blocks[len(blocks)-1].Hash, t0.Add(time.Hour))
	require.NoError(t, err)
	blocks = append(blocks, extra)

	res := chain.Validate(h, blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(5), res.Index)
	assert.Equal(t, chain.ReasonGenesisOutOfPlace, res.Reason)
}
