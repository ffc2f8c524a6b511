package chain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Una cadena que pasa por el formato persistido se sigue verificando con los hashes originales.
func TestCodec_CadenaPersistidaSigueSiendoValida(t *testing.T) {
	h := chain.SHA3Hasher{}
	blocks := buildChain(t, h)

	data, err := chain.Marshal(chain.Document{HashAlgorithm: h.Algorithm(), Blocks: blocks})
	require.NoError(t, err)

	doc, err := chain.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, chain.DocumentVersion, doc.Version)
	assert.Equal(t, chain.AlgSHA3256, doc.HashAlgorithm)
	require.Len(t, doc.Blocks, len(blocks))
	assert.True(t, chain.Validate(h, doc.Blocks).Valid)

	move, ok := doc.Blocks[2].Transaction.(entity.Move)
	require.True(t, ok)
	assert.Equal(t, entity.LocationPair{From: 10, To: 0}, move.BeforeQuantity)
	assert.Equal(t, "Alice Admin", move.Actor.Name)
}

func TestCodec_FormatoDeTransaccion(t *testing.T) {
	blocks := buildChain(t, chain.SHA256Hasher{})
	data, err := chain.Marshal(chain.Document{HashAlgorithm: chain.AlgSHA256, Blocks: blocks[:2]})
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"txType":"GENESIS"`)
	assert.Contains(t, s, `"txType":"CREATE_ITEM"`)
	assert.Contains(t, s, `"price":"1200.5"`)
	assert.Contains(t, s, `"timestamp":"2024-05-01T09:00:00.000Z"`)
	assert.Contains(t, s, `"previousHash":"0"`)
}

// Editar el blob a mano (p. ej. una cantidad) produce un documento legible pero inválido.
func TestCodec_EdicionDelBlobSeDetecta(t *testing.T) {
	h := chain.SHA256Hasher{}
	data, err := chain.Marshal(chain.Document{HashAlgorithm: h.Algorithm(), Blocks: buildChain(t, h)})
	require.NoError(t, err)

	edited := strings.Replace(string(data), `"quantity":5`, `"quantity":50`, 1)
	require.NotEqual(t, string(data), edited)

	doc, err := chain.Unmarshal([]byte(edited))
	require.NoError(t, err)
	res := chain.Validate(h, doc.Blocks)
	assert.False(t, res.Valid)
	assert.Equal(t, int64(3), res.Index)
}

func TestUnmarshal_DocumentosCorruptos(t *testing.T) {
	cases := map[string]string{
		"json invalido":   `{"blocks": [`,
		"cadena vacia":    `{"version":1,"blocks":[]}`,
		"txType raro":     `{"blocks":[{"index":0,"timestamp":"2024-05-01T09:00:00.000Z","transaction":{"txType":"BURN"},"previousHash":"0","hash":"x"}]}`,
		"timestamp malo":  `{"blocks":[{"index":0,"timestamp":"ayer","transaction":{"txType":"GENESIS"},"previousHash":"0","hash":"x"}]}`,
		"sin transaccion": `{"blocks":[{"index":0,"timestamp":"2024-05-01T09:00:00.000Z","previousHash":"0","hash":"x"}]}`,
	}
	for name, blob := range cases {
		_, err := chain.Unmarshal([]byte(blob))
		assert.ErrorIs(t, err, chain.ErrCorruptDocument, name)
	}
}
