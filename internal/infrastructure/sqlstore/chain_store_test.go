package sqlstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/sqlstore"
)

func TestSQLite_LoadSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")

	store, err := sqlstore.OpenSQLite(ctx, path, "main")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.Save(ctx, repository.ChainSnapshot{Payload: []byte("v1"), BlockCount: 1, TailHash: "a"}))
	require.NoError(t, store.Save(ctx, repository.ChainSnapshot{Payload: []byte("v2"), BlockCount: 2, TailHash: "b"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}

func TestSQLite_PersisteEntreAperturas(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	store, err := sqlstore.OpenSQLite(ctx, path, "main")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, repository.ChainSnapshot{Payload: []byte("chain"), BlockCount: 1, TailHash: "a"}))
	require.NoError(t, store.Close())

	reopened, err := sqlstore.OpenSQLite(ctx, path, "main")
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "chain", string(got))

	// Otro ledger en la misma base no ve la cadena.
	other, err := sqlstore.OpenSQLite(ctx, path, "otro")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMySQL_LoadSave(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN no definido")
	}
	ctx := context.Background()
	store, err := sqlstore.OpenMySQL(ctx, dsn, "test-ledger")
	if err != nil {
		t.Skipf("MySQL no disponible: %v", err)
	}
	defer store.Close()

	require.NoError(t, store.Save(ctx, repository.ChainSnapshot{Payload: []byte("v1"), BlockCount: 1, TailHash: "a"}))
	require.NoError(t, store.Save(ctx, repository.ChainSnapshot{Payload: []byte("v2"), BlockCount: 2, TailHash: "b"}))
	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
}
