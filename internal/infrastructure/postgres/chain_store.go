package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ChainStore = (*ChainStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_chains (
	name        TEXT PRIMARY KEY,
	payload     BYTEA NOT NULL,
	block_count INTEGER NOT NULL,
	tail_hash   TEXT NOT NULL,
	total_value NUMERIC(24,4) NOT NULL DEFAULT 0,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// ChainStore guarda la cadena de un ledger (por nombre) en la tabla ledger_chains.
type ChainStore struct {
	pool   *pgxpool.Pool
	runner *TxRunner
	name   string
}

// NewChainStore construye el adaptador para el ledger name.
func NewChainStore(pool *pgxpool.Pool, name string) *ChainStore {
	return &ChainStore{pool: pool, runner: NewTxRunner(pool), name: name}
}

// EnsureSchema crea la tabla si no existe.
func (s *ChainStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear tabla ledger_chains: %w", err)
	}
	return nil
}

// Load devuelve el payload del ledger; domain.ErrNotFound si no hay fila.
func (s *ChainStore) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM ledger_chains WHERE name = $1`, s.name).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUndefinedTable(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load chain: %w", err)
	}
	return payload, nil
}

// Save reemplaza el payload dentro de una transacción. La fila se bloquea con
// SELECT ... FOR UPDATE y sólo se acepta un snapshot que siga a la cadena guardada;
// si otro proceso la avanzó, devuelve repository.ErrStaleSnapshot.
func (s *ChainStore) Save(ctx context.Context, snapshot repository.ChainSnapshot) error {
	return s.runner.Run(ctx, func(q Querier) error {
		var stored int
		err := q.QueryRow(ctx, `SELECT block_count FROM ledger_chains WHERE name = $1 FOR UPDATE`, s.name).Scan(&stored)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("lock chain: %w", err)
		}
		if !snapshot.Follows(stored) {
			return fmt.Errorf("%w: guardados %d bloques, snapshot de %d", repository.ErrStaleSnapshot, stored, snapshot.BlockCount)
		}
		_, err = q.Exec(ctx, `
			INSERT INTO ledger_chains (name, payload, block_count, tail_hash, total_value, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (name)
			DO UPDATE SET payload = EXCLUDED.payload, block_count = EXCLUDED.block_count,
				tail_hash = EXCLUDED.tail_hash, total_value = EXCLUDED.total_value, updated_at = now()`,
			s.name, snapshot.Payload, snapshot.BlockCount, snapshot.TailHash, snapshot.TotalValue)
		if err != nil {
			return fmt.Errorf("upsert chain: %w", err)
		}
		return nil
	})
}
