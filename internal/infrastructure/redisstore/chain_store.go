// Package redisstore guarda la cadena en Redis (github.com/redis/go-redis/v9).
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const keyPrefix = "ledger:chain:"

var _ repository.ChainStore = (*ChainStore)(nil)

// ChainStore guarda el payload en la clave ledger:chain:<name> y los metadatos en
// ledger:chain:<name>:meta (hash con blocks, tail y updatedAt).
type ChainStore struct {
	client *redis.Client
	key    string
}

// NewChainStore construye el adaptador para el ledger name.
func NewChainStore(client *redis.Client, name string) *ChainStore {
	return &ChainStore{client: client, key: keyPrefix + name}
}

// Load devuelve el payload; domain.ErrNotFound si la clave no existe.
func (s *ChainStore) Load(ctx context.Context) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load chain: %w", err)
	}
	return payload, nil
}

// Save escribe payload y metadatos en un MULTI/EXEC.
func (s *ChainStore) Save(ctx context.Context, snapshot repository.ChainSnapshot) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key, snapshot.Payload, 0)
		pipe.HSet(ctx, s.key+":meta",
			"blocks", snapshot.BlockCount,
			"tail", snapshot.TailHash,
			"totalValue", snapshot.TotalValue.String(),
			"updatedAt", time.Now().UTC().Format(time.RFC3339Nano))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save chain: %w", err)
	}
	return nil
}
