// Package memory implementa el almacén de la cadena en memoria (tests y desarrollo).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ChainStore = (*ChainStore)(nil)

// ChainStore guarda una copia del último snapshot.
type ChainStore struct {
	mu       sync.RWMutex
	snapshot *repository.ChainSnapshot
	saves    int
}

// NewChainStore crea un almacén vacío.
func NewChainStore() *ChainStore {
	return &ChainStore{}
}

// Load devuelve una copia del payload guardado.
func (s *ChainStore) Load(_ context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), s.snapshot.Payload...), nil
}

// Save reemplaza el snapshot.
func (s *ChainStore) Save(ctx context.Context, snapshot repository.ChainSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot.Payload = append([]byte(nil), snapshot.Payload...)
	s.snapshot = &snapshot
	s.saves++
	return nil
}

// Put carga un payload arbitrario (fixtures de tests: blobs corruptos o manipulados).
func (s *ChainStore) Put(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = &repository.ChainSnapshot{Payload: append([]byte(nil), payload...)}
}

// Saves número de escrituras realizadas con Save.
func (s *ChainStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Snapshot último snapshot guardado (zero value si no hay).
func (s *ChainStore) Snapshot() repository.ChainSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return repository.ChainSnapshot{}
	}
	return *s.snapshot
}
