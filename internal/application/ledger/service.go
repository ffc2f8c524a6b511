// Package ledger orquesta la cadena: carga y persistencia, propuesta de transacciones con un
// único escritor, y lecturas derivadas (inventario, verificación, historial, dashboard).
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

// ErrNotLoaded se llamó a Propose o Reset antes de Load.
var ErrNotLoaded = errors.New("ledger: cadena no cargada")

// Options dependencias opcionales del servicio.
type Options struct {
	Hasher            chain.Hasher // algoritmo para cadenas nuevas; default sha256
	Clock             Clock
	Logger            *logger.Logger
	LowStockThreshold int64 // default inventory.LowStockThreshold
}

// Service mantiene la cadena en memoria y el estado derivado. Las escrituras se serializan
// con mu; las lecturas ven la cadena completa anterior o posterior a cada append.
type Service struct {
	store    repository.ChainStore
	clock    Clock
	log      *logger.Logger
	lowStock int64

	mu     sync.RWMutex
	hasher chain.Hasher // el de la cadena cargada
	blocks []chain.Block
	state  *entity.InventoryState
	loaded bool
}

// NewService construye el servicio. Hay que llamar a Load antes de usarlo.
func NewService(store repository.ChainStore, opts Options) *Service {
	if opts.Hasher == nil {
		opts.Hasher = chain.SHA256Hasher{}
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = inventory.LowStockThreshold
	}
	return &Service{
		store:    store,
		clock:    opts.Clock,
		log:      opts.Logger,
		lowStock: opts.LowStockThreshold,
		hasher:   opts.Hasher,
		state:    entity.NewInventoryState(),
	}
}

// Load lee la cadena del almacén. Si no existe, o el blob no se puede interpretar, se crea
// y persiste una cadena nueva con sólo el génesis (el blob corrupto se descarta).
// Una cadena legible pero manipulada se carga tal cual; Verify la reporta.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.log.Info().Msg("ledger: no hay cadena persistida, se crea el génesis")
		return s.resetLocked(ctx, s.hasher)
	case err != nil:
		return fmt.Errorf("cargar cadena: %w", err)
	}

	doc, err := chain.Unmarshal(data)
	if err != nil {
		s.log.Warn().Err(err).Int("bytes", len(data)).Msg("ledger: cadena persistida ilegible, se descarta")
		return s.resetLocked(ctx, s.hasher)
	}
	h, err := chain.NewHasher(doc.HashAlgorithm)
	if err != nil {
		s.log.Warn().Err(err).Str("algorithm", doc.HashAlgorithm).Msg("ledger: algoritmo desconocido, se descarta la cadena")
		return s.resetLocked(ctx, s.hasher)
	}

	state, anomalies := inventory.ReplayChain(doc.Blocks)
	s.hasher = h
	s.blocks = doc.Blocks
	s.state = state
	s.loaded = true

	s.logAnomalies(anomalies)
	if v := chain.Validate(h, doc.Blocks); !v.Valid {
		s.log.Warn().Int64("index", v.Index).Str("reason", v.Reason).Msg("ledger: la cadena cargada no supera la verificación")
	}
	s.log.Info().Int("blocks", len(doc.Blocks)).Str("algorithm", h.Algorithm()).Msg("ledger: cadena cargada")
	return nil
}

// Propose valida draft contra el inventario actual, lo sella en un bloque nuevo y persiste la
// cadena completa. Sólo si la escritura tiene éxito se actualiza el estado en memoria.
// Rechazos: *domain.RejectionError o domain.ErrInvalidInput. Fallo de escritura: domain.ErrPersist.
func (s *Service) Propose(ctx context.Context, draft entity.Transaction) (chain.Block, error) {
	if draft == nil {
		return chain.Block{}, fmt.Errorf("%w: transacción vacía", domain.ErrInvalidInput)
	}
	if draft.Kind() == entity.TxGenesis {
		return chain.Block{}, fmt.Errorf("%w: no se puede proponer un génesis", domain.ErrInvalidInput)
	}
	tx := entity.Normalize(stamp(draft, s.clock))

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return chain.Block{}, ErrNotLoaded
	}

	next := s.state.Clone()
	applied, err := inventory.Apply(tx, next, inventory.Strict)
	if err != nil {
		s.log.Debug().Err(err).Str("txType", string(tx.Kind())).Str("sku", tx.Subject()).Msg("ledger: transacción rechazada")
		return chain.Block{}, err
	}

	tail, _ := chain.Tail(s.blocks)
	block, err := chain.CreateBlock(s.hasher, tail.Index+1, applied, tail.Hash, s.clock.Now())
	if err != nil {
		return chain.Block{}, err
	}

	blocks := make([]chain.Block, len(s.blocks), len(s.blocks)+1)
	copy(blocks, s.blocks)
	blocks = append(blocks, block)
	if err := s.persist(ctx, s.hasher, blocks, next); err != nil {
		s.log.Error().Err(err).Int64("index", block.Index).Msg("ledger: no se pudo persistir el bloque")
		return chain.Block{}, err
	}

	s.blocks = blocks
	s.state = next
	s.log.Info().
		Int64("index", block.Index).
		Str("hash", block.Hash).
		Str("txType", string(applied.Kind())).
		Str("sku", applied.Subject()).
		Str("actor", actorOf(applied).ID).
		Msg("ledger: bloque agregado")
	return block, nil
}

// Reset reemplaza la cadena por un génesis nuevo (persistido antes de cambiar la memoria).
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	prev := len(s.blocks)
	if err := s.resetLocked(ctx, s.hasher); err != nil {
		return err
	}
	s.log.Warn().Int("discardedBlocks", prev).Msg("ledger: cadena reiniciada")
	return nil
}

// Blocks copia de la cadena actual.
func (s *Service) Blocks() []chain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]chain.Block(nil), s.blocks...)
}

// Inventory copia del estado derivado actual.
func (s *Service) Inventory() *entity.InventoryState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Product copia del estado de un producto; domain.ErrNotFound si no existe.
func (s *Service) Product(sku string) (*entity.ProductState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.state.Product(sku)
	if p == nil {
		return nil, fmt.Errorf("producto %s: %w", sku, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

// Rebuild recalcula el inventario reproduciendo la cadena desde cero, sin tocar el estado
// en memoria. Para una cadena íntegra coincide con Inventory.
func (s *Service) Rebuild() *entity.InventoryState {
	blocks := s.Blocks()
	state, anomalies := inventory.ReplayChain(blocks)
	s.logAnomalies(anomalies)
	return state
}

// Verify verifica la cadena con el algoritmo con que fue construida.
func (s *Service) Verify() chain.Verification {
	s.mu.RLock()
	h, blocks := s.hasher, s.blocks
	s.mu.RUnlock()

	v := chain.Validate(h, blocks)
	if !v.Valid {
		s.log.Warn().Int64("index", v.Index).Str("reason", v.Reason).Msg("ledger: verificación fallida")
	}
	return v
}

// HashAlgorithm algoritmo de la cadena cargada.
func (s *Service) HashAlgorithm() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasher.Algorithm()
}

// History bloques que afectan a sku, del más reciente al más antiguo.
func (s *Service) History(sku string) []chain.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return inventory.History(s.blocks, sku)
}

func (s *Service) resetLocked(ctx context.Context, h chain.Hasher) error {
	genesis, err := chain.CreateGenesisBlock(h, s.clock.Now())
	if err != nil {
		return err
	}
	blocks := []chain.Block{genesis}
	state := entity.NewInventoryState()
	if err := s.persist(ctx, h, blocks, state); err != nil {
		return err
	}
	s.hasher = h
	s.blocks = blocks
	s.state = state
	s.loaded = true
	return nil
}

func (s *Service) persist(ctx context.Context, h chain.Hasher, blocks []chain.Block, state *entity.InventoryState) error {
	payload, err := chain.Marshal(chain.Document{Version: chain.DocumentVersion, HashAlgorithm: h.Algorithm(), Blocks: blocks})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	tail, _ := chain.Tail(blocks)
	snap := repository.ChainSnapshot{
		Payload:    payload,
		BlockCount: len(blocks),
		TailHash:   tail.Hash,
		TotalValue: inventory.StockValue(state),
	}
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersist, err)
	}
	return nil
}

func (s *Service) logAnomalies(anomalies []inventory.Anomaly) {
	for _, a := range anomalies {
		s.log.Warn().Err(a.Err).Int64("index", a.Index).Str("txType", string(a.Kind)).Str("sku", a.SKU).
			Msg("ledger: transacción de la cadena omitida al reconstruir")
	}
}

// stamp fija At con el reloj si el borrador no lo trae.
func stamp(tx entity.Transaction, clock Clock) entity.Transaction {
	switch t := tx.(type) {
	case entity.CreateItem:
		if t.At.IsZero() {
			t.At = clock.Now()
		}
		return t
	case entity.StockIn:
		if t.At.IsZero() {
			t.At = clock.Now()
		}
		return t
	case entity.StockOut:
		if t.At.IsZero() {
			t.At = clock.Now()
		}
		return t
	case entity.Move:
		if t.At.IsZero() {
			t.At = clock.Now()
		}
		return t
	}
	return tx
}

func actorOf(tx entity.Transaction) entity.Actor {
	switch t := tx.(type) {
	case entity.CreateItem:
		return t.Actor
	case entity.StockIn:
		return t.Actor
	case entity.StockOut:
		return t.Actor
	case entity.Move:
		return t.Actor
	}
	return entity.Actor{}
}
