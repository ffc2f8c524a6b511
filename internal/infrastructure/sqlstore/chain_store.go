// Package sqlstore guarda la cadena sobre database/sql (SQLite con modernc.org/sqlite o MySQL).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// Dialect dialecto SQL soportado.
type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

const busyTimeoutMs = 5000

var _ repository.ChainStore = (*ChainStore)(nil)

// ChainStore guarda la cadena de un ledger (por nombre) en la tabla ledger_chains.
type ChainStore struct {
	db      *sql.DB
	dialect Dialect
	name    string
}

// OpenSQLite abre (o crea) la base SQLite en path y prepara el esquema.
func OpenSQLite(ctx context.Context, path, name string) (*ChainStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de la base: %w", err)
	}
	db, err := sql.Open("sqlite", "file:"+filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Un único escritor: evita SQLITE_BUSY entre conexiones del pool.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMs)); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return newStore(ctx, db, SQLite, name)
}

// OpenMySQL abre la conexión MySQL con dsn y prepara el esquema.
func OpenMySQL(ctx context.Context, dsn, name string) (*ChainStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetConnMaxLifetime(time.Hour)
	db.SetMaxOpenConns(10)
	return newStore(ctx, db, MySQL, name)
}

func newStore(ctx context.Context, db *sql.DB, dialect Dialect, name string) (*ChainStore, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	s := &ChainStore{db: db, dialect: dialect, name: name}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close libera la conexión.
func (s *ChainStore) Close() error {
	return s.db.Close()
}

func (s *ChainStore) ensureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS ledger_chains (
			name        TEXT PRIMARY KEY,
			payload     BLOB NOT NULL,
			block_count INTEGER NOT NULL,
			tail_hash   TEXT NOT NULL,
			updated_at  TIMESTAMP NOT NULL
		)`
	if s.dialect == MySQL {
		ddl = `
		CREATE TABLE IF NOT EXISTS ledger_chains (
			name        VARCHAR(191) PRIMARY KEY,
			payload     LONGBLOB NOT NULL,
			block_count INT NOT NULL,
			tail_hash   VARCHAR(128) NOT NULL,
			updated_at  DATETIME(3) NOT NULL
		)`
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("crear tabla ledger_chains: %w", err)
	}
	return nil
}

// Load devuelve el payload del ledger; domain.ErrNotFound si no hay fila.
func (s *ChainStore) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM ledger_chains WHERE name = ?`, s.name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load chain: %w", err)
	}
	return payload, nil
}

// Save reemplaza el payload en una transacción.
func (s *ChainStore) Save(ctx context.Context, snapshot repository.ChainSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	upsert := `
		INSERT INTO ledger_chains (name, payload, block_count, tail_hash, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, block_count = excluded.block_count,
			tail_hash = excluded.tail_hash, updated_at = excluded.updated_at`
	if s.dialect == MySQL {
		upsert = `
		INSERT INTO ledger_chains (name, payload, block_count, tail_hash, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), block_count = VALUES(block_count),
			tail_hash = VALUES(tail_hash), updated_at = VALUES(updated_at)`
	}
	_, err = tx.ExecContext(ctx, upsert, s.name, snapshot.Payload, snapshot.BlockCount, snapshot.TailHash, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert chain: %w", err)
	}
	return tx.Commit()
}
