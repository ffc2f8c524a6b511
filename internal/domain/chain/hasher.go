// Package chain: bloques enlazados por hash, validación de integridad y formato persistido.
//
// Hash de un bloque = hex(H(canonical({index, timestamp, transaction, previousHash}))),
// con H = SHA-256 por defecto. El algoritmo queda registrado en el documento persistido.
package chain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Algoritmos soportados.
const (
	AlgSHA256  = "sha256"
	AlgSHA3256 = "sha3-256"
)

// ErrUnknownAlgorithm algoritmo de hash no soportado.
var ErrUnknownAlgorithm = errors.New("chain: algoritmo de hash desconocido")

// Hasher calcula el digest (hex en minúsculas) de bytes canónicos. Debe ser puro y determinista.
type Hasher interface {
	Algorithm() string
	Sum(data []byte) string
}

// NewHasher devuelve el hasher para el nombre dado ("" = sha256).
func NewHasher(algorithm string) (Hasher, error) {
	switch algorithm {
	case "", AlgSHA256:
		return SHA256Hasher{}, nil
	case AlgSHA3256:
		return SHA3Hasher{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

// SHA256Hasher SHA-256 (crypto/sha256).
type SHA256Hasher struct{}

func (SHA256Hasher) Algorithm() string { return AlgSHA256 }

func (SHA256Hasher) Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SHA3Hasher SHA3-256 (FIPS 202).
type SHA3Hasher struct{}

func (SHA3Hasher) Algorithm() string { return AlgSHA3256 }

func (SHA3Hasher) Sum(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
