package audit

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
)

// ReportGenerator genera la representación (PDF) del informe de auditoría.
type ReportGenerator interface {
	GenerateAuditPDF(ctx context.Context, report Report) ([]byte, error)
}

// Source cadena a auditar: el ledger en servicio o un documento leído de disco.
type Source interface {
	Blocks() []chain.Block
	HashAlgorithm() string
}

// DocumentSource adapta un chain.Document a Source (auditoría offline).
type DocumentSource struct {
	Doc chain.Document
}

func (d DocumentSource) Blocks() []chain.Block { return d.Doc.Blocks }
func (d DocumentSource) HashAlgorithm() string { return d.Doc.HashAlgorithm }
