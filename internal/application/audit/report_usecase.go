// Package audit arma el informe de auditoría de una cadena: verificación de integridad,
// inventario reconstruido y transacciones que el replay tuvo que omitir.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// Report datos del informe.
type Report struct {
	LedgerName    string
	GeneratedAt   time.Time
	HashAlgorithm string
	Verification  chain.Verification
	Blocks        []chain.Block
	Inventory     *entity.InventoryState
	TotalValue    decimal.Decimal
	Anomalies     []inventory.Anomaly
}

// TailHash hash del último bloque ("" si la cadena está vacía).
func (r Report) TailHash() string {
	tail, _ := chain.Tail(r.Blocks)
	return tail.Hash
}

// ReportUseCase genera informes de auditoría.
type ReportUseCase struct {
	source     Source
	generator  ReportGenerator
	ledgerName string
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(source Source, generator ReportGenerator, ledgerName string) *ReportUseCase {
	return &ReportUseCase{
		source:     source,
		generator:  generator,
		ledgerName: ledgerName,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Build arma el informe sin generar el PDF.
func (uc *ReportUseCase) Build() (Report, error) {
	blocks := uc.source.Blocks()
	h, err := chain.NewHasher(uc.source.HashAlgorithm())
	if err != nil {
		return Report{}, fmt.Errorf("audit: %w", err)
	}
	state, anomalies := inventory.ReplayChain(blocks)
	return Report{
		LedgerName:    uc.ledgerName,
		GeneratedAt:   uc.now(),
		HashAlgorithm: h.Algorithm(),
		Verification:  chain.Validate(h, blocks),
		Blocks:        blocks,
		Inventory:     state,
		TotalValue:    inventory.StockValue(state),
		Anomalies:     anomalies,
	}, nil
}

// Generate arma el informe y devuelve el PDF con su nombre de archivo sugerido.
func (uc *ReportUseCase) Generate(ctx context.Context) (pdf []byte, filename string, err error) {
	report, err := uc.Build()
	if err != nil {
		return nil, "", err
	}
	pdf, err = uc.generator.GenerateAuditPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("audit: generar pdf: %w", err)
	}
	filename = fmt.Sprintf("auditoria-%s-%s.pdf", uc.ledgerName, report.GeneratedAt.Format("20060102-150405"))
	return pdf, filename, nil
}
