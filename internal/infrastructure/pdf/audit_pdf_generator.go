// Package pdf genera el informe de auditoría de la cadena con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Ledger + algoritmo    │  Fecha de generación        │
//	│  VEREDICTO: íntegra / manipulada en el bloque N              │
//	│  RESUMEN: bloques, SKUs, unidades, valor                     │
//	│  TABLA INVENTARIO: SKU | Nombre | Ubicación | Cantidad       │
//	│  TABLA BLOQUES: # | Tipo | SKU | Cant. | Hash                │
//	│  OMITIDAS: transacciones que el replay no pudo aplicar       │
//	│  FOOTER: hash de cola + QR                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-ledger/internal/application/audit"
	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 20, Green: 120, Blue: 60}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// maxBlockRows bloques listados en el informe (los más recientes).
const maxBlockRows = 200

var _ audit.ReportGenerator = (*AuditPDFGenerator)(nil)

// AuditPDFGenerator implementa audit.ReportGenerator usando Maroto v2.
type AuditPDFGenerator struct{}

// NewAuditPDFGenerator construye el generador.
func NewAuditPDFGenerator() *AuditPDFGenerator { return &AuditPDFGenerator{} }

// GenerateAuditPDF genera el PDF y devuelve sus bytes.
func (g *AuditPDFGenerator) GenerateAuditPDF(_ context.Context, r audit.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de auditoría del ledger", true).
		WithAuthor(r.LedgerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(verdictRow(r.Verification))
	m.AddRows(summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("INVENTARIO RECONSTRUIDO"))
	m.AddRows(tableHeader([]string{"SKU", "Nombre", "Ubicación", "Cantidad"}, []int{3, 4, 3, 2}))
	m.AddRows(inventoryRows(r.Inventory)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("BLOQUES"))
	m.AddRows(tableHeader([]string{"#", "Tipo", "SKU", "Cant.", "Hash"}, []int{1, 2, 2, 1, 6}))
	m.AddRows(blockRows(r.Blocks)...)

	if len(r.Anomalies) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("TRANSACCIONES OMITIDAS AL RECONSTRUIR"))
		m.AddRows(anomalyRows(r)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r audit.Report) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Ledger "+r.LedgerName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Algoritmo de hash: "+r.HashAlgorithm, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE AUDITORÍA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04:05 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func verdictRow(v chain.Verification) core.Row {
	msg, color := "CADENA ÍNTEGRA: todos los enlaces y hashes verifican", colorOK
	if !v.Valid {
		msg = fmt.Sprintf("CADENA MANIPULADA: falla en el bloque %d (%s)", v.Index, v.Reason)
		color = colorAlert
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(msg, props.Text{Style: fontstyle.Bold, Size: 10, Color: color, Top: 3}),
	))
}

func summaryRow(r audit.Report) core.Row {
	var units int64
	if r.Inventory != nil {
		units = r.Inventory.TotalUnits()
	}
	skus := 0
	if r.Inventory != nil {
		skus = len(r.Inventory.Products)
	}
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Bloques", strconv.Itoa(len(r.Blocks))),
		cell("SKUs", strconv.Itoa(skus)),
		cell("Unidades", strconv.FormatInt(units, 10)),
		cell("Valor del inventario", "$"+r.TotalValue.StringFixed(2)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func inventoryRows(state *entity.InventoryState) []core.Row {
	if state == nil || len(state.Products) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin productos", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	var rows []core.Row
	for _, sku := range state.SortedSKUs() {
		p := state.Products[sku]
		for _, loc := range p.SortedLocations() {
			rows = append(rows, row.New(5).Add(
				col.New(3).Add(cellText(sku)),
				col.New(4).Add(cellText(p.Name)),
				col.New(3).Add(cellText(loc)),
				col.New(2).Add(text.New(strconv.FormatInt(p.Locations[loc], 10), props.Text{Size: 8, Align: align.Right, Right: 1})),
			))
		}
	}
	return rows
}

func blockRows(blocks []chain.Block) []core.Row {
	start := 0
	if len(blocks) > maxBlockRows {
		start = len(blocks) - maxBlockRows
	}
	rows := make([]core.Row, 0, len(blocks)-start)
	for _, b := range blocks[start:] {
		kind, sku, qty := "GENESIS", "", ""
		if b.Transaction != nil {
			kind, sku = string(b.Transaction.Kind()), b.Transaction.Subject()
			if q := quantityOf(b.Transaction); q > 0 {
				qty = strconv.FormatInt(q, 10)
			}
		}
		rows = append(rows, row.New(5).Add(
			col.New(1).Add(cellText(strconv.FormatInt(b.Index, 10))),
			col.New(2).Add(cellText(kind)),
			col.New(2).Add(cellText(sku)),
			col.New(1).Add(cellText(qty)),
			col.New(6).Add(text.New(b.Hash, props.Text{Size: 6, Color: colorGray, Top: 1, Left: 1})),
		))
	}
	return rows
}

func anomalyRows(r audit.Report) []core.Row {
	rows := make([]core.Row, 0, len(r.Anomalies))
	for _, a := range r.Anomalies {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Bloque %d (%s %s): %v", a.Index, a.Kind, a.SKU, a.Err), props.Text{
				Size: 8, Color: colorAlert, Top: 1, Left: 1,
			}),
		)))
	}
	return rows
}

func footerRow(r audit.Report) core.Row {
	tail := r.TailHash()
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(nonEmpty(tail, "-"), props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Hash del último bloque:", props.Text{Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3}),
			text.New(nonEmpty(tail, "-"), props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
			text.New("Recalcule la cadena con el mismo algoritmo para comprobar este informe.", props.Text{
				Size: 7, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func cellText(s string) core.Component {
	return text.New(s, props.Text{Size: 8, Top: 1, Left: 1})
}

func quantityOf(tx entity.Transaction) int64 {
	switch t := tx.(type) {
	case entity.CreateItem:
		return t.Quantity
	case entity.StockIn:
		return t.Quantity
	case entity.StockOut:
		return t.Quantity
	case entity.Move:
		return t.Quantity
	}
	return 0
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
