// Comando verify: audita una cadena persistida sin levantar el servidor.
//
//	go run ./cmd/verify                      # lee del almacén configurado (STORE_DRIVER)
//	go run ./cmd/verify -file chain.json     # lee un documento exportado
//	go run ./cmd/verify -pdf informe.pdf     # además genera el informe PDF
//
// Sale con código 0 si la cadena es íntegra, 1 si está manipulada y 2 ante errores.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/audit"
	"github.com/jhoicas/inventario-ledger/internal/domain/chain"
	infrapdf "github.com/jhoicas/inventario-ledger/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func main() {
	file := flag.String("file", "", "documento de cadena (JSON); vacío = almacén configurado")
	pdfOut := flag.String("pdf", "", "ruta del informe PDF a generar (opcional)")
	flag.Parse()

	log := logger.NewWithWriter(os.Stderr, "info")
	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("cargar configuración")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := readChain(ctx, cfg, *file)
	if err != nil {
		log.Error().Err(err).Msg("leer cadena")
		os.Exit(2)
	}
	doc, err := chain.Unmarshal(data)
	if err != nil {
		log.Error().Err(err).Msg("interpretar cadena")
		os.Exit(2)
	}

	uc := audit.NewReportUseCase(audit.DocumentSource{Doc: doc}, infrapdf.NewAuditPDFGenerator(), cfg.Ledger.Name)
	report, err := uc.Build()
	if err != nil {
		log.Error().Err(err).Msg("auditar cadena")
		os.Exit(2)
	}

	v := report.Verification
	fmt.Printf("ledger:     %s\n", report.LedgerName)
	fmt.Printf("algoritmo:  %s\n", report.HashAlgorithm)
	fmt.Printf("bloques:    %d\n", v.Length)
	fmt.Printf("tail:       %s\n", report.TailHash())
	fmt.Printf("productos:  %d (%d unidades, valor %s)\n",
		len(report.Inventory.Products), report.Inventory.TotalUnits(), report.TotalValue.StringFixed(2))
	for _, a := range report.Anomalies {
		fmt.Printf("anomalía:   bloque %d %s %s: %v\n", a.Index, a.Kind, a.SKU, a.Err)
	}

	if *pdfOut != "" {
		pdf, err := infrapdf.NewAuditPDFGenerator().GenerateAuditPDF(ctx, report)
		if err != nil {
			log.Error().Err(err).Msg("generar PDF")
			os.Exit(2)
		}
		if err := os.WriteFile(*pdfOut, pdf, 0o644); err != nil {
			log.Error().Err(err).Str("file", *pdfOut).Msg("escribir PDF")
			os.Exit(2)
		}
		fmt.Printf("informe:    %s\n", *pdfOut)
	}

	if !v.Valid {
		fmt.Printf("resultado:  MANIPULADA en bloque %d (%s)\n", v.Index, v.Reason)
		os.Exit(1)
	}
	fmt.Println("resultado:  ÍNTEGRA")
}

func readChain(ctx context.Context, cfg *config.Config, file string) ([]byte, error) {
	if file != "" {
		return os.ReadFile(file)
	}
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return store.Load(ctx)
}
