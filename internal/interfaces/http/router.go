package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/audit"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.Service
	Report    *audit.ReportUseCase
	JWTSecret string
	AppName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "blocks": len(deps.Ledger.Blocks())})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	ledgerHandler := NewLedgerHandler(deps.Ledger, deps.Report)
	lg := protected.Group("/ledger")
	// El permiso de Propose depende del txType: lo decide el handler.
	lg.Post("/transactions", RequireRole(entity.RoleAdmin, entity.RoleInventoryManager), ledgerHandler.Propose)
	lg.Get("/blocks", RequirePermission(entity.ActionViewLedger), ledgerHandler.Blocks)
	lg.Get("/verify", RequirePermission(entity.ActionVerifyChain), ledgerHandler.Verify)
	lg.Get("/report", RequirePermission(entity.ActionVerifyChain), ledgerHandler.Report)
	lg.Post("/reset", RequirePermission(entity.ActionClearLedger), ledgerHandler.Reset)

	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv := protected.Group("/inventory", RequirePermission(entity.ActionViewProducts))
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:sku", inventoryHandler.Get)
	inv.Get("/:sku/history", RequirePermission(entity.ActionViewItemHistory), inventoryHandler.History)

	dashboardHandler := NewDashboardHandler(deps.Ledger)
	protected.Get("/dashboard", RequirePermission(entity.ActionViewDashboard), dashboardHandler.Get)
}
