package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
)

// DashboardHandler KPIs del inventario.
type DashboardHandler struct {
	svc *ledger.Service
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(svc *ledger.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Get godoc
// @Summary      Dashboard del inventario
// @Description  Unidades y valor total, largo de la cadena, últimos 5 movimientos y productos con stock bajo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	d := h.svc.Dashboard()
	recent, err := toBlockDTOs(d.Recent)
	if err != nil {
		return writeError(c, err)
	}
	low := make([]dto.LowStockDTO, 0, len(d.LowStock))
	for _, it := range d.LowStock {
		low = append(low, dto.LowStockDTO{SKU: it.SKU, Name: it.Name, Stock: it.Stock})
	}
	return c.JSON(dto.DashboardDTO{
		TotalUnits:  d.TotalUnits,
		TotalValue:  d.TotalValue,
		SKUCount:    d.SKUCount,
		ChainLength: d.ChainLength,
		Recent:      recent,
		LowStock:    low,
	})
}
