package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
)

// InventoryHandler consultas del inventario derivado (cualquier rol autenticado).
type InventoryHandler struct {
	svc *ledger.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *ledger.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List godoc
// @Summary      Inventario actual
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "filtra por nombre o SKU (sin distinguir mayúsculas)"
// @Success      200  {object}  dto.InventoryResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	state := h.svc.Inventory()
	skus := inventory.Search(state, c.Query("q"))
	items := make([]dto.InventoryItemDTO, 0, len(skus))
	for _, sku := range skus {
		items = append(items, toItemDTO(state.Products[sku]))
	}
	return c.JSON(dto.InventoryResponse{Items: items, TotalUnits: state.TotalUnits()})
}

// Get godoc
// @Summary      Estado de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.InventoryItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	p, err := h.svc.Product(c.Params("sku"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toItemDTO(p))
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.ItemHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/history [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if _, err := h.svc.Product(sku); err != nil {
		return writeError(c, err)
	}
	blocks, err := toBlockDTOs(h.svc.History(sku))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ItemHistoryResponse{SKU: sku, Blocks: blocks})
}
