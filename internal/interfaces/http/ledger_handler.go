package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/audit"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// LedgerHandler maneja propuesta de transacciones y consultas de la cadena (protegido).
type LedgerHandler struct {
	svc    *ledger.Service
	report *audit.ReportUseCase
}

// NewLedgerHandler construye el handler. report puede ser nil (sin informe PDF).
func NewLedgerHandler(svc *ledger.Service, report *audit.ReportUseCase) *LedgerHandler {
	return &LedgerHandler{svc: svc, report: report}
}

// Propose godoc
// @Summary      Proponer una transacción de inventario
// @Description  Valida la transacción contra el inventario actual y la sella en un bloque nuevo.
// @Description  CREATE_ITEM requiere rol admin; STOCK_IN, STOCK_OUT y MOVE admin o inventory_manager.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProposeTransactionRequest  true  "txType y campos del movimiento"
// @Success      201   {object}  dto.BlockDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "UNKNOWN_SKU"
// @Failure      409   {object}  dto.ErrorResponse  "DUPLICATE_SKU, INSUFFICIENT_STOCK, SAME_LOCATION, QUANTITY_LIMIT"
// @Failure      503   {object}  dto.ErrorResponse  "PERSISTENCE"
// @Router       /api/ledger/transactions [post]
func (h *LedgerHandler) Propose(c *fiber.Ctx) error {
	var in dto.ProposeTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, ok := toTransaction(in, ActorFrom(c))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "txType inválido: " + in.TxType})
	}
	if !entity.Can(GetRole(c), entity.ActionFor(draft.Kind())) {
		return forbidden(c)
	}

	block, err := h.svc.Propose(c.UserContext(), draft)
	if err != nil {
		return writeError(c, err)
	}
	out, err := toBlockDTO(block)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Blocks godoc
// @Summary      Listar bloques de la cadena
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de bloques (default 50, máx 500)"
// @Param        offset  query  int  false  "desde el índice"
// @Success      200  {object}  dto.BlocksResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ledger/blocks [get]
func (h *LedgerHandler) Blocks(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	blocks := h.svc.Blocks()
	total := len(blocks)
	from := min(page.Offset, total)
	to := min(from+page.Limit, total)

	items, err := toBlockDTOs(blocks[from:to])
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BlocksResponse{
		Blocks: items,
		Page:   dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// Verify godoc
// @Summary      Verificar la integridad de la cadena
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerificationDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/ledger/verify [get]
func (h *LedgerHandler) Verify(c *fiber.Ctx) error {
	return c.JSON(toVerificationDTO(h.svc.Verify(), h.svc.HashAlgorithm()))
}

// Report godoc
// @Summary      Descargar el informe de auditoría (PDF)
// @Tags         ledger
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/ledger/report [get]
func (h *LedgerHandler) Report(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "informe no disponible"})
	}
	pdf, filename, err := h.report.Generate(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// Reset godoc
// @Summary      Reiniciar la cadena (sólo admin)
// @Description  Descarta todos los bloques y crea un génesis nuevo.
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BlockDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/ledger/reset [post]
func (h *LedgerHandler) Reset(c *fiber.Ctx) error {
	if err := h.svc.Reset(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	genesis, err := toBlockDTO(h.svc.Blocks()[0])
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(genesis)
}
