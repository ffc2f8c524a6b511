package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var rej *domain.RejectionError
	if errors.As(err, &rej) {
		status := fiber.StatusConflict
		if rej.Code == domain.CodeUnknownSku {
			status = fiber.StatusNotFound
		}
		details := map[string]any{"sku": rej.SKU}
		switch rej.Code {
		case domain.CodeInsufficientStock:
			details["location"] = rej.Location
			details["available"] = rej.Available
			details["requested"] = rej.Requested
		case domain.CodeQuantityLimit:
			details["available"] = rej.Available
			details["requested"] = rej.Requested
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: rej.Code, Message: rej.Error(), Details: details})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, domain.ErrPersist):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: "no se pudo guardar la cadena, intente más tarde"})
	case errors.Is(err, ledger.ErrNotLoaded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_READY", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
