package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/inventory"
	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/pkg/validate"
)

// MovementHandler maneja las peticiones HTTP de movimientos de stock.
type MovementHandler struct {
	apply *inventory.ApplyMovementUseCase
	list  *inventory.ListMovementsUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(apply *inventory.ApplyMovementUseCase, list *inventory.ListMovementsUseCase) *MovementHandler {
	return &MovementHandler{apply: apply, list: list}
}

// Apply godoc
// @Summary      Registrar movimiento de stock
// @Tags         stock-movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "product_id, type (in|out|adjust), quantity (in/out) o new_stock (adjust), notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validate.Struct(in); len(fields) > 0 {
		return unprocessable(c, fields)
	}

	mov, err := h.apply.Apply(c.Context(), in, RequestMeta(c))
	if err != nil {
		var verr *inventory.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "datos de movimiento inválidos", Fields: verr.Fields,
			})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToMovementResponse(mov))
}

// List godoc
// @Summary      Listar movimientos de stock
// @Tags         stock-movements
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "in | out | adjust"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.list.List(q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// unprocessable responde 422 con los errores de campo del validador.
func unprocessable(c *fiber.Ctx, fields []validate.FieldError) error {
	out := make([]dto.FieldError, 0, len(fields))
	for _, fe := range fields {
		out = append(out, dto.FieldError{Field: fe.Field, Rule: fe.Rule, Message: fe.Message()})
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
		Code: "VALIDATION", Message: "datos inválidos", Fields: out,
	})
}
