package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/usecase"
	"github.com/hkxdv/pim-api/pkg/validate"
)

// AssistantHandler expone el asistente de inventario basado en LLM.
type AssistantHandler struct {
	uc *usecase.AssistantUseCase
}

// NewAssistantHandler construye el handler.
func NewAssistantHandler(uc *usecase.AssistantUseCase) *AssistantHandler {
	return &AssistantHandler{uc: uc}
}

// Ask godoc
// @Summary      Preguntar al asistente de inventario
// @Description  Responde preguntas en lenguaje natural usando el inventario actual como contexto.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AskAssistantRequest  true  "Pregunta"
// @Success      200   {object}  dto.AskAssistantResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/assistant/ask [post]
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var in dto.AskAssistantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if fields := validate.Struct(in); len(fields) > 0 {
		return unprocessable(c, fields)
	}

	out, err := h.uc.Ask(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "UPSTREAM", Message: "el asistente no está disponible en este momento",
		})
	}
	return c.JSON(out)
}
