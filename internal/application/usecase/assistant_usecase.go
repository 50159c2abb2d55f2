package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/application/ports"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// assistantTimeout límite para la llamada al proveedor LLM; el adaptador tiene
// además su propio timeout de red.
const assistantTimeout = 15 * time.Second

// assistantContextSize cuántos productos se incluyen como contexto del modelo.
const assistantContextSize = 25

// AssistantUseCase responde preguntas en lenguaje natural sobre el inventario:
// arma un snapshot de productos y stock y lo pasa como contexto al LLM.
type AssistantUseCase struct {
	llm         ports.LLMService
	productRepo repository.ProductRepository
}

// NewAssistantUseCase construye el caso de uso.
func NewAssistantUseCase(llm ports.LLMService, productRepo repository.ProductRepository) *AssistantUseCase {
	return &AssistantUseCase{llm: llm, productRepo: productRepo}
}

// Ask responde la pregunta usando el snapshot de inventario como contexto.
func (uc *AssistantUseCase) Ask(ctx context.Context, in dto.AskAssistantRequest) (*dto.AskAssistantResponse, error) {
	snapshot, err := uc.buildSnapshot()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, assistantTimeout)
	defer cancel()

	answer, model, err := uc.llm.Ask(ctx, in.Question, snapshot)
	if err != nil {
		return nil, err
	}
	return &dto.AskAssistantResponse{Answer: answer, Model: model}, nil
}

// buildSnapshot serializa los productos activos más recientes en texto plano
// compacto (sku, nombre, stock, precio) para el contexto del modelo.
func (uc *AssistantUseCase) buildSnapshot() (string, error) {
	active := true
	page, err := uc.productRepo.List(repository.ProductFilter{
		IsActive:      &active,
		SortField:     "created_at",
		SortDirection: "desc",
		Page:          1,
		PerPage:       assistantContextSize,
	})
	if err != nil {
		return "", fmt.Errorf("snapshot de inventario: %w", err)
	}

	var b strings.Builder
	b.WriteString("Inventario actual (sku | nombre | stock | precio):\n")
	for _, p := range page.Items {
		fmt.Fprintf(&b, "%s | %s | %d | %s\n", p.SKU, p.Name, p.Stock, p.Price.StringFixed(2))
	}
	return b.String(), nil
}
