package inventory

import (
	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// ListMovementsUseCase consulta de solo lectura sobre el historial de movimientos.
type ListMovementsUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(movRepo repository.StockMovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

// List devuelve movimientos filtrados por producto, tipo y rango de fechas.
func (uc *ListMovementsUseCase) List(q dto.MovementListQuery) (*dto.MovementListResponse, error) {
	q.Defaults()
	list, err := uc.movRepo.List(repository.MovementFilter{
		ProductID: q.ProductID,
		Type:      q.Type,
		From:      q.From,
		To:        q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items, Limit: q.Limit, Offset: q.Offset}, nil
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		UserID:         m.UserID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		NewStock:       m.NewStock,
		PreviousStock:  m.PreviousStock,
		ResultingStock: m.ResultingStock,
		Notes:          m.Notes,
		PerformedAt:    m.PerformedAt,
		IPAddress:      m.IPAddress,
		UserAgent:      m.UserAgent,
	}
}
