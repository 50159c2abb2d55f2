package usecase

import (
	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// DashboardUseCase métricas agregadas del inventario (solo lectura).
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Summary devuelve el resumen para el tablero administrativo.
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummaryResponse, error) {
	s, err := uc.repo.GetDashboardSummary()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		TotalProducts:    s.TotalProducts,
		ActiveProducts:   s.ActiveProducts,
		OutOfStock:       s.OutOfStock,
		InventoryValue:   s.InventoryValue,
		MovementsLast30d: s.MovementsLast30d,
	}, nil
}
