package repository

import "github.com/hkxdv/pim-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas (DIP).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
}
