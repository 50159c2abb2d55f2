package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hkxdv/pim-api/internal/application/dto"
	"github.com/hkxdv/pim-api/internal/domain"
	"github.com/hkxdv/pim-api/internal/domain/entity"
	"github.com/hkxdv/pim-api/internal/domain/repository"
)

// ValidationError agrupa los errores de campo de un movimiento rechazado.
// Se reporta entero al caller (422) y no produce ningún efecto en BD.
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	return "validación de movimiento fallida"
}

// RequestMeta metadatos de la petición que se auditan junto al movimiento.
type RequestMeta struct {
	UserID    string
	IPAddress string
	UserAgent string
}

// ApplyMovementUseCase aplica movimientos de stock (in, out, adjust) de forma
// transaccional: bloquea la fila del producto (SELECT FOR UPDATE), calcula el
// stock resultante y persiste producto + movimiento con Commit o Rollback.
// El bloqueo por fila serializa movimientos concurrentes sobre el mismo
// producto; movimientos sobre productos distintos no se bloquean entre sí.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// validateRules aplica las reglas condicionales por tipo que los tags de
// validación no pueden expresar: quantity para in/out, new_stock para adjust,
// y exactamente uno de los dos presente.
func validateRules(in dto.ApplyMovementRequest) []dto.FieldError {
	var fields []dto.FieldError
	if !entity.ValidMovementType(in.Type) {
		fields = append(fields, dto.FieldError{
			Field: "type", Rule: "oneof",
			Message: "type debe ser in, out o adjust",
		})
		return fields
	}
	switch in.Type {
	case entity.MovementTypeAdjust:
		if in.NewStock == nil {
			fields = append(fields, dto.FieldError{
				Field: "new_stock", Rule: "required",
				Message: "new_stock es requerido para movimientos adjust",
			})
		} else if *in.NewStock < 0 {
			fields = append(fields, dto.FieldError{
				Field: "new_stock", Rule: "min",
				Message: "new_stock debe ser mayor o igual a 0",
			})
		}
		if in.Quantity != nil {
			fields = append(fields, dto.FieldError{
				Field: "quantity", Rule: "excluded",
				Message: "quantity no aplica a movimientos adjust",
			})
		}
	default: // in, out
		if in.Quantity == nil {
			fields = append(fields, dto.FieldError{
				Field: "quantity", Rule: "required",
				Message: "quantity es requerido para movimientos in/out",
			})
		} else if *in.Quantity < 1 {
			fields = append(fields, dto.FieldError{
				Field: "quantity", Rule: "min",
				Message: "quantity debe ser mayor o igual a 1",
			})
		}
		if in.NewStock != nil {
			fields = append(fields, dto.FieldError{
				Field: "new_stock", Rule: "excluded",
				Message: "new_stock solo aplica a movimientos adjust",
			})
		}
	}
	return fields
}

// Apply valida y aplica un movimiento. Devuelve el movimiento persistido.
// Errores posibles: *ValidationError (422), domain.ErrNotFound (404),
// domain.ErrInsufficientStock (409). Ningún error deja efectos en BD.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, in dto.ApplyMovementRequest, meta RequestMeta) (*entity.StockMovement, error) {
	if fields := validateRules(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	now := time.Now()
	var created *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto hasta el Commit/Rollback; dos "out"
		// simultáneos nunca validan suficiencia contra un stock obsoleto.
		product, err := productRepo.GetByIDForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.DeletedAt != nil {
			return domain.ErrNotFound
		}

		previous := product.Stock
		var resulting int64
		switch in.Type {
		case entity.MovementTypeIn:
			resulting = previous + *in.Quantity
		case entity.MovementTypeOut:
			resulting = previous - *in.Quantity
			if resulting < 0 {
				return domain.ErrInsufficientStock
			}
		case entity.MovementTypeAdjust:
			resulting = *in.NewStock
		}

		if err := productRepo.UpdateStock(in.ProductID, resulting); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			UserID:         meta.UserID,
			Type:           in.Type,
			Quantity:       in.Quantity,
			NewStock:       in.NewStock,
			PreviousStock:  previous,
			ResultingStock: resulting,
			Notes:          in.Notes,
			PerformedAt:    now,
			IPAddress:      meta.IPAddress,
			UserAgent:      meta.UserAgent,
			CreatedAt:      now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
