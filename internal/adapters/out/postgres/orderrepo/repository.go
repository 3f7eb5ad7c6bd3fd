package orderrepo

import (
	"context"
	"errors"
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"
	"orchestrator/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository and
// ports.PendingOrderFinder on top of GORM.
//
// Updates are conditional on the version column:
//
//	UPDATE production_orders SET ..., version = v+1 WHERE id = ? AND version = v
//
// so of two writers holding the same version exactly one affects a row.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save inserts an order without identity or updates a persisted one.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if !o.IsPersisted() {
		return r.insert(ctx, o)
	}
	return r.update(ctx, o)
}

func (r *GormOrderRepository) insert(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error) {
	dto := fromDomain(o)
	dto.ID = kernel.NewUUID().Bytes()
	dto.Version = 1

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.NewPersistenceErrorWithCause("insert order", err)
	}

	return restored(dto)
}

func (r *GormOrderRepository) update(ctx context.Context, o *order.ProductionOrder) (*order.ProductionOrder, error) {
	dto := fromDomain(o)
	dto.Version = o.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&ProductionOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, o.Version()).
		Updates(map[string]any{
			"state":            dto.State,
			"orchestrated_at":  dto.OrchestratedAt,
			"rejection_reason": dto.RejectionReason,
			"version":          dto.Version,
		})
	if result.Error != nil {
		return nil, errs.NewPersistenceErrorWithCause("update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, r.missedUpdate(ctx, o)
	}

	return restored(dto)
}

// missedUpdate tells a vanished row apart from a stale version.
func (r *GormOrderRepository) missedUpdate(ctx context.Context, o *order.ProductionOrder) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductionOrderDTO{}).Where("id = ?", o.ID().Bytes()).Count(&count).Error; err != nil {
		return errs.NewPersistenceErrorWithCause("update order", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("id", o.ID().String())
	}
	return errs.NewConcurrencyConflictError("order", o.ID().String(), o.Version())
}

// FindByID returns *errs.ObjectNotFoundError for an unknown identity.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductionOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("id", id.String())
		}
		return nil, errs.NewPersistenceErrorWithCause("find order", err)
	}

	return restored(dto)
}

func (r *GormOrderRepository) DeleteByID(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ProductionOrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return errs.NewPersistenceErrorWithCause("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", id.String())
	}
	return nil
}

func (r *GormOrderRepository) ListPendingCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.ProductionOrder, error) {
	var dtos []ProductionOrderDTO
	err := r.db.WithContext(ctx).
		Where("state = ? AND created_at < ?", order.Pending.String(), cutoff.UTC()).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("list pending orders", err)
	}

	orders := make([]*order.ProductionOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, restoreErr := restored(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// restored maps a row back to the aggregate. A row that no longer satisfies
// the aggregate invariants is a storage fault, not a caller error.
func restored(dto ProductionOrderDTO) (*order.ProductionOrder, error) {
	o, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("restore order "+dto.ID.String(), err)
	}
	return o, nil
}
