// Package orderrepo persists production orders in PostgreSQL through GORM.
package orderrepo

import (
	"time"

	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionOrderDTO is one row of production_orders. The book specification
// is flattened into columns; kinds and state are stored by name.
type ProductionOrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Title           string          `gorm:"not null"`
	Author          string          `gorm:"not null"`
	PageCount       int             `gorm:"not null"`
	CoverKind       string          `gorm:"type:varchar(16);not null"`
	FinishKind      string          `gorm:"type:varchar(16);not null"`
	Quantity        int             `gorm:"not null"`
	EstimatedCost   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	State           string          `gorm:"type:varchar(16);not null;index:idx_production_orders_state_created,priority:1"`
	CreatedAt       time.Time       `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_production_orders_state_created,priority:2"`
	OrchestratedAt  *time.Time      `gorm:"type:timestamptz"`
	Version         int64           `gorm:"not null"`
	RejectionReason *string
}

func (ProductionOrderDTO) TableName() string {
	return "production_orders"
}

func fromDomain(o *order.ProductionOrder) ProductionOrderDTO {
	spec := o.Specification()

	dto := ProductionOrderDTO{
		ID:            o.ID().Bytes(),
		Title:         spec.Title(),
		Author:        spec.Author(),
		PageCount:     spec.PageCount(),
		CoverKind:     spec.CoverKind().String(),
		FinishKind:    spec.FinishKind().String(),
		Quantity:      spec.Quantity(),
		EstimatedCost: spec.EstimatedCost(),
		State:         o.State().String(),
		CreatedAt:     o.CreatedAt(),
		Version:       o.Version(),
	}

	if at, ok := o.OrchestratedAt(); ok {
		dto.OrchestratedAt = &at
	}
	if reason, ok := o.RejectionReason(); ok {
		dto.RejectionReason = &reason
	}

	return dto
}

func toDomain(dto ProductionOrderDTO) (*order.ProductionOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	cover, err := order.ParseCoverKind(dto.CoverKind)
	if err != nil {
		return nil, err
	}
	finish, err := order.ParseFinishKind(dto.FinishKind)
	if err != nil {
		return nil, err
	}

	spec, err := order.RestoreBookSpecification(
		dto.Title, dto.Author, dto.PageCount, cover, finish, dto.Quantity, dto.EstimatedCost,
	)
	if err != nil {
		return nil, err
	}

	state, err := order.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	return order.RestoreProductionOrder(id, spec, state, dto.CreatedAt, dto.OrchestratedAt, dto.RejectionReason, dto.Version)
}
