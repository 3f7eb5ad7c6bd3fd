// Package events maps domain aggregates to the notification payloads consumed
// by downstream systems.
package events

import (
	"time"

	"orchestrator/internal/core/domain/model/order"
)

// OrderCreatedTopic is the default channel for OrderCreated notifications.
const OrderCreatedTopic = "order-created"

// OrderCreated announces a newly persisted production order.
type OrderCreated struct {
	OrderID     string `json:"order_id"`
	Timestamp   string `json:"timestamp"`
	Status      string `json:"status"`
	Books       Books  `json:"books"`
	AckRequired bool   `json:"ack_required"`
}

// Books is the book run block of OrderCreated. BookID stays nil until a
// catalog identifier exists and is emitted as JSON null.
type Books struct {
	BookID    *string `json:"book_id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Pages     int     `json:"pages"`
	Quantity  int     `json:"quantity"`
	CoverType string  `json:"covertype"`
	PageType  string  `json:"pagetype"`
}

// BuildOrderCreated is total over any constructed order. The timestamp is the
// order's creation time, the status its lower-case state name.
func BuildOrderCreated(o *order.ProductionOrder) OrderCreated {
	spec := o.Specification()

	return OrderCreated{
		OrderID:   o.ID().String(),
		Timestamp: o.CreatedAt().Format(time.RFC3339Nano),
		Status:    o.State().Lower(),
		Books: Books{
			Title:     spec.Title(),
			Author:    spec.Author(),
			Pages:     spec.PageCount(),
			Quantity:  spec.Quantity(),
			CoverType: spec.CoverKind().String(),
			PageType:  spec.FinishKind().String(),
		},
		AckRequired: true,
	}
}
