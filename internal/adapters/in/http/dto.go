package http

import (
	"time"

	"orchestrator/internal/core/domain/model/order"
)

type CreateOrderRequest struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	PageCount  int    `json:"pageCount"`
	CoverKind  string `json:"coverKind"`
	FinishKind string `json:"finishKind"`
	Quantity   int    `json:"quantity"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type OrderResponse struct {
	OrderID         string     `json:"orderId"`
	State           string     `json:"state"`
	CreatedAt       time.Time  `json:"createdAt"`
	EstimatedCost   string     `json:"estimatedCost"`
	OrchestratedAt  *time.Time `json:"orchestratedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// ErrorResponse carries Fields only for validation failures.
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func toOrderResponse(o *order.ProductionOrder) OrderResponse {
	resp := OrderResponse{
		OrderID:       o.ID().String(),
		State:         o.State().String(),
		CreatedAt:     o.CreatedAt(),
		EstimatedCost: o.Specification().EstimatedCostString(),
	}
	if at, ok := o.OrchestratedAt(); ok {
		resp.OrchestratedAt = &at
	}
	if reason, ok := o.RejectionReason(); ok {
		resp.RejectionReason = reason
	}
	return resp
}
