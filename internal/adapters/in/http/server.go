// Package http exposes the order API over echo.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"orchestrator/internal/core/application/usecases/commands"
	"orchestrator/internal/core/domain/model/kernel"
	"orchestrator/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.ProductionOrder, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, id kernel.UUID) (*order.ProductionOrder, error)
}

type RejectOrderHandler interface {
	Handle(ctx context.Context, cmd commands.RejectOrderCommand) (*order.ProductionOrder, error)
}

type DeleteOrderHandler interface {
	Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
}

// Server holds the echo handlers for the public and administrative routes.
type Server struct {
	createOrder CreateOrderHandler
	orders      OrderReader
	rejectOrder RejectOrderHandler
	deleteOrder DeleteOrderHandler
	logger      *slog.Logger
}

func NewServer(
	createOrder CreateOrderHandler,
	orders OrderReader,
	rejectOrder RejectOrderHandler,
	deleteOrder DeleteOrderHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrder: createOrder,
		orders:      orders,
		rejectOrder: rejectOrder,
		deleteOrder: deleteOrder,
		logger:      logger.With("component", "http_server"),
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.POST("/orders", s.CreateOrder)
	e.GET("/orders/:id", s.GetOrder)

	admin := e.Group("/admin")
	admin.POST("/orders/:id/reject", s.RejectOrder)
	admin.DELETE("/orders/:id", s.DeleteOrder)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /orders. The order is accepted once persisted, so
// the response is 202 whether or not the notification went out.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		req.Title, req.Author, req.PageCount, req.CoverKind, req.FinishKind, req.Quantity)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.createOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, toOrderResponse(created))
}

// GetOrder handles GET /orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := kernel.ParseUUID(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	found, err := s.orders.GetOrder(c.Request().Context(), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(found))
}

// RejectOrder handles POST /admin/orders/:id/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	var req RejectOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	id, errID := kernel.ParseUUID(c.Param("id"))
	cmd, errCmd := commands.NewRejectOrderCommand(id, req.Reason)
	if err := errors.Join(errID, errCmd); err != nil {
		return s.writeError(c, err)
	}

	rejected, err := s.rejectOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(rejected))
}

// DeleteOrder handles DELETE /admin/orders/:id.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := kernel.ParseUUID(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.deleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
