// Package http exposes the order lifecycle over a JSON HTTP API.
//
// Rejected transitions and refused operations are well-formed requests
// that the order's current state forbids; they return 422 with the refusal
// reason. Malformed input returns 400, a missing order 404, an idempotency
// key reused with a different body 409.
package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/idempotency"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	addOrderItemHandler      commands.AddOrderItemCommandHandler
	registerPaymentHandler   commands.RegisterPaymentCommandHandler
	markItemsReadyHandler    commands.MarkItemsReadyCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrderHandler              queries.GetOrderQueryHandler
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	addOrderItemHandler commands.AddOrderItemCommandHandler,
	registerPaymentHandler commands.RegisterPaymentCommandHandler,
	markItemsReadyHandler commands.MarkItemsReadyCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAllowedTransitionsHandler queries.GetAllowedTransitionsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:           createOrderHandler,
		addOrderItemHandler:          addOrderItemHandler,
		registerPaymentHandler:       registerPaymentHandler,
		markItemsReadyHandler:        markItemsReadyHandler,
		changeOrderStatusHandler:     changeOrderStatusHandler,
		getOrderHandler:              getOrderHandler,
		getAllowedTransitionsHandler: getAllowedTransitionsHandler,
	}
}

// RegisterRoutes wires the API routes onto the given Echo instance.
// The idempotency middleware guards every mutating route.
func (s *Server) RegisterRoutes(e *echo.Echo, idem *IdempotencyMiddleware) {
	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder, idem.Guard())
	v1.POST("/orders/:id/items", s.AddOrderItem, idem.Guard())
	v1.POST("/orders/:id/items/ready", s.MarkItemsReady, idem.Guard())
	v1.POST("/orders/:id/payments", s.RegisterPayment, idem.Guard())
	v1.POST("/orders/:id/status", s.ChangeOrderStatus, idem.Guard())

	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/orders/:id/transitions", s.GetAllowedTransitions)

	e.GET("/health", s.Health)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - opens a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	branchID, err := kernel.UUIDFromString(req.BranchID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid branch ID: " + err.Error(),
		})
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, branchID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.translateError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// AddOrderItem handles POST /api/v1/orders/:id/items - adds a line item.
func (s *Server) AddOrderItem(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	var req AddOrderItemRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewAddOrderItemCommand(orderID, req.Name, req.Quantity, req.UnitPriceCents)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid item data: " + err.Error(),
		})
	}

	if handleErr := s.addOrderItemHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.translateError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterPayment handles POST /api/v1/orders/:id/payments - records a payment.
func (s *Server) RegisterPayment(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	var req RegisterPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRegisterPaymentCommand(orderID, req.AmountCents, req.Method)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid payment data: " + err.Error(),
		})
	}

	if handleErr := s.registerPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.translateError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkItemsReady handles POST /api/v1/orders/:id/items/ready - marks all
// line items prepared.
func (s *Server) MarkItemsReady(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	cmd, err := commands.NewMarkItemsReadyCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	if handleErr := s.markItemsReadyHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.translateError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - requests a
// lifecycle transition. A rejection by the lifecycle rules is reported as
// 422 with the refusal reason; nothing is persisted in that case.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	var req ChangeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	newStatus, err := order.StatusFromString(req.NewStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid actor ID: " + err.Error(),
		})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, newStatus, actorID, req.Reason, req.ManagerApproved)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid transition data: " + err.Error(),
		})
	}

	decision, handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return s.translateError(ctx, handleErr)
	}

	if !decision.IsApproved() {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: decision.Reason(),
		})
	}

	return ctx.JSON(http.StatusOK, ChangeOrderStatusResponse{
		OrderID:     orderID.String(),
		Status:      newStatus.String(),
		AuditAction: decision.AuditAction(),
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns the order read model.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.translateError(ctx, err)
	}

	items := make([]OrderItem, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = OrderItem{
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			Ready:          item.Ready,
		}
	}

	payments := make([]OrderPayment, len(resp.Payments))
	for i, payment := range resp.Payments {
		payments[i] = OrderPayment{
			AmountCents: payment.AmountCents,
			Method:      payment.Method,
		}
	}

	return ctx.JSON(http.StatusOK, Order{
		OrderID:    resp.ID.String(),
		BranchID:   resp.BranchID.String(),
		Status:     resp.Status,
		VoidReason: resp.VoidReason,
		TotalCents: resp.TotalCents,
		PaidCents:  resp.PaidCents,
		Items:      items,
		Payments:   payments,
	})
}

// GetAllowedTransitions handles GET /api/v1/orders/:id/transitions -
// returns the statuses the lifecycle rules may move the order to.
func (s *Server) GetAllowedTransitions(ctx echo.Context) error {
	orderID, err := orderIDFromPath(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	query, err := queries.NewGetAllowedTransitionsQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request: " + err.Error(),
		})
	}

	resp, err := s.getAllowedTransitionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.translateError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Transitions{
		OrderID:       resp.OrderID.String(),
		CurrentStatus: resp.CurrentStatus,
		Allowed:       resp.Allowed,
	})
}

// translateError maps application errors onto HTTP status codes.
func (s *Server) translateError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrOperationNotPermitted):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, idempotency.ErrFingerprintMismatch):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func orderIDFromPath(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}
