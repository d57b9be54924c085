package http

// Error is the JSON body returned on every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	BranchID string `json:"branchId"`
}

// CreateOrderResponse returns the identifier of the newly opened order.
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

// AddOrderItemRequest is the body of POST /api/v1/orders/{id}/items.
type AddOrderItemRequest struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// RegisterPaymentRequest is the body of POST /api/v1/orders/{id}/payments.
type RegisterPaymentRequest struct {
	AmountCents int64  `json:"amountCents"`
	Method      string `json:"method"`
}

// ChangeOrderStatusRequest is the body of POST /api/v1/orders/{id}/status.
// IdempotencyKey is the body-level fallback for the Idempotency-Key header.
type ChangeOrderStatusRequest struct {
	NewStatus       string `json:"newStatus"`
	ActorID         string `json:"actorId"`
	Reason          string `json:"reason,omitempty"`
	ManagerApproved bool   `json:"managerApproved,omitempty"`
	IdempotencyKey  string `json:"idempotencyKey,omitempty"`
}

// ChangeOrderStatusResponse reports the applied transition.
type ChangeOrderStatusResponse struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	AuditAction string `json:"auditAction,omitempty"`
}

// OrderItem is one line item in the order view.
type OrderItem struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Ready          bool   `json:"ready"`
}

// OrderPayment is one captured payment in the order view.
type OrderPayment struct {
	AmountCents int64  `json:"amountCents"`
	Method      string `json:"method"`
}

// Order is the read model returned by GET /api/v1/orders/{id}.
type Order struct {
	OrderID    string         `json:"orderId"`
	BranchID   string         `json:"branchId"`
	Status     string         `json:"status"`
	VoidReason string         `json:"voidReason,omitempty"`
	TotalCents int64          `json:"totalCents"`
	PaidCents  int64          `json:"paidCents"`
	Items      []OrderItem    `json:"items"`
	Payments   []OrderPayment `json:"payments"`
}

// Transitions is the body returned by GET /api/v1/orders/{id}/transitions.
type Transitions struct {
	OrderID       string   `json:"orderId"`
	CurrentStatus string   `json:"currentStatus"`
	Allowed       []string `json:"allowed"`
}
