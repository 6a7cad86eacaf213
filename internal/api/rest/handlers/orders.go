package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/CameronXie/mealserve/internal/api/rest/response"
	"github.com/CameronXie/mealserve/internal/ordering"
)

// OrderingService is the order workflow used by the order handlers.
type OrderingService interface {
	PlaceOrder(ctx context.Context, storeID int64, items []ordering.LineItem, customerID int64) (*ordering.OrderSummary, error)
	ListPendingOrdersForOwner(ctx context.Context, ownerID int64) ([]ordering.CustomerOrders, error)
	CompleteOrders(ctx context.Context, ownerID, accountID int64) error
}

type LineItemRequest struct {
	MenuID   int64 `json:"menu_id"`
	Quantity int   `json:"quantity"`
}

// PlaceOrderHandler places the line items of the request body at the store in the path.
type PlaceOrderHandler struct {
	service OrderingService
	logger  *slog.Logger
}

func (h *PlaceOrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	customerID, ok := accountID(w, r, h.logger)
	if !ok {
		return
	}

	storeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, "failed to place order", err)
		return
	}

	var req []LineItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items := make([]ordering.LineItem, 0, len(req))
	for _, item := range req {
		items = append(items, ordering.LineItem{MenuID: item.MenuID, Quantity: item.Quantity})
	}

	summary, err := h.service.PlaceOrder(r.Context(), storeID, items, customerID)
	if err != nil {
		writeError(w, r, h.logger, "failed to place order", err)
		return
	}

	response.JSONResponse(w, http.StatusCreated, summary)
}

func NewPlaceOrderHandler(service OrderingService, logger *slog.Logger) http.Handler {
	return &PlaceOrderHandler{service: service, logger: logger}
}

// ListPendingOrdersHandler lists the pending orders of the authenticated owner's store.
type ListPendingOrdersHandler struct {
	service OrderingService
	logger  *slog.Logger
}

func (h *ListPendingOrdersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := accountID(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.ListPendingOrdersForOwner(r.Context(), ownerID)
	if err != nil {
		writeError(w, r, h.logger, "failed to list pending orders", err)
		return
	}

	response.JSONResponse(w, http.StatusOK, orders)
}

func NewListPendingOrdersHandler(service OrderingService, logger *slog.Logger) http.Handler {
	return &ListPendingOrdersHandler{service: service, logger: logger}
}

// CompleteOrdersHandler completes the pending orders of the customer in the path.
type CompleteOrdersHandler struct {
	service OrderingService
	logger  *slog.Logger
}

func (h *CompleteOrdersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := accountID(w, r, h.logger)
	if !ok {
		return
	}

	customerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, "failed to complete orders", err)
		return
	}

	if err := h.service.CompleteOrders(r.Context(), ownerID, customerID); err != nil {
		writeError(w, r, h.logger, "failed to complete orders", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func NewCompleteOrdersHandler(service OrderingService, logger *slog.Logger) http.Handler {
	return &CompleteOrdersHandler{service: service, logger: logger}
}
