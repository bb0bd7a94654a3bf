package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	payload := middleware.AuthPayloadFromCtx(r.Context())

	var req service.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), payload.UserID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	payload := middleware.AuthPayloadFromCtx(r.Context())

	orders, err := h.orderService.GetOrdersByUserID(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	payload := middleware.AuthPayloadFromCtx(r.Context())

	orderID, err := parseIDParam(r, "id")
	if err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), payload.UserID, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, order)
}
