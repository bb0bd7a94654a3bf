package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	payload := middleware.AuthPayloadFromCtx(r.Context())

	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cartService.AddToCart(r.Context(), payload.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusCreated, item)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	payload := middleware.AuthPayloadFromCtx(r.Context())

	cart, err := h.cartService.GetCart(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) GetTotalQuantity(w http.ResponseWriter, r *http.Request) {
	payload := middleware.AuthPayloadFromCtx(r.Context())

	total, err := h.cartService.GetTotalQuantity(r.Context(), payload.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, dto.TotalQuantityResponse{TotalQuantity: total})
}
