package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/RoyceAzure/lab/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	catalogService service.ICatalogService
}

func NewCatalogHandler(catalogService service.ICatalogService) *CatalogHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &CatalogHandler{catalogService: catalogService}
}

func parseIDParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.GetCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		rest.ErrorJSON(w, http.StatusBadRequest, "name is required")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := &model.Product{
		Name:         req.Name,
		Brand:        req.Brand,
		Price:        req.Price,
		DiscountRate: req.DiscountRate,
		Stock:        req.Stock,
		CategoryID:   req.CategoryID,
		ImageURL:     req.ImageURL,
		SKU:          req.SKU,
	}

	created, err := h.catalogService.CreateProduct(r.Context(), product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, created)
}

func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.GetProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var patch service.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), productID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalogService.DeleteProduct(r.Context(), productID); err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, map[string]string{"detail": "deleted"})
}
