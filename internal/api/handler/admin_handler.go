package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type AdminHandler struct {
	reportService  service.IReportService
	catalogService service.ICatalogService
}

func NewAdminHandler(reportService service.IReportService, catalogService service.ICatalogService) *AdminHandler {
	if reportService == nil || catalogService == nil {
		panic("reportService and catalogService cannot be nil")
	}
	return &AdminHandler{
		reportService:  reportService,
		catalogService: catalogService,
	}
}

func (h *AdminHandler) TopSales(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.reportService.TopSales(r.Context(), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, results)
}

func (h *AdminHandler) SalesHistory(w http.ResponseWriter, r *http.Request) {
	var productID uint
	if raw := r.URL.Query().Get("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			rest.ErrorJSON(w, http.StatusBadRequest, "invalid product_id")
			return
		}
		productID = uint(id)
	}

	records, err := h.reportService.SalesHistory(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, records)
}

func (h *AdminHandler) ProductStats(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	stats, err := h.reportService.GetProductStats(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.Revenue(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, summary)
}

func (h *AdminHandler) Restock(w http.ResponseWriter, r *http.Request) {
	productID, err := parseIDParam(r, "id")
	if err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req dto.RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	newStock, err := h.catalogService.Restock(r.Context(), productID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rest.SuccessJSON(w, http.StatusOK, dto.RestockResponse{ProductID: productID, NewStock: newStock})
}
