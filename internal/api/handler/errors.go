package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

// writeServiceError 把服務層錯誤分類映射成 HTTP 狀態碼
// ErrTransientLockConflict 回 409，告知呼叫端可退避重試
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, db.ErrProductNotFound),
		errors.Is(err, db.ErrCategoryNotFound),
		errors.Is(err, db.ErrOrderNotFound),
		errors.Is(err, db.ErrUserNotFound):
		rest.ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrInsufficientStock),
		errors.Is(err, db.ErrInvalidAmount),
		errors.Is(err, db.ErrEmptyOrder),
		errors.Is(err, db.ErrDuplicateUser),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDiscountRate),
		errors.Is(err, service.ErrInvalidCredentials):
		rest.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		rest.ErrorJSON(w, http.StatusForbidden, err.Error())
	case errors.Is(err, db.ErrTransientLockConflict):
		rest.ErrorJSON(w, http.StatusConflict, err.Error())
	default:
		rest.ErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
