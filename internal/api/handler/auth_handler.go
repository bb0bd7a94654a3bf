package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/api/dto"
	"github.com/RoyceAzure/lab/storefront/internal/pkg/rest"
	"github.com/RoyceAzure/lab/storefront/internal/service"
)

type AuthHandler struct {
	authService   service.IAuthService
	tokenDuration time.Duration
}

func NewAuthHandler(authService service.IAuthService, tokenDuration time.Duration) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService:   authService,
		tokenDuration: tokenDuration,
	}
}

func (a *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		rest.ErrorJSON(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := a.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.SuccessJSON(w, http.StatusOK, dto.ConvertUserToResponse(user))
}

func (a *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accessToken, _, _, err := a.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	rest.SuccessJSON(w, http.StatusOK, dto.SigninResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(a.tokenDuration.Seconds()),
	})
}
