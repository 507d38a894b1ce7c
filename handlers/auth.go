package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/middleware"
	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/services"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,min=2,max=200"`
}

// LoginResponse carries the bearer token and the signed-in account.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Register godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerReq  true  "account"
// @Success      201   {object}  models.User
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	u, err := a.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		logger.LogAuth("register_failed", r, map[string]interface{}{"email": req.Email, "error": err.Error()})
		writeServiceError(w, r, err)
		return
	}
	logger.LogAuth("register", r, map[string]interface{}{"email": u.Email, "user_id": u.ID.String()})
	writeJSON(w, http.StatusCreated, u)
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginPayload  true  "credentials"
// @Success      200   {object}  LoginResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	u, err := a.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		logger.LogAuth("login_failed", r, map[string]interface{}{"email": req.Email})
		writeServiceError(w, r, err)
		return
	}

	token, expires, err := middleware.GenerateToken(u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogAuth("login", r, map[string]interface{}{"email": u.Email, "user_id": u.ID.String()})
	writeJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: expires, User: u})
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  ErrorResponse
// @Router       /api/v1/me [get]
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token subject")
		return
	}
	u, err := a.users.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "akun tidak ditemukan")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
