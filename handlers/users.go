package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/middleware"
	"agromopomulo.id/bankpohon/models"
)

type roleReq struct {
	Role string `json:"role" validate:"required,role"`
}

// ListUsers godoc
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query  int  false  "page"
// @Param        limit  query  int  false  "page size"
// @Success      200  {object}  models.Page[models.User]
// @Router       /api/v1/admin/users [get]
func (a *API) ListUsers(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := a.users.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// SetUserRole godoc
// @Summary      Change the role of an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string   true  "user id"
// @Param        body  body  roleReq  true  "role"
// @Success      200  {object}  models.User
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/users/{id}/role [put]
func (a *API) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req roleReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if id.String() == middleware.GetUserID(r) && req.Role != models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "tidak dapat mencabut peran admin sendiri")
		return
	}

	u, err := a.users.SetRole(r.Context(), id, req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogCRUD("update", "user_role", id.String(), r, map[string]interface{}{"role": req.Role})
	writeJSON(w, http.StatusOK, u)
}
