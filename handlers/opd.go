package handlers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/services"
)

type createOPDReq struct {
	Name                string `json:"name" validate:"required,max=200"`
	PersonnelCount      int    `json:"personnel_count" validate:"gte=0"`
	TreeTargetPerPerson *int   `json:"tree_target_per_person" validate:"omitnil,min=1"`
}

type updateOPDReq struct {
	Name                *string `json:"name" validate:"omitnil,min=1,max=200"`
	PersonnelCount      *int    `json:"personnel_count" validate:"omitnil,gte=0"`
	TreeTargetPerPerson *int    `json:"tree_target_per_person" validate:"omitnil,min=1"`
}

// ListOPD godoc
// @Summary      List OPD ordered by name
// @Tags         opd
// @Produce      json
// @Success      200  {array}  models.OPD
// @Router       /api/v1/opd [get]
func (a *API) ListOPD(w http.ResponseWriter, r *http.Request) {
	list, err := a.opds.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// CreateOPD godoc
// @Summary      Create an OPD
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  createOPDReq  true  "opd"
// @Success      201  {object}  models.OPD
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/v1/admin/opd [post]
func (a *API) CreateOPD(w http.ResponseWriter, r *http.Request) {
	var req createOPDReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	opd := &models.OPD{Name: req.Name, PersonnelCount: req.PersonnelCount}
	if req.TreeTargetPerPerson != nil {
		opd.TreeTargetPerPerson = *req.TreeTargetPerPerson
	}
	if err := a.opds.Create(r.Context(), opd); err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogCRUD("create", "opd", opd.ID.String(), r, map[string]interface{}{"name": opd.Name})
	writeJSON(w, http.StatusCreated, opd)
}

// UpdateOPD godoc
// @Summary      Update an OPD
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string        true  "opd id"
// @Param        body  body  updateOPDReq  true  "fields to change"
// @Success      200  {object}  models.OPD
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /api/v1/admin/opd/{id} [put]
func (a *API) UpdateOPD(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid opd id")
		return
	}
	var req updateOPDReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	opd, err := a.opds.Update(r.Context(), id, services.OPDUpdate{
		Name:                req.Name,
		PersonnelCount:      req.PersonnelCount,
		TreeTargetPerPerson: req.TreeTargetPerPerson,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogCRUD("update", "opd", id.String(), r, map[string]interface{}{
		"name":                   opd.Name,
		"personnel_count":        opd.PersonnelCount,
		"tree_target_per_person": opd.TreeTargetPerPerson,
	})
	writeJSON(w, http.StatusOK, opd)
}

// DeleteOPD godoc
// @Summary      Delete an OPD; its registrations keep existing without a unit
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "opd id"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/opd/{id} [delete]
func (a *API) DeleteOPD(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid opd id")
		return
	}
	if err := a.opds.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogCRUD("delete", "opd", id.String(), r, nil)
	w.WriteHeader(http.StatusNoContent)
}
