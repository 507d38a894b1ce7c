package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/services"
)

type globalSettingReq struct {
	Value *int `json:"value" validate:"required,gte=0"`
}

type globalSettingsBatchReq struct {
	Settings map[string]int `json:"settings" validate:"required,min=1,dive,gte=0"`
}

// ListGlobalSettings godoc
// @Summary      Display overrides
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.GlobalSetting
// @Router       /api/v1/admin/global-settings [get]
func (a *API) ListGlobalSettings(w http.ResponseWriter, r *http.Request) {
	list, err := a.settings.ListGlobal(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateGlobalSetting godoc
// @Summary      Set one display override (0 = use computed value)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path  string            true  "setting key"
// @Param        body  body  globalSettingReq  true  "value"
// @Success      200  {object}  models.GlobalSetting
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/global-settings/{key} [put]
func (a *API) UpdateGlobalSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req globalSettingReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	setting, err := a.settings.UpdateGlobal(r.Context(), key, *req.Value)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogCRUD("update", "global_setting", key, r, map[string]interface{}{"value": *req.Value})
	writeJSON(w, http.StatusOK, setting)
}

// UpdateGlobalSettings godoc
// @Summary      Set several display overrides at once
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  globalSettingsBatchReq  true  "key to value"
// @Success      200  {array}  models.GlobalSetting
// @Failure      400  {object}  ErrorResponse
// @Router       /api/v1/admin/global-settings [put]
func (a *API) UpdateGlobalSettings(w http.ResponseWriter, r *http.Request) {
	var req globalSettingsBatchReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := validateStruct(req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	list, err := a.settings.UpdateGlobalBatch(r.Context(), req.Settings)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSetting) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, r, err)
		return
	}
	details := make(map[string]interface{}, len(req.Settings))
	for k, v := range req.Settings {
		details[k] = v
	}
	logger.LogCRUD("update", "global_setting", "batch", r, details)
	writeJSON(w, http.StatusOK, list)
}

// GetSiteSetting godoc
// @Summary      Hero or logo block
// @Tags         site
// @Produce      json
// @Param        key  path  string  true  "hero or logo"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/site-settings/{key} [get]
func (a *API) GetSiteSetting(w http.ResponseWriter, r *http.Request) {
	value, err := a.settings.GetSite(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(value))
}

// PutSiteSetting godoc
// @Summary      Save the hero or logo block
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key  path  string  true  "hero or logo"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/site-settings/{key} [put]
func (a *API) PutSiteSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
	if err != nil {
		writeError(w, http.StatusBadRequest, "cannot read body")
		return
	}

	value, err := a.settings.PutSite(r.Context(), key, raw)
	if err != nil {
		if errors.Is(err, services.ErrUnknownSetting) {
			writeServiceError(w, r, err)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.LogCRUD("update", "site_setting", key, r, nil)
	writeJSON(w, http.StatusOK, json.RawMessage(value))
}

// UploadImage godoc
// @Summary      Upload an image for the hero or logo block
// @Tags         admin
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        file    formData  file    true   "image"
// @Param        folder  formData  string  false  "hero or logo"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  ErrorResponse
// @Failure      413  {object}  ErrorResponse
// @Router       /api/v1/admin/uploads [post]
func (a *API) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.opts.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(a.opts.MaxUploadBytes + 1<<20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "ukuran file terlalu besar")
			return
		}
		writeError(w, http.StatusBadRequest, "bad multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	folder := r.FormValue("folder")
	switch folder {
	case "hero", "logo":
	case "":
		folder = "site"
	default:
		writeError(w, http.StatusBadRequest, "folder harus hero atau logo")
		return
	}

	obj, err := a.savePhoto(r, files[0], folder)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	logger.LogCRUD("create", "upload", obj.Key, r, map[string]interface{}{"folder": folder})
	writeJSON(w, http.StatusCreated, map[string]string{"url": obj.URL})
}
