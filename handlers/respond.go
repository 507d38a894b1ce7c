package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/services"
	"agromopomulo.id/bankpohon/storage"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.App().WithError(err).Warn("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps service sentinels to HTTP statuses. Anything
// unrecognised is logged and answered with 500 without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(w, http.StatusNotFound, "data tidak ditemukan")
	case errors.Is(err, services.ErrDuplicateName):
		writeError(w, http.StatusConflict, "nama OPD sudah digunakan")
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email sudah terdaftar")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "email atau password salah")
	case errors.Is(err, services.ErrInactiveAccount):
		writeError(w, http.StatusForbidden, "akun tidak aktif")
	case errors.Is(err, services.ErrUnknownOPD):
		writeError(w, http.StatusBadRequest, "OPD tidak ditemukan")
	case errors.Is(err, services.ErrUnknownSetting):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "ukuran file terlalu besar")
	case errors.Is(err, storage.ErrUnsupportedImage):
		writeError(w, http.StatusBadRequest, "file harus berupa gambar JPG, PNG atau GIF")
	default:
		logger.App().WithError(err).WithField("path", r.URL.Path).Error("request failed")
		writeError(w, http.StatusInternalServerError, "terjadi kesalahan pada server")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
