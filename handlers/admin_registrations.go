package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/utils"
)

// TrendResponse is the registration time series of the admin panel.
type TrendResponse struct {
	Period  string              `json:"period"`
	Buckets []utils.TrendBucket `json:"buckets"`
}

// ListRegistrations godoc
// @Summary      Registrations, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        opd_id  query  string  false  "filter by OPD (all = no filter)"
// @Param        page    query  int     false  "page"
// @Param        limit   query  int     false  "page size"
// @Success      200  {object}  models.Page[models.TreeRegistration]
// @Router       /api/v1/admin/registrations [get]
func (a *API) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := a.regs.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetRegistration godoc
// @Summary      One registration with its OPD
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "registration id"
// @Success      200  {object}  models.TreeRegistration
// @Failure      404  {object}  ErrorResponse
// @Router       /api/v1/admin/registrations/{id} [get]
func (a *API) GetRegistration(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid registration id")
		return
	}
	reg, err := a.regs.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// RegistrationStats godoc
// @Summary      Headline figures of the registrations panel
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.RegistrationStats
// @Router       /api/v1/admin/registrations/stats [get]
func (a *API) RegistrationStats(w http.ResponseWriter, r *http.Request) {
	st, err := a.regs.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// RegistrationTrend godoc
// @Summary      Registrations and trees per period
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "day (default), week or month"
// @Param        opd_id  query  string  false  "filter by OPD"
// @Success      200  {object}  TrendResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /api/v1/admin/registrations/trend [get]
func (a *API) RegistrationTrend(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = utils.PeriodDay
	}
	if !utils.IsValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "period harus day, week atau month")
		return
	}
	params, err := models.ParseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := a.now().In(a.opts.Location)
	from := utils.DefaultTrendWindow(now, period)
	points, err := a.regs.TrendPoints(r.Context(), from, params.OPDID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	samples := make([]utils.TrendSample, len(points))
	for i, p := range points {
		samples[i] = utils.TrendSample{At: p.CreatedAt, Trees: p.TreeCount}
	}
	writeJSON(w, http.StatusOK, TrendResponse{
		Period:  period,
		Buckets: utils.GroupByPeriod(samples, period, from, now, a.opts.Location),
	})
}
