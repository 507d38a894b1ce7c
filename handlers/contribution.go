package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"agromopomulo.id/bankpohon/logger"
	"agromopomulo.id/bankpohon/pkg/contribution"
)

// ReportFailure is the body of a report request whose load failed.
type ReportFailure struct {
	State contribution.State `json:"state"`
	Error string             `json:"error"`
}

// ContributionResponse is the loaded contribution report.
type ContributionResponse struct {
	State contribution.State   `json:"state"`
	Data  []contribution.Entry `json:"data"`
}

// ChartResponse wraps the chart payload in the same envelope.
type ChartResponse struct {
	State contribution.State     `json:"state"`
	Chart contribution.ChartData `json:"chart"`
}

// loadReport runs the two reads for the request. When it fails it answers
// 503 with the failed envelope and returns false.
func (a *API) loadReport(w http.ResponseWriter, r *http.Request, policy contribution.Policy) (contribution.Result, bool) {
	res := contribution.Load(r.Context(), a.report, policy)
	if res.State == contribution.StateLoaded {
		return res, true
	}

	entry := logger.App().WithError(res.Err).WithField("path", r.URL.Path)
	if res.Canceled() {
		// the client is gone; nobody will read the body
		entry.Debug("report load canceled")
	} else {
		entry.Error("report load failed")
	}
	writeJSON(w, http.StatusServiceUnavailable, ReportFailure{
		State: contribution.StateFailed,
		Error: "data kontribusi tidak dapat dimuat",
	})
	return res, false
}

// Contribution godoc
// @Summary      Per-OPD contribution report
// @Description  Units with at least one tree, in name order. all=true includes units without trees. Percentages are not capped.
// @Tags         contribution
// @Produce      json
// @Param        all  query  bool  false  "include units without trees"
// @Success      200  {object}  ContributionResponse
// @Failure      503  {object}  ReportFailure
// @Router       /api/v1/contribution [get]
func (a *API) Contribution(w http.ResponseWriter, r *http.Request) {
	res, ok := a.loadReport(w, r, contribution.Unclamped)
	if !ok {
		return
	}

	stats := res.Stats
	if all, _ := strconv.ParseBool(r.URL.Query().Get("all")); !all {
		stats = contribution.Contributed(stats)
	}
	entries := make([]contribution.Entry, len(stats))
	for i, s := range stats {
		entries[i] = contribution.NewEntry(s)
	}
	writeJSON(w, http.StatusOK, ContributionResponse{State: res.State, Data: entries})
}

// ContributionChart godoc
// @Summary      Bar chart of trees planted per contributing OPD
// @Tags         contribution
// @Produce      json
// @Success      200  {object}  ChartResponse
// @Failure      503  {object}  ReportFailure
// @Router       /api/v1/contribution/chart [get]
func (a *API) ContributionChart(w http.ResponseWriter, r *http.Request) {
	res, ok := a.loadReport(w, r, contribution.Unclamped)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ChartResponse{State: res.State, Chart: contribution.BuildChart(res.Stats)})
}

// ContributionDetail godoc
// @Summary      Contribution of one OPD
// @Tags         contribution
// @Produce      json
// @Param        id  path  string  true  "opd id"
// @Success      200  {object}  contribution.Entry
// @Failure      404  {object}  ErrorResponse
// @Failure      503  {object}  ReportFailure
// @Router       /api/v1/contribution/{id} [get]
func (a *API) ContributionDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid opd id")
		return
	}
	res, ok := a.loadReport(w, r, contribution.Unclamped)
	if !ok {
		return
	}
	s, found := contribution.Find(res.Stats, id.String())
	if !found {
		writeError(w, http.StatusNotFound, "OPD tidak ditemukan")
		return
	}
	writeJSON(w, http.StatusOK, contribution.NewEntry(s))
}
