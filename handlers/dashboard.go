package handlers

import (
	"net/http"

	"agromopomulo.id/bankpohon/pkg/contribution"
	"agromopomulo.id/bankpohon/services"
)

// SummaryResponse is the public landing page counter block.
type SummaryResponse struct {
	State    contribution.State   `json:"state"`
	Totals   contribution.Totals  `json:"totals"`
	Display  contribution.Display `json:"display"`
	TotalOPD int                  `json:"total_opd"`
}

// DashboardResponse is the admin overview.
type DashboardResponse struct {
	State        contribution.State         `json:"state"`
	Totals       contribution.Totals        `json:"totals"`
	Display      contribution.Display       `json:"display"`
	Registration services.RegistrationStats `json:"registrations"`
	OPD          []contribution.Entry       `json:"opd"`
}

// Summary godoc
// @Summary      Program totals for the landing page
// @Description  Totals over every registration; admin display overrides replace a figure when set.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  SummaryResponse
// @Failure      503  {object}  ReportFailure
// @Router       /api/v1/summary [get]
func (a *API) Summary(w http.ResponseWriter, r *http.Request) {
	res, ok := a.loadReport(w, r, contribution.Unclamped)
	if !ok {
		return
	}
	overrides, err := a.settings.Overrides(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	totals := contribution.ComputeTotals(res.Units, res.Registrations)
	writeJSON(w, http.StatusOK, SummaryResponse{
		State:    res.State,
		Totals:   totals,
		Display:  contribution.ApplyOverrides(totals, overrides),
		TotalOPD: len(res.Units),
	})
}

// AdminDashboard godoc
// @Summary      Admin overview with per-OPD progress
// @Description  Per-OPD percentages are capped at 100 for progress bars.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  DashboardResponse
// @Failure      503  {object}  ReportFailure
// @Router       /api/v1/admin/dashboard [get]
func (a *API) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	res, ok := a.loadReport(w, r, contribution.ClampTo100)
	if !ok {
		return
	}
	overrides, err := a.settings.Overrides(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	regStats, err := a.regs.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entries := make([]contribution.Entry, len(res.Stats))
	for i, s := range res.Stats {
		entries[i] = contribution.NewEntry(s)
	}
	totals := contribution.ComputeTotals(res.Units, res.Registrations)
	writeJSON(w, http.StatusOK, DashboardResponse{
		State:        res.State,
		Totals:       totals,
		Display:      contribution.ApplyOverrides(totals, overrides),
		Registration: regStats,
		OPD:          entries,
	})
}
