package handlers

import (
	"net/http"

	"agromopomulo.id/bankpohon/models"
	"agromopomulo.id/bankpohon/utils"
)

// Map godoc
// @Summary      Planting locations as GeoJSON
// @Description  Point features for registrations with both coordinates. Contact details are not included.
// @Tags         map
// @Produce      application/geo+json
// @Param        opd_id  query  string  false  "filter by OPD"
// @Success      200
// @Router       /api/v1/map [get]
func (a *API) Map(w http.ResponseWriter, r *http.Request) {
	params, err := models.ParseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	regs, err := a.regs.WithLocation(r.Context(), params.OPDID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	fc := utils.RegistrationsToGeoJSON(regs)
	body, err := fc.MarshalJSON()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
