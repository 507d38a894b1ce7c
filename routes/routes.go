package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	"agromopomulo.id/bankpohon/docs"
	"agromopomulo.id/bankpohon/handlers"
	"agromopomulo.id/bankpohon/middleware"
)

// RegisterRoutes sets up all application routes. uploadDir is served under
// /uploads/ when non-empty (local storage driver).
func RegisterRoutes(api *handlers.API, uploadDir string) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/auth/register", api.Register).Methods("POST")
	r.HandleFunc("/auth/login", api.Login).Methods("POST")
	r.HandleFunc("/swagger/doc.json", swaggerDoc).Methods("GET")
	r.HandleFunc("/healthz", api.Health).Methods("GET")
	if uploadDir != "" {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))),
		).Methods("GET")
	}

	public := r.PathPrefix("/api/v1").Subrouter()
	registerPublicRoutes(public, api)

	// =====================================================
	// Authenticated API Routes (require JWT)
	// =====================================================
	authed := r.PathPrefix("/api/v1").Subrouter()
	authed.Use(middleware.JWTMiddleware)
	authed.Use(middleware.RequireAccount(api.Accounts()))
	authed.HandleFunc("/me", api.Me).Methods("GET")

	// =====================================================
	// Admin Routes (require admin role)
	// =====================================================
	admin := r.PathPrefix("/api/v1/admin").Subrouter()
	admin.Use(middleware.JWTMiddleware)
	admin.Use(middleware.RequireAccount(api.Accounts()))
	admin.Use(middleware.RequireAdmin)
	registerAdminRoutes(admin, api)

	return r
}

func registerPublicRoutes(r *mux.Router, api *handlers.API) {
	r.HandleFunc("/opd", api.ListOPD).Methods("GET")
	r.HandleFunc("/tree-types", api.TreeTypes).Methods("GET")
	r.HandleFunc("/registrations", api.CreateRegistration).Methods("POST")

	// chart is registered before {id} so it is not taken for an id
	r.HandleFunc("/contribution", api.Contribution).Methods("GET")
	r.HandleFunc("/contribution/chart", api.ContributionChart).Methods("GET")
	r.HandleFunc("/contribution/{id}", api.ContributionDetail).Methods("GET")

	r.HandleFunc("/summary", api.Summary).Methods("GET")
	r.HandleFunc("/map", api.Map).Methods("GET")
	r.HandleFunc("/gallery", api.Gallery).Methods("GET")
	r.HandleFunc("/site-settings/{key}", api.GetSiteSetting).Methods("GET")
}

func registerAdminRoutes(r *mux.Router, api *handlers.API) {
	r.HandleFunc("/dashboard", api.AdminDashboard).Methods("GET")

	// Registrations
	r.HandleFunc("/registrations", api.ListRegistrations).Methods("GET")
	r.HandleFunc("/registrations/stats", api.RegistrationStats).Methods("GET")
	r.HandleFunc("/registrations/trend", api.RegistrationTrend).Methods("GET")
	r.HandleFunc("/registrations/export.xlsx", api.ExportXLSX).Methods("GET")
	r.HandleFunc("/registrations/export.csv", api.ExportCSV).Methods("GET")
	r.HandleFunc("/registrations/{id}", api.GetRegistration).Methods("GET")

	// OPD
	r.HandleFunc("/opd", api.ListOPD).Methods("GET")
	r.HandleFunc("/opd", api.CreateOPD).Methods("POST")
	r.HandleFunc("/opd/{id}", api.UpdateOPD).Methods("PUT")
	r.HandleFunc("/opd/{id}", api.DeleteOPD).Methods("DELETE")

	// Settings
	r.HandleFunc("/global-settings", api.ListGlobalSettings).Methods("GET")
	r.HandleFunc("/global-settings", api.UpdateGlobalSettings).Methods("PUT")
	r.HandleFunc("/global-settings/{key}", api.UpdateGlobalSetting).Methods("PUT")
	r.HandleFunc("/site-settings/{key}", api.PutSiteSetting).Methods("PUT")
	r.HandleFunc("/uploads", api.UploadImage).Methods("POST")

	// Users
	r.HandleFunc("/users", api.ListUsers).Methods("GET")
	r.HandleFunc("/users/{id}/role", api.SetUserRole).Methods("PUT")
}

func swaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
