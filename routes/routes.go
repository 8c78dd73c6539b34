package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rchotikawat/BTS-MaintenanceApp/handlers"
	"github.com/rchotikawat/BTS-MaintenanceApp/middleware"
	"github.com/rchotikawat/BTS-MaintenanceApp/models"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.HandleFunc("/health", handleHealth).Methods("GET")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.SecurityMiddleware)
	api.Use(middleware.JWTMiddleware)

	// Auth and profile
	api.Handle("/auth/register",
		middleware.RequireRole([]string{models.RoleAdmin}, http.HandlerFunc(handlers.Register)),
	).Methods("POST")
	api.HandleFunc("/auth/me", handlers.GetCurrentUser).Methods("GET")
	api.Handle("/users",
		middleware.RequireRole([]string{models.RoleAdmin, models.RoleSupervisor}, http.HandlerFunc(handlers.GetAllUsers)),
	).Methods("GET")

	registerPMRoutes(api)
	registerJobRoutes(api)
	registerStationRoutes(api)

	return enableCORS(r)
}

// registerPMRoutes wires the PM inspection report endpoints.
func registerPMRoutes(api *mux.Router) {
	// Templates
	api.HandleFunc("/pm/templates", handlers.ListTemplates).Methods("GET")
	api.HandleFunc("/pm/templates/{code}", handlers.GetTemplate).Methods("GET")
	api.HandleFunc("/pm/templates/{code}/schema", handlers.GetTemplateSchema).Methods("GET")
	api.Handle("/pm/templates/{code}/active",
		middleware.RequireRole([]string{models.RoleAdmin}, http.HandlerFunc(handlers.SetTemplateActive)),
	).Methods("PUT")

	// Dashboard and list export (registered before the {id} routes so
	// mux does not swallow them as report ids)
	api.HandleFunc("/pm/stats", handlers.GetReportStats).Methods("GET")
	api.HandleFunc("/pm/reports/export", handlers.ExportReportList).Methods("GET")

	// Reports
	api.HandleFunc("/pm/reports", handlers.ListReports).Methods("GET")
	api.HandleFunc("/pm/reports", handlers.CreateReport).Methods("POST")
	api.HandleFunc("/pm/reports/{id}", handlers.GetReport).Methods("GET")
	api.HandleFunc("/pm/reports/{id}", handlers.UpdateReport).Methods("PUT")
	api.HandleFunc("/pm/reports/{id}", handlers.DeleteReport).Methods("DELETE")

	// Workflow
	api.HandleFunc("/pm/reports/{id}/submit", handlers.TransitionReport("submit")).Methods("POST")
	api.HandleFunc("/pm/reports/{id}/approve", handlers.TransitionReport("approve")).Methods("POST")
	api.HandleFunc("/pm/reports/{id}/reject", handlers.TransitionReport("reject")).Methods("POST")
	api.HandleFunc("/pm/reports/{id}/reopen", handlers.TransitionReport("reopen")).Methods("POST")
	api.HandleFunc("/pm/reports/{id}/transitions", handlers.GetReportTransitions).Methods("GET")

	// Documents
	api.HandleFunc("/pm/reports/{id}/document", handlers.GetReportDocument).Methods("GET")
	api.HandleFunc("/pm/reports/{id}/document.xlsx", handlers.ExportReportExcel).Methods("GET")
}

// registerJobRoutes wires the CM job order endpoints.
func registerJobRoutes(api *mux.Router) {
	api.HandleFunc("/jobs/stats", handlers.GetJobStats).Methods("GET")
	api.HandleFunc("/jobs", handlers.ListJobs).Methods("GET")
	api.HandleFunc("/jobs", handlers.CreateJob).Methods("POST")
	api.HandleFunc("/jobs/{id}", handlers.GetJob).Methods("GET")
	api.HandleFunc("/jobs/{id}", handlers.UpdateJob).Methods("PUT")
	api.HandleFunc("/jobs/{id}", handlers.DeleteJob).Methods("DELETE")
	api.HandleFunc("/jobs/{id}/status", handlers.TransitionJob).Methods("POST")
}

// registerStationRoutes wires the station master data endpoints.
func registerStationRoutes(api *mux.Router) {
	api.HandleFunc("/stations", handlers.ListStations).Methods("GET")
	api.HandleFunc("/stations/{code}/verify-location", handlers.VerifyLocation).Methods("POST")
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// enableCORS adds the CORS headers for the mobile and web clients
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
