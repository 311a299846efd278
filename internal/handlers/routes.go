package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nifgashim/trek-api/internal/auth"
)

type Handlers struct {
	Auth         *auth.AuthHandler
	Registration *RegistrationHandler
	Memorial     *MemorialHandler
	Trip         *TripHandler
	Dashboard    *DashboardHandler
	APIKey       *APIKeyHandler
}

func RegisterRoutes(r *chi.Mux, h Handlers) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	config := huma.DefaultConfig("Nifgashim Trek API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: "auth_token",
		},
	}
	api := humachi.New(r, config)

	cookieSecured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
	}

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	r.Get("/auth/discord/login", h.Auth.HandleLogin)
	r.Get("/auth/discord/callback", h.Auth.HandleCallback)
	huma.Get(api, "/me", h.Auth.HandleMe, cookieSecured)

	// Trips
	huma.Post(api, "/trips", h.Trip.HandleCreateTrip, cookieSecured)
	huma.Get(api, "/trips", h.Trip.HandleListTrips)
	huma.Get(api, "/trips/{tripID}/days", h.Trip.HandleListTrekDays)

	// Registrations
	huma.Post(api, "/trips/{tripID}/registrations", h.Registration.HandleCreateRegistration, cookieSecured)
	huma.Get(api, "/trips/{tripID}/registrations", h.Registration.HandleListRegistrations, cookieSecured)
	huma.Patch(api, "/registrations/{id}/payment", h.Registration.HandleUpdatePayment, cookieSecured)
	huma.Post(api, "/registrations/{id}/cancel", h.Registration.HandleCancelRegistration, cookieSecured)

	// Memorials
	huma.Post(api, "/trips/{tripID}/memorials", h.Memorial.HandleSubmitMemorial)
	huma.Get(api, "/trips/{tripID}/memorials", h.Memorial.HandleListMemorials)
	huma.Post(api, "/memorials/{id}/approve", h.Memorial.HandleApproveMemorial, cookieSecured)
	huma.Post(api, "/memorials/{id}/reject", h.Memorial.HandleRejectMemorial, cookieSecured)
	huma.Delete(api, "/memorials/{id}", h.Memorial.HandleDeleteMemorial, cookieSecured)
	huma.Post(api, "/memorials/{id}/dedications", h.Memorial.HandleAddDedication)
	huma.Put(api, "/memorials/{id}/day", h.Memorial.HandleAssignDay, cookieSecured)
	huma.Post(api, "/trips/{tripID}/memorials/auto-distribute", h.Memorial.HandleAutoDistribute, cookieSecured)

	// Dashboard
	huma.Get(api, "/trips/{tripID}/dashboard/summary", h.Dashboard.HandleSummary, cookieSecured)
	huma.Get(api, "/trips/{tripID}/dashboard/days", h.Dashboard.HandleDays, cookieSecured)
	huma.Get(api, "/dashboard/alerts", h.Dashboard.HandleAlerts, cookieSecured)
	huma.Post(api, "/dashboard/alerts/{key}/dismiss", h.Dashboard.HandleDismissAlert, cookieSecured)

	// API Keys
	huma.Post(api, "/api-keys", h.APIKey.HandleCreate, cookieSecured)
	huma.Get(api, "/api-keys", h.APIKey.HandleList, cookieSecured)
	huma.Delete(api, "/api-keys/{id}", h.APIKey.HandleDelete, cookieSecured)

	// CSV export sits outside huma; cookie or API key via middleware.
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.AuthMiddleware)
		r.Get("/dashboard/roster.csv", h.Dashboard.RosterCSV)
	})
}
