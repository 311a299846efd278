package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nifgashim/trek-api/internal/alerts"
	"github.com/nifgashim/trek-api/internal/auth"
	"github.com/nifgashim/trek-api/internal/models"
	"github.com/nifgashim/trek-api/internal/stats"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db          *gorm.DB
	alertStore  alerts.Store
	authHandler *auth.AuthHandler
}

func NewDashboardHandler(db *gorm.DB, alertStore alerts.Store, authHandler *auth.AuthHandler) *DashboardHandler {
	return &DashboardHandler{db: db, alertStore: alertStore, authHandler: authHandler}
}

// gormProfileResolver backs the age-histogram fallback with the users
// table, keyed by ID number.
type gormProfileResolver struct {
	db *gorm.DB
}

func (r gormProfileResolver) AgeRange(idNumber string) (string, bool) {
	if idNumber == "" {
		return "", false
	}
	var user models.User
	if err := r.db.Where("id_number = ? AND age_range != ''", idNumber).First(&user).Error; err != nil {
		return "", false
	}
	return user.AgeRange, true
}

func (h *DashboardHandler) activeRegistrations(tripID uint) ([]models.Registration, error) {
	var registrations []models.Registration
	err := h.db.Preload("Participants").
		Where("trip_id = ? AND cancelled = ?", tripID, false).
		Order("id asc").
		Find(&registrations).Error
	return registrations, err
}

type SummaryRequest struct {
	auth.AuthInput
	TripID uint `path:"tripID"`
}

type SummaryResponse struct {
	Body stats.Summary
}

func (h *DashboardHandler) HandleSummary(ctx context.Context, input *SummaryRequest) (*SummaryResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	registrations, err := h.activeRegistrations(input.TripID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations")
	}

	summary := stats.Aggregate(registrations, gormProfileResolver{db: h.db})
	return &SummaryResponse{Body: summary}, nil
}

type DaysRequest struct {
	auth.AuthInput
	TripID uint `path:"tripID"`
}

type DaysResponse struct {
	Body stats.Projection
}

func (h *DashboardHandler) HandleDays(ctx context.Context, input *DaysRequest) (*DaysResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	registrations, err := h.activeRegistrations(input.TripID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations")
	}

	return &DaysResponse{Body: stats.ProjectByDay(registrations)}, nil
}

type AlertsRequest struct {
	auth.AuthInput
}

type AlertsResponse struct {
	Body struct {
		Alerts []alerts.Alert `json:"alerts"`
	}
}

func (h *DashboardHandler) HandleAlerts(ctx context.Context, input *AlertsRequest) (*AlertsResponse, error) {
	user, err := h.authHandler.RequireOrganizer(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	derived, err := alerts.Derive(h.db)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to derive alerts")
	}

	visible, err := alerts.Filter(derived, h.alertStore, user.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to filter alerts")
	}

	res := &AlertsResponse{}
	res.Body.Alerts = visible
	return res, nil
}

type DismissAlertRequest struct {
	auth.AuthInput
	Key string `path:"key"`
}

type DismissAlertResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *DashboardHandler) HandleDismissAlert(ctx context.Context, input *DismissAlertRequest) (*DismissAlertResponse, error) {
	user, err := h.authHandler.RequireOrganizer(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	if err := h.alertStore.Dismiss(user.ID, input.Key); err != nil {
		return nil, huma.Error500InternalServerError("Failed to dismiss alert")
	}

	res := &DismissAlertResponse{}
	res.Body.Message = "Alert dismissed"
	return res, nil
}

// RosterCSV streams the per-day roster as CSV. Plain chi handler; runs
// behind AuthMiddleware, which puts the user ID in the context.
func (h *DashboardHandler) RosterCSV(w http.ResponseWriter, r *http.Request) {
	if _, ok := r.Context().Value(auth.UserIDKey).(uint); !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tripID, err := strconv.Atoi(r.URL.Query().Get("trip_id"))
	if err != nil || tripID <= 0 {
		http.Error(w, "Missing or invalid trip_id", http.StatusBadRequest)
		return
	}

	registrations, err := h.activeRegistrations(uint(tripID))
	if err != nil {
		http.Error(w, "Failed to load registrations", http.StatusInternalServerError)
		return
	}

	projection := stats.ProjectByDay(registrations)

	days := make([]int, 0, len(projection.ByDay))
	for day := range projection.ByDay {
		days = append(days, day)
	}
	sort.Ints(days)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=roster.csv")

	cw := csv.NewWriter(w)
	cw.Write([]string{"day", "name", "email", "phone", "age_range", "is_child", "is_paid", "group"})
	for _, day := range days {
		for _, p := range projection.ByDay[day] {
			cw.Write([]string{
				strconv.Itoa(day),
				p.Name,
				p.Email,
				p.Phone,
				p.AgeRange,
				fmt.Sprintf("%t", p.IsChild),
				fmt.Sprintf("%t", p.IsPaid),
				p.GroupName,
			})
		}
	}
	cw.Flush()
}
