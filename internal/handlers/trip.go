package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nifgashim/trek-api/internal/auth"
	"github.com/nifgashim/trek-api/internal/models"
	"gorm.io/gorm"
)

type TripHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewTripHandler(db *gorm.DB, authHandler *auth.AuthHandler) *TripHandler {
	return &TripHandler{db: db, authHandler: authHandler}
}

type CreateTripRequest struct {
	auth.AuthInput
	Body struct {
		Name        string `json:"name" required:"true"`
		Description string `json:"description"`
		Days        []struct {
			DayNumber      int               `json:"day_number" required:"true"`
			Date           string            `json:"date" required:"true" doc:"YYYY-MM-DD"`
			Title          string            `json:"title"`
			Description    string            `json:"description"`
			Waypoints      []models.Waypoint `json:"waypoints"`
			DistanceKm     float64           `json:"distance_km"`
			ElevationGainM int               `json:"elevation_gain_m"`
		} `json:"days"`
	}
}

type CreateTripResponse struct {
	Body struct {
		ID uint `json:"id"`
	}
}

func (h *TripHandler) HandleCreateTrip(ctx context.Context, input *CreateTripRequest) (*CreateTripResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	trip := models.Trip{
		Name:        input.Body.Name,
		Description: input.Body.Description,
	}
	for _, d := range input.Body.Days {
		trip.Days = append(trip.Days, models.TrekDay{
			DayNumber:      d.DayNumber,
			Date:           d.Date,
			Title:          d.Title,
			Description:    d.Description,
			Waypoints:      d.Waypoints,
			DistanceKm:     d.DistanceKm,
			ElevationGainM: d.ElevationGainM,
		})
	}

	if err := h.db.Create(&trip).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create trip: " + err.Error())
	}

	res := &CreateTripResponse{}
	res.Body.ID = trip.ID
	return res, nil
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Body struct {
		Trips []models.Trip `json:"trips"`
	}
}

func (h *TripHandler) HandleListTrips(ctx context.Context, input *ListTripsRequest) (*ListTripsResponse, error) {
	var trips []models.Trip
	if err := h.db.Preload("Days").Order("id asc").Find(&trips).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list trips")
	}

	res := &ListTripsResponse{}
	res.Body.Trips = trips
	return res, nil
}

type ListTrekDaysRequest struct {
	TripID uint `path:"tripID"`
}

type ListTrekDaysResponse struct {
	Body struct {
		Days []models.TrekDay `json:"days"`
	}
}

func (h *TripHandler) HandleListTrekDays(ctx context.Context, input *ListTrekDaysRequest) (*ListTrekDaysResponse, error) {
	var days []models.TrekDay
	if err := h.db.Where("trip_id = ?", input.TripID).Order("day_number asc").Find(&days).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list trek days")
	}

	res := &ListTrekDaysResponse{}
	res.Body.Days = days
	return res, nil
}
