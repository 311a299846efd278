package handlers

import (
	"context"
	"log"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/nifgashim/trek-api/internal/auth"
	"github.com/nifgashim/trek-api/internal/mailer"
	"github.com/nifgashim/trek-api/internal/models"
	"github.com/nifgashim/trek-api/internal/notifier"
	"github.com/nifgashim/trek-api/internal/stats"
	"gorm.io/gorm"
)

type RegistrationHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	mailer      mailer.Mailer
	authHandler *auth.AuthHandler
}

func NewRegistrationHandler(db *gorm.DB, n notifier.Notifier, m mailer.Mailer, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{db: db, notifier: n, mailer: m, authHandler: authHandler}
}

type CreateRegistrationRequest struct {
	auth.AuthInput
	TripID uint                  `path:"tripID"`
	Body   stats.RawRegistration `doc:"Signup payload; legacy field aliases are accepted"`
}

type CreateRegistrationResponse struct {
	Body struct {
		ID        uint   `json:"id"`
		Reference string `json:"reference"`
	}
}

func (h *RegistrationHandler) HandleCreateRegistration(ctx context.Context, input *CreateRegistrationRequest) (*CreateRegistrationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	registration, err := stats.NormalizeRegistration(input.Body)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	var trip models.Trip
	if err := h.db.First(&trip, input.TripID).Error; err != nil {
		return nil, huma.Error404NotFound("Trip not found")
	}

	registration.TripID = trip.ID
	registration.UserID = userID
	registration.Reference = uuid.NewString()

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		history := models.RegistrationHistory{
			RegistrationID: registration.ID,
			UserID:         registration.UserID,
			PaymentStatus:  registration.PaymentStatus,
			Status:         registration.Status,
			AmountPaid:     registration.AmountPaid,
			Note:           "created",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to process registration: " + err.Error())
	}

	// Side effects are best effort; the registration already landed.
	if h.mailer != nil {
		if err := h.mailer.SendRegistrationConfirmation(ctx, registration); err != nil {
			log.Printf("Failed to send confirmation email: %v", err)
		}
	}
	if h.notifier != nil {
		var user models.User
		if err := h.db.First(&user, userID).Error; err == nil {
			if err := h.notifier.NotifyRegistration(user, registration); err != nil {
				log.Printf("Failed to send notification: %v", err)
			}
		}
	}

	res := &CreateRegistrationResponse{}
	res.Body.ID = registration.ID
	res.Body.Reference = registration.Reference
	return res, nil
}

type ListRegistrationsRequest struct {
	auth.AuthInput
	TripID uint `path:"tripID"`
}

type ListRegistrationsResponse struct {
	Body struct {
		Registrations []models.Registration `json:"registrations"`
	}
}

func (h *RegistrationHandler) HandleListRegistrations(ctx context.Context, input *ListRegistrationsRequest) (*ListRegistrationsResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var registrations []models.Registration
	if err := h.db.Preload("Participants").
		Where("trip_id = ?", input.TripID).
		Order("id asc").
		Find(&registrations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list registrations")
	}

	res := &ListRegistrationsResponse{}
	res.Body.Registrations = registrations
	return res, nil
}

type UpdatePaymentRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		PaymentStatus models.PaymentStatus `json:"payment_status" doc:"pending, partial, completed or exempt" required:"true"`
		AmountPaid    float64              `json:"amount_paid"`
		Note          string               `json:"note"`
	}
}

type UpdatePaymentResponse struct {
	Body struct {
		Registration models.Registration `json:"registration"`
	}
}

func (h *RegistrationHandler) HandleUpdatePayment(ctx context.Context, input *UpdatePaymentRequest) (*UpdatePaymentResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	switch input.Body.PaymentStatus {
	case models.PaymentPending, models.PaymentPartial, models.PaymentCompleted, models.PaymentExempt:
	default:
		return nil, huma.Error400BadRequest("Unknown payment status")
	}

	var registration models.Registration
	if err := h.db.Preload("Participants").First(&registration, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Registration not found")
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"payment_status": input.Body.PaymentStatus,
			"amount_paid":    input.Body.AmountPaid,
		}
		if err := tx.Model(&registration).Updates(updates).Error; err != nil {
			return err
		}

		history := models.RegistrationHistory{
			RegistrationID: registration.ID,
			UserID:         registration.UserID,
			PaymentStatus:  input.Body.PaymentStatus,
			Status:         registration.Status,
			AmountPaid:     input.Body.AmountPaid,
			Note:           input.Body.Note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update payment: " + err.Error())
	}

	res := &UpdatePaymentResponse{}
	res.Body.Registration = registration
	return res, nil
}

type CancelRegistrationRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type CancelRegistrationResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *RegistrationHandler) HandleCancelRegistration(ctx context.Context, input *CancelRegistrationRequest) (*CancelRegistrationResponse, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	var registration models.Registration
	if err := h.db.First(&registration, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Registration not found")
	}

	// Owners cancel their own; organizers cancel anyone's.
	if registration.UserID != userID {
		if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
			return nil, err
		}
	}

	if err := h.db.Model(&registration).Update("cancelled", true).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to cancel registration")
	}

	res := &CancelRegistrationResponse{}
	res.Body.Message = "Registration cancelled"
	return res, nil
}
