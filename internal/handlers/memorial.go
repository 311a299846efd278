package handlers

import (
	"context"
	"log"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nifgashim/trek-api/internal/auth"
	"github.com/nifgashim/trek-api/internal/mailer"
	"github.com/nifgashim/trek-api/internal/models"
	"github.com/nifgashim/trek-api/internal/notifier"
	"github.com/nifgashim/trek-api/internal/planner"
	"github.com/nifgashim/trek-api/internal/suggest"
	"gorm.io/gorm"
)

type MemorialHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	mailer      mailer.Mailer
	oracle      suggest.Oracle
	authHandler *auth.AuthHandler
}

func NewMemorialHandler(db *gorm.DB, n notifier.Notifier, m mailer.Mailer, oracle suggest.Oracle, authHandler *auth.AuthHandler) *MemorialHandler {
	return &MemorialHandler{db: db, notifier: n, mailer: m, oracle: oracle, authHandler: authHandler}
}

type SubmitMemorialRequest struct {
	TripID uint `path:"tripID"`
	Body   struct {
		FallenName     string `json:"fallen_name" doc:"Name of the fallen" required:"true"`
		DateOfFall     string `json:"date_of_fall"`
		PlaceOfFall    string `json:"place_of_fall"`
		Story          string `json:"story"`
		SubmitterEmail string `json:"submitter_email"`
	}
}

type SubmitMemorialResponse struct {
	Body struct {
		ID     uint                  `json:"id"`
		Status models.ApprovalStatus `json:"status"`
	}
}

// HandleSubmitMemorial accepts a public submission; it enters the
// review queue as pending.
func (h *MemorialHandler) HandleSubmitMemorial(ctx context.Context, input *SubmitMemorialRequest) (*SubmitMemorialResponse, error) {
	var trip models.Trip
	if err := h.db.First(&trip, input.TripID).Error; err != nil {
		return nil, huma.Error404NotFound("Trip not found")
	}

	memorial := models.Memorial{
		TripID:         trip.ID,
		FallenName:     input.Body.FallenName,
		DateOfFall:     input.Body.DateOfFall,
		PlaceOfFall:    input.Body.PlaceOfFall,
		Story:          input.Body.Story,
		SubmitterEmail: input.Body.SubmitterEmail,
		Status:         models.MemorialPending,
	}

	if err := h.db.Create(&memorial).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to create memorial")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyMemorialSubmitted(memorial); err != nil {
			log.Printf("Failed to send notification: %v", err)
		}
	}

	res := &SubmitMemorialResponse{}
	res.Body.ID = memorial.ID
	res.Body.Status = memorial.Status
	return res, nil
}

type ListMemorialsRequest struct {
	auth.AuthInput
	TripID uint   `path:"tripID"`
	Status string `query:"status" doc:"Filter by approval status" enum:"pending,approved,rejected" required:"false"`
}

type ListMemorialsResponse struct {
	Body struct {
		Memorials []models.Memorial `json:"memorials"`
	}
}

func (h *MemorialHandler) HandleListMemorials(ctx context.Context, input *ListMemorialsRequest) (*ListMemorialsResponse, error) {
	status := models.ApprovalStatus(input.Status)
	if status == "" {
		status = models.MemorialApproved
	}

	// Only approved memorials are public.
	if status != models.MemorialApproved {
		if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
			return nil, err
		}
	}

	var memorials []models.Memorial
	if err := h.db.Preload("Dedications").
		Where("trip_id = ? AND status = ?", input.TripID, status).
		Order("id asc").
		Find(&memorials).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list memorials")
	}

	res := &ListMemorialsResponse{}
	res.Body.Memorials = memorials
	return res, nil
}

type ReviewMemorialRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type ReviewMemorialResponse struct {
	Body struct {
		ID     uint                  `json:"id"`
		Status models.ApprovalStatus `json:"status"`
	}
}

func (h *MemorialHandler) review(ctx context.Context, input *ReviewMemorialRequest, status models.ApprovalStatus) (*ReviewMemorialResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	var memorial models.Memorial
	if err := h.db.First(&memorial, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Memorial not found")
	}

	if err := h.db.Model(&memorial).Update("status", status).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update memorial")
	}

	if status == models.MemorialApproved && h.mailer != nil {
		if err := h.mailer.SendMemorialApproved(ctx, memorial); err != nil {
			log.Printf("Failed to send approval email: %v", err)
		}
	}

	res := &ReviewMemorialResponse{}
	res.Body.ID = memorial.ID
	res.Body.Status = status
	return res, nil
}

func (h *MemorialHandler) HandleApproveMemorial(ctx context.Context, input *ReviewMemorialRequest) (*ReviewMemorialResponse, error) {
	return h.review(ctx, input, models.MemorialApproved)
}

func (h *MemorialHandler) HandleRejectMemorial(ctx context.Context, input *ReviewMemorialRequest) (*ReviewMemorialResponse, error) {
	return h.review(ctx, input, models.MemorialRejected)
}

type DeleteMemorialRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *MemorialHandler) HandleDeleteMemorial(ctx context.Context, input *DeleteMemorialRequest) (*struct{}, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.db.Delete(&models.Memorial{}, input.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to delete memorial")
	}

	return nil, nil
}

type AddDedicationRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		AuthorName  string `json:"author_name"`
		AuthorEmail string `json:"author_email"`
		Content     string `json:"content" required:"true"`
	}
}

type AddDedicationResponse struct {
	Body struct {
		ID uint `json:"id"`
	}
}

// HandleAddDedication appends to a memorial's dedication list. The
// list is append-only; there is no edit or delete path.
func (h *MemorialHandler) HandleAddDedication(ctx context.Context, input *AddDedicationRequest) (*AddDedicationResponse, error) {
	var memorial models.Memorial
	if err := h.db.First(&memorial, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Memorial not found")
	}
	if memorial.Status != models.MemorialApproved {
		return nil, huma.Error403Forbidden("Dedications are only accepted on approved memorials")
	}

	dedication := models.Dedication{
		MemorialID:  memorial.ID,
		AuthorName:  input.Body.AuthorName,
		AuthorEmail: input.Body.AuthorEmail,
		Content:     input.Body.Content,
	}
	if err := h.db.Create(&dedication).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to add dedication")
	}

	res := &AddDedicationResponse{}
	res.Body.ID = dedication.ID
	return res, nil
}

type AssignDayRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		DayNumber *int `json:"day_number" doc:"Trek day number, or null to unassign"`
	}
}

type AssignDayResponse struct {
	Body struct {
		ID            uint    `json:"id"`
		DisplayOnDate *string `json:"display_on_date"`
	}
}

func (h *MemorialHandler) HandleAssignDay(ctx context.Context, input *AssignDayRequest) (*AssignDayResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := planner.Assign(h.db, input.ID, input.Body.DayNumber); err != nil {
		return nil, huma.Error404NotFound(err.Error())
	}

	var memorial models.Memorial
	if err := h.db.First(&memorial, input.ID).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to reload memorial")
	}

	res := &AssignDayResponse{}
	res.Body.ID = memorial.ID
	res.Body.DisplayOnDate = memorial.DisplayOnDate
	return res, nil
}

type AutoDistributeRequest struct {
	auth.AuthInput
	TripID uint `path:"tripID"`
}

type AutoDistributeResponse struct {
	Body planner.Result
}

func (h *MemorialHandler) HandleAutoDistribute(ctx context.Context, input *AutoDistributeRequest) (*AutoDistributeResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if h.oracle == nil {
		return nil, huma.Error503ServiceUnavailable("Suggestion service not configured")
	}

	result, err := planner.AutoDistribute(ctx, h.db, input.TripID, h.oracle)
	if err != nil {
		return nil, huma.Error500InternalServerError("Auto-distribute failed: " + err.Error())
	}

	return &AutoDistributeResponse{Body: result}, nil
}
