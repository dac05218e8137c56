package http

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/request"
	"github.com/nekogravitycat/gym-trial-backend/internal/trial"
	userhttp "github.com/nekogravitycat/gym-trial-backend/internal/user/http"
)

type CreateTrialRequest struct {
	GymID       string    `json:"gym_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// UpdateStatusRequest is validated by the booking engine so that an unknown
// status and a disallowed transition keep their distinct errors.
type UpdateStatusRequest struct {
	StatusUpdate string `json:"status_update" binding:"required"`
}

type ListTrialsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,trial_status"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
	GymID  string `form:"gym_id" binding:"omitempty,uuid"`
}

type TrialResponse struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	User        userhttp.UserTag `json:"user"`
	GymID       string           `json:"gym_id"`
	GymName     string           `json:"gym_name"`
	Status      string           `json:"status"`
	ScheduledAt time.Time        `json:"scheduled_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewTrialResponse(b *trial.Booking) TrialResponse {
	return TrialResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		User:        userhttp.UserTag{ID: b.UserID, Name: b.UserName},
		GymID:       b.GymID,
		GymName:     b.GymName,
		Status:      string(b.Status),
		ScheduledAt: b.ScheduledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func newTrialResponses(list []*trial.Booking) []TrialResponse {
	items := make([]TrialResponse, len(list))
	for i, b := range list {
		items[i] = NewTrialResponse(b)
	}
	return items
}
