package http

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/file"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/request"
	trainerhttp "github.com/nekogravitycat/gym-trial-backend/internal/trainer/http"
	userhttp "github.com/nekogravitycat/gym-trial-backend/internal/user/http"
)

// ListGymsRequest holds the discovery filters. Price bounds are inclusive.
type ListGymsRequest struct {
	request.ListParams
	Location string   `form:"location" binding:"max=200"`
	MinPrice *float64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"max_price" binding:"omitempty,min=0"`
	HasTrial *bool    `form:"has_trial"`
	OwnerID  string   `form:"owner_id" binding:"omitempty,uuid"`
}

type CreateGymRequest struct {
	OwnerID         string   `json:"owner_id" binding:"omitempty,uuid"`
	Name            string   `json:"name" binding:"required,max=100"`
	Address         string   `json:"address" binding:"required,max=255"`
	SubscriptionFee *int64   `json:"subscription_fee" binding:"required,min=0"`
	TrialAvailable  *bool    `json:"trial_available"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type UpdateGymRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=100"`
	Address         *string  `json:"address" binding:"omitempty,min=1,max=255"`
	SubscriptionFee *int64   `json:"subscription_fee" binding:"omitempty,min=0"`
	TrialAvailable  *bool    `json:"trial_available"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
}

type GymResponse struct {
	ID                string           `json:"id"`
	Owner             userhttp.UserTag `json:"owner"`
	Name              string           `json:"name"`
	Address           string           `json:"address"`
	SubscriptionFee   int64            `json:"subscription_fee"`
	TrialAvailable    bool             `json:"trial_available"`
	Description       *string          `json:"description"`
	Latitude          *float64         `json:"latitude"`
	Longitude         *float64         `json:"longitude"`
	CoverURL          *string          `json:"cover_url"`
	CoverThumbnailURL *string          `json:"cover_thumbnail_url"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// GymDetailResponse is the single-gym view including its trainers.
type GymDetailResponse struct {
	GymResponse
	Trainers []trainerhttp.TrainerResponse `json:"trainers"`
}

func NewGymResponse(g *gym.Gym) GymResponse {
	resp := GymResponse{
		ID:              g.ID,
		Owner:           userhttp.UserTag{ID: g.OwnerID, Name: g.OwnerName},
		Name:            g.Name,
		Address:         g.Address,
		SubscriptionFee: g.SubscriptionFee,
		TrialAvailable:  g.TrialAvailable,
		Description:     g.Description,
		Latitude:        g.Latitude,
		Longitude:       g.Longitude,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
	if g.CoverFileID != nil {
		url := file.FileURL(*g.CoverFileID)
		thumb := file.ThumbnailURL(*g.CoverFileID)
		resp.CoverURL = &url
		resp.CoverThumbnailURL = &thumb
	}
	return resp
}
