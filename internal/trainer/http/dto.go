package http

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/trainer"
)

type AddTrainerRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Specialty *string `json:"specialty" binding:"omitempty,max=100"`
	Fee       int64   `json:"fee" binding:"min=0"`
}

type TrainerURI struct {
	GymID     string `uri:"id" binding:"required,uuid"`
	TrainerID string `uri:"trainer_id" binding:"required,uuid"`
}

type TrainerResponse struct {
	ID        string    `json:"id"`
	GymID     string    `json:"gym_id"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty"`
	Fee       int64     `json:"fee"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTrainerResponse(t *trainer.Trainer) TrainerResponse {
	return TrainerResponse{
		ID:        t.ID,
		GymID:     t.GymID,
		Name:      t.Name,
		Specialty: t.Specialty,
		Fee:       t.Fee,
		CreatedAt: t.CreatedAt,
	}
}

func NewTrainerResponses(list []*trainer.Trainer) []TrainerResponse {
	items := make([]TrainerResponse, len(list))
	for i, t := range list {
		items[i] = NewTrainerResponse(t)
	}
	return items
}
