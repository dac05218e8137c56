package trainer

import (
	"context"
	"strings"

	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
)

type AddRequest struct {
	Name      string
	Specialty *string
	Fee       int64
}

type Service interface {
	Add(ctx context.Context, caller authz.Identity, gymID string, req AddRequest) (*Trainer, error)
	ListByGym(ctx context.Context, gymID string) ([]*Trainer, error)
	Remove(ctx context.Context, caller authz.Identity, gymID, trainerID string) error
}

// Gyms is the part of gym.Service trainers depend on.
type Gyms interface {
	GetByID(ctx context.Context, id string) (*gym.Gym, error)
	GetForMutation(ctx context.Context, caller authz.Identity, id string) (*gym.Gym, error)
}

type service struct {
	repo Repository
	gyms Gyms
}

func NewService(repo Repository, gyms Gyms) Service {
	return &service{repo: repo, gyms: gyms}
}

func (s *service) Add(ctx context.Context, caller authz.Identity, gymID string, req AddRequest) (*Trainer, error) {
	if _, err := s.gyms.GetForMutation(ctx, caller, gymID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Fee < 0 {
		return nil, ErrInvalidFee
	}

	var specialty *string
	if req.Specialty != nil {
		if v := strings.TrimSpace(*req.Specialty); v != "" {
			specialty = &v
		}
	}

	t := &Trainer{
		GymID:     gymID,
		Name:      name,
		Specialty: specialty,
		Fee:       req.Fee,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListByGym is public; an unknown gym is NotFound rather than an empty list.
func (s *service) ListByGym(ctx context.Context, gymID string) ([]*Trainer, error) {
	if _, err := s.gyms.GetByID(ctx, gymID); err != nil {
		return nil, err
	}
	return s.repo.ListByGym(ctx, gymID)
}

func (s *service) Remove(ctx context.Context, caller authz.Identity, gymID, trainerID string) error {
	if _, err := s.gyms.GetForMutation(ctx, caller, gymID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, gymID, trainerID)
}
