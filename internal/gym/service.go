package gym

import (
	"context"
	"errors"
	"strings"

	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
	"github.com/nekogravitycat/gym-trial-backend/internal/user"
)

// CreateRequest carries data to list a gym.
// OwnerID may only be set by admins; it defaults to the caller.
type CreateRequest struct {
	OwnerID         string
	Name            string
	Address         string
	SubscriptionFee int64
	TrialAvailable  bool
	Description     *string
	Latitude        *float64
	Longitude       *float64
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name            *string
	Address         *string
	SubscriptionFee *int64
	TrialAvailable  *bool
	Description     *string
	Latitude        *float64
	Longitude       *float64
}

type Service interface {
	Create(ctx context.Context, caller authz.Identity, req CreateRequest) (*Gym, error)
	GetByID(ctx context.Context, id string) (*Gym, error)
	List(ctx context.Context, filter Filter) ([]*Gym, int, error)
	Update(ctx context.Context, caller authz.Identity, id string, req UpdateRequest) (*Gym, error)
	Delete(ctx context.Context, caller authz.Identity, id string) error
	SetCover(ctx context.Context, caller authz.Identity, id, fileID string) error
	// GetForMutation loads a gym and checks that caller may change it.
	GetForMutation(ctx context.Context, caller authz.Identity, id string) (*Gym, error)
}

// Owners resolves accounts that can own a gym. user.Service satisfies it.
type Owners interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type service struct {
	repo   Repository
	owners Owners
}

func NewService(repo Repository, owners Owners) Service {
	return &service{repo: repo, owners: owners}
}

// validateGym checks the logical rules for a Gym struct.
func validateGym(g *Gym) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(g.Address) == "" {
		return ErrAddressRequired
	}
	if g.SubscriptionFee < 0 {
		return ErrInvalidFee
	}

	if (g.Latitude == nil) != (g.Longitude == nil) {
		return ErrInvalidGeo
	}
	if g.Latitude != nil {
		if *g.Latitude < -90 || *g.Latitude > 90 || *g.Longitude < -180 || *g.Longitude > 180 {
			return ErrInvalidGeo
		}
	}
	return nil
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (s *service) resolveOwner(ctx context.Context, caller authz.Identity, ownerID string) (string, error) {
	if ownerID == "" || ownerID == caller.ID {
		return caller.ID, nil
	}
	if !caller.IsAdmin() {
		return "", ErrOwnerOverride
	}

	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrOwnerNotFound
		}
		return "", err
	}
	if owner.Role != authz.RoleGymOwner && owner.Role != authz.RoleAdmin {
		return "", ErrOwnerRole
	}
	return owner.ID, nil
}

func (s *service) Create(ctx context.Context, caller authz.Identity, req CreateRequest) (*Gym, error) {
	if err := authz.GymCreation(caller); err != nil {
		return nil, err
	}

	ownerID, err := s.resolveOwner(ctx, caller, req.OwnerID)
	if err != nil {
		return nil, err
	}

	g := &Gym{
		OwnerID:         ownerID,
		Name:            strings.TrimSpace(req.Name),
		Address:         strings.TrimSpace(req.Address),
		SubscriptionFee: req.SubscriptionFee,
		TrialAvailable:  req.TrialAvailable,
		Description:     cleanOptional(req.Description),
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
	}
	if err := validateGym(g); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Gym, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Gym, int, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

func (s *service) GetForMutation(ctx context.Context, caller authz.Identity, id string) (*Gym, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.GymMutation(caller, g.OwnerID); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Update(ctx context.Context, caller authz.Identity, id string, req UpdateRequest) (*Gym, error) {
	g, err := s.GetForMutation(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		g.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		g.Address = strings.TrimSpace(*req.Address)
	}
	if req.SubscriptionFee != nil {
		g.SubscriptionFee = *req.SubscriptionFee
	}
	if req.TrialAvailable != nil {
		g.TrialAvailable = *req.TrialAvailable
	}
	if req.Description != nil {
		g.Description = cleanOptional(req.Description)
	}
	if req.Latitude != nil {
		g.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		g.Longitude = req.Longitude
	}

	if err := validateGym(g); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes the gym; trainers and trial bookings go with it.
func (s *service) Delete(ctx context.Context, caller authz.Identity, id string) error {
	if _, err := s.GetForMutation(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetCover(ctx context.Context, caller authz.Identity, id, fileID string) error {
	if _, err := s.GetForMutation(ctx, caller, id); err != nil {
		return err
	}
	return s.repo.SetCover(ctx, id, &fileID)
}
