package gym

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, "gym not found")
	ErrNameRequired      = apperror.New(apperror.KindBadRequest, "name is required")
	ErrAddressRequired   = apperror.New(apperror.KindBadRequest, "address is required")
	ErrInvalidFee        = apperror.New(apperror.KindBadRequest, "subscription_fee must not be negative")
	ErrInvalidGeo        = apperror.New(apperror.KindBadRequest, "latitude must be within [-90, 90] and longitude within [-180, 180], and both must be given together")
	ErrInvalidPriceRange = apperror.New(apperror.KindBadRequest, "min_price must not exceed max_price")
	ErrOwnerNotFound     = apperror.New(apperror.KindBadRequest, "owner not found")
	ErrOwnerRole         = apperror.New(apperror.KindBadRequest, "owner must be a gym owner or admin")
	ErrOwnerOverride     = apperror.New(apperror.KindForbidden, "only admins can assign a gym to another owner")
)

// Gym is a listed venue. Exactly one owner; ownership is never transferred.
type Gym struct {
	ID              string
	OwnerID         string
	OwnerName       string
	Name            string
	Address         string
	SubscriptionFee int64 // whole currency units per month
	TrialAvailable  bool
	Description     *string
	Latitude        *float64
	Longitude       *float64
	CoverFileID     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter narrows a gym listing. Nil / empty fields do not filter.
type Filter struct {
	Location string   // substring of the address, case-insensitive
	MinPrice *float64 // inclusive, compared against the whole-unit fee
	MaxPrice *float64 // inclusive
	HasTrial *bool
	OwnerID  string
	Skip     int
	Limit    int
}

// Validate rejects contradictory price bounds.
func (f Filter) Validate() error {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return ErrInvalidPriceRange
	}
	return nil
}
