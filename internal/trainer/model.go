package trainer

import (
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(apperror.KindNotFound, "trainer not found")
	ErrNameRequired = apperror.New(apperror.KindBadRequest, "name is required")
	ErrInvalidFee   = apperror.New(apperror.KindBadRequest, "fee must not be negative")
)

// Trainer is a coach listed on a gym's page.
type Trainer struct {
	ID        string
	GymID     string
	Name      string
	Specialty *string
	Fee       int64 // per session, whole currency units
	CreatedAt time.Time
}
