package trial

import (
	"strings"
	"time"

	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, "trial booking not found")
	ErrGymNotFound       = apperror.New(apperror.KindNotFound, "gym not found")
	ErrDuplicatePending  = apperror.New(apperror.KindConflict, "duplicate pending booking")
	ErrInvalidTransition = apperror.New(apperror.KindConflict, "invalid status transition")
	ErrInvalidStatus     = apperror.New(apperror.KindBadRequest, "status must be one of pending, accepted, rejected")
	ErrScheduleRequired  = apperror.New(apperror.KindBadRequest, "scheduled_at is required")
	ErrScheduleInPast    = apperror.New(apperror.KindBadRequest, "scheduled_at must be in the future")
)

// Status is the lifecycle state of a trial booking.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusPending, StatusAccepted, StatusRejected}

// ParseStatus accepts the three status names, case-insensitively.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the booking can never change again.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo allows pending -> accepted and pending -> rejected only.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && next.IsTerminal()
}

// Booking is a seeker's request to try a gym.
type Booking struct {
	ID          string
	UserID      string
	UserName    string
	GymID       string
	GymName     string
	GymOwnerID  string
	Status      Status
	ScheduledAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows a booking listing. Empty fields do not filter.
type Filter struct {
	UserID string
	GymID  string
	Status Status
	Skip   int
	Limit  int
}

// Event payloads published after state changes.
const (
	EventRequested     = "trial.requested"
	EventStatusChanged = "trial.status_changed"
)

type RequestedEvent struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	GymID       string    `json:"gym_id"`
	GymOwnerID  string    `json:"gym_owner_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type StatusChangedEvent struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	GymID     string    `json:"gym_id"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}
