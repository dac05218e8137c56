package trial

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nekogravitycat/gym-trial-backend/internal/authz"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/events"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
)

const tracerName = "github.com/nekogravitycat/gym-trial-backend/internal/trial"

type CreateRequest struct {
	GymID       string
	ScheduledAt time.Time
}

type Service interface {
	Create(ctx context.Context, requester authz.Identity, req CreateRequest) (*Booking, error)
	UpdateStatus(ctx context.Context, caller authz.Identity, id, newStatus string) (*Booking, error)
	Get(ctx context.Context, caller authz.Identity, id string) (*Booking, error)
	// ListMine lists the caller's own requests. Admins may list anyone's via filter.UserID / filter.GymID.
	ListMine(ctx context.Context, caller authz.Identity, filter Filter) ([]*Booking, int, error)
	// ListForGym lists requests made to a gym; owner or admin only.
	ListForGym(ctx context.Context, caller authz.Identity, gymID string, filter Filter) ([]*Booking, int, error)
}

// Gyms resolves the gym a booking targets. gym.Service satisfies it.
type Gyms interface {
	GetByID(ctx context.Context, id string) (*gym.Gym, error)
}

type service struct {
	repo      Repository
	gyms      Gyms
	publisher events.Publisher
	tracer    trace.Tracer
	now       func() time.Time
}

func NewService(repo Repository, gyms Gyms, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &service{
		repo:      repo,
		gyms:      gyms,
		publisher: publisher,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// endSpan records err on span unless it is an expected client error.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if apperror.KindOf(err) == apperror.KindInternal {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}

func (s *service) publish(ctx context.Context, key string, v any) {
	if err := s.publisher.Publish(ctx, key, v); err != nil {
		logging.FromContext(ctx).Warn("publish event failed", "event", key, "error", err)
	}
}

func (s *service) lookupGym(ctx context.Context, id string) (*gym.Gym, error) {
	g, err := s.gyms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gym.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *service) Create(ctx context.Context, requester authz.Identity, req CreateRequest) (b *Booking, err error) {
	ctx, span := s.tracer.Start(ctx, "trial.Create", trace.WithAttributes(
		attribute.String("gym.id", req.GymID),
		attribute.String("user.id", requester.ID),
	))
	defer func() { endSpan(span, err) }()

	if _, err := s.lookupGym(ctx, req.GymID); err != nil {
		return nil, err
	}
	if req.ScheduledAt.IsZero() {
		return nil, ErrScheduleRequired
	}
	if !req.ScheduledAt.After(s.now()) {
		return nil, ErrScheduleInPast
	}

	pending, err := s.repo.HasPending(ctx, requester.ID, req.GymID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicatePending
	}

	b = &Booking{
		UserID:      requester.ID,
		GymID:       req.GymID,
		Status:      StatusPending,
		ScheduledAt: req.ScheduledAt.UTC(),
	}
	// The repository repeats the duplicate check under a gym row lock.
	if err := s.repo.CreatePending(ctx, b); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("trial.id", b.ID))

	s.publish(ctx, EventRequested, RequestedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		GymID:       b.GymID,
		GymOwnerID:  b.GymOwnerID,
		ScheduledAt: b.ScheduledAt,
		CreatedAt:   b.CreatedAt,
	})
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, caller authz.Identity, id, newStatus string) (b *Booking, err error) {
	ctx, span := s.tracer.Start(ctx, "trial.UpdateStatus", trace.WithAttributes(
		attribute.String("trial.id", id),
		attribute.String("trial.status_update", newStatus),
	))
	defer func() { endSpan(span, err) }()

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.TrialStatusUpdate(caller, current.GymOwnerID); err != nil {
		return nil, err
	}

	next, err := ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	b, err = s.repo.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, EventStatusChanged, StatusChangedEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		GymID:     b.GymID,
		From:      current.Status,
		To:        b.Status,
		ChangedBy: caller.ID,
		ChangedAt: s.now().UTC(),
	})
	return b, nil
}

func (s *service) Get(ctx context.Context, caller authz.Identity, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.TrialView(caller, b.UserID, b.GymOwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListMine(ctx context.Context, caller authz.Identity, filter Filter) ([]*Booking, int, error) {
	if !caller.IsAdmin() {
		filter.UserID = caller.ID
		filter.GymID = ""
	} else if filter.UserID == "" && filter.GymID == "" {
		filter.UserID = caller.ID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) ListForGym(ctx context.Context, caller authz.Identity, gymID string, filter Filter) ([]*Booking, int, error) {
	g, err := s.lookupGym(ctx, gymID)
	if err != nil {
		return nil, 0, err
	}
	if err := authz.TrialStatusUpdate(caller, g.OwnerID); err != nil {
		return nil, 0, err
	}

	filter.GymID = gymID
	filter.UserID = ""
	return s.repo.List(ctx, filter)
}
