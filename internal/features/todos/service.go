package todos

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "github.com/xyz-asif/duetodo/pkg/errors"
)

// Service owns the todo lifecycle: creation, user-driven done/not-done
// transitions and the system-driven move to PAST_DUE.
type Service struct {
	store Store
	now   func() time.Time
	log   zerolog.Logger
}

type Option func(*Service)

// WithClock replaces time.Now as the source of evaluation instants.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		log:   log.With().Str("component", "todo-service").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a new NOT_DONE todo.
func (s *Service) Create(ctx context.Context, description string, dueDatetime time.Time) (*Todo, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	if dueDatetime.IsZero() {
		return nil, apperrors.InvalidArgument("Invalid dueDatetime")
	}

	todo := &Todo{
		Description:      description,
		Status:           StatusNotDone,
		CreationDatetime: s.clock(),
		DueDatetime:      dueDatetime.UTC().Truncate(time.Millisecond),
	}

	if err := s.store.Save(ctx, todo); err != nil {
		s.logger(ctx).Error().Err(err).Str("description", description).Msg("failed to add todo")
		return nil, apperrors.Internal(err, "failed to add todo")
	}

	return todo, nil
}

// Get returns the todo with the given id after applying the past-due rule,
// persisting the flip when it happens.
func (s *Service) Get(ctx context.Context, id string) (*Todo, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		s.logger(ctx).Debug().Str("todo_id", id).Msg("malformed todo id")
		return nil, apperrors.NotFound("Todo %s not found", id)
	}

	todo, err := s.store.FindByID(ctx, objectID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to load todo")
	}
	if todo == nil {
		s.logger(ctx).Debug().Str("todo_id", id).Msg("todo not found")
		return nil, apperrors.NotFound("Todo %s not found", id)
	}

	if status, changed := Recompute(*todo, s.clock()); changed {
		todo.Status = status
		if err := s.store.Save(ctx, todo); err != nil {
			return nil, apperrors.Internal(err, "failed to persist past-due status")
		}
	}

	return todo, nil
}

// List returns every todo when includeAll is set, otherwise the ones stored
// as NOT_DONE. The past-due rule is applied to every returned item, so a
// default listing can contain todos that just became PAST_DUE. All flips are
// persisted in a single batch.
func (s *Service) List(ctx context.Context, includeAll bool) ([]Todo, error) {
	var filter Filter
	if !includeAll {
		filter.Status = StatusNotDone
	}

	list, err := s.store.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list todos")
	}

	if changed := recomputeAll(list, s.clock()); len(changed) > 0 {
		if err := s.store.SaveMany(ctx, changed); err != nil {
			return nil, apperrors.Internal(err, "failed to persist past-due status")
		}
	}

	return list, nil
}

func (s *Service) UpdateDescription(ctx context.Context, id, description string) (*Todo, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "update description", func(t *Todo) {
		t.Description = description
	})
}

func (s *Service) MarkDone(ctx context.Context, id string) (*Todo, error) {
	return s.mutate(ctx, id, "mark done", func(t *Todo) {
		markDone(t, s.clock())
	})
}

func (s *Service) MarkNotDone(ctx context.Context, id string) (*Todo, error) {
	return s.mutate(ctx, id, "mark not done", markNotDone)
}

// mutate resolves the todo through Get, so a todo that turns past due on
// this very call is already protected, then applies fn and saves.
func (s *Service) mutate(ctx context.Context, id, action string, fn func(*Todo)) (*Todo, error) {
	todo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if todo.Status == StatusPastDue {
		s.logger(ctx).Debug().Str("todo_id", id).Str("action", action).Msg("mutation blocked for past-due todo")
		return nil, apperrors.InvalidArgument("Todo %s is past due and cannot be modified", todo.ID.Hex())
	}

	fn(todo)

	if err := s.store.Save(ctx, todo); err != nil {
		s.logger(ctx).Error().Err(err).Str("todo_id", id).Str("action", action).Msg("failed to save todo")
		return nil, apperrors.Internal(err, "failed to "+action)
	}

	return todo, nil
}

// RunPastDueSweep flips every NOT_DONE todo due strictly before now to
// PAST_DUE in one batch write and returns how many changed.
func (s *Service) RunPastDueSweep(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.UTC()
	overdue, err := s.store.Find(ctx, Filter{Status: StatusNotDone, DueBefore: &cutoff})
	if err != nil {
		return 0, apperrors.Internal(err, "failed to load overdue todos")
	}

	// The store query already narrows the set; Recompute keeps the sweep and
	// the read path on the same rule.
	changed := recomputeAll(overdue, cutoff)
	if len(changed) == 0 {
		s.log.Debug().Msg("past-due sweep ran, 0 updates")
		return 0, nil
	}

	if err := s.store.SaveMany(ctx, changed); err != nil {
		return 0, apperrors.Internal(err, "failed to persist past-due status")
	}

	s.log.Info().Int("count", len(changed)).Msg("past-due sweep updated todos")
	return len(changed), nil
}

// clock returns the current instant at the precision the store keeps.
func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// logger prefers the request-scoped logger carried by ctx.
func (s *Service) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		scoped := l.With().Str("component", "todo-service").Logger()
		return &scoped
	}
	return &s.log
}
