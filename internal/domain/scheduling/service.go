package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bibek021/dental-one-sub000/internal/platform/events"
)

type Service struct {
	store     *Store
	dir       Directory
	engine    *Engine
	clock     Clock
	cache     *ViewCache
	publisher events.Publisher
	logger    zerolog.Logger
	roster    Roster
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

func WithViewCache(c *ViewCache) ServiceOption {
	return func(s *Service) { s.cache = c }
}

func WithPublisher(p events.Publisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

func NewService(store *Store, dir Directory, roster Roster, clock Clock, opts ...ServiceOption) *Service {
	s := &Service{
		store:     store,
		dir:       dir,
		engine:    NewEngine(dir),
		clock:     clock,
		publisher: events.Nop{},
		logger:    zerolog.Nop(),
		roster:    roster,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "scheduling").Logger()
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Regenerate replaces the canonical list with freshly generated data.
func (s *Service) Regenerate(ctx context.Context, seed uint64) int {
	list := GenerateAppointments(GeneratorParams{
		Now:    s.clock.Now(),
		Rand:   NewRand(seed),
		Roster: s.roster,
	})
	s.store.Replace(list)
	s.cache.Purge()

	s.logger.Info().Uint64("seed", seed).Int("count", len(list)).Msg("appointments generated")
	s.publish(ctx, events.Event{
		Type:         events.TypeAppointmentsRegenerated,
		Topic:        events.TopicAppointments,
		ResourceType: "Appointment",
		Timestamp:    s.clock.Now(),
	})
	return len(list)
}

// List returns the filtered appointments for the cursor, resolved for display.
func (s *Service) List(_ context.Context, cursor Cursor, state FilterState) []AppointmentView {
	filtered := s.engine.Filter(s.store.Snapshot(), cursor, state)
	return ResolveAll(filtered, s.dir)
}

// Calendar returns the bucketed view of the filtered appointments.
func (s *Service) Calendar(_ context.Context, cursor Cursor, state FilterState) CalendarView {
	key := viewCacheKey(s.store.Version(), cursor, state)
	if v, ok := s.cache.Get(key); ok {
		s.logger.Debug().Str("key", key).Msg("calendar cache hit")
		return v
	}

	filtered := s.engine.Filter(s.store.Snapshot(), cursor, state)
	view := BucketForView(ResolveAll(filtered, s.dir), cursor.Mode, cursor)
	s.cache.Add(key, view)
	return view
}

// Navigate steps the cursor; a nil direction resets it to today.
func (s *Service) Navigate(cursor Cursor, dir *Direction) Cursor {
	if dir == nil {
		return cursor.Today(s.clock)
	}
	return Advance(cursor, *dir)
}

// Get returns a single resolved appointment.
func (s *Service) Get(_ context.Context, id string) (AppointmentView, error) {
	a, err := s.store.Get(id)
	if err != nil {
		return AppointmentView{}, err
	}
	return Resolve(a, s.dir), nil
}

// UpdateStatus applies a lifecycle transition and notifies subscribers.
func (s *Service) UpdateStatus(ctx context.Context, id string, next Status) (AppointmentView, error) {
	if !next.IsValid() {
		return AppointmentView{}, fmt.Errorf("%w: unknown status %q", ErrInvalidStatusTransition, next)
	}
	updated, prev, err := s.store.TransitionStatus(id, next, s.clock.Now())
	if err != nil {
		s.logger.Warn().Err(err).Str("appointment_id", id).Str("status", string(next)).Msg("status transition rejected")
		return AppointmentView{}, err
	}
	s.cache.Purge()

	s.logger.Info().
		Str("appointment_id", id).
		Str("from", string(prev)).
		Str("to", string(next)).
		Msg("appointment status changed")

	data, _ := json.Marshal(map[string]string{"from": string(prev), "to": string(next)})
	evt := events.Event{
		Type:         events.TypeAppointmentStatusChanged,
		ResourceType: "Appointment",
		ResourceID:   id,
		Timestamp:    updated.UpdatedAt,
		Data:         data,
	}
	for _, topic := range []string{events.TopicAppointments, "Appointment/" + id} {
		evt.Topic = topic
		s.publish(ctx, evt)
	}
	return Resolve(updated, s.dir), nil
}

// Stats summarises the whole canonical list.
func (s *Service) Stats(_ context.Context) Stats {
	return Summarize(s.store.Snapshot(), s.clock.Now())
}

func (s *Service) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Error().Err(err).Str("type", evt.Type).Str("topic", evt.Topic).Msg("publish event failed")
	}
}
