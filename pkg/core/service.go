package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"
)

// Service handles the business logic for readings.
// It keeps the whole collection in memory and writes it back through the
// Repository after every mutation.
type Service struct {
	repo     Repository
	logger   *slog.Logger
	now      func() time.Time
	mu       sync.RWMutex
	readings []Reading
	loaded   bool
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the clock used for default timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithServiceLogger sets the logger for the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new Service. Call Load before using it.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load (re)reads the collection from the repository.
func (s *Service) Load(ctx context.Context) error {
	readings, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.readings = readings
	s.loaded = true
	if s.logger != nil {
		s.logger.Debug("readings loaded", "count", len(readings))
	}
	return nil
}

// Len returns the number of readings in the collection.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// Add validates and stores a new reading.
// The id is the current collection size plus one.
func (s *Service) Add(ctx context.Context, in NewReading) (Reading, error) {
	if err := Validate(in); err != nil {
		return Reading{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := in.Timestamp
	if ts == "" {
		ts = s.now().Format(TimestampLayout)
	}

	r := Reading{
		ID:        len(s.readings) + 1,
		Systolic:  in.Systolic,
		Diastolic: in.Diastolic,
		Timestamp: ts,
		Pulse:     in.Pulse,
		Notes:     in.Notes,
	}

	prev := s.readings
	s.readings = append(s.readings[:len(s.readings):len(s.readings)], r)

	ctx = withDefaultReason(ctx, fmt.Sprintf("add reading %d", r.ID))
	if err := s.repo.Save(ctx, s.readings); err != nil {
		s.readings = prev
		return Reading{}, fmt.Errorf("failed to save readings: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("reading added", "id", r.ID, "systolic", r.Systolic, "diastolic", r.Diastolic)
	}
	return r, nil
}

// List returns readings sorted by timestamp, newest first.
// Timestamps compare as strings. A limit <= 0 returns every reading.
func (s *Service) List(ctx context.Context, limit int) []Reading {
	s.mu.RLock()
	out := make([]Reading, len(s.readings))
	copy(out, s.readings)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Delete removes the first reading with the given id.
// It reports whether a reading was removed.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, r := range s.readings {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	next := make([]Reading, 0, len(s.readings)-1)
	next = append(next, s.readings[:idx]...)
	next = append(next, s.readings[idx+1:]...)

	ctx = withDefaultReason(ctx, fmt.Sprintf("delete reading %d", id))
	if err := s.repo.Save(ctx, next); err != nil {
		return false, fmt.Errorf("failed to save readings: %w", err)
	}
	s.readings = next

	if s.logger != nil {
		s.logger.Debug("reading deleted", "id", id)
	}
	return true, nil
}

// Clear removes every reading and reports how many were removed.
// An empty collection is not rewritten.
func (s *Service) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.readings)
	if n == 0 {
		return 0, nil
	}

	ctx = withDefaultReason(ctx, "clear readings")
	if err := s.repo.Save(ctx, []Reading{}); err != nil {
		return 0, fmt.Errorf("failed to save readings: %w", err)
	}
	s.readings = []Reading{}

	if s.logger != nil {
		s.logger.Debug("readings cleared", "count", n)
	}
	return n, nil
}

// Statistics computes count, averages and ranges over every reading.
// Averages are rounded to one decimal place. An empty store yields zeros.
func (s *Service) Statistics(ctx context.Context) Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.readings)
}

// Summarize computes Statistics for readings.
func Summarize(readings []Reading) Statistics {
	if len(readings) == 0 {
		return Statistics{}
	}

	st := Statistics{
		Count:        len(readings),
		MinSystolic:  readings[0].Systolic,
		MaxSystolic:  readings[0].Systolic,
		MinDiastolic: readings[0].Diastolic,
		MaxDiastolic: readings[0].Diastolic,
	}

	var sumSys, sumDia int
	for _, r := range readings {
		sumSys += r.Systolic
		sumDia += r.Diastolic
		st.MinSystolic = min(st.MinSystolic, r.Systolic)
		st.MaxSystolic = max(st.MaxSystolic, r.Systolic)
		st.MinDiastolic = min(st.MinDiastolic, r.Diastolic)
		st.MaxDiastolic = max(st.MaxDiastolic, r.Diastolic)
	}

	n := float64(len(readings))
	st.AvgSystolic = round1(float64(sumSys) / n)
	st.AvgDiastolic = round1(float64(sumDia) / n)
	return st
}

// Validate checks the ranges of a new reading and the shape of an explicit timestamp.
func Validate(in NewReading) error {
	if in.Systolic < MinSystolic || in.Systolic > MaxSystolic {
		return rangeError("systolic", "Systolic pressure", MinSystolic, MaxSystolic)
	}
	if in.Diastolic < MinDiastolic || in.Diastolic > MaxDiastolic {
		return rangeError("diastolic", "Diastolic pressure", MinDiastolic, MaxDiastolic)
	}
	if in.Pulse != nil && (*in.Pulse < MinPulse || *in.Pulse > MaxPulse) {
		return rangeError("pulse", "Pulse", MinPulse, MaxPulse)
	}
	if in.Timestamp != "" {
		if _, err := ParseTimestamp(in.Timestamp); err != nil {
			return &ValidationError{Field: "timestamp", Message: fmt.Sprintf("Timestamp %q is not ISO-8601", in.Timestamp)}
		}
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func withDefaultReason(ctx context.Context, reason string) context.Context {
	if val, ok := ctx.Value(ChangeReasonKey).(string); ok && val != "" {
		return ctx
	}
	return context.WithValue(ctx, ChangeReasonKey, reason)
}

// Watch observes changes of the persisted store if the repository supports it.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}
