package orrery

import (
	"fmt"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/soniakeys/meeus/v3/julian"
)

/* The system owns the body collection and the simulation clock. Every
mutation and every snapshot takes the lock, so a render snapshot never
observes partially updated orbital elements. */

// System holds the body collection, advances simulated time and applies
// what-if perturbations. All methods are safe for concurrent use.
type System struct {
	mu     sync.RWMutex
	bodies map[string]*Body
	order  []string // stable snapshot order

	cfg         Config
	elapsedDays float64
	paused      bool
	speedFactor float64
	zoom        float64
	version     uint64

	logger kitlog.Logger
}

// NewSystem returns a running system over the default catalog. A nil logger
// gets a logfmt logger on stdout.
func NewSystem(cfg Config, logger kitlog.Logger) *System {
	if logger == nil {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	logger = kitlog.With(logger, "subsys", "system")
	s := &System{
		bodies:      make(map[string]*Body),
		cfg:         cfg,
		speedFactor: 1,
		zoom:        1,
		logger:      logger,
	}
	for _, b := range DefaultCatalog() {
		s.bodies[b.ID] = b
		s.order = append(s.order, b.ID)
	}
	return s
}

// Config returns the tuning the system was built with.
func (s *System) Config() Config {
	return s.cfg
}

// timeScale is the simulated-days multiplier per base step. Squaring the
// speed factor gives finer control at low speeds.
func (s *System) timeScale() float64 {
	return s.speedFactor * s.speedFactor * s.cfg.MaxSpeed
}

// AdvanceTime converts a real-time delta in seconds to simulated days and
// advances the clock. A paused system or a non-positive delta is a no-op.
func (s *System) AdvanceTime(deltaRealSeconds float64) {
	if deltaRealSeconds <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	ticks := deltaRealSeconds * s.cfg.TickRate
	s.elapsedDays += ticks * s.cfg.BaseTimeStep * s.timeScale()
	s.version++
}

// SetPaused toggles between the running and paused states.
func (s *System) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused == paused {
		return
	}
	s.paused = paused
	s.version++
	s.logger.Log("event", "pause", "paused", paused)
}

// Paused reports whether the clock is paused.
func (s *System) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}

// SetSpeedFactor sets the user speed control, clamped to
// [0, MaxSpeedFactor].
func (s *System) SetSpeedFactor(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speedFactor = clamp(v, 0, s.cfg.MaxSpeedFactor)
	s.version++
}

// SetZoom sets the render zoom, clamped to [MinZoom, MaxZoom]. Zoom is a
// pure rendering parameter consumed by snapshot geometry.
func (s *System) SetZoom(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zoom = clamp(v, s.cfg.MinZoom, s.cfg.MaxZoom)
	s.version++
}

// Date returns the current simulated date.
func (s *System) Date() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.date()
}

// date converts elapsed days to the simulated date in julian-day space: a
// time.Duration round-trip would overflow past ~292 years of simulated
// time, well within reach of a long run at high speed.
func (s *System) date() time.Time {
	return julian.JDToTime(julian.TimeToJD(s.cfg.Epoch) + s.elapsedDays)
}

// SetDate jumps the simulation to an absolute date by adding the julian-day
// delta between the target and the current simulated date. It is a jump,
// not a reset: perturbed elements are untouched.
func (s *System) SetDate(target time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delta := julian.TimeToJD(target) - julian.TimeToJD(s.date())
	s.elapsedDays += delta
	s.version++
	s.logger.Log("event", "set-date", "date", target.Format(epochFormat), "delta(d)", fmt.Sprintf("%.2f", delta))
}

// ElapsedDays returns the simulated days elapsed since the epoch.
func (s *System) ElapsedDays() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elapsedDays
}

// UpdateDistance moves a body to a new heliocentric distance. The period
// and eccentricity are recomputed against the ORIGINAL snapshot, the
// temperature is refreshed, and if the body is a planet the stability of
// every moon whose parent is this body is re-evaluated. The star and
// non-positive distances are rejected.
func (s *System) UpdateDistance(id string, newDistance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	if b.Class == Star || newDistance <= 0 {
		return fmt.Errorf("%w: %q to %f AU", ErrInvalidDistance, id, newDistance)
	}
	b.Distance = newDistance
	b.Period, b.Eccentricity = RecalculateOrbit(b.origDistance, newDistance, b.origPeriod, b.origEccentricity)
	s.refreshTemperature(b)
	if b.Class == Planet {
		s.evaluateMoons(b)
	}
	s.version++
	s.logger.Log("event", "update-distance", "body", id, "distance(AU)", newDistance,
		"period(d)", fmt.Sprintf("%.2f", b.Period), "ecc", fmt.Sprintf("%.4f", b.Eccentricity))
	return nil
}

// ResetDistance restores a body's distance, period and eccentricity from
// the original snapshot, refreshes its temperature and re-evaluates moon
// stability if it is a planet.
func (s *System) ResetDistance(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	if b.Class == Star {
		return fmt.Errorf("%w: %q has no distance to reset", ErrInvalidDistance, id)
	}
	b.Distance = b.origDistance
	b.Period = b.origPeriod
	b.Eccentricity = b.origEccentricity
	s.refreshTemperature(b)
	if b.Class == Planet {
		s.evaluateMoons(b)
	}
	s.version++
	s.logger.Log("event", "reset-distance", "body", id)
	return nil
}

// ResetAllChanges clears every removed flag and restores every distance to
// its original value. Periods, eccentricities and temperatures are left as
// they are in this bulk path; only the single-body ResetDistance restores
// the full element set. Idempotent.
func (s *System) ResetAllChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		b := s.bodies[id]
		b.Removed = false
		b.RemovalReason = ""
		b.cause = causeNone
		if b.Class != Star {
			b.Distance = b.origDistance
		}
	}
	s.version++
	s.logger.Log("event", "reset-all")
}

// RemoveBody marks a body removed at the user's request. A user removal is
// never undone by stability re-evaluation.
func (s *System) RemoveBody(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	b.Removed = true
	b.cause = causeUser
	b.RemovalReason = "removed by user"
	s.version++
	s.logger.Log("event", "remove", "body", id)
	return nil
}

// RestoreBody clears a body's removed flag regardless of how it was set.
func (s *System) RestoreBody(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bodies[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBody, id)
	}
	b.Removed = false
	b.RemovalReason = ""
	b.cause = causeNone
	s.version++
	s.logger.Log("event", "restore", "body", id)
	return nil
}

// refreshTemperature recomputes a body's temperature from its heliocentric
// distance. Moons take the host planet's distance; the star stays cold in
// this field.
func (s *System) refreshTemperature(b *Body) {
	switch b.Class {
	case Star:
		return
	case Moon:
		if parent, ok := s.bodies[b.Parent]; ok {
			b.Temperature = PlanetTemperature(parent.Distance)
		}
	default:
		b.Temperature = PlanetTemperature(b.Distance)
	}
}

// evaluateMoons re-checks every moon of the given planet against its Hill
// sphere. An unstable moon is removed with a reason naming the planet's
// gravity; a moon removed for that reason is restored when stable again.
// User-removed moons are never auto-restored.
func (s *System) evaluateMoons(planet *Body) {
	for _, id := range s.order {
		m := s.bodies[id]
		if m.Parent != planet.ID {
			continue
		}
		m.Temperature = PlanetTemperature(planet.Distance)
		if IsMoonStable(planet.Distance, m.Distance, planet.Mass) {
			if m.Removed && m.cause == causeInstability {
				m.Removed = false
				m.RemovalReason = ""
				m.cause = causeNone
				s.logger.Log("event", "moon-restored", "moon", m.ID, "planet", planet.ID)
			}
			continue
		}
		if !m.Removed {
			m.Removed = true
			m.cause = causeInstability
			m.RemovalReason = fmt.Sprintf("escaped %s's gravitational hold", planet.Name)
			s.logger.Log("event", "moon-ejected", "moon", m.ID, "planet", planet.ID)
		}
	}
}
