package orrery

import (
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// BodyState is the read-only per-frame view of one body.
type BodyState struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Class         BodyClass `json:"class"`
	Diameter      float64   `json:"diameterKm"`
	Mass          float64   `json:"massKg"`
	Distance      float64   `json:"distance"`
	Period        float64   `json:"periodDays"`
	Rotation      float64   `json:"rotationDays"`
	Eccentricity  float64   `json:"eccentricity"`
	Phase         float64   `json:"phase"`
	Parent        string    `json:"parent,omitempty"`
	Temperature   float64   `json:"temperatureK,omitempty"`
	Habitable     bool      `json:"habitable"`
	Removed       bool      `json:"removed"`
	RemovalReason string    `json:"removalReason,omitempty"`
	Position      r2.Vec    `json:"position"`
	Visible       bool      `json:"visible"`
	DisplaySize   float64   `json:"displaySize"`
}

// Snapshot is an immutable view of the whole system at one instant. It is
// safe to hold across further mutations.
type Snapshot struct {
	Version     uint64      `json:"version"`
	Date        time.Time   `json:"date"`
	ElapsedDays float64     `json:"elapsedDays"`
	Paused      bool        `json:"paused"`
	SpeedFactor float64     `json:"speedFactor"`
	Zoom        float64     `json:"zoom"`
	Bodies      []BodyState `json:"bodies"`
}

// Body returns the state with the given id, if present.
func (s Snapshot) Body(id string) (BodyState, bool) {
	for _, b := range s.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyState{}, false
}

// Snapshot returns the current read-only view of every body, with planar
// positions and display sizes computed at the current zoom. Moon positions
// resolve the parent by id; a moon whose parent is missing reports not
// visible.
func (s *System) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Version:     s.version,
		Date:        s.date(),
		ElapsedDays: s.elapsedDays,
		Paused:      s.paused,
		SpeedFactor: s.speedFactor,
		Zoom:        s.zoom,
		Bodies:      make([]BodyState, 0, len(s.order)),
	}
	for _, id := range s.order {
		b := s.bodies[id]
		st := BodyState{
			ID:            b.ID,
			Name:          b.Name,
			Class:         b.Class,
			Diameter:      b.Diameter,
			Mass:          b.Mass,
			Distance:      b.Distance,
			Period:        b.Period,
			Rotation:      b.Rotation,
			Eccentricity:  b.Eccentricity,
			Phase:         b.Phase,
			Parent:        b.Parent,
			Temperature:   b.Temperature,
			Habitable:     b.InHabitableZone(),
			Removed:       b.Removed,
			RemovalReason: b.RemovalReason,
			DisplaySize:   b.DisplaySize(s.zoom),
		}
		if b.Class == Moon {
			// A removed parent still anchors its moons; only a missing
			// parent leaves the position undefined.
			parent, ok := s.bodies[b.Parent]
			if ok && !b.Removed {
				parentPos := parent.position(s.elapsedDays, s.zoom)
				st.Position = b.moonPosition(parentPos, s.elapsedDays, s.zoom)
				st.Visible = true
			}
		} else if !b.Removed {
			st.Position = b.position(s.elapsedDays, s.zoom)
			st.Visible = true
		}
		snap.Bodies = append(snap.Bodies, st)
	}
	return snap
}
