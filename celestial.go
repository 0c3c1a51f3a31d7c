package orrery

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// BodyClass classifies a celestial body.
type BodyClass string

// The supported body classes.
const (
	Star        BodyClass = "star"
	Planet      BodyClass = "planet"
	DwarfPlanet BodyClass = "dwarf-planet"
	Moon        BodyClass = "moon"
	Asteroid    BodyClass = "asteroid"
	Comet       BodyClass = "comet"
)

// removalCause distinguishes why a body carries the removed flag. A moon
// removed by instability may be auto-restored when its orbit stabilizes; a
// body removed by the user never is.
type removalCause int

const (
	causeNone removalCause = iota
	causeUser
	causeInstability
)

// Body holds one celestial object's orbital elements and scenario state.
// Distance is heliocentric AU for sun orbiters and catalog units
// (Earth radii) from the parent for moons. A negative Rotation encodes a
// retrograde spin.
type Body struct {
	ID           string
	Name         string
	Class        BodyClass
	Diameter     float64 // km
	Mass         float64 // kg
	Distance     float64 // AU, or catalog units for moons
	Period       float64 // days
	Rotation     float64 // days, negative = retrograde
	Eccentricity float64
	Phase        float64 // initial phase angle, radians
	Parent       string  // lookup key only; empty for sun orbiters
	Temperature  float64 // Kelvin; zero for the star

	Removed       bool
	RemovalReason string
	cause         removalCause

	// Baseline snapshot captured at construction, immutable afterwards.
	origDistance     float64
	origPeriod       float64
	origEccentricity float64
}

// String implements the Stringer interface.
func (b *Body) String() string {
	return b.Name + " (" + string(b.Class) + ")"
}

// Original returns the baseline distance, period and eccentricity captured
// when the catalog was built.
func (b *Body) Original() (distance, period, eccentricity float64) {
	return b.origDistance, b.origPeriod, b.origEccentricity
}

// seal captures the baseline snapshot. Called once by the catalog factory.
func (b *Body) seal() {
	b.origDistance = b.Distance
	b.origPeriod = b.Period
	b.origEccentricity = b.Eccentricity
}

// orbitalAngle returns the angular position at the given simulated elapsed
// days. A zero period (the star) stays at its phase angle.
func (b *Body) orbitalAngle(elapsedDays float64) float64 {
	if b.Period == 0 {
		return b.Phase
	}
	return normalizeAngle(2*math.Pi*elapsedDays/b.Period + b.Phase)
}

// visualDistance maps a heliocentric distance in AU to render units. Inner
// orbits are true-scale, middle orbits compressed linearly, outer orbits
// logarithmically, continuous at the band edges.
func visualDistance(d float64) float64 {
	switch {
	case d <= innerBandEdge:
		return d
	case d <= middleBandEdge:
		return innerBandEdge + (d-innerBandEdge)*middleBandScale
	default:
		middleSpan := (middleBandEdge - innerBandEdge) * middleBandScale
		return innerBandEdge + middleSpan + outerLogScale*math.Log10(d/middleBandEdge)
	}
}

// dampedEccentricity flattens the rendered ellipse per distance band.
func dampedEccentricity(d, e float64) float64 {
	switch {
	case d <= innerBandEdge:
		return e * innerEccDamp
	case d <= middleBandEdge:
		return e * middleEccDamp
	default:
		return e * outerEccDamp
	}
}

// position returns the planar render position of a sun orbiter at the given
// elapsed simulated days, scaled by zoom. Pure geometry: the caller decides
// visibility (removed flag, unresolved parent).
func (b *Body) position(elapsedDays, zoom float64) r2.Vec {
	if b.Class == Star {
		return r2.Vec{}
	}
	θ := b.orbitalAngle(elapsedDays)
	av := visualDistance(b.Distance)
	ev := dampedEccentricity(b.Distance, b.Eccentricity)
	r := av * (1 - ev*ev) / (1 + ev*math.Cos(θ))
	sin, cos := math.Sincos(θ)
	return r2.Vec{X: r * cos * zoom, Y: r * sin * zoom}
}

// moonPosition returns the planar render position of a moon relative to its
// resolved parent's position. The catalog-unit orbit radius is inflated by
// MoonOrbitScale so the moon stays visible at solar-system zoom.
func (b *Body) moonPosition(parentPos r2.Vec, elapsedDays, zoom float64) r2.Vec {
	θ := b.orbitalAngle(elapsedDays)
	r := b.Distance * MoonOrbitScale
	sin, cos := math.Sincos(θ)
	return r2.Vec{X: parentPos.X + r*cos*zoom, Y: parentPos.Y + r*sin*zoom}
}

// DisplaySize returns the rendered size of the body at the given zoom. The
// log-plus-square-root curve compresses the ten-orders-of-magnitude diameter
// range into a legible band, with a floor so small bodies stay visible.
func (b *Body) DisplaySize(zoom float64) float64 {
	if b.Diameter <= 0 {
		return MinDisplaySize
	}
	s := classSizeScale(b.Class)*math.Log10(b.Diameter) + math.Sqrt(b.Diameter)/sizeSqrtDamp
	s *= zoom
	if s < MinDisplaySize {
		s = MinDisplaySize
	}
	return s
}

func classSizeScale(c BodyClass) float64 {
	switch c {
	case Star:
		return 3.0
	case Planet:
		return 1.8
	case DwarfPlanet:
		return 1.4
	case Moon:
		return 1.2
	default:
		return 1.0
	}
}

// InHabitableZone reports whether the body is a planet or dwarf planet with
// a surface temperature between -50°C and +50°C.
func (b *Body) InHabitableZone() bool {
	if b.Class != Planet && b.Class != DwarfPlanet {
		return false
	}
	celsius := b.Temperature - 273.15
	return celsius > -50 && celsius < 50
}
