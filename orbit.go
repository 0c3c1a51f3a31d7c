package orrery

import "math"

/* Closed-form orbital mechanics. Every function here is pure: constants and
explicit arguments in, a scalar out. Non-positive distances or masses return
the documented zero sentinel rather than propagating NaN or Inf; the star's
own distance-0/period-0 case is handled by the catalog and never routed
through these formulas. */

// OrbitalPeriod returns the orbital period in days of a body at the given
// heliocentric distance, per Kepler's third law T = 2π·sqrt(a³/(G·M)).
func OrbitalPeriod(distanceAU, centralMass float64) float64 {
	if distanceAU <= 0 || centralMass <= 0 {
		return 0
	}
	a := distanceAU * AU
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(a, 3)/(G*centralMass))
	return seconds / SecondsPerDay
}

// OrbitalVelocity returns the circular orbital velocity in m/s at the given
// heliocentric distance, v = sqrt(G·M/r).
func OrbitalVelocity(distanceAU, centralMass float64) float64 {
	if distanceAU <= 0 || centralMass <= 0 {
		return 0
	}
	return math.Sqrt(G * centralMass / (distanceAU * AU))
}

// EscapeVelocity returns the velocity in m/s needed to escape the central
// body from the given heliocentric distance, v = sqrt(2·G·M/r).
func EscapeVelocity(distanceAU, centralMass float64) float64 {
	if distanceAU <= 0 || centralMass <= 0 {
		return 0
	}
	return math.Sqrt(2 * G * centralMass / (distanceAU * AU))
}

// SurfaceEscapeVelocity returns the escape velocity in m/s from the surface
// of a body of the given mass and radius (meters).
func SurfaceEscapeVelocity(mass, radiusM float64) float64 {
	if mass <= 0 || radiusM <= 0 {
		return 0
	}
	return math.Sqrt(2 * G * mass / radiusM)
}

// GravitationalForce returns the mutual attraction in Newtons between two
// masses separated by the given distance in meters.
func GravitationalForce(m1, m2, distanceM float64) float64 {
	if m1 <= 0 || m2 <= 0 || distanceM <= 0 {
		return 0
	}
	return G * m1 * m2 / (distanceM * distanceM)
}

// HillSphereRadius returns the radius in AU of the region around a body
// within which its gravity dominates the central body's,
// r_H = a·(m/(3M))^(1/3).
func HillSphereRadius(distanceAU, bodyMass, centralMass float64) float64 {
	if distanceAU <= 0 || bodyMass <= 0 || centralMass <= 0 {
		return 0
	}
	return distanceAU * math.Cbrt(bodyMass/(3*centralMass))
}

// RecalculateOrbit derives the period and eccentricity of a body moved from
// its original distance to a new one. The period follows Kepler's third law
// with the solar mass; the eccentricity is a heuristic — the ORIGINAL
// eccentricity scaled by 1.1 when moving inward and 0.9 when moving outward,
// clamped to [0.001, 0.9]. A non-positive new distance is rejected: the
// original elements are returned unchanged.
func RecalculateOrbit(origDistance, newDistance, origPeriod, origEccentricity float64) (periodDays, eccentricity float64) {
	if newDistance <= 0 {
		return origPeriod, origEccentricity
	}
	periodDays = OrbitalPeriod(newDistance, SolarMass)
	factor := outwardEccFactor
	if newDistance < origDistance {
		factor = inwardEccFactor
	}
	eccentricity = clamp(origEccentricity*factor, eccentricityFloor, eccentricityCeil)
	return periodDays, eccentricity
}

// IsMoonStable reports whether a moon remains bound to its host planet. The
// moon's catalog distance (Earth-radius units) is converted to AU and
// compared against the stable fraction of the planet's Hill sphere about
// the star.
func IsMoonStable(planetDistanceAU, moonDistance, planetMass float64) bool {
	hill := HillSphereRadius(planetDistanceAU, planetMass, SolarMass)
	if hill == 0 {
		return false
	}
	moonAU := moonDistance * EarthRadius / AU
	return moonAU < hill/hillStableFraction
}

// EquilibriumTemperature returns the raw equilibrium temperature in Kelvin
// at the given heliocentric distance, 278·(1-albedo)^0.25/sqrt(d), with no
// greenhouse correction. An albedo outside [0, 1) reflects everything or
// is nonsense; both get the zero sentinel.
func EquilibriumTemperature(distanceAU, albedo float64) float64 {
	if distanceAU <= 0 || albedo < 0 || albedo >= 1 {
		return 0
	}
	return equilibriumCoeff * math.Pow(1-albedo, 0.25) / math.Sqrt(distanceAU)
}

// PlanetTemperature returns the surface temperature estimate in Kelvin at
// the given heliocentric distance: the equilibrium formula with the default
// albedo, then the fixed greenhouse overrides for the Venus, Earth and Mars
// distance bands. Bodies outside those bands get the bare equilibrium value.
func PlanetTemperature(distanceAU float64) float64 {
	if distanceAU <= 0 {
		return 0
	}
	base := EquilibriumTemperature(distanceAU, DefaultAlbedo)
	switch {
	case distanceAU >= venusBandLo && distanceAU <= venusBandHi:
		return venusOverrideK
	case distanceAU >= earthBandLo && distanceAU <= earthBandHi:
		return base + earthGreenhouseK
	case distanceAU >= marsBandLo && distanceAU <= marsBandHi:
		return base + marsGreenhouseK
	}
	return base
}
