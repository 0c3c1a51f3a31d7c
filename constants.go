package orrery

// Physical constants used by the closed-form orbital formulas.
const (
	// G is the gravitational constant in m^3/(kg*s^2).
	G = 6.67430e-11
	// AU is one astronomical unit in meters.
	AU = 1.495978707e11
	// SolarMass is the mass of the Sun in kg, the reference central mass.
	SolarMass = 1.989e30
	// EarthMass is the mass of the Earth in kg.
	EarthMass = 5.972e24
	// EarthRadius is the mean Earth radius in meters, used to convert
	// catalog moon distances to AU.
	EarthRadius = 6.371e6
	// SecondsPerDay converts the SI period to days.
	SecondsPerDay = 86400.0
	// DefaultAlbedo is the bond albedo assumed when none is provided.
	DefaultAlbedo = 0.3
	// equilibriumCoeff is the equilibrium temperature at 1 AU in Kelvin
	// before the albedo term.
	equilibriumCoeff = 278.0
)

// Tuning constants of the perturbation heuristics. These are visual-app
// approximations, not physically derived values.
const (
	// eccentricityFloor and eccentricityCeil bound every recomputed
	// eccentricity.
	eccentricityFloor = 0.001
	eccentricityCeil  = 0.9
	// inwardEccFactor and outwardEccFactor scale the original eccentricity
	// when a body is moved closer to or farther from the star.
	inwardEccFactor  = 1.1
	outwardEccFactor = 0.9
	// hillStableFraction divides the Hill-sphere radius to get the region
	// considered dynamically stable for a moon.
	hillStableFraction = 2.5
)

// Greenhouse override bands. The base equilibrium formula ignores
// atmospheres, so three known bodies get fixed empirical corrections.
const (
	venusBandLo, venusBandHi = 0.71, 0.73
	venusOverrideK           = 737.0
	earthBandLo, earthBandHi = 0.99, 1.01
	earthGreenhouseK         = 33.0
	marsBandLo, marsBandHi   = 1.51, 1.53
	marsGreenhouseK          = 5.0
)

// Visual-scaling constants. These shape the rendered orbits and sizes for
// legibility at solar-system zoom and are part of the app's observable
// contract, not physics.
const (
	// Distance banding: inner orbits render true-scale, middle orbits are
	// compressed linearly, outer orbits logarithmically.
	innerBandEdge   = 2.0  // AU
	middleBandEdge  = 10.0 // AU
	middleBandScale = 0.5
	outerLogScale   = 10.0

	// Eccentricity damping per band keeps ellipses readable.
	innerEccDamp  = 0.4
	middleEccDamp = 0.3
	outerEccDamp  = 0.2

	// MoonOrbitScale inflates a moon's parent-relative orbit radius so
	// moons stay visible at solar-system zoom.
	MoonOrbitScale = 12.0

	// Display-size curve parameters.
	sizeSqrtDamp = 250.0
	// MinDisplaySize is the smallest rendered size of any visible body.
	MinDisplaySize = 2.0
)
