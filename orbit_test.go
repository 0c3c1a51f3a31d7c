package orrery

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestOrbitalPeriodEarth(t *testing.T) {
	period := OrbitalPeriod(1.0, SolarMass)
	if !scalar.EqualWithinRel(period, 365.25, 0.01) {
		t.Fatalf("Earth-equivalent period off Kepler III: got %f days", period)
	}
}

func TestOrbitalPeriodScalesAsThreeHalves(t *testing.T) {
	// T ∝ a^1.5, so quadrupling the distance multiplies the period by 8.
	p1 := OrbitalPeriod(1.0, SolarMass)
	p4 := OrbitalPeriod(4.0, SolarMass)
	if !scalar.EqualWithinRel(p4, 8*p1, 1e-10) {
		t.Fatalf("period scaling broken: T(4)/T(1) = %f", p4/p1)
	}
}

func TestOrbitalVelocityEarth(t *testing.T) {
	v := OrbitalVelocity(1.0, SolarMass)
	if !scalar.EqualWithinRel(v, 29780, 0.02) {
		t.Fatalf("Earth orbital velocity off: got %f m/s", v)
	}
}

func TestEscapeVelocityIsSqrt2Orbital(t *testing.T) {
	for _, d := range []float64{0.1, 0.72, 1.0, 5.2, 30.1, 75.0} {
		for _, m := range []float64{EarthMass, SolarMass, 3 * SolarMass} {
			esc := EscapeVelocity(d, m)
			orb := OrbitalVelocity(d, m)
			if !scalar.EqualWithinRel(esc, math.Sqrt2*orb, 1e-12) {
				t.Fatalf("identity broken at d=%f m=%e: esc=%f orb=%f", d, m, esc, orb)
			}
		}
	}
}

func TestSurfaceEscapeVelocityEarth(t *testing.T) {
	v := SurfaceEscapeVelocity(EarthMass, EarthRadius)
	if !scalar.EqualWithinRel(v, 11186, 0.01) {
		t.Fatalf("Earth surface escape velocity off: got %f m/s", v)
	}
}

func TestGravitationalForceEarthSun(t *testing.T) {
	f := GravitationalForce(SolarMass, EarthMass, AU)
	if !scalar.EqualWithinRel(f, 3.54e22, 0.01) {
		t.Fatalf("Earth-Sun force off: got %e N", f)
	}
}

func TestHillSphereRadiusEarth(t *testing.T) {
	r := HillSphereRadius(1.0, EarthMass, SolarMass)
	if !scalar.EqualWithinRel(r, 0.01, 0.05) {
		t.Fatalf("Earth Hill radius off: got %f AU", r)
	}
}

func TestFormulaGuards(t *testing.T) {
	cases := []struct {
		name string
		got  float64
	}{
		{"period zero distance", OrbitalPeriod(0, SolarMass)},
		{"period negative distance", OrbitalPeriod(-1, SolarMass)},
		{"period zero mass", OrbitalPeriod(1, 0)},
		{"velocity zero distance", OrbitalVelocity(0, SolarMass)},
		{"escape negative distance", EscapeVelocity(-2, SolarMass)},
		{"surface escape zero radius", SurfaceEscapeVelocity(EarthMass, 0)},
		{"force zero distance", GravitationalForce(SolarMass, EarthMass, 0)},
		{"hill zero mass", HillSphereRadius(1, 0, SolarMass)},
		{"temperature zero distance", PlanetTemperature(0)},
		{"equilibrium full albedo", EquilibriumTemperature(1.0, 1.0)},
		{"equilibrium excess albedo", EquilibriumTemperature(1.0, 1.5)},
		{"equilibrium negative albedo", EquilibriumTemperature(1.0, -0.1)},
	}
	for _, tc := range cases {
		if tc.got != 0 {
			t.Errorf("%s: expected zero sentinel, got %f", tc.name, tc.got)
		}
		if math.IsNaN(tc.got) || math.IsInf(tc.got, 0) {
			t.Errorf("%s: leaked a non-finite value", tc.name)
		}
	}
}

// RecalculateOrbit is a visual-app heuristic, not physics: the eccentricity
// factor applies to the original value, never the current one.
func TestRecalculateOrbitInward(t *testing.T) {
	period, ecc := RecalculateOrbit(1.0, 0.5, 365.25, 0.1)
	if !scalar.EqualWithinRel(period, OrbitalPeriod(0.5, SolarMass), 1e-12) {
		t.Fatalf("period not Keplerian at new distance: %f", period)
	}
	if !scalar.EqualWithinAbs(ecc, 0.11, 1e-12) {
		t.Fatalf("inward move must scale original eccentricity by 1.1: got %f", ecc)
	}
}

func TestRecalculateOrbitOutward(t *testing.T) {
	_, ecc := RecalculateOrbit(1.0, 3.0, 365.25, 0.1)
	if !scalar.EqualWithinAbs(ecc, 0.09, 1e-12) {
		t.Fatalf("outward move must scale original eccentricity by 0.9: got %f", ecc)
	}
	// Equal distance takes the outward branch.
	_, ecc = RecalculateOrbit(1.0, 1.0, 365.25, 0.1)
	if !scalar.EqualWithinAbs(ecc, 0.09, 1e-12) {
		t.Fatalf("equal distance must take the outward branch: got %f", ecc)
	}
}

func TestRecalculateOrbitAppliesToOriginal(t *testing.T) {
	// Two successive inward moves must not compound: both are computed
	// against the original eccentricity.
	_, first := RecalculateOrbit(1.0, 0.5, 365.25, 0.2)
	_, second := RecalculateOrbit(1.0, 0.25, 365.25, 0.2)
	if !scalar.EqualWithinAbs(first, second, 1e-12) {
		t.Fatalf("factor compounded: first=%f second=%f", first, second)
	}
}

func TestRecalculateOrbitClamps(t *testing.T) {
	if _, ecc := RecalculateOrbit(1.0, 0.5, 365.25, 0.89); ecc != eccentricityCeil {
		t.Fatalf("eccentricity not clamped to ceiling: got %f", ecc)
	}
	if _, ecc := RecalculateOrbit(1.0, 3.0, 365.25, 0.0); ecc != eccentricityFloor {
		t.Fatalf("eccentricity not clamped to floor: got %f", ecc)
	}
}

func TestRecalculateOrbitRejectsNonPositive(t *testing.T) {
	period, ecc := RecalculateOrbit(1.0, 0, 365.25, 0.1)
	if period != 365.25 || ecc != 0.1 {
		t.Fatalf("non-positive distance must return the original elements: %f, %f", period, ecc)
	}
}

func TestIsMoonStableDefaultMoon(t *testing.T) {
	if !IsMoonStable(1.0, 0.03, EarthMass) {
		t.Fatal("the Moon at its default configuration must be stable")
	}
}

func TestIsMoonStableFarPlanet(t *testing.T) {
	// Moving the host far outward grows the Hill sphere; still stable.
	if !IsMoonStable(50.0, 0.03, EarthMass) {
		t.Fatal("a distant host with Earth mass must keep its moon")
	}
}

func TestIsMoonStableTinyHost(t *testing.T) {
	// An extreme reduction in host mass shrinks the Hill sphere below the
	// moon's orbit.
	if IsMoonStable(1.0, 0.03, 1e10) {
		t.Fatal("a negligible host mass cannot hold a moon")
	}
}

func TestPlanetTemperatureVenusBand(t *testing.T) {
	if temp := PlanetTemperature(0.72); temp != venusOverrideK {
		t.Fatalf("Venus band must return the fixed override: got %f", temp)
	}
}

func TestPlanetTemperatureEarthBand(t *testing.T) {
	base := EquilibriumTemperature(1.0, DefaultAlbedo)
	if temp := PlanetTemperature(1.0); !scalar.EqualWithinAbs(temp, base+earthGreenhouseK, 1e-12) {
		t.Fatalf("Earth band must add the greenhouse delta: got %f, base %f", temp, base)
	}
}

func TestPlanetTemperatureMarsBand(t *testing.T) {
	base := EquilibriumTemperature(1.52, DefaultAlbedo)
	if temp := PlanetTemperature(1.52); !scalar.EqualWithinAbs(temp, base+marsGreenhouseK, 1e-12) {
		t.Fatalf("Mars band must add the greenhouse delta: got %f, base %f", temp, base)
	}
}

func TestPlanetTemperatureOutsideBands(t *testing.T) {
	base := EquilibriumTemperature(0.5, DefaultAlbedo)
	if temp := PlanetTemperature(0.5); temp != base {
		t.Fatalf("no override outside the bands: got %f, base %f", temp, base)
	}
}

func TestEquilibriumTemperatureIgnoresBands(t *testing.T) {
	// The raw variant applies no override, even inside the Venus band.
	temp := EquilibriumTemperature(0.72, DefaultAlbedo)
	if temp == venusOverrideK {
		t.Fatal("raw equilibrium formula must not apply the Venus override")
	}
	want := equilibriumCoeff * math.Pow(0.7, 0.25) / math.Sqrt(0.72)
	if !scalar.EqualWithinAbs(temp, want, 1e-12) {
		t.Fatalf("equilibrium formula off: got %f want %f", temp, want)
	}
}
