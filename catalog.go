package orrery

/* The compiled-in body catalog. Orbital elements are J2000 means rounded to
the precision the renderer needs; moons carry their distance in Earth-radius
catalog units relative to the parent. */

// DefaultCatalog returns the fixed ten-body set: the Sun, the eight planets
// and Earth's Moon. Temperatures are derived at construction (moons from the
// host planet's heliocentric distance, the star has none) and the baseline
// snapshot used to reverse perturbations is captured here.
func DefaultCatalog() []*Body {
	bodies := []*Body{
		{ID: "sun", Name: "Sun", Class: Star, Diameter: 1392700, Mass: SolarMass,
			Distance: 0, Period: 0, Rotation: 25.05, Eccentricity: 0, Phase: 0},
		{ID: "mercury", Name: "Mercury", Class: Planet, Diameter: 4879, Mass: 3.301e23,
			Distance: 0.387, Period: 87.97, Rotation: 58.65, Eccentricity: 0.2056, Phase: 0.84},
		{ID: "venus", Name: "Venus", Class: Planet, Diameter: 12104, Mass: 4.867e24,
			Distance: 0.723, Period: 224.70, Rotation: -243.02, Eccentricity: 0.0068, Phase: 2.30},
		{ID: "earth", Name: "Earth", Class: Planet, Diameter: 12742, Mass: EarthMass,
			Distance: 1.0, Period: 365.25, Rotation: 0.997, Eccentricity: 0.0167, Phase: 1.75},
		{ID: "moon", Name: "Moon", Class: Moon, Parent: "earth", Diameter: 3475, Mass: 7.342e22,
			Distance: 0.03, Period: 27.32, Rotation: 27.32, Eccentricity: 0.0549, Phase: 0.52},
		{ID: "mars", Name: "Mars", Class: Planet, Diameter: 6779, Mass: 6.417e23,
			Distance: 1.524, Period: 686.98, Rotation: 1.026, Eccentricity: 0.0934, Phase: 5.87},
		{ID: "jupiter", Name: "Jupiter", Class: Planet, Diameter: 139820, Mass: 1.898e27,
			Distance: 5.203, Period: 4332.59, Rotation: 0.414, Eccentricity: 0.0489, Phase: 0.26},
		{ID: "saturn", Name: "Saturn", Class: Planet, Diameter: 116460, Mass: 5.683e26,
			Distance: 9.537, Period: 10759.22, Rotation: 0.444, Eccentricity: 0.0565, Phase: 5.51},
		{ID: "uranus", Name: "Uranus", Class: Planet, Diameter: 50724, Mass: 8.681e25,
			Distance: 19.191, Period: 30688.5, Rotation: -0.718, Eccentricity: 0.0457, Phase: 0.93},
		{ID: "neptune", Name: "Neptune", Class: Planet, Diameter: 49244, Mass: 1.024e26,
			Distance: 30.069, Period: 60182, Rotation: 0.671, Eccentricity: 0.0113, Phase: 6.04},
	}
	byID := make(map[string]*Body, len(bodies))
	for _, b := range bodies {
		byID[b.ID] = b
	}
	for _, b := range bodies {
		switch {
		case b.Class == Star:
			// The star heats, it is not heated.
		case b.Class == Moon:
			if parent, ok := byID[b.Parent]; ok {
				b.Temperature = PlanetTemperature(parent.Distance)
			}
		default:
			b.Temperature = PlanetTemperature(b.Distance)
		}
		b.seal()
	}
	return bodies
}
