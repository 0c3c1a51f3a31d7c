package orrery

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const sampleScenario = `
[scenario]
name = "inner-earth"
start = "2026-01-01"
days = 2.0
speed_factor = 1.0

[[events]]
at_day = 0.5
op = "update-distance"
body = "earth"
distance = 0.2

[[events]]
at_day = 1.5
op = "remove"
body = "mars"
`

func TestLoadScenario(t *testing.T) {
	path := writeTempFile(t, "scenario.toml", sampleScenario)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "inner-earth" || sc.Days != 2.0 || sc.SpeedFactor != 1.0 {
		t.Fatalf("scenario header misread: %+v", sc)
	}
	if len(sc.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sc.Events))
	}
	if sc.Events[0].Op != "update-distance" || sc.Events[0].Body != "earth" || sc.Events[0].Distance != 0.2 {
		t.Fatalf("first event misread: %+v", sc.Events[0])
	}
}

func TestLoadScenarioValidation(t *testing.T) {
	cases := []struct {
		name, content, wantErr string
	}{
		{"no days", "[scenario]\nname = \"x\"\n", "days"},
		{"unknown op", "[scenario]\ndays = 1.0\n\n[[events]]\nat_day = 0.0\nop = \"explode\"\n", "unknown op"},
		{"missing body", "[scenario]\ndays = 1.0\n\n[[events]]\nat_day = 0.0\nop = \"remove\"\n", "missing body"},
	}
	for _, tc := range cases {
		path := writeTempFile(t, "bad-scenario.toml", tc.content)
		_, err := LoadScenario(path)
		if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: expected error containing %q, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestScenarioRunAppliesEvents(t *testing.T) {
	path := writeTempFile(t, "scenario.toml", sampleScenario)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	sys := newTestSystem(t)
	states := make(chan Snapshot, 4096)
	done := make(chan struct{})
	var count int
	var sawEarthMove bool
	go func() {
		defer close(done)
		for snap := range states {
			count++
			if earth, ok := snap.Body("earth"); ok && earth.Distance == 0.2 {
				sawEarthMove = true
			}
		}
	}()
	if err := sc.Run(sys, states); err != nil {
		t.Fatal(err)
	}
	<-done
	if count == 0 {
		t.Fatal("run must stream snapshots")
	}
	if !sawEarthMove {
		t.Fatal("the update-distance event never fired")
	}
	earth := snapshotBody(t, sys, "earth")
	if earth.Distance != 0.2 {
		t.Fatalf("earth not perturbed: %f", earth.Distance)
	}
	if !scalar.EqualWithinRel(earth.Period, OrbitalPeriod(0.2, SolarMass), 1e-12) {
		t.Fatalf("earth period not recomputed: %f", earth.Period)
	}
	mars := snapshotBody(t, sys, "mars")
	if !mars.Removed {
		t.Fatal("the remove event never fired")
	}
	if got := sys.ElapsedDays(); got < 2.0 {
		t.Fatalf("run must cover the scenario length: %f days", got)
	}
	// The start date was applied before the run began.
	if sys.Date().Year() != 2026 {
		t.Fatalf("start date not applied: %s", sys.Date())
	}
}

func TestScenarioRunNilChannel(t *testing.T) {
	sc := Scenario{Name: "quiet", Days: 0.5, SpeedFactor: 1}
	sys := newTestSystem(t)
	if err := sc.Run(sys, nil); err != nil {
		t.Fatal(err)
	}
	if sys.ElapsedDays() < 0.5 {
		t.Fatalf("run must advance without an output channel: %f", sys.ElapsedDays())
	}
}

func TestScenarioRunStalledClock(t *testing.T) {
	sc := Scenario{Name: "stalled", Days: 1, SpeedFactor: 0}
	sys := newTestSystem(t)
	if err := sc.Run(sys, nil); err == nil {
		t.Fatal("a zero speed factor can never finish and must be reported")
	}
}
