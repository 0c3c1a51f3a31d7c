package orrery

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Event is one timed what-if perturbation in a scenario.
type Event struct {
	AtDay    float64 `mapstructure:"at_day"`
	Op       string  `mapstructure:"op"`   // update-distance, reset-distance, remove, restore, reset-all, set-date
	Body     string  `mapstructure:"body"` // target id for body-scoped ops
	Distance float64 `mapstructure:"distance"`
	Date     string  `mapstructure:"date"` // YYYY-MM-DD, for set-date
}

// Scenario is a replayable what-if run: a start date, a length in simulated
// days, a speed factor and a list of timed perturbations.
type Scenario struct {
	Name        string
	Start       time.Time
	Days        float64
	SpeedFactor float64
	Events      []Event
}

// LoadScenario reads a TOML scenario file. The [scenario] table names the
// run; [[events]] entries are applied in order as simulated time passes.
func LoadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("scenario.name", "unnamed")
	v.SetDefault("scenario.speed_factor", 1.0)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc := Scenario{
		Name:        v.GetString("scenario.name"),
		Days:        v.GetFloat64("scenario.days"),
		SpeedFactor: v.GetFloat64("scenario.speed_factor"),
	}
	if sc.Days <= 0 {
		return sc, fmt.Errorf("scenario %s: days must be positive", path)
	}
	if startStr := v.GetString("scenario.start"); startStr != "" {
		start, err := time.Parse(epochFormat, startStr)
		if err != nil {
			return sc, fmt.Errorf("parsing scenario.start: %w", err)
		}
		sc.Start = start
	}
	if err := v.UnmarshalKey("events", &sc.Events); err != nil {
		return sc, fmt.Errorf("parsing scenario events: %w", err)
	}
	for i, ev := range sc.Events {
		switch ev.Op {
		case "update-distance", "reset-distance", "remove", "restore":
			if ev.Body == "" {
				return sc, fmt.Errorf("event %d (%s): missing body id", i, ev.Op)
			}
		case "reset-all", "set-date":
		default:
			return sc, fmt.Errorf("event %d: unknown op %q", i, ev.Op)
		}
	}
	return sc, nil
}

// apply fires one event against the system. Lookup failures are reported,
// not fatal: the scenario keeps running.
func (ev Event) apply(sys *System) error {
	switch ev.Op {
	case "update-distance":
		return sys.UpdateDistance(ev.Body, ev.Distance)
	case "reset-distance":
		return sys.ResetDistance(ev.Body)
	case "remove":
		return sys.RemoveBody(ev.Body)
	case "restore":
		return sys.RestoreBody(ev.Body)
	case "reset-all":
		sys.ResetAllChanges()
		return nil
	case "set-date":
		date, err := time.Parse(epochFormat, ev.Date)
		if err != nil {
			return fmt.Errorf("event set-date: %w", err)
		}
		sys.SetDate(date)
		return nil
	}
	return fmt.Errorf("unknown op %q", ev.Op)
}

// Run replays the scenario against the system, one tick of real time per
// step, firing each event once its day arrives and emitting a snapshot per
// tick to out when it is non-nil. The channel is closed on return.
func (sc Scenario) Run(sys *System, out chan<- Snapshot) error {
	if out != nil {
		defer close(out)
	}
	if !sc.Start.IsZero() {
		sys.SetDate(sc.Start)
	}
	sys.SetSpeedFactor(sc.SpeedFactor)
	sys.SetPaused(false)
	cfg := sys.Config()
	tickSeconds := 1 / cfg.TickRate
	startDay := sys.ElapsedDays()
	next := 0
	for {
		elapsed := sys.ElapsedDays() - startDay
		for next < len(sc.Events) && sc.Events[next].AtDay <= elapsed {
			if err := sc.Events[next].apply(sys); err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			next++
		}
		if out != nil {
			out <- sys.Snapshot()
		}
		if elapsed >= sc.Days {
			return nil
		}
		sys.AdvanceTime(tickSeconds)
		if sys.ElapsedDays()-startDay == elapsed {
			// Speed factor zero would never terminate.
			return fmt.Errorf("scenario %s: clock is not advancing", sc.Name)
		}
	}
}
