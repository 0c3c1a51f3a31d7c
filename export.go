package orrery

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/soniakeys/meeus/v3/julian"
)

// ExportConfig configures snapshot streaming to disk.
type ExportConfig struct {
	Path   string // output directory
	Name   string // base file name
	AsCSV  bool   // one row per body per snapshot
	AsJSON bool   // final catalog document
}

// IsUseless reports whether the config produces no output at all.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.AsJSON
}

var csvHeader = []string{
	"jd", "elapsed_days", "id", "class", "distance", "period_days",
	"eccentricity", "temperature_k", "x", "y", "visible", "removed",
}

// StreamStates drains the snapshot channel to disk until it closes: a CSV
// file with one row per body per snapshot when AsCSV is set, and a JSON
// document of the final snapshot when AsJSON is set. Run it in its own
// goroutine and close the channel to finish the files.
func StreamStates(conf ExportConfig, states <-chan Snapshot) error {
	if conf.IsUseless() {
		for range states {
		}
		return nil
	}
	// On failure the channel must still be drained, or a producer blocks
	// forever on send once the buffer fills.
	fail := func(err error) error {
		for range states {
		}
		return err
	}
	var w *csv.Writer
	var f *os.File
	if conf.AsCSV {
		var err error
		f, err = os.Create(filepath.Join(conf.Path, conf.Name+".csv"))
		if err != nil {
			return fail(fmt.Errorf("creating CSV export: %w", err))
		}
		defer f.Close()
		w = csv.NewWriter(f)
		if err = w.Write(csvHeader); err != nil {
			return fail(fmt.Errorf("writing CSV header: %w", err))
		}
	}
	var last Snapshot
	var got bool
	for snap := range states {
		last, got = snap, true
		if w == nil {
			continue
		}
		jd := strconv.FormatFloat(julian.TimeToJD(snap.Date), 'f', 6, 64)
		elapsed := strconv.FormatFloat(snap.ElapsedDays, 'f', 6, 64)
		for _, b := range snap.Bodies {
			row := []string{
				jd, elapsed, b.ID, string(b.Class),
				strconv.FormatFloat(b.Distance, 'f', -1, 64),
				strconv.FormatFloat(b.Period, 'f', -1, 64),
				strconv.FormatFloat(b.Eccentricity, 'f', -1, 64),
				strconv.FormatFloat(b.Temperature, 'f', 2, 64),
				strconv.FormatFloat(b.Position.X, 'f', 6, 64),
				strconv.FormatFloat(b.Position.Y, 'f', 6, 64),
				strconv.FormatBool(b.Visible),
				strconv.FormatBool(b.Removed),
			}
			if err := w.Write(row); err != nil {
				return fail(fmt.Errorf("writing CSV row: %w", err))
			}
		}
	}
	if w != nil {
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("flushing CSV export: %w", err)
		}
	}
	if conf.AsJSON && got {
		data, err := json.MarshalIndent(last, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling catalog export: %w", err)
		}
		name := filepath.Join(conf.Path, "catalog-"+conf.Name+".json")
		if err := os.WriteFile(name, data, 0644); err != nil {
			return fmt.Errorf("writing catalog export: %w", err)
		}
	}
	return nil
}
