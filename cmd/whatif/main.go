package main

import (
	"flag"
	"log"
	"os"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/orrerylab/orrery"
)

// whatif replays a TOML scenario of orbit perturbations against the default
// catalog and exports the resulting states.

var (
	scenarioPath string
	configPath   string
	outputDir    string
	asCSV        bool
	asJSON       bool
	verbose      bool
)

func init() {
	flag.StringVar(&scenarioPath, "scenario", "", "what-if scenario TOML file")
	flag.StringVar(&configPath, "config", "", "optional clock/view config TOML file")
	flag.StringVar(&outputDir, "out", ".", "export output directory")
	flag.BoolVar(&asCSV, "csv", true, "export per-tick body states as CSV")
	flag.BoolVar(&asJSON, "json", false, "export the final snapshot as JSON")
	flag.BoolVar(&verbose, "verbose", false, "log every perturbation")
}

func main() {
	flag.Parse()
	if scenarioPath == "" {
		log.Fatal("no scenario provided")
	}
	scenario, err := orrery.LoadScenario(scenarioPath)
	if err != nil {
		log.Fatalf("loading scenario: %s", err)
	}
	cfg := orrery.DefaultConfig()
	if configPath != "" {
		if cfg, err = orrery.LoadConfig(configPath); err != nil {
			log.Fatalf("loading config: %s", err)
		}
	}
	logger := kitlog.NewNopLogger()
	if verbose {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	}
	sys := orrery.NewSystem(cfg, logger)

	conf := orrery.ExportConfig{Path: outputDir, Name: scenario.Name, AsCSV: asCSV, AsJSON: asJSON}
	states := make(chan orrery.Snapshot, 1000)
	var wg sync.WaitGroup
	wg.Add(1)
	var exportErr error
	go func() {
		defer wg.Done()
		exportErr = orrery.StreamStates(conf, states)
	}()

	log.Printf("running scenario %q for %.1f simulated days", scenario.Name, scenario.Days)
	if err := scenario.Run(sys, states); err != nil {
		log.Fatalf("scenario failed: %s", err)
	}
	wg.Wait()
	if exportErr != nil {
		log.Fatalf("export failed: %s", exportErr)
	}
	log.Printf("done: simulated date %s", sys.Date().Format("2006-01-02"))
}
