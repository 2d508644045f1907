package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sensornet-simulator/internal/config"
	"sensornet-simulator/internal/experiment"
	"sensornet-simulator/internal/metrics"
)

func main() {
	cfgPath := flag.String("config", "", "path to a YAML scenario file (defaults used when empty)")
	name := flag.String("name", "default", "experiment name")
	trials := flag.Int("trials", 10, "number of trials to run")
	metricsAddr := flag.String("metrics", "", "listen address for /metrics (disabled when empty)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}

	runner := experiment.NewRunner()

	reg := prometheus.NewRegistry()
	runner.Metrics = metrics.New(reg)
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
		fmt.Printf("serving metrics on %s/metrics\n", *metricsAddr)
	}

	fmt.Printf(">>> Running experiment: %s (%d trials)\n", *name, *trials)
	result := runner.RunExperiment(experiment.ScenarioConfig{
		Name:      *name,
		NumTrials: *trials,
		Sim:       cfg,
	})

	for _, t := range result.Trials {
		fmt.Printf("  trial %d [%s]: rounds=%d scheduled=%d data=%d collisions=%d (%s)\n",
			t.TrialNum+1, t.RunID, t.Rounds, t.Scheduled, t.DataReceived,
			t.Stats.TotalCollisions, t.Duration.Round(time.Millisecond))
	}
	fmt.Println(result)
}
