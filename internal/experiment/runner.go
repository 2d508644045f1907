package experiment

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"sensornet-simulator/internal/config"
	"sensornet-simulator/internal/engine"
	"sensornet-simulator/internal/metrics"
	"sensornet-simulator/internal/nodes"
	"sensornet-simulator/internal/phy"
)

// =============================================================================
// SCENARIO CONFIG
// =============================================================================

type ScenarioConfig struct {
	Name      string
	NumTrials int
	Sim       config.Config
}

func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Name:      "default",
		NumTrials: 10,
		Sim:       config.Default(),
	}
}

// =============================================================================
// TRIAL RESULT
// =============================================================================

type TrialResult struct {
	TrialNum int
	RunID    string

	Rounds       int
	Discovered   int
	Scheduled    int
	Missing      []int
	DataReceived int

	Stats    phy.Stats
	Duration time.Duration
}

// =============================================================================
// EXPERIMENT RESULT
// =============================================================================

type ExperimentResult struct {
	Name   string
	Trials []TrialResult

	MeanRounds       float64
	MeanScheduled    float64
	MeanDataReceived float64
	MeanCollisions   float64
}

func (er ExperimentResult) String() string {
	return fmt.Sprintf(`
================================================================================
                        EXPERIMENT RESULT: %s
================================================================================
  Trials:                 %d
  Mean discovery rounds:  %.1f
  Mean devices scheduled: %.1f
  Mean DATA received:     %.1f
  Mean collisions:        %.1f
================================================================================
`, er.Name, len(er.Trials),
		er.MeanRounds, er.MeanScheduled, er.MeanDataReceived, er.MeanCollisions)
}

// =============================================================================
// RUNNER
// =============================================================================

type Runner struct {
	Results []ExperimentResult

	// Metrics, when set, accumulates counters across every trial.
	Metrics *metrics.Metrics
	// LogWriter receives the per-node event log; nil silences it.
	LogWriter io.Writer
}

func NewRunner() *Runner {
	return &Runner{
		Results: make([]ExperimentResult, 0),
	}
}

func (r *Runner) RunExperiment(sc ScenarioConfig) ExperimentResult {
	trials := make([]TrialResult, sc.NumTrials)

	for trial := 0; trial < sc.NumTrials; trial++ {
		startTime := time.Now()
		result := r.RunTrial(sc.Sim, trial)
		result.Duration = time.Since(startTime)
		trials[trial] = result
	}

	aggregated := aggregateResults(sc, trials)
	r.Results = append(r.Results, aggregated)
	return aggregated
}

// RunTrial builds one world from cfg and runs it to the horizon. The trial
// index perturbs the seed so trials differ but remain reproducible.
func (r *Runner) RunTrial(cfg config.Config, trialNum int) TrialResult {
	rng := rand.New(rand.NewSource(cfg.Seed + int64(trialNum)))

	sim := engine.NewSimulation()
	ch := phy.NewChannel(sim, cfg.BitRate)
	if r.Metrics != nil {
		ch.Observer = r.Metrics
	}

	center := phy.Position{X: cfg.AreaWidth / 2, Y: cfg.AreaHeight / 2}

	deviceIDs := make([]int, cfg.NumDevices)
	for i := range deviceIDs {
		deviceIDs[i] = i + 1
	}

	coord := nodes.NewCoordinator(sim, ch, 0, center, cfg.TxRange, deviceIDs, nodes.CoordinatorConfig{
		DiscoveryStart:  cfg.DiscoveryStart,
		DiscoveryWindow: cfg.DiscoveryWindow,
		SlotDuration:    cfg.SlotDuration,
		SchedStartDelay: cfg.SchedStartDelay,
		MaxRetries:      cfg.MaxDiscoveryRetries,
		PDUSize:         cfg.PDUSize,
	}, r.LogWriter)
	if r.Metrics != nil {
		coord.SetObserver(r.Metrics)
	}
	ch.Register(coord)
	coord.Start()

	devCfg := nodes.DeviceConfig{
		CoordinatorID: coord.NodeID(),
		SlotDuration:  cfg.SlotDuration,
		HelloTimeout:  cfg.HelloTimeout,
		Horizon:       cfg.SimDuration,
		PDUSize:       cfg.PDUSize,
	}
	for _, id := range deviceIDs {
		dev := nodes.NewDevice(sim, ch, id, placeDevice(cfg, center, rng), cfg.TxRange, devCfg, rng, r.LogWriter)
		ch.Register(dev)
		dev.Start()
	}

	sim.Run(cfg.SimDuration)

	return TrialResult{
		TrialNum:     trialNum,
		RunID:        uuid.NewString(),
		Rounds:       coord.Rounds,
		Discovered:   len(coord.Discovered),
		Scheduled:    len(coord.Schedule),
		Missing:      coord.MissingIDs(),
		DataReceived: coord.DataReceived,
		Stats:        ch.Stats,
	}
}

func placeDevice(cfg config.Config, center phy.Position, rng *rand.Rand) phy.Position {
	if cfg.ClusterDevices {
		return phy.Position{
			X: center.X - 5 + rng.Float64()*10,
			Y: center.Y - 5 + rng.Float64()*10,
		}
	}
	return phy.Position{
		X: rng.Float64() * cfg.AreaWidth,
		Y: rng.Float64() * cfg.AreaHeight,
	}
}

func aggregateResults(sc ScenarioConfig, trials []TrialResult) ExperimentResult {
	result := ExperimentResult{
		Name:   sc.Name,
		Trials: trials,
	}
	if len(trials) == 0 {
		return result
	}

	for _, t := range trials {
		result.MeanRounds += float64(t.Rounds)
		result.MeanScheduled += float64(t.Scheduled)
		result.MeanDataReceived += float64(t.DataReceived)
		result.MeanCollisions += float64(t.Stats.TotalCollisions)
	}
	n := float64(len(trials))
	result.MeanRounds /= n
	result.MeanScheduled /= n
	result.MeanDataReceived /= n
	result.MeanCollisions /= n
	return result
}
