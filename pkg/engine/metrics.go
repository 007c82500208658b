package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/opd-ai/go-planetwalk/pkg/camera"
	"github.com/opd-ai/go-planetwalk/pkg/locomotion"
)

// FixedStepsTotal counts fixed steps run by every Game.
// Use RegisterMetrics to register this with a Prometheus registry.
var FixedStepsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "planetwalk_engine_fixed_steps_total",
		Help: "Total number of fixed simulation steps",
	},
)

// DroppedSecondsTotal counts simulated time discarded because a frame
// needed more than MaxStepsPerFrame steps
var DroppedSecondsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "planetwalk_engine_dropped_seconds_total",
		Help: "Total simulated seconds dropped after stalls",
	},
)

// RegisterMetrics registers engine, locomotion and camera metrics with the
// given registry. Panics if registration fails (following prometheus
// convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(FixedStepsTotal)
	reg.MustRegister(DroppedSecondsTotal)
	locomotion.RegisterMetrics(reg)
	camera.RegisterMetrics(reg)
}

func recordSteps(n int) {
	FixedStepsTotal.Add(float64(n))
}

func recordDropped(seconds float64) {
	DroppedSecondsTotal.Add(seconds)
}
