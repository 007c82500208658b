// pkg/locomotion/metrics.go
package locomotion

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Trigger outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeCanceled = "canceled"
)

// TriggerTotal counts jump and dodge triggers by outcome.
// Use RegisterMetrics to register this with a Prometheus registry.
var TriggerTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "planetwalk_locomotion_triggers_total",
		Help: "Total number of jump and dodge triggers",
	},
	[]string{"trigger", "outcome"},
)

// TransitionTotal counts state machine transitions.
// Use RegisterMetrics to register this with a Prometheus registry.
var TransitionTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "planetwalk_locomotion_transitions_total",
		Help: "Total number of locomotion state transitions",
	},
	[]string{"from", "to"},
)

// DegenerateFrameTotal counts steps whose gravity frame could not be
// resolved, by whether a previous frame was held.
var DegenerateFrameTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "planetwalk_locomotion_degenerate_frames_total",
		Help: "Total number of fixed steps with a degenerate gravity frame",
	},
	[]string{"held"},
)

// RegisterMetrics registers locomotion metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(TriggerTotal)
	reg.MustRegister(TransitionTotal)
	reg.MustRegister(DegenerateFrameTotal)
}

func recordTrigger(trigger, outcome string) {
	TriggerTotal.WithLabelValues(trigger, outcome).Inc()
}

func recordTransition(from, to State) {
	TransitionTotal.WithLabelValues(from.String(), to.String()).Inc()
}

func recordDegenerateFrame(held bool) {
	DegenerateFrameTotal.WithLabelValues(strconv.FormatBool(held)).Inc()
}
