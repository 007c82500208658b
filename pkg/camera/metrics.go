package camera

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// OcclusionTotal counts the frames on which the camera became occluded.
// Use RegisterMetrics to register this with a Prometheus registry.
var OcclusionTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "planetwalk_camera_occlusions_total",
		Help: "Total number of times geometry started blocking the camera",
	},
)

// DegenerateFrameTotal counts camera updates with a degenerate gravity frame
var DegenerateFrameTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "planetwalk_camera_degenerate_frames_total",
		Help: "Total number of camera updates with a degenerate gravity frame",
	},
	[]string{"held"},
)

// RegisterMetrics registers camera metrics with the given registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(OcclusionTotal)
	reg.MustRegister(DegenerateFrameTotal)
}

func recordOcclusion() {
	OcclusionTotal.Inc()
}

func recordDegenerateFrame(held bool) {
	DegenerateFrameTotal.WithLabelValues(strconv.FormatBool(held)).Inc()
}
