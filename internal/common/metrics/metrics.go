// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TemplatesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "normalizer_templates_processed_total",
			Help: "Total number of templates processed",
		},
		[]string{"status"},
	)

	ResourcesNormalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "normalizer_resources_normalized_total",
			Help: "Total number of resources whose properties were rewritten",
		},
	)

	MetadataWarnings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "normalizer_metadata_warnings_total",
			Help: "Total number of per-resource metadata diagnostics",
		},
		[]string{"reason"},
	)

	ParametersDefaulted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "normalizer_parameters_defaulted_total",
			Help: "Total number of asset parameters given a blank default",
		},
	)

	SkipBuildMarked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "normalizer_skip_build_marked_total",
			Help: "Total number of resources marked as pre-bundled",
		},
	)
)
