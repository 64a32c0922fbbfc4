package tracking

import "maps"

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricGenerations = "generations"
	MetricWarnings    = "warnings"
	MetricBest        = "best"
	MetricWorst       = "worst"
	MetricAverage     = "average"
	MetricStdDev      = "stddev"
	MetricDistinct    = "distinct"

	// Run totals, supplied through Finalize
	MetricBestFitness = "best_fitness"
	MetricEvaluations = "evaluations"
)

// Merge returns a new bundle; keys in other win
func (b MetricBundle) Merge(other MetricBundle) MetricBundle {
	result := make(MetricBundle, len(b)+len(other))
	maps.Copy(result, b)
	maps.Copy(result, other)
	return result
}

// Clone returns an independent copy, nil for a nil bundle
func (b MetricBundle) Clone() MetricBundle {
	if b == nil {
		return nil
	}
	result := make(MetricBundle, len(b))
	maps.Copy(result, b)
	return result
}
