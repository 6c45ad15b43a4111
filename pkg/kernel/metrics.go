package kernel

// Metric keys consumed by fitness evaluation.
const (
	MetricSuccessRate   = "success_rate"
	MetricEntertainment = "entertainment"
	MetricChaosLevel    = "chaos_level"
	MetricTranscendRate = "transcend_rate"
)

// Metrics carries external performance measurements keyed by metric name.
// Values are expected to sit in [0, 1]; missing keys fall back to neutral
// defaults at evaluation time (0.5 for rates and chaos, 0.0 for transcend).
type Metrics map[string]float64

func (m Metrics) value(key string, def float64) float64 {
	if v, ok := m[key]; ok {
		return v
	}
	return def
}

// Merge overlays other on top of m and returns the result without touching
// either input.
func (m Metrics) Merge(other Metrics) Metrics {
	merged := make(Metrics, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}
