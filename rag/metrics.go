package rag

import "math"

// latencyMetrics accumulates per-call latency samples. Append-only for the
// lifetime of one engine; callers hold the engine mutex.
type latencyMetrics struct {
	retrieval  []float64
	generation []float64
}

func (m *latencyMetrics) addRetrieval(ms float64) {
	m.retrieval = append(m.retrieval, ms)
}

func (m *latencyMetrics) addGeneration(ms float64) {
	m.generation = append(m.generation, ms)
}

// summary returns average latencies rounded to 2 decimals, 0.0 when no
// samples exist.
func (m *latencyMetrics) summary() (avgRetrieval, avgGeneration float64) {
	return average(m.retrieval), average(m.generation)
}

func average(samples []float64) float64 {
	if len(samples) == 0 {
		return 0.0
	}

	var sum float64
	for _, s := range samples {
		sum += s
	}

	return math.Round(sum/float64(len(samples))*100) / 100
}
