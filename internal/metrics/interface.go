// Quality readouts comparing the processed image with the original
package metrics

import (
	"fmt"
	"sort"

	"gocv.io/x/gocv"
)

// Metric defines the interface for quality metrics
type Metric interface {
	// Calculate computes the metric value
	Calculate(original, processed gocv.Mat) (float64, error)

	GetName() string

	// Comparative metrics need both buffers at the same size.
	IsComparative() bool
}

// Evaluator manages and calculates multiple metrics
type Evaluator struct {
	metrics map[string]Metric
}

// NewEvaluator creates an evaluator with the default metrics registered.
func NewEvaluator() *Evaluator {
	e := &Evaluator{
		metrics: make(map[string]Metric),
	}

	e.RegisterDefaultMetrics()

	return e
}

func (e *Evaluator) RegisterDefaultMetrics() {
	e.Register("mse", NewMSE())
	e.Register("psnr", NewPSNR())
	e.Register("mean_intensity", NewMeanIntensity())
}

// Register registers a metric
func (e *Evaluator) Register(name string, metric Metric) {
	e.metrics[name] = metric
}

// Names returns the registered metric names in sorted order.
func (e *Evaluator) Names() []string {
	names := make([]string, 0, len(e.metrics))
	for name := range e.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Calculate calculates a specific metric
func (e *Evaluator) Calculate(name string, original, processed gocv.Mat) (float64, error) {
	metric, exists := e.metrics[name]
	if !exists {
		return 0, fmt.Errorf("metric not found: %s", name)
	}

	return metric.Calculate(original, processed)
}

// Derived is implemented by metrics that can be computed from values
// already in a result set, e.g. PSNR from MSE.
type Derived interface {
	FromResults(results map[string]float64) (float64, bool)
}

// CalculateAll calculates every metric that applies. Both images are reduced
// to luma once and metrics run in name order, so a Derived metric reuses
// what an earlier one produced. Comparative metrics are skipped when the
// buffers differ in size, e.g. after rotating a non-square image.
func (e *Evaluator) CalculateAll(original, processed gocv.Mat) map[string]float64 {
	results := make(map[string]float64)
	if original.Empty() || processed.Empty() {
		return results
	}
	sameSize := original.Rows() == processed.Rows() && original.Cols() == processed.Cols()

	gray1, owned1, err := ensureGrayscale(original)
	if err != nil {
		return results
	}
	if owned1 {
		defer gray1.Close()
	}
	gray2, owned2, err := ensureGrayscale(processed)
	if err != nil {
		return results
	}
	if owned2 {
		defer gray2.Close()
	}

	for _, name := range e.Names() {
		metric := e.metrics[name]
		if metric.IsComparative() && !sameSize {
			continue
		}
		if d, ok := metric.(Derived); ok {
			if value, ok := d.FromResults(results); ok {
				results[name] = value
				continue
			}
		}
		if value, err := metric.Calculate(gray1, gray2); err == nil {
			results[name] = value
		}
	}

	return results
}
