package kernel

import (
	"github.com/aretw0/multivar/pkg/domain"
)

// LimitWindow is the number of trailing samples averaged into a limit estimate.
const LimitWindow = 5

// SamplePath walks expr toward target along kind and estimates the limit.
//
// Sample i = 1..steps sits at t = i/steps, at distance r = radius·(1 − t) from the target.
// The approach is one-sided: every sample lies on the +r side of the path, never the −r side.
// The last sample, at t = 1, is f evaluated at the target itself, so a removable
// discontinuity there yields an undefined final sample that is dropped.
// Non-finite values are dropped and the walk goes on.
// The estimate is the mean of the last LimitWindow samples: an approximation heuristic,
// not a proof of convergence. A non-positive steps uses the kernel default.
func (k *Kernel) SamplePath(expr string, target domain.Point, kind domain.PathKind, steps int) (domain.SampleSeries, domain.LimitEstimate) {
	if steps <= 0 {
		steps = k.settings.PathSteps
	}
	if !kind.Valid() {
		k.logger.Debug("unknown limit path", "path", kind)
		return domain.SampleSeries{}, EstimateLimit(nil)
	}

	samples := make([]domain.Sample, steps)
	k.forEach(steps, func(i int) {
		t := float64(i+1) / float64(steps)
		at, _ := kind.At(target, k.settings.ApproachRadius*(1-t))
		samples[i] = domain.Sample{T: t, At: at, Value: k.eval(expr, at)}
	})

	series := make(domain.SampleSeries, 0, steps)
	for _, s := range samples {
		if domain.Defined(s.Value) {
			series = append(series, s)
		}
	}
	return series, EstimateLimit(series)
}

// EstimateLimit averages the last LimitWindow values of series.
// Shorter series have no limit estimate.
func EstimateLimit(series domain.SampleSeries) domain.LimitEstimate {
	if len(series) < LimitWindow {
		return domain.LimitEstimate{Value: domain.Undefined()}
	}
	sum := 0.0
	for _, s := range series[len(series)-LimitWindow:] {
		sum += s.Value
	}
	return domain.LimitEstimate{
		Value:  sum / LimitWindow,
		Exists: true,
		Window: LimitWindow,
	}
}
