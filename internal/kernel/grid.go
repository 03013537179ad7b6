package kernel

import (
	"math"

	"github.com/aretw0/multivar/pkg/domain"
)

type grid struct {
	xr, yr     domain.Range
	resolution int
	values     []float64
}

func (g grid) size() int { return g.resolution + 1 }

func (g grid) point(idx int) domain.Point {
	n := g.size()
	return domain.P2(g.xr.At(idx/n, g.resolution), g.yr.At(idx%n, g.resolution))
}

// evaluateGrid samples expr on the (resolution+1)² grid, x in the outer position.
func (k *Kernel) evaluateGrid(expr string, xr, yr domain.Range, resolution int) grid {
	g := grid{xr: xr, yr: yr, resolution: resolution}
	n := g.size()
	g.values = make([]float64, n*n)
	k.forEach(n, func(i int) {
		for j := 0; j < n; j++ {
			idx := i*n + j
			g.values[idx] = k.eval(expr, g.point(idx))
		}
	})
	return g
}

// SampleSurface samples z = f(x, y) over the grid in row-major order, x outer.
// Non-finite samples are discarded. A non-positive resolution uses the kernel default.
func (k *Kernel) SampleSurface(expr string, xr, yr domain.Range, resolution int) []domain.SurfacePoint {
	if resolution <= 0 {
		resolution = k.settings.SurfaceResolution
	}
	g := k.evaluateGrid(expr, xr, yr, resolution)

	points := make([]domain.SurfacePoint, 0, len(g.values))
	for idx, v := range g.values {
		if !domain.Defined(v) {
			continue
		}
		at := g.point(idx)
		points = append(points, domain.SurfacePoint{X: at.X, Y: at.Y, Z: v})
	}
	return points
}

// SampleContours keeps, per level, the grid points whose value lies within the contour band.
// The grid is evaluated once for all levels. Levels without points are omitted.
// This is a coarse near-level filter, not a contour tracer.
func (k *Kernel) SampleContours(expr string, levels []float64, xr, yr domain.Range, resolution int) []domain.ContourLevel {
	if resolution <= 0 {
		resolution = k.settings.ContourResolution
	}
	if len(levels) == 0 {
		return []domain.ContourLevel{}
	}
	g := k.evaluateGrid(expr, xr, yr, resolution)

	out := make([]domain.ContourLevel, 0, len(levels))
	for _, level := range levels {
		var points []domain.Point
		for idx, v := range g.values {
			if domain.Defined(v) && math.Abs(v-level) < k.settings.ContourBand {
				points = append(points, g.point(idx))
			}
		}
		if len(points) > 0 {
			out = append(out, domain.ContourLevel{Level: level, Points: points})
		}
	}
	return out
}
