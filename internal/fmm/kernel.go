package fmm

import (
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

// MAC is the multipole-acceptance criterion: a source branch may be
// summarized by its center of mass when its box diagonal, seen from the
// sink, subtends less than the opening angle theta.
func MAC(sink *Cell, source tree.Branch, theta float64) bool {
	diag := source.BMin().Dist(source.BMax())
	dist := sink.Position.Dist(source.Position())
	return diag/dist < theta
}

// accumulate adds the point-mass contribution of a source at srcPos with
// mass m onto the sink's force, Jacobian and Hessian, expanded at the sink
// position. The traversal filters guarantee a positive separation.
func accumulate(sink *Cell, srcPos geom.Point, m float64) {
	r := sink.Position.Sub(srcPos)
	d := r.Norm()
	d2 := d * d

	alpha := -m / (d * d * d)
	sink.FC = sink.FC.Add(r.Scale(alpha))

	for i := 0; i < geom.Dim; i++ {
		for j := 0; j < geom.Dim; j++ {
			v := -3 * r[i] * r[j] / d2
			if i == j {
				v++
			}
			sink.DFCDR[i*geom.Dim+j] += alpha * v
		}
	}

	beta := -3 * m / (d2 * d2 * d)
	for i := 0; i < geom.Dim; i++ {
		for j := 0; j < geom.Dim; j++ {
			for k := 0; k < geom.Dim; k++ {
				t := 0.0
				if i == j {
					t += r[k]
				}
				if j == k {
					t += r[i]
				}
				if k == i {
					t += r[j]
				}
				if !(i == j && j == k) {
					t *= 3
				}
				idx := i*geom.Dim*geom.Dim + j*geom.Dim + k
				sink.DFCDRDR[idx] += beta * (t - 5/d2*r[i]*r[j]*r[k])
			}
		}
	}
}
