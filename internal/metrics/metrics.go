// Package metrics observes the acceleration field a gravity step produced.
package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

type Metric interface {
	Name() string
	Observe(bodies []tree.Body)
	Value() float64
	Reset()
}

// MomentumBalance measures the norm of the net momentum change rate,
// sum of m*a over all bodies. For a closed universe it should vanish up to
// summation error.
type MomentumBalance struct {
	net geom.Point
}

func NewMomentumBalance() *MomentumBalance { return &MomentumBalance{} }

func (m *MomentumBalance) Name() string { return "momentum_balance" }

func (m *MomentumBalance) Observe(bodies []tree.Body) {
	for _, b := range bodies {
		m.net = m.net.Add(b.Acceleration().Scale(b.Mass()))
	}
}

func (m *MomentumBalance) Value() float64 { return m.net.Norm() }
func (m *MomentumBalance) Reset()         { m.net = geom.Point{} }

// MaxAccel tracks the largest acceleration magnitude seen.
type MaxAccel struct {
	max float64
}

func NewMaxAccel() *MaxAccel { return &MaxAccel{} }

func (m *MaxAccel) Name() string { return "max_accel" }

func (m *MaxAccel) Observe(bodies []tree.Body) {
	for _, b := range bodies {
		if n := b.Acceleration().Norm(); n > m.max {
			m.max = n
		}
	}
}

func (m *MaxAccel) Value() float64 { return m.max }
func (m *MaxAccel) Reset()         { m.max = 0 }

// NaNGuard counts bodies with a non-finite acceleration. Any non-zero value
// means the step corrupted the field.
type NaNGuard struct {
	bad int
}

func NewNaNGuard() *NaNGuard { return &NaNGuard{} }

func (g *NaNGuard) Name() string { return "nan_bodies" }

func (g *NaNGuard) Observe(bodies []tree.Body) {
	for _, b := range bodies {
		a := b.Acceleration()
		for d := 0; d < geom.Dim; d++ {
			if math.IsNaN(a[d]) || math.IsInf(a[d], 0) {
				g.bad++
				break
			}
		}
	}
}

func (g *NaNGuard) Value() float64 { return float64(g.bad) }
func (g *NaNGuard) Reset()         { g.bad = 0 }
