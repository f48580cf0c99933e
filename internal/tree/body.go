package tree

import "github.com/san-kum/gravsim/internal/geom"

// Body is the particle surface the gravity kernel needs: read position, mass
// and locality, read-modify-write acceleration.
type Body interface {
	Position() geom.Point
	Mass() float64
	Local() bool
	Acceleration() geom.Point
	SetAcceleration(a geom.Point)
}

// Particle is the concrete Body used by the driver and tests.
type Particle struct {
	Pos   geom.Point
	M     float64
	Acc   geom.Point
	Owned bool
}

func NewParticle(pos geom.Point, mass float64) *Particle {
	return &Particle{Pos: pos, M: mass, Owned: true}
}

func (p *Particle) Position() geom.Point        { return p.Pos }
func (p *Particle) Mass() float64               { return p.M }
func (p *Particle) Local() bool                 { return p.Owned }
func (p *Particle) Acceleration() geom.Point    { return p.Acc }
func (p *Particle) SetAcceleration(a geom.Point) { p.Acc = a }
