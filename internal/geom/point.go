package geom

import "math"

// Dim is the spatial dimensionality. The transport record layout in the fmm
// package is derived from it, so it must not change independently.
const Dim = 3

// Point is a position or vector in Dim-dimensional space.
type Point [Dim]float64

func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1], p[2] + q[2]}
}

func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1], p[2] - q[2]}
}

func (p Point) Scale(a float64) Point {
	return Point{p[0] * a, p[1] * a, p[2] * a}
}

func (p Point) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Norm()
}

// Less reports whether p is strictly below q in every coordinate.
// Together with Greater it forms the strict box-containment test.
func (p Point) Less(q Point) bool {
	return p[0] < q[0] && p[1] < q[1] && p[2] < q[2]
}

// Greater reports whether p is strictly above q in every coordinate.
func (p Point) Greater(q Point) bool {
	return p[0] > q[0] && p[1] > q[1] && p[2] > q[2]
}

func (p Point) IsNaN() bool {
	return math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsNaN(p[2])
}

// Min returns the elementwise minimum of p and q.
func (p Point) Min(q Point) Point {
	return Point{math.Min(p[0], q[0]), math.Min(p[1], q[1]), math.Min(p[2], q[2])}
}

// Max returns the elementwise maximum of p and q.
func (p Point) Max(q Point) Point {
	return Point{math.Max(p[0], q[0]), math.Max(p[1], q[1]), math.Max(p[2], q[2])}
}
