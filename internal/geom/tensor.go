package geom

import "math"

// Mat3 is a row-major Dim x Dim tensor, indexed [i*Dim+j].
type Mat3 [Dim * Dim]float64

// Tensor3 is a row-major Dim x Dim x Dim tensor, indexed [i*Dim*Dim+j*Dim+k].
type Tensor3 [Dim * Dim * Dim]float64

func (m *Mat3) Add(o *Mat3) {
	for i := range m {
		m[i] += o[i]
	}
}

// MulVec contracts the second index with v: out_i = sum_j m[i,j] v_j.
func (m *Mat3) MulVec(v Point) Point {
	var out Point
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			out[i] += m[i*Dim+j] * v[j]
		}
	}
	return out
}

func (m *Mat3) IsNaN() bool {
	for _, x := range m {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

func (t *Tensor3) Add(o *Tensor3) {
	for i := range t {
		t[i] += o[i]
	}
}

// Contract2 contracts the last two indices with v: out_i = sum_jk t[i,j,k] v_j v_k.
func (t *Tensor3) Contract2(v Point) Point {
	var out Point
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			for k := 0; k < Dim; k++ {
				out[i] += t[i*Dim*Dim+j*Dim+k] * v[j] * v[k]
			}
		}
	}
	return out
}
