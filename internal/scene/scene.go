// Package scene builds the particle sets the driver feeds to the gravity
// kernel and splits them across ranks.
package scene

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/tree"
)

// Build generates the bodies for a scene config.
func Build(sc config.SceneConfig) ([]*tree.Particle, error) {
	switch sc.Kind {
	case "grid":
		return Grid(sc.N, sc.Spacing), nil
	case "cluster":
		return Cluster(sc.N, sc.Spacing, sc.Seed), nil
	case "pair":
		return Pair(sc.Spacing), nil
	default:
		return nil, fmt.Errorf("scene: unknown kind %q", sc.Kind)
	}
}

// Grid lays out n^3 unit masses on a cubic lattice.
func Grid(n int, spacing float64) []*tree.Particle {
	bodies := make([]*tree.Particle, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				p := geom.Point{float64(i) * spacing, float64(j) * spacing, float64(k) * spacing}
				bodies = append(bodies, tree.NewParticle(p, 1))
			}
		}
	}
	return bodies
}

// Cluster draws n bodies uniformly from a cube of the given side, with
// masses in [0.5, 1.5). The seed fixes the draw.
func Cluster(n int, side float64, seed int64) []*tree.Particle {
	rng := rand.New(rand.NewSource(seed))
	bodies := make([]*tree.Particle, n)
	for i := range bodies {
		p := geom.Point{rng.Float64() * side, rng.Float64() * side, rng.Float64() * side}
		bodies[i] = tree.NewParticle(p, 0.5+rng.Float64())
	}
	return bodies
}

// Pair is the two-body sanity scene: unit masses separated along x.
func Pair(separation float64) []*tree.Particle {
	return []*tree.Particle{
		tree.NewParticle(geom.Point{0, 0, 0}, 1),
		tree.NewParticle(geom.Point{separation, 0, 0}, 1),
	}
}

// PartitionX assigns bodies to ranks by slicing the x axis into spans of
// equal body count. Bodies keep their identity; only ownership is assigned.
func PartitionX(bodies []*tree.Particle, ranks int) [][]tree.Body {
	sorted := make([]*tree.Particle, len(bodies))
	copy(sorted, bodies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos[0] < sorted[j].Pos[0]
	})

	perRank := make([][]tree.Body, ranks)
	for i, b := range sorted {
		r := i * ranks / len(sorted)
		perRank[r] = append(perRank[r], b)
	}
	return perRank
}
