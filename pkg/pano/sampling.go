package pano

import (
	"fmt"
	"math"
	"math/rand/v2"

	pm "github.com/Faultbox/panorama/pkg/math"
)

// SamplerKind selects how transfer sample directions are produced.
type SamplerKind int

const (
	// SamplerUniform draws directions uniformly over the sphere.
	SamplerUniform SamplerKind = iota
	// SamplerIcosphere uses the vertices of a subdivided icosahedron.
	SamplerIcosphere
)

// String returns the sampler name.
func (k SamplerKind) String() string {
	switch k {
	case SamplerIcosphere:
		return "icosphere"
	default:
		return "uniform"
	}
}

// ParseSampler parses "uniform" or "icosphere".
func ParseSampler(name string) (SamplerKind, error) {
	switch name {
	case "", "uniform":
		return SamplerUniform, nil
	case "icosphere":
		return SamplerIcosphere, nil
	}
	return 0, fmt.Errorf("unknown sampler %q", name)
}

// UniformDirection draws a direction uniformly over the unit sphere: sin(el)
// is uniform in [-1, 1] and azimuth uniform in [-pi, pi]. Two values are drawn
// from rng.
func UniformDirection(rng *rand.Rand) pm.Vec3 {
	sinEl := 2*rng.Float64() - 1
	az := math.Pi * (2*rng.Float64() - 1)
	return DirectionFromAngles(az, math.Asin(sinEl))
}

// JitterDirection adds Gaussian noise with standard deviation sigma to each
// axis of d and renormalizes. A zero sigma returns d unchanged and draws nothing.
func JitterDirection(d pm.Vec3, sigma float64, rng *rand.Rand) pm.Vec3 {
	if sigma == 0 {
		return d
	}
	j := pm.Vec3{
		X: d.X + sigma*rng.NormFloat64(),
		Y: d.Y + sigma*rng.NormFloat64(),
		Z: d.Z + sigma*rng.NormFloat64(),
	}.Normalize()
	if j == (pm.Vec3{}) {
		return d
	}
	return j
}

// IcosphereVertexCount returns the number of vertices Icosphere produces.
func IcosphereVertexCount(subdivisions int) int {
	return 10*(1<<(2*subdivisions)) + 2
}

// Icosphere returns the unit vertices of an icosahedron whose faces have been
// split into four, subdivisions times. Vertices are unique and ordered
// deterministically.
func Icosphere(subdivisions int) []pm.Vec3 {
	t := (1 + math.Sqrt(5)) / 2
	verts := []pm.Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for s := 0; s < subdivisions; s++ {
		mid := make(map[[2]int]int, len(faces)*3/2)
		midpoint := func(a, b int) int {
			key := [2]int{min(a, b), max(a, b)}
			if i, ok := mid[key]; ok {
				return i
			}
			verts = append(verts, verts[a].Add(verts[b]).Normalize())
			mid[key] = len(verts) - 1
			return len(verts) - 1
		}

		next := make([][3]int, 0, len(faces)*4)
		for _, f := range faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[3]int{f[0], ab, ca},
				[3]int{f[1], bc, ab},
				[3]int{f[2], ca, bc},
				[3]int{ab, bc, ca},
			)
		}
		faces = next
	}
	return verts
}
