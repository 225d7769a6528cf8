package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orthoViewProj builds a view-projection for a camera at (0,0,10) looking at
// the origin with a 10-unit orthographic half-extent and depth range [1, 101].
// The resulting world-space frustum box is x,y ∈ [-10, 10], z ∈ [-91, 9].
func orthoViewProj() []float32 {
	view := make([]float32, 16)
	proj := make([]float32, 16)
	out := make([]float32, 16)
	LookAt(view, 0, 0, 10, 0, 0, 0, 0, 1, 0)
	Orthographic(proj, 10, 1, 101)
	Mul4(out, proj, view)
	return out
}

func TestExtractFrustumNormalized(t *testing.T) {
	f := ExtractFrustumFromMatrix(orthoViewProj())
	for i, p := range f.Planes {
		lenSq := p.Normal[0]*p.Normal[0] + p.Normal[1]*p.Normal[1] + p.Normal[2]*p.Normal[2]
		assert.InDelta(t, 1.0, lenSq, tol, "plane %d normal should be unit length", i)
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	f := ExtractFrustumFromMatrix(orthoViewProj())

	tests := []struct {
		name   string
		center [3]float32
		radius float32
		want   bool
	}{
		{"center of volume", [3]float32{0, 0, 0}, 1, true},
		{"behind the camera", [3]float32{0, 0, 50}, 1, false},
		{"past the far plane", [3]float32{0, 0, -200}, 1, false},
		{"outside right plane", [3]float32{100, 0, 0}, 1, false},
		{"straddling right plane", [3]float32{10.5, 0, 0}, 1, true},
		{"large sphere enclosing frustum", [3]float32{0, 0, 0}, 500, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, f.IntersectsSphere(tc.center, tc.radius))
		})
	}
}
