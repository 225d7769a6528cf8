package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.NotEmpty(t, c.Name())
	assert.Equal(t, common.MaskAll, c.DrawMask())
	assert.Empty(t, c.TagStateKey())
	assert.False(t, c.Orthographic())

	require.NotNil(t, c.InitialState())
	assert.True(t, c.InitialState().IsEmpty())
	assert.Equal(t, 0, c.TagStateCount())
}

func TestNewCameraOptions(t *testing.T) {
	baseline := state.Empty().With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), 10000)
	c := NewCamera(
		WithName("shadow_cam_0"),
		WithDrawMask(common.Bit(2)),
		WithTagStateKey("shadow"),
		WithInitialState(baseline),
		WithOrthographic(40),
		WithNear(0.1),
		WithFar(200),
	)

	assert.Equal(t, "shadow_cam_0", c.Name())
	assert.Equal(t, common.Bit(2), c.DrawMask())
	assert.Equal(t, "shadow", c.TagStateKey())
	assert.True(t, c.Orthographic())
	assert.Equal(t, float32(40), c.HalfExtent())
	assert.True(t, c.InitialState().Equal(baseline))
}

func TestCameraTagStateTable(t *testing.T) {
	c := NewCamera()
	depth := state.Empty().With(state.NewDepthWriteAttrib(true), 0)
	voxel := state.Empty().With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), 10000)

	c.SetTagState("depth", depth)
	c.SetTagState("voxel", voxel)

	assert.Equal(t, 2, c.TagStateCount())
	assert.True(t, c.HasTagState("depth"))
	assert.Equal(t, []string{"depth", "voxel"}, c.TagStateNames())

	got, ok := c.TagState("depth")
	require.True(t, ok)
	assert.True(t, got.Equal(depth))

	// replacing under the same name keeps the count stable
	c.SetTagState("depth", voxel)
	assert.Equal(t, 2, c.TagStateCount())
	got, ok = c.TagState("depth")
	require.True(t, ok)
	assert.True(t, got.Equal(voxel))

	c.ClearTagState("depth")
	assert.False(t, c.HasTagState("depth"))
	assert.Equal(t, 1, c.TagStateCount())

	c.ClearTagStates()
	assert.Equal(t, 0, c.TagStateCount())
	assert.Empty(t, c.TagStateNames())
}

func TestCameraSetTagStateNilRemoves(t *testing.T) {
	c := NewCamera()
	c.SetTagState("depth", state.Empty())
	require.True(t, c.HasTagState("depth"))

	c.SetTagState("depth", nil)
	assert.False(t, c.HasTagState("depth"))
}

func TestCameraSetInitialStateNilResets(t *testing.T) {
	c := NewCamera()
	c.SetInitialState(state.Empty().With(state.NewDepthWriteAttrib(true), 0))
	require.False(t, c.InitialState().IsEmpty())

	c.SetInitialState(nil)
	require.NotNil(t, c.InitialState())
	assert.True(t, c.InitialState().IsEmpty())
}

func TestCameraUpdateRecomputesMatrices(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	c := NewCamera(WithController(ctrl), WithOrthographic(10), WithNear(1), WithFar(101))

	before := c.ViewProjectionMatrix()

	ctrl.SetPosition(0, 0, 20)
	c.Update()
	after := c.ViewProjectionMatrix()

	assert.NotEqual(t, before, after)
}

func TestCameraFrustumContainsLookedAtPoint(t *testing.T) {
	ctrl := NewCameraController(WithPosition(0, 0, 10), WithTarget(0, 0, 0))
	c := NewCamera(WithController(ctrl), WithOrthographic(10), WithNear(1), WithFar(101))

	f := c.Frustum()
	assert.True(t, f.IntersectsSphere([3]float32{0, 0, 0}, 1), "target point should be inside the frustum")
	assert.False(t, f.IntersectsSphere([3]float32{0, 0, 50}, 1), "point behind the camera should be outside")
}

func TestGPUCameraUniform(t *testing.T) {
	ctrl := NewCameraController(WithPosition(1, 2, 3), WithTarget(0, 0, 0))
	c := NewCamera(WithController(ctrl))

	u := NewGPUCameraUniform(c)
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Equal(t, [3]float32{1, 2, 3}, u.CameraPosition)

	buf := u.Marshal()
	require.Equal(t, 80, len(buf))
	require.Equal(t, u.Size(), len(buf))

	gotX := math.Float32frombits(binary.LittleEndian.Uint32(buf[64:]))
	assert.Equal(t, float32(1), gotX)
}
