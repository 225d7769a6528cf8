package light

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// viewFrustum builds an orthographic frustum covering x,y in [-10,10] and
// z from 9 down to -91, looking down the negative Z axis from (0,0,10).
func viewFrustum() common.Frustum {
	ctrl := camera.NewCameraController(camera.WithPosition(0, 0, 10), camera.WithTarget(0, 0, 0))
	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithOrthographic(10),
		camera.WithNear(1),
		camera.WithFar(101),
	)
	return cam.Frustum()
}

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)

	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, [3]float32{0, -1, 0}, l.Direction())
	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, float32(10), l.Range())
	assert.True(t, l.Enabled())
	assert.False(t, l.CastsShadows())
	assert.InDelta(t, math32.Cos(25*math32.Pi/180), l.InnerCone(), 1e-3)
	assert.InDelta(t, math32.Cos(35*math32.Pi/180), l.OuterCone(), 1e-3)
}

func TestLightBuilderOptions(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(1, 2, 3),
		WithDirection(0, 0, -2),
		WithColor(1, 0.5, 0.25),
		WithIntensity(4),
		WithRange(25),
		WithSpotCone(20, 45),
		WithEnabled(false),
		WithCastsShadows(true),
	)

	assert.Equal(t, [3]float32{1, 2, 3}, l.Position())
	assert.Equal(t, [3]float32{0, 0, -1}, l.Direction(), "direction should be normalized")
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, l.Color())
	assert.Equal(t, float32(4), l.Intensity())
	assert.Equal(t, float32(25), l.Range())
	assert.InDelta(t, math32.Cos(20*math32.Pi/180), l.InnerCone(), 1e-6)
	assert.InDelta(t, math32.Cos(45*math32.Pi/180), l.OuterCone(), 1e-6)
	assert.False(t, l.Enabled())
	assert.True(t, l.CastsShadows())
}

func TestSetDirectionNormalizes(t *testing.T) {
	l := NewLight(LightTypeDirectional)

	l.SetDirection(3, 0, 4)
	dir := l.Direction()
	assert.InDelta(t, 0.6, dir[0], 1e-6)
	assert.InDelta(t, 0.0, dir[1], 1e-6)
	assert.InDelta(t, 0.8, dir[2], 1e-6)

	l.SetDirection(0, 0, 0)
	assert.Equal(t, [3]float32{0, 0, 0}, l.Direction())
}

func TestNewShadowCameraDirectional(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithDirection(0, -1, 0), WithCastsShadows(true))
	cam := NewShadowCamera(sun, [3]float32{0, 0, 0})

	assert.True(t, strings.HasPrefix(cam.Name(), "shadow_camera_"))
	assert.True(t, cam.Orthographic())
	assert.Equal(t, DefaultShadowHalfExtent, cam.HalfExtent())
	assert.Equal(t, DefaultShadowNear, cam.Near())
	assert.Equal(t, DefaultShadowFar, cam.Far())

	// Placed opposite the light direction, half the far distance from the focus.
	require.NotNil(t, cam.Controller())
	px, py, pz := cam.Controller().Position()
	assert.Equal(t, [3]float32{0, 100, 0}, [3]float32{px, py, pz})

	// A straight-down light cannot use the default Y-up vector.
	ux, uy, uz := cam.Up()
	assert.Equal(t, [3]float32{1, 0, 0}, [3]float32{ux, uy, uz})

	f := cam.Frustum()
	assert.True(t, f.IntersectsSphere([3]float32{0, 0, 0}, 1), "focus point should be covered")
	assert.False(t, f.IntersectsSphere([3]float32{200, 0, 0}, 1), "point outside the half extent should not be covered")
}

func TestNewShadowCameraDirectionalOptionsOverride(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithDirection(1, -1, 0))
	cam := NewShadowCamera(sun, [3]float32{5, 0, 5}, camera.WithName("sun_shadow"))

	assert.Equal(t, "sun_shadow", cam.Name())
	ux, uy, uz := cam.Up()
	assert.Equal(t, [3]float32{0, 1, 0}, [3]float32{ux, uy, uz}, "slanted light keeps the default up vector")
}

func TestNewShadowCameraSpot(t *testing.T) {
	lamp := NewLight(LightTypeSpot,
		WithPosition(5, 5, 5),
		WithDirection(1, 0, 0),
		WithRange(30),
		WithSpotCone(30, 45),
		WithCastsShadows(true),
	)
	cam := NewShadowCamera(lamp, [3]float32{0, 0, 0})

	assert.False(t, cam.Orthographic())
	assert.InDelta(t, math32.Pi/2, cam.Fov(), 1e-4, "fov should span the full outer cone")
	assert.Equal(t, float32(30), cam.Far())

	px, py, pz := cam.Controller().Position()
	assert.Equal(t, [3]float32{5, 5, 5}, [3]float32{px, py, pz})
	tx, ty, tz := cam.Controller().Target()
	assert.Equal(t, [3]float32{6, 5, 5}, [3]float32{tx, ty, tz})
}

func TestNewShadowCameraPoint(t *testing.T) {
	bulb := NewLight(LightTypePoint, WithPosition(0, 2, 0), WithRange(15))
	cam := NewShadowCamera(bulb, [3]float32{0, 0, 0})

	assert.False(t, cam.Orthographic())
	assert.Equal(t, float32(math32.Pi/2), cam.Fov())
	assert.Equal(t, float32(15), cam.Far())
}

func TestCullLights(t *testing.T) {
	f := viewFrustum()

	sun := NewLight(LightTypeDirectional)
	inside := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(5))
	outside := NewLight(LightTypePoint, WithPosition(30, 0, 0), WithRange(5))
	disabled := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(5), WithEnabled(false))
	straddling := NewLight(LightTypeSpot, WithPosition(0, 0, -95), WithRange(10))

	got := CullLights([]Light{sun, inside, outside, disabled, straddling}, f)

	require.Len(t, got, 3)
	assert.Same(t, sun, got[0], "directional lights always pass")
	assert.Same(t, inside, got[1])
	assert.Same(t, straddling, got[2], "sphere reaching past the far plane still overlaps")
}

func TestCullShadowCasters(t *testing.T) {
	f := viewFrustum()

	caster := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(5), WithCastsShadows(true))
	plain := NewLight(LightTypePoint, WithPosition(0, 0, 0), WithRange(5))

	got := CullShadowCasters([]Light{plain, caster}, f)

	require.Len(t, got, 1)
	assert.Same(t, caster, got[0])
}

func TestToGPULight(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(1, 2, 3),
		WithDirection(0, -1, 0),
		WithIntensity(2.5),
		WithCastsShadows(true),
	)

	gpu := ToGPULight(l)
	assert.Equal(t, uint32(LightTypeSpot), gpu.LightType)
	assert.Equal(t, [3]float32{1, 2, 3}, gpu.Position)
	assert.Equal(t, float32(2.5), gpu.Intensity)
	assert.Equal(t, uint32(1), gpu.CastsShadows)

	l.SetCastsShadows(false)
	assert.Equal(t, uint32(0), ToGPULight(l).CastsShadows)
}

func TestMarshalLightBuffer(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithIntensity(3))
	bulb := NewLight(LightTypePoint, WithPosition(4, 5, 6))
	off := NewLight(LightTypePoint, WithEnabled(false))

	buf := MarshalLightBuffer([]Light{sun, off, bulb}, [3]float32{0.1, 0.2, 0.3})

	require.Equal(t, 16+2*64, len(buf))

	// Header: ambient color then the enabled light count.
	assert.Equal(t, float32(0.1), math.Float32frombits(binary.LittleEndian.Uint32(buf[0:])))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[12:]))

	// First record is the sun; the disabled light is skipped.
	assert.Equal(t, uint32(LightTypeDirectional), binary.LittleEndian.Uint32(buf[16+12:]))
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[16+28:])))

	// Second record is the bulb.
	assert.Equal(t, uint32(LightTypePoint), binary.LittleEndian.Uint32(buf[80+12:]))
	assert.Equal(t, float32(4), math.Float32frombits(binary.LittleEndian.Uint32(buf[80:])))
}

func TestNewGPUShadowData(t *testing.T) {
	sun := NewLight(LightTypeDirectional, WithDirection(0, -1, 0), WithCastsShadows(true))
	cam := NewShadowCamera(sun, [3]float32{0, 0, 0})

	s := NewGPUShadowData(cam, ShadowMapResolution)

	assert.Equal(t, cam.ViewProjectionMatrix(), s.LightVP)
	assert.InDelta(t, 1.0/2048.0, s.TexelSize[0], 1e-9)
	assert.Equal(t, DefaultShadowBias, s.Bias)

	wantBias := (2 * DefaultShadowHalfExtent / 2048) * DefaultShadowNormalBiasScale
	assert.InDelta(t, wantBias, s.NormalBias, 1e-6)

	buf := s.Marshal()
	require.Equal(t, 80, len(buf))
	require.Equal(t, s.Size(), len(buf))
}
