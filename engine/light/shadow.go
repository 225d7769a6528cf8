package light

import (
	"fmt"
	"sync/atomic"

	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/chewxy/math32"
)

// ShadowMapResolution is the default width and height in texels of the shadow
// depth texture. Pipelines use this as their initial value but can override it
// per target.
const ShadowMapResolution = 2048

// DefaultShadowHalfExtent is the default orthographic half-extent (in world units)
// used for the directional light shadow frustum. Controls how much of the scene
// around the focus point is captured in the shadow map.
const DefaultShadowHalfExtent float32 = 40.0

// DefaultShadowNear is the default near plane for a shadow camera's projection.
const DefaultShadowNear float32 = 0.1

// DefaultShadowFar is the default far plane for the directional light's
// orthographic shadow projection.
const DefaultShadowFar float32 = 200.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// DefaultShadowNormalBiasScale is the multiplier applied to the shadow map
// texel world-size to compute the normal-offset bias. Higher values push
// the shadow sample point further along the surface normal, reducing
// self-shadowing on concave geometry at the cost of slight shadow
// detachment from contact points. Typical values are 2.0–4.0.
const DefaultShadowNormalBiasScale float32 = 3.0

// shadowCameraCount tracks how many shadow cameras have been created, used for
// default naming.
var shadowCameraCount atomic.Int64

// NewShadowCamera builds a camera that renders the scene from the light's
// point of view for shadow map generation.
//
// Directional lights get an orthographic camera centered on the focus point
// (typically the main camera position), placed opposite the light direction so
// the shadow frustum covers the lit area. Spot lights get a perspective camera
// at the light position looking along the cone axis, with the field of view
// derived from the outer cone angle and the far plane from the light range.
// Point lights are treated as a single 90° perspective face looking along the
// light direction.
//
// The returned camera carries defaults only; callers register it with a pass
// container to receive its tag state key and draw mask, and may override any
// default via the trailing options.
//
// Parameters:
//   - l: the light to build a shadow camera for
//   - focus: world-space point the shadow frustum should cover (directional lights only)
//   - opts: variadic camera options applied after the light-derived defaults
//
// Returns:
//   - camera.Camera: a camera positioned and projected for the light's depth pass
func NewShadowCamera(l Light, focus [3]float32, opts ...camera.CameraBuilderOption) camera.Camera {
	name := fmt.Sprintf("shadow_camera_%d", shadowCameraCount.Add(1)-1)
	dir := l.Direction()

	// An up vector parallel to the view direction would degenerate the view
	// matrix; fall back to the X axis for near-vertical lights.
	upX, upY, upZ := float32(0), float32(1), float32(0)
	if math32.Abs(dir[1]) > 0.99 {
		upX, upY, upZ = 1, 0, 0
	}

	defaults := []camera.CameraBuilderOption{
		camera.WithName(name),
		camera.WithUp(upX, upY, upZ),
		camera.WithAspect(1),
		camera.WithNear(DefaultShadowNear),
	}

	switch l.Type() {
	case LightTypeDirectional:
		eyeX := focus[0] - dir[0]*DefaultShadowFar*0.5
		eyeY := focus[1] - dir[1]*DefaultShadowFar*0.5
		eyeZ := focus[2] - dir[2]*DefaultShadowFar*0.5
		defaults = append(defaults,
			camera.WithOrthographic(DefaultShadowHalfExtent),
			camera.WithFar(DefaultShadowFar),
			camera.WithController(camera.NewCameraController(
				camera.WithPosition(eyeX, eyeY, eyeZ),
				camera.WithTarget(focus[0], focus[1], focus[2]),
			)),
		)
	default:
		pos := l.Position()
		fov := float32(math32.Pi / 2)
		if l.Type() == LightTypeSpot {
			fov = 2 * math32.Acos(l.OuterCone())
		}
		defaults = append(defaults,
			camera.WithFov(fov),
			camera.WithFar(l.Range()),
			camera.WithController(camera.NewCameraController(
				camera.WithPosition(pos[0], pos[1], pos[2]),
				camera.WithTarget(pos[0]+dir[0], pos[1]+dir[1], pos[2]+dir[2]),
			)),
		)
	}

	return camera.NewCamera(append(defaults, opts...)...)
}
