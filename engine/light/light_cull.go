package light

import "github.com/Carmen-Shannon/prism-go/common"

// CullLights returns the enabled lights whose influence volume intersects the
// given frustum. Point and spot lights are tested as bounding spheres of their
// attenuation range; directional lights have unbounded extent and always pass.
// The input slice is not modified.
//
// Parameters:
//   - lights: the candidate lights
//   - f: the frustum to test against, typically from the main camera
//
// Returns:
//   - []Light: the lights relevant to the frustum, in input order
func CullLights(lights []Light, f common.Frustum) []Light {
	out := make([]Light, 0, len(lights))
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		if l.Type() == LightTypeDirectional {
			out = append(out, l)
			continue
		}
		if f.IntersectsSphere(l.Position(), l.Range()) {
			out = append(out, l)
		}
	}
	return out
}

// CullShadowCasters returns the subset of CullLights that is eligible for
// shadow map generation. Pipelines use this to decide which shadow cameras
// need their depth pass re-rendered for the current view.
//
// Parameters:
//   - lights: the candidate lights
//   - f: the frustum to test against, typically from the main camera
//
// Returns:
//   - []Light: the visible shadow-casting lights, in input order
func CullShadowCasters(lights []Light, f common.Frustum) []Light {
	out := make([]Light, 0, len(lights))
	for _, l := range CullLights(lights, f) {
		if l.CastsShadows() {
			out = append(out, l)
		}
	}
	return out
}
