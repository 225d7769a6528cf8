package camera

import (
	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
)

type CameraBuilderOption func(*cameraImpl)

// WithName sets the camera's name, used for logging and introspection.
//
// Parameters:
//   - name: the camera name
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's name
func WithName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
		c.updateMatrices()
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
		c.updateMatrices()
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
		c.updateMatrices()
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
		c.updateMatrices()
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
		c.updateMatrices()
	}
}

// WithOrthographic switches the camera to an orthographic projection with the
// given half extent. Shadow cameras for directional lights use this projection.
//
// Parameters:
//   - halfExtent: half the width and height of the orthographic volume
//
// Returns:
//   - CameraBuilderOption: functional option to enable orthographic projection
func WithOrthographic(halfExtent float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orthographic = true
		c.halfExtent = halfExtent
		c.updateMatrices()
	}
}

// WithDrawMask sets the camera's visibility mask. Only nodes whose visibility
// bits intersect the mask are drawn by this camera.
//
// Parameters:
//   - mask: the draw mask to set
//
// Returns:
//   - CameraBuilderOption: functional option to set the draw mask
func WithDrawMask(mask common.BitMask32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.drawMask = mask
	}
}

// WithTagStateKey sets the node tag name this camera matches against when
// selecting tag states.
//
// Parameters:
//   - key: the tag name
//
// Returns:
//   - CameraBuilderOption: functional option to set the tag-state key
func WithTagStateKey(key string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.tagStateKey = key
	}
}

// WithInitialState sets the camera's effective render state slot.
//
// Parameters:
//   - rs: the initial state to set
//
// Returns:
//   - CameraBuilderOption: functional option to set the initial state
func WithInitialState(rs *state.RenderState) CameraBuilderOption {
	return func(c *cameraImpl) {
		if rs == nil {
			rs = state.Empty()
		}
		c.initialState = rs
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrices from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
