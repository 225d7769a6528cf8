package camera

import (
	"math"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
)

// cameraCount is an atomic counter used to generate unique names for cameras created without one.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	name string
	up   [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	orthographic bool
	halfExtent   float32

	drawMask     common.BitMask32
	tagStateKey  string
	initialState *state.RenderState
	tagStates    map[string]*state.RenderState

	viewMatrix              [16]float32
	projectionMatrix        [16]float32
	viewProjectionMatrix    [16]float32
	inverseProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds projection settings and computes view/projection matrices from an
// attached CameraController. Pass cameras additionally carry a draw mask restricting
// which geometry they see, a tag-state key naming the node tag they match against,
// a writable initial-state slot holding their effective render state, and a table of
// named tag states consulted when drawing tagged geometry.
type Camera interface {
	// Name returns the camera's name, used for logging and introspection.
	//
	// Returns:
	//   - string: the camera's name
	Name() string

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the field of view in radians. Unused for orthographic cameras.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Orthographic reports whether the camera uses an orthographic projection.
	//
	// Returns:
	//   - bool: true for orthographic, false for perspective
	Orthographic() bool

	// HalfExtent returns the orthographic half extent. Unused for perspective cameras.
	//
	// Returns:
	//   - float32: half the width and height of the orthographic volume
	HalfExtent() float32

	// DrawMask returns the visibility mask restricting which geometry this camera draws.
	// Only nodes whose visibility bits intersect the mask are rendered.
	//
	// Returns:
	//   - common.BitMask32: the camera's draw mask
	DrawMask() common.BitMask32

	// TagStateKey returns the node tag name this camera matches against when
	// selecting tag states. Empty when the camera performs no tag matching.
	//
	// Returns:
	//   - string: the tag-state key, or empty
	TagStateKey() string

	// InitialState returns the camera's effective render state slot. Geometry drawn
	// by this camera starts from this state before node-level attributes apply.
	// Never nil.
	//
	// Returns:
	//   - *state.RenderState: the current slot contents
	InitialState() *state.RenderState

	// TagState retrieves the named tag state if present.
	//
	// Parameters:
	//   - name: the tag value to look up
	//
	// Returns:
	//   - *state.RenderState: the state registered under the name, or nil
	//   - bool: true if a state is registered under the name
	TagState(name string) (*state.RenderState, bool)

	// HasTagState reports whether a tag state is registered under the name.
	//
	// Parameters:
	//   - name: the tag value to check
	//
	// Returns:
	//   - bool: true if present
	HasTagState(name string) bool

	// TagStateNames returns the names of all registered tag states in ascending order.
	//
	// Returns:
	//   - []string: the sorted tag state names
	TagStateNames() []string

	// TagStateCount returns the number of registered tag states.
	//
	// Returns:
	//   - int: the tag state count
	TagStateCount() int

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// InverseProjectionMatrix returns the inverse of the current projection matrix
	// as 16 floats (column-major). Used by passes that reconstruct view-space
	// positions from clip coordinates.
	//
	// Returns:
	//   - [16]float32: the inverse projection matrix
	InverseProjectionMatrix() [16]float32

	// Frustum extracts the camera's world-space view frustum from the current
	// view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: the six world-space frustum planes
	Frustum() common.Frustum

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Should be called after the controller moves. If no controller is attached,
	// this method does nothing.
	Update()

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetDrawMask sets the camera's visibility mask.
	//
	// Parameters:
	//   - mask: the new draw mask
	SetDrawMask(mask common.BitMask32)

	// SetTagStateKey sets the node tag name this camera matches against.
	//
	// Parameters:
	//   - key: the tag name, or empty to disable tag matching
	SetTagStateKey(key string)

	// SetInitialState writes the camera's effective render state slot.
	// A nil state resets the slot to the empty state.
	//
	// Parameters:
	//   - rs: the state to write
	SetInitialState(rs *state.RenderState)

	// SetTagState registers a tag state under the given name, replacing any
	// existing state with that name. A nil state removes the entry.
	//
	// Parameters:
	//   - name: the tag value the state applies to
	//   - rs: the state to register, or nil to remove
	SetTagState(name string, rs *state.RenderState)

	// ClearTagState removes the tag state registered under the name, if any.
	//
	// Parameters:
	//   - name: the tag value to remove
	ClearTagState(name string)

	// ClearTagStates removes all registered tag states.
	ClearTagStates()

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings, an all-bits
// draw mask, and an empty initial state. A controller must be attached via
// SetController or WithController before position/target data is available.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		name:                 "camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		up:                   [3]float32{0, 1, 0},
		fov:                  45.0 * (math.Pi / 180.0), // radians
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		drawMask:             common.MaskAll,
		initialState:         state.Empty(),
		tagStates:            make(map[string]*state.RenderState),
		viewMatrix:           [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		projectionMatrix:     [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.updateMatrices()
	}
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Orthographic() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orthographic
}

func (c *cameraImpl) HalfExtent() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.halfExtent
}

func (c *cameraImpl) DrawMask() common.BitMask32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drawMask
}

func (c *cameraImpl) TagStateKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tagStateKey
}

func (c *cameraImpl) InitialState() *state.RenderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialState
}

func (c *cameraImpl) TagState(name string) (*state.RenderState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rs, ok := c.tagStates[name]
	return rs, ok
}

func (c *cameraImpl) HasTagState(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tagStates[name]
	return ok
}

func (c *cameraImpl) TagStateNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.tagStates))
	for name := range c.tagStates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *cameraImpl) TagStateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tagStates)
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix[:])
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetDrawMask(mask common.BitMask32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drawMask = mask
}

func (c *cameraImpl) SetTagStateKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tagStateKey = key
}

func (c *cameraImpl) SetInitialState(rs *state.RenderState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rs == nil {
		rs = state.Empty()
	}
	c.initialState = rs
}

func (c *cameraImpl) SetTagState(name string, rs *state.RenderState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rs == nil {
		delete(c.tagStates, name)
		return
	}
	c.tagStates[name] = rs
}

func (c *cameraImpl) ClearTagState(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tagStates, name)
}

func (c *cameraImpl) ClearTagStates() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.tagStates)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

// updateMatrices recalculates the view, projection, view-projection, and inverse projection matrices.
// It reads position and target from the attached controller. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()

	common.LookAt(c.viewMatrix[:],
		px, py, pz,
		tx, ty, tz,
		c.up[0], c.up[1], c.up[2],
	)

	if c.orthographic {
		common.Orthographic(c.projectionMatrix[:], c.halfExtent, c.near, c.far)
	} else {
		common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	}

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseProjectionMatrix[:], c.projectionMatrix[:])
}
