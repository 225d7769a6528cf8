package tagstate

import (
	"fmt"
	"log"
	"sort"

	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
	"github.com/Carmen-Shannon/prism-go/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// colorWriteOffPriority is the state priority of the forced color-write-off
// attribute carried by every pass baseline and override. It must outrank any
// authored node state so depth-only passes never pay for fragment output.
const colorWriteOffPriority = 10000

// passContainer aggregates one pass kind's membership: the cameras currently
// assigned to the pass (insertion order, no duplicates) and the named
// overrides registered for it (unique names, replace-on-collision).
type passContainer struct {
	kind      PassKind
	cameras   []camera.Camera
	overrides map[string]*state.RenderState
}

// Manager stores the named render-state overrides for each rendering pass
// kind. For example, the shadow pass registers depth-only shader overrides,
// which are applied whenever tagged objects are rendered from a shadow
// camera. The manager also tracks the cameras assigned to each pass kind, so
// an override registered at any time reaches every camera of that kind, and
// a camera registered at any time picks up every override already present.
//
// Camera membership and override registration are independent axes: applying
// an override broadcasts it to the pass's current cameras, registering a
// camera replays the pass's current overrides onto it, and cleanup clears
// overrides without touching membership. Cameras are externally owned; the
// manager holds non-owning references and callers must unregister a camera
// before destroying it.
//
// A Manager performs no internal locking and executes every operation
// synchronously. Confine all calls for a given Manager to the frame-setup
// goroutine, or serialize access externally.
type Manager interface {
	// MainCamera returns the main scene camera the manager was bound to at
	// construction. The main camera never belongs to a pass container; its
	// tag states are cleared alongside the containers during cleanup.
	//
	// Returns:
	//   - camera.Camera: the main camera
	MainCamera() camera.Camera

	// RegisterCamera adds a camera to the given pass kind's container and
	// prepares it for the pass: the camera receives the kind's tag-state key
	// and visibility mask, its state slot is set to the composition of all
	// overrides currently registered for the kind, and each named override is
	// copied into its tag-state table. Registering a camera that is already
	// present is a warning no-op.
	//
	// Parameters:
	//   - kind: the pass kind to register into
	//   - cam: the camera to register
	RegisterCamera(kind PassKind, cam camera.Camera)

	// UnregisterCamera removes a camera from the given pass kind's container.
	// Only membership changes: the camera's state slot, tag-state table, mask
	// and key keep whatever the pass last wrote, and later overrides no longer
	// reach it. Unregistering a camera that is not present is a warning no-op.
	//
	// Parameters:
	//   - kind: the pass kind to remove from
	//   - cam: the camera to remove
	UnregisterCamera(kind PassKind, cam camera.Camera)

	// ApplyState registers or replaces the override keyed by name within the
	// given pass kind's container. The override state is built from the shader
	// at the given sort priority, with color writes forced off. The node is
	// tagged under the kind's tag name so pass cameras substitute the override
	// for the node's subtree, and every camera currently in the container
	// receives the override and an updated slot composition before the call
	// returns. Broadcast cost is linear in the container's camera count;
	// overrides are a setup-time operation, not a per-frame one.
	//
	// Parameters:
	//   - kind: the pass kind to register the override for
	//   - np: the scene subtree the override applies to
	//   - sh: the replacement shader for the pass
	//   - name: the override's unique name within the container
	//   - sort: the state priority of the shader layer
	ApplyState(kind PassKind, np scene.NodePath, sh shader.Shader, name string, sort int)

	// ApplyShadowState registers or replaces a named override for the shadow
	// pass. See ApplyState.
	//
	// Parameters:
	//   - np: the scene subtree the override applies to
	//   - sh: the replacement shader for the pass
	//   - name: the override's unique name within the shadow container
	//   - sort: the state priority of the shader layer
	ApplyShadowState(np scene.NodePath, sh shader.Shader, name string, sort int)

	// ApplyVoxelizeState registers or replaces a named override for the
	// voxelize pass. See ApplyState.
	//
	// Parameters:
	//   - np: the scene subtree the override applies to
	//   - sh: the replacement shader for the pass
	//   - name: the override's unique name within the voxelize container
	//   - sort: the state priority of the shader layer
	ApplyVoxelizeState(np scene.NodePath, sh shader.Shader, name string, sort int)

	// RegisterShadowCamera adds a camera to the shadow container. See
	// RegisterCamera.
	//
	// Parameters:
	//   - cam: the camera to register
	RegisterShadowCamera(cam camera.Camera)

	// UnregisterShadowCamera removes a camera from the shadow container. See
	// UnregisterCamera.
	//
	// Parameters:
	//   - cam: the camera to remove
	UnregisterShadowCamera(cam camera.Camera)

	// RegisterVoxelizeCamera adds a camera to the voxelize container. See
	// RegisterCamera.
	//
	// Parameters:
	//   - cam: the camera to register
	RegisterVoxelizeCamera(cam camera.Camera)

	// UnregisterVoxelizeCamera removes a camera from the voxelize container.
	// See UnregisterCamera.
	//
	// Parameters:
	//   - cam: the camera to remove
	UnregisterVoxelizeCamera(cam camera.Camera)

	// CleanupStates removes every override from every container and resets
	// each still-registered camera's state slot to the neutral baseline,
	// clearing its tag-state table. The main camera's tag states are cleared
	// as well. Camera membership is untouched. This is the designated
	// teardown entry point, invoked on pipeline reconfiguration or shutdown.
	CleanupStates()

	// CleanupPassStates clears one pass kind's overrides and resets its
	// cameras to the neutral baseline, leaving membership and the other
	// containers untouched. Calling it on a container with no overrides is a
	// no-op beyond re-asserting the baseline.
	//
	// Parameters:
	//   - kind: the pass kind to clear
	CleanupPassStates(kind PassKind)

	// NumCameras returns how many cameras are registered in the given pass
	// kind's container.
	//
	// Parameters:
	//   - kind: the pass kind to count
	//
	// Returns:
	//   - int: the camera count, 0 for an invalid kind
	NumCameras(kind PassKind) int

	// NumStates returns how many named overrides the given pass kind's
	// container currently holds.
	//
	// Parameters:
	//   - kind: the pass kind to count
	//
	// Returns:
	//   - int: the override count, 0 for an invalid kind
	NumStates(kind PassKind) int

	// StateNames returns the names of the given pass kind's overrides in
	// sorted order, which is also the order they compose in.
	//
	// Parameters:
	//   - kind: the pass kind to list
	//
	// Returns:
	//   - []string: the sorted override names, empty for an invalid kind
	StateNames(kind PassKind) []string

	// ComposedState returns the state a camera of the given pass kind carries
	// in its slot right now: the neutral baseline with every registered
	// override layered on in name order. With no overrides registered this is
	// the baseline itself.
	//
	// Parameters:
	//   - kind: the pass kind to compose
	//
	// Returns:
	//   - *state.RenderState: the current composition, nil for an invalid kind
	ComposedState(kind PassKind) *state.RenderState

	// StatProvider returns a function summarizing container occupancy in one
	// line, suitable for profiler.AddStatProvider. The provider reads live
	// container state, so invoke it only from the goroutine the manager is
	// confined to.
	//
	// Returns:
	//   - func() string: produces e.g. "[TagState] shadow: 2 states / 3 cams | voxelize: 0 states / 1 cams"
	StatProvider() func() string
}

// managerImpl is the implementation of the Manager interface.
type managerImpl struct {
	mainCam    camera.Camera
	containers [numPassKinds]*passContainer
}

var _ Manager = &managerImpl{}

// NewManager creates a Manager bound to the given main camera, with one empty
// container per pass kind.
//
// Parameters:
//   - mainCam: the main scene camera; must not be nil
//
// Returns:
//   - Manager: a new Manager instance
func NewManager(mainCam camera.Camera) Manager {
	if mainCam == nil {
		panic("tagstate: main camera is required")
	}
	m := &managerImpl{mainCam: mainCam}
	for kind := PassKind(0); kind < numPassKinds; kind++ {
		m.containers[kind] = &passContainer{
			kind:      kind,
			overrides: make(map[string]*state.RenderState),
		}
	}
	return m
}

// neutralBaseline builds the state a pass camera carries with no overrides
// applied: color writes forced off, everything else passed through from the
// node's authored state.
func neutralBaseline() *state.RenderState {
	return state.Empty().
		With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), colorWriteOffPriority)
}

func (m *managerImpl) MainCamera() camera.Camera {
	return m.mainCam
}

func (m *managerImpl) RegisterCamera(kind PassKind, cam camera.Camera) {
	c := m.container(kind, "RegisterCamera")
	if c == nil {
		return
	}
	if cam == nil {
		log.Printf("[TagState] RegisterCamera: nil camera for the %s container", kind)
		return
	}
	if c.contains(cam) {
		log.Printf("[TagState] camera %q is already registered in the %s container", cam.Name(), kind)
		return
	}
	c.cameras = append(c.cameras, cam)

	cam.SetTagStateKey(kind.TagName())
	cam.SetDrawMask(kind.Mask())
	cam.SetInitialState(c.composed())
	for name, st := range c.overrides {
		cam.SetTagState(name, st)
	}
}

func (m *managerImpl) UnregisterCamera(kind PassKind, cam camera.Camera) {
	c := m.container(kind, "UnregisterCamera")
	if c == nil {
		return
	}
	if cam == nil {
		log.Printf("[TagState] UnregisterCamera: nil camera for the %s container", kind)
		return
	}
	for i, existing := range c.cameras {
		if existing == cam {
			c.cameras = append(c.cameras[:i], c.cameras[i+1:]...)
			return
		}
	}
	log.Printf("[TagState] camera %q was never registered in the %s container", cam.Name(), kind)
}

func (m *managerImpl) ApplyState(kind PassKind, np scene.NodePath, sh shader.Shader, name string, sort int) {
	c := m.container(kind, "ApplyState")
	if c == nil {
		return
	}
	if np == nil {
		log.Printf("[TagState] ApplyState: nil node path for override %q in the %s container", name, kind)
		return
	}
	if sh == nil {
		log.Printf("[TagState] ApplyState: nil shader for override %q in the %s container", name, kind)
		return
	}
	if name == "" {
		log.Printf("[TagState] ApplyState: empty override name in the %s container", kind)
		return
	}

	st := state.Empty().
		With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), colorWriteOffPriority).
		With(state.NewShaderAttrib(sh), sort)

	// Replaces any prior entry under the same name wholesale.
	c.overrides[name] = st

	// Tag the subtree so pass cameras pick the override by name at cull time.
	np.SetTag(kind.TagName(), name)

	composed := c.composed()
	for _, cam := range c.cameras {
		cam.SetTagState(name, st)
		cam.SetInitialState(composed)
	}
}

func (m *managerImpl) ApplyShadowState(np scene.NodePath, sh shader.Shader, name string, sort int) {
	m.ApplyState(PassShadow, np, sh, name, sort)
}

func (m *managerImpl) ApplyVoxelizeState(np scene.NodePath, sh shader.Shader, name string, sort int) {
	m.ApplyState(PassVoxelize, np, sh, name, sort)
}

func (m *managerImpl) RegisterShadowCamera(cam camera.Camera) {
	m.RegisterCamera(PassShadow, cam)
}

func (m *managerImpl) UnregisterShadowCamera(cam camera.Camera) {
	m.UnregisterCamera(PassShadow, cam)
}

func (m *managerImpl) RegisterVoxelizeCamera(cam camera.Camera) {
	m.RegisterCamera(PassVoxelize, cam)
}

func (m *managerImpl) UnregisterVoxelizeCamera(cam camera.Camera) {
	m.UnregisterCamera(PassVoxelize, cam)
}

func (m *managerImpl) CleanupStates() {
	m.mainCam.ClearTagStates()
	for _, c := range m.containers {
		c.cleanup()
	}
}

func (m *managerImpl) CleanupPassStates(kind PassKind) {
	c := m.container(kind, "CleanupPassStates")
	if c == nil {
		return
	}
	c.cleanup()
}

func (m *managerImpl) NumCameras(kind PassKind) int {
	c := m.container(kind, "NumCameras")
	if c == nil {
		return 0
	}
	return len(c.cameras)
}

func (m *managerImpl) NumStates(kind PassKind) int {
	c := m.container(kind, "NumStates")
	if c == nil {
		return 0
	}
	return len(c.overrides)
}

func (m *managerImpl) StateNames(kind PassKind) []string {
	c := m.container(kind, "StateNames")
	if c == nil {
		return nil
	}
	return c.stateNames()
}

func (m *managerImpl) ComposedState(kind PassKind) *state.RenderState {
	c := m.container(kind, "ComposedState")
	if c == nil {
		return nil
	}
	return c.composed()
}

func (m *managerImpl) StatProvider() func() string {
	return func() string {
		return fmt.Sprintf("[TagState] %s: %d states / %d cams | %s: %d states / %d cams",
			PassShadow, m.NumStates(PassShadow), m.NumCameras(PassShadow),
			PassVoxelize, m.NumStates(PassVoxelize), m.NumCameras(PassVoxelize))
	}
}

// container resolves a pass kind to its container, logging a warning and
// returning nil for kinds outside the defined range.
func (m *managerImpl) container(kind PassKind, op string) *passContainer {
	if !kind.valid() {
		log.Printf("[TagState] %s: unknown pass kind %s", op, kind)
		return nil
	}
	return m.containers[kind]
}

// contains reports whether the camera is already a member of the container.
func (c *passContainer) contains(cam camera.Camera) bool {
	for _, existing := range c.cameras {
		if existing == cam {
			return true
		}
	}
	return false
}

// stateNames returns the container's override names in sorted order, which is
// the order composed() layers them in.
func (c *passContainer) stateNames() []string {
	names := make([]string, 0, len(c.overrides))
	for name := range c.overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// composed layers the container's overrides onto the neutral baseline in name
// order. Name order keeps the result deterministic and independent of
// registration history, so a fixed override set always reproduces the same
// value regardless of how it was built up.
func (c *passContainer) composed() *state.RenderState {
	st := neutralBaseline()
	for _, name := range c.stateNames() {
		st = st.Compose(c.overrides[name])
	}
	return st
}

// cleanup clears the container's overrides and restores every registered
// camera to the neutral baseline with an empty tag-state table. Membership is
// preserved.
func (c *passContainer) cleanup() {
	base := neutralBaseline()
	for _, cam := range c.cameras {
		cam.ClearTagStates()
		cam.SetInitialState(base)
	}
	clear(c.overrides)
}
