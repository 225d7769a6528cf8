package camera

import (
	"sync"
)

// cameraControllerImpl is the single implementation of CameraController.
// It holds plain positional state guarded by a mutex so lights and pass
// schedulers can reposition cameras from setup code.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller. The default controller
// sits at the origin looking down the negative Z axis.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 0},
		target:   [3]float32{0, 0, -1},
	}

	for _, option := range options {
		option(cc)
	}

	return cc
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
}

func (cc *cameraControllerImpl) MoveTo(px, py, pz, tx, ty, tz float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = [3]float32{px, py, pz}
	cc.target = [3]float32{tx, ty, tz}
}
