package camera

// CameraController owns a camera's positional state. The camera reads position
// and target from its controller and computes view/projection matrices from
// them. Pass cameras are positioned programmatically, shadow cameras by the
// light that owns them and voxelize cameras by the voxelization volume, so the
// controller surface is plain positional state with no input handling.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetPosition sets the camera's world-space position directly.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// SetTarget sets the look-at point.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// MoveTo sets position and target in one call.
	//
	// Parameters:
	//   - px, py, pz: world-space camera position
	//   - tx, ty, tz: world-space target position
	MoveTo(px, py, pz, tx, ty, tz float32)
}
