package tagstate

import (
	"fmt"

	"github.com/Carmen-Shannon/prism-go/common"
)

// PassKind identifies a rendering pass category that carries its own override
// container: shadow-map generation and voxelization. Each kind owns a static
// visibility mask (cameras of that kind draw only geometry shown to the mask)
// and a tag name (the scene-graph tag key that binds nodes to the kind's
// named overrides).
type PassKind int

const (
	// PassShadow is the shadow-map generation pass. Shadow cameras render
	// depth only, so its overrides force color writes off.
	PassShadow PassKind = iota

	// PassVoxelize is the scene voxelization pass used for global
	// illumination. Voxelize cameras write into a 3D texture via the
	// fragment stage, so its overrides also force color writes off.
	PassVoxelize

	numPassKinds
)

// gbufferBit, shadowBit and voxelizeBit are the reserved draw-mask bit
// indices. Bit 0 is left free for application use.
const (
	gbufferBit  = 1
	shadowBit   = 2
	voxelizeBit = 3
)

// GBufferMask returns the visibility mask for the main geometry pass.
// The main camera draws with this mask; it has no override container since
// main-pass geometry renders with its authored states.
//
// Returns:
//   - common.BitMask32: the gbuffer visibility mask
func GBufferMask() common.BitMask32 {
	return common.Bit(gbufferBit)
}

// Mask returns the static visibility mask for this pass kind. Registering a
// camera into a kind's container assigns it this mask, so the camera draws
// only geometry shown to the kind's bit.
//
// Returns:
//   - common.BitMask32: the kind's visibility mask, or MaskNone for an invalid kind
func (k PassKind) Mask() common.BitMask32 {
	switch k {
	case PassShadow:
		return common.Bit(shadowBit)
	case PassVoxelize:
		return common.Bit(voxelizeBit)
	default:
		return common.MaskNone
	}
}

// TagName returns the scene-graph tag key for this pass kind. Nodes receiving
// an override are tagged under this key with the override's name, and cameras
// registered into the kind's container filter on the same key.
//
// Returns:
//   - string: the tag key, or "" for an invalid kind
func (k PassKind) TagName() string {
	switch k {
	case PassShadow:
		return "shadow"
	case PassVoxelize:
		return "voxelize"
	default:
		return ""
	}
}

// String returns the lowercase name of the pass kind for logs.
func (k PassKind) String() string {
	switch k {
	case PassShadow:
		return "shadow"
	case PassVoxelize:
		return "voxelize"
	default:
		return fmt.Sprintf("pass(%d)", int(k))
	}
}

// valid reports whether k names one of the defined pass kinds.
func (k PassKind) valid() bool {
	return k >= 0 && k < numPassKinds
}
