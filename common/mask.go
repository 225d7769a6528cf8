package common

import "fmt"

// BitMask32 is a 32-bit visibility/draw mask. Cameras carry a draw mask and
// scene nodes carry a hide mask; a node is visible to a camera when the
// camera's mask intersects the node's visible bits. Masks are plain values
// with no interior state.
type BitMask32 uint32

const (
	// MaskNone is the empty mask: no bits set, visible to nothing.
	MaskNone BitMask32 = 0

	// MaskAll is the full mask: all 32 bits set, visible to everything.
	MaskAll BitMask32 = 0xFFFFFFFF
)

// Bit returns a mask with only the given bit index set.
//
// Parameters:
//   - index: bit position in [0, 31]
//
// Returns:
//   - BitMask32: a mask with the single bit set, or MaskNone if index is out of range
func Bit(index int) BitMask32 {
	if index < 0 || index > 31 {
		return MaskNone
	}
	return BitMask32(1) << uint(index)
}

// Has reports whether every bit of other is also set in m.
//
// Parameters:
//   - other: the bits to test for
//
// Returns:
//   - bool: true if m contains all of other's bits
func (m BitMask32) Has(other BitMask32) bool {
	return m&other == other
}

// Intersects reports whether m and other share at least one set bit.
// This is the visibility test between a camera draw mask and a node mask.
//
// Parameters:
//   - other: the mask to intersect with
//
// Returns:
//   - bool: true if any bit is set in both masks
func (m BitMask32) Intersects(other BitMask32) bool {
	return m&other != 0
}

// Union returns the mask with all bits from both m and other set.
func (m BitMask32) Union(other BitMask32) BitMask32 {
	return m | other
}

// Without returns m with all of other's bits cleared.
func (m BitMask32) Without(other BitMask32) BitMask32 {
	return m &^ other
}

// String renders the mask as a fixed-width hex literal for logs.
func (m BitMask32) String() string {
	return fmt.Sprintf("0x%08x", uint32(m))
}
