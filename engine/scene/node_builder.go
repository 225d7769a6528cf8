package scene

import (
	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
)

type NodeBuilderOption func(*nodePath)

// WithTag sets a tag on the node at creation time.
//
// Parameters:
//   - key: the tag name
//   - value: the tag value
//
// Returns:
//   - NodeBuilderOption: a function that sets the tag
func WithTag(key, value string) NodeBuilderOption {
	return func(np *nodePath) {
		np.tags[key] = value
	}
}

// WithState sets the node-level render state at creation time.
//
// Parameters:
//   - rs: the state to set
//
// Returns:
//   - NodeBuilderOption: a function that sets the node state
func WithState(rs *state.RenderState) NodeBuilderOption {
	return func(np *nodePath) {
		if rs == nil {
			rs = state.Empty()
		}
		np.state = rs
	}
}

// WithVisibilityMask sets the node's visibility bits at creation time,
// replacing the default all-bits mask.
//
// Parameters:
//   - mask: the visibility mask
//
// Returns:
//   - NodeBuilderOption: a function that sets the visibility mask
func WithVisibilityMask(mask common.BitMask32) NodeBuilderOption {
	return func(np *nodePath) {
		np.visibilityMask = mask
	}
}
