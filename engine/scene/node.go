package scene

import (
	"sync"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
)

// nodePath is the implementation of the NodePath interface.
// All nodes of one graph share a single RWMutex, created at the root and
// inherited by children on attach, so structural edits and traversals are
// serialized per graph rather than per node.
type nodePath struct {
	mu *sync.RWMutex

	name     string
	parent   *nodePath
	children []*nodePath

	tags           map[string]string
	state          *state.RenderState
	visibilityMask common.BitMask32
}

// NodePath is a handle to a node in the scene graph. Nodes carry a name,
// string tags, a node-level render state, and a visibility mask consulted
// against camera draw masks. Pass setup code tags nodes so pass cameras can
// substitute their render state, and hides or shows nodes per pass via masks.
type NodePath interface {
	// Name returns the node's name.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Parent returns the node's parent, or nil for a root node.
	//
	// Returns:
	//   - NodePath: the parent node or nil
	Parent() NodePath

	// Children returns the node's children in attach order.
	//
	// Returns:
	//   - []NodePath: a copy of the children list
	Children() []NodePath

	// AttachNewNode creates a new child node under this node and returns it.
	//
	// Parameters:
	//   - name: the new node's name
	//   - opts: optional builder options for the new node
	//
	// Returns:
	//   - NodePath: the newly attached child
	AttachNewNode(name string, opts ...NodeBuilderOption) NodePath

	// Detach removes this node (and its subtree) from its parent.
	// No-op for root nodes.
	Detach()

	// SetTag associates a string value with a key on this node, replacing any
	// prior value for the key.
	//
	// Parameters:
	//   - key: the tag name
	//   - value: the tag value
	SetTag(key, value string)

	// Tag retrieves the tag value set directly on this node.
	//
	// Parameters:
	//   - key: the tag name
	//
	// Returns:
	//   - string: the tag value, or empty if not set
	Tag(key string) string

	// HasTag reports whether the tag is set directly on this node.
	//
	// Parameters:
	//   - key: the tag name
	//
	// Returns:
	//   - bool: true if set
	HasTag(key string) bool

	// NetTag retrieves the tag value on this node or the nearest ancestor that
	// sets it. Tags inherit down the graph for pass-state matching.
	//
	// Parameters:
	//   - key: the tag name
	//
	// Returns:
	//   - string: the inherited tag value, or empty if no ancestor sets it
	NetTag(key string) string

	// ClearTag removes the tag from this node, if set.
	//
	// Parameters:
	//   - key: the tag name
	ClearTag(key string)

	// State returns the node-level render state. Never nil.
	//
	// Returns:
	//   - *state.RenderState: the node's state
	State() *state.RenderState

	// SetState sets the node-level render state. A nil state resets to empty.
	//
	// Parameters:
	//   - rs: the state to set
	SetState(rs *state.RenderState)

	// VisibilityMask returns the node's visibility bits.
	//
	// Returns:
	//   - common.BitMask32: the visibility mask
	VisibilityMask() common.BitMask32

	// Hide clears the given bits from the node's visibility mask, hiding the
	// node and its subtree from cameras whose draw mask lies within those bits.
	//
	// Parameters:
	//   - mask: the bits to clear
	Hide(mask common.BitMask32)

	// Show sets the given bits on the node's visibility mask.
	//
	// Parameters:
	//   - mask: the bits to set
	Show(mask common.BitMask32)

	// IsVisibleTo reports whether this node and all its ancestors are visible
	// to a camera drawing with the given mask.
	//
	// Parameters:
	//   - mask: the camera's draw mask
	//
	// Returns:
	//   - bool: true if no node on the path to the root hides the mask
	IsVisibleTo(mask common.BitMask32) bool

	// Walk visits this node and every descendant in depth-first preorder.
	// Returning false from the visitor stops the walk.
	//
	// Parameters:
	//   - fn: the visitor, called once per node
	Walk(fn func(np NodePath) bool)
}

var _ NodePath = &nodePath{}

// NewNodePath creates a standalone root node. Children attached under it share
// the root's lock.
//
// Parameters:
//   - name: the root node's name
//   - opts: optional builder options
//
// Returns:
//   - NodePath: the new root node
func NewNodePath(name string, opts ...NodeBuilderOption) NodePath {
	np := newNode(name, &sync.RWMutex{})
	for _, opt := range opts {
		opt(np)
	}
	return np
}

// newNode creates a node bound to the given graph lock.
func newNode(name string, mu *sync.RWMutex) *nodePath {
	return &nodePath{
		mu:             mu,
		name:           name,
		tags:           make(map[string]string),
		state:          state.Empty(),
		visibilityMask: common.MaskAll,
	}
}

func (np *nodePath) Name() string {
	np.mu.RLock()
	defer np.mu.RUnlock()
	return np.name
}

func (np *nodePath) Parent() NodePath {
	np.mu.RLock()
	defer np.mu.RUnlock()
	if np.parent == nil {
		return nil
	}
	return np.parent
}

func (np *nodePath) Children() []NodePath {
	np.mu.RLock()
	defer np.mu.RUnlock()
	children := make([]NodePath, len(np.children))
	for i, c := range np.children {
		children[i] = c
	}
	return children
}

func (np *nodePath) AttachNewNode(name string, opts ...NodeBuilderOption) NodePath {
	np.mu.Lock()
	defer np.mu.Unlock()
	child := newNode(name, np.mu)
	child.parent = np
	for _, opt := range opts {
		opt(child)
	}
	np.children = append(np.children, child)
	return child
}

func (np *nodePath) Detach() {
	np.mu.Lock()
	defer np.mu.Unlock()
	if np.parent == nil {
		return
	}
	siblings := np.parent.children
	for i, c := range siblings {
		if c == np {
			np.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	np.parent = nil
}

func (np *nodePath) SetTag(key, value string) {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.tags[key] = value
}

func (np *nodePath) Tag(key string) string {
	np.mu.RLock()
	defer np.mu.RUnlock()
	return np.tags[key]
}

func (np *nodePath) HasTag(key string) bool {
	np.mu.RLock()
	defer np.mu.RUnlock()
	_, ok := np.tags[key]
	return ok
}

func (np *nodePath) NetTag(key string) string {
	np.mu.RLock()
	defer np.mu.RUnlock()
	return np.netTag(key)
}

// netTag walks toward the root looking for the nearest node that sets the tag.
// Caller must hold the mutex.
func (np *nodePath) netTag(key string) string {
	for n := np; n != nil; n = n.parent {
		if v, ok := n.tags[key]; ok {
			return v
		}
	}
	return ""
}

func (np *nodePath) ClearTag(key string) {
	np.mu.Lock()
	defer np.mu.Unlock()
	delete(np.tags, key)
}

func (np *nodePath) State() *state.RenderState {
	np.mu.RLock()
	defer np.mu.RUnlock()
	return np.state
}

func (np *nodePath) SetState(rs *state.RenderState) {
	np.mu.Lock()
	defer np.mu.Unlock()
	if rs == nil {
		rs = state.Empty()
	}
	np.state = rs
}

func (np *nodePath) VisibilityMask() common.BitMask32 {
	np.mu.RLock()
	defer np.mu.RUnlock()
	return np.visibilityMask
}

func (np *nodePath) Hide(mask common.BitMask32) {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.visibilityMask = np.visibilityMask.Without(mask)
}

func (np *nodePath) Show(mask common.BitMask32) {
	np.mu.Lock()
	defer np.mu.Unlock()
	np.visibilityMask = np.visibilityMask.Union(mask)
}

func (np *nodePath) IsVisibleTo(mask common.BitMask32) bool {
	np.mu.RLock()
	defer np.mu.RUnlock()
	for n := np; n != nil; n = n.parent {
		if !n.visibilityMask.Intersects(mask) {
			return false
		}
	}
	return true
}

func (np *nodePath) Walk(fn func(np NodePath) bool) {
	np.mu.RLock()
	nodes := np.collect(nil)
	np.mu.RUnlock()
	for _, n := range nodes {
		if !fn(n) {
			return
		}
	}
}

// collect appends this node and its subtree to out in depth-first preorder.
// Caller must hold the mutex.
func (np *nodePath) collect(out []*nodePath) []*nodePath {
	out = append(out, np)
	for _, c := range np.children {
		out = c.collect(out)
	}
	return out
}
