package scene

import (
	"sync"

	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
)

// DrawEntry pairs a visible node with the effective render state a camera
// would draw it with.
type DrawEntry struct {
	Node  NodePath
	State *state.RenderState
}

// Scene owns a scene graph rooted at a single node. It provides node creation,
// lookup, and the per-camera visible-set collection that resolves each node's
// effective render state, including pass-specific tag state substitution.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Root returns the graph's root node.
	//
	// Returns:
	//   - NodePath: the root node
	Root() NodePath

	// AttachNewNode creates a new node under the root and returns it.
	//
	// Parameters:
	//   - name: the new node's name
	//   - opts: optional builder options for the new node
	//
	// Returns:
	//   - NodePath: the newly attached node
	AttachNewNode(name string, opts ...NodeBuilderOption) NodePath

	// Find returns the first node with the given name in depth-first preorder,
	// or nil if no node matches.
	//
	// Parameters:
	//   - name: the node name to search for
	//
	// Returns:
	//   - NodePath: the matching node or nil
	Find(name string) NodePath

	// NodeCount returns the number of nodes in the graph, including the root.
	//
	// Returns:
	//   - int: the node count
	NodeCount() int

	// Clear detaches all children from the root, emptying the graph.
	Clear()

	// CollectVisible traverses the graph from the root and returns an entry for
	// every node visible to the camera's draw mask, in depth-first preorder.
	// Each entry carries the node's effective render state: the camera's initial
	// state composed with the node states along the path from the root, and,
	// when the camera has a tag-state key and the node inherits a matching tag,
	// the camera's tag state for that tag value composed on top. Subtrees hidden
	// from the mask are pruned without being visited.
	//
	// Parameters:
	//   - cam: the camera to collect for
	//
	// Returns:
	//   - []DrawEntry: visible nodes paired with their effective states
	CollectVisible(cam camera.Camera) []DrawEntry
}

// scene is the implementation of the Scene interface. The scene's lock is the
// graph lock shared by every node attached under the root.
type scene struct {
	mu *sync.RWMutex

	name string
	root *nodePath
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with an empty graph. The root node is named
// "render" unless overridden via WithRootName.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	mu := &sync.RWMutex{}
	s := &scene{
		mu:   mu,
		name: name,
		root: newNode("render", mu),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Root() NodePath {
	return s.root
}

func (s *scene) AttachNewNode(name string, opts ...NodeBuilderOption) NodePath {
	return s.root.AttachNewNode(name, opts...)
}

func (s *scene) Find(name string) NodePath {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.root.collect(nil) {
		if n.name == name {
			return n
		}
	}
	return nil
}

func (s *scene) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.root.collect(nil))
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.root.children {
		c.parent = nil
	}
	s.root.children = nil
}

func (s *scene) CollectVisible(cam camera.Camera) []DrawEntry {
	if cam == nil {
		return nil
	}
	base := cam.InitialState()
	key := cam.TagStateKey()
	mask := cam.DrawMask()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []DrawEntry
	var visit func(n *nodePath, inherited *state.RenderState)
	visit = func(n *nodePath, inherited *state.RenderState) {
		if !n.visibilityMask.Intersects(mask) {
			return
		}
		st := inherited.Compose(n.state)
		if key != "" {
			if v := n.netTag(key); v != "" {
				if ts, ok := cam.TagState(v); ok {
					st = st.Compose(ts)
				}
			}
		}
		if n != s.root {
			entries = append(entries, DrawEntry{Node: n, State: st})
		}
		for _, c := range n.children {
			visit(c, st)
		}
	}
	visit(s.root, base)
	return entries
}
