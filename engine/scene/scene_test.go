package scene

import (
	"testing"

	"github.com/Carmen-Shannon/prism-go/common"
	"github.com/Carmen-Shannon/prism-go/engine/camera"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthShader(t *testing.T) shader.Shader {
	t.Helper()
	return shader.NewShader("depth_only", shader.ShaderTypeVertex, shader.WithSource(`
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`))
}

func TestNewSceneRoot(t *testing.T) {
	s := NewScene("main")
	assert.Equal(t, "main", s.Name())
	assert.Equal(t, "render", s.Root().Name())
	assert.Equal(t, 1, s.NodeCount())

	named := NewScene("aux", WithRootName("offscreen"))
	assert.Equal(t, "offscreen", named.Root().Name())
}

func TestAttachDetach(t *testing.T) {
	s := NewScene("main")
	a := s.AttachNewNode("a")
	b := s.AttachNewNode("b")
	child := a.AttachNewNode("a_child")

	require.Equal(t, 4, s.NodeCount())
	assert.Equal(t, s.Root(), a.Parent())
	assert.Equal(t, a, child.Parent())

	children := s.Root().Children()
	require.Len(t, children, 2)
	assert.Equal(t, "a", children[0].Name())
	assert.Equal(t, "b", children[1].Name())

	a.Detach()
	assert.Nil(t, a.Parent())
	assert.Equal(t, 2, s.NodeCount())
	assert.Equal(t, b, s.Root().Children()[0])
}

func TestNodeTags(t *testing.T) {
	s := NewScene("main")
	parent := s.AttachNewNode("parent")
	child := parent.AttachNewNode("child")

	parent.SetTag("shadow", "depth")

	assert.Equal(t, "depth", parent.Tag("shadow"))
	assert.True(t, parent.HasTag("shadow"))
	assert.False(t, child.HasTag("shadow"))
	assert.Empty(t, child.Tag("shadow"))

	// tags inherit down the graph
	assert.Equal(t, "depth", child.NetTag("shadow"))

	// a closer tag shadows the inherited one
	child.SetTag("shadow", "skinned")
	assert.Equal(t, "skinned", child.NetTag("shadow"))

	parent.ClearTag("shadow")
	assert.False(t, parent.HasTag("shadow"))
	assert.Equal(t, "skinned", child.NetTag("shadow"))
}

func TestNodeVisibility(t *testing.T) {
	s := NewScene("main")
	parent := s.AttachNewNode("parent")
	child := parent.AttachNewNode("child")

	shadowMask := common.Bit(2)
	assert.True(t, child.IsVisibleTo(shadowMask))

	// hiding the parent hides the subtree
	parent.Hide(shadowMask)
	assert.False(t, parent.IsVisibleTo(shadowMask))
	assert.False(t, child.IsVisibleTo(shadowMask))
	assert.True(t, child.IsVisibleTo(common.Bit(1)))

	parent.Show(shadowMask)
	assert.True(t, child.IsVisibleTo(shadowMask))
}

func TestWalkPreorder(t *testing.T) {
	s := NewScene("main")
	a := s.AttachNewNode("a")
	a.AttachNewNode("a1")
	s.AttachNewNode("b")

	var visited []string
	s.Root().Walk(func(np NodePath) bool {
		visited = append(visited, np.Name())
		return true
	})
	assert.Equal(t, []string{"render", "a", "a1", "b"}, visited)

	// returning false stops the walk
	visited = visited[:0]
	s.Root().Walk(func(np NodePath) bool {
		visited = append(visited, np.Name())
		return np.Name() != "a"
	})
	assert.Equal(t, []string{"render", "a"}, visited)
}

func TestFind(t *testing.T) {
	s := NewScene("main")
	a := s.AttachNewNode("a")
	target := a.AttachNewNode("target")

	assert.Equal(t, target, s.Find("target"))
	assert.Nil(t, s.Find("missing"))
}

func TestClear(t *testing.T) {
	s := NewScene("main")
	s.AttachNewNode("a")
	s.AttachNewNode("b")
	require.Equal(t, 3, s.NodeCount())

	s.Clear()
	assert.Equal(t, 1, s.NodeCount())
	assert.Empty(t, s.Root().Children())
}

func TestCollectVisibleComposesStates(t *testing.T) {
	s := NewScene("main")
	props := s.AttachNewNode("props", WithTag("shadow", "depth"))
	props.AttachNewNode("barrel")
	terrain := s.AttachNewNode("terrain")

	shadowMask := common.Bit(2)
	baseline := state.Empty().With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), 10000)

	cam := camera.NewCamera(
		camera.WithName("shadow_cam"),
		camera.WithDrawMask(shadowMask),
		camera.WithTagStateKey("shadow"),
		camera.WithInitialState(baseline),
	)
	cam.SetTagState("depth", baseline.With(state.NewShaderAttrib(depthShader(t)), 25))

	terrain.Hide(shadowMask)

	entries := s.CollectVisible(cam)
	require.Len(t, entries, 2)
	assert.Equal(t, "props", entries[0].Node.Name())
	assert.Equal(t, "barrel", entries[1].Node.Name())

	for _, e := range entries {
		a, ok := e.State.Attrib(state.AttribKindShader)
		require.True(t, ok, "%s should carry the substituted shader", e.Node.Name())
		assert.Equal(t, "depth_only", a.(state.ShaderAttrib).Shader().Key())

		cw, ok := e.State.Attrib(state.AttribKindColorWrite)
		require.True(t, ok)
		assert.Equal(t, wgpu.ColorWriteMaskNone, cw.(state.ColorWriteAttrib).Mask())
	}
}

func TestCollectVisibleWithoutTagKey(t *testing.T) {
	s := NewScene("main")
	node := s.AttachNewNode("mesh")
	node.SetState(state.Empty().With(state.NewDepthWriteAttrib(true), 0))

	cam := camera.NewCamera()
	entries := s.CollectVisible(cam)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].State.Has(state.AttribKindDepthWrite))
}

func TestCollectVisibleNilCamera(t *testing.T) {
	s := NewScene("main")
	s.AttachNewNode("a")
	assert.Nil(t, s.CollectVisible(nil))
}

func TestCollectVisiblePrunesHiddenSubtree(t *testing.T) {
	s := NewScene("main")
	parent := s.AttachNewNode("parent")
	parent.AttachNewNode("child")

	mask := common.Bit(3)
	parent.Hide(mask)

	cam := camera.NewCamera(camera.WithDrawMask(mask))
	assert.Empty(t, s.CollectVisible(cam))
}
