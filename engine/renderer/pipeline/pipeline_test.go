package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertexShader(t *testing.T, key string) shader.Shader {
	t.Helper()
	return shader.NewShader(key, shader.ShaderTypeVertex, shader.WithSource(`
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0);
}
`))
}

func fragmentShader(t *testing.T, key string) shader.Shader {
	t.Helper()
	return shader.NewShader(key, shader.ShaderTypeFragment, shader.WithSource(`
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`))
}

func computeShader(t *testing.T, key string) shader.Shader {
	t.Helper()
	return shader.NewShader(key, shader.ShaderTypeCompute, shader.WithSource(`
@compute @workgroup_size(64)
fn cs_main() {
}
`))
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("defaults", PipelineTypeRender)

	assert.Equal(t, PipelineTypeRender, p.Type())
	assert.Equal(t, "defaults", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Equal(t, int32(0), p.DepthBias())
	assert.Equal(t, float32(0), p.DepthBiasSlopeScale())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())

	require.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
}

func TestPipelineBuilderOptions(t *testing.T) {
	vs := vertexShader(t, "opt_vs")
	p := NewPipeline("options", PipelineTypeRender,
		WithVertexShader(vs),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
		WithDepthBias(2, 2.5),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskNone),
		WithBlendEnabled(true),
	)

	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Nil(t, p.Shader(shader.ShaderTypeFragment))
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CompareFunctionLessEqual, p.DepthCompare())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(2.5), p.DepthBiasSlopeScale())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskNone, p.WriteMask())
	assert.True(t, p.BlendEnabled())
}

func TestPrimitiveState(t *testing.T) {
	p := NewPipeline("prim", PipelineTypeRender,
		WithTopology(wgpu.PrimitiveTopologyTriangleStrip),
		WithFrontFace(wgpu.FrontFaceCW),
		WithCullMode(wgpu.CullModeFront),
	)

	ps := p.PrimitiveState()
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, ps.Topology)
	assert.Equal(t, wgpu.FrontFaceCW, ps.FrontFace)
	assert.Equal(t, wgpu.CullModeFront, ps.CullMode)
}

func TestDepthStencilState(t *testing.T) {
	p := NewPipeline("depth", PipelineTypeRender,
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
		WithDepthBias(4, 1.5),
	)

	ds := p.DepthStencilState(wgpu.TextureFormatDepth32Float)
	require.NotNil(t, ds)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, ds.Format)
	assert.True(t, ds.DepthWriteEnabled)
	assert.Equal(t, wgpu.CompareFunctionLessEqual, ds.DepthCompare)
	assert.Equal(t, int32(4), ds.DepthBias)
	assert.Equal(t, float32(1.5), ds.DepthBiasSlopeScale)
	assert.Equal(t, wgpu.CompareFunctionAlways, ds.StencilFront.Compare)
	assert.Equal(t, wgpu.CompareFunctionAlways, ds.StencilBack.Compare)
}

func TestDepthStencilStateTestDisabledForcesAlways(t *testing.T) {
	p := NewPipeline("depth_off", PipelineTypeRender,
		WithDepthTestEnabled(false),
		WithDepthCompare(wgpu.CompareFunctionLessEqual),
	)

	ds := p.DepthStencilState(wgpu.TextureFormatDepth24Plus)
	require.NotNil(t, ds)
	assert.Equal(t, wgpu.CompareFunctionAlways, ds.DepthCompare)
}

func TestAttachmentFormatDefaults(t *testing.T) {
	p := NewPipeline("defaults", PipelineTypeRender)

	ds := p.DepthStencilState(wgpu.TextureFormatUndefined)
	require.NotNil(t, ds)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, ds.Format)

	target := p.ColorTarget(wgpu.TextureFormatUndefined)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, target.Format)
}

func TestColorTarget(t *testing.T) {
	p := NewPipeline("target", PipelineTypeRender,
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	target := p.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, target.Format)
	assert.Equal(t, wgpu.ColorWriteMaskRed, target.WriteMask)
	assert.Nil(t, target.Blend, "blend state should only attach when blending is enabled")

	blended := NewPipeline("target_blend", PipelineTypeRender, WithBlendEnabled(true))
	target = blended.ColorTarget(wgpu.TextureFormatBGRA8Unorm)
	assert.Same(t, blended.BlendState(), target.Blend)
}

func TestDescriptorDepthOnly(t *testing.T) {
	p := NewPipeline("shadow_depth", PipelineTypeRender,
		WithVertexShader(vertexShader(t, "shadow_vs")),
		WithDepthBias(2, 2.0),
	)

	desc, err := p.Descriptor(wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatDepth32Float)
	require.NoError(t, err)
	assert.Equal(t, "shadow_depth Render Pipeline", desc.Label)
	assert.Equal(t, "vs_main", desc.Vertex.EntryPoint)
	assert.Len(t, desc.Vertex.Buffers, 1)
	assert.Nil(t, desc.Fragment, "no fragment shader means a depth-only descriptor")

	require.NotNil(t, desc.DepthStencil)
	assert.Equal(t, wgpu.TextureFormatDepth32Float, desc.DepthStencil.Format)
	assert.Equal(t, int32(2), desc.DepthStencil.DepthBias)
	assert.Equal(t, uint32(1), desc.Multisample.Count)
	assert.Equal(t, uint32(0xFFFFFFFF), desc.Multisample.Mask)
}

func TestDescriptorWithFragmentStage(t *testing.T) {
	p := NewPipeline("lit", PipelineTypeRender,
		WithVertexShader(vertexShader(t, "lit_vs")),
		WithFragmentShader(fragmentShader(t, "lit_fs")),
		WithBlendEnabled(true),
	)

	desc, err := p.Descriptor(wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatDepth24Plus)
	require.NoError(t, err)
	require.NotNil(t, desc.Fragment)
	assert.Equal(t, "fs_main", desc.Fragment.EntryPoint)
	require.Len(t, desc.Fragment.Targets, 1)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, desc.Fragment.Targets[0].Format)
	assert.NotNil(t, desc.Fragment.Targets[0].Blend)
}

func TestDescriptorErrors(t *testing.T) {
	noVertex := NewPipeline("no_vs", PipelineTypeRender)
	_, err := noVertex.Descriptor(wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatDepth24Plus)
	assert.Error(t, err)

	computeType := NewPipeline("compute", PipelineTypeCompute, WithComputeShader(computeShader(t, "cull_cs")))
	_, err = computeType.Descriptor(wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatDepth24Plus)
	assert.Error(t, err)

	_, err = noVertex.ComputeDescriptor()
	assert.Error(t, err)

	noCompute := NewPipeline("no_cs", PipelineTypeCompute)
	_, err = noCompute.ComputeDescriptor()
	assert.Error(t, err)
}

func TestComputeDescriptor(t *testing.T) {
	p := NewPipeline("voxel_cull", PipelineTypeCompute,
		WithComputeShader(computeShader(t, "voxel_cs")),
	)

	desc, err := p.ComputeDescriptor()
	require.NoError(t, err)
	assert.Equal(t, "voxel_cull Compute Pipeline", desc.Label)
	assert.Equal(t, "cs_main", desc.Compute.EntryPoint)
}

func TestWithRenderState(t *testing.T) {
	vs := vertexShader(t, "pass_vs")
	customBlend := &wgpu.BlendState{
		Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorZero, Operation: wgpu.BlendOperationAdd},
		Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorZero, Operation: wgpu.BlendOperationAdd},
	}

	rs := state.Empty().
		With(state.NewShaderAttrib(vs), 25).
		With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), 10000).
		With(state.NewDepthWriteAttrib(false), 0).
		With(state.NewDepthTestAttrib(true, wgpu.CompareFunctionGreater), 0).
		With(state.NewDepthBiasAttrib(3, 1.25), 0).
		With(state.NewCullFaceAttrib(wgpu.CullModeBack), 0).
		With(state.NewBlendAttrib(true, customBlend), 0)

	p := NewPipeline(rs.Key(), PipelineTypeRender, WithRenderState(rs))

	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Equal(t, wgpu.ColorWriteMaskNone, p.WriteMask())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.DepthTestEnabled())
	assert.Equal(t, wgpu.CompareFunctionGreater, p.DepthCompare())
	assert.Equal(t, int32(3), p.DepthBias())
	assert.Equal(t, float32(1.25), p.DepthBiasSlopeScale())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.True(t, p.BlendEnabled())
	assert.Same(t, customBlend, p.BlendState())
}

func TestWithRenderStatePartial(t *testing.T) {
	rs := state.Empty().With(state.NewColorWriteAttrib(wgpu.ColorWriteMaskNone), 10000)

	p := NewPipeline(rs.Key(), PipelineTypeRender, WithRenderState(rs))

	assert.Equal(t, wgpu.ColorWriteMaskNone, p.WriteMask())
	// Kinds the state does not carry keep pipeline defaults.
	assert.True(t, p.DepthTestEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
}

func TestWithRenderStateDisabledDepthTestKeepsCompare(t *testing.T) {
	rs := state.Empty().With(state.NewDepthTestAttrib(false, wgpu.CompareFunctionGreater), 0)

	p := NewPipeline(rs.Key(), PipelineTypeRender, WithRenderState(rs))

	assert.False(t, p.DepthTestEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, p.DepthCompare())
	assert.Equal(t, wgpu.CompareFunctionAlways, p.DepthStencilState(wgpu.TextureFormatDepth24Plus).DepthCompare)
}

func TestWithRenderStateDefaultBlend(t *testing.T) {
	rs := state.Empty().With(state.NewBlendAttrib(true, nil), 0)

	p := NewPipeline(rs.Key(), PipelineTypeRender, WithRenderState(rs))

	assert.True(t, p.BlendEnabled())
	require.NotNil(t, p.BlendState(), "nil blend attrib state keeps the pipeline default")
	assert.Equal(t, wgpu.BlendFactorSrcAlpha, p.BlendState().Color.SrcFactor)
}

func TestWithRenderStateRoutesShadersByType(t *testing.T) {
	fs := fragmentShader(t, "route_fs")
	cs := computeShader(t, "route_cs")

	p := NewPipeline("route_f", PipelineTypeRender,
		WithRenderState(state.Empty().With(state.NewShaderAttrib(fs), 10)))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.Nil(t, p.Shader(shader.ShaderTypeVertex))

	p = NewPipeline("route_c", PipelineTypeCompute,
		WithRenderState(state.Empty().With(state.NewShaderAttrib(cs), 10)))
	assert.Same(t, cs, p.Shader(shader.ShaderTypeCompute))
}
