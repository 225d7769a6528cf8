package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const depthOnlySource = `
struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
};

@group(0) @binding(0) var<uniform> viewProj: mat4x4<f32>;

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = viewProj * vec4<f32>(in.position, 1.0);
    return out;
}
`

const voxelComputeSource = `
@group(0) @binding(0) var voxelGrid: texture_storage_3d<rgba16float, write>;

@compute @workgroup_size(8, 8, 4)
fn inject_voxels(@builtin(global_invocation_id) id: vec3<u32>) {
    // fill
}
`

func TestNewShaderParsesVertexEntryPoint(t *testing.T) {
	s := NewShader("shadow_depth", ShaderTypeVertex, WithSource(depthOnlySource))

	assert.Equal(t, "shadow_depth", s.Key())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Equal(t, "vs_main", s.EntryPoint())
}

func TestNewShaderParsesVertexLayouts(t *testing.T) {
	s := NewShader("shadow_depth", ShaderTypeVertex, WithSource(depthOnlySource))

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)

	layout := s.VertexLayout(0)
	require.Len(t, layout, 1)
	assert.Equal(t, uint64(24), layout[0].ArrayStride)
	require.Len(t, layout[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, layout[0].Attributes[0].Format)
	assert.Equal(t, uint64(12), layout[0].Attributes[1].Offset)
}

func TestNewShaderParsesWorkgroupSize(t *testing.T) {
	s := NewShader("voxel_inject", ShaderTypeCompute, WithSource(voxelComputeSource))

	assert.Equal(t, "inject_voxels", s.EntryPoint())
	assert.Equal(t, [3]uint32{8, 8, 4}, s.WorkgroupSize())
}

func TestNewShaderBuildsModuleDescriptor(t *testing.T) {
	s := NewShader("shadow_depth", ShaderTypeVertex, WithSource(depthOnlySource))

	mod := s.Module()
	require.NotNil(t, mod)
	assert.Equal(t, "shadow_depth", mod.Label)
	require.NotNil(t, mod.WGSLDescriptor)
	assert.Equal(t, depthOnlySource, mod.WGSLDescriptor.Code)
}

func TestNewShaderWithEntryPointOverride(t *testing.T) {
	s := NewShader("shadow_depth", ShaderTypeVertex,
		WithSource(depthOnlySource),
		WithEntryPoint("vs_alt"),
	)

	assert.Equal(t, "vs_alt", s.EntryPoint())
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	assert.Panics(t, func() {
		NewShader("empty", ShaderTypeFragment)
	})
}

func TestParseEntryPointPerStage(t *testing.T) {
	source := `
@vertex
fn vs(in: f32) -> f32 { return in; }

@fragment
fn fs() -> f32 { return 1.0; }
`
	assert.Equal(t, "vs", parseEntryPoint(source, ShaderTypeVertex))
	assert.Equal(t, "fs", parseEntryPoint(source, ShaderTypeFragment))
	assert.Equal(t, "", parseEntryPoint(source, ShaderTypeCompute))
}

func TestParseWorkgroupSizeDefaults(t *testing.T) {
	assert.Equal(t, [3]uint32{1, 1, 1}, parseWorkgroupSize(`@compute fn main() {}`))
	assert.Equal(t, [3]uint32{64, 1, 1}, parseWorkgroupSize(`@compute @workgroup_size(64) fn main() {}`))
}
