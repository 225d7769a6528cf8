package state

import (
	"fmt"

	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// AttribKind identifies the slot an attribute occupies within a RenderState.
// A RenderState holds at most one attribute per kind.
type AttribKind int

const (
	// AttribKindShader substitutes the shader program used to draw geometry.
	AttribKindShader AttribKind = iota

	// AttribKindColorWrite controls the color channel write mask.
	AttribKindColorWrite

	// AttribKindDepthWrite controls whether depth values are written.
	AttribKindDepthWrite

	// AttribKindDepthTest controls the depth comparison function.
	AttribKindDepthTest

	// AttribKindDepthBias controls the constant and slope-scaled depth bias.
	AttribKindDepthBias

	// AttribKindCullFace controls triangle face culling.
	AttribKindCullFace

	// AttribKindBlend controls color blending.
	AttribKindBlend
)

// String returns a readable name for the attribute kind.
//
// Returns:
//   - string: the kind name, e.g. "shader" or "color_write"
func (k AttribKind) String() string {
	switch k {
	case AttribKindShader:
		return "shader"
	case AttribKindColorWrite:
		return "color_write"
	case AttribKindDepthWrite:
		return "depth_write"
	case AttribKindDepthTest:
		return "depth_test"
	case AttribKindDepthBias:
		return "depth_bias"
	case AttribKindCullFace:
		return "cull_face"
	case AttribKindBlend:
		return "blend"
	default:
		return fmt.Sprintf("attrib(%d)", int(k))
	}
}

// Attrib is a single immutable render attribute. Attributes are grouped into
// RenderState values, keyed by kind, and applied to pipelines when geometry
// is drawn.
type Attrib interface {
	// Kind returns the slot this attribute occupies within a RenderState.
	//
	// Returns:
	//   - AttribKind: the attribute's kind
	Kind() AttribKind

	// Key returns a stable string encoding of the attribute's value, used for
	// state deduplication and pipeline cache lookups.
	//
	// Returns:
	//   - string: the attribute's canonical key, e.g. "shader=shadow_depth"
	Key() string
}

var (
	_ Attrib = ShaderAttrib{}
	_ Attrib = ColorWriteAttrib{}
	_ Attrib = DepthWriteAttrib{}
	_ Attrib = DepthTestAttrib{}
	_ Attrib = DepthBiasAttrib{}
	_ Attrib = CullFaceAttrib{}
	_ Attrib = BlendAttrib{}
)

// ShaderAttrib substitutes the shader program used to draw geometry.
type ShaderAttrib struct {
	shader shader.Shader
}

// NewShaderAttrib creates a shader substitution attribute.
//
// Parameters:
//   - s: the shader to substitute, must not be nil
//
// Returns:
//   - ShaderAttrib: the new attribute
func NewShaderAttrib(s shader.Shader) ShaderAttrib {
	if s == nil {
		panic("state: shader attrib requires a non-nil shader")
	}
	return ShaderAttrib{shader: s}
}

func (a ShaderAttrib) Kind() AttribKind { return AttribKindShader }

func (a ShaderAttrib) Key() string { return "shader=" + a.shader.Key() }

// Shader returns the substituted shader.
//
// Returns:
//   - shader.Shader: the shader held by this attribute
func (a ShaderAttrib) Shader() shader.Shader { return a.shader }

// ColorWriteAttrib controls which color channels are written to the render target.
// A mask of wgpu.ColorWriteMaskNone disables color output entirely, which is the
// standard configuration for depth-only passes.
type ColorWriteAttrib struct {
	mask wgpu.ColorWriteMask
}

// NewColorWriteAttrib creates a color write mask attribute.
//
// Parameters:
//   - mask: the channel mask, e.g. wgpu.ColorWriteMaskNone or wgpu.ColorWriteMaskAll
//
// Returns:
//   - ColorWriteAttrib: the new attribute
func NewColorWriteAttrib(mask wgpu.ColorWriteMask) ColorWriteAttrib {
	return ColorWriteAttrib{mask: mask}
}

func (a ColorWriteAttrib) Kind() AttribKind { return AttribKindColorWrite }

func (a ColorWriteAttrib) Key() string {
	return fmt.Sprintf("color_write=0x%x", uint32(a.mask))
}

// Mask returns the color channel write mask.
//
// Returns:
//   - wgpu.ColorWriteMask: the channel mask
func (a ColorWriteAttrib) Mask() wgpu.ColorWriteMask { return a.mask }

// DepthWriteAttrib controls whether depth values are written to the depth buffer.
type DepthWriteAttrib struct {
	enabled bool
}

// NewDepthWriteAttrib creates a depth write attribute.
//
// Parameters:
//   - enabled: true to write depth values, false to leave the depth buffer untouched
//
// Returns:
//   - DepthWriteAttrib: the new attribute
func NewDepthWriteAttrib(enabled bool) DepthWriteAttrib {
	return DepthWriteAttrib{enabled: enabled}
}

func (a DepthWriteAttrib) Kind() AttribKind { return AttribKindDepthWrite }

func (a DepthWriteAttrib) Key() string {
	if a.enabled {
		return "depth_write=on"
	}
	return "depth_write=off"
}

// Enabled returns whether depth writing is enabled.
//
// Returns:
//   - bool: true if depth values are written
func (a DepthWriteAttrib) Enabled() bool { return a.enabled }

// DepthTestAttrib controls the depth comparison function used when drawing.
type DepthTestAttrib struct {
	enabled bool
	compare wgpu.CompareFunction
}

// NewDepthTestAttrib creates a depth test attribute.
//
// Parameters:
//   - enabled: true to enable depth testing
//   - compare: the comparison function used when enabled, e.g. wgpu.CompareFunctionLessEqual
//
// Returns:
//   - DepthTestAttrib: the new attribute
func NewDepthTestAttrib(enabled bool, compare wgpu.CompareFunction) DepthTestAttrib {
	return DepthTestAttrib{enabled: enabled, compare: compare}
}

func (a DepthTestAttrib) Kind() AttribKind { return AttribKindDepthTest }

func (a DepthTestAttrib) Key() string {
	if !a.enabled {
		return "depth_test=off"
	}
	return fmt.Sprintf("depth_test=%d", a.compare)
}

// Enabled returns whether depth testing is enabled.
//
// Returns:
//   - bool: true if depth testing is enabled
func (a DepthTestAttrib) Enabled() bool { return a.enabled }

// Compare returns the depth comparison function.
//
// Returns:
//   - wgpu.CompareFunction: the comparison function
func (a DepthTestAttrib) Compare() wgpu.CompareFunction { return a.compare }

// DepthBiasAttrib controls the constant and slope-scaled depth bias applied
// during rasterization. Shadow passes use this to reduce acne on lit surfaces.
type DepthBiasAttrib struct {
	bias       int32
	slopeScale float32
}

// NewDepthBiasAttrib creates a depth bias attribute.
//
// Parameters:
//   - bias: the constant depth bias in depth buffer units
//   - slopeScale: the bias scale applied proportionally to the polygon slope
//
// Returns:
//   - DepthBiasAttrib: the new attribute
func NewDepthBiasAttrib(bias int32, slopeScale float32) DepthBiasAttrib {
	return DepthBiasAttrib{bias: bias, slopeScale: slopeScale}
}

func (a DepthBiasAttrib) Kind() AttribKind { return AttribKindDepthBias }

func (a DepthBiasAttrib) Key() string {
	return fmt.Sprintf("depth_bias=%d:%g", a.bias, a.slopeScale)
}

// Bias returns the constant depth bias.
//
// Returns:
//   - int32: the constant bias in depth buffer units
func (a DepthBiasAttrib) Bias() int32 { return a.bias }

// SlopeScale returns the slope-scaled depth bias factor.
//
// Returns:
//   - float32: the slope scale factor
func (a DepthBiasAttrib) SlopeScale() float32 { return a.slopeScale }

// CullFaceAttrib controls triangle face culling.
type CullFaceAttrib struct {
	mode wgpu.CullMode
}

// NewCullFaceAttrib creates a face culling attribute.
//
// Parameters:
//   - mode: the cull mode, e.g. wgpu.CullModeBack or wgpu.CullModeNone
//
// Returns:
//   - CullFaceAttrib: the new attribute
func NewCullFaceAttrib(mode wgpu.CullMode) CullFaceAttrib {
	return CullFaceAttrib{mode: mode}
}

func (a CullFaceAttrib) Kind() AttribKind { return AttribKindCullFace }

func (a CullFaceAttrib) Key() string {
	return fmt.Sprintf("cull_face=%d", a.mode)
}

// Mode returns the cull mode.
//
// Returns:
//   - wgpu.CullMode: the cull mode
func (a CullFaceAttrib) Mode() wgpu.CullMode { return a.mode }

// BlendAttrib controls color blending. When enabled with a nil blend state the
// pipeline's default alpha blending configuration is used.
type BlendAttrib struct {
	enabled bool
	state   *wgpu.BlendState
}

// NewBlendAttrib creates a blending attribute.
//
// Parameters:
//   - enabled: true to enable blending
//   - blendState: the blend configuration, or nil to use the pipeline default
//
// Returns:
//   - BlendAttrib: the new attribute
func NewBlendAttrib(enabled bool, blendState *wgpu.BlendState) BlendAttrib {
	return BlendAttrib{enabled: enabled, state: blendState}
}

func (a BlendAttrib) Kind() AttribKind { return AttribKindBlend }

func (a BlendAttrib) Key() string {
	if !a.enabled {
		return "blend=off"
	}
	if a.state == nil {
		return "blend=default"
	}
	return fmt.Sprintf("blend=%d.%d.%d/%d.%d.%d",
		a.state.Color.SrcFactor, a.state.Color.DstFactor, a.state.Color.Operation,
		a.state.Alpha.SrcFactor, a.state.Alpha.DstFactor, a.state.Alpha.Operation)
}

// Enabled returns whether blending is enabled.
//
// Returns:
//   - bool: true if blending is enabled
func (a BlendAttrib) Enabled() bool { return a.enabled }

// BlendState returns the blend configuration.
//
// Returns:
//   - *wgpu.BlendState: the blend configuration, or nil for the pipeline default
func (a BlendAttrib) BlendState() *wgpu.BlendState { return a.state }
