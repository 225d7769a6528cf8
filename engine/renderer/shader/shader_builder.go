package shader

import (
	"fmt"
	"os"
)

type ShaderBuilderOption func(*shader)

// WithSource sets the WGSL source code for the shader directly from a string.
// The entry point, vertex buffer layouts, and workgroup size are parsed immediately.
//
// Parameters:
//   - source: the WGSL source code
//
// Returns:
//   - ShaderBuilderOption: a function that sets the shader's source
func WithSource(source string) ShaderBuilderOption {
	return func(s *shader) {
		s.parseSource(source)
	}
}

// WithSourceFromPath reads the WGSL source code for the shader from a file.
// The entry point, vertex buffer layouts, and workgroup size are parsed immediately.
//
// Parameters:
//   - path: the file path to read WGSL source from
//
// Returns:
//   - ShaderBuilderOption: a function that reads and sets the shader's source
func WithSourceFromPath(path string) ShaderBuilderOption {
	return func(s *shader) {
		data, err := os.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("shader: failed to read source file %q: %v", path, err))
		}
		s.parseSource(string(data))
	}
}

// WithEntryPoint overrides the entry point name parsed from the source.
// Useful for sources containing multiple entry points of the same stage.
//
// Parameters:
//   - name: the entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the shader's entry point
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}
