package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithRootName overrides the root node's default "render" name.
//
// Parameters:
//   - name: the root node name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRootName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.root.name = name
	}
}
