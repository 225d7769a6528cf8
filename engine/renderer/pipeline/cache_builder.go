package pipeline

// CacheBuilderOption is a functional option used to configure a Cache during construction.
type CacheBuilderOption func(*cache)

// WithWarmUpWorkers sets the number of worker goroutines used by WarmUp.
// Defaults to runtime.NumCPU()-1.
// Higher values may improve throughput when warming many pass states at once;
// lower values reduce scheduling overhead for small state sets.
//
// Parameters:
//   - n: the number of warm-up workers (minimum 1)
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithWarmUpWorkers(n int) CacheBuilderOption {
	return func(c *cache) {
		if n < 1 {
			n = 1
		}
		c.warmUpWorkers = n
	}
}

// WithBaseOptions sets pipeline options applied to every pipeline the cache builds.
// Base options run before the render state mapping, so attributes carried by the
// state override them while unspecified fields keep the configured defaults. Useful
// for cache-wide conventions such as cull mode or topology.
//
// Parameters:
//   - opts: the pipeline options to apply to every built pipeline
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithBaseOptions(opts ...PipelineBuilderOption) CacheBuilderOption {
	return func(c *cache) {
		c.baseOptions = append(c.baseOptions, opts...)
	}
}
