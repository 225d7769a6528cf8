package pipeline

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/prism-go/engine/renderer/state"
)

// cache is the implementation of the Cache interface. Pipelines are keyed by the
// canonical key of the render state they were built from, so states with identical
// content share one pipeline configuration regardless of how they were composed.
type cache struct {
	mu        *sync.RWMutex
	pipelines map[string]Pipeline

	// baseOptions are applied to every pipeline the cache builds, before the
	// render state mapping, so state attributes win over cache-wide defaults.
	baseOptions []PipelineBuilderOption

	// warmUpPool manages a bounded set of reusable goroutines for WarmUp. Workers
	// persist across warm-up rounds, avoiding per-round goroutine spawn/teardown overhead.
	warmUpPool    worker.DynamicWorkerPool
	warmUpWorkers int // stored so we can log/inspect the configured count
}

// Cache builds and retains pipeline configurations for composed render states.
// Identical states (by canonical key) resolve to the same Pipeline, so per-pass
// override states registered across many cameras cost one configuration each.
type Cache interface {
	// Get returns the pipeline configuration for the given render state, building and
	// caching one on first use. The pipeline type is inferred from the state's shader
	// attribute: compute shaders produce compute pipelines, everything else produces
	// render pipelines.
	//
	// Parameters:
	//   - rs: the render state to resolve; nil returns nil
	//
	// Returns:
	//   - Pipeline: the cached or newly built pipeline for the state
	Get(rs *state.RenderState) Pipeline

	// Lookup retrieves a cached pipeline by its state key without building anything.
	//
	// Parameters:
	//   - key: the canonical state key, as produced by RenderState.Key()
	//
	// Returns:
	//   - Pipeline: the cached pipeline, or nil if absent
	//   - bool: true if the key was present in the cache
	Lookup(key string) (Pipeline, bool)

	// WarmUp builds pipeline configurations for all given states concurrently on the
	// cache's worker pool and blocks until every build finishes. States already cached
	// are skipped.
	//
	// Parameters:
	//   - states: the render states to prebuild; nil entries are ignored
	//
	// Returns:
	//   - int: the number of pipelines newly built during this warm-up
	WarmUp(states []*state.RenderState) int

	// Len returns the number of cached pipelines.
	//
	// Returns:
	//   - int: the cache size
	Len() int

	// Clear removes all cached pipelines.
	Clear()
}

var _ Cache = &cache{}

// NewCache creates a new pipeline cache.
//
// Parameters:
//   - opts: a variadic list of CacheBuilderOption functions to configure the cache
//
// Returns:
//   - Cache: a new Cache instance
func NewCache(opts ...CacheBuilderOption) Cache {
	c := &cache{
		mu:            &sync.RWMutex{},
		pipelines:     make(map[string]Pipeline),
		warmUpWorkers: max(runtime.NumCPU()-1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Initialize the pool after options so WithWarmUpWorkers can override the default.
	// Queue size of 256 accommodates typical pass-state counts with headroom.
	c.warmUpPool = worker.NewDynamicWorkerPool(c.warmUpWorkers, 256, 1*time.Second)

	return c
}

func (c *cache) Get(rs *state.RenderState) Pipeline {
	if rs == nil {
		return nil
	}
	key := rs.Key()

	c.mu.RLock()
	p, ok := c.pipelines[key]
	c.mu.RUnlock()
	if ok {
		return p
	}

	p = c.build(key, rs)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.pipelines[key]; ok {
		// A concurrent builder won the race; keep its pipeline.
		return existing
	}
	c.pipelines[key] = p
	return p
}

func (c *cache) Lookup(key string) (Pipeline, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.pipelines[key]
	return p, ok
}

func (c *cache) WarmUp(states []*state.RenderState) int {
	before := c.Len()

	// Fan the builds out to the pool. Workers are reused across warm-up rounds; a
	// WaitGroup provides the completion barrier since pool.Wait() blocks until
	// workers idle-exit.
	var wg sync.WaitGroup
	taskID := 0
	for _, rs := range states {
		if rs == nil {
			continue
		}

		wg.Add(1)
		rsCap := rs // capture for closure
		id := taskID
		taskID++
		c.warmUpPool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				c.Get(rsCap)
				return nil, nil
			},
		})
	}
	wg.Wait()

	return c.Len() - before
}

func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pipelines)
}

func (c *cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.pipelines)
}

// build assembles a pipeline from a render state. Depth-only pass states carry no
// fragment shader, which Descriptor handles by omitting the fragment stage.
func (c *cache) build(key string, rs *state.RenderState) Pipeline {
	pipelineType := PipelineTypeRender
	if attr, ok := rs.Attrib(state.AttribKindShader); ok {
		if sa, ok := attr.(state.ShaderAttrib); ok && sa.Shader().ShaderType() == shader.ShaderTypeCompute {
			pipelineType = PipelineTypeCompute
		}
	}

	opts := make([]PipelineBuilderOption, 0, len(c.baseOptions)+1)
	opts = append(opts, c.baseOptions...)
	opts = append(opts, WithRenderState(rs))
	return NewPipeline(key, pipelineType, opts...)
}
