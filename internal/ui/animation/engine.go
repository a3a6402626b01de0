package animation

import (
	"context"
	"math"
	"sync"
	"time"
)

// Engine drives the completion pulse. Only one pulse runs at a time.
type Engine struct {
	mu     sync.Mutex
	spec   PulseSpec
	apply  func(intensity float64)
	cancel context.CancelFunc
}

// New creates a pulse engine. apply receives intensities from 0 to 1 and back to 0.
func New(spec PulseSpec, apply func(intensity float64)) *Engine {
	if spec.Steps <= 0 {
		spec.Steps = 1
	}
	return &Engine{
		spec:  spec,
		apply: apply,
	}
}

// Spec returns the pulse timing.
func (engine *Engine) Spec() PulseSpec {
	return engine.spec
}

// Pulse restarts the animation. It returns immediately.
func (engine *Engine) Pulse(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.apply(0)
		step := engine.spec.stepDuration()
		for i := 1; i <= engine.spec.Steps; i++ {
			if !sleepWithContext(runCtx, step) {
				return
			}
			engine.apply(math.Sin(math.Pi * float64(i) / float64(engine.spec.Steps)))
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
