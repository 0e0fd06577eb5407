package engine

import (
	"time"

	"github.com/devotobrendo/GrassSystem-sub001/engine/camera"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer"
	"github.com/devotobrendo/GrassSystem-sub001/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the simulation tick rate in ticks per second.
// Values <= 0 are treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets a pre-configured window for the engine to poll.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the engine drives the frame lifecycle on.
// Resize events are forwarded to it.
//
// Parameters:
//   - r: the renderer owning the surface and frame encoders
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.r = r
	}
}

// WithCamera sets the camera whose aspect ratio tracks window resizes.
//
// Parameters:
//   - cam: the camera to keep in sync with the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.cam = cam
	}
}

// WithView registers a view at the given z-index key during construction.
// Views run in ascending key order within each frame phase.
//
// Parameters:
//   - key: the z-index determining phase order (lower runs first)
//   - v: the View to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithView(key int, v View) EngineBuilderOption {
	return func(e *engine) {
		e.views[key] = v
	}
}

// WithRenderFrameLimit caps the render loop at the given frame rate.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
