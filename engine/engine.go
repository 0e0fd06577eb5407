package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/devotobrendo/GrassSystem-sub001/engine/camera"
	"github.com/devotobrendo/GrassSystem-sub001/engine/profiler"
	"github.com/devotobrendo/GrassSystem-sub001/engine/renderer"
	"github.com/devotobrendo/GrassSystem-sub001/engine/window"
)

// View is one renderable layer in the frame loop. The grass system satisfies
// this; any other GPU-driven layer can join the loop by implementing it.
type View interface {
	// PrepareCompute stages the layer's per-frame uniforms and encodes its
	// compute dispatches.
	PrepareCompute(deltaTime float32) error

	// PrepareShadows runs the layer's depth-only shadow pass, if any.
	PrepareShadows() error

	// Draw encodes the layer's draw calls inside the current render pass.
	Draw() error
}

// engine implements the Engine interface.
// Coordinates the simulation tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window
	r      renderer.Renderer
	cam    camera.Camera

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	views map[int]View

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine hosts the frame loop: it polls the window, runs the fixed-rate
// simulation tick, and drives every registered View through the compute,
// shadow, and render phases each frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Profiler returns the engine's profiler so callers can register gauges.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler instance
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the simulation tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each simulation tick.
	// Use this for input processing, interactor movement, and replanting.
	//
	// Parameters:
	//   - callback: called at the configured tick rate with the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers a function called once per render frame,
	// after all views have drawn.
	//
	// Parameters:
	//   - callback: called each render frame with the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the render loop at the given frame rate.
	// Pass 0 to uncap (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddView registers a view at the given z-index key. Views run in
	// ascending key order within each frame phase.
	//
	// Parameters:
	//   - key: the z-index determining phase order (lower runs first)
	//   - v: the View to register
	AddView(key int, v View)

	// RemoveView removes the view at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the view to remove
	RemoveView(key int)

	// Run starts the main engine loop (blocks until the window closes).
	Run()

	// Quit signals all engine goroutines to stop. Safe to call more than
	// once; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		views:           make(map[int]View),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.r != nil {
				e.r.Resize(width, height)
			}
			if e.cam != nil && height > 0 {
				e.cam.SetAspect(float32(width) / float32(height))
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	e.handle()
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to stop all goroutines. sync.Once keeps
// repeated calls from closing the channel twice.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick, render, and quit goroutines.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleTick()
	go e.handleRender()
	go e.handleQuit()
}

// handleTick runs the fixed-rate simulation loop in its own goroutine. Fires
// the tick callback and listens for dynamic rate changes via tickRateChannel.
// Exits when the quit channel is closed.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the render loop in its own goroutine. Each frame walks
// the views in ascending z-index order through three phases: compute
// dispatches, shadow passes, then the draw calls inside a single render pass.
// The compute and draw submissions share one queue, so submission order is
// the only barrier the culling results need.
// Recovers from panics to avoid crashing the process and signals quit.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			keys := make([]int, 0, len(e.views))
			for k := range e.views {
				keys = append(keys, k)
			}
			sort.Ints(keys)

			// Phase 1 — Compute: every view encodes and submits its culling
			// dispatches before any draw is encoded.
			for _, k := range keys {
				if err := e.views[k].PrepareCompute(dt); err != nil {
					log.Printf("view %d compute: %v", k, err)
				}
			}

			// Phase 2 — Shadows: depth-only passes over the culled instances.
			for _, k := range keys {
				if err := e.views[k].PrepareShadows(); err != nil {
					log.Printf("view %d shadows: %v", k, err)
				}
			}

			// Phase 3 — Render: all views draw into a single render pass.
			if e.r != nil && len(keys) > 0 {
				if err := e.r.BeginFrame(); err == nil {
					for _, k := range keys {
						if err := e.views[k].Draw(); err != nil {
							log.Printf("view %d draw: %v", k, err)
						}
					}
					e.r.EndFrame()
					e.r.Present()
				}
			}

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the simulation tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Second / time.Duration(fps)

	if e.running {
		// Non-blocking send; if an update is already pending, replace it.
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) AddView(key int, v View) {
	e.views[key] = v
}

func (e *engine) RemoveView(key int) {
	delete(e.views, key)
}
