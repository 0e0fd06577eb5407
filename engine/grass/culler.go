package grass

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/chewxy/math32"
)

// CullWorkgroupSize is the lane count per compute workgroup. The per-frame
// dispatch covers ceil(N / CullWorkgroupSize) workgroups, and the CPU
// reference culler chunks work the same way.
const CullWorkgroupSize = 128

// DistanceScale computes the LOD fade factor for a blade at the given camera
// distance: 1.0 at or inside minFade, 0.0 at or beyond maxDraw, linear in
// between. Fade only shrinks the blade at the vertex stage; it is never a
// culling criterion by itself.
//
// Parameters:
//   - distance: the Euclidean distance from the blade to the camera
//   - minFade: the distance where fade begins
//   - maxDraw: the hard draw-distance cutoff
//
// Returns:
//   - float32: the fade factor in [0, 1]
func DistanceScale(distance, minFade, maxDraw float32) float32 {
	if distance <= minFade {
		return 1
	}
	if distance >= maxDraw {
		return 0
	}
	return 1 - (distance-minFade)/(maxDraw-minFade)
}

// InstanceVisible applies the kernel's per-lane visibility test on the host:
// the draw-distance cutoff first, then the six signed-distance plane tests.
//
// Parameters:
//   - instance: the blade to test
//   - u: the cull uniform carrying camera position, planes, and distances
//
// Returns:
//   - bool: true when the blade survives culling
//   - float32: the camera distance, valid regardless of survival
func InstanceVisible(instance *GPUBladeInstance, u *GPUCullUniform) (bool, float32) {
	dx := instance.Position[0] - u.CameraPosition[0]
	dy := instance.Position[1] - u.CameraPosition[1]
	dz := instance.Position[2] - u.CameraPosition[2]
	distance := math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if distance > u.MaxDrawDistance {
		return false, distance
	}

	for i := range u.Planes {
		p := &u.Planes[i]
		signed := p.Normal[0]*instance.Position[0] +
			p.Normal[1]*instance.Position[1] +
			p.Normal[2]*instance.Position[2] + p.Distance
		if signed < 0 {
			return false, distance
		}
	}
	return true, distance
}

// CullVisible runs the reference culler over the full instance list, fanning
// CullWorkgroupSize-lane chunks across the worker pool. It mirrors the WGSL
// kernel in assets/grass_cull.wgsl exactly, for tests, diagnostics, and
// authoring previews. Unlike the kernel's atomic append, chunk results are
// concatenated in source order, which is stable for assertions.
//
// Parameters:
//   - pool: the worker pool for the parallel fan-out; nil runs serially
//   - instances: the source instance list
//   - u: the cull uniform for this frame
//
// Returns:
//   - []GPUVisibleInstance: the surviving instances with distance scale set
func CullVisible(pool worker.DynamicWorkerPool, instances []GPUBladeInstance, u *GPUCullUniform) []GPUVisibleInstance {
	if len(instances) == 0 {
		return nil
	}

	chunkCount := (len(instances) + CullWorkgroupSize - 1) / CullWorkgroupSize
	results := make([][]GPUVisibleInstance, chunkCount)

	cullChunk := func(chunk int) {
		start := chunk * CullWorkgroupSize
		end := min(start+CullWorkgroupSize, len(instances))
		var survivors []GPUVisibleInstance
		for i := start; i < end; i++ {
			visible, distance := InstanceVisible(&instances[i], u)
			if !visible {
				continue
			}
			survivors = append(survivors, GPUVisibleInstance{
				Position:      instances[i].Position,
				Normal:        instances[i].Normal,
				WidthScale:    instances[i].WidthScale,
				HeightScale:   instances[i].HeightScale,
				Color:         instances[i].Color,
				PatternMask:   instances[i].PatternMask,
				DistanceScale: DistanceScale(distance, u.MinFadeDistance, u.MaxDrawDistance),
			})
		}
		results[chunk] = survivors
	}

	if pool == nil {
		for chunk := 0; chunk < chunkCount; chunk++ {
			cullChunk(chunk)
		}
	} else {
		// Per-frame barrier via WaitGroup; pool.Wait() blocks until workers
		// idle-exit, which is unsuitable at frame rate.
		var wg sync.WaitGroup
		for chunk := 0; chunk < chunkCount; chunk++ {
			wg.Add(1)
			c := chunk // capture for closure
			pool.SubmitTask(worker.Task{
				ID: c,
				Do: func() (any, error) {
					defer wg.Done()
					cullChunk(c)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	visible := make([]GPUVisibleInstance, 0, total)
	for _, r := range results {
		visible = append(visible, r...)
	}
	return visible
}
