package profiler

import (
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Gauge is a sampled counter read once per report, such as the number of
// blades that survived culling last frame.
type Gauge func() uint32

// Profiler tracks frame rate, memory statistics, and registered gauges, and
// writes a one-line report to the log at a fixed interval.
type Profiler struct {
	frameCount     int
	lastReport     time.Time
	reportInterval time.Duration

	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	gauges map[string]Gauge
}

// NewProfiler creates a Profiler reporting once per second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastReport:     time.Now(),
		reportInterval: time.Second,
		gauges:         make(map[string]Gauge),
	}
}

// SetGauge registers a named gauge sampled at every report. Registering the
// same name again replaces the gauge; a nil gauge removes it.
//
// Parameters:
//   - name: the label printed in the report line
//   - g: the sampling function, called once per report
func (p *Profiler) SetGauge(name string, g Gauge) {
	if g == nil {
		delete(p.gauges, name)
		return
	}
	p.gauges[name] = g
}

// Tick must be called once per render frame. When the report interval has
// elapsed it logs FPS, heap usage, allocation rate, GC pauses, and every
// registered gauge.
//
// Returns:
//   - bool: true if a report was logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastReport)
	if elapsed < p.reportInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	if gcCount > 0 {
		start := p.lastGCCount
		if gcCount-start > 256 {
			start = gcCount - 256
		}
		for i := start; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	var sb strings.Builder
	names := make([]string, 0, len(p.gauges))
	for name := range p.gauges {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(" | ")
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(strconv.FormatUint(uint64(p.gauges[name]()), 10))
	}

	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max pause: %d µs)%s",
		fps, allocMB, allocRateMB, gcCount, maxPauseUs, sb.String())

	p.frameCount = 0
	p.lastReport = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
