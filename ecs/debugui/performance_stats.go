package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flappybird/ecs"
)

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	count   int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Push records a frame that took dt seconds.
func (h *FrameHistory) Push(dt float32) {
	h.samples[h.next] = dt * 1000.0
	h.next = (h.next + 1) % len(h.samples)
	h.count = min(h.count+1, len(h.samples))
}

// Average returns the mean of the recorded frame times, 0 when empty.
func (h *FrameHistory) Average() float32 {
	if h.count == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples[:h.count] {
		total += ms
	}
	return total / float32(h.count)
}

// Samples returns the recorded frame times, oldest first.
func (h *FrameHistory) Samples() []float32 {
	if h.count < len(h.samples) {
		return append([]float32(nil), h.samples[:h.count]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}

func (in *Inspector) renderPerformance() {
	if !imgui.TreeNodeStr("Performance") {
		return
	}

	in.frames.Push(in.timer.GetDeltaTime())
	avg := in.frames.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}
	if samples := in.frames.Samples(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	stats := in.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Resources: %d", stats.SingletonCount))

	if in.scheduler != nil {
		imgui.Separator()
		renderSystemTable(in.scheduler.GetStats())
	}

	imgui.TreePop()
}

func renderSystemTable(stats *ecs.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("Systems", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Avg (ms)")
	imgui.TableHeadersRow()

	for _, sys := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.3f", float64(sys.AvgDuration.Microseconds())/1000.0))
	}
	imgui.EndTable()
}
