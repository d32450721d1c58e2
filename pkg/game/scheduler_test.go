package game

import (
	"testing"

	"github.com/decker502/skyfx/pkg/surface"
)

// TestSchedulerTicks 启动时立即跑第一帧，之后按帧间隔触发
func TestSchedulerTicks(t *testing.T) {
	canvas := surface.NewMemoryCanvas(800, 600)
	ticks := 0
	fs := NewFrameScheduler(canvas, 33, func() { ticks++ })

	fs.Start()
	if ticks != 1 {
		t.Fatalf("ticks right after Start = %d, want 1 (immediate first frame)", ticks)
	}
	canvas.Advance(330)
	if ticks != 11 {
		t.Errorf("ticks = %d, want 11", ticks)
	}
}

// TestSchedulerSingleInFlight 重复 Start 不产生双循环
func TestSchedulerSingleInFlight(t *testing.T) {
	canvas := surface.NewMemoryCanvas(800, 600)
	ticks := 0
	fs := NewFrameScheduler(canvas, 33, func() { ticks++ })

	fs.Start()
	fs.Start()
	fs.Start()
	if canvas.PendingTimers() != 1 {
		t.Fatalf("PendingTimers = %d, want 1", canvas.PendingTimers())
	}

	canvas.Advance(100)
	if ticks != 4 {
		t.Errorf("ticks = %d, want 4 (immediate + 33/66/99)", ticks)
	}
}

// TestSchedulerStop Stop 取消在途定时器，之后不再触发
func TestSchedulerStop(t *testing.T) {
	canvas := surface.NewMemoryCanvas(800, 600)
	ticks := 0
	fs := NewFrameScheduler(canvas, 33, func() { ticks++ })

	fs.Start()
	canvas.Advance(100)
	fs.Stop()
	after := ticks

	canvas.Advance(1000)
	if ticks != after {
		t.Errorf("ticks advanced after Stop: %d -> %d", after, ticks)
	}
	if fs.Running() {
		t.Error("Running() = true after Stop")
	}

	// 重复 Stop 安全
	fs.Stop()
}

// TestSchedulerRestart Stop 后可以重新 Start
func TestSchedulerRestart(t *testing.T) {
	canvas := surface.NewMemoryCanvas(800, 600)
	ticks := 0
	fs := NewFrameScheduler(canvas, 33, func() { ticks++ })

	fs.Start()
	canvas.Advance(66)
	fs.Stop()
	fs.Start()
	canvas.Advance(66)

	// 1 (立即) + 2 (33/66) + 1 (重启立即) + 2 (99/132)
	if ticks != 6 {
		t.Errorf("ticks = %d, want 6", ticks)
	}
}

// TestSchedulerStopInsideStep step 回调里 Stop 不再续订下一帧
func TestSchedulerStopInsideStep(t *testing.T) {
	canvas := surface.NewMemoryCanvas(800, 600)
	ticks := 0
	var fs *FrameScheduler
	fs = NewFrameScheduler(canvas, 33, func() {
		ticks++
		fs.Stop()
	})

	fs.Start()
	canvas.Advance(1000)
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
	if canvas.PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d, want 0", canvas.PendingTimers())
	}
}
