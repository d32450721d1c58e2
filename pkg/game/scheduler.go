// Package game assembles the animation engine: the session facade the host
// embeds, the cooperative frame scheduler, and persisted engine settings.
package game

import "github.com/decker502/skyfx/pkg/surface"

// FrameScheduler drives the animation loop through the host surface's
// timer, one armed callback at a time.
//
// 协作式单线程循环：每帧结束时才续订下一帧，结构上保证任意时刻最多
// 只有一个在途定时器 —— 不存在并发 tick，也就不需要锁。
type FrameScheduler struct {
	canvas  surface.Canvas
	delayMs int
	step    func()

	running bool
	handle  surface.TimerHandle
}

// NewFrameScheduler creates a scheduler that invokes step every delayMs
// milliseconds while running.
func NewFrameScheduler(canvas surface.Canvas, delayMs int, step func()) *FrameScheduler {
	return &FrameScheduler{canvas: canvas, delayMs: delayMs, step: step}
}

// Start runs the first frame immediately, then arms the timer for the
// next. Calling Start on a running scheduler is a no-op（不会出现双循环）.
func (fs *FrameScheduler) Start() {
	if fs.running {
		return
	}
	fs.running = true
	fs.tick()
}

// Stop cancels the pending frame. Idempotent.
func (fs *FrameScheduler) Stop() {
	if !fs.running {
		return
	}
	fs.running = false
	fs.canvas.Cancel(fs.handle)
	fs.handle = 0
}

// Running reports whether the loop is armed.
func (fs *FrameScheduler) Running() bool {
	return fs.running
}

// SetDelay changes the frame interval, applied from the next frame on.
func (fs *FrameScheduler) SetDelay(delayMs int) {
	fs.delayMs = delayMs
}

func (fs *FrameScheduler) arm() {
	fs.handle = fs.canvas.Schedule(fs.delayMs, fs.tick)
}

func (fs *FrameScheduler) tick() {
	// Stop 可能在定时器已触发但回调尚未执行时发生
	if !fs.running {
		return
	}
	fs.step()
	if fs.running {
		fs.arm()
	}
}
