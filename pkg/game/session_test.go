package game

import (
	"testing"

	"github.com/decker502/skyfx/pkg/config"
	"github.com/decker502/skyfx/pkg/surface"
	"github.com/decker502/skyfx/pkg/weather"
)

func newTestSession() (*AnimationSession, *surface.MemoryCanvas) {
	canvas := surface.NewMemoryCanvas(800, 600)
	return NewAnimationSession(canvas, config.Default()), canvas
}

// TestSessionStartClear 端到端：clear 启动后正好 2 个点缀云
func TestSessionStartClear(t *testing.T) {
	s, _ := newTestSession()
	s.Start("clear sky")

	if !s.IsRunning() {
		t.Error("IsRunning = false after Start")
	}
	if got := s.CurrentCategory(); got != weather.Clear {
		t.Errorf("CurrentCategory = %s, want clear", got)
	}
	if got := s.ParticleCount(); got != 2 {
		t.Errorf("ParticleCount = %d, want 2", got)
	}
}

// TestSessionStartStorm 端到端：storm 启动后 80 雨滴 + 3 乌云 = 83
func TestSessionStartStorm(t *testing.T) {
	s, _ := newTestSession()
	s.Start("thunderstorm approaching")

	if got := s.CurrentCategory(); got != weather.Storm {
		t.Errorf("CurrentCategory = %s, want storm", got)
	}
	if got := s.ParticleCount(); got != 83 {
		t.Errorf("ParticleCount = %d, want 83", got)
	}
}

// TestSessionFrameLoop 时钟推进驱动帧循环，背景层出现
func TestSessionFrameLoop(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("clear")

	canvas.Advance(334) // 启动立即 1 帧 + 33ms 间隔 10 帧
	if got := s.FrameCount(); got != 11 {
		t.Errorf("FrameCount = %d, want 11", got)
	}
	// 背景矩形 + 太阳圆盘 + 光线
	if got := canvas.CountTag(surface.TagBackground); got < 2 {
		t.Errorf("background shapes = %d, want >= 2", got)
	}
	if got := canvas.CountTag(surface.TagParticle); got == 0 {
		t.Error("no particle shapes after frame loop")
	}
}

// TestSessionStopIdempotent Stop 幂等且清除全部绘制
func TestSessionStopIdempotent(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("light rain")
	canvas.Advance(100)

	s.Stop()
	if s.IsRunning() {
		t.Error("IsRunning = true after Stop")
	}
	if got := canvas.ShapeCount(); got != 0 {
		t.Errorf("ShapeCount after Stop = %d, want 0", got)
	}
	if got := s.ParticleCount(); got != 0 {
		t.Errorf("ParticleCount after Stop = %d, want 0", got)
	}
	// 停止后回到初始状态：类别重置为 clear
	if got := s.CurrentCategory(); got != weather.Clear {
		t.Errorf("CurrentCategory after Stop = %s, want clear", got)
	}

	// 重复 Stop 什么都不做
	s.Stop()

	// 停止后时钟推进不再产生帧
	before := s.FrameCount()
	canvas.Advance(1000)
	if got := s.FrameCount(); got != before {
		t.Errorf("FrameCount advanced after Stop: %d -> %d", before, got)
	}
}

// TestSessionStopWhenNeverStarted 从未启动的会话 Stop 安全
func TestSessionStopWhenNeverStarted(t *testing.T) {
	s, _ := newTestSession()
	s.Stop() // 不 panic 即可
	if s.IsRunning() {
		t.Error("IsRunning = true, want false")
	}
}

// TestSessionSwitchCategory 运行中切换类别立即重建粒子集，循环不中断
func TestSessionSwitchCategory(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("clear")
	canvas.Advance(100)

	s.SetCategory(weather.Rain)
	if got := s.ParticleCount(); got != 80 {
		t.Errorf("ParticleCount after switch = %d, want 80", got)
	}
	if !s.IsRunning() {
		t.Error("loop stopped by category switch")
	}

	before := s.FrameCount()
	canvas.Advance(100)
	if s.FrameCount() == before {
		t.Error("loop not advancing after category switch")
	}
}

// TestSessionSetDescription 描述映射切换类别
func TestSessionSetDescription(t *testing.T) {
	s, _ := newTestSession()
	s.Start("clear")

	s.SetDescription("heavy snow")
	if got := s.CurrentCategory(); got != weather.Snow {
		t.Errorf("CurrentCategory = %s, want snow", got)
	}
	if got := s.ParticleCount(); got != 66 {
		t.Errorf("ParticleCount = %d, want 66", got)
	}
}

// TestSessionInvalidCategory 未知类别被忽略，状态不变
func TestSessionInvalidCategory(t *testing.T) {
	s, _ := newTestSession()
	s.Start("light rain")

	s.SetCategory(weather.Category("tornado"))
	if got := s.CurrentCategory(); got != weather.Rain {
		t.Errorf("CurrentCategory = %s, want rain (unchanged)", got)
	}
	if got := s.ParticleCount(); got != 80 {
		t.Errorf("ParticleCount = %d, want 80 (unchanged)", got)
	}
}

// TestSessionResizeConverges 窗口变宽后粒子数按每帧限额逐步收敛到新目标
// 800→1200 时 rain 目标从 80 升到 100，每帧最多补 5 个。
func TestSessionResizeConverges(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("light rain")
	if got := s.ParticleCount(); got != 80 {
		t.Fatalf("ParticleCount = %d, want 80", got)
	}

	canvas.Resize(1200, 900)
	// 尺寸变化本身不重建粒子集
	if got := s.ParticleCount(); got != 80 {
		t.Errorf("ParticleCount right after resize = %d, want 80", got)
	}

	// (100-80)/5 = 4 帧收敛
	canvas.Advance(4 * 34)
	if got := s.ParticleCount(); got != 100 {
		t.Errorf("ParticleCount after convergence = %d, want 100", got)
	}
}

// TestSessionDegenerateResize 退化尺寸不崩溃，循环继续
func TestSessionDegenerateResize(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("mist")

	canvas.Resize(0, -10)
	canvas.Advance(200) // 不 panic 即可
	if !s.IsRunning() {
		t.Error("loop stopped after degenerate resize")
	}
}

// TestSessionSurvivesRejectedFrames 宿主整帧拒绝绘制：循环照常续订
func TestSessionSurvivesRejectedFrames(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("snow")

	canvas.RejectAll = true
	canvas.Advance(500)
	if !s.IsRunning() {
		t.Error("loop stopped during rejected frames")
	}

	// 宿主恢复后画面回来
	canvas.RejectAll = false
	canvas.Advance(500)
	if got := canvas.CountTag(surface.TagParticle); got == 0 {
		t.Error("no particle shapes after host recovery")
	}
}

// TestSessionRedundantStart 同类别重复 Start 是空操作，不重建粒子集
// 粒子形状和数量都保持原样。
func TestSessionRedundantStart(t *testing.T) {
	s, canvas := newTestSession()
	s.Start("light rain")
	canvas.Advance(100)

	shapes := canvas.CountTag(surface.TagParticle)
	if shapes == 0 {
		t.Fatal("no particle shapes before redundant Start")
	}

	s.Start("light rain")
	if got := canvas.CountTag(surface.TagParticle); got != shapes {
		t.Errorf("particle shapes after redundant Start = %d, want unchanged %d", got, shapes)
	}
	if got := s.ParticleCount(); got != 80 {
		t.Errorf("ParticleCount after redundant Start = %d, want 80", got)
	}
	if !s.IsRunning() {
		t.Error("IsRunning = false after redundant Start")
	}
}

// TestSessionRestartSwitchesCategory 运行中再次 Start 等价于切换类别
func TestSessionRestartSwitchesCategory(t *testing.T) {
	s, _ := newTestSession()
	s.Start("clear")
	s.Start("blizzard conditions")

	if got := s.CurrentCategory(); got != weather.Snow {
		t.Errorf("CurrentCategory = %s, want snow", got)
	}
	if got := s.ParticleCount(); got != 66 {
		t.Errorf("ParticleCount = %d, want 66", got)
	}
}

// TestSessionNilConfig nil 配置回退到默认调参表
func TestSessionNilConfig(t *testing.T) {
	canvas := surface.NewMemoryCanvas(800, 600)
	s := NewAnimationSession(canvas, nil)
	s.Start("clear")
	if got := s.ParticleCount(); got != 2 {
		t.Errorf("ParticleCount = %d, want 2", got)
	}
}
