package game

import (
	"log"

	"github.com/decker502/skyfx/pkg/config"
	"github.com/decker502/skyfx/pkg/surface"
	"github.com/decker502/skyfx/pkg/systems"
	"github.com/decker502/skyfx/pkg/weather"
)

// AnimationSession is the facade the host embeds: one session owns one
// weather animation on one borrowed canvas.
//
// The session never creates or destroys the canvas — it only draws on it
// and removes what it drew (借用语义：画布归宿主所有).
//
// Everything runs on the host event loop thread via FrameScheduler; the
// session holds no locks and must not be touched from other goroutines.
type AnimationSession struct {
	canvas surface.Canvas
	cfg    *config.Config

	particles  *systems.ParticleSystem
	background *systems.BackgroundSystem
	sched      *FrameScheduler

	category   weather.Category
	running    bool
	frameCount uint64
}

// NewAnimationSession creates a stopped session over a borrowed canvas.
// The session subscribes to canvas resize events for its whole lifetime.
func NewAnimationSession(canvas surface.Canvas, cfg *config.Config) *AnimationSession {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &AnimationSession{
		canvas:     canvas,
		cfg:        cfg,
		particles:  systems.NewParticleSystem(canvas, cfg),
		background: systems.NewBackgroundSystem(canvas, cfg),
		category:   weather.Clear,
	}
	s.sched = NewFrameScheduler(canvas, cfg.FrameDelayMs(), s.tick)
	canvas.OnResize(s.UpdateSize)
	return s
}

// Start begins (or re-targets) the animation for a weather description.
// The description may be a category name or free text; unknown text falls
// back to clear. Start on a running session behaves like SetCategory:
// 同类别重复 Start 是空操作，不会重建粒子集。
func (s *AnimationSession) Start(description string) {
	cat := weather.Parse(description)
	if s.running {
		s.SetCategory(cat)
		return
	}
	s.category = cat
	s.background.Reset(cat)
	s.particles.InitializeFor(cat, s.canvas.Width(), s.canvas.Height())
	s.running = true
	s.sched.Start()
	log.Printf("[AnimationSession] 启动: 类别 %s", cat)
}

// Stop halts the loop and removes everything the session drew, returning
// the session to its just-constructed state (类别回到 clear).
// Idempotent: stopping a stopped session does nothing.
func (s *AnimationSession) Stop() {
	if !s.running {
		return
	}
	s.running = false
	s.sched.Stop()
	s.particles.Clear()
	s.canvas.DeleteByTag(surface.TagBackground)
	s.category = weather.Clear
	log.Printf("[AnimationSession] 停止 (共 %d 帧)", s.frameCount)
}

// SetCategory switches the animation to a category without stopping the
// loop. Invalid categories are ignored.
func (s *AnimationSession) SetCategory(cat weather.Category) {
	if !weather.Valid(cat) {
		log.Printf("[AnimationSession] 忽略未知类别 %q", cat)
		return
	}
	if cat == s.category && s.running {
		return
	}
	s.category = cat
	s.background.Reset(cat)
	s.particles.InitializeFor(cat, s.canvas.Width(), s.canvas.Height())
}

// SetDescription switches category by mapping a free-text description.
func (s *AnimationSession) SetDescription(description string) {
	s.SetCategory(weather.Parse(description))
}

// UpdateSize propagates new surface bounds to the live particle set.
// The population is NOT rebuilt — wrap logic simply follows the new
// bounds, and the per-tick top-up converges the count over time.
// 退化尺寸（≤0）由粒子系统钳制到下限。
func (s *AnimationSession) UpdateSize(w, h int) {
	s.particles.SetBounds(w, h)
}

// ParticleCount returns the current pool size.
func (s *AnimationSession) ParticleCount() int {
	return s.particles.Count()
}

// IsRunning reports whether the frame loop is active.
func (s *AnimationSession) IsRunning() bool {
	return s.running
}

// CurrentCategory returns the category being animated.
func (s *AnimationSession) CurrentCategory() weather.Category {
	return s.category
}

// FrameCount returns how many ticks have run since creation.
func (s *AnimationSession) FrameCount() uint64 {
	return s.frameCount
}

// tick renders one frame: backdrop first, then particles, then top-up.
//
// A panic inside a frame is caught and logged so a single bad frame
// degrades to a skipped repaint instead of killing the host loop;
// 调度器照常续订下一帧。
func (s *AnimationSession) tick() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[AnimationSession] 帧 %d panic 已拦截: %v", s.frameCount, r)
		}
	}()

	s.frameCount++
	w, h := s.particles.Bounds()
	s.background.Render(s.category, w, h)
	s.particles.Tick()
	s.particles.TopUp(s.cfg.PopulationTarget(s.category, w))
}
