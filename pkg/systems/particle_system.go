// Package systems contains the behavior of the animation engine: the
// particle pool and the background/effects renderer. Systems operate on
// pure-data components and talk to the host only through surface.Canvas.
package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/skyfx/internal/tuning"
	"github.com/decker502/skyfx/pkg/components"
	"github.com/decker502/skyfx/pkg/config"
	"github.com/decker502/skyfx/pkg/ecs"
	"github.com/decker502/skyfx/pkg/surface"
	"github.com/decker502/skyfx/pkg/weather"
)

// stormCloudCount storm 类别固定携带的乌云数量
const stormCloudCount = 3

// ParticleSystem owns the live particle set for the current category and
// keeps its size within bounds.
//
// The pool has two cleanup layers: each variant recycles itself in place
// when it wraps off the visible area (update), and a secondary sweep
// removes particles that are inactive or drifted far off-screen (tick).
//
// 粒子池：变体自回收（wrap）是主路径，清扫（sweep）是兜底安全网。
type ParticleSystem struct {
	canvas surface.Canvas
	cfg    *config.Config
	arena  *ecs.Arena[components.Particle]

	category weather.Category
	width    int
	height   int
}

// NewParticleSystem creates an empty pool over a borrowed canvas.
func NewParticleSystem(canvas surface.Canvas, cfg *config.Config) *ParticleSystem {
	return &ParticleSystem{
		canvas: canvas,
		cfg:    cfg,
		arena:  ecs.NewArena[components.Particle](),
	}
}

// Count returns the number of particles currently in the pool.
func (ps *ParticleSystem) Count() int {
	return ps.arena.Len()
}

// Bounds returns the surface bounds the pool currently simulates against.
func (ps *ParticleSystem) Bounds() (w, h int) {
	return ps.width, ps.height
}

// Category returns the category the pool is populated for.
func (ps *ParticleSystem) Category() weather.Category {
	return ps.category
}

// SetBounds updates the simulation bounds every live particle wraps
// against, without repopulating, so a window resize produces no visible
// reset. 退化尺寸（≤0 或过小）钳制到配置下限。
func (ps *ParticleSystem) SetBounds(w, h int) {
	ps.width = clampDim(w, ps.cfg.MinSurfaceDim)
	ps.height = clampDim(h, ps.cfg.MinSurfaceDim)
}

func clampDim(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// InitializeFor clears the pool and spawns the initial batch for a
// category. The batch size follows the per-category population formula;
// individual placement is random.
func (ps *ParticleSystem) InitializeFor(cat weather.Category, w, h int) {
	ps.Clear()
	ps.category = cat
	ps.SetBounds(w, h)

	target := ps.cfg.PopulationTarget(cat, ps.width)
	for i := 0; i < target; i++ {
		ps.spawnOne()
	}
	log.Printf("[ParticleSystem] 初始化类别 %s: %d 个粒子 (surface %dx%d)", cat, ps.arena.Len(), ps.width, ps.height)
}

// Tick advances and redraws every active particle, then sweeps.
//
// Per-particle failure is isolated: a particle whose draw call is rejected
// is deactivated and left for the sweep. 单个粒子失败绝不中断整帧。
func (ps *ParticleSystem) Tick() {
	for _, id := range ps.arena.All() {
		p, ok := ps.arena.Get(id)
		if !ok || !p.Active {
			continue
		}
		ps.update(p)
		if err := ps.draw(p); err != nil {
			log.Printf("[ParticleSystem] 绘制 %s 失败, 标记失活: %v", p.Kind, err)
			p.Active = false
		}
	}
	ps.sweep()
}

// TopUp spawns missing particles toward target, rate-limited per tick so
// a category switch or window growth fills in without a visible pop.
func (ps *ParticleSystem) TopUp(target int) {
	if target > ps.cfg.MaxParticles {
		target = ps.cfg.MaxParticles
	}
	spawned := 0
	for ps.arena.Len() < target && spawned < ps.cfg.TopUpPerTick {
		ps.spawnOne()
		spawned++
	}
}

// Clear deletes every particle's drawing handles and empties the pool.
// Safe to call on an empty pool or with stale handles.
func (ps *ParticleSystem) Clear() {
	for _, id := range ps.arena.All() {
		if p, ok := ps.arena.Get(id); ok {
			ps.releaseHandles(p)
		}
	}
	// 兜底：按标签批量清除残余
	ps.canvas.DeleteByTag(surface.TagParticle)
	ps.arena.Clear()
}

// --- spawning -------------------------------------------------------------

// spawnOne creates one particle of the kind the current category is short
// of. storm 固定保持 3 朵乌云，其余名额全部给雨滴。
func (ps *ParticleSystem) spawnOne() {
	if ps.arena.Len() >= ps.cfg.MaxParticles {
		return
	}
	var p *components.Particle
	switch ps.category {
	case weather.Rain:
		p = ps.newRainDrop()
	case weather.Snow:
		p = ps.newSnowFlake()
	case weather.Storm:
		if ps.countKind(components.KindCloudPuff) < stormCloudCount {
			p = ps.newCloudPuff()
		} else {
			p = ps.newRainDrop()
		}
	case weather.Mist:
		p = ps.newFogBand()
	default: // cloudy / clear / sunny 都是点缀云
		p = ps.newCloudPuff()
	}
	ps.arena.Create(p)
}

func (ps *ParticleSystem) countKind(kind components.ParticleKind) int {
	n := 0
	for _, id := range ps.arena.All() {
		if p, ok := ps.arena.Get(id); ok && p.Kind == kind {
			n++
		}
	}
	return n
}

func (ps *ParticleSystem) newRainDrop() *components.Particle {
	return &components.Particle{
		Kind:      components.KindRainDrop,
		X:         rand.Float64() * float64(ps.width),
		Y:         rand.Float64() * float64(ps.height),
		Active:    true,
		Length:    ps.cfg.RainLength.Roll(),
		FallSpeed: ps.cfg.RainFallSpeed.Roll(),
		Wind:      ps.cfg.RainWind.Roll(),
	}
}

func (ps *ParticleSystem) newSnowFlake() *components.Particle {
	return &components.Particle{
		Kind:       components.KindSnowFlake,
		X:          rand.Float64() * float64(ps.width),
		Y:          rand.Float64() * float64(ps.height),
		Active:     true,
		Radius:     ps.cfg.SnowRadius.Roll(),
		FallSpeed:  ps.cfg.SnowFallSpeed.Roll(),
		DriftAmp:   ps.cfg.SnowDriftAmp.Roll(),
		Phase:      rand.Float64() * 2 * math.Pi,
		PhaseDelta: ps.cfg.SnowPhaseDelta.Roll(),
		Drift:      ps.cfg.SnowDrift.Roll(),
	}
}

func (ps *ParticleSystem) newCloudPuff() *components.Particle {
	return &components.Particle{
		Kind:       components.KindCloudPuff,
		X:          rand.Float64() * float64(ps.width),
		Y:          rand.Float64() * float64(ps.height) * 0.4, // 云停留在上半部
		Active:     true,
		Width:      ps.cfg.CloudWidth.Roll(),
		Height:     ps.cfg.CloudHeight.Roll(),
		DriftSpeed: ps.cfg.CloudDrift.Roll(),
	}
}

func (ps *ParticleSystem) newFogBand() *components.Particle {
	return &components.Particle{
		Kind:        components.KindFogBand,
		X:           rand.Float64() * float64(ps.width),
		Y:           rand.Float64() * float64(ps.height),
		Active:      true,
		Width:       ps.cfg.FogWidth.Roll(),
		Height:      ps.cfg.FogHeight.Roll(),
		DriftSpeed:  ps.cfg.FogDrift.Roll(),
		OpacityHint: ps.cfg.FogOpacity.Roll(),
	}
}

// --- per-variant update ---------------------------------------------------

// update advances one simulation step. The engine assumes a fixed tick
// rate; there is no wall-clock delta.
func (ps *ParticleSystem) update(p *components.Particle) {
	w := float64(ps.width)
	h := float64(ps.height)

	switch p.Kind {
	case components.KindRainDrop:
		p.Y += p.FallSpeed
		p.X += p.Wind
		// 越过底边：就地回收到顶部随机位置，不走池的销毁/新建
		if p.Y > h+p.Length {
			p.Y = -tuning.RandomInRange(5, 50)
			p.X = rand.Float64() * w
		}

	case components.KindSnowFlake:
		p.Y += p.FallSpeed
		p.Phase += p.PhaseDelta
		p.X += p.Drift + math.Sin(p.Phase)*p.DriftAmp
		if p.Y > h+p.Radius+10 {
			p.Y = -tuning.RandomInRange(5, 40)
			p.X = rand.Float64() * w
		}

	case components.KindCloudPuff:
		p.X += p.DriftSpeed
		if p.X > w+p.Width {
			p.X = -p.Width
			p.Y = rand.Float64() * h * 0.4
		}

	case components.KindFogBand:
		p.X += p.DriftSpeed
		if p.X > w+p.Width {
			p.X = -p.Width
			p.Y = rand.Float64() * h
		}
	}
}

// --- per-variant draw -----------------------------------------------------

// draw refreshes the particle's primitives: previous handles are deleted
// first, then new shapes are issued under the shared particle tag.
func (ps *ParticleSystem) draw(p *components.Particle) error {
	ps.releaseHandles(p)

	switch p.Kind {
	case components.KindRainDrop:
		h, err := ps.canvas.DrawLine(
			p.X, p.Y,
			p.X+p.Wind*2, p.Y+p.Length,
			surface.Style{Color: ps.cfg.RainColor, Width: 2},
			surface.TagParticle)
		if err != nil {
			return err
		}
		p.Handles = append(p.Handles, h)

	case components.KindSnowFlake:
		h, err := ps.canvas.DrawOval(
			p.X-p.Radius, p.Y-p.Radius,
			p.X+p.Radius, p.Y+p.Radius,
			surface.Style{Color: ps.cfg.SnowColor, Fill: true},
			surface.TagParticle)
		if err != nil {
			return err
		}
		p.Handles = append(p.Handles, h)

	case components.KindCloudPuff:
		// 每帧重掷 3-5 个带抖动的椭圆，叠出蓬松的云
		puffs := int(ps.cfg.CloudPuffs.Roll())
		clr := ps.cfg.CloudColor(ps.category)
		for i := 0; i < puffs; i++ {
			jx := tuning.RandomInRange(0, p.Width*0.5)
			jy := tuning.RandomInRange(-p.Height*0.25, p.Height*0.25)
			pw := p.Width * tuning.RandomInRange(0.4, 0.7)
			ph := p.Height * tuning.RandomInRange(0.7, 1.0)
			h, err := ps.canvas.DrawOval(
				p.X+jx, p.Y+jy,
				p.X+jx+pw, p.Y+jy+ph,
				surface.Style{Color: clr, Fill: true},
				surface.TagParticle)
			if err != nil {
				return err
			}
			p.Handles = append(p.Handles, h)
		}

	case components.KindFogBand:
		clr := ps.cfg.FogColor
		clr.A = uint8(p.OpacityHint * 255)
		h, err := ps.canvas.DrawOval(
			p.X, p.Y,
			p.X+p.Width, p.Y+p.Height,
			surface.Style{Color: clr, Fill: true},
			surface.TagParticle)
		if err != nil {
			return err
		}
		p.Handles = append(p.Handles, h)
	}
	return nil
}

// releaseHandles 删除粒子现有的全部绘制句柄（容错陈旧句柄）
func (ps *ParticleSystem) releaseHandles(p *components.Particle) {
	for _, h := range p.Handles {
		ps.canvas.Delete(h)
	}
	p.Handles = p.Handles[:0]
}

// --- sweep ----------------------------------------------------------------

// sweep removes particles that are inactive or far off-screen. This is
// the safety net behind each variant's self-recycling.
func (ps *ParticleSystem) sweep() {
	for _, id := range ps.arena.All() {
		p, ok := ps.arena.Get(id)
		if !ok {
			continue
		}
		if !p.Active || ps.farOffscreen(p) {
			ps.releaseHandles(p)
			ps.arena.Destroy(id)
		}
	}
	ps.arena.RemoveMarked()
}

// farOffscreen 判定粒子是否越过清扫缓冲带
// 云/雾带按整体范围判定，避免刚 wrap 到 -Width 的粒子被误杀。
func (ps *ParticleSystem) farOffscreen(p *components.Particle) bool {
	buf := ps.cfg.OffscreenBuffer
	w := float64(ps.width)
	h := float64(ps.height)

	right := p.X
	bottom := p.Y
	if p.Kind == components.KindCloudPuff || p.Kind == components.KindFogBand {
		right = p.X + p.Width
		bottom = p.Y + p.Height
	}
	return right < -buf || p.X > w+buf || bottom < -buf || p.Y > h+buf
}
