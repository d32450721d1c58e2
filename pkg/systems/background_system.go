package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/skyfx/internal/tuning"
	"github.com/decker502/skyfx/pkg/config"
	"github.com/decker502/skyfx/pkg/surface"
	"github.com/decker502/skyfx/pkg/weather"
)

// BackgroundSystem redraws the backdrop layer every tick: the category's
// base color, the sun for clear/sunny skies, and lightning for storms.
//
// 背景层每帧整层删除重画（TagBackground），与粒子层句柄互不干扰。
type BackgroundSystem struct {
	canvas surface.Canvas
	cfg    *config.Config

	// 太阳光线条数在类别切换时掷一次，之后每帧位置固定
	rayCount int

	// lightningTimer counts ticks since the last strike. A strike needs
	// both the minimum interval elapsed and the per-tick chance roll.
	lightningTimer int
	strikes        int
}

// NewBackgroundSystem creates a backdrop renderer over a borrowed canvas.
func NewBackgroundSystem(canvas surface.Canvas, cfg *config.Config) *BackgroundSystem {
	return &BackgroundSystem{canvas: canvas, cfg: cfg}
}

// Reset prepares the backdrop for a category switch: the lightning timer
// restarts and the sun's ray layout is re-rolled.
func (bs *BackgroundSystem) Reset(cat weather.Category) {
	bs.lightningTimer = 0
	bs.rayCount = int(bs.cfg.SunRays.Roll())
}

// LightningTimer returns ticks elapsed since the last strike.
func (bs *BackgroundSystem) LightningTimer() int {
	return bs.lightningTimer
}

// Strikes returns the total number of lightning strikes rendered.
func (bs *BackgroundSystem) Strikes() int {
	return bs.strikes
}

// Render repaints the backdrop for one tick. Drawing failures are logged
// and skipped; the backdrop simply stays partial for a frame.
func (bs *BackgroundSystem) Render(cat weather.Category, w, h int) {
	bs.canvas.DeleteByTag(surface.TagBackground)

	bg := bs.cfg.BackgroundColor(cat)
	if _, err := bs.canvas.DrawRect(0, 0, float64(w), float64(h),
		surface.Style{Color: bg, Fill: true}, surface.TagBackground); err != nil {
		log.Printf("[BackgroundSystem] 背景填充失败: %v", err)
	}

	switch cat {
	case weather.Clear, weather.Sunny:
		bs.drawSun(w)
	case weather.Storm:
		bs.tickLightning(w, h)
	}
}

// drawSun 在右上角画太阳圆盘和放射状光线
// 光线角度按条数均分，位置固定，每帧重画。
func (bs *BackgroundSystem) drawSun(w int) {
	cx := float64(w) - bs.cfg.SunRadius - 40
	cy := bs.cfg.SunRadius + 40

	if _, err := bs.canvas.DrawOval(
		cx-bs.cfg.SunRadius, cy-bs.cfg.SunRadius,
		cx+bs.cfg.SunRadius, cy+bs.cfg.SunRadius,
		surface.Style{Color: bs.cfg.SunColor, Fill: true},
		surface.TagBackground); err != nil {
		log.Printf("[BackgroundSystem] 太阳圆盘绘制失败: %v", err)
		return
	}

	rays := bs.rayCount
	if rays <= 0 {
		rays = int(bs.cfg.SunRays.Min)
	}
	for i := 0; i < rays; i++ {
		angle := 2 * math.Pi * float64(i) / float64(rays)
		x1 := cx + math.Cos(angle)*bs.cfg.SunRayInner
		y1 := cy + math.Sin(angle)*bs.cfg.SunRayInner
		x2 := cx + math.Cos(angle)*bs.cfg.SunRayOuter
		y2 := cy + math.Sin(angle)*bs.cfg.SunRayOuter
		if _, err := bs.canvas.DrawLine(x1, y1, x2, y2,
			surface.Style{Color: bs.cfg.SunColor, Width: 3},
			surface.TagBackground); err != nil {
			log.Printf("[BackgroundSystem] 太阳光线绘制失败: %v", err)
			return
		}
	}
}

// tickLightning advances the strike timer and occasionally fires a bolt.
// 双重门控：最小间隔帧数 AND 每帧概率，保证闪电稀疏且不可预测。
func (bs *BackgroundSystem) tickLightning(w, h int) {
	bs.lightningTimer++
	if bs.lightningTimer < bs.cfg.LightningMinInterval {
		return
	}
	if rand.Float64() >= bs.cfg.LightningChance {
		return
	}
	bs.lightningTimer = 0
	bs.strikes++
	bs.drawBolt(w, h)
}

// drawBolt 从上部随机点向下画折线闪电，只存在一帧
// （下一帧 TagBackground 整层删除即自然消失）。
func (bs *BackgroundSystem) drawBolt(w, h int) {
	segments := int(bs.cfg.LightningSegments.Roll())
	if segments < 1 {
		segments = 1
	}

	x := tuning.RandomInRange(float64(w)*0.2, float64(w)*0.8)
	y := tuning.RandomInRange(0, float64(h)*0.1)
	drop := float64(h) * 0.7 / float64(segments)

	for i := 0; i < segments; i++ {
		nx := x + tuning.RandomInRange(-40, 40)
		ny := y + drop*tuning.RandomInRange(0.6, 1.2)
		width := float32(bs.cfg.LightningSegWidth.Roll())
		if _, err := bs.canvas.DrawLine(x, y, nx, ny,
			surface.Style{Color: bs.cfg.LightningColor, Width: width},
			surface.TagBackground); err != nil {
			log.Printf("[BackgroundSystem] 闪电绘制失败: %v", err)
			return
		}
		x, y = nx, ny
	}
}
