package surface

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 三角形填充用的白色源图（ebiten 官方 vector 示例的标准做法）
var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// ovalSegments 椭圆多边形近似的边数
const ovalSegments = 32

// EbitenCanvas is the Ebitengine-backed Canvas implementation.
//
// It retains shapes in an insertion-ordered display list; the host game
// calls Update(dt) every tick (which fires due scheduled callbacks) and
// Draw(screen) every frame (which replays the display list through the
// ebiten vector package).
//
// 保留模式画布：宿主每 tick 调 Update 推进定时器，每帧调 Draw 重放显示列表。
type EbitenCanvas struct {
	width  int
	height int

	shapes     []*Shape
	byHandle   map[Handle]*Shape
	nextHandle Handle

	clockMs    float64
	timers     []*memTimer
	nextTimer  TimerHandle
	resizeSubs []func(w, h int)
}

// NewEbitenCanvas creates a canvas with the given logical size.
func NewEbitenCanvas(width, height int) *EbitenCanvas {
	return &EbitenCanvas{
		width:    width,
		height:   height,
		byHandle: make(map[Handle]*Shape),
	}
}

// Width implements Canvas.
func (c *EbitenCanvas) Width() int { return c.width }

// Height implements Canvas.
func (c *EbitenCanvas) Height() int { return c.height }

// SetSize updates the logical size, notifying resize subscribers on change.
// 宿主在窗口尺寸变化时调用（例如 ebiten.Game.Layout）。
func (c *EbitenCanvas) SetSize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	for _, fn := range c.resizeSubs {
		fn(width, height)
	}
}

func (c *EbitenCanvas) add(kind ShapeKind, coords []float64, style Style, tag string) (Handle, error) {
	c.nextHandle++
	s := &Shape{Handle: c.nextHandle, Kind: kind, Coords: coords, Style: style, Tag: tag}
	c.shapes = append(c.shapes, s)
	c.byHandle[s.Handle] = s
	return s.Handle, nil
}

// DrawLine implements Canvas.
func (c *EbitenCanvas) DrawLine(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error) {
	return c.add(KindLine, []float64{x1, y1, x2, y2}, style, tag)
}

// DrawOval implements Canvas.
func (c *EbitenCanvas) DrawOval(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error) {
	return c.add(KindOval, []float64{x1, y1, x2, y2}, style, tag)
}

// DrawRect implements Canvas.
func (c *EbitenCanvas) DrawRect(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error) {
	return c.add(KindRect, []float64{x1, y1, x2, y2}, style, tag)
}

// DrawPolygon implements Canvas.
func (c *EbitenCanvas) DrawPolygon(coords []float64, style Style, tag string) (Handle, error) {
	if len(coords) < 6 || len(coords)%2 != 0 {
		return None, ErrDrawRejected
	}
	return c.add(KindPolygon, append([]float64(nil), coords...), style, tag)
}

// Delete implements Canvas. Stale handles are ignored.
func (c *EbitenCanvas) Delete(h Handle) {
	if _, ok := c.byHandle[h]; !ok {
		return
	}
	delete(c.byHandle, h)
	for i, s := range c.shapes {
		if s.Handle == h {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			break
		}
	}
}

// DeleteByTag implements Canvas.
func (c *EbitenCanvas) DeleteByTag(tag string) {
	kept := c.shapes[:0]
	for _, s := range c.shapes {
		if s.Tag == tag {
			delete(c.byHandle, s.Handle)
			continue
		}
		kept = append(kept, s)
	}
	c.shapes = kept
}

// Schedule implements Canvas.
func (c *EbitenCanvas) Schedule(delayMs int, fn func()) TimerHandle {
	c.nextTimer++
	c.timers = append(c.timers, &memTimer{
		id:  c.nextTimer,
		due: c.clockMs + float64(delayMs),
		fn:  fn,
	})
	return c.nextTimer
}

// Cancel implements Canvas.
func (c *EbitenCanvas) Cancel(t TimerHandle) {
	for i, tm := range c.timers {
		if tm.id == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// OnResize implements Canvas.
func (c *EbitenCanvas) OnResize(fn func(w, h int)) {
	c.resizeSubs = append(c.resizeSubs, fn)
}

// Update advances the timer clock by dt seconds and fires due callbacks in
// order. Call once per ebiten tick. 回调在宿主更新线程内同步执行，
// 保持引擎的单线程协作模型。
func (c *EbitenCanvas) Update(dt float64) {
	target := c.clockMs + dt*1000
	for {
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].due < c.timers[j].due })
		if len(c.timers) == 0 || c.timers[0].due > target {
			break
		}
		tm := c.timers[0]
		c.timers = c.timers[1:]
		c.clockMs = tm.due
		tm.fn()
	}
	c.clockMs = target
}

// Draw replays the display list onto the screen in insertion order.
func (c *EbitenCanvas) Draw(screen *ebiten.Image) {
	for _, s := range c.shapes {
		drawShape(screen, s)
	}
}

func drawShape(screen *ebiten.Image, s *Shape) {
	clr := s.Style.Color
	sw := s.Style.Width
	if sw <= 0 {
		sw = 1
	}
	switch s.Kind {
	case KindLine:
		vector.StrokeLine(screen,
			float32(s.Coords[0]), float32(s.Coords[1]),
			float32(s.Coords[2]), float32(s.Coords[3]),
			sw, clr, true)
	case KindRect:
		x := float32(math.Min(s.Coords[0], s.Coords[2]))
		y := float32(math.Min(s.Coords[1], s.Coords[3]))
		w := float32(math.Abs(s.Coords[2] - s.Coords[0]))
		h := float32(math.Abs(s.Coords[3] - s.Coords[1]))
		if s.Style.Fill {
			vector.DrawFilledRect(screen, x, y, w, h, clr, true)
		} else {
			vector.StrokeRect(screen, x, y, w, h, sw, clr, true)
		}
	case KindOval:
		drawOval(screen, s, clr, sw)
	case KindPolygon:
		drawPolygon(screen, s.Coords, clr, s.Style.Fill, sw)
	}
}

func drawOval(screen *ebiten.Image, s *Shape, clr color.RGBA, sw float32) {
	cx := (s.Coords[0] + s.Coords[2]) / 2
	cy := (s.Coords[1] + s.Coords[3]) / 2
	rx := math.Abs(s.Coords[2]-s.Coords[0]) / 2
	ry := math.Abs(s.Coords[3]-s.Coords[1]) / 2

	// 圆形直接走 vector 的圆绘制，椭圆用多边形近似
	if math.Abs(rx-ry) < 0.5 {
		if s.Style.Fill {
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(rx), clr, true)
		} else {
			vector.StrokeCircle(screen, float32(cx), float32(cy), float32(rx), sw, clr, true)
		}
		return
	}

	coords := make([]float64, 0, ovalSegments*2)
	for i := 0; i < ovalSegments; i++ {
		a := 2 * math.Pi * float64(i) / ovalSegments
		coords = append(coords, cx+rx*math.Cos(a), cy+ry*math.Sin(a))
	}
	drawPolygon(screen, coords, clr, s.Style.Fill, sw)
}

func drawPolygon(screen *ebiten.Image, coords []float64, clr color.RGBA, fill bool, sw float32) {
	if len(coords) < 6 {
		return
	}
	if !fill {
		// 描边：逐边画线
		n := len(coords) / 2
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			vector.StrokeLine(screen,
				float32(coords[i*2]), float32(coords[i*2+1]),
				float32(coords[j*2]), float32(coords[j*2+1]),
				sw, clr, true)
		}
		return
	}

	var path vector.Path
	path.MoveTo(float32(coords[0]), float32(coords[1]))
	for i := 2; i < len(coords); i += 2 {
		path.LineTo(float32(coords[i]), float32(coords[i+1]))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(vs, is, whiteSubImage, op)
}
