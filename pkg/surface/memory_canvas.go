package surface

import (
	"errors"
	"sort"
)

// ShapeKind 图元类型
type ShapeKind int

const (
	KindLine ShapeKind = iota
	KindOval
	KindRect
	KindPolygon
)

// Shape is one retained entry of the MemoryCanvas display list.
type Shape struct {
	Handle Handle
	Kind   ShapeKind
	Coords []float64
	Style  Style
	Tag    string
}

// memTimer 一个待触发的回调
type memTimer struct {
	id  TimerHandle
	due float64 // 绝对时钟时间（毫秒）
	fn  func()
}

// ErrDrawRejected is returned when the canvas refuses a draw call
// (used by tests to simulate a failing host surface).
var ErrDrawRejected = errors.New("surface: draw call rejected")

// MemoryCanvas is a deterministic, headless Canvas implementation.
//
// It retains drawn shapes in an insertion-ordered display list and drives
// scheduled callbacks from a manually advanced clock, so tests (and any
// headless embedding) can step the animation loop without a real toolkit.
//
// 确定性的内存画布：手动推进时钟触发定时器，测试可无头驱动整个动画循环。
// 与引擎一样是单线程协作模型，不加锁。
type MemoryCanvas struct {
	width  int
	height int

	shapes     []*Shape
	byHandle   map[Handle]*Shape
	nextHandle Handle

	clock      float64 // 当前时钟（毫秒）
	timers     []*memTimer
	nextTimer  TimerHandle
	resizeSubs []func(w, h int)

	// RejectTag, when non-empty, makes every draw call carrying that tag
	// fail with ErrDrawRejected. 用于测试单粒子绘制失败的隔离性。
	RejectTag string
	// RejectAll, when true, makes every draw call fail.
	RejectAll bool
}

// NewMemoryCanvas creates a canvas of the given size.
func NewMemoryCanvas(width, height int) *MemoryCanvas {
	return &MemoryCanvas{
		width:    width,
		height:   height,
		byHandle: make(map[Handle]*Shape),
	}
}

// Width 当前宽度
func (c *MemoryCanvas) Width() int { return c.width }

// Height 当前高度
func (c *MemoryCanvas) Height() int { return c.height }

// Resize changes the drawable size and notifies resize subscribers.
func (c *MemoryCanvas) Resize(width, height int) {
	c.width = width
	c.height = height
	for _, fn := range c.resizeSubs {
		fn(width, height)
	}
}

func (c *MemoryCanvas) add(kind ShapeKind, coords []float64, style Style, tag string) (Handle, error) {
	if c.RejectAll || (c.RejectTag != "" && tag == c.RejectTag) {
		return None, ErrDrawRejected
	}
	c.nextHandle++
	s := &Shape{Handle: c.nextHandle, Kind: kind, Coords: coords, Style: style, Tag: tag}
	c.shapes = append(c.shapes, s)
	c.byHandle[s.Handle] = s
	return s.Handle, nil
}

// DrawLine implements Canvas.
func (c *MemoryCanvas) DrawLine(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error) {
	return c.add(KindLine, []float64{x1, y1, x2, y2}, style, tag)
}

// DrawOval implements Canvas.
func (c *MemoryCanvas) DrawOval(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error) {
	return c.add(KindOval, []float64{x1, y1, x2, y2}, style, tag)
}

// DrawRect implements Canvas.
func (c *MemoryCanvas) DrawRect(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error) {
	return c.add(KindRect, []float64{x1, y1, x2, y2}, style, tag)
}

// DrawPolygon implements Canvas.
func (c *MemoryCanvas) DrawPolygon(coords []float64, style Style, tag string) (Handle, error) {
	if len(coords) < 6 || len(coords)%2 != 0 {
		return None, errors.New("surface: polygon needs at least 3 coordinate pairs")
	}
	return c.add(KindPolygon, append([]float64(nil), coords...), style, tag)
}

// Delete implements Canvas. Stale handles are silently ignored.
func (c *MemoryCanvas) Delete(h Handle) {
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
func (c *MemoryCanvas) DeleteByTag(tag string) {
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
func (c *MemoryCanvas) Schedule(delayMs int, fn func()) TimerHandle {
	c.nextTimer++
	c.timers = append(c.timers, &memTimer{
		id:  c.nextTimer,
		due: c.clock + float64(delayMs),
		fn:  fn,
	})
	return c.nextTimer
}

// Cancel implements Canvas.
func (c *MemoryCanvas) Cancel(t TimerHandle) {
	for i, tm := range c.timers {
		if tm.id == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return
		}
	}
}

// OnResize implements Canvas.
func (c *MemoryCanvas) OnResize(fn func(w, h int)) {
	c.resizeSubs = append(c.resizeSubs, fn)
}

// Advance moves the clock forward by ms milliseconds, firing every due
// callback in due-time order. Callbacks scheduled during the advance are
// fired too when they fall inside the window — this is what lets a
// self-re-arming animation loop run any number of ticks from one Advance.
//
// 推进时钟：到期回调按时间顺序触发；推进过程中新注册且仍在窗口内的
// 回调同样触发，因此一次 Advance 可以驱动自续期的动画循环多帧。
func (c *MemoryCanvas) Advance(ms float64) {
	target := c.clock + ms
	for {
		// 找到最早到期的定时器
		sort.SliceStable(c.timers, func(i, j int) bool { return c.timers[i].due < c.timers[j].due })
		if len(c.timers) == 0 || c.timers[0].due > target {
			break
		}
		tm := c.timers[0]
		c.timers = c.timers[1:]
		c.clock = tm.due
		tm.fn()
	}
	c.clock = target
}

// Step fires ticks one frame at a time: it advances exactly delayMs per call.
func (c *MemoryCanvas) Step(delayMs int) { c.Advance(float64(delayMs)) }

// PendingTimers returns the number of armed callbacks.
func (c *MemoryCanvas) PendingTimers() int { return len(c.timers) }

// CountTag returns how many retained shapes carry the given tag.
func (c *MemoryCanvas) CountTag(tag string) int {
	n := 0
	for _, s := range c.shapes {
		if s.Tag == tag {
			n++
		}
	}
	return n
}

// ShapeCount returns the total retained shape count.
func (c *MemoryCanvas) ShapeCount() int { return len(c.shapes) }

// Shapes returns the display list in draw order (测试检查用).
func (c *MemoryCanvas) Shapes() []*Shape { return c.shapes }
