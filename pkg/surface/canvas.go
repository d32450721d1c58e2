// Package surface abstracts the drawing surface the animation engine renders
// onto. It is the engine's only coupling to a concrete UI toolkit: everything
// the engine needs is size queries, primitive draw calls that return opaque
// handles, tolerant deletion, and a "call me back after N ms" timer.
//
// 引擎唯一的宿主耦合点：尺寸查询、图元绘制（返回不透明句柄）、
// 容错删除、定时器调度。
package surface

import "image/color"

// Handle is an opaque identifier for a drawn shape.
// The zero value means "nothing drawn".
type Handle int64

// None is the zero Handle (尚未绘制).
const None Handle = 0

// TimerHandle identifies a pending scheduled callback.
// The zero value means "no timer armed".
type TimerHandle int64

// Style carries the visual attributes of a primitive draw call.
type Style struct {
	Color color.RGBA // 填充/描边颜色
	Width float32    // 线宽（描边时使用）
	Fill  bool       // true = 填充, false = 描边
}

// Well-known tags used by the engine for bulk deletion.
// 粒子和背景分别打标签，便于整帧批量清除。
const (
	TagParticle   = "particle"
	TagBackground = "background"
)

// Canvas is the surface adapter contract consumed by the animation engine.
//
// Implementations must tolerate Delete/DeleteByTag on unknown or stale
// handles without failing, and must run scheduled callbacks on the host
// event loop thread (the engine is single-threaded and lock-free by
// design — see MemoryCanvas and EbitenCanvas).
type Canvas interface {
	// Width returns the current drawable width in pixels.
	Width() int
	// Height returns the current drawable height in pixels.
	Height() int

	// DrawLine draws a line segment from (x1,y1) to (x2,y2).
	DrawLine(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error)
	// DrawOval draws an ellipse inscribed in the rectangle (x1,y1)-(x2,y2).
	DrawOval(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error)
	// DrawRect draws the rectangle (x1,y1)-(x2,y2).
	DrawRect(x1, y1, x2, y2 float64, style Style, tag string) (Handle, error)
	// DrawPolygon draws a closed polygon from flat coordinate pairs
	// [x0 y0 x1 y1 ...]. 至少需要 3 个顶点。
	DrawPolygon(coords []float64, style Style, tag string) (Handle, error)

	// Delete removes a single shape. Unknown or already-deleted handles
	// are ignored (容错：陈旧句柄不报错).
	Delete(h Handle)
	// DeleteByTag removes every shape drawn with the given tag.
	DeleteByTag(tag string)

	// Schedule arranges for fn to run once after delayMs milliseconds.
	Schedule(delayMs int, fn func()) TimerHandle
	// Cancel discards a pending callback. Unknown handles are ignored.
	Cancel(t TimerHandle)

	// OnResize registers a callback invoked whenever the drawable size
	// changes. Multiple callbacks may be registered.
	OnResize(fn func(w, h int))
}
