// Package components holds the pure-data state records of the animation
// engine. Components contain no behavior; the systems package owns all
// update and draw logic.
package components

import "github.com/decker502/skyfx/pkg/surface"

// ParticleKind 粒子变体类型
type ParticleKind int

const (
	KindRainDrop ParticleKind = iota
	KindSnowFlake
	KindCloudPuff
	KindFogBand
)

// String returns the kind name for logs.
func (k ParticleKind) String() string {
	switch k {
	case KindRainDrop:
		return "raindrop"
	case KindSnowFlake:
		return "snowflake"
	case KindCloudPuff:
		return "cloudpuff"
	case KindFogBand:
		return "fogband"
	default:
		return "unknown"
	}
}

// Particle is one simulated visual element of the background animation.
// It is a tagged variant: Kind selects which of the variant field groups
// is meaningful. The particle system dispatches update/draw on Kind.
//
// This is a pure data component - it contains no methods beyond String.
//
// 不变量：Active 的粒子总有有效坐标；失活的粒子在下一次清扫中移除，
// 绝不跨清扫存活。Handles 为空表示尚未绘制。
type Particle struct {
	Kind ParticleKind

	// Position (surface 坐标系, 像素)
	X float64
	Y float64

	// Active 为 false 表示等待清扫移除（绘制失败或被标记回收）
	Active bool

	// Handles 是 surface 返回的绘制句柄（CloudPuff 一个粒子有多个）
	Handles []surface.Handle

	// RainDrop 字段
	Length    float64 // 雨滴线段长度
	FallSpeed float64 // 垂直下落速度 (像素/帧)
	Wind      float64 // 水平风速 (像素/帧)

	// SnowFlake 字段
	Radius     float64 // 雪花半径
	DriftAmp   float64 // 横向摆动振幅
	Phase      float64 // 摆动相位
	PhaseDelta float64 // 每帧相位增量
	Drift      float64 // 基础横向漂移 (像素/帧)

	// CloudPuff / FogBand 字段
	Width      float64 // 云/雾带宽度
	Height     float64 // 云/雾带高度
	DriftSpeed float64 // 横向漂移速度 (像素/帧)

	// FogBand 字段
	OpacityHint float64 // 0-1, 雾带透明度系数
}
