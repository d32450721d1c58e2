// Package config 定义背景天气动画的全部调参表
//
// 所有常量集中在这里：帧率、粒子数公式、每个变体的速度/尺寸范围、
// 背景配色、太阳和闪电参数。默认值编译内置，可用 YAML 覆盖
// （范围值沿用 "[min max]" 字符串格式）。
package config

import (
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"

	"github.com/decker502/skyfx/internal/tuning"
	"github.com/decker502/skyfx/pkg/weather"
)

// Config is the resolved tuning table the engine runs on.
type Config struct {
	// 帧调度
	TargetFPS int // 目标帧率（默认 30）

	// 粒子池
	MaxParticles    int     // 全局粒子数上限
	TopUpPerTick    int     // 每帧最多补充的粒子数（防止切换类别后数量突变）
	OffscreenBuffer float64 // 清扫判定：越过表面边界多少像素算远离屏幕
	MinSurfaceDim   int     // 退化尺寸钳制下限（宽高 ≤0 时取此值）

	// 雨滴
	RainLength    tuning.Range
	RainFallSpeed tuning.Range
	RainWind      tuning.Range
	RainColor     color.RGBA

	// 雪花
	SnowRadius     tuning.Range
	SnowFallSpeed  tuning.Range
	SnowDriftAmp   tuning.Range
	SnowPhaseDelta tuning.Range
	SnowDrift      tuning.Range
	SnowColor      color.RGBA

	// 云团
	CloudWidth  tuning.Range
	CloudHeight tuning.Range
	CloudDrift  tuning.Range
	CloudPuffs  tuning.Range // 每朵云的椭圆数量 (3-5)

	// 雾带
	FogWidth   tuning.Range
	FogHeight  tuning.Range
	FogDrift   tuning.Range
	FogOpacity tuning.Range
	FogColor   color.RGBA

	// 太阳
	SunRadius   float64
	SunRays     tuning.Range // 光线条数 (8-12)
	SunRayInner float64      // 光线起点离圆心距离
	SunRayOuter float64      // 光线终点离圆心距离
	SunColor    color.RGBA

	// 闪电
	LightningMinInterval int          // 两次闪电之间的最小帧数
	LightningChance      float64      // 过了最小间隔后每帧触发概率
	LightningSegments    tuning.Range // 每道闪电的折线段数 (3-8)
	LightningSegWidth    tuning.Range // 每段线宽
	LightningColor       color.RGBA

	// 类别 → 背景色 / 云色
	backgrounds map[weather.Category]color.RGBA
	cloudColors map[weather.Category]color.RGBA
}

// Default returns the canonical parameter set.
func Default() *Config {
	return &Config{
		TargetFPS: 30,

		MaxParticles:    150,
		TopUpPerTick:    5,
		OffscreenBuffer: 200,
		MinSurfaceDim:   100,

		RainLength:    tuning.MustRange("[8 18]"),
		RainFallSpeed: tuning.MustRange("[6 14]"),
		RainWind:      tuning.MustRange("[-1 1]"),
		RainColor:     color.RGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0xff},

		SnowRadius:     tuning.MustRange("[2 5]"),
		SnowFallSpeed:  tuning.MustRange("[1 3]"),
		SnowDriftAmp:   tuning.MustRange("[1.5 3]"),
		SnowPhaseDelta: tuning.MustRange("[0.05 0.15]"),
		SnowDrift:      tuning.MustRange("[-0.3 0.3]"),
		SnowColor:      color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},

		CloudWidth:  tuning.MustRange("[90 180]"),
		CloudHeight: tuning.MustRange("[30 60]"),
		CloudDrift:  tuning.MustRange("[0.3 0.8]"),
		CloudPuffs:  tuning.MustRange("[3 5]"),

		FogWidth:   tuning.MustRange("[200 420]"),
		FogHeight:  tuning.MustRange("[24 48]"),
		FogDrift:   tuning.MustRange("[0.2 0.6]"),
		FogOpacity: tuning.MustRange("[0.25 0.6]"),
		FogColor:   color.RGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff},

		SunRadius:   40,
		SunRays:     tuning.MustRange("[8 12]"),
		SunRayInner: 50,
		SunRayOuter: 85,
		SunColor:    color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff},

		LightningMinInterval: 60,
		LightningChance:      0.03,
		LightningSegments:    tuning.MustRange("[3 8]"),
		LightningSegWidth:    tuning.MustRange("[1 4]"),
		LightningColor:       color.RGBA{R: 0xff, G: 0xff, B: 0xe0, A: 0xff},

		backgrounds: map[weather.Category]color.RGBA{
			weather.Clear:  {R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
			weather.Sunny:  {R: 0x8f, G: 0xd3, B: 0xf0, A: 0xff},
			weather.Rain:   {R: 0x70, G: 0x80, B: 0x90, A: 0xff},
			weather.Snow:   {R: 0xb0, G: 0xc4, B: 0xde, A: 0xff},
			weather.Storm:  {R: 0x2f, G: 0x4f, B: 0x4f, A: 0xff},
			weather.Cloudy: {R: 0xa9, G: 0xb7, B: 0xc0, A: 0xff},
			weather.Mist:   {R: 0xc0, G: 0xc8, B: 0xcc, A: 0xff},
		},
		cloudColors: map[weather.Category]color.RGBA{
			weather.Clear:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			weather.Sunny:  {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			weather.Cloudy: {R: 0xdc, G: 0xdc, B: 0xdc, A: 0xff},
			weather.Storm:  {R: 0x3c, G: 0x46, B: 0x50, A: 0xff},
		},
	}
}

// FrameDelayMs returns the scheduler delay between ticks.
func (c *Config) FrameDelayMs() int {
	fps := c.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	return 1000 / fps
}

// PopulationTarget 按类别和表面宽度计算目标粒子数
//
// 公式固定（形状确定，只有粒子摆放随机）：
//
//	rain   clamp(w/10, 30, 100)
//	storm  rain 数量 + 3 朵乌云
//	snow   clamp(w/12, 25, 90)
//	cloudy clamp(w/200, 2, 6)
//	mist   clamp(w/80, 5, 15)
//	clear/sunny 固定 2 朵点缀云
func (c *Config) PopulationTarget(cat weather.Category, width int) int {
	target := 0
	switch cat {
	case weather.Rain:
		target = tuning.ClampInt(width/10, 30, 100)
	case weather.Storm:
		target = tuning.ClampInt(width/10, 30, 100) + 3
	case weather.Snow:
		target = tuning.ClampInt(width/12, 25, 90)
	case weather.Cloudy:
		target = tuning.ClampInt(width/200, 2, 6)
	case weather.Mist:
		target = tuning.ClampInt(width/80, 5, 15)
	case weather.Clear, weather.Sunny:
		target = 2
	}
	if target > c.MaxParticles {
		target = c.MaxParticles
	}
	return target
}

// BackgroundColor 返回类别对应的背景填充色
func (c *Config) BackgroundColor(cat weather.Category) color.RGBA {
	if clr, ok := c.backgrounds[cat]; ok {
		return clr
	}
	return c.backgrounds[weather.Clear]
}

// CloudColor 返回类别对应的云团颜色（未列出的类别用白色）
func (c *Config) CloudColor(cat weather.Category) color.RGBA {
	if clr, ok := c.cloudColors[cat]; ok {
		return clr
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// fileConfig 是 YAML 覆盖文件的原始形态
// 范围值沿用 "[min max]" 字符串；颜色用 "#rrggbb"；零值字段不覆盖。
type fileConfig struct {
	TargetFPS       int     `yaml:"targetFps"`
	MaxParticles    int     `yaml:"maxParticles"`
	TopUpPerTick    int     `yaml:"topUpPerTick"`
	OffscreenBuffer float64 `yaml:"offscreenBuffer"`

	RainLength    string `yaml:"rainLength"`
	RainFallSpeed string `yaml:"rainFallSpeed"`
	RainWind      string `yaml:"rainWind"`

	SnowRadius    string `yaml:"snowRadius"`
	SnowFallSpeed string `yaml:"snowFallSpeed"`
	SnowDriftAmp  string `yaml:"snowDriftAmp"`

	CloudWidth  string `yaml:"cloudWidth"`
	CloudHeight string `yaml:"cloudHeight"`
	CloudDrift  string `yaml:"cloudDrift"`

	FogWidth  string `yaml:"fogWidth"`
	FogHeight string `yaml:"fogHeight"`
	FogDrift  string `yaml:"fogDrift"`

	LightningMinInterval int     `yaml:"lightningMinInterval"`
	LightningChance      float64 `yaml:"lightningChance"`

	Backgrounds map[string]string `yaml:"backgrounds"`
}

// Load applies a YAML override file on top of the defaults.
// 解析失败返回错误，调用方应回退到 Default()。
func Load(data []byte) (*Config, error) {
	cfg := Default()
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config: unmarshal animation config: %w", err)
	}

	if fc.TargetFPS > 0 {
		cfg.TargetFPS = fc.TargetFPS
	}
	if fc.MaxParticles > 0 {
		cfg.MaxParticles = fc.MaxParticles
	}
	if fc.TopUpPerTick > 0 {
		cfg.TopUpPerTick = fc.TopUpPerTick
	}
	if fc.OffscreenBuffer > 0 {
		cfg.OffscreenBuffer = fc.OffscreenBuffer
	}
	if fc.LightningMinInterval > 0 {
		cfg.LightningMinInterval = fc.LightningMinInterval
	}
	if fc.LightningChance > 0 {
		cfg.LightningChance = fc.LightningChance
	}

	ranges := []struct {
		raw string
		dst *tuning.Range
	}{
		{fc.RainLength, &cfg.RainLength},
		{fc.RainFallSpeed, &cfg.RainFallSpeed},
		{fc.RainWind, &cfg.RainWind},
		{fc.SnowRadius, &cfg.SnowRadius},
		{fc.SnowFallSpeed, &cfg.SnowFallSpeed},
		{fc.SnowDriftAmp, &cfg.SnowDriftAmp},
		{fc.CloudWidth, &cfg.CloudWidth},
		{fc.CloudHeight, &cfg.CloudHeight},
		{fc.CloudDrift, &cfg.CloudDrift},
		{fc.FogWidth, &cfg.FogWidth},
		{fc.FogHeight, &cfg.FogHeight},
		{fc.FogDrift, &cfg.FogDrift},
	}
	for _, r := range ranges {
		if r.raw == "" {
			continue
		}
		parsed, err := tuning.ParseRange(r.raw)
		if err != nil {
			return nil, err
		}
		*r.dst = parsed
	}

	for name, hex := range fc.Backgrounds {
		cat := weather.Category(name)
		if !weather.Valid(cat) {
			return nil, fmt.Errorf("config: unknown category %q in backgrounds", name)
		}
		clr, err := parseHexColor(hex)
		if err != nil {
			return nil, err
		}
		cfg.backgrounds[cat] = clr
	}

	return cfg, nil
}

// parseHexColor 解析 "#rrggbb" 格式的颜色
func parseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("config: bad color %q (want #rrggbb)", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("config: bad color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
