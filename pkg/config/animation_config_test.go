package config

import (
	"testing"

	"github.com/decker502/skyfx/pkg/weather"
)

// TestDefaultValues 测试默认调参表关键值
func TestDefaultValues(t *testing.T) {
	cfg := Default()

	if cfg.TargetFPS != 30 {
		t.Errorf("TargetFPS = %d, want 30", cfg.TargetFPS)
	}
	if cfg.MaxParticles != 150 {
		t.Errorf("MaxParticles = %d, want 150", cfg.MaxParticles)
	}
	if cfg.TopUpPerTick != 5 {
		t.Errorf("TopUpPerTick = %d, want 5", cfg.TopUpPerTick)
	}
	if cfg.OffscreenBuffer != 200 {
		t.Errorf("OffscreenBuffer = %v, want 200", cfg.OffscreenBuffer)
	}
	if cfg.MinSurfaceDim != 100 {
		t.Errorf("MinSurfaceDim = %d, want 100", cfg.MinSurfaceDim)
	}
}

// TestFrameDelayMs 30 FPS 对应 33ms 帧间隔
func TestFrameDelayMs(t *testing.T) {
	cfg := Default()
	if got := cfg.FrameDelayMs(); got != 33 {
		t.Errorf("FrameDelayMs() = %d, want 33", got)
	}

	cfg.TargetFPS = 0
	if got := cfg.FrameDelayMs(); got != 33 {
		t.Errorf("FrameDelayMs() with fps=0 = %d, want fallback 33", got)
	}
}

// TestPopulationTarget 按宽度 800 验证每个类别的粒子数公式
func TestPopulationTarget(t *testing.T) {
	cfg := Default()
	cases := []struct {
		cat  weather.Category
		want int
	}{
		{weather.Rain, 80},   // clamp(800/10, 30, 100)
		{weather.Storm, 83},  // rain + 3 朵乌云
		{weather.Snow, 66},   // clamp(800/12, 25, 90)
		{weather.Cloudy, 4},  // clamp(800/200, 2, 6)
		{weather.Mist, 10},   // clamp(800/80, 5, 15)
		{weather.Clear, 2},
		{weather.Sunny, 2},
	}
	for _, c := range cases {
		if got := cfg.PopulationTarget(c.cat, 800); got != c.want {
			t.Errorf("PopulationTarget(%s, 800) = %d, want %d", c.cat, got, c.want)
		}
	}
}

// TestPopulationTargetClamps 极端宽度触发上下限
func TestPopulationTargetClamps(t *testing.T) {
	cfg := Default()

	// 窄表面触发下限
	if got := cfg.PopulationTarget(weather.Rain, 100); got != 30 {
		t.Errorf("PopulationTarget(rain, 100) = %d, want 30", got)
	}
	// 宽表面触发上限
	if got := cfg.PopulationTarget(weather.Rain, 5000); got != 100 {
		t.Errorf("PopulationTarget(rain, 5000) = %d, want 100", got)
	}
	// 任何类别都不超过全局上限
	cfg.MaxParticles = 50
	if got := cfg.PopulationTarget(weather.Storm, 5000); got != 50 {
		t.Errorf("PopulationTarget(storm, 5000) with cap 50 = %d, want 50", got)
	}
}

// TestLoadOverride YAML 覆盖指定字段，其余保持默认
func TestLoadOverride(t *testing.T) {
	data := []byte(`
targetFps: 24
maxParticles: 80
rainFallSpeed: "[4 9]"
backgrounds:
  rain: "#223344"
`)
	cfg, err := Load(data)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.TargetFPS != 24 {
		t.Errorf("TargetFPS = %d, want 24", cfg.TargetFPS)
	}
	if cfg.MaxParticles != 80 {
		t.Errorf("MaxParticles = %d, want 80", cfg.MaxParticles)
	}
	if cfg.RainFallSpeed.Min != 4 || cfg.RainFallSpeed.Max != 9 {
		t.Errorf("RainFallSpeed = %+v, want {4 9}", cfg.RainFallSpeed)
	}
	// 未覆盖字段保持默认
	if cfg.TopUpPerTick != 5 {
		t.Errorf("TopUpPerTick = %d, want default 5", cfg.TopUpPerTick)
	}

	clr := cfg.BackgroundColor(weather.Rain)
	if clr.R != 0x22 || clr.G != 0x33 || clr.B != 0x44 {
		t.Errorf("BackgroundColor(rain) = %+v, want #223344", clr)
	}
}

// TestLoadBadRange 非法范围字符串返回错误
func TestLoadBadRange(t *testing.T) {
	if _, err := Load([]byte(`rainFallSpeed: "[a b]"`)); err == nil {
		t.Error("Load with bad range: expected error, got nil")
	}
}

// TestLoadUnknownCategory 背景色覆盖里出现未知类别返回错误
func TestLoadUnknownCategory(t *testing.T) {
	data := []byte(`
backgrounds:
  tornado: "#000000"
`)
	if _, err := Load(data); err == nil {
		t.Error("Load with unknown category: expected error, got nil")
	}
}

// TestLoadBadYAML 非法 YAML 返回错误
func TestLoadBadYAML(t *testing.T) {
	if _, err := Load([]byte("targetFps: [not a number")); err == nil {
		t.Error("Load with bad yaml: expected error, got nil")
	}
}

// TestParseHexColor 颜色字符串解析
func TestParseHexColor(t *testing.T) {
	clr, err := parseHexColor("#4a90d9")
	if err != nil {
		t.Fatalf("parseHexColor error: %v", err)
	}
	if clr.R != 0x4a || clr.G != 0x90 || clr.B != 0xd9 || clr.A != 0xff {
		t.Errorf("got %+v, want {4a 90 d9 ff}", clr)
	}

	for _, bad := range []string{"4a90d9", "#4a90", "#gggggg"} {
		if _, err := parseHexColor(bad); err == nil {
			t.Errorf("parseHexColor(%q): expected error, got nil", bad)
		}
	}
}

// TestBackgroundColorFallback 未配置的类别回退到 clear 的背景色
func TestBackgroundColorFallback(t *testing.T) {
	cfg := Default()
	want := cfg.BackgroundColor(weather.Clear)
	got := cfg.BackgroundColor(weather.Category("unknown"))
	if got != want {
		t.Errorf("BackgroundColor(unknown) = %+v, want clear's %+v", got, want)
	}
}
