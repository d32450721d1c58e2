// Package main provides an interactive viewer for the background weather
// animation engine.
//
// Usage:
//
//	go run main.go [flags]
//
// Flags:
//
//	--weather <desc>   Initial weather description (e.g., --weather="light rain")
//	--verbose          Enable diagnostic logging
//
// Controls:
//
//	1-7               - Switch category (clear/sunny/rain/snow/storm/cloudy/mist)
//	S                 - Stop / restart the animation
//	R                 - Feed a random free-text description
//	Q/Escape          - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/skyfx/pkg/config"
	"github.com/decker502/skyfx/pkg/game"
	"github.com/decker502/skyfx/pkg/surface"
	"github.com/decker502/skyfx/pkg/weather"
)

// descriptions 随机描述池，用来演示关键词映射（含多关键词混合描述）
var descriptions = []string{
	"light rain showers",
	"heavy snow",
	"thunderstorm approaching",
	"broken clouds",
	"clear sky",
	"sunny intervals",
	"mist and fog patches",
	"cloudy with light rain",
	"foggy and clear",
}

var errQuit = fmt.Errorf("quit")

// Viewer is the ebiten host: it owns the canvas the engine borrows.
type Viewer struct {
	canvas   *surface.EbitenCanvas
	session  *game.AnimationSession
	lastDesc string
}

// Update handles input and advances the engine's timer clock.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return errQuit
	}

	keys := map[ebiten.Key]weather.Category{
		ebiten.Key1: weather.Clear,
		ebiten.Key2: weather.Sunny,
		ebiten.Key3: weather.Rain,
		ebiten.Key4: weather.Snow,
		ebiten.Key5: weather.Storm,
		ebiten.Key6: weather.Cloudy,
		ebiten.Key7: weather.Mist,
	}
	for key, cat := range keys {
		if inpututil.IsKeyJustPressed(key) {
			v.session.SetCategory(cat)
			v.lastDesc = string(cat)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if v.session.IsRunning() {
			v.session.Stop()
		} else {
			v.session.Start(v.lastDesc)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.lastDesc = descriptions[rand.Intn(len(descriptions))]
		v.session.SetDescription(v.lastDesc)
	}

	// ebiten 固定 60 TPS；引擎自己的 30 FPS 循环由画布定时器驱动
	v.canvas.Update(1.0 / 60.0)
	return nil
}

// Draw replays the engine's display list and overlays a small HUD.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.canvas.Draw(screen)
	hud := fmt.Sprintf("desc: %q -> %s | particles: %d | running: %v\n1-7 category  S stop/start  R random desc  Q quit",
		v.lastDesc, v.session.CurrentCategory(), v.session.ParticleCount(), v.session.IsRunning())
	ebitenutil.DebugPrint(screen, hud)
}

// Layout reports the drawable size and forwards resizes to the engine.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.canvas.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	initialDesc := flag.String("weather", "clear sky", "initial weather description")
	verbose := flag.Bool("verbose", false, "enable diagnostic logging")
	flag.Parse()

	// 引擎偏好持久化：gdata 打开失败则以降级模式运行（仅内存设置）
	gdataManager, err := gdata.Open(gdata.Config{AppName: "skyfx"})
	if err != nil {
		gdataManager = nil
	}
	sm, _ := game.NewSettingsManager(gdataManager)
	settings := sm.GetSettings()

	// 诊断日志：命令行 --verbose 或已保存的 verbose 设置任一开启即输出
	if !*verbose && !settings.Verbose {
		log.SetOutput(io.Discard)
	}
	if gdataManager == nil {
		log.Printf("[main] gdata unavailable, settings will not persist")
	}

	cfg := config.Default()
	if settings.TargetFPS > 0 {
		cfg.TargetFPS = settings.TargetFPS
	}
	if settings.MaxParticles > 0 {
		cfg.MaxParticles = settings.MaxParticles
	}

	canvas := surface.NewEbitenCanvas(800, 600)
	session := game.NewAnimationSession(canvas, cfg)
	// 动画总开关关闭时不自动启动，按 S 仍可手动开启
	if settings.Animations {
		session.Start(*initialDesc)
	} else {
		log.Printf("[main] animations disabled in settings, starting paused")
	}

	viewer := &Viewer{canvas: canvas, session: session, lastDesc: *initialDesc}

	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("skyfx - weather animation viewer")

	if err := ebiten.RunGame(viewer); err != nil && err != errQuit {
		log.Fatal(err)
	}
}
