package cadence

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// TPS is the tick rate. Level time advances 1/TPS per tick, scaled by
	// Speed. Defaults to 60.
	TPS   int
	Speed float32
	// ClearColor fills the screen before the sprites are drawn.
	ClearColor Color
	// Renderer draws the scene's SpriteVisuals. Nil draws nothing but the
	// clear color.
	Renderer *Renderer
	// UpdateFunc runs before every scene tick with the level time about to
	// be used. A non-nil error stops the loop and is returned by Run.
	UpdateFunc func(levelTime float32) error
	// Paused starts the level clock stopped. Space toggles it while running.
	Paused  bool
	ShowFPS bool
}

// RunConfigFrom maps a session Config onto a RunConfig.
func RunConfigFrom(cfg Config) RunConfig {
	return RunConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		TPS:    cfg.Window.TPS,
		Speed:  1,
	}
}

// game adapts a Scene to ebiten.Game. The level clock drives the manager's
// audio clock so audio-time animations follow the level.
type game struct {
	scene  *Scene
	cfg    RunConfig
	time   float64
	paused bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.time += float64(g.cfg.Speed) / float64(g.cfg.TPS)
	}
	if c, ok := g.scene.Manager.AudioClock().(*ExternalClock); ok {
		c.Set(g.time)
	}
	if g.cfg.UpdateFunc != nil {
		if err := g.cfg.UpdateFunc(float32(g.time)); err != nil {
			return err
		}
	}
	g.scene.Update(float32(g.time))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.ClearColor.toRGBA())
	if g.cfg.Renderer != nil {
		g.cfg.Renderer.Draw(screen, g.scene.Camera)
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nT: %.2f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.time))
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and plays the scene until the window closes or
// UpdateFunc fails. It closes the scene on return.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: window size %dx%d must be positive", cfg.Width, cfg.Height)
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Speed == 0 {
		cfg.Speed = 1
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)

	scene.Camera.Viewport = Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	scene.Camera.MarkDirty()
	defer scene.Close()

	g := &game{scene: scene, cfg: cfg, paused: cfg.Paused}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
