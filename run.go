package reveal

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Debug enables SetDebugMode on the scene before the loop starts.
	Debug bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	width  int
	height int
}

func (g *game) Update() error              { return g.scene.Update() }
func (g *game) Draw(screen *ebiten.Image)  { g.scene.Draw(screen) }
func (g *game) Layout(w, h int) (int, int) { return g.width, g.height }

// Run opens a window and drives the scene with ebiten's game loop until the
// window closes or the update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = int(scene.viewport.Screen.Width)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(scene.viewport.Screen.Height)
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene, width: cfg.Width, height: cfg.Height})
}
