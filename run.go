package iris

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a resizable window and runs the stage until the window is closed
// or the stage is closed. The stage is closed on return.
func Run(stage *Stage, cfg RunConfig) error {
	defer stage.Close()

	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(stage)
}

// RunConfig returns the window settings of c.
func (c Config) RunConfig() RunConfig {
	return RunConfig{Title: c.Title, Width: c.Width, Height: c.Height}
}
