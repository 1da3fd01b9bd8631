package iris

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is how often the FPS overlay redraws its text.
const fpsRefresh = 500 * time.Millisecond

// fpsOverlay shows FPS and TPS in the top-left corner. The text is redrawn
// into its own image every fpsRefresh.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed time.Duration
}

func (f *fpsOverlay) update(dt time.Duration) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
		f.elapsed = fpsRefresh
	}
	f.elapsed += dt
	if f.elapsed < fpsRefresh {
		return
	}
	f.elapsed = 0

	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsOverlay) draw(screen *ebiten.Image) {
	if f.img == nil {
		return
	}
	screen.DrawImage(f.img, nil)
}
