package reveal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// scrollKey maps a key to a scroll command. page is a fraction of the
// visible height; edge jumps to the start (-1) or end (+1) of the content.
type scrollKey struct {
	key  ebiten.Key
	page float64
	line float64
	edge int
}

var scrollKeys = [...]scrollKey{
	{key: ebiten.KeyArrowDown, line: 1},
	{key: ebiten.KeyArrowUp, line: -1},
	{key: ebiten.KeyPageDown, page: 0.9},
	{key: ebiten.KeySpace, page: 0.9},
	{key: ebiten.KeyPageUp, page: -0.9},
	{key: ebiten.KeyHome, edge: -1},
	{key: ebiten.KeyEnd, edge: 1},
}

const keyScrollDuration = 0.25

// processInput reads mouse wheel and keyboard scrolling. Injected input takes
// priority: while the inject queue is non-empty real input is ignored.
func (s *Scene) processInput() {
	if len(s.injectQueue) > 0 {
		return
	}
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.viewport.ScrollBy(0, -wy*s.WheelStep)
	}
	for _, k := range scrollKeys {
		if inpututil.IsKeyJustPressed(k.key) || (k.line != 0 && ebiten.IsKeyPressed(k.key)) {
			s.applyScrollKey(k)
		}
	}
}

func (s *Scene) applyScrollKey(k scrollKey) {
	vp := s.viewport
	switch {
	case k.line != 0:
		vp.ScrollBy(0, k.line*s.WheelStep/4)
	case k.page != 0:
		h := vp.VisibleBounds().Height
		vp.ScrollTo(vp.ScrollX, vp.ScrollY+k.page*h, keyScrollDuration, nil)
	case k.edge < 0:
		vp.ScrollTo(vp.ScrollX, vp.Bounds.Y, keyScrollDuration, nil)
	case k.edge > 0:
		vp.ScrollTo(vp.ScrollX, vp.Bounds.Bottom(), keyScrollDuration, nil)
	}
}
