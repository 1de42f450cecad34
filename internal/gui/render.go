package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/linkfield/internal/field"
)

// textureSurface draws into a render texture that is never cleared, so the
// translucent overlay leaves trails the way a canvas element does.
type textureSurface struct {
	target rl.RenderTexture2D
	w, h   int32
}

func newTextureSurface(w, h int32, bg rl.Color) *textureSurface {
	s := &textureSurface{target: rl.LoadRenderTexture(w, h), w: w, h: h}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(bg)
	rl.EndTextureMode()
	return s
}

// resize swaps in a fresh texture; drawn content is lost, as with a canvas.
func (s *textureSurface) resize(w, h int32, bg rl.Color) {
	if w == s.w && h == s.h {
		return
	}
	rl.UnloadRenderTexture(s.target)
	*s = *newTextureSurface(w, h, bg)
}

func (s *textureSurface) unload() { rl.UnloadRenderTexture(s.target) }

func nrgba(c interface{ NRGBA() color.NRGBA }) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}

func (s *textureSurface) FillRect(x, y, w, h float64, c field.RGBA) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(w), float32(h)), nrgba(c))
}

func (s *textureSurface) FillCircle(cx, cy, r float64, c field.HSLA) {
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), nrgba(c))
}

func (s *textureSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.HSLA) {
	rl.DrawLineEx(rl.NewVector2(float32(x0), float32(y0)), rl.NewVector2(float32(x1), float32(y1)), float32(width), nrgba(c))
}

// present blits the texture to the screen. Render textures are stored
// bottom-up, hence the negative source height.
func (s *textureSurface) present() {
	src := rl.NewRectangle(0, 0, float32(s.w), -float32(s.h))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}
