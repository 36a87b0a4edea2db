package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD 颜色
var (
	colorBackground = color.RGBA{R: 24, G: 28, B: 36, A: 255}
	colorField      = color.RGBA{R: 38, G: 52, B: 44, A: 255}
	colorLaneLine   = color.RGBA{R: 56, G: 74, B: 62, A: 255}
	colorText       = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	colorDimText    = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	colorAccent     = color.RGBA{R: 240, G: 200, B: 80, A: 255}
	colorHealthBack = color.RGBA{R: 60, G: 20, B: 20, A: 255}
	colorHealth     = color.RGBA{R: 90, G: 220, B: 90, A: 255}
)

// hudFace 位图字体（7x13）
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// hudLineHeight 行高
const hudLineHeight = 16.0

// drawText 在 (x, y) 处绘制文字，y 为文字顶部
func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, hudFace, op)
}

// drawTextCentered 以 (cx, cy) 为中心绘制文字
func drawTextCentered(screen *ebiten.Image, s string, cx, cy float64, clr color.Color) {
	w, h := text.Measure(s, hudFace, hudLineHeight)
	drawText(screen, s, cx-w/2, cy-h/2, clr)
}

// rgba 把配置中的颜色转换为 color.RGBA
func rgba(c [4]uint8) color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}
