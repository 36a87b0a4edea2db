package scenes

import (
	"image/color"

	"github.com/decker502/wavegate/pkg/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 按钮颜色
var (
	colorButton         = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	colorButtonHover    = color.RGBA{R: 80, G: 96, B: 124, A: 255}
	colorButtonDisabled = color.RGBA{R: 44, G: 46, B: 52, A: 255}
	colorButtonBorder   = color.RGBA{R: 120, G: 130, B: 150, A: 255}
)

// pointerState 一帧的鼠标输入
type pointerState struct {
	X, Y     float64
	Released bool // 左键本帧释放
}

// readPointer 读取当前鼠标状态
func readPointer() pointerState {
	x, y := ebiten.CursorPosition()
	return pointerState{
		X:        float64(x),
		Y:        float64(y),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// updateButtons 更新悬停状态并在释放时触发点击
//
// 返回点击是否被某个按钮消费（包括禁用按钮，避免点击穿透到战场）。
func updateButtons(buttons []*components.ButtonComponent, pointer pointerState) bool {
	consumed := false
	for _, button := range buttons {
		button.IsHovered = button.Enabled && button.Contains(pointer.X, pointer.Y)
		if !pointer.Released || consumed || !button.Contains(pointer.X, pointer.Y) {
			continue
		}
		consumed = true
		if button.Enabled && button.OnClick != nil {
			button.OnClick()
		}
	}
	return consumed
}

// drawButtons 绘制按钮：背景、边框、居中文字
func drawButtons(screen *ebiten.Image, buttons []*components.ButtonComponent) {
	for _, button := range buttons {
		bg := colorButton
		textColor := color.Color(colorText)
		switch {
		case !button.Enabled:
			bg = colorButtonDisabled
			textColor = colorDimText
		case button.IsHovered:
			bg = colorButtonHover
		}

		x, y := float32(button.X), float32(button.Y)
		w, h := float32(button.Width), float32(button.Height)
		vector.DrawFilledRect(screen, x, y, w, h, bg, false)
		vector.StrokeRect(screen, x, y, w, h, 1, colorButtonBorder, false)
		drawTextCentered(screen, button.Text, button.X+button.Width/2, button.Y+button.Height/2, textColor)
	}
}
