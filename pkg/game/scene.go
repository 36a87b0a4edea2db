package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., level select menu, a running level).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Leaver 是一个可选接口，场景被切换掉之前调用 OnLeave
//
// 关卡场景借此释放实体、停止计时器。
type Leaver interface {
	OnLeave()
}
