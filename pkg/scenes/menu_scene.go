package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 菜单布局
const (
	menuButtonWidth   = 220.0
	menuButtonHeight  = 32.0
	menuButtonSpacing = 12.0
	menuTop           = 140.0
)

// levelKeys 数字键 1-9 对应关卡列表前九项
var levelKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// MenuScene 关卡选择菜单
//
// 职责：
//   - 列出所有关卡及其最佳进度
//   - 调整难度（左右方向键或 -/+ 按钮）
//   - 选择关卡后交给 SceneManager 加载
type MenuScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState

	levelIDs     []string
	levelButtons []*components.ButtonComponent
	buttons      []*components.ButtonComponent

	message string
}

// NewMenuScene 创建菜单场景
func NewMenuScene(sm *game.SceneManager) *MenuScene {
	scene := &MenuScene{
		sceneManager: sm,
		gameState:    game.GetGameState(),
	}

	ids, err := config.ListLevelIDs()
	if err != nil {
		log.Printf("[MenuScene] Failed to list levels: %v", err)
		scene.message = "No levels found"
	}
	scene.levelIDs = ids
	scene.createButtons()

	return scene
}

func (s *MenuScene) createButtons() {
	x := (config.GameWindowWidth - menuButtonWidth) / 2
	for i, id := range s.levelIDs {
		levelID := id
		button := &components.ButtonComponent{
			X:       x,
			Y:       menuTop + float64(i)*(menuButtonHeight+menuButtonSpacing),
			Width:   menuButtonWidth,
			Height:  menuButtonHeight,
			Text:    s.levelLabel(i, levelID),
			Enabled: true,
			OnClick: func() { s.startLevel(levelID) },
		}
		s.levelButtons = append(s.levelButtons, button)
	}

	diffY := menuTop - 60
	decrease := &components.ButtonComponent{
		X: x, Y: diffY, Width: 32, Height: menuButtonHeight,
		Text: "-", Enabled: true,
		OnClick: func() { s.changeDifficulty(-1) },
	}
	increase := &components.ButtonComponent{
		X: x + menuButtonWidth - 32, Y: diffY, Width: 32, Height: menuButtonHeight,
		Text: "+", Enabled: true,
		OnClick: func() { s.changeDifficulty(1) },
	}

	s.buttons = append([]*components.ButtonComponent{decrease, increase}, s.levelButtons...)
}

func (s *MenuScene) levelLabel(index int, levelID string) string {
	progress := s.gameState.GetProgressManager().Get(levelID)
	mark := ""
	if progress.Completed {
		mark = " *"
	}
	return fmt.Sprintf("[%d] Level %s  best %d%s", index+1, levelID, progress.BestWave, mark)
}

// changeDifficulty 调整难度
func (s *MenuScene) changeDifficulty(delta int) {
	s.gameState.SetDifficulty(s.gameState.GetDifficulty() + delta)
}

// startLevel 加载关卡
func (s *MenuScene) startLevel(levelID string) {
	if !s.sceneManager.LoadLevel(levelID) {
		s.message = fmt.Sprintf("Failed to load level %s", levelID)
	}
}

// Update 处理菜单输入
func (s *MenuScene) Update(deltaTime float64) {
	updateButtons(s.buttons, readPointer())

	for i, key := range levelKeys {
		if i < len(s.levelIDs) && inpututil.IsKeyJustPressed(key) {
			s.startLevel(s.levelIDs[i])
			return
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		s.changeDifficulty(-1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		s.changeDifficulty(1)
	}
}

// Draw 绘制菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	drawTextCentered(screen, "WAVEGATE", config.GameWindowWidth/2, 40, colorAccent)
	drawTextCentered(screen, fmt.Sprintf("Difficulty %d", s.gameState.GetDifficulty()),
		config.GameWindowWidth/2, menuTop-60+menuButtonHeight/2, colorText)

	drawButtons(screen, s.buttons)

	if s.message != "" {
		drawTextCentered(screen, s.message, config.GameWindowWidth/2, config.GameWindowHeight-40, colorAccent)
	}
	drawTextCentered(screen, "Click a level or press its number. Left/Right change difficulty.",
		config.GameWindowWidth/2, config.GameWindowHeight-20, colorDimText)
}
