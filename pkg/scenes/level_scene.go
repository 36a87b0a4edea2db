package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/wavegate/pkg/components"
	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/game"
	"github.com/decker502/wavegate/pkg/level"
	"github.com/decker502/wavegate/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// bannerDuration 波次横幅显示时长（秒）
const bannerDuration = 2.0

// clickDamage 每次点击造成的伤害
const clickDamage = 1

// LevelScene 关卡场景
//
// 职责：
//   - 持有一个 level.Session，每帧驱动其 Update
//   - N 键 / "下一波" 按钮请求下一波，Q / Esc / "退出" 按钮结束关卡
//   - 点击战场上的敌人造成伤害
//   - 绘制战场、敌人与 HUD
//
// 场景自身实现 systems.Navigator：控制器 Teardown 后由场景通知 SceneManager 回到菜单。
type LevelScene struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	session      *level.Session
	levelID      string

	nextWaveButton *components.ButtonComponent
	quitButton     *components.ButtonComponent
	buttons        []*components.ButtonComponent

	banner      string
	bannerTimer float64

	// leaving 场景已被切走，Teardown 不再触发导航
	leaving bool
}

// NewLevelScene 创建关卡场景
//
// 参数：
//   - sm: 场景管理器（Teardown 后的导航目标）
//   - levelID: 关卡ID，如 "1-1"
//   - verbose: 是否输出详细日志
func NewLevelScene(sm *game.SceneManager, levelID string, verbose bool) (*LevelScene, error) {
	levelConfig, catalog, err := level.Load(levelID)
	if err != nil {
		return nil, err
	}

	gs := game.GetGameState()
	gs.ApplyLevelDifficulty(levelConfig.Difficulty)

	scene := &LevelScene{
		sceneManager: sm,
		gameState:    gs,
		levelID:      levelID,
	}

	session, err := level.NewSession(levelConfig, catalog, level.Options{
		Difficulty: gs.GetDifficulty,
		Navigator:  scene,
		World: systems.EnemyWorldConfig{
			Width:  config.FieldWidth,
			Height: config.FieldHeight,
			Lanes:  config.LaneCount,
		},
		Verbose: verbose,
	})
	if err != nil {
		return nil, err
	}
	scene.session = session

	session.Controller.AddListener(gs.GetProgressManager().Recorder(levelID))
	session.Controller.AddListener(systems.WaveListenerFuncs{
		WaveStarted:   scene.onWaveStarted,
		WaveCleared:   scene.onWaveCleared,
		LevelComplete: scene.onLevelComplete,
	})

	scene.createButtons()

	gs.EnterLevel(levelID)
	session.Start()

	log.Printf("[LevelScene] Level %s started at difficulty %d", levelID, gs.GetDifficulty())
	return scene, nil
}

func (s *LevelScene) createButtons() {
	y := config.FieldOffsetY + config.FieldHeight + 6
	s.nextWaveButton = &components.ButtonComponent{
		X: 16, Y: y, Width: 140, Height: 28,
		Text:    "Next wave [N]",
		OnClick: s.requestNextWave,
	}
	s.quitButton = &components.ButtonComponent{
		X: config.GameWindowWidth - 16 - 100, Y: y, Width: 100, Height: 28,
		Text:    "Quit [Q]",
		Enabled: true,
		OnClick: s.quit,
	}
	s.buttons = []*components.ButtonComponent{s.nextWaveButton, s.quitButton}
}

// ExitLevel 实现 systems.Navigator
func (s *LevelScene) ExitLevel() {
	if s.leaving {
		return
	}
	s.sceneManager.ExitLevel()
}

// OnLeave 实现 game.Leaver：场景被切走时结束关卡并释放实体
func (s *LevelScene) OnLeave() {
	if s.leaving {
		return
	}
	s.leaving = true
	s.session.Close()
}

// Session 返回关卡会话
func (s *LevelScene) Session() *level.Session {
	return s.session
}

func (s *LevelScene) onWaveStarted(index int) {
	w := s.session.Table.Current(index)
	s.showBanner(fmt.Sprintf("Wave %d/%d: %s", index+1, s.session.Table.Len(), w.Kind()))
}

func (s *LevelScene) onWaveCleared(index int) {
	if s.session.Table.Current(index).IsOptional() {
		s.showBanner(fmt.Sprintf("Wave %d cleared - press N for the next wave", index+1))
	}
}

func (s *LevelScene) onLevelComplete() {
	s.showBanner("Level complete! Press Q to return")
}

func (s *LevelScene) showBanner(message string) {
	s.banner = message
	s.bannerTimer = bannerDuration
}

// requestNextWave 玩家请求下一波
func (s *LevelScene) requestNextWave() {
	if !s.session.Controller.RequestNextWave() {
		log.Printf("[LevelScene] Next wave not available")
	}
}

// quit 结束关卡
func (s *LevelScene) quit() {
	s.session.Controller.Teardown()
}

// handleFieldClick 点击战场（屏幕坐标）
func (s *LevelScene) handleFieldClick(screenX, screenY float64) {
	if !config.InField(screenX, screenY) {
		return
	}
	x, y := config.ScreenToField(screenX, screenY)
	if id, killed := s.session.World.HitAt(x, y, clickDamage); id != 0 && killed {
		log.Printf("[LevelScene] Enemy %d killed by click", id)
	}
}

// Update 更新关卡
func (s *LevelScene) Update(deltaTime float64) {
	if s.leaving {
		return
	}

	s.nextWaveButton.Enabled = s.session.Controller.CanRequestNextWave()

	pointer := readPointer()
	if !updateButtons(s.buttons, pointer) && pointer.Released {
		s.handleFieldClick(pointer.X, pointer.Y)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.requestNextWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.quit()
		return
	}

	s.tick(deltaTime)
}

// tick 推进关卡逻辑（不含输入）
func (s *LevelScene) tick(deltaTime float64) {
	s.session.Update(deltaTime)
	if s.bannerTimer > 0 {
		s.bannerTimer -= deltaTime
	}
}

// Draw 绘制关卡
func (s *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s.drawField(screen)
	s.drawEnemies(screen)
	s.drawHUD(screen)
	drawButtons(screen, s.buttons)
}

func (s *LevelScene) drawField(screen *ebiten.Image) {
	vector.DrawFilledRect(screen,
		float32(config.FieldOffsetX), float32(config.FieldOffsetY),
		float32(config.FieldWidth), float32(config.FieldHeight),
		colorField, false)

	laneHeight := config.FieldHeight / config.LaneCount
	for i := 1; i < config.LaneCount; i++ {
		y := float32(config.FieldOffsetY + laneHeight*float64(i))
		vector.StrokeLine(screen, float32(config.FieldOffsetX), y,
			float32(config.FieldOffsetX+config.FieldWidth), y, 1, colorLaneLine, false)
	}
}

func (s *LevelScene) drawEnemies(screen *ebiten.Image) {
	for _, enemy := range s.session.World.Snapshot() {
		x, y := config.FieldToScreen(enemy.X, enemy.Y)
		if x-enemy.Radius > config.FieldOffsetX+config.FieldWidth {
			continue
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(enemy.Radius), rgba(enemy.Color), true)
		drawTextCentered(screen, string(enemy.Glyph), x, y, colorBackground)

		if enemy.MaxHealth > 1 {
			barWidth := float32(enemy.Radius * 2)
			barX := float32(x - enemy.Radius)
			barY := float32(y - enemy.Radius - 6)
			vector.DrawFilledRect(screen, barX, barY, barWidth, 3, colorHealthBack, false)
			fill := barWidth * float32(enemy.Health) / float32(enemy.MaxHealth)
			vector.DrawFilledRect(screen, barX, barY, fill, 3, colorHealth, false)
		}
	}
}

func (s *LevelScene) drawHUD(screen *ebiten.Image) {
	c := s.session.Controller
	lv := s.session.Level

	drawText(screen, fmt.Sprintf("%s - %s", lv.ID, lv.Name), 16, 8, colorText)

	status := "Complete"
	if w, ok := c.CurrentWave(); ok {
		status = fmt.Sprintf("Wave %d/%d (%s)  spawned %d/%d",
			c.WaveIndex()+1, c.WaveCount(), w.Kind(), c.SpawnedThisWave(), w.TargetCount())
	}
	drawText(screen, status, 16, 8+hudLineHeight, colorText)
	drawText(screen, fmt.Sprintf("Alive %d  Killed %d  Escaped %d  Difficulty %d",
		c.LiveEnemies(), s.session.World.Killed(), s.session.World.Escaped(), s.gameState.GetDifficulty()),
		16, 8+2*hudLineHeight, colorDimText)

	progress := s.gameState.GetProgressManager().Get(s.levelID)
	drawText(screen, fmt.Sprintf("Best wave %d  Time %.1fs", progress.BestWave, s.session.Elapsed()),
		config.GameWindowWidth-220, 8, colorDimText)

	if s.bannerTimer > 0 || c.State() == systems.StateAwaitingAdvance || c.IsLevelComplete() {
		drawTextCentered(screen, s.banner, config.GameWindowWidth/2, config.HUDHeight-12, colorAccent)
	}
}
