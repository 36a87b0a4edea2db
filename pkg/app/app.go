// Package app 提供桌面前端的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：创建场景管理器、注册菜单路由与关卡工厂，
// 并实现 ebiten.Game 接口驱动当前场景。
package app

import (
	"image/color"
	"io"
	"log"

	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/game"
	"github.com/decker502/wavegate/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定直接进入的关卡（如 "1-2"），为空则显示关卡菜单
	Level string
	// Difficulty 初始难度，负数表示使用各关卡的默认难度
	Difficulty int
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	verbose      bool
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 初始化嵌入数据。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameState := game.GetGameState()
	if cfg.Difficulty >= 0 {
		gameState.SetDifficulty(cfg.Difficulty)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.Register(game.RouteMenu, func() game.Scene {
		return scenes.NewMenuScene(sceneManager)
	})
	sceneManager.SetSceneFactory(func(levelID string) game.Scene {
		scene, err := scenes.NewLevelScene(sceneManager, levelID, cfg.Verbose)
		if err != nil {
			log.Printf("[App] Failed to create level %s: %v", levelID, err)
			return nil
		}
		return scene
	})

	started := false
	if cfg.Level != "" {
		started = sceneManager.LoadLevel(cfg.Level)
		if !started {
			log.Printf("[App] Level %s unavailable, falling back to menu", cfg.Level)
		}
	}
	if !started {
		sceneManager.Goto(game.RouteMenu)
	}

	return &App{
		sceneManager: sceneManager,
		verbose:      cfg.Verbose,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时左右 letterbox 填充黑色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 关闭前结束当前关卡（进度在清场时已保存）
func (a *App) Close() {
	if leaver, ok := a.sceneManager.GetCurrentScene().(game.Leaver); ok {
		leaver.OnLeave()
	}
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
