package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定ID的关卡场景，避免循环依赖
type SceneFactory func(levelID string) Scene

// 内置路由
const (
	RouteMenu = "menu"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
//
// SceneManager 同时是关卡的导航目标：ExitLevel 切回菜单路由。
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory            // 关卡场景工厂
	routes       map[string]func() Scene // 命名路由

	// pending 在 Update 结束后才切换，避免场景在自己的 Update 中被替换
	pending  Scene
	updating bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		routes: make(map[string]func() Scene),
	}
}

// SetSceneFactory 设置关卡场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// Register 注册命名路由
func (sm *SceneManager) Register(route string, factory func() Scene) {
	sm.routes[route] = factory
}

// SwitchTo changes the active scene to the provided scene.
//
// 在场景 Update 过程中调用时，切换推迟到本次 Update 结束。
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.updating {
		sm.pending = scene
		return
	}
	sm.replace(scene)
}

func (sm *SceneManager) replace(scene Scene) {
	if leaver, ok := sm.currentScene.(Leaver); ok && sm.currentScene != scene {
		leaver.OnLeave()
	}
	sm.currentScene = scene
}

// Goto 切换到命名路由，路由不存在时返回 false
func (sm *SceneManager) Goto(route string) bool {
	factory, ok := sm.routes[route]
	if !ok {
		log.Printf("[SceneManager] 错误: 未注册的路由: %s", route)
		return false
	}
	sm.SwitchTo(factory())
	log.Printf("[SceneManager] 切换到: %s", route)
	return true
}

// ExitLevel 离开关卡，回到菜单
func (sm *SceneManager) ExitLevel() {
	GetGameState().LeaveLevel()
	sm.Goto(RouteMenu)
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	if sm.pending != nil {
		return sm.pending
	}
	return sm.currentScene
}

// LoadLevel 加载指定ID的关卡场景
// levelID: 关卡ID，如 "1-1", "1-2"
func (sm *SceneManager) LoadLevel(levelID string) bool {
	log.Printf("[SceneManager] 加载关卡: %s", levelID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(levelID)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建关卡场景: %s", levelID)
		return false
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到关卡: %s", levelID)
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.updating = true
		sm.currentScene.Update(deltaTime)
		sm.updating = false
	}

	if sm.pending != nil {
		next := sm.pending
		sm.pending = nil
		sm.replace(next)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
