package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "wavegate"

// DefaultDifficulty 玩家未选择难度且关卡未指定时的难度
const DefaultDifficulty = 1

// GameState 存储全局游戏状态
// 这是一个单例，用于管理跨场景和跨系统的全局状态数据
type GameState struct {
	// Difficulty 当前难度（序数，越大越难），波次的难度门槛与之比较
	Difficulty int

	// CurrentLevelID 当前关卡ID，不在关卡中时为空
	CurrentLevelID string

	// difficultyChosen 难度由玩家（命令行或菜单）设置过，此后不再使用关卡默认难度
	difficultyChosen bool

	gdataManager *gdata.Manager    // 可为 nil（降级模式）
	progress     *ProgressManager // 关卡进度
}

// 全局单例实例（这是架构规范允许的唯一全局变量）
var globalGameState *GameState

// GetGameState 返回全局 GameState 单例
// 使用延迟初始化模式，确保整个游戏生命周期只有一个实例
//
// gdata 初始化失败时以降级模式运行：进度只保存在内存中。
func GetGameState() *GameState {
	if globalGameState == nil {
		manager, err := gdata.Open(gdata.Config{AppName: AppName})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable, progress will not persist: %v", err)
			manager = nil
		}
		globalGameState = newGameState(manager)
	}
	return globalGameState
}

func newGameState(manager *gdata.Manager) *GameState {
	return &GameState{
		Difficulty:   DefaultDifficulty,
		gdataManager: manager,
		progress:     NewProgressManager(manager),
	}
}

// resetGlobalGameState 重置单例（仅测试使用）
func resetGlobalGameState() {
	globalGameState = nil
}

// GetGdataManager 返回 gdata 存储管理器，降级模式下为 nil
func (gs *GameState) GetGdataManager() *gdata.Manager {
	return gs.gdataManager
}

// GetProgressManager 返回关卡进度管理器
func (gs *GameState) GetProgressManager() *ProgressManager {
	return gs.progress
}

// GetDifficulty 返回当前难度
func (gs *GameState) GetDifficulty() int {
	return gs.Difficulty
}

// SetDifficulty 设置难度，负数按 0 处理
func (gs *GameState) SetDifficulty(difficulty int) {
	if difficulty < 0 {
		difficulty = 0
	}
	gs.Difficulty = difficulty
	gs.difficultyChosen = true
}

// DifficultyChosen 返回玩家是否设置过难度
func (gs *GameState) DifficultyChosen() bool {
	return gs.difficultyChosen
}

// ApplyLevelDifficulty 玩家未设置难度时采用关卡默认难度
func (gs *GameState) ApplyLevelDifficulty(levelDefault int) {
	if gs.difficultyChosen {
		return
	}
	if levelDefault < 0 {
		levelDefault = 0
	}
	gs.Difficulty = levelDefault
}

// EnterLevel 记录进入关卡
func (gs *GameState) EnterLevel(levelID string) {
	gs.CurrentLevelID = levelID
	gs.progress.RecordAttempt(levelID)
	if err := gs.progress.Save(); err != nil {
		log.Printf("[GameState] Warning: failed to save attempt for level %s: %v", levelID, err)
	}
}

// LeaveLevel 记录离开关卡
func (gs *GameState) LeaveLevel() {
	gs.CurrentLevelID = ""
}
