package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// LevelProgress 单个关卡的进度
type LevelProgress struct {
	BestWave  int  `yaml:"bestWave"`  // 清场过的最高波次号（从1开始），0 表示未清场任何波次
	Completed bool `yaml:"completed"` // 是否完成过全部波次
	Attempts  int  `yaml:"attempts"`  // 进入关卡的次数
}

// Progress 所有关卡的进度
type Progress struct {
	Levels map[string]*LevelProgress `yaml:"levels"`
}

// 存储路径常量
const (
	progressObject   = "progress"
	progressProperty = "levels"
)

// ProgressManager 关卡进度管理器
// 负责进度的加载、保存和内存管理
type ProgressManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	progress     *Progress
}

// NewProgressManager 创建进度管理器并尝试加载已保存的进度
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     newProgress(),
	}

	if err := pm.Load(); err != nil {
		// 加载失败不是致命错误，从空进度开始
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}

	return pm
}

func newProgress() *Progress {
	return &Progress{Levels: make(map[string]*LevelProgress)}
}

// Load 从 gdata 加载进度
func (pm *ProgressManager) Load() error {
	if pm.gdataManager == nil {
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		pm.progress = newProgress()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		pm.progress = newProgress()
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var loaded Progress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		pm.progress = newProgress()
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	if loaded.Levels == nil {
		loaded.Levels = make(map[string]*LevelProgress)
	}

	pm.progress = &loaded
	log.Printf("[ProgressManager] Progress loaded: %d levels", len(loaded.Levels))
	return nil
}

// Save 保存进度到 gdata
//
// 降级模式下直接返回 nil。
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (pm *ProgressManager) level(levelID string) *LevelProgress {
	lp, ok := pm.progress.Levels[levelID]
	if !ok {
		lp = &LevelProgress{}
		pm.progress.Levels[levelID] = lp
	}
	return lp
}

// Get 返回关卡进度副本，未记录过的关卡返回零值
func (pm *ProgressManager) Get(levelID string) LevelProgress {
	if lp, ok := pm.progress.Levels[levelID]; ok {
		return *lp
	}
	return LevelProgress{}
}

// LevelIDs 返回有进度记录的关卡ID（排序）
func (pm *ProgressManager) LevelIDs() []string {
	ids := make([]string, 0, len(pm.progress.Levels))
	for id := range pm.progress.Levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RecordAttempt 记录一次进入关卡
func (pm *ProgressManager) RecordAttempt(levelID string) {
	pm.level(levelID).Attempts++
}

// RecordWaveCleared 记录清场的波次号（从1开始），返回是否刷新了最高纪录
func (pm *ProgressManager) RecordWaveCleared(levelID string, waveNumber int) bool {
	lp := pm.level(levelID)
	if waveNumber <= lp.BestWave {
		return false
	}
	lp.BestWave = waveNumber
	return true
}

// RecordCompletion 记录关卡完成
func (pm *ProgressManager) RecordCompletion(levelID string) {
	pm.level(levelID).Completed = true
}

// Recorder 返回记录指定关卡进度的波次监听器
func (pm *ProgressManager) Recorder(levelID string) *ProgressRecorder {
	return &ProgressRecorder{manager: pm, levelID: levelID}
}

// ProgressRecorder 把波次事件写入进度
//
// 满足 systems.WaveListener，清场与完成时立即保存。
type ProgressRecorder struct {
	manager *ProgressManager
	levelID string
}

func (r *ProgressRecorder) OnWaveStarted(index int) {}

func (r *ProgressRecorder) OnWaveCleared(index int) {
	if r.manager.RecordWaveCleared(r.levelID, index+1) {
		r.save()
	}
}

func (r *ProgressRecorder) OnLevelComplete() {
	r.manager.RecordCompletion(r.levelID)
	r.save()
}

func (r *ProgressRecorder) save() {
	if err := r.manager.Save(); err != nil {
		log.Printf("[ProgressManager] Warning: %v", err)
	}
}
