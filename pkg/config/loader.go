package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/decker502/wavegate/pkg/embedded"
)

// 数据文件路径
const (
	// EnemyCatalogPath 敌人原型目录
	EnemyCatalogPath = "data/enemies.yaml"

	levelDir    = "data/levels"
	levelPrefix = "level-"
	levelSuffix = ".yaml"
)

// LevelPath 返回关卡ID对应的配置文件路径，如 "1-1" -> "data/levels/level-1-1.yaml"
func LevelPath(levelID string) string {
	return levelDir + "/" + levelPrefix + levelID + levelSuffix
}

// ListLevelIDs 列出所有可用关卡ID（排序）
//
// 嵌入资源已初始化时只列出嵌入的关卡，否则扫描磁盘上的 data/levels。
func ListLevelIDs() ([]string, error) {
	pattern := levelDir + "/" + levelPrefix + "*" + levelSuffix

	var (
		matches []string
		err     error
	)
	if embedded.IsInitialized() {
		matches, err = embedded.Glob(pattern)
	} else {
		matches, err = filepath.Glob(filepath.FromSlash(pattern))
	}
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		name := filepath.Base(filepath.ToSlash(match))
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, levelPrefix), levelSuffix))
	}
	sort.Strings(ids)
	return ids, nil
}

// readConfigFile 读取配置文件
//
// 嵌入资源已初始化且包含该路径时从嵌入资源读取（发布版本），
// 否则从磁盘读取（命令行工具、测试、自定义关卡）。
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
