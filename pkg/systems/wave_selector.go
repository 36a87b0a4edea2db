package systems

import (
	"log"

	"github.com/decker502/wavegate/pkg/wave"
)

// WaveSelector 波次选择器
// 负责在推进波次时决定下一个波次索引
//
// 默认严格按顺序推进；开启 skipIneligible 后，
// 难度门槛高于当前难度的波次会被跳过。
type WaveSelector struct {
	table          *wave.Table
	skipIneligible bool
}

// NewWaveSelector 创建波次选择器
func NewWaveSelector(table *wave.Table, skipIneligible bool) *WaveSelector {
	return &WaveSelector{
		table:          table,
		skipIneligible: skipIneligible,
	}
}

// SkipsIneligible 是否跳过难度不足的波次
func (s *WaveSelector) SkipsIneligible() bool {
	return s.skipIneligible
}

// Next 从 from 开始（含）查找下一个要进入的波次索引
//
// 参数:
//
//	from - 候选起始索引
//	difficulty - 当前难度
//
// 返回:
//
//	波次索引；没有可进入的波次时返回 table.Len()
func (s *WaveSelector) Next(from, difficulty int) int {
	if from < 0 {
		from = 0
	}
	if !s.skipIneligible {
		return from
	}

	for i := from; i < s.table.Len(); i++ {
		if s.table.Current(i).IsEligible(difficulty) {
			return i
		}
		log.Printf("[WaveSelector] Skipping wave %d (min difficulty %d > %d)",
			i, s.table.Current(i).MinDifficulty(), difficulty)
	}
	return s.table.Len()
}

// CountEligible 统计当前难度下可进入的波次数量
func (s *WaveSelector) CountEligible(difficulty int) int {
	count := 0
	for i := 0; i < s.table.Len(); i++ {
		if s.table.Current(i).IsEligible(difficulty) {
			count++
		}
	}
	return count
}
