package wave

import "fmt"

// Table 波次表
//
// 关卡开始时固定，长度不变。索引只能由 WaveController 单调向前推进。
type Table struct {
	waves []*Wave
}

// NewTable 创建波次表
func NewTable(waves ...*Wave) *Table {
	copied := make([]*Wave, len(waves))
	copy(copied, waves)
	return &Table{waves: copied}
}

// Len 波次数量
func (t *Table) Len() int {
	return len(t.waves)
}

// Current 返回指定索引的波次
//
// 越界属于调用方违反前置条件（应先检查 HasNext），直接 panic。
func (t *Table) Current(index int) *Wave {
	if index < 0 || index >= len(t.waves) {
		panic(fmt.Sprintf("wave: index %d out of range [0, %d)", index, len(t.waves)))
	}
	return t.waves[index]
}

// HasNext 指定索引之后是否还有波次
func (t *Table) HasNext(index int) bool {
	return index+1 < len(t.waves)
}

// InRange 索引是否有效
func (t *Table) InRange(index int) bool {
	return index >= 0 && index < len(t.waves)
}
