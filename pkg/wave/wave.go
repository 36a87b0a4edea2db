// Package wave 定义关卡的波次数据：敌人原型、单个波次和波次表。
//
// 本包中的类型构造后都是不可变的，运行时状态由 systems.WaveController 持有。
package wave

import (
	"fmt"

	"github.com/decker502/wavegate/pkg/config"
	"github.com/decker502/wavegate/pkg/entities"
)

// EnemySpec 敌人原型
//
// Produce 在世界中创建一个新的敌人实例，必定成功（原型在构建波次表时已校验）。
type EnemySpec interface {
	Archetype() string
	Produce() *entities.Enemy
}

// RandomSource 随机数来源，*rand.Rand 满足该接口
type RandomSource interface {
	Intn(n int) int
}

// Kind 波次类型
type Kind int

const (
	// KindNormal 普通波：清场后自动推进
	KindNormal Kind = iota
	// KindBoss 首领波：推进规则同普通波
	KindBoss
	// KindOptional 可选波：清场后需要玩家手动请求下一波
	KindOptional
)

// String 返回类型名称（与 YAML 取值一致）
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return config.WaveKindNormal
	case KindBoss:
		return config.WaveKindBoss
	case KindOptional:
		return config.WaveKindOptional
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind 将 YAML 中的类型字符串转换为 Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case config.WaveKindNormal, "":
		return KindNormal, nil
	case config.WaveKindBoss:
		return KindBoss, nil
	case config.WaveKindOptional:
		return KindOptional, nil
	}
	return KindNormal, fmt.Errorf("unknown wave kind %q", s)
}

// Wave 单个波次配置（不可变）
type Wave struct {
	specs         []EnemySpec
	targetCount   int
	minDifficulty int
	kind          Kind
}

// New 创建波次
//
// 参数：
//   - kind: 波次类型
//   - targetCount: 生成配额，负数按 0 处理
//   - minDifficulty: 最低难度门槛
//   - specs: 可选敌人原型，可以为空（本波只消耗配额、不产生敌人）
func New(kind Kind, targetCount, minDifficulty int, specs ...EnemySpec) *Wave {
	if targetCount < 0 {
		targetCount = 0
	}
	copied := make([]EnemySpec, len(specs))
	copy(copied, specs)

	return &Wave{
		specs:         copied,
		targetCount:   targetCount,
		minDifficulty: minDifficulty,
		kind:          kind,
	}
}

// PickRandomSpec 均匀随机选取一个敌人原型
//
// 原型集合为空时返回 (nil, false)，调用方应视为"本次无需生成"而不是错误。
func (w *Wave) PickRandomSpec(rng RandomSource) (EnemySpec, bool) {
	switch len(w.specs) {
	case 0:
		return nil, false
	case 1:
		return w.specs[0], true
	}
	return w.specs[rng.Intn(len(w.specs))], true
}

// IsEligible 当前难度是否达到本波门槛
func (w *Wave) IsEligible(currentDifficulty int) bool {
	return currentDifficulty >= w.minDifficulty
}

// IsOptional 是否为可选波
func (w *Wave) IsOptional() bool {
	return w.kind == KindOptional
}

// Kind 返回波次类型
func (w *Wave) Kind() Kind {
	return w.kind
}

// TargetCount 返回生成配额
func (w *Wave) TargetCount() int {
	return w.targetCount
}

// MinDifficulty 返回最低难度门槛
func (w *Wave) MinDifficulty() int {
	return w.minDifficulty
}

// Specs 返回敌人原型列表的副本
func (w *Wave) Specs() []EnemySpec {
	specs := make([]EnemySpec, len(w.specs))
	copy(specs, w.specs)
	return specs
}
