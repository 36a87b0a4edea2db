package components

// SpawnTimerComponent 生成计时器组件
// 存储 SpawnScheduler 的计时状态
//
// 时间单位说明：
// 计时沿用厘秒 (centiseconds, cs) 作为基准
// - 1 厘秒 = 0.01 秒
// - deltaTime 换算为厘秒后的小数部分累积在 AccumulatedCs 中，避免帧率波动导致漂移
type SpawnTimerComponent struct {
	// IntervalCs 触发间隔（厘秒）
	IntervalCs int

	// CountdownCs 距下一次触发的倒计时（厘秒）
	// 每帧递减，当 <= 0 时触发并重新装填 IntervalCs
	CountdownCs int

	// AccumulatedCs 累积的小数部分（用于精确计时）
	AccumulatedCs float64

	// IsActive 是否处于运行状态
	// 未运行时倒计时不递减，也不会触发回调
	IsActive bool

	// FiredCount 自上次 Start 以来的触发次数（调试用）
	FiredCount int
}
