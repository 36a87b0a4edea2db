package components

// PositionComponent 世界坐标（像素）
type PositionComponent struct {
	X, Y float64
}

// VelocityComponent 速度（像素/秒）
type VelocityComponent struct {
	VX, VY float64
}

// LifetimeComponent 敌人在战场上的停留时限
//
// 时限耗尽的敌人视为逃逸，由 EnemyWorld 击杀；没有时限的敌人不挂此组件。
type LifetimeComponent struct {
	MaxLifetime     float64 // 停留时限(秒)
	CurrentLifetime float64 // 已停留时间(秒)
	IsExpired       bool
}
