package components

// EnemyComponent 敌人组件
//
// 标记一个实体为敌人，并记录其原型与外观。
// 存活状态由 entities.Enemy 维护，这里只保存可被渲染/序列化的数据。
type EnemyComponent struct {
	// Archetype 敌人原型ID（对应 data/enemies.yaml 中的 id）
	Archetype string

	// DisplayName 显示名称（HUD 与信息面板使用）
	DisplayName string

	// Glyph 终端前端使用的单字符外观
	Glyph rune

	// Color 敌人颜色 RGBA
	Color [4]uint8

	// Radius 碰撞/点击半径（像素）
	Radius float64
}
