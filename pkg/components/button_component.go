package components

// ButtonComponent 按钮组件
// 纯数据组件：矩形区域、文字、可用状态和点击回调
//
// 关卡界面的"下一波"与"退出"按钮都用它描述，
// 点击检测由 scenes 包完成，回调在主循环中同步执行。
type ButtonComponent struct {
	// X, Y 左上角屏幕坐标
	X, Y float64

	// Width, Height 按钮尺寸（像素）
	Width, Height float64

	// Text 按钮文字
	Text string

	// Enabled 是否可点击（不可点击时以灰色绘制，点击被忽略）
	Enabled bool

	// IsHovered 鼠标是否悬停
	IsHovered bool

	// OnClick 点击回调
	OnClick func()
}

// Contains 判断屏幕坐标是否落在按钮内
func (b *ButtonComponent) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
