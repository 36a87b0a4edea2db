package config

// 布局配置常量
// 本文件定义了桌面前端的屏幕布局：顶部 HUD、中间战场、底部按钮栏
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// HUDHeight 顶部 HUD 高度
	HUDHeight = 80.0

	// ButtonBarHeight 底部按钮栏高度
	ButtonBarHeight = 40.0

	// FieldOffsetX 战场在屏幕上的左上角X坐标
	FieldOffsetX = 0.0

	// FieldOffsetY 战场在屏幕上的左上角Y坐标
	FieldOffsetY = HUDHeight

	// FieldWidth 战场宽度（像素）
	FieldWidth = float64(GameWindowWidth)

	// FieldHeight 战场高度（像素）
	FieldHeight = float64(GameWindowHeight) - HUDHeight - ButtonBarHeight

	// LaneCount 战场行数
	LaneCount = 5
)

// ScreenToField 把屏幕坐标转换为战场坐标
func ScreenToField(screenX, screenY float64) (x, y float64) {
	return screenX - FieldOffsetX, screenY - FieldOffsetY
}

// FieldToScreen 把战场坐标转换为屏幕坐标
func FieldToScreen(x, y float64) (screenX, screenY float64) {
	return x + FieldOffsetX, y + FieldOffsetY
}

// InField 屏幕坐标是否落在战场内
func InField(screenX, screenY float64) bool {
	x, y := ScreenToField(screenX, screenY)
	return x >= 0 && x < FieldWidth && y >= 0 && y < FieldHeight
}
