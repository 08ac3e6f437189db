package config

// 布局配置常量
// 本文件定义了窗口、验证码弹窗和九宫格的布局参数
// 所有坐标使用逻辑屏幕坐标（Layout 返回的尺寸），Ebitengine 负责缩放到实际窗口

// 窗口配置
const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800
	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600
)

// 点击验证码弹窗
const (
	// ClickWidgetWidth 弹窗宽度，图片按此宽度渲染
	// 与模板 imageSize 不同时，热区坐标按比例缩放
	ClickWidgetWidth = 360.0

	// WidgetHeaderHeight 标题栏高度
	WidgetHeaderHeight = 44.0

	// ClickPromptHeight 提示文字栏高度
	ClickPromptHeight = 60.0

	// WidgetFooterHeight 底部操作栏高度
	WidgetFooterHeight = 52.0

	// ClickWidgetHeight 弹窗总高度（标题 + 提示 + 正方形图片 + 底栏）
	ClickWidgetHeight = WidgetHeaderHeight + ClickPromptHeight + ClickWidgetWidth + WidgetFooterHeight
)

// 九宫格验证码弹窗
const (
	// GridColumns 九宫格列数
	GridColumns = 3
	// GridRows 九宫格行数
	GridRows = 3
	// GridCellCount 格子总数
	GridCellCount = GridColumns * GridRows

	// GridCellSize 每个格子的边长（像素）
	GridCellSize = 110.0
	// GridCellGap 格子间距
	GridCellGap = 4.0
	// GridPadding 九宫格四周留白
	GridPadding = 4.0

	// GridHeaderHeight 九宫格标题区高度（包含提示文字）
	GridHeaderHeight = 96.0

	// GridWidgetWidth 弹窗宽度
	GridWidgetWidth = GridPadding*2 + GridCellSize*GridColumns + GridCellGap*(GridColumns-1)

	// GridWidgetHeight 弹窗总高度
	GridWidgetHeight = GridHeaderHeight + GridWidgetWidth + WidgetFooterHeight
)

// 菜单触发框
const (
	// TriggerBoxWidth 触发框宽度
	TriggerBoxWidth = 300.0
	// TriggerBoxHeight 触发框高度
	TriggerBoxHeight = 72.0
	// TriggerBoxTop 触发框顶部 Y
	TriggerBoxTop = 260.0
	// TriggerBoxGap 两个触发框的水平间距
	TriggerBoxGap = 60.0
)

// 底栏按钮
const (
	// FooterButtonSize 圆形图标按钮直径
	FooterButtonSize = 32.0
	// VerifyButtonWidth 验证按钮宽度
	VerifyButtonWidth = 88.0
	// VerifyButtonHeight 验证按钮高度
	VerifyButtonHeight = 34.0
)

// WidgetOrigin 返回居中弹窗的左上角坐标
func WidgetOrigin(width, height float64) (float64, float64) {
	return (GameWindowWidth - width) / 2, (GameWindowHeight - height) / 2
}

// GridCellOrigin 返回第 index 个格子相对九宫格区域左上角的偏移
// index 按行优先排列（0..8）
func GridCellOrigin(index int) (float64, float64) {
	col := index % GridColumns
	row := index / GridColumns
	x := GridPadding + float64(col)*(GridCellSize+GridCellGap)
	y := GridPadding + float64(row)*(GridCellSize+GridCellGap)
	return x, y
}
