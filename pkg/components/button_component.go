package components

// ButtonShape 按钮外形
type ButtonShape int

const (
	// ButtonShapeRect 矩形按钮（验证、跳过）
	ButtonShapeRect ButtonShape = iota
	// ButtonShapeRound 圆形图标按钮（刷新、重听、关闭）
	ButtonShapeRound
)

// ButtonComponent 弹窗按钮
// 纯数据：位置、文字、状态和点击回调，由 systems.ButtonSystem 处理输入
type ButtonComponent struct {
	// Label 按钮文字或图标字符
	Label string
	// Shape 外形
	Shape ButtonShape

	// X, Y 左上角屏幕坐标
	X, Y float64
	// Width, Height 尺寸
	Width, Height float64

	// Enabled 是否可点击
	Enabled bool
	// Pressed 指针是否在按钮上按住（绘制按下态）
	Pressed bool

	// OnClick 在按钮上按下并松开时调用
	OnClick func()
}

// Contains 点是否在按钮范围内
func (b *ButtonComponent) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
