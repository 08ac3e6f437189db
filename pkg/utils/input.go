// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// PointerEvent 指针在一帧内的变化
type PointerEvent int

const (
	// PointerNone 没有按下
	PointerNone PointerEvent = iota
	// PointerPressed 本帧刚按下
	PointerPressed
	// PointerHeld 持续按住
	PointerHeld
	// PointerReleased 本帧刚松开
	PointerReleased
)

// String 返回事件名称（日志用）
func (e PointerEvent) String() string {
	switch e {
	case PointerPressed:
		return "pressed"
	case PointerHeld:
		return "held"
	case PointerReleased:
		return "released"
	default:
		return "none"
	}
}

// PointerSample 一帧的指针原始状态
// 统一鼠标左键和第一个触摸点
type PointerSample struct {
	Pressed bool
	X, Y    int
	Touch   bool // 是否来自触摸
}

// SamplePointer 读取当前帧的指针状态
// 优先使用触摸，没有触摸时使用鼠标
func SamplePointer() PointerSample {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return PointerSample{Pressed: true, X: x, Y: y, Touch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerSample{
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		X:       x,
		Y:       y,
	}
}

// PointerTracker 把逐帧的指针状态转换为按下/按住/松开事件
//
// 触摸松开时已经读不到触摸点坐标，所以松开事件使用最后一次按住时的位置；
// 鼠标松开使用当前光标位置
type PointerTracker struct {
	pressed      bool
	touch        bool
	lastX, lastY int
	pressX       int
	pressY       int
}

// Feed 输入一帧的指针状态
//
// 返回：
//   - PointerEvent: 本帧事件
//   - x, y: 事件位置
func (t *PointerTracker) Feed(sample PointerSample) (PointerEvent, int, int) {
	switch {
	case sample.Pressed && !t.pressed:
		t.pressed = true
		t.touch = sample.Touch
		t.lastX, t.lastY = sample.X, sample.Y
		t.pressX, t.pressY = sample.X, sample.Y
		return PointerPressed, sample.X, sample.Y

	case sample.Pressed:
		t.lastX, t.lastY = sample.X, sample.Y
		return PointerHeld, sample.X, sample.Y

	case t.pressed:
		t.pressed = false
		if !t.touch {
			t.lastX, t.lastY = sample.X, sample.Y
		}
		return PointerReleased, t.lastX, t.lastY

	default:
		return PointerNone, sample.X, sample.Y
	}
}

// Update 读取 Ebitengine 输入并返回本帧事件
func (t *PointerTracker) Update() (PointerEvent, int, int) {
	return t.Feed(SamplePointer())
}

// PressPosition 最近一次按下的位置
func (t *PointerTracker) PressPosition() (int, int) {
	return t.pressX, t.pressY
}

// IsPressed 是否处于按住状态
func (t *PointerTracker) IsPressed() bool {
	return t.pressed
}

// Reset 清除状态（切换场景时调用）
func (t *PointerTracker) Reset() {
	*t = PointerTracker{}
}
