package systems

import (
	"github.com/decker502/luobo-captcha/pkg/components"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// ButtonSystem 处理一组按钮的按下/松开
//
// 只有在同一个按钮上按下并松开才触发 OnClick；
// 按住后移出按钮再松开视为取消
type ButtonSystem struct {
	buttons []*components.ButtonComponent
	pressed *components.ButtonComponent
}

// NewButtonSystem 创建按钮系统
func NewButtonSystem(buttons ...*components.ButtonComponent) *ButtonSystem {
	return &ButtonSystem{buttons: buttons}
}

// Buttons 返回管理的按钮
func (s *ButtonSystem) Buttons() []*components.ButtonComponent {
	return s.buttons
}

// HandlePointer 处理一帧的指针事件
//
// 返回：
//   - bool: 事件是否被按钮消费（调用者不应再把它交给验证码）
func (s *ButtonSystem) HandlePointer(event utils.PointerEvent, x, y float64) bool {
	switch event {
	case utils.PointerPressed:
		for _, button := range s.buttons {
			if button.Enabled && button.Contains(x, y) {
				s.pressed = button
				button.Pressed = true
				return true
			}
		}
		return false

	case utils.PointerHeld:
		if s.pressed == nil {
			return false
		}
		s.pressed.Pressed = s.pressed.Contains(x, y)
		return true

	case utils.PointerReleased:
		button := s.pressed
		if button == nil {
			return false
		}
		s.pressed = nil
		button.Pressed = false
		if button.Enabled && button.Contains(x, y) && button.OnClick != nil {
			button.OnClick()
		}
		return true
	}
	return false
}

// Reset 清除按下状态
func (s *ButtonSystem) Reset() {
	if s.pressed != nil {
		s.pressed.Pressed = false
	}
	s.pressed = nil
}
