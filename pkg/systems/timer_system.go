package systems

import (
	"time"

	"github.com/decker502/luobo-captcha/pkg/components"
)

// TimerSystem 管理一组单次计时器
//
// 职责：
//   - 按 deltaTime 推进所有计时器，到期时调用回调
//   - 支持按名称取消、全部取消（卸载时使用）
//
// 同名计时器只保留最新一个：Schedule 会先取消旧的同名计时器
// 所有回调都在 Update 中同步执行，不使用 goroutine
type TimerSystem struct {
	timers []*components.TimerComponent
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

// Schedule 注册一个单次计时器
//
// 参数：
//   - name: 计时器名称，同名旧计时器会被取消
//   - delay: 延迟时间；<= 0 时在下一次 Update 触发
//   - onFire: 到期回调
//
// 返回：
//   - *components.TimerComponent: 计时器句柄，可用于查询或取消
func (s *TimerSystem) Schedule(name string, delay time.Duration, onFire func()) *components.TimerComponent {
	s.Cancel(name)

	timer := &components.TimerComponent{
		Name:       name,
		TargetTime: delay.Seconds(),
		OnFire:     onFire,
	}
	s.timers = append(s.timers, timer)
	return timer
}

// Cancel 取消指定名称的计时器
func (s *TimerSystem) Cancel(name string) bool {
	cancelled := false
	for _, timer := range s.timers {
		if timer.Name == name && timer.Active() {
			timer.Cancelled = true
			cancelled = true
		}
	}
	return cancelled
}

// CancelAll 取消全部计时器
func (s *TimerSystem) CancelAll() {
	for _, timer := range s.timers {
		timer.Cancelled = true
	}
	s.timers = nil
}

// Pending 指定名称的计时器是否仍在等待
func (s *TimerSystem) Pending(name string) bool {
	for _, timer := range s.timers {
		if timer.Name == name && timer.Active() {
			return true
		}
	}
	return false
}

// Len 等待中的计时器数量
func (s *TimerSystem) Len() int {
	n := 0
	for _, timer := range s.timers {
		if timer.Active() {
			n++
		}
	}
	return n
}

// Update 推进所有计时器
// 回调中新注册的计时器从下一次 Update 开始计时
func (s *TimerSystem) Update(deltaTime float64) {
	if len(s.timers) == 0 {
		return
	}

	// 快照：回调可能调用 Schedule/Cancel/CancelAll 修改 s.timers
	current := s.timers
	for _, timer := range current {
		if !timer.Active() {
			continue
		}
		timer.CurrentTime += deltaTime
		if timer.CurrentTime >= timer.TargetTime {
			timer.IsReady = true
			if timer.OnFire != nil {
				timer.OnFire()
			}
		}
	}

	// 清理已完成或已取消的计时器
	alive := s.timers[:0:0]
	for _, timer := range s.timers {
		if timer.Active() {
			alive = append(alive, timer)
		}
	}
	s.timers = alive
}
