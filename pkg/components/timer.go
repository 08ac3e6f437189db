package components

// TimerComponent 单次延时计时器
// 用于处理需要时间延迟的行为（如验证沉淀、成功展示、延迟播放提示音）
// 由 systems.TimerSystem 推进，到期后调用 OnFire 一次
type TimerComponent struct {
	Name        string  // 计时器名称，如 "settle"、"success_display"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	Cancelled   bool    // 是否已取消（取消后不会再触发）
	OnFire      func()  // 到期回调
}

// Active 计时器是否仍在等待触发
func (t *TimerComponent) Active() bool {
	return t != nil && !t.IsReady && !t.Cancelled
}
