package captcha

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
	"github.com/decker502/luobo-captcha/pkg/systems"
)

// 点击验证码时间参数
const (
	ClickSettleDelay         = 300 * time.Millisecond  // verifying -> success
	ClickSuccessDisplayDelay = 500 * time.Millisecond  // success -> OnSuccess
	RetryHintMinDelay        = 500 * time.Millisecond  // 答错后重播提示音的最短延迟
	RetryHintMaxDelay        = 1000 * time.Millisecond // 答错后重播提示音的最长延迟
)

// 计时器名称
const (
	timerSettle         = "settle"
	timerSuccessDisplay = "success_display"
	timerVerify         = "verify"
	timerFailureDisplay = "failure_display"
)

// ClickChallenge 点击位置验证码
//
// 用户按住图片中的某个区域会显示该区域的"激活"图，松开即提交：
//   - 松开时激活区域是正确答案：verifying -> (300ms) success -> (500ms) OnSuccess
//   - 松开时激活区域不是正确答案：恢复底图，保持 pending，延迟重播提示音
//
// 正确答案在创建时随机选定，直到实例销毁都不会改变（Refresh 也不会重新抽取）
// 所有方法都应在游戏循环 goroutine 中调用
type ClickChallenge struct {
	id        string
	template  *config.ClickTemplate
	cues      CuePlayer
	random    game.Random
	callbacks *onceCallbacks
	timers    *systems.TimerSystem

	correct      *config.Area // 正确答案，模板没有热区时为 nil
	active       *config.Area // 当前按住的热区
	currentImage string       // 当前显示的图片路径
	prompt       string
	status       Status
	holding      bool // 指针是否处于按下状态
	unmounted    bool
}

// NewClickChallenge 创建点击验证码并立即播放正确答案的提示音
//
// 参数：
//   - template: 点击模板（调用者保证已通过目录校验）
//   - cues: 提示音播放器
//   - random: 随机源，用于抽取正确答案和重试延迟
//   - callbacks: 结果回调
//
// 返回：
//   - *ClickChallenge: 处于 pending 状态的验证码
func NewClickChallenge(template *config.ClickTemplate, cues CuePlayer, random game.Random, callbacks Callbacks) *ClickChallenge {
	c := &ClickChallenge{
		id:           uuid.NewString(),
		template:     template,
		cues:         cues,
		random:       random,
		callbacks:    newOnceCallbacks(callbacks),
		timers:       systems.NewTimerSystem(),
		currentImage: template.DefaultImage(),
		status:       StatusPending,
	}

	if len(template.Areas) > 0 {
		c.correct = &template.Areas[random.IntN(len(template.Areas))]
		c.prompt = config.Prompt(template.PromptTemplate, c.correct.Label)
		log.Printf("[ClickChallenge] %s: template=%s answer=%s", c.id, template.ID, c.correct.Name)
		c.cues.Play(c.correct.Name, game.PlayOptions{Force: true})
	} else {
		log.Printf("[ClickChallenge] %s: template %s has no areas", c.id, template.ID)
	}

	return c
}

// PointerDown 指针按下
// 只在 pending 状态有效；命中热区时切换为该热区的状态图
//
// 参数：
//   - clientX, clientY: 指针屏幕坐标
//   - rendered: 图片绘制区域
//
// 返回：
//   - *config.Area: 命中的热区，没有命中为 nil
func (c *ClickChallenge) PointerDown(clientX, clientY float64, rendered Rect) *config.Area {
	if c.unmounted || c.status != StatusPending {
		return nil
	}

	c.holding = true

	x, y, ok := MapPointer(clientX, clientY, rendered, c.template.ImageSize)
	if !ok {
		return nil
	}

	area := HitTest(c.template.Areas, x, y)
	if area == nil {
		return nil
	}

	c.active = area
	c.currentImage = c.template.StateImage(area.StateIndex)
	return area
}

// PointerUp 指针在图片上松开，提交当前激活的热区
func (c *ClickChallenge) PointerUp() {
	if c.unmounted || !c.holding || c.status != StatusPending {
		return
	}
	c.holding = false

	if c.active == nil {
		return
	}

	if c.correct != nil && c.active.Name == c.correct.Name {
		// 正确：保留激活图，播放"真棒"
		c.status = StatusVerifying
		c.cues.Play(SuccessCue, game.PlayOptions{Force: true})
		c.timers.Schedule(timerSettle, ClickSettleDelay, c.settle)
		log.Printf("[ClickChallenge] %s: hit %s, verifying", c.id, c.active.Name)
		return
	}

	log.Printf("[ClickChallenge] %s: miss %s", c.id, c.active.Name)
	c.resetImage()
	if c.correct != nil {
		delay := game.RandomDuration(c.random, RetryHintMinDelay, RetryHintMaxDelay)
		c.cues.Play(c.correct.Name, game.PlayOptions{Delay: delay})
	}
}

// PointerCancel 触摸被取消或在图片外松开
// 与答错一样恢复底图，但不重播提示音
func (c *ClickChallenge) PointerCancel() {
	if c.unmounted || !c.holding {
		return
	}
	c.holding = false
	if c.status == StatusPending {
		c.resetImage()
	}
}

// Refresh 重新尝试同一道题
// 取消验证中的计时器，恢复 pending 和底图，不重新抽取正确答案
func (c *ClickChallenge) Refresh() {
	if c.unmounted {
		return
	}
	c.timers.CancelAll()
	c.status = StatusPending
	c.holding = false
	c.resetImage()
}

// ReplayHint "重听"按钮：强制立即播放提示音
func (c *ClickChallenge) ReplayHint() game.PlayResult {
	if c.unmounted || c.correct == nil {
		return game.PlayNoClips
	}
	return c.cues.Play(c.correct.Name, game.PlayOptions{Force: true})
}

// Close 用户关闭弹窗：通知宿主并卸载
func (c *ClickChallenge) Close() {
	if c.unmounted {
		return
	}
	c.callbacks.fireClose()
	c.Unmount()
}

// Unmount 卸载验证码：取消全部计时器并停止提示音
// 可重复调用
func (c *ClickChallenge) Unmount() {
	if c.unmounted {
		return
	}
	c.unmounted = true
	c.holding = false
	c.timers.CancelAll()
	c.cues.StopAll()
}

// Update 推进验证码自身的计时器
func (c *ClickChallenge) Update(deltaTime float64) {
	if c.unmounted {
		return
	}
	c.timers.Update(deltaTime)
}

func (c *ClickChallenge) settle() {
	c.status = StatusSuccess
	log.Printf("[ClickChallenge] %s: success", c.id)
	c.timers.Schedule(timerSuccessDisplay, ClickSuccessDisplayDelay, c.callbacks.fireSuccess)
}

func (c *ClickChallenge) resetImage() {
	c.active = nil
	c.currentImage = c.template.DefaultImage()
}

// ID 实例 ID（日志用）
func (c *ClickChallenge) ID() string { return c.id }

// Template 返回模板
func (c *ClickChallenge) Template() *config.ClickTemplate { return c.template }

// Status 当前状态
func (c *ClickChallenge) Status() Status { return c.status }

// Verifying 是否处于验证中
func (c *ClickChallenge) Verifying() bool { return c.status == StatusVerifying }

// CorrectArea 正确答案
func (c *ClickChallenge) CorrectArea() *config.Area { return c.correct }

// ActiveArea 当前按住的热区
func (c *ClickChallenge) ActiveArea() *config.Area { return c.active }

// CurrentImage 当前应显示的图片路径
func (c *ClickChallenge) CurrentImage() string { return c.currentImage }

// Prompt 提示文案
func (c *ClickChallenge) Prompt() string { return c.prompt }

// Holding 指针是否处于按下状态
func (c *ClickChallenge) Holding() bool { return c.holding }

// Unmounted 是否已卸载
func (c *ClickChallenge) Unmounted() bool { return c.unmounted }
