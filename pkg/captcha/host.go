package captcha

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
	"github.com/decker502/luobo-captcha/pkg/systems"
)

// 宿主时间参数
const (
	HostSuccessHideDelay = 800 * time.Millisecond  // 成功后隐藏弹窗
	HostFailureHideDelay = 1500 * time.Millisecond // 失败后清除结果并隐藏弹窗
)

// Mode 验证码模式
type Mode int

const (
	// ModeNone 没有弹窗
	ModeNone Mode = iota
	// ModeClick 模式一：点击位置
	ModeClick
	// ModeGrid 模式二：九宫格
	ModeGrid
)

// String 返回模式名称（与 config.ModeClick/config.ModeGrid 一致）
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeClick:
		return config.ModeClick
	case ModeGrid:
		return config.ModeGrid
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode 解析模式名称
func ParseMode(name string) (Mode, error) {
	switch name {
	case config.ModeClick:
		return ModeClick, nil
	case config.ModeGrid:
		return ModeGrid, nil
	case config.ModeMenu, "":
		return ModeNone, nil
	default:
		return ModeNone, fmt.Errorf("unknown captcha mode %q", name)
	}
}

// Result 每种模式最近一次的结果横幅
type Result int

const (
	ResultNone Result = iota
	ResultSuccess
	ResultFailure
)

// String 返回横幅文案
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "验证成功喵!"
	case ResultFailure:
		return "验证失败喵~"
	default:
		return ""
	}
}

// HostOptions 宿主参数
type HostOptions struct {
	GridPolicy GridPolicy
	Sounds     SoundPlayer
}

// Host 验证码宿主
//
// 职责：
//   - 每次展示时随机选择一个点击模板，或新建一局九宫格
//   - 同一时间最多展示一个验证码，展示新的之前卸载旧的
//   - 把验证码的成功/失败/关闭转换为结果横幅和延迟隐藏
type Host struct {
	catalog *config.Catalog
	cues    CuePlayer
	random  game.Random
	opts    HostOptions
	timers  *systems.TimerSystem

	active  Mode
	click   *ClickChallenge
	grid    *GridChallenge
	results map[Mode]Result
	shown   int // 累计展示次数
}

// NewHost 创建宿主
func NewHost(catalog *config.Catalog, cues CuePlayer, random game.Random, opts HostOptions) *Host {
	return &Host{
		catalog: catalog,
		cues:    cues,
		random:  random,
		opts:    opts,
		timers:  systems.NewTimerSystem(),
		results: make(map[Mode]Result),
	}
}

// Present 展示指定模式的验证码
//
// 返回：
//   - bool: 是否成功展示（没有点击模板或模式无效时为 false）
func (h *Host) Present(mode Mode) bool {
	switch mode {
	case ModeClick:
		templates := h.catalog.ListClickTemplates()
		if len(templates) == 0 {
			log.Printf("[Host] No click templates configured")
			return false
		}
		h.hide()
		h.prepare(mode)
		template := &templates[h.random.IntN(len(templates))]
		h.click = NewClickChallenge(template, h.cues, h.random, h.callbacksFor(mode))

	case ModeGrid:
		h.hide()
		h.prepare(mode)
		h.grid = NewGridChallenge(h.catalog.GridTemplate(), h.cues, h.random, h.callbacksFor(mode), GridOptions{
			Policy:     h.opts.GridPolicy,
			Sounds:     h.opts.Sounds,
			ClickSound: h.catalog.ClickSound(),
		})

	default:
		log.Printf("[Host] Cannot present mode %s", mode)
		return false
	}

	h.active = mode
	h.shown++
	log.Printf("[Host] Presenting %s (#%d)", mode, h.shown)
	return true
}

func (h *Host) prepare(mode Mode) {
	h.timers.Cancel(hideTimerName(mode))
	h.results[mode] = ResultNone
}

func (h *Host) callbacksFor(mode Mode) Callbacks {
	return Callbacks{
		OnSuccess: func() {
			h.results[mode] = ResultSuccess
			h.timers.Schedule(hideTimerName(mode), HostSuccessHideDelay, func() {
				h.hideMode(mode)
			})
		},
		OnFailure: func() {
			h.results[mode] = ResultFailure
			h.timers.Schedule(hideTimerName(mode), HostFailureHideDelay, func() {
				h.results[mode] = ResultNone
				h.hideMode(mode)
			})
		},
		OnClose: func() {
			h.hideMode(mode)
		},
	}
}

func hideTimerName(mode Mode) string {
	return "hide_" + mode.String()
}

// hideMode 只在该模式仍在展示时隐藏
func (h *Host) hideMode(mode Mode) {
	if h.active == mode {
		h.hide()
	}
}

// hide 卸载当前验证码
func (h *Host) hide() {
	if h.click != nil {
		h.click.Unmount()
		h.click = nil
	}
	if h.grid != nil {
		h.grid.Unmount()
		h.grid = nil
	}
	h.active = ModeNone
}

// Close 关闭当前弹窗（等同于点击弹窗右上角的关闭按钮）
func (h *Host) Close() {
	switch {
	case h.click != nil:
		h.click.Close()
	case h.grid != nil:
		h.grid.Close()
	}
	h.hide()
}

// Shutdown 应用退出：卸载弹窗并停止所有提示音
func (h *Host) Shutdown() {
	h.hide()
	h.timers.CancelAll()
	h.cues.StopAll()
}

// Update 推进宿主和当前验证码的计时器
func (h *Host) Update(deltaTime float64) {
	if h.click != nil {
		h.click.Update(deltaTime)
	}
	if h.grid != nil {
		h.grid.Update(deltaTime)
	}
	h.timers.Update(deltaTime)
}

// Active 当前展示的模式
func (h *Host) Active() Mode { return h.active }

// Click 当前点击验证码，没有时为 nil
func (h *Host) Click() *ClickChallenge { return h.click }

// Grid 当前九宫格验证码，没有时为 nil
func (h *Host) Grid() *GridChallenge { return h.grid }

// Result 指定模式最近一次的结果
func (h *Host) Result(mode Mode) Result { return h.results[mode] }

// PresentCount 累计展示次数
func (h *Host) PresentCount() int { return h.shown }
