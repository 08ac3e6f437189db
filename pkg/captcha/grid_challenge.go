package captcha

import (
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
	"github.com/decker502/luobo-captcha/pkg/systems"
)

// 九宫格验证码时间参数
const (
	GridVerifyDelay         = 800 * time.Millisecond  // verifying -> 判定
	GridSuccessDisplayDelay = 500 * time.Millisecond  // success -> OnSuccess
	GridFailureDisplayDelay = 1000 * time.Millisecond // failure -> OnFailure（strict）
)

// GridCellCount 九宫格格子数
const GridCellCount = config.GridCellCount

// 验证按钮文案
const (
	VerifyLabelVerify = "验证"
	VerifyLabelSkip   = "跳过"
)

// Cell 九宫格中的一个格子
// ID 从 1 开始，同一局内唯一
type Cell struct {
	ID      int
	Name    string
	Label   string
	Variant config.Variant
}

// GridOptions 九宫格验证码可选参数
type GridOptions struct {
	Policy     GridPolicy
	Sounds     SoundPlayer // 按钮形式格子按下时的点击音效，可为 nil
	ClickSound string      // 点击音效路径
}

// GridChallenge 九宫格多选验证码
//
// 每局从物品列表中随机抽取一个正确答案，再为 9 个格子各自独立地抽取物品和展示形式（可重复）。
// 正确答案集合 = 名称等于正确答案的所有格子，可能为空。
// 提交时选中集合与正确答案集合完全相等（集合相等，与顺序无关）才算通过，
// 所以正确答案为空时，空选择（"跳过"）就是正确答案。
type GridChallenge struct {
	id        string
	template  *config.GridTemplate
	cues      CuePlayer
	random    game.Random
	callbacks *onceCallbacks
	timers    *systems.TimerSystem
	opts      GridOptions

	correctName  string
	correctLabel string
	prompt       string
	cells        []Cell
	correctIDs   map[int]struct{}
	selected     map[int]struct{}
	pressed      int // 当前按住的格子 ID，0 表示没有
	status       Status
	unmounted    bool
}

// NewGridChallenge 创建九宫格验证码并立即播放提示音
//
// 参数：
//   - template: 九宫格模板
//   - cues: 提示音播放器
//   - random: 随机源
//   - callbacks: 结果回调
//   - opts: 验证策略和点击音效
//
// 返回：
//   - *GridChallenge: 处于 pending 状态的验证码
func NewGridChallenge(template *config.GridTemplate, cues CuePlayer, random game.Random, callbacks Callbacks, opts GridOptions) *GridChallenge {
	g := &GridChallenge{
		id:        uuid.NewString(),
		template:  template,
		cues:      cues,
		random:    random,
		callbacks: newOnceCallbacks(callbacks),
		timers:    systems.NewTimerSystem(),
		opts:      opts,
		selected:  make(map[int]struct{}),
		status:    StatusPending,
	}
	g.sample()
	g.playHint()
	return g
}

// sample 抽取正确答案和 9 个格子
// 抽取顺序固定：先正确答案，再逐格"物品、展示形式"
func (g *GridChallenge) sample() {
	items := g.template.Items
	g.cells = nil
	g.correctIDs = make(map[int]struct{})
	g.correctName = ""
	g.correctLabel = ""

	if len(items) == 0 {
		g.prompt = config.Prompt(g.template.PromptTemplate, "")
		log.Printf("[GridChallenge] %s: no items configured", g.id)
		return
	}

	correct := items[g.random.IntN(len(items))]
	g.correctName = correct.Name
	g.correctLabel = correct.Label
	g.prompt = config.Prompt(g.template.PromptTemplate, correct.Label)

	g.cells = make([]Cell, 0, GridCellCount)
	for i := 0; i < GridCellCount; i++ {
		item := items[g.random.IntN(len(items))]
		cell := Cell{ID: i + 1, Name: item.Name, Label: item.Label}
		if len(item.Variants) > 0 {
			cell.Variant = item.Variants[g.random.IntN(len(item.Variants))]
		}
		g.cells = append(g.cells, cell)
		if cell.Name == g.correctName {
			g.correctIDs[cell.ID] = struct{}{}
		}
	}

	log.Printf("[GridChallenge] %s: answer=%s correct=%v policy=%s", g.id, g.correctName, g.CorrectIDs(), g.opts.Policy)
}

// PressCell 按下格子
// 已选中的格子按下不做任何事（避免取消选择时闪烁）；按钮形式的格子播放点击音效
//
// 返回：
//   - bool: 是否记录为按下状态
func (g *GridChallenge) PressCell(id int) bool {
	if g.unmounted || g.status != StatusPending {
		return false
	}
	cell, ok := g.cell(id)
	if !ok || g.IsSelected(id) {
		return false
	}

	g.pressed = id
	if cell.Variant.Interactive() && g.opts.Sounds != nil && g.opts.ClickSound != "" {
		g.opts.Sounds.PlaySound(g.opts.ClickSound)
	}
	return true
}

// ReleaseCell 在格子上松开：清除按下状态并切换选中
func (g *GridChallenge) ReleaseCell(id int) {
	if g.unmounted || g.status != StatusPending {
		return
	}
	if _, ok := g.cell(id); !ok {
		return
	}

	g.pressed = 0
	if g.IsSelected(id) {
		delete(g.selected, id)
	} else {
		g.selected[id] = struct{}{}
	}
}

// AcceptsInput 是否接受格子输入（未卸载且处于 pending）
// 已选中的格子按下时 PressCell 返回 false，但松开仍然会取消选中
func (g *GridChallenge) AcceptsInput() bool {
	return !g.unmounted && g.status == StatusPending
}

// CancelPress 指针移出格子后松开，只清除按下状态
func (g *GridChallenge) CancelPress() {
	g.pressed = 0
}

// CanVerify 验证按钮是否可用
func (g *GridChallenge) CanVerify() bool {
	if g.unmounted || g.status != StatusPending {
		return false
	}
	if g.opts.Policy == GridPolicyStrict {
		return len(g.selected) > 0
	}
	return true
}

// VerifyLabel 验证按钮文案
// skip 策略下没有选择时显示"跳过"
func (g *GridChallenge) VerifyLabel() string {
	if g.opts.Policy == GridPolicySkip && len(g.selected) == 0 {
		return VerifyLabelSkip
	}
	return VerifyLabelVerify
}

// Verify 提交选择，GridVerifyDelay 后判定
//
// 返回：
//   - bool: 是否已提交（按钮不可用时为 false）
func (g *GridChallenge) Verify() bool {
	if !g.CanVerify() {
		return false
	}
	g.status = StatusVerifying
	g.pressed = 0
	g.timers.Schedule(timerVerify, GridVerifyDelay, g.decide)
	return true
}

// decide 验证延迟结束后的判定
func (g *GridChallenge) decide() {
	if sameSet(g.selected, g.correctIDs) {
		g.status = StatusSuccess
		log.Printf("[GridChallenge] %s: success", g.id)
		g.cues.Play(SuccessCue, game.PlayOptions{Force: true})
		g.timers.Schedule(timerSuccessDisplay, GridSuccessDisplayDelay, g.callbacks.fireSuccess)
		return
	}

	log.Printf("[GridChallenge] %s: mismatch selected=%v correct=%v", g.id, g.SelectedIDs(), g.CorrectIDs())
	g.selected = make(map[int]struct{})

	if g.opts.Policy == GridPolicyStrict {
		g.status = StatusFailure
		g.timers.Schedule(timerFailureDisplay, GridFailureDisplayDelay, func() {
			g.callbacks.fireFailure()
			if g.unmounted {
				return
			}
			g.status = StatusPending
			g.playHint()
		})
		return
	}

	g.status = StatusPending
	g.playHint()
}

// Refresh 换一题：重新抽取答案和格子，清空选择并播放新提示音
func (g *GridChallenge) Refresh() {
	if g.unmounted {
		return
	}
	g.timers.CancelAll()
	g.selected = make(map[int]struct{})
	g.pressed = 0
	g.status = StatusPending
	g.sample()
	g.playHint()
}

// ReplayHint "重听"按钮：强制立即播放提示音
func (g *GridChallenge) ReplayHint() game.PlayResult {
	if g.unmounted {
		return game.PlayNoClips
	}
	return g.playHint()
}

// Close 用户关闭弹窗：通知宿主并卸载
func (g *GridChallenge) Close() {
	if g.unmounted {
		return
	}
	g.callbacks.fireClose()
	g.Unmount()
}

// Unmount 卸载验证码：取消全部计时器并停止提示音
func (g *GridChallenge) Unmount() {
	if g.unmounted {
		return
	}
	g.unmounted = true
	g.pressed = 0
	g.timers.CancelAll()
	g.cues.StopAll()
}

// Update 推进验证码自身的计时器
func (g *GridChallenge) Update(deltaTime float64) {
	if g.unmounted {
		return
	}
	g.timers.Update(deltaTime)
}

func (g *GridChallenge) playHint() game.PlayResult {
	if g.correctName == "" {
		return game.PlayNoClips
	}
	return g.cues.Play(g.correctName, game.PlayOptions{Force: true})
}

func (g *GridChallenge) cell(id int) (Cell, bool) {
	for _, cell := range g.cells {
		if cell.ID == id {
			return cell, true
		}
	}
	return Cell{}, false
}

// sameSet 集合相等：大小相同且成员相同
func sameSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ID 实例 ID（日志用）
func (g *GridChallenge) ID() string { return g.id }

// Status 当前状态
func (g *GridChallenge) Status() Status { return g.status }

// Verifying 是否处于验证中
func (g *GridChallenge) Verifying() bool { return g.status == StatusVerifying }

// Policy 验证按钮策略
func (g *GridChallenge) Policy() GridPolicy { return g.opts.Policy }

// Prompt 提示文案
func (g *GridChallenge) Prompt() string { return g.prompt }

// CorrectItem 正确答案的名称和显示名
func (g *GridChallenge) CorrectItem() (name, label string) { return g.correctName, g.correctLabel }

// Cells 返回格子副本
func (g *GridChallenge) Cells() []Cell {
	return append([]Cell(nil), g.cells...)
}

// IsSelected 格子是否已选中
func (g *GridChallenge) IsSelected(id int) bool {
	_, ok := g.selected[id]
	return ok
}

// PressedID 当前按住的格子 ID，0 表示没有
func (g *GridChallenge) PressedID() int { return g.pressed }

// CorrectIDs 正确答案的格子 ID（升序）
func (g *GridChallenge) CorrectIDs() []int { return sortedIDs(g.correctIDs) }

// SelectedIDs 已选中的格子 ID（升序）
func (g *GridChallenge) SelectedIDs() []int { return sortedIDs(g.selected) }

// Unmounted 是否已卸载
func (g *GridChallenge) Unmounted() bool { return g.unmounted }
