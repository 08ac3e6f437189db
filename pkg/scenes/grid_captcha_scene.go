package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/components"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/systems"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// skipHint skip 策略下标题区的提示
const skipHint = "如果没有，请点击跳过"

// GridCaptchaScene 九宫格验证码弹窗
type GridCaptchaScene struct {
	host       *captcha.Host
	assets     *Assets
	background Scene

	tracker utils.PointerTracker
	buttons *systems.ButtonSystem
	elapsed float64
	clock   statusClock

	// pressedCell 按下时所在的格子 ID，0 表示不在格子上
	pressedCell int

	origin captcha.Rect
	header captcha.Rect
	grid   captcha.Rect
	footer captcha.Rect

	closeButton   *components.ButtonComponent
	replayButton  *components.ButtonComponent
	refreshButton *components.ButtonComponent
	verifyButton  *components.ButtonComponent
}

// NewGridCaptchaScene 创建九宫格验证码场景
func NewGridCaptchaScene(host *captcha.Host, assets *Assets, background Scene) *GridCaptchaScene {
	s := &GridCaptchaScene{host: host, assets: assets, background: background}

	x, y := config.WidgetOrigin(config.GridWidgetWidth, config.GridWidgetHeight)
	w := config.GridWidgetWidth
	s.origin = captcha.Rect{X: x, Y: y, Width: w, Height: config.GridWidgetHeight}
	s.header = captcha.Rect{X: x, Y: y, Width: w, Height: config.GridHeaderHeight}
	s.grid = captcha.Rect{X: x, Y: y + config.GridHeaderHeight, Width: w, Height: w}
	s.footer = captcha.Rect{X: x, Y: s.grid.Y + s.grid.Height, Width: w, Height: config.WidgetFooterHeight}

	size := config.FooterButtonSize
	s.closeButton = newRoundButton("X", x+w-size-8, y+8, size, s.host.Close)
	s.replayButton = newRoundButton("重听", x+w-size-8, y+config.GridHeaderHeight-size-8, size, func() {
		if g := s.host.Grid(); g != nil {
			g.ReplayHint()
		}
	})
	s.refreshButton = newRoundButton("刷新", x+12, s.footer.Y+(s.footer.Height-size)/2, size, func() {
		if g := s.host.Grid(); g != nil {
			g.Refresh()
		}
	})
	s.verifyButton = &components.ButtonComponent{
		Label:   captcha.VerifyLabelSkip,
		Shape:   components.ButtonShapeRect,
		X:       x + w - config.VerifyButtonWidth - 12,
		Y:       s.footer.Y + (s.footer.Height-config.VerifyButtonHeight)/2,
		Width:   config.VerifyButtonWidth,
		Height:  config.VerifyButtonHeight,
		Enabled: true,
		OnClick: func() {
			if g := s.host.Grid(); g != nil {
				g.Verify()
			}
		},
	}
	s.buttons = systems.NewButtonSystem(s.closeButton, s.replayButton, s.refreshButton, s.verifyButton)

	return s
}

// OnEnter 弹窗出现时清除残留输入
func (s *GridCaptchaScene) OnEnter() {
	s.tracker.Reset()
	s.buttons.Reset()
	s.pressedCell = 0
	s.elapsed = 0
	s.clock = statusClock{}
}

// Update 把指针输入转换为格子操作
func (s *GridCaptchaScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	event, x, y := s.tracker.Update()
	s.HandlePointer(event, float64(x), float64(y))
	if g := s.host.Grid(); g != nil {
		s.clock.Tick(g.Status(), deltaTime)
	}
}

// HandlePointer 处理一帧的指针事件
// 在同一个格子上按下并松开才切换选中，移出格子松开视为取消
func (s *GridCaptchaScene) HandlePointer(event utils.PointerEvent, x, y float64) {
	g := s.host.Grid()
	if g == nil {
		return
	}
	s.syncVerifyButton(g)
	if s.buttons.HandlePointer(event, x, y) {
		s.syncVerifyButton(g)
		return
	}

	switch event {
	case utils.PointerPressed:
		if id := s.CellAt(x, y); id != 0 && g.AcceptsInput() {
			g.PressCell(id)
			s.pressedCell = id
		}
	case utils.PointerReleased:
		if s.pressedCell == 0 {
			return
		}
		if s.CellAt(x, y) == s.pressedCell {
			g.ReleaseCell(s.pressedCell)
		} else {
			g.CancelPress()
		}
		s.pressedCell = 0
	}
	s.syncVerifyButton(g)
}

// syncVerifyButton 按当前选择更新验证按钮的文字和可用状态
func (s *GridCaptchaScene) syncVerifyButton(g *captcha.GridChallenge) {
	s.verifyButton.Label = g.VerifyLabel()
	s.verifyButton.Enabled = g.CanVerify()
}

// CellRect 第 id 个格子的屏幕区域（id 从 1 开始）
func (s *GridCaptchaScene) CellRect(id int) captcha.Rect {
	ox, oy := config.GridCellOrigin(id - 1)
	return captcha.Rect{X: s.grid.X + ox, Y: s.grid.Y + oy, Width: config.GridCellSize, Height: config.GridCellSize}
}

// CellAt 返回点所在的格子 ID，不在任何格子上返回 0
func (s *GridCaptchaScene) CellAt(x, y float64) int {
	for id := 1; id <= config.GridCellCount; id++ {
		if s.CellRect(id).Contains(x, y) {
			return id
		}
	}
	return 0
}

// VerifyButton 验证按钮
func (s *GridCaptchaScene) VerifyButton() *components.ButtonComponent {
	return s.verifyButton
}

// Draw 绘制弹窗
func (s *GridCaptchaScene) Draw(screen *ebiten.Image) {
	if s.background != nil {
		s.background.Draw(screen)
	}
	drawBackdrop(screen)

	g := s.host.Grid()
	if g == nil {
		return
	}

	fillRect(screen, s.origin, colorCard)
	fillRect(screen, s.header, colorHeader)
	utils.DrawText(screen, "请选择包含以下内容的所有图片", s.assets.SmallFace, s.header.X+16, s.header.Y+12, colorWhite)
	utils.DrawText(screen, g.Prompt(), s.assets.TitleFace, s.header.X+16, s.header.Y+32, colorWhite)
	if g.Policy() == captcha.GridPolicySkip {
		utils.DrawText(screen, skipHint, s.assets.SmallFace, s.header.X+16, s.header.Y+70, colorWhite)
	}
	drawButton(screen, s.closeButton, s.assets.BodyFace)
	drawButton(screen, s.replayButton, s.assets.SmallFace)

	for _, cell := range g.Cells() {
		s.drawCell(screen, g, cell)
	}

	drawStatusOverlay(screen, s.grid, g.Status(), s.elapsed, s.clock.since, s.assets, "真棒")

	fillRect(screen, s.footer, colorFooter)
	drawButton(screen, s.refreshButton, s.assets.SmallFace)
	utils.DrawText(screen, shortID(g.ID()), s.assets.SmallFace, s.footer.X+56, s.footer.Y+s.footer.Height/2-6, colorMuted)
	drawButton(screen, s.verifyButton, s.assets.BodyFace)
}

func (s *GridCaptchaScene) drawCell(screen *ebiten.Image, g *captcha.GridChallenge, cell captcha.Cell) {
	r := s.CellRect(cell.ID)
	pressed := g.PressedID() == cell.ID
	selected := g.IsSelected(cell.ID)

	// 选中的格子内缩，留出边框
	inner := r
	if selected {
		inner = captcha.Rect{X: r.X + 8, Y: r.Y + 8, Width: r.Width - 16, Height: r.Height - 16}
	}
	drawImageOrPlaceholder(screen, s.assets, cell.Variant.ImageFor(pressed), inner, cell.Label)

	if selected {
		strokeRect(screen, r, 4, colorHeader)
		badge := captcha.Rect{X: r.X + 4, Y: r.Y + 4, Width: 24, Height: 24}
		fillRect(screen, badge, colorHeader)
		drawCheckMark(screen, badge.X+12, badge.Y+12, 14, 2, colorWhite)
	}
}
