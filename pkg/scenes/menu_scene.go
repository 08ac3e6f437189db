package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/components"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/systems"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// 菜单页横幅和标题图
const (
	menuTitle       = "萝卜纸巾验证码"
	menuHeaderImage = "/captcha-images/kaimen.jpg"
)

// trigger 一个 reCAPTCHA 风格的触发框
type trigger struct {
	mode    captcha.Mode
	title   string // 面板标题（模式一/模式二）
	label   string // 复选框右侧文字
	button  *components.ButtonComponent
	panelX  float64
	panelY  float64
	panelW  float64
	panelH  float64
	bannerY float64
}

// MenuScene 演示页：两个触发框，点击后弹出对应的验证码
// 同时作为验证码弹窗的背景绘制
type MenuScene struct {
	host     *captcha.Host
	assets   *Assets
	tracker  utils.PointerTracker
	buttons  *systems.ButtonSystem
	triggers []*trigger
}

// NewMenuScene 创建菜单场景
func NewMenuScene(host *captcha.Host, assets *Assets) *MenuScene {
	s := &MenuScene{host: host, assets: assets}

	left := (config.GameWindowWidth - config.TriggerBoxWidth*2 - config.TriggerBoxGap) / 2
	specs := []struct {
		mode  captcha.Mode
		title string
		label string
	}{
		{captcha.ModeClick, "模式一", "喵？"},
		{captcha.ModeGrid, "模式二", "喵喵？"},
	}

	var buttons []*components.ButtonComponent
	for i, spec := range specs {
		x := left + float64(i)*(config.TriggerBoxWidth+config.TriggerBoxGap)
		mode := spec.mode
		t := &trigger{
			mode:  mode,
			title: spec.title,
			label: spec.label,
			button: &components.ButtonComponent{
				Label:   spec.label,
				X:       x,
				Y:       config.TriggerBoxTop,
				Width:   config.TriggerBoxWidth,
				Height:  config.TriggerBoxHeight,
				Enabled: true,
				OnClick: func() { s.host.Present(mode) },
			},
			panelX:  x - 20,
			panelY:  config.TriggerBoxTop - 110,
			panelW:  config.TriggerBoxWidth + 40,
			panelH:  config.TriggerBoxHeight + 130,
			bannerY: config.TriggerBoxTop - 64,
		}
		s.triggers = append(s.triggers, t)
		buttons = append(buttons, t.button)
	}
	s.buttons = systems.NewButtonSystem(buttons...)

	return s
}

// OnEnter 回到菜单时清除残留的按下状态
func (s *MenuScene) OnEnter() {
	s.tracker.Reset()
	s.buttons.Reset()
}

// Update 处理触发框点击
func (s *MenuScene) Update(deltaTime float64) {
	event, x, y := s.tracker.Update()
	s.HandlePointer(event, float64(x), float64(y))
}

// HandlePointer 处理一帧的指针事件
func (s *MenuScene) HandlePointer(event utils.PointerEvent, x, y float64) {
	s.buttons.HandlePointer(event, x, y)
}

// Triggers 返回触发框按钮（按模式顺序）
func (s *MenuScene) Triggers() []*components.ButtonComponent {
	buttons := make([]*components.ButtonComponent, 0, len(s.triggers))
	for _, t := range s.triggers {
		buttons = append(buttons, t.button)
	}
	return buttons
}

// Draw 绘制演示页
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorPage)

	utils.DrawCenteredText(screen, menuTitle, s.assets.TitleFace, config.GameWindowWidth/2, 48, colorText)
	if img := s.assets.Image(menuHeaderImage); img != nil {
		// 标题图固定高度 80，按比例缩放
		b := img.Bounds()
		h := 80.0
		w := h * float64(b.Dx()) / float64(b.Dy())
		drawImageIn(screen, img, captcha.Rect{X: (config.GameWindowWidth - w) / 2, Y: 68, Width: w, Height: h})
	}

	for _, t := range s.triggers {
		s.drawTrigger(screen, t)
	}
}

func (s *MenuScene) drawTrigger(screen *ebiten.Image, t *trigger) {
	panel := captcha.Rect{X: t.panelX, Y: t.panelY, Width: t.panelW, Height: t.panelH}
	fillRect(screen, panel, colorCard)
	utils.DrawText(screen, t.title, s.assets.BodyFace, panel.X+20, panel.Y+16, colorText)

	result := s.host.Result(t.mode)
	if result != captcha.ResultNone {
		banner := captcha.Rect{X: t.button.X, Y: t.bannerY, Width: t.button.Width, Height: 40}
		bg, fg := colorBannerOK, colorBannerOKTx
		if result == captcha.ResultFailure {
			bg, fg = colorBannerBad, colorBannerBadTx
		}
		fillRect(screen, banner, bg)
		utils.DrawCenteredText(screen, result.String(), s.assets.BodyFace, banner.X+banner.Width/2, banner.Y+20, fg)
	}

	box := captcha.Rect{X: t.button.X, Y: t.button.Y, Width: t.button.Width, Height: t.button.Height}
	if t.button.Pressed {
		fillRect(screen, box, colorFooter)
	}
	strokeRect(screen, box, 2, colorBorder)

	// 复选框：成功后变为绿色对勾
	check := captcha.Rect{X: box.X + 16, Y: box.Y + box.Height/2 - 16, Width: 32, Height: 32}
	if result == captcha.ResultSuccess {
		fillRect(screen, check, colorSuccess)
		drawCheckMark(screen, check.X+16, check.Y+16, 20, 3, colorWhite)
	} else {
		strokeRect(screen, check, 2, colorMuted)
	}

	utils.DrawText(screen, t.label, s.assets.BodyFace, check.X+48, box.Y+box.Height/2-8, colorText)
	utils.DrawCenteredText(screen, "喵喵喵", s.assets.SmallFace, box.X+box.Width-40, box.Y+box.Height-16, colorMuted)
}
