package scenes

import (
	"path"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/components"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/systems"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// ClickCaptchaScene 点击位置验证码弹窗
//
// 布局（自上而下）：标题栏、提示文字 + 重听按钮、正方形图片、底栏（刷新）
// 图片按 ClickWidgetWidth 渲染，与模板 imageSize 不同，指针坐标经过 MapPointer 缩放
type ClickCaptchaScene struct {
	host       *captcha.Host
	assets     *Assets
	background Scene

	tracker utils.PointerTracker
	buttons *systems.ButtonSystem
	elapsed float64
	clock   statusClock

	origin    captcha.Rect
	header    captcha.Rect
	promptBar captcha.Rect
	imageRect captcha.Rect
	footer    captcha.Rect

	closeButton   *components.ButtonComponent
	replayButton  *components.ButtonComponent
	refreshButton *components.ButtonComponent
}

// NewClickCaptchaScene 创建点击验证码场景
//
// 参数：
//   - host: 验证码宿主（场景只操作 host.Click()）
//   - assets: 共享资源
//   - background: 弹窗下方绘制的场景（菜单页），可为 nil
func NewClickCaptchaScene(host *captcha.Host, assets *Assets, background Scene) *ClickCaptchaScene {
	s := &ClickCaptchaScene{host: host, assets: assets, background: background}

	x, y := config.WidgetOrigin(config.ClickWidgetWidth, config.ClickWidgetHeight)
	w := config.ClickWidgetWidth
	s.origin = captcha.Rect{X: x, Y: y, Width: w, Height: config.ClickWidgetHeight}
	s.header = captcha.Rect{X: x, Y: y, Width: w, Height: config.WidgetHeaderHeight}
	s.promptBar = captcha.Rect{X: x, Y: s.header.Y + s.header.Height, Width: w, Height: config.ClickPromptHeight}
	s.imageRect = captcha.Rect{X: x, Y: s.promptBar.Y + s.promptBar.Height, Width: w, Height: w}
	s.footer = captcha.Rect{X: x, Y: s.imageRect.Y + s.imageRect.Height, Width: w, Height: config.WidgetFooterHeight}

	size := config.FooterButtonSize
	s.closeButton = newRoundButton("X", x+w-size-8, y+(config.WidgetHeaderHeight-size)/2, size, s.host.Close)
	s.replayButton = newRoundButton("重听", x+w-size-16, s.promptBar.Y+(s.promptBar.Height-size)/2, size, func() {
		if ch := s.host.Click(); ch != nil {
			ch.ReplayHint()
		}
	})
	s.refreshButton = newRoundButton("刷新", x+12, s.footer.Y+(s.footer.Height-size)/2, size, func() {
		if ch := s.host.Click(); ch != nil {
			ch.Refresh()
		}
	})
	s.buttons = systems.NewButtonSystem(s.closeButton, s.replayButton, s.refreshButton)

	return s
}

// OnEnter 弹窗出现时清除残留输入
func (s *ClickCaptchaScene) OnEnter() {
	s.tracker.Reset()
	s.buttons.Reset()
	s.elapsed = 0
	s.clock = statusClock{}
}

// Update 把指针输入转换为验证码操作
func (s *ClickCaptchaScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	event, x, y := s.tracker.Update()
	s.HandlePointer(event, float64(x), float64(y))
	if ch := s.host.Click(); ch != nil {
		s.clock.Tick(ch.Status(), deltaTime)
	}
}

// HandlePointer 处理一帧的指针事件
//   - 在图片内按下：PointerDown
//   - 按住后在图片内松开：PointerUp（提交）
//   - 按住后在图片外松开：PointerCancel
func (s *ClickCaptchaScene) HandlePointer(event utils.PointerEvent, x, y float64) {
	ch := s.host.Click()
	if ch == nil {
		return
	}
	if s.buttons.HandlePointer(event, x, y) {
		return
	}

	switch event {
	case utils.PointerPressed:
		if s.imageRect.Contains(x, y) {
			ch.PointerDown(x, y, s.imageRect)
		}
	case utils.PointerReleased:
		if !ch.Holding() {
			return
		}
		if s.imageRect.Contains(x, y) {
			ch.PointerUp()
		} else {
			ch.PointerCancel()
		}
	}
}

// ImageRect 图片在屏幕上的区域
func (s *ClickCaptchaScene) ImageRect() captcha.Rect {
	return s.imageRect
}

// Draw 绘制弹窗
func (s *ClickCaptchaScene) Draw(screen *ebiten.Image) {
	if s.background != nil {
		s.background.Draw(screen)
	}
	drawBackdrop(screen)

	ch := s.host.Click()
	if ch == nil {
		return
	}

	fillRect(screen, s.origin, colorCard)
	drawWidgetHeader(screen, s.header, "图形验证码", s.assets)
	drawButton(screen, s.closeButton, s.assets.BodyFace)

	fillRect(screen, s.promptBar, colorFooter)
	// 右侧留给重听按钮
	promptArea := s.promptBar
	promptArea.Width -= config.FooterButtonSize + 16
	drawWrappedCentered(screen, ch.Prompt(), s.assets.TitleFace, promptArea, 12, promptLineHeight, colorText)
	drawButton(screen, s.replayButton, s.assets.SmallFace)

	template := ch.Template()
	image := ch.CurrentImage()
	drawImageOrPlaceholder(screen, s.assets, image, s.imageRect, template.ID+" "+path.Base(image))

	if s.assets.ShowDebugAreas(template.Debug) {
		s.drawDebugAreas(screen, ch)
	}

	drawStatusOverlay(screen, s.imageRect, ch.Status(), s.elapsed, s.clock.since, s.assets, "真棒")

	fillRect(screen, s.footer, colorFooter)
	drawButton(screen, s.refreshButton, s.assets.SmallFace)
	utils.DrawText(screen, shortID(ch.ID()), s.assets.SmallFace, s.footer.X+56, s.footer.Y+s.footer.Height/2-6, colorMuted)
	utils.DrawText(screen, "点击验证", s.assets.SmallFace, s.footer.X+s.footer.Width-72, s.footer.Y+s.footer.Height/2-6, colorMuted)
}

// drawDebugAreas 绘制热区：正确答案绿色，其余红色
func (s *ClickCaptchaScene) drawDebugAreas(screen *ebiten.Image, ch *captcha.ClickChallenge) {
	template := ch.Template()
	correct := ch.CorrectArea()

	for _, area := range template.Areas {
		r := captcha.ScaleArea(area, s.imageRect, template.ImageSize)
		fill, line := colorDebugNo, colorDebugNoLine
		label := area.Label
		if correct != nil && area.Name == correct.Name {
			fill, line = colorDebugOK, colorDebugOKLine
			label += " (正确)"
		}
		fillRect(screen, r, fill)
		strokeRect(screen, r, 2, line)
		utils.DrawText(screen, label, s.assets.SmallFace, r.X+2, r.Y+2, colorWhite)
	}
}
