package scenes

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/components"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// 配色
var (
	colorPage        = color.RGBA{R: 243, G: 244, B: 246, A: 255}
	colorCard        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBorder      = color.RGBA{R: 229, G: 231, B: 235, A: 255}
	colorFooter      = color.RGBA{R: 249, G: 250, B: 251, A: 255}
	colorHeader      = color.RGBA{R: 66, G: 133, B: 244, A: 255}
	colorText        = color.RGBA{R: 31, G: 41, B: 55, A: 255}
	colorMuted       = color.RGBA{R: 156, G: 163, B: 175, A: 255}
	colorWhite       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorBackdrop    = color.RGBA{A: 128}
	colorDim         = color.RGBA{A: 77}
	colorSuccess     = color.RGBA{R: 34, G: 197, B: 94, A: 204}
	colorFailure     = color.RGBA{R: 239, G: 68, B: 68, A: 204}
	colorBannerOK    = color.RGBA{R: 220, G: 252, B: 231, A: 255}
	colorBannerOKTx  = color.RGBA{R: 21, G: 128, B: 61, A: 255}
	colorBannerBad   = color.RGBA{R: 254, G: 226, B: 226, A: 255}
	colorBannerBadTx = color.RGBA{R: 185, G: 28, B: 28, A: 255}
	colorPlaceholder = color.RGBA{R: 209, G: 213, B: 219, A: 255}
	colorDisabled    = color.RGBA{R: 191, G: 219, B: 254, A: 255}
	colorDebugOK     = color.RGBA{R: 34, G: 197, B: 94, A: 51}
	colorDebugOKLine = color.RGBA{R: 34, G: 197, B: 94, A: 204}
	colorDebugNo     = color.RGBA{R: 239, G: 68, B: 68, A: 26}
	colorDebugNoLine = color.RGBA{R: 239, G: 68, B: 68, A: 128}
)

func fillRect(screen *ebiten.Image, r captcha.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), clr, false)
}

func strokeRect(screen *ebiten.Image, r captcha.Rect, width float32, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), width, clr, false)
}

// drawBackdrop 半透明黑色遮罩（弹窗背景）
func drawBackdrop(screen *ebiten.Image) {
	b := screen.Bounds()
	fillRect(screen, captcha.Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}, colorBackdrop)
}

// drawImageIn 把图片拉伸绘制到矩形内
func drawImageIn(screen, img *ebiten.Image, r captcha.Rect) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(w), r.Height/float64(h))
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// drawImageOrPlaceholder 图片缺失时绘制带文字的灰色占位块
func drawImageOrPlaceholder(screen *ebiten.Image, assets *Assets, path string, r captcha.Rect, label string) {
	if img := assets.Image(path); img != nil {
		drawImageIn(screen, img, r)
		return
	}
	fillRect(screen, r, colorPlaceholder)
	strokeRect(screen, r, 1, colorMuted)
	utils.DrawCenteredText(screen, label, assets.BodyFace, r.X+r.Width/2, r.Y+r.Height/2, colorText)
}

// drawButton 绘制按钮
func drawButton(screen *ebiten.Image, b *components.ButtonComponent, face text.Face) {
	cx, cy := b.X+b.Width/2, b.Y+b.Height/2

	switch b.Shape {
	case components.ButtonShapeRound:
		if b.Pressed {
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(b.Width/2), colorBorder, true)
		}
		utils.DrawCenteredText(screen, b.Label, face, cx, cy, colorText)

	default:
		fill := color.Color(colorHeader)
		if !b.Enabled {
			fill = colorDisabled
		} else if b.Pressed {
			fill = color.RGBA{R: 51, G: 103, B: 214, A: 255}
		}
		fillRect(screen, captcha.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}, fill)
		utils.DrawCenteredText(screen, b.Label, face, cx, cy, colorWhite)
	}
}

// drawCheckMark 绘制对勾
func drawCheckMark(screen *ebiten.Image, cx, cy, size float64, width float32, clr color.Color) {
	x0, y0 := cx-size*0.5, cy
	x1, y1 := cx-size*0.15, cy+size*0.35
	x2, y2 := cx+size*0.5, cy-size*0.35
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
	vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), width, clr, true)
}

// drawCross 绘制叉号
func drawCross(screen *ebiten.Image, cx, cy, size float64, width float32, clr color.Color) {
	h := size / 2
	vector.StrokeLine(screen, float32(cx-h), float32(cy-h), float32(cx+h), float32(cy+h), width, clr, true)
	vector.StrokeLine(screen, float32(cx-h), float32(cy+h), float32(cx+h), float32(cy-h), width, clr, true)
}

// drawSpinner 验证中的旋转指示器
func drawSpinner(screen *ebiten.Image, cx, cy, elapsed float64) {
	const radius = 20
	vector.StrokeCircle(screen, float32(cx), float32(cy), radius, 4, color.RGBA{R: 255, G: 255, B: 255, A: 96}, true)
	angle := elapsed * 2 * math.Pi
	x := cx + math.Cos(angle)*radius
	y := cy + math.Sin(angle)*radius
	vector.DrawFilledCircle(screen, float32(x), float32(y), 5, colorWhite, true)
}

// 结果遮罩动画时长（秒）
const (
	overlayFadeDuration = 0.2
	checkPopDuration    = 0.35
)

// statusClock 记录状态切换后经过的时间，驱动遮罩淡入
type statusClock struct {
	status captcha.Status
	since  float64
}

// Tick 每帧调用，状态变化时从 0 重新计时
func (c *statusClock) Tick(status captcha.Status, deltaTime float64) {
	if status != c.status {
		c.status = status
		c.since = 0
		return
	}
	c.since += deltaTime
}

// fade 按比例缩放颜色（color.RGBA 是预乘 alpha，四个分量一起缩放）
func fade(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: uint8(utils.Lerp(0, float64(c.R), k)),
		G: uint8(utils.Lerp(0, float64(c.G), k)),
		B: uint8(utils.Lerp(0, float64(c.B), k)),
		A: uint8(utils.Lerp(0, float64(c.A), k)),
	}
}

// promptLineHeight 提示文字行高（TitleFace）
const promptLineHeight = 30.0

// wrappedLines 按 r 的宽度（两侧各留 padding）换行，返回每行文字和行中心 Y
// 多行整体在 r 内垂直居中
func wrappedLines(str string, face text.Face, r captcha.Rect, padding, lineHeight float64) ([]string, []float64) {
	lines := utils.WrapText(str, face, r.Width-2*padding)
	centers := make([]float64, len(lines))
	top := r.Y + (r.Height-lineHeight*float64(len(lines)))/2
	for i := range lines {
		centers[i] = top + lineHeight*(float64(i)+0.5)
	}
	return lines, centers
}

// drawWrappedCentered 在 r 内居中绘制自动换行的文字
func drawWrappedCentered(screen *ebiten.Image, str string, face text.Face, r captcha.Rect, padding, lineHeight float64, clr color.Color) {
	lines, centers := wrappedLines(str, face, r, padding, lineHeight)
	cx := r.X + r.Width/2
	for i, line := range lines {
		utils.DrawCenteredText(screen, line, face, cx, centers[i], clr)
	}
}

// shortID 验证码实例 ID 的前 8 位，显示在底栏
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// drawStatusOverlay 验证中 / 成功 / 失败遮罩
//   - elapsed: 场景累计时间（旋转指示器）
//   - since: 进入当前状态后经过的时间（淡入和对勾弹出）
func drawStatusOverlay(screen *ebiten.Image, r captcha.Rect, status captcha.Status, elapsed, since float64, assets *Assets, successText string) {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	alpha := utils.EaseOutCubic(utils.Progress(since, overlayFadeDuration))

	switch status {
	case captcha.StatusVerifying:
		fillRect(screen, r, fade(colorDim, alpha))
		drawSpinner(screen, cx, cy, elapsed)

	case captcha.StatusSuccess:
		fillRect(screen, r, fade(colorSuccess, alpha))
		pop := utils.EaseOutBack(utils.Progress(since, checkPopDuration))
		drawCheckMark(screen, cx, cy-12, 48*pop, 6, colorWhite)
		utils.DrawCenteredText(screen, successText, assets.BodyFace, cx, cy+36, fade(colorWhite, alpha))

	case captcha.StatusFailure:
		fillRect(screen, r, fade(colorFailure, alpha))
		drawCross(screen, cx, cy, 40, 6, colorWhite)
	}
}

// drawWidgetHeader 蓝色标题栏
func drawWidgetHeader(screen *ebiten.Image, r captcha.Rect, title string, assets *Assets) {
	fillRect(screen, r, colorHeader)
	utils.DrawText(screen, title, assets.BodyFace, r.X+16, r.Y+r.Height/2-8, colorWhite)
}

// newRoundButton 圆形图标按钮
func newRoundButton(label string, x, y, size float64, onClick func()) *components.ButtonComponent {
	return &components.ButtonComponent{
		Label:   label,
		Shape:   components.ButtonShapeRound,
		X:       x,
		Y:       y,
		Width:   size,
		Height:  size,
		Enabled: true,
		OnClick: onClick,
	}
}
