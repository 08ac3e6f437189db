package captcha

import (
	"github.com/decker502/luobo-captcha/pkg/config"
)

// Rect 屏幕上的矩形（验证码图片实际绘制的位置和大小）
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains 判断点是否在矩形内（右、下边界不包含）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// MapPointer 把屏幕坐标换算到验证码图片坐标系
//
// 换算公式：scale = imageSize / rendered.Width
// x = (clientX - rendered.X) * scale，y 同理（图片为正方形，X/Y 使用同一缩放）
//
// 参数：
//   - clientX, clientY: 指针的屏幕坐标
//   - rendered: 图片在屏幕上的绘制区域
//   - imageSize: 模板的参考分辨率
//
// 返回：
//   - x, y: 图片坐标
//   - ok: rendered 宽度无效时返回 false
func MapPointer(clientX, clientY float64, rendered Rect, imageSize float64) (x, y float64, ok bool) {
	if rendered.Width <= 0 {
		return 0, 0, false
	}
	scale := imageSize / rendered.Width
	return (clientX - rendered.X) * scale, (clientY - rendered.Y) * scale, true
}

// HitTest 返回第一个包含点 (x, y) 的热区，按声明顺序匹配
// 没有命中返回 nil
func HitTest(areas []config.Area, x, y float64) *config.Area {
	for i := range areas {
		if areas[i].Contains(x, y) {
			return &areas[i]
		}
	}
	return nil
}

// ScaleArea 把热区从图片坐标换算回屏幕坐标（调试框绘制用）
func ScaleArea(area config.Area, rendered Rect, imageSize float64) Rect {
	if imageSize <= 0 {
		return Rect{}
	}
	scale := rendered.Width / imageSize
	return Rect{
		X:      rendered.X + area.X*scale,
		Y:      rendered.Y + area.Y*scale,
		Width:  area.Width * scale,
		Height: area.Height * scale,
	}
}
