package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/decker502/luobo-captcha/pkg/game"
)

// Assets 场景共享的资源和偏好设置
type Assets struct {
	resources *game.ResourceManager
	settings  *game.SettingsManager // 可为 nil

	TitleFace text.Face // 标题、提示文字
	BodyFace  text.Face // 按钮、横幅
	SmallFace text.Face // 说明文字

	// ForceDebug 命令行 --debug：所有模板都显示热区
	ForceDebug bool

	missing map[string]bool // 加载失败的图片，只记录一次日志
}

// NewAssets 创建场景资源
//
// 参数：
//   - rm: 资源管理器
//   - sm: 设置管理器，可为 nil
//   - fontPath: 中文字体路径，加载失败时使用内置点阵字体
func NewAssets(rm *game.ResourceManager, sm *game.SettingsManager, fontPath string) *Assets {
	return &Assets{
		resources: rm,
		settings:  sm,
		TitleFace: rm.FontOrFallback(fontPath, 26),
		BodyFace:  rm.FontOrFallback(fontPath, 16),
		SmallFace: rm.FontOrFallback(fontPath, 12),
		missing:   make(map[string]bool),
	}
}

// Image 获取图片，缺失时返回 nil（由调用者绘制占位图）
func (a *Assets) Image(path string) *ebiten.Image {
	if path == "" || a.missing[path] {
		return nil
	}
	if img := a.resources.GetImage(path); img != nil {
		return img
	}

	img, err := a.resources.LoadImage(path)
	if err != nil {
		a.missing[path] = true
		log.Printf("[Assets] Warning: %v (drawing placeholder)", err)
		return nil
	}
	return img
}

// ShowDebugAreas 是否绘制热区调试框
func (a *Assets) ShowDebugAreas(templateDebug bool) bool {
	if templateDebug || a.ForceDebug {
		return true
	}
	return a.settings != nil && a.settings.GetSettings().ShowDebugAreas
}
