//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.luobo -o build/android/luobo.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Luobo.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/luobo-captcha/pkg/app"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/embedded"
)

func init() {
	embedded.Init(dataFS)

	// 移动端不读环境变量，使用默认配置并打开日志
	cfg := config.AppConfig{
		Verbose:    true,
		AssetsDir:  "assets",
		GridPolicy: config.GridPolicySkip,
		Mode:       config.ModeMenu,
		FontPath:   "/fonts/NotoSansSC-Regular.otf",
	}

	captchaApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	mobile.SetGame(captchaApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
