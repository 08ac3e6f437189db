package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/luobo-captcha/pkg/app"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/embedded"
)

func main() {
	cfg, err := config.LoadAppConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		os.Exit(2)
	}

	// 命令行参数覆盖环境变量
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "显示详细日志")
	flag.StringVar(&cfg.AssetsDir, "assets", cfg.AssetsDir, "图片和音频资源目录")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "外部验证码配置文件（默认使用内嵌配置）")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "随机种子，0 表示使用当前时间")
	flag.StringVar(&cfg.GridPolicy, "grid-policy", cfg.GridPolicy, "九宫格验证策略：skip 或 strict")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "启动模式：menu、click 或 grid")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "显示所有点击模板的热区")
	flag.StringVar(&cfg.FontPath, "font", cfg.FontPath, "中文字体路径（相对资源目录）")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "参数错误: %v\n", err)
		os.Exit(2)
	}

	embedded.Init(dataFS)

	captchaApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer captchaApp.Shutdown()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("萝卜纸巾验证码")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(captchaApp); err != nil {
		log.Fatal(err)
	}
}
