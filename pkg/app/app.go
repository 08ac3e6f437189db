// Package app 提供验证码演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/embedded"
	"github.com/decker502/luobo-captcha/pkg/game"
	"github.com/decker502/luobo-captcha/pkg/scenes"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

// settingsAppName gdata 存储目录名
const settingsAppName = "luobo-captcha"

// volumeStep 每次按键调整的音量
const volumeStep = 0.1

// App 是验证码演示的核心包装器，实现 ebiten.Game 接口
//
// 每帧的顺序：提示音编排器 -> 宿主（验证码计时器）-> 按宿主状态切换场景 -> 场景输入
type App struct {
	sceneManager *game.SceneManager
	orchestrator *game.CueOrchestrator
	audio        *game.AudioManager
	settings     *game.SettingsManager
	host         *captcha.Host
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化内嵌配置
// （cfg.CatalogPath 指定外部配置文件时除外）。
func NewApp(cfg config.AppConfig) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	catalog, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("验证码配置加载失败: %w", err)
	}
	log.Printf("[App] Catalog: %d click templates, %d grid items, %d cues",
		len(catalog.ListClickTemplates()), len(catalog.GridTemplate().Items), len(catalog.CueKeys()))

	policy, err := captcha.ParseGridPolicy(cfg.GridPolicy)
	if err != nil {
		return nil, err
	}
	startMode, err := captcha.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext, cfg.AssetsDir)

	// 设置存储不可用时只在内存中保存
	settingsManager, err := game.NewSettingsManager(game.OpenSettingsStorage(settingsAppName))
	if err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	audioManager := game.NewAudioManager(resourceManager, settingsManager)
	random := game.NewRandom(cfg.Seed)

	orchestrator := game.NewCueOrchestrator(audioManager, random, catalog.CueBindings())
	orchestrator.PreloadAll()

	host := captcha.NewHost(catalog, orchestrator, random, captcha.HostOptions{
		GridPolicy: policy,
		Sounds:     audioManager,
	})

	assets := scenes.NewAssets(resourceManager, settingsManager, cfg.FontPath)
	assets.ForceDebug = cfg.Debug

	menu := scenes.NewMenuScene(host, assets)
	sceneManager := game.NewSceneManager()
	sceneManager.Register(scenes.SceneMenu, menu)
	sceneManager.Register(scenes.SceneClick, scenes.NewClickCaptchaScene(host, assets, menu))
	sceneManager.Register(scenes.SceneGrid, scenes.NewGridCaptchaScene(host, assets, menu))

	if startMode != captcha.ModeNone {
		host.Present(startMode)
	}
	sceneManager.SwitchToName(scenes.SceneFor(host.Active()))

	log.Printf("[App] Started: mode=%s policy=%s seed=%d", startMode, policy, cfg.Seed)

	return &App{
		sceneManager: sceneManager,
		orchestrator: orchestrator,
		audio:        audioManager,
		settings:     settingsManager,
		host:         host,
		verbose:      cfg.Verbose,
	}, nil
}

// LoadCatalog 加载验证码配置
// path 为空时读取内嵌的 data/captcha.yaml
func LoadCatalog(path string) (*config.Catalog, error) {
	if path != "" {
		return config.LoadCatalog(path)
	}

	data, err := embedded.ReadFile(embedded.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return config.ParseCatalog(data)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	a.handleKeys()

	deltaTime := 1.0 / 60.0
	a.orchestrator.Update(deltaTime)
	a.host.Update(deltaTime)
	a.sceneManager.SwitchToName(scenes.SceneFor(a.host.Active()))
	a.sceneManager.Update(deltaTime)
	return nil
}

// handleKeys 快捷键
//   - F11: 切换全屏
//   - D: 切换热区调试框
//   - M: 切换声音
//   - -/=: 调整音量
func (a *App) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// 移动端没有键盘
	if a.settings == nil || utils.IsMobile() {
		return
	}

	changed := false
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		a.settings.SetShowDebugAreas(!a.settings.GetSettings().ShowDebugAreas)
		log.Printf("[App] Debug areas: %v", a.settings.GetSettings().ShowDebugAreas)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if !a.settings.ToggleSound() {
			a.orchestrator.StopAll()
		}
		log.Printf("[App] Sound enabled: %v", a.settings.GetSettings().SoundEnabled)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		log.Printf("[App] Sound volume: %.1f", a.audio.AdjustSoundVolume(-volumeStep))
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		log.Printf("[App] Sound volume: %.1f", a.audio.AdjustSoundVolume(volumeStep))
		changed = true
	}
	if changed {
		if err := a.settings.Save(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Shutdown 卸载验证码并停止所有提示音
// 窗口关闭时调用
func (a *App) Shutdown() {
	a.host.Shutdown()
	a.orchestrator.StopAll()
	log.Printf("[App] Shutdown")
}

// Host 返回验证码宿主
func (a *App) Host() *captcha.Host {
	return a.host
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
