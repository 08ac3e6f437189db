package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// 展示模式
const (
	// ModeMenu 显示菜单，由用户选择验证码
	ModeMenu = "menu"
	// ModeClick 启动后直接弹出点击验证码
	ModeClick = "click"
	// ModeGrid 启动后直接弹出九宫格验证码
	ModeGrid = "grid"
)

// 九宫格验证按钮策略
const (
	// GridPolicySkip 验证按钮总是可用，空选择即"跳过"
	GridPolicySkip = "skip"
	// GridPolicyStrict 必须至少选择一项才能验证，失败会通知宿主
	GridPolicyStrict = "strict"
)

// AppConfig 应用启动配置
// 先从 CAPTCHA_* 环境变量读取，再由命令行参数覆盖
type AppConfig struct {
	// Verbose 启用详细日志输出
	Verbose bool `env:"CAPTCHA_VERBOSE" envDefault:"false"`
	// AssetsDir 图片和音频资源所在目录
	AssetsDir string `env:"CAPTCHA_ASSETS_DIR" envDefault:"assets"`
	// CatalogPath 外部配置文件路径，为空时使用内嵌的 data/captcha.yaml
	CatalogPath string `env:"CAPTCHA_CATALOG"`
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64 `env:"CAPTCHA_SEED" envDefault:"0"`
	// GridPolicy 九宫格验证策略（skip / strict）
	GridPolicy string `env:"CAPTCHA_GRID_POLICY" envDefault:"skip"`
	// Mode 启动模式（menu / click / grid）
	Mode string `env:"CAPTCHA_MODE" envDefault:"menu"`
	// Debug 强制显示所有点击模板的热区调试框
	Debug bool `env:"CAPTCHA_DEBUG" envDefault:"false"`
	// FontPath 中文字体（相对资源目录），找不到时退回内置 ASCII 点阵字体
	FontPath string `env:"CAPTCHA_FONT" envDefault:"/fonts/NotoSansSC-Regular.otf"`
}

// LoadAppConfigFromEnv 从环境变量加载启动配置
func LoadAppConfigFromEnv() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate 检查枚举字段取值
func (c *AppConfig) Validate() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	switch c.Mode {
	case ModeMenu, ModeClick, ModeGrid:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", c.Mode, ModeMenu, ModeClick, ModeGrid)
	}

	c.GridPolicy = strings.ToLower(strings.TrimSpace(c.GridPolicy))
	switch c.GridPolicy {
	case GridPolicySkip, GridPolicyStrict:
	default:
		return fmt.Errorf("unknown grid policy %q (want %s or %s)", c.GridPolicy, GridPolicySkip, GridPolicyStrict)
	}
	return nil
}
