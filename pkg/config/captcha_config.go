package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog 表示验证码配置违反了模板不变量
// 调用者可使用 errors.Is 判断
var ErrInvalidCatalog = errors.New("invalid captcha catalog")

// PromptPlaceholder 提示模板中的目标占位符
const PromptPlaceholder = "{target}"

// ClickImages 点击验证码的图片集合
// Default 为未按下时的底图，States 为按住某个区域时显示的"激活"图
type ClickImages struct {
	Default string   `yaml:"default"`
	States  []string `yaml:"states"`
}

// Area 点击验证码中的一个矩形热区
// 坐标以 ClickTemplate.ImageSize 为参考分辨率
type Area struct {
	Name       string  `yaml:"name"`       // 热区标识，同时也是提示音效的 cue key
	Label      string  `yaml:"label"`      // 显示用的中文名称
	X          float64 `yaml:"x"`          // 左上角 X
	Y          float64 `yaml:"y"`          // 左上角 Y
	Width      float64 `yaml:"width"`      // 宽度
	Height     float64 `yaml:"height"`     // 高度
	StateIndex int     `yaml:"stateIndex"` // 按住时显示 Images.States 的下标
}

// Contains 判断点 (x, y) 是否在热区内（边界包含在内）
func (a Area) Contains(x, y float64) bool {
	return x >= a.X &&
		x <= a.X+a.Width &&
		y >= a.Y &&
		y <= a.Y+a.Height
}

// ClickTemplate 点击验证码模板
type ClickTemplate struct {
	ID             string      `yaml:"id"`
	BasePath       string      `yaml:"basePath"`
	Images         ClickImages `yaml:"images"`
	Areas          []Area      `yaml:"areas"`
	PromptTemplate string      `yaml:"promptTemplate"`
	ImageSize      float64     `yaml:"imageSize"` // 正方形参考分辨率（像素）
	Debug          bool        `yaml:"debug"`     // 是否绘制热区调试框
}

// DefaultImage 返回底图的完整路径
func (t *ClickTemplate) DefaultImage() string {
	return ImagePath(t.BasePath, t.Images.Default)
}

// StateImage 返回指定状态图的完整路径，下标越界返回底图
func (t *ClickTemplate) StateImage(index int) string {
	if index < 0 || index >= len(t.Images.States) {
		return t.DefaultImage()
	}
	return ImagePath(t.BasePath, t.Images.States[index])
}

// VariantKind 九宫格物品的展示形式
type VariantKind int

const (
	// VariantButton 可按下的按钮形式（up/down 两张图）
	VariantButton VariantKind = iota
	// VariantImage 静态图片形式
	VariantImage
)

// String 返回配置文件中使用的 type 名称
func (k VariantKind) String() string {
	switch k {
	case VariantButton:
		return "button"
	case VariantImage:
		return "image"
	default:
		return fmt.Sprintf("VariantKind(%d)", int(k))
	}
}

// ButtonImages 按钮形式的按下/弹起图片
type ButtonImages struct {
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
}

// Variant 物品的一种展示形式
// Kind 决定哪个字段有效：VariantButton 使用 Images，VariantImage 使用 Image
type Variant struct {
	Kind   VariantKind
	Images ButtonImages
	Image  string
}

// Interactive 是否为可交互的按钮形式（按下时播放点击音效）
func (v Variant) Interactive() bool {
	return v.Kind == VariantButton
}

// ImageFor 返回当前按下状态对应的图片路径
func (v Variant) ImageFor(pressed bool) string {
	if v.Kind == VariantImage {
		return v.Image
	}
	if pressed {
		return v.Images.Down
	}
	return v.Images.Up
}

// rawVariant 配置文件中的原始结构，按 type 字段分派
type rawVariant struct {
	Type   string       `yaml:"type"`
	Images ButtonImages `yaml:"images"`
	Image  string       `yaml:"image"`
}

// UnmarshalYAML 根据 type 标签解码 Variant
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var raw rawVariant
	if err := node.Decode(&raw); err != nil {
		return err
	}

	switch raw.Type {
	case "button":
		*v = Variant{Kind: VariantButton, Images: raw.Images}
	case "image":
		*v = Variant{Kind: VariantImage, Image: raw.Image}
	default:
		return fmt.Errorf("line %d: unknown variant type %q", node.Line, raw.Type)
	}
	return nil
}

// MarshalYAML 输出与配置文件一致的结构
func (v Variant) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case VariantButton:
		return rawVariant{Type: "button", Images: v.Images}, nil
	case VariantImage:
		return rawVariant{Type: "image", Image: v.Image}, nil
	default:
		return nil, fmt.Errorf("unknown variant kind %d", int(v.Kind))
	}
}

// Item 九宫格中的一种物品
type Item struct {
	Name     string    `yaml:"name"`
	Label    string    `yaml:"label"`
	Variants []Variant `yaml:"variants"`
}

// GridTemplate 九宫格验证码模板
type GridTemplate struct {
	Items          []Item `yaml:"items"`
	PromptTemplate string `yaml:"promptTemplate"`
}

// SoundConfig 不经过提示音编排器的一次性音效
type SoundConfig struct {
	Click string `yaml:"click"`
}

// Catalog 验证码配置目录
// 包含所有点击模板、九宫格模板以及音效绑定
type Catalog struct {
	Cues            map[string][]string `yaml:"cues"`
	Sounds          SoundConfig         `yaml:"sounds"`
	ClickChallenges []ClickTemplate     `yaml:"clickChallenges"`
	GridChallenge   GridTemplate        `yaml:"gridChallenge"`
}

// LoadCatalog 从文件加载验证码配置
//
// 参数：
//   - filepath: YAML 配置文件路径（如 "data/captcha.yaml"）
//
// 返回：
//   - *Catalog: 解析后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadCatalog(filepath string) (*Catalog, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read captcha catalog %s: %w", filepath, err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load captcha catalog %s: %w", filepath, err)
	}
	return catalog, nil
}

// ParseCatalog 从 YAML 数据解析验证码配置
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse captcha catalog YAML: %w", err)
	}

	if err := validateCatalog(&catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// validateCatalog 只校验模板自身声明的不变量
func validateCatalog(c *Catalog) error {
	for i := range c.ClickChallenges {
		t := &c.ClickChallenges[i]
		if t.ImageSize <= 0 {
			return fmt.Errorf("%w: click template %q has imageSize %v", ErrInvalidCatalog, t.ID, t.ImageSize)
		}
		for _, area := range t.Areas {
			if area.StateIndex < 0 || area.StateIndex >= len(t.Images.States) {
				return fmt.Errorf("%w: click template %q area %q stateIndex %d out of range [0,%d)",
					ErrInvalidCatalog, t.ID, area.Name, area.StateIndex, len(t.Images.States))
			}
		}
	}

	for _, item := range c.GridChallenge.Items {
		if len(item.Variants) == 0 {
			return fmt.Errorf("%w: grid item %q has no variants", ErrInvalidCatalog, item.Name)
		}
		for j, v := range item.Variants {
			switch v.Kind {
			case VariantButton:
				if v.Images.Up == "" || v.Images.Down == "" {
					return fmt.Errorf("%w: grid item %q variant %d needs up and down images", ErrInvalidCatalog, item.Name, j)
				}
			case VariantImage:
				if v.Image == "" {
					return fmt.Errorf("%w: grid item %q variant %d needs an image", ErrInvalidCatalog, item.Name, j)
				}
			}
		}
	}
	return nil
}

// ListClickTemplates 返回所有点击验证码模板
func (c *Catalog) ListClickTemplates() []ClickTemplate {
	return c.ClickChallenges
}

// GridTemplate 返回九宫格验证码模板
func (c *Catalog) GridTemplate() *GridTemplate {
	return &c.GridChallenge
}

// CueBindings 返回 cue key -> 音频路径列表 的绑定
func (c *Catalog) CueBindings() map[string][]string {
	return c.Cues
}

// CueKeys 返回排序后的所有 cue key
func (c *Catalog) CueKeys() []string {
	keys := make([]string, 0, len(c.Cues))
	for key := range c.Cues {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ClickSound 返回九宫格按钮点击音效路径，未配置时为空字符串
func (c *Catalog) ClickSound() string {
	return c.Sounds.Click
}

// ImagePath 拼接模板目录与文件名
func ImagePath(basePath, file string) string {
	if basePath == "" {
		return file
	}
	return path.Join(basePath, file)
}

// Prompt 将 label 代入提示模板
// 只替换第一个占位符
func Prompt(template, label string) string {
	if template == "" {
		return label
	}
	return strings.Replace(template, PromptPlaceholder, label, 1)
}
