// gen_placeholders 为验证码配置生成占位图片
//
// 仓库不附带美术资源。此工具按 data/captcha.yaml 生成同名图片：
//   - 点击模板：底图画出所有热区轮廓和名称，每张状态图额外高亮对应热区
//   - 九宫格：按钮形式生成 up/down 两张，图片形式生成一张
//
// 用法：
//
//	go run ./cmd/gen_placeholders -catalog data/captcha.yaml -out assets
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/decker502/luobo-captcha/pkg/config"
	"github.com/decker502/luobo-captcha/pkg/game"
)

const gridTileSize = 220

var (
	catalogPath = flag.String("catalog", "data/captcha.yaml", "验证码配置文件")
	outDir      = flag.String("out", "assets", "输出目录（与 --assets 相同）")
	fontPath    = flag.String("font", "", "TrueType 字体，为空时使用内置字体（只能显示 ASCII）")
	overwrite   = flag.Bool("overwrite", false, "覆盖已存在的图片")
)

// placeholder 一张待写入的图片
type placeholder struct {
	path  string
	image image.Image
}

func main() {
	flag.Parse()

	catalog, err := config.LoadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 只用于路径解析，不加载任何资源
	rm := game.NewResourceManager(nil, *outDir)

	var images []placeholder
	for i := range catalog.ListClickTemplates() {
		images = append(images, renderClickTemplate(&catalog.ListClickTemplates()[i])...)
	}
	images = append(images, renderGridItems(catalog.GridTemplate())...)

	written, skipped := 0, 0
	for _, p := range images {
		target := rm.Resolve(p.path)
		if !*overwrite {
			if _, err := os.Stat(target); err == nil {
				skipped++
				continue
			}
		}
		if err := save(target, p.image); err != nil {
			log.Fatalf("写入 %s 失败: %v", target, err)
		}
		written++
	}

	fmt.Printf("✅ 生成 %d 张图片，跳过 %d 张已存在的图片（输出目录 %s）\n", written, skipped, *outDir)
}

// renderClickTemplate 生成底图和每张状态图
func renderClickTemplate(t *config.ClickTemplate) []placeholder {
	size := int(t.ImageSize)
	images := []placeholder{{path: t.DefaultImage(), image: drawClickImage(t, size, -1)}}
	for i := range t.Images.States {
		images = append(images, placeholder{path: t.StateImage(i), image: drawClickImage(t, size, i)})
	}
	return images
}

// drawClickImage 绘制点击模板图片
// state 为 -1 时绘制底图，否则高亮 stateIndex == state 的热区
func drawClickImage(t *config.ClickTemplate, size, state int) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetHexColor("#F3F4F6")
	dc.Clear()
	loadFont(dc, 14)

	dc.SetHexColor("#9CA3AF")
	dc.DrawStringAnchored(t.ID, float64(size)/2, 20, 0.5, 0.5)

	for _, area := range t.Areas {
		if area.StateIndex == state {
			dc.SetHexColor("#FDE68A")
			dc.DrawRectangle(area.X, area.Y, area.Width, area.Height)
			dc.Fill()
		}
		dc.SetLineWidth(2)
		dc.SetHexColor("#4B5563")
		dc.DrawRectangle(area.X, area.Y, area.Width, area.Height)
		dc.Stroke()
		dc.DrawStringAnchored(area.Name, area.X+area.Width/2, area.Y+area.Height/2, 0.5, 0.5)
	}
	return dc.Image()
}

// renderGridItems 生成九宫格物品图片
func renderGridItems(t *config.GridTemplate) []placeholder {
	var images []placeholder
	for _, item := range t.Items {
		for _, v := range item.Variants {
			switch v.Kind {
			case config.VariantButton:
				images = append(images,
					placeholder{path: v.Images.Up, image: drawTile(item.Name, "#DBEAFE", false)},
					placeholder{path: v.Images.Down, image: drawTile(item.Name, "#93C5FD", true)},
				)
			case config.VariantImage:
				images = append(images, placeholder{path: v.Image, image: drawTile(item.Name, "#FEF3C7", false)})
			}
		}
	}
	return images
}

// drawTile 绘制九宫格格子，pressed 时画内阴影边框
func drawTile(name, fill string, pressed bool) image.Image {
	dc := gg.NewContext(gridTileSize, gridTileSize)
	dc.SetHexColor(fill)
	dc.Clear()
	loadFont(dc, 20)

	if pressed {
		dc.SetLineWidth(8)
		dc.SetHexColor("#1D4ED8")
		dc.DrawRectangle(4, 4, gridTileSize-8, gridTileSize-8)
		dc.Stroke()
	}

	dc.SetHexColor("#1F2937")
	dc.DrawStringAnchored(name, gridTileSize/2, gridTileSize/2, 0.5, 0.5)
	return dc.Image()
}

func loadFont(dc *gg.Context, size float64) {
	if *fontPath == "" {
		return
	}
	if err := dc.LoadFontFace(*fontPath, size); err != nil {
		log.Printf("[gen_placeholders] Warning: %v (using built-in face)", err)
	}
}

// save 按扩展名保存为 PNG 或 JPEG
func save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return gg.SavePNG(path, img)
	case ".jpg", ".jpeg":
		return gg.SaveJPG(path, img, 90)
	default:
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}
