// validate_catalog 校验验证码配置文件
//
// 先用 data/captcha.schema.json 做结构校验，再用 config.ParseCatalog 校验模板不变量
// （stateIndex 范围、variant 形式等 JSON Schema 表达不了的规则）。
//
// 用法：
//
//	go run ./cmd/validate_catalog -catalog data/captcha.yaml -schema data/captcha.schema.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/decker502/luobo-captcha/pkg/config"
)

var (
	catalogPath = flag.String("catalog", "data/captcha.yaml", "验证码配置文件")
	schemaPath  = flag.String("schema", "data/captcha.schema.json", "JSON Schema 文件")
)

func main() {
	flag.Parse()

	catalog, err := validate(*schemaPath, *catalogPath)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ %s 校验通过\n", *catalogPath)
	fmt.Printf("✅ 点击模板: %d\n", len(catalog.ListClickTemplates()))
	fmt.Printf("✅ 九宫格物品: %d\n", len(catalog.GridTemplate().Items))
	fmt.Printf("✅ 提示音: %v\n", catalog.CueKeys())

	for _, warning := range missingCues(catalog) {
		fmt.Printf("⚠️  %s\n", warning)
	}
}

// validate 依次执行 Schema 校验和模板不变量校验
func validate(schemaFile, catalogFile string) (*config.Catalog, error) {
	schema, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schemaFile, err)
	}

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	doc, err := yamlToJSON(data)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	return config.ParseCatalog(data)
}

// yamlToJSON 把 YAML 文档转换为 encoding/json 的值类型（数字为 float64）
func yamlToJSON(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert to json: %w", err)
	}
	var doc any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("convert to json: %w", err)
	}
	return doc, nil
}

// missingCues 列出没有绑定提示音的热区和物品
// 缺少提示音不会导致运行失败，只是没有声音
func missingCues(catalog *config.Catalog) []string {
	cues := catalog.CueBindings()
	var warnings []string

	if len(cues["zhenbang"]) == 0 {
		warnings = append(warnings, "cue zhenbang 没有音频，答对时没有声音")
	}
	for _, t := range catalog.ListClickTemplates() {
		for _, area := range t.Areas {
			if len(cues[area.Name]) == 0 {
				warnings = append(warnings, fmt.Sprintf("模板 %s 热区 %s 没有提示音", t.ID, area.Name))
			}
		}
	}
	for _, item := range catalog.GridTemplate().Items {
		if len(cues[item.Name]) == 0 {
			warnings = append(warnings, fmt.Sprintf("九宫格物品 %s 没有提示音", item.Name))
		}
	}
	return warnings
}
