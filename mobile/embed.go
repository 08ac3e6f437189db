//go:build mobile

// embed.go - 移动端配置嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把 data/captcha.yaml 和 data/captcha.schema.json 复制到 mobile/data/：
//
//	mkdir -p mobile/data && cp data/captcha.* mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed data/captcha.yaml data/captcha.schema.json
var dataFS embed.FS
