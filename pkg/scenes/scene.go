package scenes

import (
	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景名称（SceneManager 注册用）
const (
	SceneMenu  = "menu"
	SceneClick = "click"
	SceneGrid  = "grid"
)

// SceneFor 返回展示模式对应的场景名称
func SceneFor(mode captcha.Mode) string {
	switch mode {
	case captcha.ModeClick:
		return SceneClick
	case captcha.ModeGrid:
		return SceneGrid
	default:
		return SceneMenu
	}
}
