package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a widget screen (e.g., trigger menu, click challenge, grid challenge).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Enterable 可选接口，场景被切换为当前场景时调用 OnEnter
// 用于重置输入跟踪状态，避免上一个场景的按下事件泄漏到新场景
type Enterable interface {
	OnEnter()
}
