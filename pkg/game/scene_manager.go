package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages which widget screen is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
// Scenes can be registered by name and switched with SwitchToName.
type SceneManager struct {
	currentScene Scene
	currentName  string
	scenes       map[string]Scene // 已注册场景：名称 -> 场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or SwitchToName to set one.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		scenes: make(map[string]Scene),
	}
}

// Register 注册一个具名场景，同名场景会被覆盖
func (sm *SceneManager) Register(name string, scene Scene) {
	sm.scenes[name] = scene
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.currentName = ""
	if enterable, ok := scene.(Enterable); ok {
		enterable.OnEnter()
	}
}

// SwitchToName 切换到已注册的场景
//
// 参数：
//   - name: 场景名称（如 "menu"、"click"、"grid"）
//
// 返回：
//   - bool: 场景存在并已切换返回 true；已经是当前场景时也返回 true 且不会重复调用 OnEnter
func (sm *SceneManager) SwitchToName(name string) bool {
	if sm.currentName == name && sm.currentScene != nil {
		return true
	}

	scene, ok := sm.scenes[name]
	if !ok {
		log.Printf("[SceneManager] 错误: 场景 %q 未注册", name)
		return false
	}

	sm.SwitchTo(scene)
	sm.currentName = name
	return true
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景的注册名，通过 SwitchTo 直接切换时为空
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
