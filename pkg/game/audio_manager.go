package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 为 CueOrchestrator 提供 ClipLoader（基于 Ebitengine audio.Player）
//   - 播放不经过编排器的一次性音效（九宫格按钮点击声）
//   - 从 SettingsManager 读取音量和开关设置
//
// 提示音的"同一时间只有一个"规则由 CueOrchestrator 负责；
// 点击音效是独立通道，可以与提示音同时发声。
type AudioManager struct {
	resourceManager *ResourceManager // 资源管理器（用于加载音频）
	settingsManager *SettingsManager // 设置管理器（用于读取音量设置，可为 nil）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// LoadClip 实现 ClipLoader 接口
func (am *AudioManager) LoadClip(path string) (Clip, error) {
	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		return nil, err
	}
	return &playerClip{player: player, manager: am}, nil
}

// PlaySound 播放一次性音效
// 音效使用 SoundVolume 设置控制音量，每次从头播放
//
// 参数：
//   - path: 音效路径（如 "/sounds/click.wav"）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(path string) bool {
	if path == "" || !am.soundEnabled() {
		return false
	}

	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", path, err)
		return false
	}

	player.SetVolume(am.GetSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", path, err)
	}
	player.Play()
	return true
}

// SetSoundVolume 设置音效音量（同时写入 SettingsManager）
//
// 参数：
//   - volume: 音量值 (0.0 ~ 1.0)
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// AdjustSoundVolume 按增量调整音效音量（结果限制在 0.0 ~ 1.0）
//
// 返回：
//   - float64: 调整后的音量
func (am *AudioManager) AdjustSoundVolume(delta float64) float64 {
	am.SetSoundVolume(am.GetSoundVolume() + delta)
	return am.GetSoundVolume()
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}

// soundEnabled 音效开关
func (am *AudioManager) soundEnabled() bool {
	if am.settingsManager == nil {
		return true
	}
	return am.settingsManager.GetSettings().SoundEnabled
}

// playerClip 把 audio.Player 包装为 Clip
// 每次 Play 都从头播放并应用当前音量
type playerClip struct {
	player  *audio.Player
	manager *AudioManager
}

func (c *playerClip) Play() {
	if !c.manager.soundEnabled() {
		return
	}
	c.player.SetVolume(c.manager.GetSoundVolume())
	if err := c.player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind clip: %v", err)
	}
	c.player.Play()
}

func (c *playerClip) Stop() {
	c.player.Pause()
}

func (c *playerClip) IsPlaying() bool {
	return c.player.IsPlaying()
}
