package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if settings.SoundVolume != 1.0 {
		t.Errorf("SoundVolume: got %v, want 1.0", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.ShowDebugAreas {
		t.Error("ShowDebugAreas: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if sm.GetSettings().SoundVolume != 1.0 {
		t.Errorf("Degraded mode SoundVolume: got %v, want 1.0", sm.GetSettings().SoundVolume)
	}

	// 降级模式下保存不报错
	sm.SetSoundVolume(0.3)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", originalHome)

	gdataManager, err := gdata.Open(gdata.Config{
		AppName: "test_captcha_settings",
	})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}

	sm1, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	sm1.SetSoundVolume(0.4)
	sm1.SetSoundEnabled(false)
	sm1.SetShowDebugAreas(true)

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(gdataManager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	settings := sm2.GetSettings()
	if settings.SoundVolume != 0.4 {
		t.Errorf("Loaded SoundVolume: got %v, want 0.4", settings.SoundVolume)
	}
	if settings.SoundEnabled {
		t.Error("Loaded SoundEnabled: got true, want false")
	}
	if !settings.ShowDebugAreas {
		t.Error("Loaded ShowDebugAreas: got false, want true")
	}
}

// TestSetSoundVolumeClamp 测试音量范围限制
func TestSetSoundVolumeClamp(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"normal", 0.5, 0.5},
		{"below zero", -0.2, 0.0},
		{"above one", 1.7, 1.0},
		{"zero", 0.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetSoundVolume(tt.input)
			if got := sm.GetSettings().SoundVolume; got != tt.want {
				t.Errorf("SetSoundVolume(%v): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestToggleSound 测试音效开关切换
func TestToggleSound(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	if sm.ToggleSound() {
		t.Error("First toggle should disable sound")
	}
	if !sm.ToggleSound() {
		t.Error("Second toggle should enable sound")
	}
}

// TestAudioManagerVolumeFromSettings AudioManager 从设置读取音量
func TestAudioManagerVolumeFromSettings(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(NewResourceManager(nil, ""), sm)

	am.SetSoundVolume(0.25)
	if am.GetSoundVolume() != 0.25 {
		t.Errorf("GetSoundVolume: got %v, want 0.25", am.GetSoundVolume())
	}

	sm.SetSoundEnabled(false)
	if am.PlaySound("/sounds/click.wav") {
		t.Error("PlaySound should be a no-op while sound is disabled")
	}

	noSettings := NewAudioManager(NewResourceManager(nil, ""), nil)
	if noSettings.GetSoundVolume() != DefaultSettings().SoundVolume {
		t.Error("AudioManager without settings should use the default volume")
	}
	if noSettings.PlaySound("") {
		t.Error("PlaySound with empty path should return false")
	}
}

// TestAudioManagerAdjustSoundVolume 音量快捷键的增减和边界
func TestAudioManagerAdjustSoundVolume(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	am := NewAudioManager(NewResourceManager(nil, ""), sm)

	tests := []struct {
		delta float64
		want  float64
	}{
		{0.1, 1.0},
		{-0.25, 0.75},
		{-0.5, 0.25},
		{-0.5, 0},
		{0.5, 0.5},
	}
	for _, tt := range tests {
		if got := am.AdjustSoundVolume(tt.delta); got != tt.want {
			t.Errorf("AdjustSoundVolume(%v) = %v, want %v", tt.delta, got, tt.want)
		}
	}
	if sm.GetSettings().SoundVolume != 0.5 {
		t.Errorf("settings volume = %v, want 0.5", sm.GetSettings().SoundVolume)
	}
}
