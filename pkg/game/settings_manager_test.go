package game

import (
	"testing"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// openTestGdata 在临时 HOME 下创建 gdata manager
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	m, err := gdata.Open(gdata.Config{AppName: "starfall_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.LastAlias != "" {
		t.Errorf("LastAlias: got %q, want empty", settings.LastAlias)
	}
	if settings.LastDifficulty != config.DifficultyEasy {
		t.Errorf("LastDifficulty: got %q, want easy", settings.LastDifficulty)
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}

	sm.SetLastAlias("Neo")
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should not fail: %v", err)
	}
	if sm.GetSettings().LastAlias != "" {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSettingsLoadSave 测试设置的保存和重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := openTestGdata(t)

	sm1 := NewSettingsManager(m)
	sm1.SetSoundVolume(0.3)
	sm1.SetSoundEnabled(false)
	sm1.SetLastAlias("  Neo  ")
	sm1.SetLastDifficulty(config.DifficultyHard)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	got := sm2.GetSettings()
	if got.SoundVolume != 0.3 {
		t.Errorf("SoundVolume: got %v, want 0.3", got.SoundVolume)
	}
	if got.SoundEnabled {
		t.Error("SoundEnabled: got true, want false")
	}
	if got.LastAlias != "Neo" {
		t.Errorf("LastAlias: got %q, want Neo", got.LastAlias)
	}
	if got.LastDifficulty != config.DifficultyHard {
		t.Errorf("LastDifficulty: got %q, want hard", got.LastDifficulty)
	}
}

// TestLoadSanitizesStoredValues 存储中的非法值被修正
func TestLoadSanitizesStoredValues(t *testing.T) {
	m := openTestGdata(t)
	data := []byte("soundVolume: 4\nlastDifficulty: nightmare\n")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(m)
	got := sm.GetSettings()
	if got.SoundVolume != 1 {
		t.Errorf("SoundVolume: got %v, want 1", got.SoundVolume)
	}
	if got.LastDifficulty != config.DifficultyEasy {
		t.Errorf("LastDifficulty: got %q, want easy", got.LastDifficulty)
	}
	if !got.SoundEnabled {
		t.Error("missing soundEnabled should keep default true")
	}
}

func TestLoadCorruptData(t *testing.T) {
	m := openTestGdata(t)
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := &SettingsManager{gdataManager: m, settings: DefaultSettings()}
	if err := sm.Load(); err == nil {
		t.Error("expected error for corrupt settings")
	}
	if sm.GetSettings().SoundVolume != 0.8 {
		t.Error("corrupt settings should fall back to defaults")
	}
}

// TestClampVolume 测试音量限制
func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
