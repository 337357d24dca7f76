package game

import (
	"testing"

	"github.com/gonewx/starfall/pkg/config"
)

func newTestAudioManager(t *testing.T, sm *SettingsManager) *AudioManager {
	t.Helper()
	rm := NewResourceManager(testAudioContext, config.DefaultGameConfig().Assets)
	rm.sounds[config.SoundHit] = make([]byte, 400)
	return NewAudioManager(testAudioContext, rm, sm)
}

// TestPlaySoundRequiresUnlock 首次用户输入前不播放
func TestPlaySoundRequiresUnlock(t *testing.T) {
	am := newTestAudioManager(t, nil)
	if am.PlaySound(config.SoundHit) {
		t.Error("PlaySound should be blocked before Unlock")
	}

	am.Unlock()
	if !am.IsUnlocked() {
		t.Fatal("IsUnlocked() = false after Unlock")
	}
	if !am.PlaySound(config.SoundHit) {
		t.Error("PlaySound should succeed after Unlock")
	}
	// 同一音效可以重叠播放
	if !am.PlaySound(config.SoundHit) {
		t.Error("overlapping playback should succeed")
	}
}

func TestPlaySoundUnknownOrDisabled(t *testing.T) {
	sm := NewSettingsManager(nil)
	am := newTestAudioManager(t, sm)
	am.Unlock()

	if am.PlaySound("missing") {
		t.Error("unknown sound should not play")
	}

	sm.SetSoundEnabled(false)
	if am.PlaySound(config.SoundHit) {
		t.Error("disabled sound should not play")
	}
}

func TestPlaySoundWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, nil, nil)
	am.Unlock()
	if am.PlaySound(config.SoundHit) {
		t.Error("PlaySound without audio context should be a no-op")
	}
}

// TestVolumeFor 音量 = 音效音量 * 设置音量
func TestVolumeFor(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetSoundVolume(0.5)
	am := newTestAudioManager(t, sm)

	if got := am.volumeFor(config.SoundHit); got != 0.35 {
		t.Errorf("hit volume = %v, want 0.35", got)
	}
	if got := am.volumeFor("unconfigured"); got != 0.5 {
		t.Errorf("unconfigured volume = %v, want 0.5", got)
	}

	am.SetSoundVolume(2)
	if am.GetSoundVolume() != 1 {
		t.Errorf("GetSoundVolume() = %v, want clamped 1", am.GetSoundVolume())
	}
}
