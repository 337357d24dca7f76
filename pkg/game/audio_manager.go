package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理游戏中所有音效的播放
//   - 实现音量控制（从 SettingsManager 读取设置）
//   - 浏览器自动播放策略：首次用户输入之前不发声
//
// 每次播放都从缓存的 PCM 数据创建一个独立的播放器，
// 同一音效可以重叠播放，播放器播完后由音频上下文回收。
// 播放失败从不向调用方返回错误。
type AudioManager struct {
	audioContext    *audio.Context
	resourceManager *ResourceManager
	settingsManager *SettingsManager   // 可为 nil
	cueVolumes      map[string]float64 // 音效ID -> 音效自身音量
	unlocked        bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（无声运行）
//   - rm: ResourceManager 实例（提供解码后的音效数据）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, rm *ResourceManager, sm *SettingsManager) *AudioManager {
	volumes := make(map[string]float64)
	if rm != nil {
		for id, sc := range rm.assets.Sounds {
			volumes[id] = sc.Volume
		}
	}
	return &AudioManager{
		audioContext:    ctx,
		resourceManager: rm,
		settingsManager: sm,
		cueVolumes:      volumes,
	}
}

// Unlock 允许播放声音
// 在第一次用户输入（按键、点击、触摸）时调用
func (am *AudioManager) Unlock() {
	if !am.unlocked {
		am.unlocked = true
		log.Printf("[AudioManager] Audio unlocked by user input")
	}
}

// IsUnlocked 返回是否已允许播放
func (am *AudioManager) IsUnlocked() bool {
	return am.unlocked
}

// PlaySound 播放音效（即发即弃）
//
// 参数：
//   - soundID: 音效ID（如 config.SoundExplosion）
//
// 返回：
//   - bool: 是否开始播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.audioContext == nil || am.resourceManager == nil || !am.unlocked {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	data := am.resourceManager.SoundData(soundID)
	if data == nil {
		return false
	}

	player := am.audioContext.NewPlayerFromBytes(data)
	player.SetVolume(am.volumeFor(soundID))
	player.Play()
	return true
}

// volumeFor 计算实际播放音量 = 音效自身音量 * 设置中的音效音量
func (am *AudioManager) volumeFor(soundID string) float64 {
	volume := 1.0
	if v, ok := am.cueVolumes[soundID]; ok && v > 0 {
		volume = v
	}
	if am.settingsManager != nil {
		volume *= am.settingsManager.GetSettings().SoundVolume
	}
	return clampVolume(volume)
}

// SetSoundVolume 设置音效音量，影响后续播放的所有音效
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}
