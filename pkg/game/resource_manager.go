package game

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Sprites 一整套已加载的精灵图
// 要么全部可用，要么为 nil（渲染使用纯色降级方案）
type Sprites struct {
	Background *ebiten.Image
	Ship       *ebiten.Image
	Enemy      *ebiten.Image
	Bullet     *ebiten.Image
	Explosions []*ebiten.Image
}

// BulletSize 返回子弹的逻辑尺寸
// 有子弹精灵图时为精灵图尺寸 * SpriteScale，否则使用配置的默认尺寸
// 接收者可以为 nil
func (s *Sprites) BulletSize(cfg config.BulletConfig) (w, h float64) {
	if s == nil || s.Bullet == nil {
		return cfg.Width, cfg.Height
	}
	b := s.Bullet.Bounds()
	return float64(b.Dx()) * cfg.SpriteScale, float64(b.Dy()) * cfg.SpriteScale
}

// decodedSprites 在后台 goroutine 中解码得到的图像
// 转换成 ebiten.Image 的步骤留在主 goroutine 中完成
type decodedSprites struct {
	background image.Image
	ship       image.Image
	enemy      image.Image
	bullet     image.Image
	explosions []image.Image
}

type spriteLoadResult struct {
	sprites *decodedSprites
	err     error
}

// ResourceManager is responsible for centralized management of game resources.
//
// Sprites are decoded on a background goroutine (PreloadSprites) and installed
// on the main goroutine by Poll, so the frame loop never blocks on disk or
// network I/O. Sounds are decoded once into PCM bytes at the audio context's
// sample rate; every playback creates its own player from those bytes.
//
// Thread Safety Note:
// Apart from the preload goroutine, which only talks through a channel,
// ResourceManager must be used from the game loop goroutine.
type ResourceManager struct {
	audioContext *audio.Context
	assets       config.AssetsConfig

	sprites    *Sprites
	pending    chan spriteLoadResult
	pendingCtx context.Context

	sounds map[string][]byte // 音效ID -> PCM 数据
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context used for decoding sounds. May be nil (headless runs).
//   - assets: Asset paths relative to the assets root.
func NewResourceManager(audioContext *audio.Context, assets config.AssetsConfig) *ResourceManager {
	return &ResourceManager{
		audioContext: audioContext,
		assets:       assets,
		sounds:       make(map[string][]byte),
	}
}

// PreloadSprites 在后台 goroutine 中加载全部精灵图
//
// 已经加载完成或有未取消的加载在进行时不做任何事。
// ctx 被取消后加载中止，下一次调用会重新开始。
//
// 参数:
//   - ctx: 控制加载生命周期
//   - fsys: 以资源目录为根的文件系统，为 nil 时直接跳过（始终使用降级渲染）
func (rm *ResourceManager) PreloadSprites(ctx context.Context, fsys fs.FS) {
	if rm.sprites != nil {
		return
	}
	if rm.pending != nil && rm.pendingCtx.Err() == nil {
		return
	}
	if fsys == nil {
		log.Printf("[ResourceManager] No assets file system, using fallback rendering")
		return
	}

	ch := make(chan spriteLoadResult, 1)
	rm.pending = ch
	rm.pendingCtx = ctx

	assets := rm.assets
	go func() {
		decoded, err := decodeSprites(ctx, fsys, assets)
		ch <- spriteLoadResult{sprites: decoded, err: err}
	}()
}

// Poll 检查后台加载是否完成，完成时安装精灵图
// 必须在游戏循环 goroutine 中调用，不会阻塞
//
// 返回:
//   - bool: 精灵图是否可用
func (rm *ResourceManager) Poll() bool {
	if rm.pending == nil {
		return rm.sprites != nil
	}

	select {
	case res := <-rm.pending:
		rm.pending = nil
		rm.pendingCtx = nil
		if res.err != nil {
			log.Printf("[ResourceManager] Warning: sprite preload failed: %v (using fallback rendering)", res.err)
			return false
		}
		rm.sprites = res.sprites.toEbiten()
		log.Printf("[ResourceManager] Sprites loaded (%d explosion frames)", len(rm.sprites.Explosions))
	default:
	}
	return rm.sprites != nil
}

// Sprites 返回已加载的精灵图，未加载完成时返回 nil
func (rm *ResourceManager) Sprites() *Sprites {
	return rm.sprites
}

// decodeSprites 读取并解码全部精灵图
// 任意一张失败则整体失败
func decodeSprites(ctx context.Context, fsys fs.FS, assets config.AssetsConfig) (*decodedSprites, error) {
	load := func(p string) (image.Image, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return decodeImage(fsys, p)
	}

	var (
		d   decodedSprites
		err error
	)
	if d.background, err = load(assets.Background); err != nil {
		return nil, err
	}
	if d.ship, err = load(assets.Ship); err != nil {
		return nil, err
	}
	if d.enemy, err = load(assets.Enemy); err != nil {
		return nil, err
	}
	if d.bullet, err = load(assets.Bullet); err != nil {
		return nil, err
	}
	for _, p := range assets.Explosions {
		img, err := load(p)
		if err != nil {
			return nil, err
		}
		d.explosions = append(d.explosions, img)
	}
	return &d, nil
}

func decodeImage(fsys fs.FS, p string) (image.Image, error) {
	f, err := fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}
	return img, nil
}

func (d *decodedSprites) toEbiten() *Sprites {
	s := &Sprites{
		Background: ebiten.NewImageFromImage(d.background),
		Ship:       ebiten.NewImageFromImage(d.ship),
		Enemy:      ebiten.NewImageFromImage(d.enemy),
		Bullet:     ebiten.NewImageFromImage(d.bullet),
	}
	for _, img := range d.explosions {
		s.Explosions = append(s.Explosions, ebiten.NewImageFromImage(img))
	}
	return s
}

// LoadSounds 加载配置中的全部音效
// 单个音效失败只记录日志，不影响其他音效
//
// 返回:
//   - int: 成功加载的数量
func (rm *ResourceManager) LoadSounds(fsys fs.FS) int {
	if fsys == nil {
		return 0
	}
	loaded := 0
	for id, sc := range rm.assets.Sounds {
		if err := rm.LoadSound(fsys, id, sc.Path); err != nil {
			log.Printf("[ResourceManager] Warning: %v", err)
			continue
		}
		loaded++
	}
	return loaded
}

// LoadSound 读取音效文件并解码为 PCM 数据缓存
// 支持格式: WAV (.wav), MP3 (.mp3), OGG Vorbis (.ogg)
//
// 参数:
//   - fsys: 以资源目录为根的文件系统
//   - id: 音效ID（如 config.SoundExplosion）
//   - p: 相对资源目录的路径
func (rm *ResourceManager) LoadSound(fsys fs.FS, id, p string) error {
	if rm.audioContext == nil {
		return fmt.Errorf("failed to load sound %s: audio context not available", id)
	}

	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return fmt.Errorf("failed to read sound file %s: %w", p, err)
	}

	sampleRate := rm.audioContext.SampleRate()
	reader := bytes.NewReader(raw)

	var stream io.Reader
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return fmt.Errorf("failed to decode WAV sound %s: %w", p, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return fmt.Errorf("failed to decode MP3 sound %s: %w", p, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return fmt.Errorf("failed to decode OGG sound %s: %w", p, err)
		}
		stream = s
	default:
		return fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return fmt.Errorf("failed to decode sound %s: %w", p, err)
	}

	rm.sounds[id] = pcm
	return nil
}

// SoundData 返回已解码的 PCM 数据，未加载时返回 nil
func (rm *ResourceManager) SoundData(id string) []byte {
	return rm.sounds[id]
}
