package game

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

// pngBytes 生成指定尺寸的纯色 PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// wavBytes 生成 16 位立体声 PCM 的 WAV 文件
func wavBytes(sampleRate, frames int) []byte {
	dataSize := frames * 4
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // stereo
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	binary.Write(&buf, binary.LittleEndian, uint16(4))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

// testAssetsFS 构造包含全部精灵图的文件系统
func testAssetsFS(t *testing.T) fstest.MapFS {
	t.Helper()
	assets := config.DefaultGameConfig().Assets
	fsys := fstest.MapFS{
		assets.Background: {Data: pngBytes(t, 48, 72)},
		assets.Ship:       {Data: pngBytes(t, 10, 10)},
		assets.Enemy:      {Data: pngBytes(t, 12, 12)},
		assets.Bullet:     {Data: pngBytes(t, 16, 32)},
	}
	for _, p := range assets.Explosions {
		fsys[p] = &fstest.MapFile{Data: pngBytes(t, 8, 8)}
	}
	return fsys
}

func TestDecodeSprites(t *testing.T) {
	assets := config.DefaultGameConfig().Assets

	d, err := decodeSprites(context.Background(), testAssetsFS(t), assets)
	if err != nil {
		t.Fatalf("decodeSprites() error: %v", err)
	}
	if got := d.bullet.Bounds().Dx(); got != 16 {
		t.Errorf("bullet width = %d, want 16", got)
	}
	if len(d.explosions) != 4 {
		t.Errorf("explosion frames = %d, want 4", len(d.explosions))
	}
}

// TestDecodeSpritesAllOrNothing 任意一张缺失则整体失败
func TestDecodeSpritesAllOrNothing(t *testing.T) {
	assets := config.DefaultGameConfig().Assets
	fsys := testAssetsFS(t)
	delete(fsys, assets.Explosions[2])

	if _, err := decodeSprites(context.Background(), fsys, assets); err == nil {
		t.Error("expected error when one explosion frame is missing")
	}

	fsys = testAssetsFS(t)
	fsys[assets.Ship] = &fstest.MapFile{Data: []byte("not a png")}
	if _, err := decodeSprites(context.Background(), fsys, assets); err == nil {
		t.Error("expected error for corrupt image")
	}
}

func TestDecodeSpritesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := decodeSprites(ctx, testAssetsFS(t), config.DefaultGameConfig().Assets)
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// waitForSprites 轮询直到加载结束或超时
func waitForSprites(rm *ResourceManager) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if rm.Poll() {
			return true
		}
		if rm.pending == nil {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// TestPreloadSprites 后台加载完成后通过 Poll 安装
func TestPreloadSprites(t *testing.T) {
	rm := NewResourceManager(testAudioContext, config.DefaultGameConfig().Assets)
	if rm.Sprites() != nil {
		t.Fatal("sprites should be nil before preload")
	}

	rm.PreloadSprites(context.Background(), testAssetsFS(t))
	if !waitForSprites(rm) {
		t.Fatal("sprites were not loaded")
	}

	s := rm.Sprites()
	if s == nil || len(s.Explosions) != 4 {
		t.Fatalf("unexpected sprites: %+v", s)
	}

	// 已加载时再次调用不会重新加载
	rm.PreloadSprites(context.Background(), testAssetsFS(t))
	if rm.pending != nil {
		t.Error("preload after completion should be a no-op")
	}
}

func TestPreloadSpritesFailureKeepsFallback(t *testing.T) {
	rm := NewResourceManager(testAudioContext, config.DefaultGameConfig().Assets)
	rm.PreloadSprites(context.Background(), fstest.MapFS{})
	if waitForSprites(rm) {
		t.Fatal("preload from empty fs should fail")
	}
	if rm.Sprites() != nil {
		t.Error("sprites should stay nil after failure")
	}

	rm.PreloadSprites(context.Background(), nil)
	if rm.pending != nil || rm.Poll() {
		t.Error("nil fs should not start a preload")
	}
}

// TestPreloadRestartsAfterCancel 取消的加载不会阻止下一次加载
func TestPreloadRestartsAfterCancel(t *testing.T) {
	rm := NewResourceManager(testAudioContext, config.DefaultGameConfig().Assets)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rm.PreloadSprites(ctx, testAssetsFS(t))

	rm.PreloadSprites(context.Background(), testAssetsFS(t))
	if !waitForSprites(rm) {
		t.Fatal("second preload should succeed")
	}
}

func TestBulletSize(t *testing.T) {
	cfg := config.DefaultGameConfig().Bullet

	var none *Sprites
	if w, h := none.BulletSize(cfg); w != 6 || h != 12 {
		t.Errorf("fallback bullet size = %vx%v, want 6x12", w, h)
	}

	s := &Sprites{Bullet: ebiten.NewImage(16, 32)}
	if w, h := s.BulletSize(cfg); w != 8 || h != 16 {
		t.Errorf("sprite bullet size = %vx%v, want 8x16", w, h)
	}
}

// TestLoadSound 解码 WAV 为 PCM 数据
func TestLoadSound(t *testing.T) {
	rm := NewResourceManager(testAudioContext, config.DefaultGameConfig().Assets)
	fsys := fstest.MapFS{
		"sounds/crash.wav": {Data: wavBytes(48000, 480)},
		"sounds/bad.wav":   {Data: []byte("garbage")},
		"sounds/clip.flac": {Data: []byte("flac")},
	}

	if err := rm.LoadSound(fsys, config.SoundHit, "sounds/crash.wav"); err != nil {
		t.Fatalf("LoadSound() error: %v", err)
	}
	if got := len(rm.SoundData(config.SoundHit)); got != 480*4 {
		t.Errorf("PCM length = %d, want %d", got, 480*4)
	}

	for _, p := range []string{"sounds/bad.wav", "sounds/clip.flac", "sounds/missing.wav"} {
		if err := rm.LoadSound(fsys, "x", p); err == nil {
			t.Errorf("LoadSound(%s) expected error", p)
		}
	}
	if rm.SoundData("x") != nil {
		t.Error("failed loads should not cache data")
	}
}

func TestLoadSoundsSkipsFailures(t *testing.T) {
	rm := NewResourceManager(testAudioContext, config.DefaultGameConfig().Assets)
	fsys := fstest.MapFS{
		"sounds/sound-explosion.wav": {Data: wavBytes(48000, 100)},
	}
	if n := rm.LoadSounds(fsys); n != 1 {
		t.Errorf("LoadSounds() = %d, want 1", n)
	}
	if rm.SoundData(config.SoundExplosion) == nil {
		t.Error("explosion sound should be loaded")
	}
}

func TestLoadSoundWithoutAudioContext(t *testing.T) {
	rm := NewResourceManager(nil, config.DefaultGameConfig().Assets)
	fsys := fstest.MapFS{"a.wav": {Data: wavBytes(48000, 10)}}
	if err := rm.LoadSound(fsys, "a", "a.wav"); err == nil {
		t.Error("expected error without audio context")
	}
}
