package config

import (
	"fmt"
	"time"

	"github.com/gonewx/starfall/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// GameConfigPath 默认的玩法配置文件路径
const GameConfigPath = "data/game.yaml"

// GameConfig 玩法参数配置
//
// 速度和旋转速度以"参考帧"（1/60 秒）为单位，
// 积分时乘以 dt * ReferenceTickRate，因此 dt=0 时实体不会移动。
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	// ReferenceTickRate 参考帧率（每秒帧数），用于把"每帧速度"换算成"每秒速度"
	ReferenceTickRate float64 `yaml:"referenceTickRate"`

	Player    PlayerConfig    `yaml:"player"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Enemy     EnemyConfig     `yaml:"enemy"`
	Explosion ExplosionConfig `yaml:"explosion"`

	// AutoFireInterval 按住指针时的自动射击间隔
	AutoFireInterval time.Duration `yaml:"autoFireInterval"`

	Life    LifeConfig    `yaml:"life"`
	Scoring ScoringConfig `yaml:"scoring"`

	// Difficulty 难度 -> 敌人生成间隔
	Difficulty DifficultyTable `yaml:"difficulty"`

	Assets AssetsConfig `yaml:"assets"`
}

// PlayerConfig 玩家飞船参数
type PlayerConfig struct {
	X      float64 `yaml:"x"`      // 初始X坐标
	Y      float64 `yaml:"y"`      // 固定Y坐标
	Width  float64 `yaml:"width"`  // 碰撞盒宽度
	Height float64 `yaml:"height"` // 碰撞盒高度
	Speed  float64 `yaml:"speed"`  // 键盘移动速度（单位/秒）
}

// BulletConfig 子弹参数
type BulletConfig struct {
	Width       float64 `yaml:"width"`       // 无精灵图时的宽度
	Height      float64 `yaml:"height"`      // 无精灵图时的高度
	SpriteScale float64 `yaml:"spriteScale"` // 有精灵图时，尺寸 = 精灵图尺寸 * SpriteScale
	Velocity    float64 `yaml:"velocity"`    // 垂直速度（每参考帧，负值向上）
	DespawnY    float64 `yaml:"despawnY"`    // y 小于此值时移除
}

// EnemyConfig 敌人（陨石）参数
type EnemyConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	SpawnY   float64 `yaml:"spawnY"`   // 生成时的Y坐标（画布上方）
	MinSpeed float64 `yaml:"minSpeed"` // 下落速度下限（每参考帧）
	MaxSpeed float64 `yaml:"maxSpeed"` // 下落速度上限（每参考帧）
	MaxSpin  float64 `yaml:"maxSpin"`  // 旋转速度绝对值上限（弧度/参考帧）
	DespawnY float64 `yaml:"despawnY"` // y 大于此值时视为漏掉（miss）
}

// ExplosionConfig 爆炸动画参数
type ExplosionConfig struct {
	Frames int     `yaml:"frames"` // 动画帧数
	FPS    float64 `yaml:"fps"`    // 动画帧率
}

// FrameDuration 返回每帧持续时间（秒）
func (c ExplosionConfig) FrameDuration() float64 {
	return 1 / c.FPS
}

// LifeConfig 生命值参数
type LifeConfig struct {
	Initial     int `yaml:"initial"`
	Max         int `yaml:"max"`
	MissPenalty int `yaml:"missPenalty"` // 敌人漏掉时扣除
	HitPenalty  int `yaml:"hitPenalty"`  // 敌人撞到玩家时扣除
}

// ScoringConfig 计分参数
type ScoringConfig struct {
	// KillBase 击杀基础分，实际得分 = KillBase * 当前连击数
	KillBase int `yaml:"killBase"`
}

// AssetsConfig 资源路径配置（相对于 assets 目录）
type AssetsConfig struct {
	Background string                 `yaml:"background"`
	Ship       string                 `yaml:"ship"`
	Enemy      string                 `yaml:"enemy"`
	Bullet     string                 `yaml:"bullet"`
	Explosions []string               `yaml:"explosions"`
	Sounds     map[string]SoundConfig `yaml:"sounds"`
}

// SoundConfig 单个音效配置
type SoundConfig struct {
	Path   string  `yaml:"path"`
	Volume float64 `yaml:"volume"`
}

// 音效ID
const (
	SoundExplosion = "explosion"
	SoundHit       = "hit"
)

// DefaultGameConfig 返回与 data/game.yaml 一致的默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		ReferenceTickRate: 60,
		Player: PlayerConfig{
			X: 220, Y: 630, Width: 100, Height: 100, Speed: 240,
		},
		Bullet: BulletConfig{
			Width: 6, Height: 12, SpriteScale: 0.5, Velocity: -10, DespawnY: -20,
		},
		Enemy: EnemyConfig{
			Width: 36, Height: 36, SpawnY: -36,
			MinSpeed: 2, MaxSpeed: 3.5, MaxSpin: 0.05, DespawnY: 760,
		},
		Explosion:        ExplosionConfig{Frames: 4, FPS: 16},
		AutoFireInterval: 200 * time.Millisecond,
		Life:             LifeConfig{Initial: 100, Max: 100, MissPenalty: 10, HitPenalty: 25},
		Scoring:          ScoringConfig{KillBase: 100},
		Difficulty: DifficultyTable{
			Easy:   900 * time.Millisecond,
			Normal: 650 * time.Millisecond,
			Hard:   450 * time.Millisecond,
		},
		Assets: AssetsConfig{
			Background: "sprites/bg.png",
			Ship:       "sprites/ship.png",
			Enemy:      "sprites/asteroid.png",
			Bullet:     "sprites/shoot.png",
			Explosions: []string{
				"sprites/explosions/explosion1.png",
				"sprites/explosions/explosion2.png",
				"sprites/explosions/explosion3.png",
				"sprites/explosions/explosion4.png",
			},
			Sounds: map[string]SoundConfig{
				SoundExplosion: {Path: "sounds/sound-explosion.wav", Volume: 0.6},
				SoundHit:       {Path: "sounds/crash.wav", Volume: 0.7},
			},
		},
	}
}

// LoadGameConfig 从资源文件系统加载玩法配置
//
// 参数:
//
//	path - 配置路径（如 "data/game.yaml"）
//
// 返回:
//
//	*GameConfig - 解析并验证后的配置
//	error - 读取、解析或验证失败
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析 YAML 格式的玩法配置
// 未出现在 YAML 中的字段保留默认值
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	if err := validateGameConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// validateGameConfig 验证配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if cfg.ReferenceTickRate <= 0 {
		return fmt.Errorf("referenceTickRate must be positive, got %v", cfg.ReferenceTickRate)
	}

	p := cfg.Player
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("player size must be positive, got %vx%v", p.Width, p.Height)
	}
	if p.Width > CanvasWidth {
		return fmt.Errorf("player width %v exceeds canvas width %d", p.Width, CanvasWidth)
	}
	if p.Speed < 0 {
		return fmt.Errorf("player speed must be >= 0, got %v", p.Speed)
	}

	if cfg.Bullet.Width <= 0 || cfg.Bullet.Height <= 0 {
		return fmt.Errorf("bullet size must be positive, got %vx%v", cfg.Bullet.Width, cfg.Bullet.Height)
	}
	if cfg.Bullet.SpriteScale <= 0 {
		return fmt.Errorf("bullet spriteScale must be positive, got %v", cfg.Bullet.SpriteScale)
	}
	if cfg.Bullet.Velocity >= 0 {
		return fmt.Errorf("bullet velocity must be negative (upwards), got %v", cfg.Bullet.Velocity)
	}

	e := cfg.Enemy
	if e.Width <= 0 || e.Height <= 0 || e.Width > CanvasWidth {
		return fmt.Errorf("invalid enemy size %vx%v", e.Width, e.Height)
	}
	if e.MinSpeed <= 0 || e.MaxSpeed < e.MinSpeed {
		return fmt.Errorf("enemy speed range invalid: [%v, %v]", e.MinSpeed, e.MaxSpeed)
	}
	if e.MaxSpin < 0 {
		return fmt.Errorf("enemy maxSpin must be >= 0, got %v", e.MaxSpin)
	}

	if cfg.Explosion.Frames < 1 {
		return fmt.Errorf("explosion frames must be at least 1, got %d", cfg.Explosion.Frames)
	}
	if cfg.Explosion.FPS <= 0 {
		return fmt.Errorf("explosion fps must be positive, got %v", cfg.Explosion.FPS)
	}
	if len(cfg.Assets.Explosions) != 0 && len(cfg.Assets.Explosions) != cfg.Explosion.Frames {
		return fmt.Errorf("explosion sprites (%d) must match explosion frames (%d)",
			len(cfg.Assets.Explosions), cfg.Explosion.Frames)
	}

	if cfg.AutoFireInterval <= 0 {
		return fmt.Errorf("autoFireInterval must be positive, got %v", cfg.AutoFireInterval)
	}

	l := cfg.Life
	if l.Max <= 0 || l.Initial <= 0 || l.Initial > l.Max {
		return fmt.Errorf("life initial must be in (0, max], got initial=%d max=%d", l.Initial, l.Max)
	}
	if l.MissPenalty < 0 || l.HitPenalty < 0 {
		return fmt.Errorf("life penalties must be >= 0, got miss=%d hit=%d", l.MissPenalty, l.HitPenalty)
	}

	if cfg.Scoring.KillBase < 0 {
		return fmt.Errorf("scoring killBase must be >= 0, got %d", cfg.Scoring.KillBase)
	}

	return cfg.Difficulty.validate()
}
