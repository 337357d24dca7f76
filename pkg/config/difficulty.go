package config

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty 难度等级
// 在一局开始时确定，整局不变
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties 按从易到难排列的所有难度（菜单展示顺序）
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficulty 解析难度字符串（不区分大小写）
// 无法识别的值回退为 easy
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyNormal:
		return DifficultyNormal
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// String 实现 fmt.Stringer
func (d Difficulty) String() string {
	return string(d)
}

// DifficultyTable 难度 -> 敌人生成间隔
type DifficultyTable struct {
	Easy   time.Duration `yaml:"easy"`
	Normal time.Duration `yaml:"normal"`
	Hard   time.Duration `yaml:"hard"`
}

// SpawnInterval 返回指定难度的敌人生成间隔
func (t DifficultyTable) SpawnInterval(d Difficulty) time.Duration {
	switch d {
	case DifficultyNormal:
		return t.Normal
	case DifficultyHard:
		return t.Hard
	default:
		return t.Easy
	}
}

func (t DifficultyTable) validate() error {
	for _, d := range Difficulties {
		if t.SpawnInterval(d) <= 0 {
			return fmt.Errorf("difficulty %s: spawn interval must be positive, got %v", d, t.SpawnInterval(d))
		}
	}
	return nil
}
