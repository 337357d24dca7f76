package scenes

import (
	"testing"

	"github.com/gonewx/starfall/pkg/config"
	"github.com/gonewx/starfall/pkg/game"
	"github.com/gonewx/starfall/pkg/leaderboard"
)

func TestMenuScene_LoadsTop(t *testing.T) {
	deps, scores, _ := newTestDeps(t)
	scores.top = []leaderboard.ScoreTopItem{{ID: "1", Alias: "Neo", Points: 900}}

	s := NewMenuScene(deps)
	defer s.Dispose()

	waitUntil(t, func() bool {
		s.pollTop()
		return s.loadTask == nil
	})
	if len(s.top) != 1 || s.top[0].Alias != "Neo" {
		t.Errorf("top = %+v", s.top)
	}
	if calls := scores.limitCalls(); len(calls) != 1 || calls[0] != 10 {
		t.Errorf("GetTop calls = %v, want [10]", calls)
	}
	lines := s.topLines()
	if len(lines) != 1 || lines[0] != "  1. Neo                  900     0s" {
		t.Errorf("lines = %q", lines)
	}
}

func TestMenuScene_AdjustLimit(t *testing.T) {
	deps, scores, _ := newTestDeps(t)
	s := NewMenuScene(deps)
	defer s.Dispose()

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"增加", 1, 11},
		{"超过上限", 500, 100},
		{"上限不变", 1, 100},
		{"低于下限", -500, 1},
		{"下限不变", -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.AdjustLimit(tt.delta)
			if s.Limit() != tt.want {
				t.Errorf("Limit() = %d, want %d", s.Limit(), tt.want)
			}
		})
	}

	// 只有条数变化时才重新加载：初始 10, 11, 100, 1
	waitUntil(t, func() bool { return len(scores.limitCalls()) >= 4 })
	seen := map[int]bool{}
	for _, c := range scores.limitCalls() {
		seen[c] = true
	}
	if len(scores.limitCalls()) != 4 || !seen[10] || !seen[11] || !seen[100] || !seen[1] {
		t.Errorf("GetTop calls = %v", scores.limitCalls())
	}
}

func TestMenuScene_Difficulty(t *testing.T) {
	deps, _, nav := newTestDeps(t)
	deps.Settings.SetLastDifficulty(config.DifficultyNormal)
	s := NewMenuScene(deps)
	defer s.Dispose()

	if s.Difficulty() != config.DifficultyNormal {
		t.Fatalf("initial difficulty = %s, want remembered normal", s.Difficulty())
	}
	s.cycleDifficulty(1)
	if s.Difficulty() != config.DifficultyHard {
		t.Errorf("after right = %s", s.Difficulty())
	}
	s.cycleDifficulty(1)
	if s.Difficulty() != config.DifficultyEasy {
		t.Errorf("should wrap to easy, got %s", s.Difficulty())
	}
	s.cycleDifficulty(-1)
	if s.Difficulty() != config.DifficultyHard {
		t.Errorf("should wrap back to hard, got %s", s.Difficulty())
	}

	s.Play()
	if nav.last() != "play/hard" {
		t.Errorf("navigated to %q, want play/hard", nav.last())
	}
}

func TestMenuScene_SoundSettings(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	s := NewMenuScene(deps)
	defer s.Dispose()

	s.toggleSound()
	if deps.Settings.GetSettings().SoundEnabled {
		t.Error("sound should be disabled")
	}
	s.changeVolume(-volumeStep)
	if got := deps.Settings.GetSettings().SoundVolume; got < 0.69 || got > 0.71 {
		t.Errorf("volume = %v, want 0.7", got)
	}
}

func TestSceneFactory(t *testing.T) {
	deps, _, _ := newTestDeps(t)
	deps.Settings.SetLastDifficulty(config.DifficultyNormal)
	factory := NewSceneFactory(deps)

	tests := []struct {
		name, param string
		check       func(t *testing.T, s game.Scene)
	}{
		{"menu", "", func(t *testing.T, s game.Scene) {
			if _, ok := s.(*MenuScene); !ok {
				t.Errorf("got %T", s)
			}
		}},
		{"play", "hard", func(t *testing.T, s game.Scene) {
			p, ok := s.(*PlayScene)
			if !ok || p.difficulty != config.DifficultyHard {
				t.Errorf("got %T", s)
			}
		}},
		{"play", "", func(t *testing.T, s game.Scene) {
			p, ok := s.(*PlayScene)
			if !ok || p.difficulty != config.DifficultyNormal {
				t.Errorf("play without param should use remembered difficulty, got %T", s)
			}
		}},
		{"play", "nightmare", func(t *testing.T, s game.Scene) {
			p, ok := s.(*PlayScene)
			if !ok || p.difficulty != config.DifficultyEasy {
				t.Errorf("unknown difficulty should be easy, got %T", s)
			}
		}},
		{"ranking", "", func(t *testing.T, s game.Scene) {
			if _, ok := s.(*RankingScene); !ok {
				t.Errorf("got %T", s)
			}
		}},
		{"alias", "Neo", func(t *testing.T, s game.Scene) {
			a, ok := s.(*AliasScene)
			if !ok || a.Alias() != "Neo" {
				t.Errorf("got %T", s)
			}
		}},
		{"alias", "  ", func(t *testing.T, s game.Scene) {
			if _, ok := s.(*RankingScene); !ok {
				t.Errorf("empty alias should open ranking, got %T", s)
			}
		}},
		{"nowhere", "", func(t *testing.T, s game.Scene) {
			if s != nil {
				t.Errorf("unknown route should return nil, got %T", s)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.param, func(t *testing.T) {
			s := factory(tt.name, tt.param)
			if d, ok := s.(game.Disposable); ok {
				defer d.Dispose()
			}
			tt.check(t, s)
		})
	}
}
