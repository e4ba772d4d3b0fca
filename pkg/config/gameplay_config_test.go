package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/spacedefender/pkg/types"
)

// writeConfig 在临时目录写入配置文件并返回路径
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gameplay.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDefaultGameplayConfigIsValid(t *testing.T) {
	if err := ValidateGameplayConfig(DefaultGameplayConfig()); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
}

// TestShippedConfigMatchesDefaults 发布的 data/gameplay.yaml 必须与内置默认值一致
func TestShippedConfigMatchesDefaults(t *testing.T) {
	config, err := LoadGameplayConfig(filepath.Join("..", "..", "data", "gameplay.yaml"))
	if err != nil {
		t.Fatalf("LoadGameplayConfig failed: %v", err)
	}

	if !reflect.DeepEqual(config, DefaultGameplayConfig()) {
		t.Errorf("Shipped config differs from DefaultGameplayConfig:\n got %+v\nwant %+v", config, DefaultGameplayConfig())
	}
}

func TestLoadGameplayConfig(t *testing.T) {
	t.Run("部分覆盖保留默认值", func(t *testing.T) {
		path := writeConfig(t, `
field:
  width: 640
score:
  grazeBonus: 20
spawn:
  weights:
    small: 1.0
`)
		config, err := LoadGameplayConfig(path)
		if err != nil {
			t.Fatalf("LoadGameplayConfig failed: %v", err)
		}
		if config.Field.Width != 640 {
			t.Errorf("Expected field width 640, got %f", config.Field.Width)
		}
		if config.Field.Height != 600 {
			t.Errorf("Expected default field height 600, got %f", config.Field.Height)
		}
		if config.Score.GrazeBonus != 20 {
			t.Errorf("Expected graze bonus 20, got %d", config.Score.GrazeBonus)
		}
		if config.Score.InitialLives != 3 {
			t.Errorf("Expected default lives 3, got %d", config.Score.InitialLives)
		}
		if config.Spawn.Weights["small"] != 1.0 || config.Spawn.Weights["medium"] != 0.3 {
			t.Errorf("Expected weight map to be merged, got %v", config.Spawn.Weights)
		}
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadGameplayConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if err == nil {
			t.Fatal("Expected error for missing file")
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
		}
	})

	t.Run("YAML 语法错误", func(t *testing.T) {
		path := writeConfig(t, "field: [unclosed\n")
		if _, err := LoadGameplayConfig(path); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestValidateGameplayConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *GameplayConfig)
		wantErr string
	}{
		{
			name:    "场地尺寸为零",
			mutate:  func(c *GameplayConfig) { c.Field.Width = 0 },
			wantErr: "field",
		},
		{
			name:    "最大时间步长非正",
			mutate:  func(c *GameplayConfig) { c.Field.MaxDeltaTime = 0 },
			wantErr: "maxDeltaTime",
		},
		{
			name:    "玩家速度为负",
			mutate:  func(c *GameplayConfig) { c.Player.Speed = -1 },
			wantErr: "player",
		},
		{
			name:    "最大火力等级小于1",
			mutate:  func(c *GameplayConfig) { c.Player.MaxPowerLevel = 0 },
			wantErr: "maxPowerLevel",
		},
		{
			name:    "缺少敌人类型",
			mutate:  func(c *GameplayConfig) { delete(c.Enemies, "boss") },
			wantErr: "missing enemy type boss",
		},
		{
			name:    "缺少子弹样式",
			mutate:  func(c *GameplayConfig) { delete(c.BulletStyles, "large") },
			wantErr: "bulletStyles",
		},
		{
			name: "未知敌人类型",
			mutate: func(c *GameplayConfig) {
				c.Enemies["giant"] = c.Enemies["boss"]
			},
			wantErr: "unknown enemy type",
		},
		{
			name: "未知弹幕类型",
			mutate: func(c *GameplayConfig) {
				e := c.Enemies["small"]
				e.Pattern = "laser"
				c.Enemies["small"] = e
			},
			wantErr: "unknown bullet pattern",
		},
		{
			name: "敌人血量为零",
			mutate: func(c *GameplayConfig) {
				e := c.Enemies["medium"]
				e.Health = 0
				c.Enemies["medium"] = e
			},
			wantErr: "health",
		},
		{
			name: "颜色格式错误",
			mutate: func(c *GameplayConfig) {
				e := c.Enemies["large"]
				e.Color = "FF9900"
				c.Enemies["large"] = e
			},
			wantErr: "invalid color",
		},
		{
			name:    "掉落概率超出范围",
			mutate:  func(c *GameplayConfig) { c.PowerUp.DropChance = 1.5 },
			wantErr: "dropChance",
		},
		{
			name:    "权重总和为零",
			mutate:  func(c *GameplayConfig) { c.Spawn.Weights = map[string]float64{"small": 0} },
			wantErr: "sum",
		},
		{
			name: "Boss 不参与权重",
			mutate: func(c *GameplayConfig) {
				c.Spawn.Weights["boss"] = 0.1
			},
			wantErr: "boss",
		},
		{
			name:    "连击步长为零",
			mutate:  func(c *GameplayConfig) { c.Score.ComboStep = 0 },
			wantErr: "comboStep",
		},
		{
			name:    "特效半径区间非法",
			mutate:  func(c *GameplayConfig) { c.Effects.Graze.MaxRadius = 1 },
			wantErr: "graze",
		},
		{
			name:    "弹数为零",
			mutate:  func(c *GameplayConfig) { c.Patterns.SpiralCount = 0 },
			wantErr: "counts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultGameplayConfig()
			tt.mutate(config)

			err := ValidateGameplayConfig(config)
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0066", color.RGBA{R: 0xFF, G: 0x00, B: 0x66, A: 0xFF}, false},
		{"#00ffff", color.RGBA{R: 0x00, G: 0xFF, B: 0xFF, A: 0xFF}, false},
		{"#FFF", color.RGBA{}, true},
		{"00FF00", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHexColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnemyTable(t *testing.T) {
	table, err := NewEnemyTable(DefaultGameplayConfig())
	if err != nil {
		t.Fatalf("NewEnemyTable failed: %v", err)
	}

	tests := []struct {
		enemyType  types.EnemyType
		width      float64
		speed      float64
		health     int
		points     int
		interval   float64
		pattern    types.PatternType
		bulletSize float64
	}{
		{types.EnemySmall, 20, 120, 1, 100, 2.0, types.PatternSingle, 4},
		{types.EnemyMedium, 30, 90, 2, 300, 1.5, types.PatternStraight, 5},
		{types.EnemyLarge, 40, 60, 3, 500, 1.0, types.PatternCircle, 6},
		{types.EnemyBoss, 80, 30, 20, 1000, 0.8, types.PatternSpiral, 7},
	}

	for _, tt := range tests {
		t.Run(tt.enemyType.String(), func(t *testing.T) {
			stats, err := table.Stats(tt.enemyType)
			if err != nil {
				t.Fatalf("Stats failed: %v", err)
			}
			if stats.Type != tt.enemyType {
				t.Errorf("Expected type %s, got %s", tt.enemyType, stats.Type)
			}
			if stats.Width != tt.width || stats.Height != tt.width {
				t.Errorf("Expected size %.0fx%.0f, got %.0fx%.0f", tt.width, tt.width, stats.Width, stats.Height)
			}
			if stats.Speed != tt.speed {
				t.Errorf("Expected speed %f, got %f", tt.speed, stats.Speed)
			}
			if stats.Health != tt.health {
				t.Errorf("Expected health %d, got %d", tt.health, stats.Health)
			}
			if stats.Points != tt.points {
				t.Errorf("Expected points %d, got %d", tt.points, stats.Points)
			}
			if stats.ShootInterval != tt.interval {
				t.Errorf("Expected shoot interval %f, got %f", tt.interval, stats.ShootInterval)
			}
			if stats.Pattern != tt.pattern {
				t.Errorf("Expected pattern %s, got %s", tt.pattern, stats.Pattern)
			}
			if stats.BulletSize != tt.bulletSize {
				t.Errorf("Expected bullet size %f, got %f", tt.bulletSize, stats.BulletSize)
			}
			if stats.BulletColor != stats.Color {
				t.Errorf("Expected bullet color to match body color, got %v vs %v", stats.BulletColor, stats.Color)
			}
		})
	}

	t.Run("未知类型返回错误", func(t *testing.T) {
		_, err := table.Stats(types.EnemyUnknown)
		if !errors.Is(err, types.ErrUnknownEnemyType) {
			t.Errorf("Expected ErrUnknownEnemyType, got %v", err)
		}
	})

	t.Run("返回副本", func(t *testing.T) {
		stats, _ := table.Stats(types.EnemySmall)
		stats.Health = 99
		again, _ := table.Stats(types.EnemySmall)
		if again.Health != 1 {
			t.Errorf("Table should not be mutated through a returned copy, got health %d", again.Health)
		}
	})

	t.Run("配置缺失类型", func(t *testing.T) {
		config := DefaultGameplayConfig()
		delete(config.Enemies, "medium")
		if _, err := NewEnemyTable(config); err == nil {
			t.Error("Expected error for missing enemy type")
		}
	})
}
