package config

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/decker502/spacedefender/pkg/embedded"
	"github.com/decker502/spacedefender/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultGameplayConfigPath 内置玩法配置文件路径（嵌入二进制）
const DefaultGameplayConfigPath = "data/gameplay.yaml"

// GameplayConfig 玩法调参配置文件结构
// 所有时间单位为秒，速度单位为像素/秒
type GameplayConfig struct {
	Field        FieldConfig                  `yaml:"field"`
	Player       PlayerConfig                 `yaml:"player"`
	PlayerBullet PlayerBulletConfig           `yaml:"playerBullet"`
	Enemies      map[string]EnemyConfig       `yaml:"enemies"`      // 敌人类型名 -> 属性
	BulletStyles map[string]BulletStyleConfig `yaml:"bulletStyles"` // 敌人类型名 -> 子弹样式
	Patterns     PatternConfig                `yaml:"patterns"`
	Spawn        SpawnConfig                  `yaml:"spawn"`
	Score        ScoreConfig                  `yaml:"score"`
	Effects      EffectsConfig                `yaml:"effects"`
	PowerUp      PowerUpConfig                `yaml:"powerUp"`
	Background   BackgroundConfig             `yaml:"background"`
}

// FieldConfig 游戏场地配置
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxDeltaTime float64 `yaml:"maxDeltaTime"` // 单帧最大时间步长，防止卡顿后穿透
}

// PlayerConfig 玩家飞船配置
type PlayerConfig struct {
	Width              float64 `yaml:"width"`
	Height             float64 `yaml:"height"`
	BottomMargin       float64 `yaml:"bottomMargin"` // 出生点距底边的距离
	Speed              float64 `yaml:"speed"`
	Color              string  `yaml:"color"`
	ShootInterval      float64 `yaml:"shootInterval"`
	InvincibleDuration float64 `yaml:"invincibleDuration"`
	BlinkInterval      float64 `yaml:"blinkInterval"`
	PowerDuration      float64 `yaml:"powerDuration"`
	MaxPowerLevel      int     `yaml:"maxPowerLevel"`
	GrazeMargin        float64 `yaml:"grazeMargin"` // 擦弹判定框相对碰撞框的外扩距离
}

// PlayerBulletConfig 玩家子弹配置
type PlayerBulletConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`
	Color       string  `yaml:"color"`
	SpreadAngle float64 `yaml:"spreadAngle"` // 三连射时两侧子弹的横向偏移系数
}

// EnemyConfig 单个敌人类型的属性配置
type EnemyConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Speed         float64 `yaml:"speed"`
	Health        int     `yaml:"health"`
	Color         string  `yaml:"color"`
	Points        int     `yaml:"points"`
	ShootInterval float64 `yaml:"shootInterval"`
	Pattern       string  `yaml:"pattern"` // 弹幕类型名，如 "single", "spiral"
}

// BulletStyleConfig 敌人子弹样式
type BulletStyleConfig struct {
	Size  float64 `yaml:"size"`
	Color string  `yaml:"color"`
}

// PatternConfig 弹幕生成参数
type PatternConfig struct {
	AimedSpeed      float64 `yaml:"aimedSpeed"`      // single/straight 的竖直速度
	LateralOffset   float64 `yaml:"lateralOffset"`   // straight 两侧子弹的横向偏移
	RadialSpeed     float64 `yaml:"radialSpeed"`     // circle/spiral/random 的径向速度
	CircleCount     int     `yaml:"circleCount"`
	SpiralCount     int     `yaml:"spiralCount"`
	RandomCount     int     `yaml:"randomCount"`
	SpiralPhaseRate float64 `yaml:"spiralPhaseRate"` // 螺旋相位 = 游戏时钟(秒) × 该值
}

// SpawnConfig 敌人生成配置
type SpawnConfig struct {
	InitialInterval float64            `yaml:"initialInterval"`
	MinInterval     float64            `yaml:"minInterval"`
	IntervalStep    float64            `yaml:"intervalStep"` // 每提升一级缩短的间隔
	MarginX         float64            `yaml:"marginX"`      // 生成 X 坐标与左右边界的距离
	SpawnY          float64            `yaml:"spawnY"`
	BossInterval    float64            `yaml:"bossInterval"`
	BossY           float64            `yaml:"bossY"`
	Weights         map[string]float64 `yaml:"weights"` // 普通敌人类型名 -> 权重
}

// ScoreConfig 计分配置
type ScoreConfig struct {
	InitialLives   int     `yaml:"initialLives"`
	LevelThreshold int     `yaml:"levelThreshold"` // 达到 level × 该值时升级
	GrazeBonus     int     `yaml:"grazeBonus"`
	GrazeBonusCap  int     `yaml:"grazeBonusCap"` // 擦弹奖励倍数上限
	ComboStep      int     `yaml:"comboStep"`     // 每多少连击提升一级倍率
	MaxMultiplier  int     `yaml:"maxMultiplier"`
	ComboTimeout   float64 `yaml:"comboTimeout"`
}

// EffectConfig 单个扩散特效的参数
type EffectConfig struct {
	StartRadius float64 `yaml:"startRadius"`
	MaxRadius   float64 `yaml:"maxRadius"`
	ExpandSpeed float64 `yaml:"expandSpeed"`
	FadeSpeed   float64 `yaml:"fadeSpeed"` // 每秒减少的透明度
}

// EffectsConfig 特效配置
type EffectsConfig struct {
	Explosion   EffectConfig `yaml:"explosion"`
	Graze       EffectConfig `yaml:"graze"`
	GrazeColor  string       `yaml:"grazeColor"`
	HitColor    string       `yaml:"hitColor"`    // 玩家被击中时的爆炸颜色
	PickupColor string       `yaml:"pickupColor"` // 拾取道具时的爆炸颜色
}

// PowerUpConfig 强化道具配置
type PowerUpConfig struct {
	Size          float64 `yaml:"size"`
	Speed         float64 `yaml:"speed"`
	DropChance    float64 `yaml:"dropChance"`
	Color         string  `yaml:"color"`
	BlinkColor    string  `yaml:"blinkColor"`
	BlinkInterval float64 `yaml:"blinkInterval"`
}

// BackgroundConfig 背景星空配置
type BackgroundConfig struct {
	Layers         int     `yaml:"layers"`
	StarsPerLayer  int     `yaml:"starsPerLayer"`
	BaseSpeed      float64 `yaml:"baseSpeed"` // 第 i 层速度 = (i+1) × BaseSpeed
	BaseBrightness float64 `yaml:"baseBrightness"`
	BrightnessStep float64 `yaml:"brightnessStep"`
}

// DefaultGameplayConfig 返回内置的玩法配置，与 data/gameplay.yaml 保持一致
func DefaultGameplayConfig() *GameplayConfig {
	return &GameplayConfig{
		Field: FieldConfig{Width: 800, Height: 600, MaxDeltaTime: 0.1},
		Player: PlayerConfig{
			Width:              30,
			Height:             40,
			BottomMargin:       20,
			Speed:              300,
			Color:              "#00FFFF",
			ShootInterval:      0.3,
			InvincibleDuration: 2.0,
			BlinkInterval:      0.1,
			PowerDuration:      10,
			MaxPowerLevel:      3,
			GrazeMargin:        20,
		},
		PlayerBullet: PlayerBulletConfig{
			Width:       4,
			Height:      10,
			Speed:       600,
			Color:       "#FFFF00",
			SpreadAngle: 0.3,
		},
		Enemies: map[string]EnemyConfig{
			"small":  {Width: 20, Height: 20, Speed: 120, Health: 1, Color: "#FF0000", Points: 100, ShootInterval: 2.0, Pattern: "single"},
			"medium": {Width: 30, Height: 30, Speed: 90, Health: 2, Color: "#FF6600", Points: 300, ShootInterval: 1.5, Pattern: "straight"},
			"large":  {Width: 40, Height: 40, Speed: 60, Health: 3, Color: "#FF9900", Points: 500, ShootInterval: 1.0, Pattern: "circle"},
			"boss":   {Width: 80, Height: 80, Speed: 30, Health: 20, Color: "#FF0066", Points: 1000, ShootInterval: 0.8, Pattern: "spiral"},
		},
		BulletStyles: map[string]BulletStyleConfig{
			"small":  {Size: 4, Color: "#FF0000"},
			"medium": {Size: 5, Color: "#FF6600"},
			"large":  {Size: 6, Color: "#FF9900"},
			"boss":   {Size: 7, Color: "#FF0066"},
		},
		Patterns: PatternConfig{
			AimedSpeed:      180,
			LateralOffset:   15,
			RadialSpeed:     120,
			CircleCount:     8,
			SpiralCount:     12,
			RandomCount:     5,
			SpiralPhaseRate: math.Pi,
		},
		Spawn: SpawnConfig{
			InitialInterval: 2.0,
			MinInterval:     0.5,
			IntervalStep:    0.1,
			MarginX:         25,
			SpawnY:          -50,
			BossInterval:    30,
			BossY:           -100,
			Weights:         map[string]float64{"small": 0.6, "medium": 0.3, "large": 0.1},
		},
		Score: ScoreConfig{
			InitialLives:   3,
			LevelThreshold: 1000,
			GrazeBonus:     10,
			GrazeBonusCap:  10,
			ComboStep:      5,
			MaxMultiplier:  10,
			ComboTimeout:   2.0,
		},
		Effects: EffectsConfig{
			Explosion:   EffectConfig{StartRadius: 5, MaxRadius: 30, ExpandSpeed: 60, FadeSpeed: 3.0},
			Graze:       EffectConfig{StartRadius: 10, MaxRadius: 25, ExpandSpeed: 48, FadeSpeed: 2.4},
			GrazeColor:  "#00FFFF",
			HitColor:    "#00FFFF",
			PickupColor: "#00FF00",
		},
		PowerUp: PowerUpConfig{
			Size:          20,
			Speed:         120,
			DropChance:    0.2,
			Color:         "#00FF00",
			BlinkColor:    "#FFFF00",
			BlinkInterval: 0.1,
		},
		Background: BackgroundConfig{
			Layers:         3,
			StarsPerLayer:  50,
			BaseSpeed:      30,
			BaseBrightness: 0.5,
			BrightnessStep: 0.25,
		},
	}
}

// LoadGameplayConfig 从 YAML 文件加载玩法配置
// 文件内容覆盖在 DefaultGameplayConfig 之上，未出现的字段保留默认值；
// enemies/bulletStyles 中出现的条目必须写全所有字段
// 参数：
//
//	filepath - 配置文件路径（"data/" 开头从嵌入资源读取，否则读取本地文件）
//
// 返回：
//
//	*GameplayConfig - 解析并校验后的配置
//	error - 文件读取、解析或校验失败
func LoadGameplayConfig(filepath string) (*GameplayConfig, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read gameplay config %s: %w", filepath, err)
	}

	config := DefaultGameplayConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse gameplay YAML from %s: %w", filepath, err)
	}

	if err := ValidateGameplayConfig(config); err != nil {
		return nil, fmt.Errorf("invalid gameplay config in %s: %w", filepath, err)
	}

	log.Printf("[Config] 加载玩法配置: %s (%d 种敌人)", filepath, len(config.Enemies))
	return config, nil
}

// ValidateGameplayConfig 验证玩法配置的完整性和合法性
func ValidateGameplayConfig(config *GameplayConfig) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}

	f := config.Field
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("field: size must be positive, got %.0fx%.0f", f.Width, f.Height)
	}
	if f.MaxDeltaTime <= 0 {
		return fmt.Errorf("field: maxDeltaTime must be positive, got %f", f.MaxDeltaTime)
	}

	if err := validatePlayer(&config.Player); err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if err := validatePlayerBullet(&config.PlayerBullet); err != nil {
		return fmt.Errorf("playerBullet: %w", err)
	}
	if err := validateEnemies(config.Enemies, config.BulletStyles); err != nil {
		return err
	}
	if err := validatePatterns(&config.Patterns); err != nil {
		return fmt.Errorf("patterns: %w", err)
	}
	if err := validateSpawn(&config.Spawn); err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	if err := validateScore(&config.Score); err != nil {
		return fmt.Errorf("score: %w", err)
	}
	if err := validateEffects(&config.Effects); err != nil {
		return fmt.Errorf("effects: %w", err)
	}
	if err := validatePowerUp(&config.PowerUp); err != nil {
		return fmt.Errorf("powerUp: %w", err)
	}

	b := config.Background
	if b.Layers < 0 || b.StarsPerLayer < 0 {
		return fmt.Errorf("background: layers and starsPerLayer cannot be negative")
	}
	if b.BaseSpeed < 0 {
		return fmt.Errorf("background: baseSpeed cannot be negative, got %f", b.BaseSpeed)
	}

	return nil
}

func validatePlayer(p *PlayerConfig) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("size must be positive, got %.0fx%.0f", p.Width, p.Height)
	}
	if p.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %f", p.Speed)
	}
	if p.ShootInterval <= 0 || p.InvincibleDuration <= 0 || p.BlinkInterval <= 0 || p.PowerDuration <= 0 {
		return fmt.Errorf("intervals and durations must be positive")
	}
	if p.MaxPowerLevel < 1 {
		return fmt.Errorf("maxPowerLevel must be at least 1, got %d", p.MaxPowerLevel)
	}
	if p.GrazeMargin < 0 {
		return fmt.Errorf("grazeMargin cannot be negative, got %f", p.GrazeMargin)
	}
	if _, err := ParseHexColor(p.Color); err != nil {
		return err
	}
	return nil
}

func validatePlayerBullet(b *PlayerBulletConfig) error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("size must be positive, got %.0fx%.0f", b.Width, b.Height)
	}
	if b.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %f", b.Speed)
	}
	if _, err := ParseHexColor(b.Color); err != nil {
		return err
	}
	return nil
}

// validateEnemies 每种敌人类型必须在 enemies 和 bulletStyles 中各出现一次
func validateEnemies(enemies map[string]EnemyConfig, styles map[string]BulletStyleConfig) error {
	for name, stats := range enemies {
		if _, err := types.ParseEnemyType(name); err != nil {
			return fmt.Errorf("enemies: %w", err)
		}
		if stats.Width <= 0 || stats.Height <= 0 {
			return fmt.Errorf("enemy %s: size must be positive, got %.0fx%.0f", name, stats.Width, stats.Height)
		}
		if stats.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive, got %f", name, stats.Speed)
		}
		if stats.Health < 1 {
			return fmt.Errorf("enemy %s: health must be at least 1, got %d", name, stats.Health)
		}
		if stats.Points < 0 {
			return fmt.Errorf("enemy %s: points cannot be negative, got %d", name, stats.Points)
		}
		if stats.ShootInterval <= 0 {
			return fmt.Errorf("enemy %s: shootInterval must be positive, got %f", name, stats.ShootInterval)
		}
		if _, err := types.ParsePatternType(stats.Pattern); err != nil {
			return fmt.Errorf("enemy %s: %w", name, err)
		}
		if _, err := ParseHexColor(stats.Color); err != nil {
			return fmt.Errorf("enemy %s: %w", name, err)
		}
	}

	for name, style := range styles {
		if _, err := types.ParseEnemyType(name); err != nil {
			return fmt.Errorf("bulletStyles: %w", err)
		}
		if style.Size <= 0 {
			return fmt.Errorf("bullet style %s: size must be positive, got %f", name, style.Size)
		}
		if _, err := ParseHexColor(style.Color); err != nil {
			return fmt.Errorf("bullet style %s: %w", name, err)
		}
	}

	for _, et := range types.AllEnemyTypes() {
		if _, ok := enemies[et.String()]; !ok {
			return fmt.Errorf("enemies: missing enemy type %s", et)
		}
		if _, ok := styles[et.String()]; !ok {
			return fmt.Errorf("bulletStyles: missing enemy type %s", et)
		}
	}
	return nil
}

func validatePatterns(p *PatternConfig) error {
	if p.AimedSpeed <= 0 || p.RadialSpeed <= 0 {
		return fmt.Errorf("bullet speeds must be positive")
	}
	if p.CircleCount < 1 || p.SpiralCount < 1 || p.RandomCount < 1 {
		return fmt.Errorf("bullet counts must be at least 1")
	}
	if p.LateralOffset < 0 {
		return fmt.Errorf("lateralOffset cannot be negative, got %f", p.LateralOffset)
	}
	return nil
}

func validateSpawn(s *SpawnConfig) error {
	if s.InitialInterval <= 0 || s.MinInterval <= 0 || s.BossInterval <= 0 {
		return fmt.Errorf("intervals must be positive")
	}
	if s.IntervalStep < 0 {
		return fmt.Errorf("intervalStep cannot be negative, got %f", s.IntervalStep)
	}
	if s.MarginX < 0 {
		return fmt.Errorf("marginX cannot be negative, got %f", s.MarginX)
	}

	total := 0.0
	for name, w := range s.Weights {
		et, err := types.ParseEnemyType(name)
		if err != nil {
			return fmt.Errorf("weights: %w", err)
		}
		if et == types.EnemyBoss {
			return fmt.Errorf("weights: boss is spawned on its own timer")
		}
		if w < 0 {
			return fmt.Errorf("weight %s cannot be negative, got %f", name, w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("weights must sum to a positive value, got %f", total)
	}
	return nil
}

func validateScore(s *ScoreConfig) error {
	if s.InitialLives < 1 {
		return fmt.Errorf("initialLives must be at least 1, got %d", s.InitialLives)
	}
	if s.LevelThreshold < 1 {
		return fmt.Errorf("levelThreshold must be at least 1, got %d", s.LevelThreshold)
	}
	if s.GrazeBonus < 0 || s.GrazeBonusCap < 0 {
		return fmt.Errorf("graze bonus values cannot be negative")
	}
	if s.ComboStep < 1 {
		return fmt.Errorf("comboStep must be at least 1, got %d", s.ComboStep)
	}
	if s.MaxMultiplier < 1 {
		return fmt.Errorf("maxMultiplier must be at least 1, got %d", s.MaxMultiplier)
	}
	if s.ComboTimeout <= 0 {
		return fmt.Errorf("comboTimeout must be positive, got %f", s.ComboTimeout)
	}
	return nil
}

func validateEffects(e *EffectsConfig) error {
	for name, ec := range map[string]EffectConfig{"explosion": e.Explosion, "graze": e.Graze} {
		if ec.StartRadius <= 0 || ec.MaxRadius < ec.StartRadius {
			return fmt.Errorf("%s: radius range [%f, %f] is invalid", name, ec.StartRadius, ec.MaxRadius)
		}
		if ec.ExpandSpeed <= 0 || ec.FadeSpeed <= 0 {
			return fmt.Errorf("%s: expandSpeed and fadeSpeed must be positive", name)
		}
	}
	for _, c := range []string{e.GrazeColor, e.HitColor, e.PickupColor} {
		if _, err := ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

func validatePowerUp(p *PowerUpConfig) error {
	if p.Size <= 0 || p.Speed <= 0 {
		return fmt.Errorf("size and speed must be positive")
	}
	if p.DropChance < 0 || p.DropChance > 1 {
		return fmt.Errorf("dropChance must be within [0, 1], got %f", p.DropChance)
	}
	if p.BlinkInterval <= 0 {
		return fmt.Errorf("blinkInterval must be positive, got %f", p.BlinkInterval)
	}
	for _, c := range []string{p.Color, p.BlinkColor} {
		if _, err := ParseHexColor(c); err != nil {
			return err
		}
	}
	return nil
}

// ParseHexColor 解析 "#RRGGBB" 格式的颜色，返回不透明的 color.RGBA
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
