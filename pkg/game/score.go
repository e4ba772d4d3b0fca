package game

import (
	"image/color"
	"math"

	"github.com/decker502/spacedefender/pkg/config"
)

// ComboTier 连击倍率的显示等级
type ComboTier int

const (
	ComboTierWhite   ComboTier = iota // 倍率 < 3
	ComboTierYellow                   // 倍率 3 ~ 4
	ComboTierRed                      // 倍率 5 ~ 7
	ComboTierMagenta                  // 倍率 >= 8
)

// String 返回等级名称
func (t ComboTier) String() string {
	switch t {
	case ComboTierYellow:
		return "yellow"
	case ComboTierRed:
		return "red"
	case ComboTierMagenta:
		return "magenta"
	default:
		return "white"
	}
}

// Color 返回等级对应的显示颜色
func (t ComboTier) Color() color.RGBA {
	switch t {
	case ComboTierYellow:
		return color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}
	case ComboTierRed:
		return color.RGBA{R: 0xFF, A: 0xFF}
	case ComboTierMagenta:
		return color.RGBA{R: 0xFF, B: 0xFF, A: 0xFF}
	default:
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
}

// ScoreEngine 管理分数、等级、生命、擦弹和连击
// 所有计分都经过 AddScore，以保证连击倍率被统一应用
type ScoreEngine struct {
	cfg config.ScoreConfig

	score      int
	level      int
	lives      int
	grazeCount int
	combo      int
	multiplier int
	comboTimer float64
}

// NewScoreEngine 创建计分引擎并初始化为开局状态
func NewScoreEngine(cfg config.ScoreConfig) *ScoreEngine {
	s := &ScoreEngine{cfg: cfg}
	s.Reset()
	return s
}

// Reset 恢复开局状态：分数 0，等级 1，满生命，无连击
func (s *ScoreEngine) Reset() {
	s.score = 0
	s.level = 1
	s.lives = s.cfg.InitialLives
	s.grazeCount = 0
	s.ResetCombo()
}

// AddScore 按当前倍率加分，返回实际获得的分数
// 分数达到 level × LevelThreshold 时升一级（每次加分最多升一级）
func (s *ScoreEngine) AddScore(points int) int {
	awarded := int(math.Floor(float64(points) * float64(s.multiplier)))
	s.score += awarded

	if s.score >= s.level*s.cfg.LevelThreshold {
		s.level++
	}
	return awarded
}

// Graze 记录一次擦弹并发放奖励分
// 奖励 = GrazeBonus × min(擦弹次数, GrazeBonusCap)
func (s *ScoreEngine) Graze() int {
	s.grazeCount++
	return s.AddScore(s.cfg.GrazeBonus * min(s.grazeCount, s.cfg.GrazeBonusCap))
}

// ContinueCombo 击破敌人后延续连击并刷新倍率
func (s *ScoreEngine) ContinueCombo() {
	s.combo++
	s.comboTimer = 0
	s.multiplier = min(1+s.combo/s.cfg.ComboStep, s.cfg.MaxMultiplier)
}

// ResetCombo 清空连击
func (s *ScoreEngine) ResetCombo() {
	s.combo = 0
	s.multiplier = 1
	s.comboTimer = 0
}

// Update 推进连击计时，超时后清空连击
func (s *ScoreEngine) Update(deltaTime float64) {
	if s.combo <= 0 {
		return
	}
	s.comboTimer += deltaTime
	if s.comboTimer >= s.cfg.ComboTimeout {
		s.ResetCombo()
	}
}

// LoseLife 扣除一条生命并清空连击，返回是否已无剩余生命
func (s *ScoreEngine) LoseLife() bool {
	s.lives--
	s.ResetCombo()
	return s.lives <= 0
}

// ComboTier 根据当前倍率返回显示等级
func (s *ScoreEngine) ComboTier() ComboTier {
	switch {
	case s.multiplier >= 8:
		return ComboTierMagenta
	case s.multiplier >= 5:
		return ComboTierRed
	case s.multiplier >= 3:
		return ComboTierYellow
	default:
		return ComboTierWhite
	}
}

// Score 返回当前分数
func (s *ScoreEngine) Score() int { return s.score }

// Level 返回当前等级（从 1 开始）
func (s *ScoreEngine) Level() int { return s.level }

// Lives 返回剩余生命
func (s *ScoreEngine) Lives() int { return s.lives }

// GrazeCount 返回累计擦弹次数
func (s *ScoreEngine) GrazeCount() int { return s.grazeCount }

// Combo 返回当前连击数
func (s *ScoreEngine) Combo() int { return s.combo }

// Multiplier 返回当前连击倍率
func (s *ScoreEngine) Multiplier() int { return s.multiplier }

// ComboTimer 返回距上次击破经过的时间（秒）
func (s *ScoreEngine) ComboTimer() float64 { return s.comboTimer }
