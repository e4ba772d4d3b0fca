package simulation

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/pattern"
	"github.com/decker502/spacedefender/pkg/systems"
	"github.com/decker502/spacedefender/pkg/utils"
)

// ErrInvalidTransition 当前阶段不允许请求的状态切换
var ErrInvalidTransition = errors.New("invalid state transition")

// StateChange StateChanged 事件携带的数据
type StateChange struct {
	From game.Phase
	To   game.Phase
}

// Simulation 游戏核心：持有全部实体、系统和计分状态，按帧推进
//
// 生命周期：NewSimulation 之后处于 Start 阶段，只有背景星空；
// Start 进入 Playing，Tick/Update 只在 Playing 阶段生效。
// 所有方法都应在同一个 goroutine 上调用。
type Simulation struct {
	cfg        *config.GameplayConfig
	rng        *rand.Rand
	em         *ecs.EntityManager
	score      *game.ScoreEngine
	dispatcher *event.Dispatcher

	player    *systems.PlayerSystem
	enemies   *systems.EnemySystem
	movement  *systems.MovementSystem
	effects   *systems.EffectSystem
	spawner   *systems.SpawnSystem
	starfield *systems.StarfieldSystem
	collision *systems.CollisionSystem

	phase game.Phase
	clock float64 // Playing 阶段累计的模拟时间（秒）
	level int     // 上一帧的等级，用于检测升级

	lastTimestamp time.Duration
	hasBaseline   bool

	powerUpColor      color.RGBA
	powerUpBlinkColor color.RGBA

	ui game.UIState
}

// NewSimulation 创建模拟
// cfg 为 nil 时使用内置默认配置；rng 为 nil 时使用当前时间作为种子
func NewSimulation(cfg *config.GameplayConfig, rng *rand.Rand) (*Simulation, error) {
	if cfg == nil {
		cfg = config.DefaultGameplayConfig()
	}
	if err := config.ValidateGameplayConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid gameplay config: %w", err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	table, err := config.NewEnemyTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build enemy table: %w", err)
	}
	generator, err := pattern.NewGenerator(table, cfg.Patterns, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create pattern generator: %w", err)
	}
	powerUpColor, err := config.ParseHexColor(cfg.PowerUp.Color)
	if err != nil {
		return nil, fmt.Errorf("power-up color: %w", err)
	}
	powerUpBlinkColor, err := config.ParseHexColor(cfg.PowerUp.BlinkColor)
	if err != nil {
		return nil, fmt.Errorf("power-up blink color: %w", err)
	}

	s := &Simulation{
		cfg:               cfg,
		rng:               rng,
		em:                ecs.NewEntityManager(),
		score:             game.NewScoreEngine(cfg.Score),
		dispatcher:        event.NewDispatcher(),
		phase:             game.PhaseStart,
		level:             1,
		powerUpColor:      powerUpColor,
		powerUpBlinkColor: powerUpBlinkColor,
	}

	s.player = systems.NewPlayerSystem(s.em, cfg, s.score, s.dispatcher)
	s.enemies = systems.NewEnemySystem(s.em, cfg, s.score, generator, rng, s.patternPhase, s.dispatcher)
	s.movement = systems.NewMovementSystem(s.em, cfg.Field)
	s.effects = systems.NewEffectSystem(s.em)
	s.spawner = systems.NewSpawnSystem(s.em, cfg, table, s.score, rng, s.dispatcher)
	s.starfield = systems.NewStarfieldSystem(s.em, cfg.Field, rng)
	s.collision, err = systems.NewCollisionSystem(s.em, cfg, s.score, s.player, s.enemies, s.dispatcher)
	if err != nil {
		return nil, fmt.Errorf("failed to create collision system: %w", err)
	}

	if err := s.resetWorld(); err != nil {
		return nil, err
	}
	s.publishUI()
	return s, nil
}

// Events 返回事件分发器，宿主在这里订阅状态切换和玩法事件
func (s *Simulation) Events() *event.Dispatcher {
	return s.dispatcher
}

// Phase 返回当前阶段
func (s *Simulation) Phase() game.Phase {
	return s.phase
}

// Clock 返回 Playing 阶段累计的模拟时间（秒）
func (s *Simulation) Clock() float64 {
	return s.clock
}

// Config 返回当前使用的玩法配置
func (s *Simulation) Config() *config.GameplayConfig {
	return s.cfg
}

// SetInput 更新按键的按住状态
func (s *Simulation) SetInput(input game.InputState) {
	s.player.SetInput(input)
}

// Start 从 Start 或 GameOver 进入 Playing
// 清空所有实体，重置计分、生成器和时钟，生成新的玩家
func (s *Simulation) Start() error {
	if s.phase != game.PhaseStart && s.phase != game.PhaseGameOver {
		return s.invalid(game.PhasePlaying)
	}

	if err := s.resetWorld(); err != nil {
		return err
	}
	if _, err := entities.NewPlayerEntity(s.em, s.cfg); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}

	s.hasBaseline = false
	s.transition(game.PhasePlaying)
	return nil
}

// Pause Playing -> Paused，暂停期间不推进任何实体
func (s *Simulation) Pause() error {
	if s.phase != game.PhasePlaying {
		return s.invalid(game.PhasePaused)
	}
	s.transition(game.PhasePaused)
	return nil
}

// Resume Paused -> Playing，重置帧时间基线，暂停的时长不会变成一次 delta
func (s *Simulation) Resume() error {
	if s.phase != game.PhasePaused {
		return s.invalid(game.PhasePlaying)
	}
	s.hasBaseline = false
	s.transition(game.PhasePlaying)
	return nil
}

// TogglePause 暂停键（边沿触发）：Playing 与 Paused 互相切换，其它阶段忽略
func (s *Simulation) TogglePause() {
	switch s.phase {
	case game.PhasePlaying:
		_ = s.Pause()
	case game.PhasePaused:
		_ = s.Resume()
	}
}

// Reset 从任意阶段回到 Start，移除玩家和所有实体并重置计数
func (s *Simulation) Reset() error {
	if err := s.resetWorld(); err != nil {
		return err
	}
	s.hasBaseline = false
	if s.phase != game.PhaseStart {
		s.transition(game.PhaseStart)
		return nil
	}
	s.publishUI()
	return nil
}

// Tick 帧时钟入口，timestamp 为单调递增的帧时间戳
// 基线重置后的第一帧 delta 为 0，倒退的时间戳视为 0，delta 不超过 field.maxDeltaTime
func (s *Simulation) Tick(timestamp time.Duration) {
	if s.phase != game.PhasePlaying {
		return
	}

	var delta time.Duration
	if s.hasBaseline && timestamp > s.lastTimestamp {
		delta = timestamp - s.lastTimestamp
	}
	s.lastTimestamp = timestamp
	s.hasBaseline = true

	s.Update(delta.Seconds())
}

// Update 推进一帧（秒），只在 Playing 阶段生效
//
// 执行顺序：
//  1. 背景星空滚动
//  2. 普通敌人生成
//  3. Boss 生成
//  4. 玩家
//  5. 敌人（移除从底部逃逸的敌人）
//  6. 玩家子弹（移除越过顶边的子弹）
//  7. 敌人子弹（移除越过任一边界的子弹）
//  8. 强化道具（移除越过底边的道具）
//  9. 特效（移除已结束的特效）
//  10. 连击计时
//  11. 碰撞检测，之后检查游戏结束并清理被标记的实体
//  12. 发布 UI 状态
func (s *Simulation) Update(deltaTime float64) {
	if s.phase != game.PhasePlaying {
		return
	}
	deltaTime = utils.Clamp(deltaTime, 0, s.cfg.Field.MaxDeltaTime)
	s.clock += deltaTime

	s.starfield.Update(deltaTime)
	s.spawner.UpdateEnemies(deltaTime)
	s.spawner.UpdateBoss(deltaTime)
	s.player.Update(deltaTime)
	s.enemies.Update(deltaTime)
	s.movement.UpdatePlayerBullets(deltaTime)
	s.movement.UpdateEnemyBullets(deltaTime)
	s.movement.UpdatePowerUps(deltaTime)
	s.effects.Update(deltaTime)
	s.score.Update(deltaTime)
	s.collision.Update()

	s.checkLevelUp()
	if s.score.Lives() <= 0 {
		log.Printf("[Simulation] 游戏结束: 得分 %d, 等级 %d, 擦弹 %d", s.score.Score(), s.score.Level(), s.score.GrazeCount())
		s.transition(game.PhaseGameOver)
	}
	s.em.RemoveMarkedEntities()

	s.publishUI()
}

// UIState 返回最近一次发布的 HUD 数据
func (s *Simulation) UIState() game.UIState {
	return s.ui
}

// patternPhase 螺旋弹幕相位随模拟时钟旋转
func (s *Simulation) patternPhase() float64 {
	return s.clock * s.cfg.Patterns.SpiralPhaseRate
}

// resetWorld 清空实体、计分、生成器和时钟，并重新铺设背景星空
func (s *Simulation) resetWorld() error {
	s.em.Clear()
	s.score.Reset()
	s.spawner.Reset()
	s.clock = 0
	s.level = s.score.Level()

	if _, err := entities.NewStarfield(s.em, s.cfg, s.rng); err != nil {
		return fmt.Errorf("failed to create starfield: %w", err)
	}
	return nil
}

func (s *Simulation) checkLevelUp() {
	level := s.score.Level()
	if level <= s.level {
		return
	}
	s.level = level
	log.Printf("[Simulation] 升级: 等级 %d, 生成间隔 %.2fs", level, s.spawner.Interval())
	s.dispatcher.Dispatch(event.Event{Type: event.LevelUp, Data: level})
}

// transition 切换阶段并先发布 UI 状态，监听者收到 StateChanged 时读到的是新阶段的数据
func (s *Simulation) transition(to game.Phase) {
	from := s.phase
	s.phase = to
	s.publishUI()
	log.Printf("[Simulation] 状态切换: %s -> %s", from, to)
	s.dispatcher.Dispatch(event.Event{Type: event.StateChanged, Data: StateChange{From: from, To: to}})
}

func (s *Simulation) invalid(to game.Phase) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, to)
}

func (s *Simulation) publishUI() {
	ui := game.UIState{
		Score:      s.score.Score(),
		Lives:      s.score.Lives(),
		Level:      s.score.Level(),
		Graze:      s.score.GrazeCount(),
		Combo:      s.score.Combo(),
		Multiplier: s.score.Multiplier(),
		ComboTier:  s.score.ComboTier(),
		Phase:      s.phase,
	}
	if level, ok := s.player.PowerLevel(); ok {
		ui.PowerFraction = float64(level) / float64(s.cfg.Player.MaxPowerLevel)
	}
	s.ui = ui
}
