package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/pattern"
	"github.com/decker502/spacedefender/pkg/types"
	"github.com/decker502/spacedefender/pkg/utils"
)

const (
	// zigzagFlipInterval 之字形移动的换向周期（秒）
	zigzagFlipInterval = 1.0
	// orbitRadius 圆周移动的水平振幅（像素）
	orbitRadius = 50.0
)

// PhaseFunc 返回当前的螺旋弹幕相位（弧度）
type PhaseFunc func() float64

// EnemySystem 处理敌人移动、射击、受伤和逃逸清理
type EnemySystem struct {
	em         *ecs.EntityManager
	cfg        *config.GameplayConfig
	score      *game.ScoreEngine
	generator  *pattern.Generator
	rng        *rand.Rand
	phase      PhaseFunc
	dispatcher *event.Dispatcher
}

// NewEnemySystem 创建敌人系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置
//   - score: 计分引擎，击破时加分
//   - generator: 弹幕生成器
//   - rng: 随机源，用于道具掉落判定
//   - phase: 螺旋弹幕相位来源，nil 时相位恒为 0
//   - dispatcher: 事件分发器，可为 nil
func NewEnemySystem(em *ecs.EntityManager, cfg *config.GameplayConfig, score *game.ScoreEngine,
	generator *pattern.Generator, rng *rand.Rand, phase PhaseFunc, dispatcher *event.Dispatcher) *EnemySystem {
	if phase == nil {
		phase = func() float64 { return 0 }
	}
	return &EnemySystem{
		em:         em,
		cfg:        cfg,
		score:      score,
		generator:  generator,
		rng:        rng,
		phase:      phase,
		dispatcher: dispatcher,
	}
}

// Update 移动所有敌人并按间隔射击，然后移除从底部逃逸的敌人
func (s *EnemySystem) Update(deltaTime float64) {
	enemies := ecs.GetEntitiesWith3[*components.EnemyComponent, *components.PositionComponent, *components.CollisionComponent](s.em)

	for _, id := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.em, id)

		s.move(enemy, pos, col, deltaTime)

		enemy.ShootTimer += deltaTime
		if enemy.ShootTimer >= enemy.ShootInterval {
			s.shoot(enemy, pos, col)
			enemy.ShootTimer = 0
		}

		if pos.Y > s.cfg.Field.Height+col.Height {
			s.em.DestroyEntity(id)
		}
	}
}

func (s *EnemySystem) move(enemy *components.EnemyComponent, pos *components.PositionComponent, col *components.CollisionComponent, deltaTime float64) {
	step := enemy.Speed * deltaTime
	maxX := s.cfg.Field.Width - col.Width

	switch enemy.Movement {
	case types.MovementZigzag:
		pos.Y += step
		enemy.MovementTimer += deltaTime
		if enemy.MovementTimer > zigzagFlipInterval {
			enemy.Direction *= -1
			enemy.MovementTimer = 0
		}
		pos.X += step * enemy.Direction
		if pos.X < 0 || pos.X > maxX {
			enemy.Direction *= -1
		}

	case types.MovementCircular:
		pos.Y += step / 2
		enemy.MovementTimer += deltaTime
		pos.X = enemy.CenterX + math.Sin(enemy.MovementTimer)*orbitRadius
		if pos.X < 0 || pos.X > maxX {
			enemy.CenterX = utils.Clamp(enemy.CenterX, orbitRadius, s.cfg.Field.Width-orbitRadius)
		}

	default:
		pos.Y += step
	}
}

// shoot 从敌人底边中点发射绑定的弹幕
func (s *EnemySystem) shoot(enemy *components.EnemyComponent, pos *components.PositionComponent, col *components.CollisionComponent) {
	bullets, err := s.generator.Generate(enemy.Pattern, pos.X+col.Width/2, pos.Y+col.Height, enemy.Type, s.phase())
	if err != nil {
		log.Printf("[EnemySystem] 生成弹幕失败: %v", err)
		return
	}
	for _, b := range bullets {
		if _, err := entities.NewEnemyBulletEntity(s.em, b); err != nil {
			log.Printf("[EnemySystem] 创建子弹失败: %v", err)
		}
	}
}

// TakeDamage 敌人受到一点伤害，返回是否被击破
// 击破时按当前连击倍率加分，并按掉落概率在敌人底边中点生成强化道具；
// 实体本身由调用方移除
func (s *EnemySystem) TakeDamage(id ecs.EntityID) bool {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.em, id)
	if !ok {
		return false
	}

	enemy.Health--
	if enemy.Health > 0 {
		return false
	}

	awarded := s.score.AddScore(enemy.Points)

	rect, hasBounds := boundsOf(s.em, id)
	if hasBounds && s.rng.Float64() < s.cfg.PowerUp.DropChance {
		x := rect.X + rect.W/2 - s.cfg.PowerUp.Size/2
		if _, err := entities.NewPowerUpEntity(s.em, s.cfg, x, rect.Bottom()); err != nil {
			log.Printf("[EnemySystem] 创建强化道具失败: %v", err)
		}
	}

	cx, cy := rect.Center()
	dispatch(s.dispatcher, event.EnemyDestroyed, event.EnemyDestroyedData{
		Type:    enemy.Type,
		X:       cx,
		Y:       cy,
		Awarded: awarded,
	})
	return true
}
