package systems

import (
	"log"
	"math"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/utils"
)

// PlayerSystem 处理玩家移动、射击、无敌闪烁和火力衰减
type PlayerSystem struct {
	em         *ecs.EntityManager
	cfg        *config.GameplayConfig
	score      *game.ScoreEngine
	dispatcher *event.Dispatcher
	input      game.InputState
}

// NewPlayerSystem 创建玩家系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置
//   - score: 计分引擎，受伤时通过它扣除生命
//   - dispatcher: 事件分发器，可为 nil
func NewPlayerSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, score *game.ScoreEngine, dispatcher *event.Dispatcher) *PlayerSystem {
	return &PlayerSystem{
		em:         em,
		cfg:        cfg,
		score:      score,
		dispatcher: dispatcher,
	}
}

// SetInput 设置当前按住的按键
func (s *PlayerSystem) SetInput(input game.InputState) {
	s.input = input
}

// Update 更新所有玩家实体
func (s *PlayerSystem) Update(deltaTime float64) {
	players := ecs.GetEntitiesWith3[*components.PlayerComponent, *components.PositionComponent, *components.CollisionComponent](s.em)

	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](s.em, id)

		s.move(pos, col, deltaTime)

		player.ShootTimer += deltaTime
		if s.input.Fire && player.ShootTimer >= s.cfg.Player.ShootInterval {
			s.fire(player, pos, col)
			player.ShootTimer = 0
		}

		s.updateInvincibility(id, player, deltaTime)

		if player.PowerLevel > 1 {
			player.PowerTimer += deltaTime
			if player.PowerTimer >= s.cfg.Player.PowerDuration {
				player.PowerLevel = 1
				player.PowerTimer = 0
			}
		}
	}
}

// move 按住的方向键各自位移 speed×dt，两个轴分别限制在场地内
func (s *PlayerSystem) move(pos *components.PositionComponent, col *components.CollisionComponent, deltaTime float64) {
	step := s.cfg.Player.Speed * deltaTime
	if s.input.Left {
		pos.X -= step
	}
	if s.input.Right {
		pos.X += step
	}
	if s.input.Up {
		pos.Y -= step
	}
	if s.input.Down {
		pos.Y += step
	}

	pos.X = utils.Clamp(pos.X, 0, s.cfg.Field.Width-col.Width)
	pos.Y = utils.Clamp(pos.Y, 0, s.cfg.Field.Height-col.Height)
}

// fire 按火力等级发射子弹
// 1: 居中单发；2: 左右双发；3 及以上: 居中直射 + 两侧斜射
func (s *PlayerSystem) fire(player *components.PlayerComponent, pos *components.PositionComponent, col *components.CollisionComponent) {
	centerX := pos.X + col.Width/2 - s.cfg.PlayerBullet.Width/2
	leftX := pos.X + 5
	rightX := pos.X + col.Width - 5
	spread := s.cfg.PlayerBullet.SpreadAngle

	switch {
	case player.PowerLevel <= 1:
		s.spawnBullet(centerX, pos.Y, 0)
	case player.PowerLevel == 2:
		s.spawnBullet(leftX, pos.Y+5, 0)
		s.spawnBullet(rightX, pos.Y+5, 0)
	default:
		s.spawnBullet(centerX, pos.Y, 0)
		s.spawnBullet(leftX, pos.Y+10, -spread)
		s.spawnBullet(rightX, pos.Y+10, spread)
	}
}

func (s *PlayerSystem) spawnBullet(x, y, angleOffset float64) {
	if _, err := entities.NewPlayerBulletEntity(s.em, s.cfg, x, y, angleOffset); err != nil {
		log.Printf("[PlayerSystem] 创建子弹失败: %v", err)
	}
}

// updateInvincibility 无敌期间按 blink 周期切换可见性，到期后强制可见
func (s *PlayerSystem) updateInvincibility(id ecs.EntityID, player *components.PlayerComponent, deltaTime float64) {
	if !player.Invincible {
		return
	}

	visual, hasVisual := ecs.GetComponent[*components.VisualComponent](s.em, id)
	blink := s.cfg.Player.BlinkInterval

	player.InvincibleTimer += deltaTime
	if hasVisual {
		visual.Visible = math.Mod(player.InvincibleTimer, blink*2) < blink
	}

	if player.InvincibleTimer >= s.cfg.Player.InvincibleDuration {
		player.Invincible = false
		if hasVisual {
			visual.Visible = true
		}
	}
}

// TakeDamage 对玩家造成一次伤害
// 无敌时不生效；否则扣除一条生命（同时清空连击），进入无敌，火力降一级（最低 1）
// 返回是否实际造成了伤害
func (s *PlayerSystem) TakeDamage(id ecs.EntityID) bool {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.em, id)
	if !ok || player.Invincible {
		return false
	}

	s.score.LoseLife()
	player.Invincible = true
	player.InvincibleTimer = 0
	if player.PowerLevel > 1 {
		player.PowerLevel--
	}

	dispatch(s.dispatcher, event.PlayerHit, event.PlayerHitData{
		LivesLeft:  s.score.Lives(),
		PowerLevel: player.PowerLevel,
	})
	return true
}

// PowerUp 火力提升一级（不超过上限），无论是否提升都重置火力计时
func (s *PlayerSystem) PowerUp(id ecs.EntityID) {
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.em, id)
	if !ok {
		return
	}

	if player.PowerLevel < s.cfg.Player.MaxPowerLevel {
		player.PowerLevel++
	}
	player.PowerTimer = 0

	dispatch(s.dispatcher, event.PowerUpCollected, player.PowerLevel)
}

// PowerLevel 返回当前玩家的火力等级，场上没有玩家时返回 false
func (s *PlayerSystem) PowerLevel() (int, bool) {
	id, ok := FindPlayer(s.em)
	if !ok {
		return 0, false
	}
	player, ok := ecs.GetComponent[*components.PlayerComponent](s.em, id)
	if !ok {
		return 0, false
	}
	return player.PowerLevel, true
}
