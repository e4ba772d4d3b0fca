package systems

import (
	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
)

// MovementSystem 按速度积分子弹和道具的位置，并移除离开场地的实体
type MovementSystem struct {
	em    *ecs.EntityManager
	field config.FieldConfig
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager, field config.FieldConfig) *MovementSystem {
	return &MovementSystem{
		em:    em,
		field: field,
	}
}

// Update 依次更新玩家子弹、敌人子弹和强化道具
func (s *MovementSystem) Update(deltaTime float64) {
	s.UpdatePlayerBullets(deltaTime)
	s.UpdateEnemyBullets(deltaTime)
	s.UpdatePowerUps(deltaTime)
}

// UpdatePlayerBullets 移动玩家子弹，移除完全越过顶边的子弹
func (s *MovementSystem) UpdatePlayerBullets(deltaTime float64) {
	integrate[*components.PlayerBulletComponent](s.em, deltaTime, func(pos *components.PositionComponent, col *components.CollisionComponent) bool {
		return pos.Y < -col.Height
	})
}

// UpdateEnemyBullets 移动敌人子弹，移除越过任一边界（留一个子弹尺寸余量）的子弹
func (s *MovementSystem) UpdateEnemyBullets(deltaTime float64) {
	integrate[*components.EnemyBulletComponent](s.em, deltaTime, func(pos *components.PositionComponent, col *components.CollisionComponent) bool {
		return pos.Y > s.field.Height+col.Height ||
			pos.Y < -col.Height ||
			pos.X < -col.Width ||
			pos.X > s.field.Width+col.Width
	})
}

// UpdatePowerUps 移动强化道具，移除越过底边的道具
func (s *MovementSystem) UpdatePowerUps(deltaTime float64) {
	integrate[*components.PowerUpComponent](s.em, deltaTime, func(pos *components.PositionComponent, col *components.CollisionComponent) bool {
		return pos.Y > s.field.Height+col.Height
	})
}

// integrate 对拥有标记组件 T 的实体做线性积分，escaped 返回 true 的实体被标记删除
func integrate[T any](em *ecs.EntityManager, deltaTime float64, escaped func(*components.PositionComponent, *components.CollisionComponent) bool) {
	for _, id := range ecs.GetEntitiesWith3[T, *components.PositionComponent, *components.VelocityComponent](em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
		if !ok {
			continue
		}
		if escaped(pos, col) {
			em.DestroyEntity(id)
		}
	}
}
