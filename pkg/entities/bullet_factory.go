package entities

import (
	"fmt"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/pattern"
	"github.com/decker502/spacedefender/pkg/types"
)

// NewPlayerBulletEntity 创建玩家子弹实体
// 子弹向上飞行，横向速度 = 子弹速度 × angleOffset
func NewPlayerBulletEntity(em *ecs.EntityManager, cfg *config.GameplayConfig, x, y, angleOffset float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("gameplay config cannot be nil")
	}

	bc := cfg.PlayerBullet
	bulletColor, err := config.ParseHexColor(bc.Color)
	if err != nil {
		return 0, fmt.Errorf("player bullet color: %w", err)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.VelocityComponent{
		VX: bc.Speed * angleOffset,
		VY: -bc.Speed,
	})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  bc.Width,
		Height: bc.Height,
	})
	ecs.AddComponent(em, entityID, &components.VisualComponent{
		Shape:   types.ShapeRect,
		Color:   bulletColor,
		Alpha:   1.0,
		Visible: true,
	})
	ecs.AddComponent(em, entityID, &components.PlayerBulletComponent{
		AngleOffset: angleOffset,
	})

	return entityID, nil
}

// NewEnemyBulletEntity 根据弹幕生成器产出的子弹描述创建敌人子弹实体
// 子弹为 Size × Size 的正方形碰撞盒
func NewEnemyBulletEntity(em *ecs.EntityManager, bullet pattern.Bullet) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if bullet.Size <= 0 {
		return 0, fmt.Errorf("enemy bullet size must be positive, got %f", bullet.Size)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: bullet.X, Y: bullet.Y})
	ecs.AddComponent(em, entityID, &components.VelocityComponent{VX: bullet.VX, VY: bullet.VY})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  bullet.Size,
		Height: bullet.Size,
	})
	ecs.AddComponent(em, entityID, &components.VisualComponent{
		Shape:   types.ShapeCircle,
		Color:   bullet.Color,
		Alpha:   1.0,
		Visible: true,
	})
	ecs.AddComponent(em, entityID, &components.EnemyBulletComponent{
		Emitter: bullet.Emitter,
	})

	return entityID, nil
}
