package entities

import (
	"fmt"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/types"
)

// NewEnemyEntity 创建敌人实体
// 属性在创建时从敌人属性表拷贝，之后固定不变
//
// 参数:
//   - em: 实体管理器
//   - table: 敌人属性表
//   - enemyType: 敌人类型，未知类型返回错误且不创建实体
//   - x, y: 左上角坐标
//   - movement: 移动方式
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemyEntity(em *ecs.EntityManager, table *config.EnemyTable, enemyType types.EnemyType, x, y float64, movement types.MovementPattern) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if table == nil {
		return 0, fmt.Errorf("enemy table cannot be nil")
	}

	stats, err := table.Stats(enemyType)
	if err != nil {
		return 0, fmt.Errorf("failed to create enemy: %w", err)
	}
	if int(movement) < 0 || int(movement) >= types.MovementPatternCount {
		return 0, fmt.Errorf("failed to create enemy: %w: %d", types.ErrUnknownMovement, int(movement))
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  stats.Width,
		Height: stats.Height,
	})
	ecs.AddComponent(em, entityID, &components.VisualComponent{
		Shape:   types.ShapeForEnemy(enemyType),
		Color:   stats.Color,
		Alpha:   1.0,
		Visible: true,
	})
	ecs.AddComponent(em, entityID, &components.EnemyComponent{
		Type:          enemyType,
		Health:        stats.Health,
		MaxHealth:     stats.Health,
		Speed:         stats.Speed,
		Points:        stats.Points,
		ShootInterval: stats.ShootInterval,
		Pattern:       stats.Pattern,
		Movement:      movement,
		Direction:     1,
		CenterX:       x,
	})

	return entityID, nil
}
