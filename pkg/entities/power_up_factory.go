package entities

import (
	"fmt"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/types"
)

// NewPowerUpEntity 创建强化道具实体
// 道具匀速下落，闪烁颜色由快照按游戏时钟计算
func NewPowerUpEntity(em *ecs.EntityManager, cfg *config.GameplayConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("gameplay config cannot be nil")
	}

	pc := cfg.PowerUp
	itemColor, err := config.ParseHexColor(pc.Color)
	if err != nil {
		return 0, fmt.Errorf("power-up color: %w", err)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.VelocityComponent{VX: 0, VY: pc.Speed})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  pc.Size,
		Height: pc.Size,
	})
	ecs.AddComponent(em, entityID, &components.VisualComponent{
		Shape:   types.ShapeStar,
		Color:   itemColor,
		Alpha:   1.0,
		Visible: true,
	})
	ecs.AddComponent(em, entityID, &components.PowerUpComponent{})

	return entityID, nil
}
