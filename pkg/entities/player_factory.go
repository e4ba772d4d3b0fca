package entities

import (
	"fmt"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/types"
)

// NewPlayerEntity 创建玩家飞船实体
// 飞船水平居中，底边距场地底部 BottomMargin 像素，初始火力等级 1
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置
//
// 返回:
//   - ecs.EntityID: 创建的玩家实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewPlayerEntity(em *ecs.EntityManager, cfg *config.GameplayConfig) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("gameplay config cannot be nil")
	}

	pc := cfg.Player
	shipColor, err := config.ParseHexColor(pc.Color)
	if err != nil {
		return 0, fmt.Errorf("player color: %w", err)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: cfg.Field.Width/2 - pc.Width/2,
		Y: cfg.Field.Height - pc.Height - pc.BottomMargin,
	})
	ecs.AddComponent(em, entityID, &components.CollisionComponent{
		Width:  pc.Width,
		Height: pc.Height,
	})
	ecs.AddComponent(em, entityID, &components.VisualComponent{
		Shape:   types.ShapeTriangleUp,
		Color:   shipColor,
		Alpha:   1.0,
		Visible: true,
	})
	ecs.AddComponent(em, entityID, &components.PlayerComponent{
		PowerLevel: 1,
	})

	return entityID, nil
}
