package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/types"
)

// NewExplosionEntity 创建爆炸特效实体
// (x, y) 为圆心；半径超过最大半径的一半后开始淡出
//
// 参数:
//   - em: 实体管理器
//   - cfg: 玩法配置
//   - x, y: 爆炸中心
//   - c: 爆炸颜色（敌人颜色、被击中色或拾取色）
//
// 返回:
//   - ecs.EntityID: 创建的特效实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewExplosionEntity(em *ecs.EntityManager, cfg *config.GameplayConfig, x, y float64, c color.RGBA) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("gameplay config cannot be nil")
	}

	ec := cfg.Effects.Explosion
	return newEffectEntity(em, x, y, types.ShapeDisc, c, &components.EffectComponent{
		Kind:            components.EffectExplosion,
		Radius:          ec.StartRadius,
		MaxRadius:       ec.MaxRadius,
		ExpandSpeed:     ec.ExpandSpeed,
		Alpha:           1.0,
		FadeSpeed:       ec.FadeSpeed,
		FadeStartRadius: ec.MaxRadius / 2,
	}), nil
}

// NewGrazeEffectEntity 创建擦弹圆环特效实体
// 圆环从创建起即开始淡出
func NewGrazeEffectEntity(em *ecs.EntityManager, cfg *config.GameplayConfig, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("gameplay config cannot be nil")
	}

	ringColor, err := config.ParseHexColor(cfg.Effects.GrazeColor)
	if err != nil {
		return 0, fmt.Errorf("graze color: %w", err)
	}

	gc := cfg.Effects.Graze
	return newEffectEntity(em, x, y, types.ShapeRing, ringColor, &components.EffectComponent{
		Kind:            components.EffectGraze,
		Radius:          gc.StartRadius,
		MaxRadius:       gc.MaxRadius,
		ExpandSpeed:     gc.ExpandSpeed,
		Alpha:           1.0,
		FadeSpeed:       gc.FadeSpeed,
		FadeStartRadius: 0,
	}), nil
}

func newEffectEntity(em *ecs.EntityManager, x, y float64, shape types.Shape, c color.RGBA, effect *components.EffectComponent) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.VisualComponent{
		Shape:   shape,
		Color:   c,
		Alpha:   effect.Alpha,
		Visible: true,
	})
	ecs.AddComponent(em, entityID, effect)

	return entityID
}
