package entities

import (
	"fmt"
	"math/rand"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
)

// NewStarfield 创建背景星空，返回按层排列的星星实体ID
// 第 i 层（从 0 开始）速度 (i+1)×BaseSpeed，尺寸 i+1，亮度 BaseBrightness + i×BrightnessStep
func NewStarfield(em *ecs.EntityManager, cfg *config.GameplayConfig, rng *rand.Rand) ([]ecs.EntityID, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("gameplay config cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}

	bg := cfg.Background
	ids := make([]ecs.EntityID, 0, bg.Layers*bg.StarsPerLayer)

	for layer := 0; layer < bg.Layers; layer++ {
		star := components.StarComponent{
			Size:       float64(layer + 1),
			Speed:      float64(layer+1) * bg.BaseSpeed,
			Brightness: bg.BaseBrightness + float64(layer)*bg.BrightnessStep,
		}
		for i := 0; i < bg.StarsPerLayer; i++ {
			entityID := em.CreateEntity()
			ecs.AddComponent(em, entityID, &components.PositionComponent{
				X: rng.Float64() * cfg.Field.Width,
				Y: rng.Float64() * cfg.Field.Height,
			})
			s := star
			ecs.AddComponent(em, entityID, &s)
			ids = append(ids, entityID)
		}
	}

	return ids, nil
}
