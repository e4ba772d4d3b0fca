package systems

import (
	"math/rand"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
)

// StarfieldSystem 滚动背景星空
// 越过底边的星星回到顶部的随机 X 位置
type StarfieldSystem struct {
	em    *ecs.EntityManager
	field config.FieldConfig
	rng   *rand.Rand
}

// NewStarfieldSystem 创建星空系统
func NewStarfieldSystem(em *ecs.EntityManager, field config.FieldConfig, rng *rand.Rand) *StarfieldSystem {
	return &StarfieldSystem{em: em, field: field, rng: rng}
}

// Update 按各层速度向下滚动星星
func (s *StarfieldSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.StarComponent, *components.PositionComponent](s.em) {
		star, _ := ecs.GetComponent[*components.StarComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)

		pos.Y += star.Speed * deltaTime
		if pos.Y > s.field.Height {
			pos.Y = 0
			pos.X = s.rng.Float64() * s.field.Width
		}
	}
}
