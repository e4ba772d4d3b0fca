package systems

import (
	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/ecs"
)

// EffectSystem 推进爆炸和擦弹特效的扩散与淡出，结束后移除
type EffectSystem struct {
	em *ecs.EntityManager
}

// NewEffectSystem 创建特效系统
func NewEffectSystem(em *ecs.EntityManager) *EffectSystem {
	return &EffectSystem{em: em}
}

// Update 更新所有特效
func (s *EffectSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.EffectComponent](s.em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](s.em, id)

		effect.Radius += effect.ExpandSpeed * deltaTime
		if effect.Radius > effect.FadeStartRadius {
			effect.Alpha -= effect.FadeSpeed * deltaTime
		}

		if visual, ok := ecs.GetComponent[*components.VisualComponent](s.em, id); ok {
			visual.Alpha = max(0, effect.Alpha)
		}

		if effect.Finished() {
			s.em.DestroyEntity(id)
		}
	}
}
