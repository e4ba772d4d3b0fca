package simulation

import (
	"image/color"
	"math"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/types"
)

// RenderItem 一个可直接绘制的图元
// 矩形类图元以 (X, Y) 为左上角、Width×Height 为尺寸；特效以 (X, Y) 为圆心、Radius 为半径
type RenderItem struct {
	Shape   types.Shape
	X, Y    float64
	Width   float64
	Height  float64
	Radius  float64
	Color   color.RGBA
	Alpha   float64
	Visible bool

	// Health 敌人剩余血量比例 [0, 1]，其它图元为 0
	Health float64
	// Boss 是否为 Boss，宿主据此绘制血条
	Boss bool
}

// Snapshot 某一帧的完整绘制数据，各列表按生成顺序排列
type Snapshot struct {
	Width  float64
	Height float64
	Phase  game.Phase

	Player        []RenderItem
	Enemies       []RenderItem
	PlayerBullets []RenderItem
	EnemyBullets  []RenderItem
	PowerUps      []RenderItem
	Effects       []RenderItem
	Stars         []RenderItem
}

// Snapshot 返回当前帧的绘制数据，任意阶段都可调用
// 暂停时返回暂停前最后一帧的状态
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Width:  s.cfg.Field.Width,
		Height: s.cfg.Field.Height,
		Phase:  s.phase,
	}

	for _, id := range ecs.GetEntitiesWith1[*components.StarComponent](s.em) {
		star, _ := ecs.GetComponent[*components.StarComponent](s.em, id)
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.em, id)
		if !ok {
			continue
		}
		snap.Stars = append(snap.Stars, RenderItem{
			Shape:   types.ShapeDot,
			X:       pos.X,
			Y:       pos.Y,
			Width:   star.Size,
			Height:  star.Size,
			Color:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
			Alpha:   star.Brightness,
			Visible: true,
		})
	}

	snap.Player = s.boxItems(ecs.GetEntitiesWith1[*components.PlayerComponent](s.em))
	snap.PlayerBullets = s.boxItems(ecs.GetEntitiesWith1[*components.PlayerBulletComponent](s.em))
	snap.EnemyBullets = s.boxItems(ecs.GetEntitiesWith1[*components.EnemyBulletComponent](s.em))

	enemies := ecs.GetEntitiesWith1[*components.EnemyComponent](s.em)
	snap.Enemies = s.boxItems(enemies)
	for i, id := range enemies {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.em, id)
		if enemy.MaxHealth > 0 {
			snap.Enemies[i].Health = math.Max(0, float64(enemy.Health)/float64(enemy.MaxHealth))
		}
		snap.Enemies[i].Boss = enemy.Type == types.EnemyBoss
	}

	snap.PowerUps = s.boxItems(ecs.GetEntitiesWith1[*components.PowerUpComponent](s.em))
	itemColor := s.powerUpColor
	if int(math.Floor(s.clock/s.cfg.PowerUp.BlinkInterval))%2 == 0 {
		itemColor = s.powerUpBlinkColor
	}
	for i := range snap.PowerUps {
		snap.PowerUps[i].Color = itemColor
	}

	for _, id := range ecs.GetEntitiesWith1[*components.EffectComponent](s.em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](s.em, id)
		pos, okPos := ecs.GetComponent[*components.PositionComponent](s.em, id)
		visual, okVisual := ecs.GetComponent[*components.VisualComponent](s.em, id)
		if !okPos || !okVisual {
			continue
		}
		snap.Effects = append(snap.Effects, RenderItem{
			Shape:   visual.Shape,
			X:       pos.X,
			Y:       pos.Y,
			Radius:  effect.Radius,
			Color:   visual.Color,
			Alpha:   visual.Alpha,
			Visible: visual.Visible,
		})
	}

	return snap
}

// boxItems 为带碰撞盒的实体生成矩形类图元，缺少组件的实体生成不可见的空图元
// 返回的切片与 ids 一一对应，以便调用方按下标补充字段
func (s *Simulation) boxItems(ids []ecs.EntityID) []RenderItem {
	items := make([]RenderItem, 0, len(ids))
	for _, id := range ids {
		pos, okPos := ecs.GetComponent[*components.PositionComponent](s.em, id)
		col, okCol := ecs.GetComponent[*components.CollisionComponent](s.em, id)
		visual, okVisual := ecs.GetComponent[*components.VisualComponent](s.em, id)
		if !okPos || !okCol || !okVisual {
			items = append(items, RenderItem{})
			continue
		}
		items = append(items, RenderItem{
			Shape:   visual.Shape,
			X:       pos.X,
			Y:       pos.Y,
			Width:   col.Width,
			Height:  col.Height,
			Color:   visual.Color,
			Alpha:   visual.Alpha,
			Visible: visual.Visible,
		})
	}
	return items
}
