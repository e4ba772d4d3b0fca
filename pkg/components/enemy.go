package components

import "github.com/decker502/spacedefender/pkg/types"

// EnemyComponent 敌人状态
// 属性在创建时从 EnemyTable 拷贝，之后只有计时器和血量会变化
type EnemyComponent struct {
	Type          types.EnemyType
	Health        int
	MaxHealth     int
	Speed         float64
	Points        int
	ShootInterval float64
	ShootTimer    float64
	Pattern       types.PatternType

	Movement      types.MovementPattern
	MovementTimer float64
	Direction     float64 // 之字形移动方向，+1 向右，-1 向左
	CenterX       float64 // 圆周移动的中心 X
}
