package types

// Shape 渲染形状选择器
// 由实体类型推导，宿主据此绘制，不需要再了解游戏逻辑
type Shape int

const (
	ShapeNone         Shape = iota
	ShapeTriangleUp         // 玩家飞船
	ShapeTriangleDown       // 小型敌人
	ShapeDiamond            // 中型敌人
	ShapeHexagon            // 大型敌人
	ShapeOctagon            // Boss
	ShapeRect               // 玩家子弹
	ShapeCircle             // 敌人子弹
	ShapeStar               // 强化道具
	ShapeDisc               // 爆炸（实心圆）
	ShapeRing               // 擦弹特效（圆环）
	ShapeDot                // 背景星星
)

// ShapeForEnemy 返回敌人类型对应的绘制形状
func ShapeForEnemy(t EnemyType) Shape {
	switch t {
	case EnemySmall:
		return ShapeTriangleDown
	case EnemyMedium:
		return ShapeDiamond
	case EnemyLarge:
		return ShapeHexagon
	case EnemyBoss:
		return ShapeOctagon
	default:
		return ShapeNone
	}
}
