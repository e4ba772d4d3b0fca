package components

// PositionComponent 存储实体左上角的场地坐标（像素）
// 特效实体（爆炸、擦弹）例外，其坐标表示圆心
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 存储实体的线速度（像素/秒）
// 由 MovementSystem 积分，用于子弹和道具
type VelocityComponent struct {
	VX float64
	VY float64
}
