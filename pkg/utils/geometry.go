package utils

// Rect 左上角锚定的轴对齐矩形（碰撞盒）
//
// 所有实体的位置都是左上角坐标，尺寸为宽高，与碰撞组件一致。
type Rect struct {
	X, Y float64 // 左上角坐标
	W, H float64 // 宽高
}

// NewRect 创建矩形
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right 返回右边界 X 坐标
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom 返回下边界 Y 坐标
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center 返回矩形中心点
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Inflate 返回四周各向外扩展 margin 的矩形（margin 为负时向内收缩）
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		X: r.X - margin,
		Y: r.Y - margin,
		W: r.W + margin*2,
		H: r.H + margin*2,
	}
}

// CentralHalf 返回收缩到中心一半大小的矩形
// 用作玩家的精确受击判定框
func (r Rect) CentralHalf() Rect {
	return Rect{
		X: r.X + r.W/4,
		Y: r.Y + r.H/4,
		W: r.W / 2,
		H: r.H / 2,
	}
}

// Intersects 检查两个矩形是否重叠（AABB 碰撞检测）
//
// 采用严格不等式：仅边缘相接不算碰撞。
func Intersects(a, b Rect) bool {
	return a.X < b.Right() &&
		a.Right() > b.X &&
		a.Y < b.Bottom() &&
		a.Bottom() > b.Y
}

// Clamp 将数值限制在 [min, max] 之间
func Clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
