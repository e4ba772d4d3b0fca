package components

// StarComponent 背景星星
// 纯装饰，不参与碰撞
type StarComponent struct {
	Size       float64
	Speed      float64
	Brightness float64
}
