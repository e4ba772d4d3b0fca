package components

// EffectKind 特效类型
type EffectKind int

const (
	// EffectExplosion 实心扩散圆，半径过半后开始淡出
	EffectExplosion EffectKind = iota
	// EffectGraze 擦弹圆环，从一开始就淡出
	EffectGraze
)

// EffectComponent 扩散淡出特效状态
type EffectComponent struct {
	Kind            EffectKind
	Radius          float64
	MaxRadius       float64
	ExpandSpeed     float64 // 像素/秒
	Alpha           float64
	FadeSpeed       float64 // 透明度/秒
	FadeStartRadius float64 // 半径超过该值后开始淡出
}

// Finished 判断特效是否已结束
// 爆炸在完全透明时结束；擦弹圆环在透明或达到最大半径时结束
func (e *EffectComponent) Finished() bool {
	if e.Alpha <= 0 {
		return true
	}
	return e.Kind == EffectGraze && e.Radius >= e.MaxRadius
}
