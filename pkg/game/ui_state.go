package game

// UIState 每帧发布给宿主的 HUD 数据
type UIState struct {
	Score         int
	Lives         int
	Level         int
	Graze         int
	Combo         int
	Multiplier    int
	ComboTier     ComboTier
	PowerFraction float64 // 火力等级 / 最大火力等级，无玩家时为 0
	Phase         Phase
}
