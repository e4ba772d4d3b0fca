package components

// PlayerComponent 玩家飞船状态
type PlayerComponent struct {
	ShootTimer      float64 // 距上次射击累计的时间（秒）
	Invincible      bool
	InvincibleTimer float64
	PowerLevel      int     // 1: 单发, 2: 双发, 3: 三发
	PowerTimer      float64 // 火力等级 > 1 时累计，到期降回 1
}
