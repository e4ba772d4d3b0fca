package components

// PowerUpComponent 标识强化道具
type PowerUpComponent struct{}
