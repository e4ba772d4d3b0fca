package components

import "github.com/decker502/spacedefender/pkg/types"

// PlayerBulletComponent 标识玩家子弹
type PlayerBulletComponent struct {
	AngleOffset float64 // 横向偏移系数，横向速度 = 子弹速度 × AngleOffset
}

// EnemyBulletComponent 标识敌人子弹
type EnemyBulletComponent struct {
	Emitter types.EnemyType // 发射者类型，决定样式
	Grazed  bool            // 已被擦弹计分，同一颗子弹只计一次
}
