package event

import "github.com/decker502/spacedefender/pkg/types"

const (
	StateChanged     EventType = "StateChanged"     // Data: simulation.StateChange
	EnemyDestroyed   EventType = "EnemyDestroyed"   // Data: EnemyDestroyedData
	PlayerHit        EventType = "PlayerHit"        // Data: PlayerHitData
	Grazed           EventType = "Grazed"           // Data: GrazedData
	PowerUpCollected EventType = "PowerUpCollected" // Data: int，拾取后的火力等级
	BossSpawned      EventType = "BossSpawned"      // Data: nil
	LevelUp          EventType = "LevelUp"          // Data: int，新等级
)

// EnemyDestroyedData 敌人被击破
type EnemyDestroyedData struct {
	Type    types.EnemyType
	X, Y    float64 // 敌人中心
	Awarded int     // 计入倍率后的得分
}

// PlayerHitData 玩家被击中
type PlayerHitData struct {
	LivesLeft  int
	PowerLevel int
}

// GrazedData 擦弹成功
type GrazedData struct {
	Count int // 累计擦弹次数
	Bonus int // 本次获得的分数
}
