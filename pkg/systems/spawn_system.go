package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/types"
)

// SpawnSystem 按计时生成普通敌人和 Boss
//
// 普通敌人：计时超过当前间隔时按权重随机生成一只，间隔随等级缩短：
//
//	interval = max(MinInterval, InitialInterval - IntervalStep × (level - 1))
//
// Boss：每隔 BossInterval 秒在顶部中央生成一只。
type SpawnSystem struct {
	em         *ecs.EntityManager
	cfg        *config.GameplayConfig
	table      *config.EnemyTable
	score      *game.ScoreEngine
	rng        *rand.Rand
	dispatcher *event.Dispatcher

	weighted []weightedType

	enemyTimer float64
	bossTimer  float64
	interval   float64
}

type weightedType struct {
	enemyType types.EnemyType
	weight    float64
}

// NewSpawnSystem 创建生成系统
// 权重按 small, medium, large 的固定顺序累加，保证同一随机序列得到相同结果
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, table *config.EnemyTable,
	score *game.ScoreEngine, rng *rand.Rand, dispatcher *event.Dispatcher) *SpawnSystem {
	s := &SpawnSystem{
		em:         em,
		cfg:        cfg,
		table:      table,
		score:      score,
		rng:        rng,
		dispatcher: dispatcher,
	}

	for _, et := range types.AllEnemyTypes() {
		if w, ok := cfg.Spawn.Weights[et.String()]; ok && w > 0 {
			s.weighted = append(s.weighted, weightedType{enemyType: et, weight: w})
		}
	}

	s.Reset()
	return s
}

// Reset 清零两个计时器并恢复初始生成间隔
func (s *SpawnSystem) Reset() {
	s.enemyTimer = 0
	s.bossTimer = 0
	s.interval = s.cfg.Spawn.InitialInterval
}

// Interval 返回当前的普通敌人生成间隔（秒）
func (s *SpawnSystem) Interval() float64 {
	return s.interval
}

// UpdateEnemies 推进普通敌人计时器，超过间隔时生成一只并按等级调整间隔
func (s *SpawnSystem) UpdateEnemies(deltaTime float64) {
	s.enemyTimer += deltaTime
	if s.enemyTimer <= s.interval {
		return
	}

	s.spawnEnemy()
	s.enemyTimer = 0

	sc := s.cfg.Spawn
	s.interval = math.Max(sc.MinInterval, sc.InitialInterval-sc.IntervalStep*float64(s.score.Level()-1))
}

// UpdateBoss 推进 Boss 计时器，超过周期时生成 Boss
func (s *SpawnSystem) UpdateBoss(deltaTime float64) {
	s.bossTimer += deltaTime
	if s.bossTimer <= s.cfg.Spawn.BossInterval {
		return
	}

	s.spawnBoss()
	s.bossTimer = 0
}

// Update 依次推进普通敌人和 Boss 计时器
func (s *SpawnSystem) Update(deltaTime float64) {
	s.UpdateEnemies(deltaTime)
	s.UpdateBoss(deltaTime)
}

func (s *SpawnSystem) spawnEnemy() {
	enemyType := s.pickType()
	sc := s.cfg.Spawn
	x := s.rng.Float64()*(s.cfg.Field.Width-2*sc.MarginX) + sc.MarginX
	movement := types.MovementPattern(s.rng.Intn(types.MovementPatternCount))

	if _, err := entities.NewEnemyEntity(s.em, s.table, enemyType, x, sc.SpawnY, movement); err != nil {
		log.Printf("[SpawnSystem] 生成敌人失败: %v", err)
	}
}

func (s *SpawnSystem) spawnBoss() {
	movement := types.MovementPattern(s.rng.Intn(types.MovementPatternCount))
	x := s.cfg.Field.Width / 2

	if _, err := entities.NewEnemyEntity(s.em, s.table, types.EnemyBoss, x, s.cfg.Spawn.BossY, movement); err != nil {
		log.Printf("[SpawnSystem] 生成 Boss 失败: %v", err)
		return
	}

	log.Printf("[SpawnSystem] Boss 出现 (移动方式: %s)", movement)
	dispatch(s.dispatcher, event.BossSpawned, nil)
}

// pickType 按权重随机选择普通敌人类型
func (s *SpawnSystem) pickType() types.EnemyType {
	total := 0.0
	for _, w := range s.weighted {
		total += w.weight
	}

	r := s.rng.Float64() * total
	for _, w := range s.weighted {
		if r < w.weight {
			return w.enemyType
		}
		r -= w.weight
	}
	return s.weighted[len(s.weighted)-1].enemyType
}
