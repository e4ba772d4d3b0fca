package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/pattern"
	"github.com/decker502/spacedefender/pkg/types"
)

const epsilon = 1e-9

// testWorld 组装测试用的系统集合
type testWorld struct {
	em         *ecs.EntityManager
	cfg        *config.GameplayConfig
	table      *config.EnemyTable
	score      *game.ScoreEngine
	dispatcher *event.Dispatcher
	player     *PlayerSystem
	enemies    *EnemySystem
	collision  *CollisionSystem
	phase      float64
}

// newTestWorld 创建测试环境，掉落概率默认为 0 以保证结果确定
func newTestWorld(t *testing.T) *testWorld {
	t.Helper()

	cfg := config.DefaultGameplayConfig()
	cfg.PowerUp.DropChance = 0
	return newTestWorldWithConfig(t, cfg)
}

func newTestWorldWithConfig(t *testing.T, cfg *config.GameplayConfig) *testWorld {
	t.Helper()

	table, err := config.NewEnemyTable(cfg)
	if err != nil {
		t.Fatalf("NewEnemyTable failed: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	generator, err := pattern.NewGenerator(table, cfg.Patterns, rng)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}

	w := &testWorld{
		em:         ecs.NewEntityManager(),
		cfg:        cfg,
		table:      table,
		score:      game.NewScoreEngine(cfg.Score),
		dispatcher: event.NewDispatcher(),
	}
	w.player = NewPlayerSystem(w.em, cfg, w.score, w.dispatcher)
	w.enemies = NewEnemySystem(w.em, cfg, w.score, generator, rng, func() float64 { return w.phase }, w.dispatcher)
	collision, err := NewCollisionSystem(w.em, cfg, w.score, w.player, w.enemies, w.dispatcher)
	if err != nil {
		t.Fatalf("NewCollisionSystem failed: %v", err)
	}
	w.collision = collision
	return w
}

func (w *testWorld) spawnPlayer(t *testing.T) ecs.EntityID {
	t.Helper()
	id, err := entities.NewPlayerEntity(w.em, w.cfg)
	if err != nil {
		t.Fatalf("NewPlayerEntity failed: %v", err)
	}
	return id
}

func (w *testWorld) spawnEnemy(t *testing.T, et types.EnemyType, x, y float64, movement types.MovementPattern) ecs.EntityID {
	t.Helper()
	id, err := entities.NewEnemyEntity(w.em, w.table, et, x, y, movement)
	if err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}
	return id
}

func (w *testWorld) spawnEnemyBullet(t *testing.T, x, y, size float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewEnemyBulletEntity(w.em, pattern.Bullet{X: x, Y: y, Size: size, Emitter: types.EnemySmall})
	if err != nil {
		t.Fatalf("NewEnemyBulletEntity failed: %v", err)
	}
	return id
}

func position(t *testing.T, em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	t.Helper()
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		t.Fatalf("entity %d has no PositionComponent", id)
	}
	return pos
}

// effectsOfKind 返回指定类型的存活特效
func effectsOfKind(em *ecs.EntityManager, kind components.EffectKind) []ecs.EntityID {
	var result []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith1[*components.EffectComponent](em) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](em, id)
		if effect.Kind == kind {
			result = append(result, id)
		}
	}
	return result
}

// recorder 记录收到的事件
type recorder struct {
	events []event.Event
}

func (r *recorder) OnEvent(e event.Event) {
	r.events = append(r.events, e)
}

func (w *testWorld) record(eventTypes ...event.EventType) *recorder {
	r := &recorder{}
	for _, et := range eventTypes {
		w.dispatcher.Subscribe(et, r)
	}
	return r
}
