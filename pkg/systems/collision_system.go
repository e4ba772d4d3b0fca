package systems

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/spacedefender/pkg/components"
	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/ecs"
	"github.com/decker502/spacedefender/pkg/entities"
	"github.com/decker502/spacedefender/pkg/event"
	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/utils"
)

// CollisionSystem 每帧对子弹、敌人和道具做两两 AABB 检测
//
// 处理顺序：
//  1. 敌人子弹 vs 玩家：先判定擦弹，再判定命中
//  2. 玩家子弹 vs 敌人：每颗子弹只对生成顺序中第一个相交的敌人造成伤害
//  3. 玩家 vs 强化道具
//
// 场上没有玩家时整体跳过。
type CollisionSystem struct {
	em         *ecs.EntityManager
	cfg        *config.GameplayConfig
	score      *game.ScoreEngine
	player     *PlayerSystem
	enemies    *EnemySystem
	dispatcher *event.Dispatcher

	hitColor    color.RGBA
	pickupColor color.RGBA
}

// NewCollisionSystem 创建碰撞系统
// 命中和拾取特效颜色格式错误时返回错误
func NewCollisionSystem(em *ecs.EntityManager, cfg *config.GameplayConfig, score *game.ScoreEngine,
	player *PlayerSystem, enemies *EnemySystem, dispatcher *event.Dispatcher) (*CollisionSystem, error) {
	hitColor, err := config.ParseHexColor(cfg.Effects.HitColor)
	if err != nil {
		return nil, fmt.Errorf("hit color: %w", err)
	}
	pickupColor, err := config.ParseHexColor(cfg.Effects.PickupColor)
	if err != nil {
		return nil, fmt.Errorf("pickup color: %w", err)
	}

	return &CollisionSystem{
		em:          em,
		cfg:         cfg,
		score:       score,
		player:      player,
		enemies:     enemies,
		dispatcher:  dispatcher,
		hitColor:    hitColor,
		pickupColor: pickupColor,
	}, nil
}

// Update 执行一轮碰撞检测
func (s *CollisionSystem) Update() {
	playerID, ok := FindPlayer(s.em)
	if !ok {
		return
	}

	s.resolveEnemyBullets(playerID)
	s.resolvePlayerBullets()
	s.resolvePowerUps(playerID)
}

// resolveEnemyBullets 擦弹：进入擦弹框但未进入判定框且未擦过；命中：进入判定框且玩家不处于无敌
// 擦弹过的子弹仍可在之后命中，但不会再次计入擦弹
func (s *CollisionSystem) resolveEnemyBullets(playerID ecs.EntityID) {
	playerBox, ok := boundsOf(s.em, playerID)
	if !ok {
		return
	}
	grazeBox := playerBox.Inflate(s.cfg.Player.GrazeMargin)
	hitbox := playerBox.CentralHalf()

	for _, bulletID := range ecs.GetEntitiesWith1[*components.EnemyBulletComponent](s.em) {
		bulletBox, ok := boundsOf(s.em, bulletID)
		if !ok {
			continue
		}
		bullet, _ := ecs.GetComponent[*components.EnemyBulletComponent](s.em, bulletID)

		inHitbox := utils.Intersects(bulletBox, hitbox)

		if !bullet.Grazed && utils.Intersects(bulletBox, grazeBox) && !inHitbox {
			bullet.Grazed = true
			bonus := s.score.Graze()
			s.spawnGrazeEffect(bulletBox.X, bulletBox.Y)
			dispatch(s.dispatcher, event.Grazed, event.GrazedData{
				Count: s.score.GrazeCount(),
				Bonus: bonus,
			})
		}

		if !inHitbox {
			continue
		}
		if !s.player.TakeDamage(playerID) {
			continue
		}

		cx, cy := playerBox.Center()
		s.spawnExplosion(cx, cy, s.hitColor)
		s.em.DestroyEntity(bulletID)
	}
}

// resolvePlayerBullets 子弹命中任意敌人后即被移除，不穿透
func (s *CollisionSystem) resolvePlayerBullets() {
	enemies := ecs.GetEntitiesWith1[*components.EnemyComponent](s.em)

	for _, bulletID := range ecs.GetEntitiesWith1[*components.PlayerBulletComponent](s.em) {
		bulletBox, ok := boundsOf(s.em, bulletID)
		if !ok {
			continue
		}

		for _, enemyID := range enemies {
			if !s.em.IsAlive(enemyID) {
				continue
			}
			enemyBox, ok := boundsOf(s.em, enemyID)
			if !ok || !utils.Intersects(bulletBox, enemyBox) {
				continue
			}

			if s.enemies.TakeDamage(enemyID) {
				c := s.hitColor
				if visual, ok := ecs.GetComponent[*components.VisualComponent](s.em, enemyID); ok {
					c = visual.Color
				}
				cx, cy := enemyBox.Center()
				s.spawnExplosion(cx, cy, c)
				s.score.ContinueCombo()
				s.em.DestroyEntity(enemyID)
			}
			s.em.DestroyEntity(bulletID)
			break
		}
	}
}

// resolvePowerUps 道具与玩家完整碰撞盒相交即被拾取
func (s *CollisionSystem) resolvePowerUps(playerID ecs.EntityID) {
	playerBox, ok := boundsOf(s.em, playerID)
	if !ok {
		return
	}

	for _, itemID := range ecs.GetEntitiesWith1[*components.PowerUpComponent](s.em) {
		itemBox, ok := boundsOf(s.em, itemID)
		if !ok || !utils.Intersects(itemBox, playerBox) {
			continue
		}

		s.player.PowerUp(playerID)
		cx, cy := playerBox.Center()
		s.spawnExplosion(cx, cy, s.pickupColor)
		s.em.DestroyEntity(itemID)
	}
}

func (s *CollisionSystem) spawnExplosion(x, y float64, c color.RGBA) {
	if _, err := entities.NewExplosionEntity(s.em, s.cfg, x, y, c); err != nil {
		log.Printf("[CollisionSystem] 创建爆炸特效失败: %v", err)
	}
}

func (s *CollisionSystem) spawnGrazeEffect(x, y float64) {
	if _, err := entities.NewGrazeEffectEntity(s.em, s.cfg, x, y); err != nil {
		log.Printf("[CollisionSystem] 创建擦弹特效失败: %v", err)
	}
}
