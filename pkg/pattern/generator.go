// Package pattern 生成敌人弹幕
//
// Generator 是纯函数式的：给定弹幕类型、发射点、发射者类型和相位，
// 返回一组子弹描述，由调用方加入场景。
// 螺旋弹幕的相位由调用方传入（通常是游戏时钟 × π），生成器不读取全局时钟；
// 随机弹幕使用注入的 *rand.Rand，便于复现。
package pattern

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/spacedefender/pkg/config"
	"github.com/decker502/spacedefender/pkg/types"
)

// Bullet 单颗敌人子弹的生成描述
// X, Y 为子弹左上角，速度单位像素/秒
type Bullet struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Color   color.RGBA
	Emitter types.EnemyType
}

// Generator 弹幕生成器
type Generator struct {
	table  *config.EnemyTable
	params config.PatternConfig
	rng    *rand.Rand
}

// NewGenerator 创建弹幕生成器
// table 提供发射者的子弹样式，rng 用于随机弹幕
func NewGenerator(table *config.EnemyTable, params config.PatternConfig, rng *rand.Rand) (*Generator, error) {
	if table == nil {
		return nil, fmt.Errorf("enemy table cannot be nil")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	return &Generator{table: table, params: params, rng: rng}, nil
}

// Generate 在 (originX, originY) 生成一组弹幕
// 子弹左上角为 (originX - size/2, originY)；环形类弹幕第 i 颗的速度为 (sin a, cos a) × 径向速度
//
// 参数:
//   - kind: 弹幕类型
//   - originX, originY: 发射点（通常是敌人底边中点）
//   - emitter: 发射者类型，决定子弹大小和颜色
//   - phase: 螺旋弹幕的起始角（弧度），其他类型忽略
//
// 返回:
//   - []Bullet: 生成的子弹，顺序固定
//   - error: 未知的弹幕类型或发射者类型
func (g *Generator) Generate(kind types.PatternType, originX, originY float64, emitter types.EnemyType, phase float64) ([]Bullet, error) {
	stats, err := g.table.Stats(emitter)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s pattern: %w", kind, err)
	}

	base := Bullet{
		X:       originX - stats.BulletSize/2,
		Y:       originY,
		Size:    stats.BulletSize,
		Color:   stats.BulletColor,
		Emitter: emitter,
	}

	p := g.params
	switch kind {
	case types.PatternSingle:
		b := base
		b.VY = p.AimedSpeed
		return []Bullet{b}, nil

	case types.PatternStraight:
		bullets := make([]Bullet, 0, 3)
		for _, offset := range []float64{0, -p.LateralOffset, p.LateralOffset} {
			b := base
			b.X += offset
			b.VY = p.AimedSpeed
			bullets = append(bullets, b)
		}
		return bullets, nil

	case types.PatternCircle:
		return g.ring(base, p.CircleCount, 0), nil

	case types.PatternSpiral:
		return g.ring(base, p.SpiralCount, phase), nil

	case types.PatternRandom:
		bullets := make([]Bullet, 0, p.RandomCount)
		for i := 0; i < p.RandomCount; i++ {
			bullets = append(bullets, radial(base, g.rng.Float64()*2*math.Pi, p.RadialSpeed))
		}
		return bullets, nil

	default:
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownPattern, int(kind))
	}
}

// ring 生成 count 颗等角分布的子弹，第 i 颗角度为 phase + 2π·i/count
func (g *Generator) ring(base Bullet, count int, phase float64) []Bullet {
	bullets := make([]Bullet, 0, count)
	step := 2 * math.Pi / float64(count)
	for i := 0; i < count; i++ {
		bullets = append(bullets, radial(base, phase+step*float64(i), g.params.RadialSpeed))
	}
	return bullets
}

func radial(base Bullet, angle, speed float64) Bullet {
	base.VX = math.Sin(angle) * speed
	base.VY = math.Cos(angle) * speed
	return base
}
