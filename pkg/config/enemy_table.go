package config

import (
	"fmt"
	"image/color"

	"github.com/decker502/spacedefender/pkg/types"
)

// EnemyStats 单个敌人类型解析后的属性
// 敌人在创建时从表中拷贝一份，之后不再受表影响
type EnemyStats struct {
	Type          types.EnemyType
	Width         float64
	Height        float64
	Speed         float64
	Health        int
	Color         color.RGBA
	Points        int
	ShootInterval float64
	Pattern       types.PatternType
	BulletSize    float64
	BulletColor   color.RGBA
}

// EnemyTable 敌人类型到属性的只读映射
type EnemyTable struct {
	stats map[types.EnemyType]EnemyStats
}

// NewEnemyTable 从玩法配置构建敌人属性表
// 配置必须已通过 ValidateGameplayConfig 校验；缺失或非法条目返回错误
func NewEnemyTable(config *GameplayConfig) (*EnemyTable, error) {
	table := &EnemyTable{stats: make(map[types.EnemyType]EnemyStats, len(types.AllEnemyTypes()))}

	for _, et := range types.AllEnemyTypes() {
		ec, ok := config.Enemies[et.String()]
		if !ok {
			return nil, fmt.Errorf("enemy table: missing stats for %s", et)
		}
		style, ok := config.BulletStyles[et.String()]
		if !ok {
			return nil, fmt.Errorf("enemy table: missing bullet style for %s", et)
		}

		pattern, err := types.ParsePatternType(ec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("enemy table: %s: %w", et, err)
		}
		bodyColor, err := ParseHexColor(ec.Color)
		if err != nil {
			return nil, fmt.Errorf("enemy table: %s: %w", et, err)
		}
		bulletColor, err := ParseHexColor(style.Color)
		if err != nil {
			return nil, fmt.Errorf("enemy table: %s bullet: %w", et, err)
		}

		table.stats[et] = EnemyStats{
			Type:          et,
			Width:         ec.Width,
			Height:        ec.Height,
			Speed:         ec.Speed,
			Health:        ec.Health,
			Color:         bodyColor,
			Points:        ec.Points,
			ShootInterval: ec.ShootInterval,
			Pattern:       pattern,
			BulletSize:    style.Size,
			BulletColor:   bulletColor,
		}
	}

	return table, nil
}

// Stats 返回指定敌人类型的属性副本
func (t *EnemyTable) Stats(et types.EnemyType) (EnemyStats, error) {
	stats, ok := t.stats[et]
	if !ok {
		return EnemyStats{}, fmt.Errorf("%w: %d", types.ErrUnknownEnemyType, int(et))
	}
	return stats, nil
}
