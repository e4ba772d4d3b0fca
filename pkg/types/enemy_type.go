// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"errors"
	"fmt"
)

// ErrUnknownEnemyType 未知敌人类型
// 构造敌人、加载配置时遇到未知类型名都返回此错误（快速失败，不做默认兜底）
var ErrUnknownEnemyType = errors.New("unknown enemy type")

// EnemyType 定义敌人的类型
// 类型在生成时确定，决定尺寸、速度、血量、分值、射击间隔和弹幕样式
type EnemyType int

const (
	// EnemyUnknown 未知敌人类型
	EnemyUnknown EnemyType = iota
	// EnemySmall 小型敌人（下三角）
	EnemySmall
	// EnemyMedium 中型敌人（菱形）
	EnemyMedium
	// EnemyLarge 大型敌人（六边形）
	EnemyLarge
	// EnemyBoss Boss（八边形，带血条）
	EnemyBoss
)

// AllEnemyTypes 返回所有合法的敌人类型（按固定顺序）
func AllEnemyTypes() []EnemyType {
	return []EnemyType{EnemySmall, EnemyMedium, EnemyLarge, EnemyBoss}
}

// enemyTypeStringMap 敌人类型到配置字符串的映射
var enemyTypeStringMap = map[EnemyType]string{
	EnemySmall:  "small",
	EnemyMedium: "medium",
	EnemyLarge:  "large",
	EnemyBoss:   "boss",
}

// stringToEnemyTypeMap 配置字符串到敌人类型的反向映射
var stringToEnemyTypeMap map[string]EnemyType

func init() {
	stringToEnemyTypeMap = make(map[string]EnemyType, len(enemyTypeStringMap))
	for et, s := range enemyTypeStringMap {
		stringToEnemyTypeMap[s] = et
	}
}

// String 返回敌人类型的配置字符串表示（用于配置文件匹配）
func (e EnemyType) String() string {
	if s, ok := enemyTypeStringMap[e]; ok {
		return s
	}
	return "unknown"
}

// IsValid 判断是否为合法的敌人类型
func (e EnemyType) IsValid() bool {
	_, ok := enemyTypeStringMap[e]
	return ok
}

// ParseEnemyType 将配置字符串转换为 EnemyType
func ParseEnemyType(s string) (EnemyType, error) {
	if et, ok := stringToEnemyTypeMap[s]; ok {
		return et, nil
	}
	return EnemyUnknown, fmt.Errorf("%w: %q", ErrUnknownEnemyType, s)
}
