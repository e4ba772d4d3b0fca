package types

import (
	"errors"
	"fmt"
)

// ErrUnknownMovement 未知移动模式
var ErrUnknownMovement = errors.New("unknown movement pattern")

// MovementPattern 敌人的移动模式，生成时随机选定后不再改变
type MovementPattern int

const (
	// MovementLinear 直线下落
	MovementLinear MovementPattern = iota
	// MovementZigzag 下落的同时左右折返
	MovementZigzag
	// MovementCircular 半速下落，X 绕中心做正弦摆动
	MovementCircular

	movementPatternCount
)

// MovementPatternCount 移动模式数量，用于随机选择
const MovementPatternCount = int(movementPatternCount)

var movementStringMap = map[MovementPattern]string{
	MovementLinear:   "linear",
	MovementZigzag:   "zigzag",
	MovementCircular: "circular",
}

// String 返回移动模式名称
func (m MovementPattern) String() string {
	if s, ok := movementStringMap[m]; ok {
		return s
	}
	return "unknown"
}

// ParseMovementPattern 将字符串转换为 MovementPattern
func ParseMovementPattern(s string) (MovementPattern, error) {
	for m, name := range movementStringMap {
		if name == s {
			return m, nil
		}
	}
	return MovementLinear, fmt.Errorf("%w: %q", ErrUnknownMovement, s)
}
