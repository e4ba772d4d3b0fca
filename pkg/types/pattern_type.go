package types

import (
	"errors"
	"fmt"
)

// ErrUnknownPattern 未知弹幕类型
var ErrUnknownPattern = errors.New("unknown bullet pattern")

// PatternType 定义弹幕的几何排列方式
type PatternType int

const (
	// PatternUnknown 未知弹幕
	PatternUnknown PatternType = iota
	// PatternSingle 单发：一颗子弹竖直向下
	PatternSingle
	// PatternStraight 直线：左中右三颗子弹竖直向下
	PatternStraight
	// PatternCircle 环形：8 方向均匀放射
	PatternCircle
	// PatternSpiral 螺旋：12 方向放射，整体旋转相位随时间推进
	PatternSpiral
	// PatternRandom 随机：5 颗子弹方向独立均匀随机
	PatternRandom
)

var patternTypeStringMap = map[PatternType]string{
	PatternSingle:   "single",
	PatternStraight: "straight",
	PatternCircle:   "circle",
	PatternSpiral:   "spiral",
	PatternRandom:   "random",
}

var stringToPatternTypeMap map[string]PatternType

func init() {
	stringToPatternTypeMap = make(map[string]PatternType, len(patternTypeStringMap))
	for pt, s := range patternTypeStringMap {
		stringToPatternTypeMap[s] = pt
	}
}

// String 返回弹幕类型的配置字符串表示
func (p PatternType) String() string {
	if s, ok := patternTypeStringMap[p]; ok {
		return s
	}
	return "unknown"
}

// IsValid 判断是否为合法的弹幕类型
func (p PatternType) IsValid() bool {
	_, ok := patternTypeStringMap[p]
	return ok
}

// ParsePatternType 将配置字符串转换为 PatternType
func ParsePatternType(s string) (PatternType, error) {
	if pt, ok := stringToPatternTypeMap[s]; ok {
		return pt, nil
	}
	return PatternUnknown, fmt.Errorf("%w: %q", ErrUnknownPattern, s)
}
