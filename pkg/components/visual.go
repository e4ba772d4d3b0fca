package components

import (
	"image/color"

	"github.com/decker502/spacedefender/pkg/types"
)

// VisualComponent 存储实体的渲染描述
// 核心逻辑只写入这些字段，实际绘制由宿主完成
type VisualComponent struct {
	Shape   types.Shape
	Color   color.RGBA
	Alpha   float64 // 0.0 ~ 1.0
	Visible bool    // false 时本帧不绘制（如无敌闪烁）
}
