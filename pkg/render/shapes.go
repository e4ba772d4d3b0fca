package render

import (
	"image/color"
	"math"

	"github.com/decker502/spacedefender/pkg/types"
)

// Point 多边形顶点
type Point struct {
	X, Y float64
}

// PolygonPoints 返回多边形形状在 (x, y, w, h) 包围盒内的顶点，非多边形形状返回 nil
//
// 三角形顶点贴合包围盒；菱形取四边中点；六边形、八边形和五角星内接于包围盒中心的圆
func PolygonPoints(shape types.Shape, x, y, w, h float64) []Point {
	cx, cy := x+w/2, y+h/2

	switch shape {
	case types.ShapeTriangleUp:
		return []Point{{cx, y}, {x + w, y + h}, {x, y + h}}
	case types.ShapeTriangleDown:
		return []Point{{x, y}, {x + w, y}, {cx, y + h}}
	case types.ShapeDiamond:
		return []Point{{cx, y}, {x + w, cy}, {cx, y + h}, {x, cy}}
	case types.ShapeHexagon:
		return regular(cx, cy, math.Min(w, h)/2, 6, 0)
	case types.ShapeOctagon:
		return regular(cx, cy, math.Min(w, h)/2, 8, math.Pi/8)
	case types.ShapeStar:
		return star(cx, cy, math.Min(w, h)/2, 5)
	default:
		return nil
	}
}

// regular 正多边形，第一个顶点在正上方偏转 rotation 弧度
func regular(cx, cy, r float64, n int, rotation float64) []Point {
	points := make([]Point, n)
	for i := range points {
		a := 2*math.Pi*float64(i)/float64(n) + rotation - math.Pi/2
		points[i] = Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
	}
	return points
}

// star n 角星，内圈半径为外圈的一半
func star(cx, cy, r float64, n int) []Point {
	points := make([]Point, 2*n)
	for i := range points {
		radius := r
		if i%2 == 1 {
			radius = r / 2
		}
		a := math.Pi*float64(i)/float64(n) - math.Pi/2
		points[i] = Point{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return points
}

// WithAlpha 按透明度缩放颜色（color.RGBA 为预乘 alpha）
func WithAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := math.Max(0, math.Min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}
