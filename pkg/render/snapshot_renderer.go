// Package render 把模拟快照绘制到 ebiten 屏幕上
//
// 只使用纯色几何图形和调试字体，不加载任何图片资源。
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/spacedefender/pkg/game"
	"github.com/decker502/spacedefender/pkg/simulation"
	"github.com/decker502/spacedefender/pkg/types"
)

const (
	// hudLineHeight HUD 文本行高
	hudLineHeight = 16
	// ringWidth 擦弹圆环的线宽
	ringWidth = 2
	// bossBarHeight Boss 血条高度
	bossBarHeight = 5
)

var (
	backgroundColor = color.RGBA{A: 0xFF}
	hudColor        = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	overlayColor    = color.RGBA{A: 0xB0}
	barBackColor    = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	bossBarColor    = color.RGBA{R: 0xFF, G: 0x00, B: 0x66, A: 0xFF}
	powerBarColor   = color.RGBA{G: 0xFF, A: 0xFF}
)

// SnapshotRenderer 绘制快照、HUD 和阶段提示层
type SnapshotRenderer struct {
	face     *text.GoXFace
	fillImg  *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSnapshotRenderer 创建渲染器
func NewSnapshotRenderer() *SnapshotRenderer {
	return &SnapshotRenderer{
		face: text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制一帧快照：背景星空在最底层，特效在最上层
func (r *SnapshotRenderer) Draw(screen *ebiten.Image, snap simulation.Snapshot) {
	screen.Fill(backgroundColor)

	for _, s := range snap.Stars {
		vector.DrawFilledRect(screen, float32(s.X), float32(s.Y), float32(s.Width), float32(s.Height), WithAlpha(s.Color, s.Alpha), false)
	}

	r.drawItems(screen, snap.PowerUps)
	r.drawItems(screen, snap.PlayerBullets)
	r.drawItems(screen, snap.EnemyBullets)
	r.drawItems(screen, snap.Enemies)
	r.drawItems(screen, snap.Player)

	for _, e := range snap.Enemies {
		if e.Boss {
			r.drawHealthBar(screen, e)
		}
	}

	for _, e := range snap.Effects {
		if !e.Visible {
			continue
		}
		c := WithAlpha(e.Color, e.Alpha)
		if e.Shape == types.ShapeRing {
			vector.StrokeCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius), ringWidth, c, true)
		} else {
			vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius), c, true)
		}
	}
}

func (r *SnapshotRenderer) drawItems(screen *ebiten.Image, items []simulation.RenderItem) {
	for _, item := range items {
		if item.Visible {
			r.drawItem(screen, item)
		}
	}
}

func (r *SnapshotRenderer) drawItem(screen *ebiten.Image, item simulation.RenderItem) {
	c := WithAlpha(item.Color, item.Alpha)

	switch item.Shape {
	case types.ShapeRect:
		vector.DrawFilledRect(screen, float32(item.X), float32(item.Y), float32(item.Width), float32(item.Height), c, false)
	case types.ShapeCircle:
		radius := item.Width / 2
		vector.DrawFilledCircle(screen, float32(item.X+radius), float32(item.Y+radius), float32(radius), c, true)
	default:
		if points := PolygonPoints(item.Shape, item.X, item.Y, item.Width, item.Height); points != nil {
			r.fillPolygon(screen, points, c)
		}
	}
}

// fillPolygon 用三角剖分填充多边形
func (r *SnapshotRenderer) fillPolygon(screen *ebiten.Image, points []Point, c color.RGBA) {
	if r.fillImg == nil {
		r.fillImg = ebiten.NewImage(1, 1)
		r.fillImg.Fill(color.White)
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	r.vertices, r.indices = path.AppendVerticesAndIndicesForFilling(r.vertices[:0], r.indices[:0])
	for i := range r.vertices {
		r.vertices[i].ColorR = float32(c.R) / 255
		r.vertices[i].ColorG = float32(c.G) / 255
		r.vertices[i].ColorB = float32(c.B) / 255
		r.vertices[i].ColorA = float32(c.A) / 255
	}
	screen.DrawTriangles(r.vertices, r.indices, r.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
	})
}

func (r *SnapshotRenderer) drawHealthBar(screen *ebiten.Image, boss simulation.RenderItem) {
	x, y := float32(boss.X), float32(boss.Y-2*bossBarHeight)
	w := float32(boss.Width)
	vector.DrawFilledRect(screen, x, y, w, bossBarHeight, barBackColor, false)
	vector.DrawFilledRect(screen, x, y, w*float32(boss.Health), bossBarHeight, bossBarColor, false)
}

// DrawHUD 绘制分数、生命、等级、擦弹、连击和火力条
func (r *SnapshotRenderer) DrawHUD(screen *ebiten.Image, ui game.UIState, width float64) {
	lines := HUDLines(ui)
	for i, line := range lines {
		c := hudColor
		if i == len(lines)-1 && ui.Combo > 0 {
			c = ui.ComboTier.Color()
		}
		r.drawText(screen, line, 10, float64(10+i*hudLineHeight), c)
	}

	const barW, barH = 100.0, 8.0
	x, y := float32(width-barW-10), float32(10)
	vector.DrawFilledRect(screen, x, y, barW, barH, barBackColor, false)
	vector.DrawFilledRect(screen, x, y, float32(barW*ui.PowerFraction), barH, powerBarColor, false)
	vector.StrokeRect(screen, x, y, barW, barH, 1, hudColor, false)
}

// HUDLines 返回 HUD 各行文本，连击行在最后
func HUDLines(ui game.UIState) []string {
	lines := []string{
		fmt.Sprintf("SCORE %d", ui.Score),
		fmt.Sprintf("LIVES %d", ui.Lives),
		fmt.Sprintf("LEVEL %d", ui.Level),
		fmt.Sprintf("GRAZE %d", ui.Graze),
	}
	combo := ""
	if ui.Combo > 0 {
		combo = fmt.Sprintf("COMBO %d x%d", ui.Combo, ui.Multiplier)
	}
	return append(lines, combo)
}

// DrawOverlay 在画面中央绘制半透明遮罩和提示文字
func (r *SnapshotRenderer) DrawOverlay(screen *ebiten.Image, width, height float64, lines ...string) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), overlayColor, false)

	y := height/2 - float64(len(lines)*hudLineHeight)/2
	for _, line := range lines {
		x := width/2 - text.Advance(line, r.face)/2
		r.drawText(screen, line, x, y, hudColor)
		y += hudLineHeight * 1.5
	}
}

func (r *SnapshotRenderer) drawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, r.face, op)
}
