package scene

import (
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
)

// Text 每帧由 Producer 生成内容的文字
type Text struct {
	X, Y     float64 // 场景坐标（HUD 中即像素）
	Font     render.Font
	Producer func() string
	Hidden   bool
}

// NewText 固定内容的文字
func NewText(x, y float64, font render.Font, s string) *Text {
	return &Text{X: x, Y: y, Font: font, Producer: func() string { return s }}
}

func (t *Text) Render(f render.Frame, v render.View, elapsed float64) {
	if t.Hidden || t.Producer == nil {
		return
	}
	sx, sy := v.WorldToScreen(physics.Vec{X: t.X, Y: t.Y})
	f.Text(t.Producer(), t.Font, sx, sy)
}

// AddText 添加文字到 z 层
func (s *Scene) AddText(t *Text, z int) *Text {
	s.Add(t, z)
	return t
}
