package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Assets 按名称提供图片与字体；缺失时返回占位资源而不是 nil
type Assets interface {
	Image(name string) *ebiten.Image
	Font(name string, size float64) text.Face
}

// ScreenFrame 把一帧绘制到 ebiten 屏幕上
type ScreenFrame struct {
	screen *ebiten.Image
	assets Assets
}

// NewScreenFrame 包装本帧的屏幕图像
func NewScreenFrame(screen *ebiten.Image, assets Assets) *ScreenFrame {
	return &ScreenFrame{screen: screen, assets: assets}
}

// SetBackground 清屏
func (f *ScreenFrame) SetBackground(c color.RGBA) {
	f.screen.Fill(c)
}

// Sprite 把图片拉伸到 w×h，绕中心旋转 angle 后放在 (x, y)
func (f *ScreenFrame) Sprite(name string, x, y, w, h, angle float64) {
	img := f.assets.Image(name)
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = spriteGeoM(float64(b.Dx()), float64(b.Dy()), x, y, w, h, angle)
	op.Filter = ebiten.FilterLinear
	f.screen.DrawImage(img, op)
}

func spriteGeoM(srcW, srcH, x, y, w, h, angle float64) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(w/srcW, h/srcH)
	if angle != 0 {
		m.Translate(-w/2, -h/2)
		m.Rotate(angle)
		m.Translate(w/2, h/2)
	}
	m.Translate(x, y)
	return m
}

// Text 绘制文字；(x, y) 为左上角
func (f *ScreenFrame) Text(s string, font Font, x, y float64) {
	if s == "" {
		return
	}
	face := f.assets.Font(font.Face, font.Size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor(font.Color))
	op.LineSpacing = font.Size * 1.2
	text.Draw(f.screen, s, face, op)
}

// 未指定颜色时使用白色
func textColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return color.White
	}
	return c
}
