// Package render 定义引擎对渲染后端的依赖边界
//
// 每帧：设置背景色，按层依次提交精灵与文字。
// Frame 的坐标均为屏幕像素，世界到屏幕的换算由 View（相机）完成。
package render

import (
	"image/color"

	"github.com/decker502/lol/pkg/physics"
)

// Font 文字样式
type Font struct {
	Face  string // 字体文件名，空表示使用内置调试字体
	Size  float64
	Color color.RGBA
}

// Frame 一帧的绘制目标
type Frame interface {
	SetBackground(c color.RGBA)
	// Sprite 绘制图片；x,y 为左上角，angle 为绕中心旋转的弧度
	Sprite(image string, x, y, w, h, angle float64)
	Text(s string, font Font, x, y float64)
}

// View 世界到屏幕的映射（相机实现）
type View interface {
	InBounds(x, y, w, h float64) bool
	WorldToScreen(p physics.Vec) (float64, float64)
	Scale() float64
}

// Renderable 可以被场景按层绘制的对象
type Renderable interface {
	Render(f Frame, v View, elapsed float64)
}
