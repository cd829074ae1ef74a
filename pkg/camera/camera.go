// Package camera 负责屏幕像素与世界坐标之间的映射
//
// 相机维护世界边界 [min,max]、缩放（像素/米）和中心点。
// SetCenter 会把可见矩形限制在边界内；当关卡比屏幕小时无法限制，只输出警告。
package camera

import (
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/physics"
)

var logger = diag.For("Camera")

// Camera 二维相机
type Camera struct {
	minX, minY float64
	maxX, maxY float64

	centerX, centerY float64

	// scale 每米对应的像素数
	scale float64

	screenW, screenH float64

	// 缓存的可见区域尺寸（世界单位）
	visibleW, visibleH float64

	// 当前配置下是否已经警告过，避免每帧刷屏
	warnedX, warnedY bool
}

// New 创建相机
//
// 参数：
//   - screenW, screenH: 屏幕像素尺寸
//   - scale: 每米像素数
//   - maxX, maxY: 世界边界（最小边界为 0,0）
func New(screenW, screenH int, scale, maxX, maxY float64) *Camera {
	if scale <= 0 {
		logger.Urgent("non-positive camera scale, using 1", "scale", scale)
		scale = 1
	}
	c := &Camera{
		maxX:    maxX,
		maxY:    maxY,
		scale:   scale,
		screenW: float64(screenW),
		screenH: float64(screenH),
	}
	c.updateVisible()
	c.SetCenter(c.visibleW/2, c.visibleH/2)
	return c
}

func (c *Camera) updateVisible() {
	c.visibleW = c.screenW / c.scale
	c.visibleH = c.screenH / c.scale
	c.warnedX = false
	c.warnedY = false
}

// SetBounds 设置世界边界并重新校验中心点
func (c *Camera) SetBounds(minX, minY, maxX, maxY float64) {
	c.minX, c.minY = minX, minY
	c.maxX, c.maxY = maxX, maxY
	c.warnedX, c.warnedY = false, false
	c.SetCenter(c.centerX, c.centerY)
}

// Bounds 返回世界边界
func (c *Camera) Bounds() (minX, minY, maxX, maxY float64) {
	return c.minX, c.minY, c.maxX, c.maxY
}

// Scale 每米像素数
func (c *Camera) Scale() float64 { return c.scale }

// SetScale 缩放；重新计算可见区域并重新校验边界
func (c *Camera) SetScale(scale float64) {
	if scale <= 0 {
		logger.Urgent("ignoring non-positive camera scale", "scale", scale)
		return
	}
	c.scale = scale
	c.updateVisible()
	c.SetCenter(c.centerX, c.centerY)
}

// Zoom 以倍数改变缩放
func (c *Camera) Zoom(factor float64) {
	c.SetScale(c.scale * factor)
}

// Center 当前中心点
func (c *Camera) Center() physics.Vec {
	return physics.Vec{X: c.centerX, Y: c.centerY}
}

// SetCenter 设置中心点，并把可见矩形限制在世界边界内
//
// 两个轴独立处理，只修正越界的那个方向。
func (c *Camera) SetCenter(cx, cy float64) {
	c.centerX = clampAxis(cx, c.visibleW, c.minX, c.maxX, &c.warnedX, "x")
	c.centerY = clampAxis(cy, c.visibleH, c.minY, c.maxY, &c.warnedY, "y")
}

// clampAxis 关卡比可见区域小时对齐到最小边界并警告一次
func clampAxis(center, visible, lo, hi float64, warned *bool, axis string) float64 {
	half := visible / 2
	if hi-lo < visible {
		if !*warned {
			logger.Urgent("level is smaller than the visible area, cannot clamp camera",
				"axis", axis, "level", hi-lo, "visible", visible)
			*warned = true
		}
		return lo + half
	}
	if center-half < lo {
		return lo + half
	}
	if center+half > hi {
		return hi - half
	}
	return center
}

// Visible 可见矩形（世界坐标，左上角 + 尺寸）
func (c *Camera) Visible() (x, y, w, h float64) {
	return c.centerX - c.visibleW/2, c.centerY - c.visibleH/2, c.visibleW, c.visibleH
}

// InBounds 判断以 (x,y) 为左上角、尺寸 w*h 的矩形是否与可见区域相交
//
// 所有边都是闭区间，刚好接触也算可见。
func (c *Camera) InBounds(x, y, w, h float64) bool {
	vx, vy, vw, vh := c.Visible()
	return x <= vx+vw && x+w >= vx && y <= vy+vh && y+h >= vy
}

// WorldToScreen 世界坐标转屏幕像素
func (c *Camera) WorldToScreen(p physics.Vec) (float64, float64) {
	vx, vy, _, _ := c.Visible()
	return (p.X - vx) * c.scale, (p.Y - vy) * c.scale
}

// ScreenToWorld 屏幕像素转世界坐标
func (c *Camera) ScreenToWorld(sx, sy float64) physics.Vec {
	vx, vy, _, _ := c.Visible()
	return physics.Vec{X: sx/c.scale + vx, Y: sy/c.scale + vy}
}
