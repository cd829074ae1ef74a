// Package input 把 ebiten 的鼠标、触摸与键盘状态转换为舞台使用的手势事件
//
// 每个 tick 调用一次 Update 采样，舞台在自己的 Update 中通过 Drain 取走事件。
// 同时支持鼠标与触摸，触摸优先；方向键模拟设备倾斜。
package input

import (
	"math"

	"github.com/decker502/lol/pkg/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 手势判定阈值
const (
	PanThreshold  = 8.0  // 像素；超过后按下变为拖动
	SwipeDistance = 40.0 // 像素；抬起时位移超过该值才算滑动
	SwipeSeconds  = 0.35 // 按下到抬起不超过该时长才算滑动
	DefaultTilt   = 1.0  // 方向键对应的倾斜读数
)

// DragState 拖拽状态
type DragState int

const (
	DragStateNone     DragState = iota // 无按下
	DragStatePressed                   // 按下但尚未移动
	DragStateDragging                  // 拖动中
)

// pointer 单指针手势识别
type pointer struct {
	state          DragState
	startX, startY float64
	lastX, lastY   float64
	held           float64 // 按下后经过的秒数
}

// step 输入本 tick 的指针状态，返回识别出的事件
func (p *pointer) step(pressed bool, x, y, elapsed float64) []stage.Event {
	var out []stage.Event
	switch p.state {
	case DragStateNone:
		if !pressed {
			return nil
		}
		p.state = DragStatePressed
		p.startX, p.startY = x, y
		p.lastX, p.lastY = x, y
		p.held = 0
		out = append(out, stage.Event{Kind: stage.EventTouchDown, X: x, Y: y})

	case DragStatePressed, DragStateDragging:
		if !pressed {
			out = append(out, p.release()...)
			p.state = DragStateNone
			return out
		}
		p.held += elapsed
		moved := x != p.lastX || y != p.lastY
		p.lastX, p.lastY = x, y
		if p.state == DragStatePressed && math.Hypot(x-p.startX, y-p.startY) > PanThreshold {
			p.state = DragStateDragging
			out = append(out, stage.Event{Kind: stage.EventPanStart, X: x, Y: y})
		} else if p.state == DragStateDragging && moved {
			out = append(out, stage.Event{Kind: stage.EventPanMove, X: x, Y: y})
		}
	}
	return out
}

// release 抬起时的事件：TouchUp，然后是 PanStop/Swipe 或 Tap
func (p *pointer) release() []stage.Event {
	x, y := p.lastX, p.lastY
	out := []stage.Event{{Kind: stage.EventTouchUp, X: x, Y: y}}
	dist := math.Hypot(x-p.startX, y-p.startY)
	switch {
	case p.state == DragStateDragging && p.held <= SwipeSeconds && dist >= SwipeDistance:
		out = append(out,
			stage.Event{Kind: stage.EventPanStop, X: x, Y: y},
			stage.Event{Kind: stage.EventSwipe, X: p.startX, Y: p.startY, ToX: x, ToY: y, Seconds: p.held})
	case p.state == DragStateDragging:
		out = append(out, stage.Event{Kind: stage.EventPanStop, X: x, Y: y})
	default:
		out = append(out, stage.Event{Kind: stage.EventTap, X: x, Y: y})
	}
	return out
}

// Sampler 实现 stage.Input
type Sampler struct {
	pointer   pointer
	events    []stage.Event
	tiltX     float64
	tiltY     float64
	TiltScale float64 // 方向键对应的倾斜读数
	touchID   ebiten.TouchID
	touching  bool
}

// NewSampler 创建输入采样器
func NewSampler() *Sampler {
	return &Sampler{TiltScale: DefaultTilt, touchID: -1}
}

// Update 采样本 tick 的输入，elapsed 为 tick 时长（秒）
func (s *Sampler) Update(elapsed float64) {
	pressed, x, y := s.pointerState()
	s.Feed(pressed, float64(x), float64(y), elapsed)
	s.tiltX, s.tiltY = s.keyTilt()
}

// Feed 注入一个 tick 的指针状态（Update 与测试共用）
func (s *Sampler) Feed(pressed bool, x, y, elapsed float64) {
	s.events = append(s.events, s.pointer.step(pressed, x, y, elapsed)...)
}

// pointerState 获取指针状态，触摸优先；跟踪同一个触摸直到其抬起
func (s *Sampler) pointerState() (pressed bool, x, y int) {
	if s.touching {
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == s.touchID {
				x, y = ebiten.TouchPosition(id)
				return true, x, y
			}
		}
		s.touching = false
		s.touchID = -1
		return false, 0, 0
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		s.touching = true
		s.touchID = ids[0]
		x, y = ebiten.TouchPosition(ids[0])
		return true, x, y
	}

	x, y = ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y
}

// keyTilt 方向键 / WASD 模拟倾斜
func (s *Sampler) keyTilt() (x, y float64) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		x -= s.TiltScale
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		x += s.TiltScale
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		y -= s.TiltScale
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		y += s.TiltScale
	}
	return x, y
}

// SetTilt 直接设置倾斜读数（测试或外部传感器）
func (s *Sampler) SetTilt(x, y float64) {
	s.tiltX, s.tiltY = x, y
}

// Drain 取出并清空缓冲的事件
func (s *Sampler) Drain() []stage.Event {
	out := s.events
	s.events = nil
	return out
}

// Tilt 当前倾斜读数
func (s *Sampler) Tilt() (x, y float64) {
	return s.tiltX, s.tiltY
}

// DragState 当前拖拽状态
func (s *Sampler) DragState() DragState {
	return s.pointer.state
}

var _ stage.Input = (*Sampler)(nil)
