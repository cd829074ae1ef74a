package stage

import (
	"math"

	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/physics"
)

// EventKind 输入事件类型
type EventKind int

const (
	EventTap EventKind = iota
	EventPanStart
	EventPanMove
	EventPanStop
	EventTouchDown
	EventTouchUp
	EventSwipe
)

// Event 一次手势事件；坐标为屏幕像素
type Event struct {
	Kind     EventKind
	X, Y     float64
	ToX, ToY float64 // 仅 Swipe
	Seconds  float64 // 仅 Swipe
}

// Input 输入协作者：事件由其缓冲，每帧同步取出
type Input interface {
	Drain() []Event
	Tilt() (x, y float64)
}

var gestureOf = map[EventKind]actors.Gesture{
	EventTap:       actors.GestureTap,
	EventPanStart:  actors.GesturePanStart,
	EventPanMove:   actors.GesturePanMove,
	EventPanStop:   actors.GesturePanStop,
	EventTouchDown: actors.GestureTouchDown,
	EventTouchUp:   actors.GestureTouchUp,
}

// route 把事件交给覆盖层，或依次交给 HUD 与世界
func (s *Stage) route(e Event) {
	if o := s.overlay; o != nil {
		dispatchEvent(o.Scene.HitTest, o.Scene.Swipe, e)
		return
	}
	if s.hud == nil {
		return
	}
	if dispatchEvent(s.hud.HitTest, s.hud.Swipe, e) {
		return
	}
	dispatchEvent(s.worldScene.HitTest, s.worldScene.Swipe, e)
}

func dispatchEvent(hit func(actors.Gesture, float64, float64) bool, swipe func(float64, float64, float64, float64, float64) bool, e Event) bool {
	if e.Kind == EventSwipe {
		return swipe(e.X, e.Y, e.ToX, e.ToY, e.Seconds)
	}
	g, ok := gestureOf[e.Kind]
	if !ok {
		return false
	}
	return hit(g, e.X, e.Y)
}

// tilt 倾斜控制状态
type tilt struct {
	enabled    bool
	maxX, maxY float64
	multiplier float64
	velocity   bool // true：直接设置倾斜角色的速度；false：改变世界重力
	actors     []*actors.Actor
}

// EnableTilt 开启倾斜控制，读数被限制在 [-max, max]
func (s *Stage) EnableTilt(maxX, maxY float64) {
	s.tilt.enabled = true
	s.tilt.maxX, s.tilt.maxY = math.Abs(maxX), math.Abs(maxY)
	if s.tilt.multiplier == 0 {
		s.tilt.multiplier = 1
	}
}

// SetTiltMultiplier 读数放大倍数
func (s *Stage) SetTiltMultiplier(m float64) { s.tilt.multiplier = m }

// SetTiltVelocity 切换为速度模式：倾斜直接决定倾斜角色的速度
func (s *Stage) SetTiltVelocity(on bool) { s.tilt.velocity = on }

// TiltMove 把角色纳入速度模式下的倾斜控制
func (s *Stage) TiltMove(a *actors.Actor) {
	a.SetMoveable()
	s.tilt.actors = append(s.tilt.actors, a)
}

func clampAbs(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}

// applyTilt 采样倾斜并作用到世界或角色
func (s *Stage) applyTilt() {
	if !s.tilt.enabled || s.input == nil {
		return
	}
	x, y := s.input.Tilt()
	v := physics.Vec{
		X: clampAbs(x*s.tilt.multiplier, s.tilt.maxX),
		Y: clampAbs(y*s.tilt.multiplier, s.tilt.maxY),
	}
	if !s.tilt.velocity {
		s.world.SetGravity(v)
		return
	}
	for _, a := range s.tilt.actors {
		if a.Enabled() {
			a.SetVelocity(v)
		}
	}
}
