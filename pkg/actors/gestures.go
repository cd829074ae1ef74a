package actors

import "github.com/decker502/lol/pkg/physics"

// PointFunc 处理一次点位手势，返回 true 表示事件已被消费
type PointFunc func(a *Actor, p physics.Vec) bool

// SwipeFunc 处理一次滑动手势
type SwipeFunc func(a *Actor, from, to physics.Vec, seconds float64) bool

// Gestures 角色可注册的手势处理器；坐标为角色所在场景的坐标系
type Gestures struct {
	Tap       PointFunc
	PanStart  PointFunc
	PanMove   PointFunc
	PanStop   PointFunc
	TouchDown PointFunc
	TouchUp   PointFunc
	Swipe     SwipeFunc
}

// Gesture 手势类型
type Gesture int

const (
	GestureTap Gesture = iota
	GesturePanStart
	GesturePanMove
	GesturePanStop
	GestureTouchDown
	GestureTouchUp
)

// HandlePoint 分发点位手势；禁用角色或未注册处理器时返回 false
func (a *Actor) HandlePoint(g Gesture, p physics.Vec) bool {
	if !a.enabled {
		return false
	}
	var fn PointFunc
	switch g {
	case GestureTap:
		fn = a.Gestures.Tap
	case GesturePanStart:
		fn = a.Gestures.PanStart
	case GesturePanMove:
		fn = a.Gestures.PanMove
	case GesturePanStop:
		fn = a.Gestures.PanStop
	case GestureTouchDown:
		fn = a.Gestures.TouchDown
	case GestureTouchUp:
		fn = a.Gestures.TouchUp
	}
	if fn == nil {
		return false
	}
	return fn(a, p)
}

// HandleSwipe 分发滑动手势
func (a *Actor) HandleSwipe(from, to physics.Vec, seconds float64) bool {
	if !a.enabled || a.Gestures.Swipe == nil {
		return false
	}
	return a.Gestures.Swipe(a, from, to, seconds)
}
