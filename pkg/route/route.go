// Package route 实现沿路径点移动的路径跟随器
//
// Route 是不可变的路径点序列；Follower 持有游标状态（下一个目标点、是否完成），
// 每帧根据"方向越过"判定是否到达目标点，并给出角色应有的速度。
package route

import (
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/physics"
)

var logger = diag.For("Route")

// Route 路径点序列（世界坐标）
type Route struct {
	points []physics.Vec
}

// New 创建路径
func New(points ...physics.Vec) *Route {
	cp := make([]physics.Vec, len(points))
	copy(cp, points)
	return &Route{points: cp}
}

// To 返回末尾多一个路径点的新路径，便于链式构造；r 本身不变
func (r *Route) To(x, y float64) *Route {
	n := r.Len()
	pts := make([]physics.Vec, n, n+1)
	if n > 0 {
		copy(pts, r.points)
	}
	return &Route{points: append(pts, physics.Vec{X: x, Y: y})}
}

// Len 路径点数量
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return len(r.points)
}

// Point 第 i 个路径点
func (r *Route) Point(i int) physics.Vec {
	return r.points[i]
}

// Mover 跟随器驱动的对象（通常是角色的刚体）
type Mover interface {
	Position() physics.Vec
	SetPosition(p physics.Vec)
	SetVelocity(v physics.Vec)
}

// Follower 路径跟随器，与一个角色 1:1 绑定
type Follower struct {
	route    *Route
	speed    float64
	loop     bool
	next     int
	velocity physics.Vec
	done     bool
}

// NewFollower 创建跟随器并把 m 放到起点
//
// 路径点少于 2 个属于构造错误：输出紧急诊断，跟随器直接处于完成状态，
// 角色保持静止，而不是中断整个关卡。
func NewFollower(r *Route, speed float64, loop bool, m Mover) *Follower {
	f := &Follower{route: r, speed: speed, loop: loop}
	if r.Len() < 2 {
		logger.Urgent("route needs at least 2 points, actor will not move", "points", r.Len())
		f.done = true
		if m != nil {
			m.SetVelocity(physics.Vec{})
		}
		return f
	}
	f.start(m)
	return f
}

// start 传送到起点，速度朝向第二个点
func (f *Follower) start(m Mover) {
	f.next = 1
	f.done = false
	m.SetPosition(f.route.points[0])
	f.velocity = f.segmentVelocity(0, 1)
	m.SetVelocity(f.velocity)
}

// segmentVelocity normalize(P[to]-P[from]) * speed
func (f *Follower) segmentVelocity(from, to int) physics.Vec {
	d := f.route.points[to].Sub(f.route.points[from])
	return d.Normalize().Scale(f.speed)
}

// Done 非循环路径是否已走完
func (f *Follower) Done() bool { return f.done }

// Velocity 当前段的速度
func (f *Follower) Velocity() physics.Vec { return f.velocity }

// NextIndex 当前目标点下标
func (f *Follower) NextIndex() int { return f.next }

// Drive 每帧调用一次：判断是否越过目标点，并重新设置速度
func (f *Follower) Drive(m Mover) {
	if f.done {
		m.SetVelocity(physics.Vec{})
		return
	}

	if f.passed(m.Position()) {
		f.next++
		if f.next == f.route.Len() {
			if f.loop {
				f.start(m)
				return
			}
			f.done = true
			f.velocity = physics.Vec{}
			m.SetVelocity(f.velocity)
			return
		}
		f.velocity = f.segmentVelocity(f.next-1, f.next)
	}
	// 碰撞可能改变了速度，每帧重新施加
	m.SetVelocity(f.velocity)
}

// passed 方向越过判定
//
// 分别在 X/Y 上比较"上一点 -> 目标点"与"上一点 -> 当前位置"的有符号位移；
// 目标点与上一点在某个维度上相同时，该维度视为已满足。
// 对于不折返的直线段是精确的，即使单帧步长很大也不会跳过路径点。
func (f *Follower) passed(pos physics.Vec) bool {
	prev := f.route.points[f.next-1]
	target := f.route.points[f.next]
	return axisPassed(prev.X, target.X, pos.X) && axisPassed(prev.Y, target.Y, pos.Y)
}

func axisPassed(prev, target, pos float64) bool {
	want := target - prev
	got := pos - prev
	switch {
	case want > 0:
		return got >= want
	case want < 0:
		return got <= want
	default:
		return true
	}
}
