// Package scene 实现一个物理+渲染空间（世界）或覆盖层空间（HUD、欢迎/暂停/胜利/失败）
//
// 场景按 z 层（-2..2）持有可渲染对象，持有计时器列表，
// 并把点位手势命中测试到最上层的角色。
package scene

import (
	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/camera"
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/parallax"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
)

var logger = diag.For("Scene")

const planeCount = actors.MaxZ - actors.MinZ + 1

// Scene 一个场景
type Scene struct {
	Name   string
	world  physics.World
	cam    *camera.Camera
	planes [planeCount][]render.Renderable
	actors []*actors.Actor
	timers []*Timer
	dying  map[*actors.Actor]bool // 上一帧已禁用、本帧将被移除的角色
}

// New 创建场景；world 为 nil 表示覆盖层场景（没有物理）
func New(name string, world physics.World, cam *camera.Camera) *Scene {
	return &Scene{Name: name, world: world, cam: cam}
}

// World 物理世界（覆盖层为 nil）
func (s *Scene) World() physics.World { return s.world }

// Camera 场景相机
func (s *Scene) Camera() *camera.Camera { return s.cam }

// Add 把可渲染对象放入 z 层，越界的 z 被钳制
func (s *Scene) Add(r render.Renderable, z int) {
	if z < actors.MinZ {
		z = actors.MinZ
	}
	if z > actors.MaxZ {
		z = actors.MaxZ
	}
	s.planes[z-actors.MinZ] = append(s.planes[z-actors.MinZ], r)
}

// AddActor 把角色放入其 z 层，并纳入每帧更新与手势命中
func (s *Scene) AddActor(a *actors.Actor) *actors.Actor {
	s.Add(a, a.Z())
	s.actors = append(s.actors, a)
	return a
}

// Actors 场景中的角色；已禁用的角色在移除前还会停留一帧，池中投射物始终保留
func (s *Scene) Actors() []*actors.Actor { return s.actors }

// AddLayer 把视差层放入 z 层；背景、前景场景使用
func (s *Scene) AddLayer(l *parallax.Layer, z int) {
	s.Add(&layerRenderable{layer: l, cam: s.cam}, z)
}

// Update 推进每个启用角色的路径与状态，并清理已禁用的角色
func (s *Scene) Update(elapsed float64) {
	for _, a := range s.actors {
		a.Update(elapsed)
	}
	s.prune()
}

// prune 已禁用的角色多保留一帧再移出场景；投射物池的角色会被复用，不移除
func (s *Scene) prune() {
	var gone map[*actors.Actor]bool
	kept := s.actors[:0]
	for _, a := range s.actors {
		switch {
		case a.Enabled() || a.Pooled():
			kept = append(kept, a)
		case !s.dying[a]:
			if s.dying == nil {
				s.dying = make(map[*actors.Actor]bool)
			}
			s.dying[a] = true
			kept = append(kept, a)
		default:
			delete(s.dying, a)
			if gone == nil {
				gone = make(map[*actors.Actor]bool)
			}
			gone[a] = true
		}
	}
	for i := len(kept); i < len(s.actors); i++ {
		s.actors[i] = nil
	}
	s.actors = kept
	if len(gone) == 0 {
		return
	}
	for i, plane := range s.planes {
		out := plane[:0]
		for _, r := range plane {
			if a, ok := r.(*actors.Actor); ok && gone[a] {
				continue
			}
			out = append(out, r)
		}
		for j := len(out); j < len(plane); j++ {
			plane[j] = nil
		}
		s.planes[i] = out
	}
	logger.Info("pruned disabled actors", "scene", s.Name, "count", len(gone))
}

// Render 按 z 层从低到高绘制
func (s *Scene) Render(f render.Frame, elapsed float64) {
	for _, plane := range s.planes {
		for _, r := range plane {
			r.Render(f, s.cam, elapsed)
		}
	}
}

// HitTest 把屏幕坐标的点位手势交给命中的最上层角色
//
// 有物理世界时先询问物理世界的点查询（精确形状），再按包围盒从上层到下层查找。
func (s *Scene) HitTest(g actors.Gesture, sx, sy float64) bool {
	p := s.cam.ScreenToWorld(sx, sy)
	if s.world != nil {
		if b := s.world.BodyAt(p); b != nil {
			if a, ok := b.UserData().(*actors.Actor); ok && a.HandlePoint(g, p) {
				return true
			}
		}
	}
	for i := len(s.planes) - 1; i >= 0; i-- {
		plane := s.planes[i]
		for j := len(plane) - 1; j >= 0; j-- {
			a, ok := plane[j].(*actors.Actor)
			if !ok || !a.Enabled() || !a.Contains(p) {
				continue
			}
			if a.HandlePoint(g, p) {
				return true
			}
		}
	}
	return false
}

// Swipe 把滑动手势交给起点处的最上层角色
func (s *Scene) Swipe(fromX, fromY, toX, toY, seconds float64) bool {
	from := s.cam.ScreenToWorld(fromX, fromY)
	to := s.cam.ScreenToWorld(toX, toY)
	for i := len(s.planes) - 1; i >= 0; i-- {
		plane := s.planes[i]
		for j := len(plane) - 1; j >= 0; j-- {
			a, ok := plane[j].(*actors.Actor)
			if !ok || !a.Contains(from) {
				continue
			}
			if a.HandleSwipe(from, to, seconds) {
				return true
			}
		}
	}
	return false
}

// layerRenderable 把视差层的瓦片转成精灵
type layerRenderable struct {
	layer *parallax.Layer
	cam   *camera.Camera
}

func (l *layerRenderable) Render(f render.Frame, v render.View, elapsed float64) {
	s := l.cam.Scale()
	for _, t := range l.layer.Update(l.cam, elapsed) {
		x, y := l.cam.WorldToScreen(physics.Vec{X: t.X, Y: t.Y})
		f.Sprite(l.layer.Image, x, y, t.W*s, t.H*s, 0)
	}
}
