package stage

import (
	"image/color"

	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/camera"
	"github.com/decker502/lol/pkg/facts"
	"github.com/decker502/lol/pkg/parallax"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/scene"
)

// ---- 角色工厂：坐标为世界坐标（米） ----

// MakeHero 创建英雄
func (s *Stage) MakeHero(cfg actors.Config) *actors.Actor {
	return s.worldScene.AddActor(actors.NewHero(s, s.world, cfg))
}

// MakeEnemy 创建敌人
func (s *Stage) MakeEnemy(cfg actors.Config) *actors.Actor {
	return s.worldScene.AddActor(actors.NewEnemy(s, s.world, cfg))
}

// MakeGoodie 创建奖励物
func (s *Stage) MakeGoodie(cfg actors.Config) *actors.Actor {
	return s.worldScene.AddActor(actors.NewGoodie(s, s.world, cfg))
}

// MakeDestination 创建目的地
func (s *Stage) MakeDestination(cfg actors.Config) *actors.Actor {
	return s.worldScene.AddActor(actors.NewDestination(s, s.world, cfg))
}

// MakeObstacle 创建障碍物
func (s *Stage) MakeObstacle(cfg actors.Config) *actors.Actor {
	return s.worldScene.AddActor(actors.NewObstacle(s, s.world, cfg))
}

// MakeDecoration 创建没有刚体的世界装饰
func (s *Stage) MakeDecoration(cfg actors.Config) *actors.Actor {
	return s.worldScene.AddActor(actors.NewDecoration(s, nil, cfg))
}

// MakeProjectilePool 创建投射物池，射程检查每帧进行
func (s *Stage) MakeProjectilePool(n int, cfg actors.Config, damage int, rng float64) *actors.Pool {
	p := actors.NewPool(s, s.world, n, cfg, damage, rng)
	p.Each(func(a *actors.Actor) { s.worldScene.AddActor(a) })
	s.pools = append(s.pools, p)
	return p
}

// DrawBoundingBox 用四个障碍物围住 [0,w]x[0,h]
func (s *Stage) DrawBoundingBox(w, h float64, image string) []*actors.Actor {
	const t = 0.1
	edges := []actors.Config{
		{X: 0, Y: -t, W: w, H: t, Image: image},
		{X: 0, Y: h, W: w, H: t, Image: image},
		{X: -t, Y: 0, W: t, H: h, Image: image},
		{X: w, Y: 0, W: t, H: h, Image: image},
	}
	out := make([]*actors.Actor, len(edges))
	for i, e := range edges {
		out[i] = s.MakeObstacle(e)
	}
	return out
}

// ---- HUD：坐标为屏幕像素 ----

// AddDisplay 添加每帧刷新的 HUD 文字
func (s *Stage) AddDisplay(x, y float64, font render.Font, producer func() string) *scene.Text {
	return s.hud.AddText(&scene.Text{X: x, Y: y, Font: font, Producer: producer}, 0)
}

// AddImage 添加 HUD 图片
func (s *Stage) AddImage(image string, x, y, w, h float64) *actors.Actor {
	return s.hud.AddActor(actors.NewDecoration(s, nil, actors.Config{X: x, Y: y, W: w, H: h, Image: image}))
}

// AddTapControl 添加 HUD 点击控件
func (s *Stage) AddTapControl(x, y, w, h float64, image string, action func(p physics.Vec)) *actors.Actor {
	a := actors.NewDecoration(s, nil, actors.Config{X: x, Y: y, W: w, H: h, Image: image})
	a.Gestures.Tap = func(_ *actors.Actor, p physics.Vec) bool {
		action(p)
		return true
	}
	return s.hud.AddActor(a)
}

// AddToggleControl 按下执行 down，抬起执行 up（如持续移动按钮）
func (s *Stage) AddToggleControl(x, y, w, h float64, image string, down, up func()) *actors.Actor {
	a := actors.NewDecoration(s, nil, actors.Config{X: x, Y: y, W: w, H: h, Image: image})
	a.Gestures.TouchDown = func(*actors.Actor, physics.Vec) bool { down(); return true }
	a.Gestures.TouchUp = func(*actors.Actor, physics.Vec) bool { up(); return true }
	return s.hud.AddActor(a)
}

// ---- 世界 ----

// World 物理世界
func (s *Stage) World() physics.World { return s.world }

// WorldScene 世界场景
func (s *Stage) WorldScene() *scene.Scene { return s.worldScene }

// HUD HUD 场景
func (s *Stage) HUD() *scene.Scene { return s.hud }

// Camera 世界相机
func (s *Stage) Camera() *camera.Camera { return s.cam }

// ResetGravity 设置世界重力
func (s *Stage) ResetGravity(x, y float64) { s.world.SetGravity(physics.Vec{X: x, Y: y}) }

// SetCameraBounds 设置关卡世界尺寸
func (s *Stage) SetCameraBounds(w, h float64) { s.cam.SetBounds(0, 0, w, h) }

// SetCameraChase 相机每帧追随该角色；nil 取消
func (s *Stage) SetCameraChase(a *actors.Actor) {
	s.chase = a
	if a != nil {
		c := a.Position()
		s.cam.SetCenter(c.X, c.Y)
	}
}

// SetZoom 设置相机缩放（像素/米）
func (s *Stage) SetZoom(scale float64) { s.cam.SetScale(scale) }

// AddBackground 添加背景视差层
func (s *Stage) AddBackground(l *parallax.Layer, z int) { s.background.AddLayer(l, z) }

// AddForeground 添加前景视差层
func (s *Stage) AddForeground(l *parallax.Layer, z int) { s.foreground.AddLayer(l, z) }

// SetBackgroundColor 设置帧背景色
func (s *Stage) SetBackgroundColor(c color.RGBA) { s.bg = c }

// BackgroundColor 当前背景色
func (s *Stage) BackgroundColor() color.RGBA { return s.bg }

// SetMusic 设置关卡音乐，世界激活时循环播放
func (s *Stage) SetMusic(name string) { s.music = name }

// After 世界计时器：delay 秒后执行一次
func (s *Stage) After(delay float64, action func()) *scene.Timer {
	return s.worldScene.After(delay, action)
}

// Every 世界计时器：每 interval 秒执行一次
func (s *Stage) Every(interval float64, action func()) *scene.Timer {
	return s.worldScene.Every(interval, action)
}

// Facts 事实存储
func (s *Stage) Facts() *facts.Store { return s.facts }
