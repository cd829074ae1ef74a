// Package actors 定义场景中的角色及其碰撞响应
//
// Actor 是带变体标签的单一记录：公共字段（启用状态、形状、层、手势）平铺在 Actor 上，
// 各变体的专属状态放在对应的指针字段中（Hero/Enemy/Goodie/...），同一时刻只有与
// Kind 对应的那一个非空。碰撞响应由 Dispatcher 的 (KindA, KindB) 查表完成。
package actors

import (
	"math"

	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/route"
	"github.com/decker502/lol/pkg/score"
)

var logger = diag.For("Actor")

// Kind 角色变体
type Kind int

const (
	KindDecoration Kind = iota // 装饰、HUD 控件、覆盖层图片，不参与碰撞逻辑
	KindHero
	KindEnemy
	KindProjectile
	KindObstacle
	KindGoodie
	KindDestination
)

var kindNames = [...]string{"decoration", "hero", "enemy", "projectile", "obstacle", "goodie", "destination"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// z 层范围
const (
	MinZ = -2
	MaxZ = 2
)

// Env 角色与所在关卡交互的最小接口（由 stage 实现）
type Env interface {
	Score() *score.Score
	PlaySound(name string)
}

// Config 角色的位置、尺寸与外观描述
//
// X/Y 为左上角的世界坐标；缺省字段会被强制为安全默认值。
type Config struct {
	X, Y     float64
	W, H     float64
	Image    string
	Shape    physics.ShapeKind
	Vertices []physics.Vec // 仅多边形使用，相对中心、顺时针
	Z        int
}

// Actor 场景中的一个角色
type Actor struct {
	kind    Kind
	enabled bool
	pooled  bool // 属于投射物池，禁用后仍会被复用
	shape   physics.Shape
	z       int
	body    physics.Body
	world   physics.World
	env     Env
	center  physics.Vec // 无刚体角色（HUD/覆盖层）的中心
	def     physics.BodyDef

	follower *route.Follower

	Image          string
	DisappearSound string
	Gestures       Gestures
	Extra          interface{} // 关卡脚本自由使用的附加数据

	Hero        *HeroState
	Enemy       *EnemyState
	Goodie      *GoodieState
	Destination *DestinationState
	Obstacle    *ObstacleState
	Projectile  *ProjectileState
}

func clampZ(z int) int {
	if z < MinZ {
		return MinZ
	}
	if z > MaxZ {
		return MaxZ
	}
	return z
}

func shapeOf(cfg Config) physics.Shape {
	w, h := cfg.W, cfg.H
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	s := physics.Shape{Kind: cfg.Shape, Width: w, Height: h}
	if cfg.Shape == physics.Polygon {
		if len(cfg.Vertices) < 3 {
			logger.Urgent("polygon needs at least 3 vertices, using box", "vertices", len(cfg.Vertices))
			s.Kind = physics.Box
		} else {
			s.Vertices = append([]physics.Vec(nil), cfg.Vertices...)
		}
	}
	return s
}

// newActor 创建角色；world 为 nil 时角色没有刚体（HUD、覆盖层）
func newActor(kind Kind, env Env, world physics.World, cfg Config, bodyKind physics.BodyKind, sensor bool) *Actor {
	a := &Actor{
		kind:    kind,
		enabled: true,
		shape:   shapeOf(cfg),
		z:       clampZ(cfg.Z),
		world:   world,
		env:     env,
		Image:   cfg.Image,
	}
	a.center = physics.Vec{X: cfg.X + a.shape.Width/2, Y: cfg.Y + a.shape.Height/2}
	a.def = physics.BodyDef{
		Kind:     bodyKind,
		Shape:    a.shape,
		Position: a.center,
		Density:  1,
		Friction: 0.6,
		Sensor:   sensor,
	}
	if world != nil {
		a.attach()
	}
	return a
}

// attach 按 def 创建刚体
func (a *Actor) attach() {
	a.body = a.world.CreateBody(a.def)
	a.body.SetUserData(a)
}

// NewDecoration 创建没有碰撞逻辑的角色；world 为 nil 时不创建刚体
func NewDecoration(env Env, world physics.World, cfg Config) *Actor {
	return newActor(KindDecoration, env, world, cfg, physics.Static, true)
}

// Kind 变体
func (a *Actor) Kind() Kind { return a.kind }

// Enabled 是否启用
func (a *Actor) Enabled() bool { return a.enabled }

// Pooled 是否属于投射物池
func (a *Actor) Pooled() bool { return a.pooled }

// Z 所在层
func (a *Actor) Z() int { return a.z }

// Shape 形状
func (a *Actor) Shape() physics.Shape { return a.shape }

// Body 刚体；无刚体角色返回 nil
func (a *Actor) Body() physics.Body { return a.body }

// Size 宽高
func (a *Actor) Size() (float64, float64) { return a.shape.Width, a.shape.Height }

// Position 中心坐标
func (a *Actor) Position() physics.Vec {
	if a.body != nil {
		return a.body.Position()
	}
	return a.center
}

// SetPosition 设置中心坐标
func (a *Actor) SetPosition(p physics.Vec) {
	if a.body != nil {
		a.body.SetPosition(p)
		return
	}
	a.center = p
}

// X 左上角 X
func (a *Actor) X() float64 { return a.Position().X - a.shape.Width/2 }

// Y 左上角 Y
func (a *Actor) Y() float64 { return a.Position().Y - a.shape.Height/2 }

// Bottom 下边缘（y 轴向下）
func (a *Actor) Bottom() float64 { return a.Position().Y + a.shape.Height/2 }

// Velocity 线速度
func (a *Actor) Velocity() physics.Vec {
	if a.body == nil {
		return physics.Vec{}
	}
	return a.body.Velocity()
}

// SetVelocity 设置线速度
func (a *Actor) SetVelocity(v physics.Vec) {
	if a.body != nil {
		a.body.SetVelocity(v)
	}
}

// Angle 旋转角（弧度）
func (a *Actor) Angle() float64 {
	if a.body == nil {
		return 0
	}
	return a.body.Angle()
}

// SetAngle 设置旋转角（弧度）
func (a *Actor) SetAngle(radians float64) {
	if a.body != nil {
		a.body.SetAngle(radians)
	}
}

// Sensor 是否为传感器
func (a *Actor) Sensor() bool {
	if a.body == nil {
		return a.def.Sensor
	}
	return a.body.Sensor()
}

// SetPhysics 设置密度、弹性、摩擦
func (a *Actor) SetPhysics(density, elasticity, friction float64) {
	a.def.Density, a.def.Elasticity, a.def.Friction = density, elasticity, friction
	if a.body != nil {
		a.body.SetPhysics(density, elasticity, friction)
	}
}

// SetCanFall 使静态角色受重力影响
func (a *Actor) SetCanFall() {
	if a.body != nil {
		a.body.SetKind(physics.Dynamic)
	}
}

// SetMoveable 使静态角色可被速度驱动
func (a *Actor) SetMoveable() {
	if a.body != nil && a.body.Kind() == physics.Static {
		a.body.SetKind(physics.Kinematic)
	}
}

// DisableRotation 固定旋转
func (a *Actor) DisableRotation() {
	if a.body != nil {
		a.body.SetFixedRotation(true)
	}
}

// SetRoute 让角色沿路径移动；替换原有路径
func (a *Actor) SetRoute(r *route.Route, speed float64, loop bool) {
	if a.body != nil && a.body.Kind() == physics.Static {
		a.body.SetKind(physics.Kinematic)
	}
	a.follower = route.NewFollower(r, speed, loop, a)
}

// Follower 当前路径跟随器（可能为 nil）
func (a *Actor) Follower() *route.Follower { return a.follower }

// Update 每个物理步之前调用：驱动路径、推进无敌时间
func (a *Actor) Update(elapsed float64) {
	if !a.enabled {
		return
	}
	if a.follower != nil {
		a.follower.Drive(a)
	}
	if a.Hero != nil {
		a.tickInvincibility(elapsed)
	}
}

// Remove 禁用角色并销毁刚体；quiet 为 false 时播放消失音效
func (a *Actor) Remove(quiet bool) {
	if !a.enabled {
		return
	}
	a.enabled = false
	a.follower = nil
	if a.body != nil {
		a.world.DestroyBody(a.body)
		a.body = nil
	}
	if !quiet && a.DisappearSound != "" && a.env != nil {
		a.env.PlaySound(a.DisappearSound)
	}
}

// revive 为已禁用的角色重新创建刚体（投射物池复用）
func (a *Actor) revive(center physics.Vec) {
	a.def.Position = center
	a.center = center
	if a.world != nil {
		a.attach()
	}
	a.enabled = true
}

// Contains 判断世界坐标点是否落在角色包围盒内（含边）
func (a *Actor) Contains(p physics.Vec) bool {
	c := a.Position()
	hw, hh := a.shape.Width/2, a.shape.Height/2
	return p.X >= c.X-hw && p.X <= c.X+hw && p.Y >= c.Y-hh && p.Y <= c.Y+hh
}

// Render 绘制角色；禁用或不可见的角色被跳过
func (a *Actor) Render(f render.Frame, v render.View, elapsed float64) {
	if !a.enabled || a.Image == "" {
		return
	}
	x, y := a.X(), a.Y()
	if !v.InBounds(x, y, a.shape.Width, a.shape.Height) {
		return
	}
	sx, sy := v.WorldToScreen(physics.Vec{X: x, Y: y})
	s := v.Scale()
	f.Sprite(a.Image, sx, sy, a.shape.Width*s, a.shape.Height*s, normalizeAngle(a.Angle()))
}

func normalizeAngle(r float64) float64 {
	r = math.Mod(r, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}
