// Package physics 定义引擎对刚体物理的依赖边界
//
// 引擎核心只需要：
//   - 创建/销毁/变换刚体
//   - 以固定步长推进模拟
//   - 接收 "A 与 B 发生接触" 的回调
//   - 查询包含某点的刚体
//
// World/Body 是接口，生产环境使用 NewWorld()（Chipmunk2D 实现），
// 测试中使用手写的假实现。
//
// 坐标系：世界单位为米，Y 轴向下（与屏幕坐标一致）。
package physics

import "math"

// Vec 二维向量（世界单位）
type Vec struct {
	X, Y float64
}

// Add 向量加法
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub 向量减法
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Scale 数乘
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len 向量长度
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize 返回单位向量，零向量原样返回
func (v Vec) Normalize() Vec {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec{v.X / l, v.Y / l}
}

// BodyKind 刚体类型
type BodyKind int

const (
	// Static 静态刚体（不受力，不移动）
	Static BodyKind = iota
	// Kinematic 运动学刚体（由速度驱动，不受力）
	Kinematic
	// Dynamic 动态刚体（完整模拟）
	Dynamic
)

// ShapeKind 碰撞形状类型
type ShapeKind int

const (
	// Box 矩形（以中心为原点）
	Box ShapeKind = iota
	// Circle 圆形（半径取宽度的一半）
	Circle
	// Polygon 凸多边形（顶点相对中心，顺时针）
	Polygon
)

// Shape 形状描述
type Shape struct {
	Kind     ShapeKind
	Width    float64
	Height   float64
	Vertices []Vec // 仅 Polygon 使用
}

// Radius 圆形半径
func (s Shape) Radius() float64 {
	return s.Width / 2
}

// BodyDef 创建刚体所需的参数
type BodyDef struct {
	Kind       BodyKind
	Shape      Shape
	Position   Vec
	Density    float64
	Elasticity float64
	Friction   float64
	Sensor     bool
}

// Contact 物理引擎提供的不透明接触句柄
type Contact interface {
	// Normal 接触法线（从第一个刚体指向第二个）
	Normal() Vec
}

// ContactFunc 每次新接触时调用，a/b 的顺序无意义
type ContactFunc func(a, b Body, c Contact)

// Body 刚体
type Body interface {
	Kind() BodyKind
	SetKind(kind BodyKind)

	Position() Vec
	SetPosition(p Vec)
	Angle() float64
	SetAngle(radians float64)
	Velocity() Vec
	SetVelocity(v Vec)
	AngularVelocity() float64
	SetAngularVelocity(w float64)
	ApplyImpulse(impulse Vec)

	SetPhysics(density, elasticity, friction float64)
	SetGravityScale(scale float64)
	SetFixedRotation(fixed bool)
	// SetBullet 标记高速物体；不支持连续碰撞的实现可以忽略
	SetBullet(bullet bool)

	Sensor() bool
	SetSensor(sensor bool)

	// UserData 由引擎挂载的拥有者（通常是 *actors.Actor）
	UserData() interface{}
	SetUserData(data interface{})
}

// Joint 关节句柄
type Joint interface {
	// SetMotor 设置马达速度与最大扭矩（仅旋转关节有效）
	SetMotor(speed, maxTorque float64)
	// SetLimits 设置旋转角度限制（仅旋转关节有效）
	SetLimits(lower, upper float64)
}

// World 物理世界
type World interface {
	CreateBody(def BodyDef) Body
	// DestroyBody 销毁刚体；在 Step 期间调用时延迟到 Step 结束
	DestroyBody(b Body)

	SetGravity(g Vec)
	Gravity() Vec

	// Step 以固定步长推进模拟，接触回调在此期间触发
	Step(dt float64)
	SetIterations(velocity, position int)
	SetContactListener(fn ContactFunc)

	// BodyAt 返回形状包含该点的刚体，没有则返回 nil
	BodyAt(p Vec) Body

	// 关节
	Revolute(a, b Body, anchorA, anchorB Vec) Joint
	Weld(a, b Body, anchorA, anchorB Vec) Joint
	Distance(a, b Body, anchorA, anchorB Vec) Joint
	DestroyJoint(j Joint)
}
