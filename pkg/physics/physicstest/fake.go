// Package physicstest 提供 physics.World 的内存假实现，供各包测试使用
//
// 假世界只做最简单的显式欧拉积分，不做碰撞检测；
// 测试通过 Touch() 手动注入接触事件。
package physicstest

import "github.com/decker502/lol/pkg/physics"

// World 假物理世界
type World struct {
	Bodies    []*Body
	Destroyed []*Body
	Steps     int
	gravity   physics.Vec
	listener  physics.ContactFunc
	stepping  bool
	pending   []*Body
	Joints    []*Joint
	// OnStep 在每次 Step 积分之后调用，用于在"物理步"中注入接触
	OnStep func(w *World)
}

// NewWorld 创建假世界
func NewWorld() *World {
	return &World{}
}

func (w *World) CreateBody(def physics.BodyDef) physics.Body {
	b := &Body{
		world:        w,
		kind:         def.Kind,
		shape:        def.Shape,
		pos:          def.Position,
		sensor:       def.Sensor,
		GravityScale: 1,
	}
	w.Bodies = append(w.Bodies, b)
	return b
}

func (w *World) DestroyBody(b physics.Body) {
	fb, ok := b.(*Body)
	if !ok || fb.Gone {
		return
	}
	if w.stepping {
		w.pending = append(w.pending, fb)
		return
	}
	w.destroy(fb)
}

func (w *World) destroy(fb *Body) {
	fb.Gone = true
	w.Destroyed = append(w.Destroyed, fb)
}

func (w *World) SetGravity(g physics.Vec) { w.gravity = g }
func (w *World) Gravity() physics.Vec     { return w.gravity }

func (w *World) Step(dt float64) {
	w.stepping = true
	w.Steps++
	for _, b := range w.Bodies {
		if b.Gone || b.kind == physics.Static {
			continue
		}
		if b.kind == physics.Dynamic {
			b.vel = b.vel.Add(w.gravity.Scale(b.GravityScale * dt))
		}
		b.pos = b.pos.Add(b.vel.Scale(dt))
		b.angle += b.angVel * dt
	}
	if w.OnStep != nil {
		w.OnStep(w)
	}
	w.stepping = false
	for _, fb := range w.pending {
		w.destroy(fb)
	}
	w.pending = nil
}

func (w *World) SetIterations(velocity, position int) {}

func (w *World) SetContactListener(fn physics.ContactFunc) { w.listener = fn }

// Touch 注入一次 a/b 接触
func (w *World) Touch(a, b physics.Body) {
	if w.listener != nil {
		w.listener(a, b, Contact{})
	}
}

// BodyAt 以形状的轴对齐包围盒判断
func (w *World) BodyAt(p physics.Vec) physics.Body {
	for i := len(w.Bodies) - 1; i >= 0; i-- {
		b := w.Bodies[i]
		if b.Gone {
			continue
		}
		hw, hh := b.shape.Width/2, b.shape.Height/2
		if p.X >= b.pos.X-hw && p.X <= b.pos.X+hw && p.Y >= b.pos.Y-hh && p.Y <= b.pos.Y+hh {
			return b
		}
	}
	return nil
}

func (w *World) joint(kind string, a, b physics.Body) physics.Joint {
	j := &Joint{Kind: kind, A: a, B: b}
	w.Joints = append(w.Joints, j)
	return j
}

func (w *World) Revolute(a, b physics.Body, anchorA, anchorB physics.Vec) physics.Joint {
	return w.joint("revolute", a, b)
}

func (w *World) Weld(a, b physics.Body, anchorA, anchorB physics.Vec) physics.Joint {
	return w.joint("weld", a, b)
}

func (w *World) Distance(a, b physics.Body, anchorA, anchorB physics.Vec) physics.Joint {
	return w.joint("distance", a, b)
}

func (w *World) DestroyJoint(j physics.Joint) {
	if fj, ok := j.(*Joint); ok {
		fj.Destroyed = true
	}
}

// Joint 假关节
type Joint struct {
	Kind         string
	A, B         physics.Body
	MotorSpeed   float64
	MaxTorque    float64
	Lower, Upper float64
	Destroyed    bool
}

func (j *Joint) SetMotor(speed, maxTorque float64) {
	j.MotorSpeed, j.MaxTorque = speed, maxTorque
}

func (j *Joint) SetLimits(lower, upper float64) {
	j.Lower, j.Upper = lower, upper
}

// Contact 假接触
type Contact struct {
	N physics.Vec
}

func (c Contact) Normal() physics.Vec { return c.N }

// Body 假刚体
type Body struct {
	world        *World
	kind         physics.BodyKind
	shape        physics.Shape
	pos          physics.Vec
	vel          physics.Vec
	angle        float64
	angVel       float64
	sensor       bool
	userData     interface{}
	GravityScale float64
	Fixed        bool
	Bullet       bool
	Density      float64
	Elasticity   float64
	Friction     float64
	Impulses     []physics.Vec
	Gone         bool
}

func (b *Body) Kind() physics.BodyKind        { return b.kind }
func (b *Body) SetKind(kind physics.BodyKind) { b.kind = kind }
func (b *Body) Position() physics.Vec         { return b.pos }
func (b *Body) SetPosition(p physics.Vec)     { b.pos = p }
func (b *Body) Angle() float64                { return b.angle }
func (b *Body) SetAngle(radians float64)      { b.angle = radians }
func (b *Body) Velocity() physics.Vec         { return b.vel }
func (b *Body) SetVelocity(v physics.Vec)     { b.vel = v }
func (b *Body) AngularVelocity() float64      { return b.angVel }
func (b *Body) SetAngularVelocity(w float64)  { b.angVel = w }
func (b *Body) SetGravityScale(scale float64) { b.GravityScale = scale }
func (b *Body) SetFixedRotation(fixed bool)   { b.Fixed = fixed }
func (b *Body) SetBullet(bullet bool)         { b.Bullet = bullet }
func (b *Body) Sensor() bool                  { return b.sensor }
func (b *Body) SetSensor(sensor bool)         { b.sensor = sensor }
func (b *Body) UserData() interface{}         { return b.userData }
func (b *Body) SetUserData(data interface{})  { b.userData = data }

func (b *Body) ApplyImpulse(impulse physics.Vec) {
	b.Impulses = append(b.Impulses, impulse)
	b.vel = b.vel.Add(impulse)
}

func (b *Body) SetPhysics(density, elasticity, friction float64) {
	b.Density, b.Elasticity, b.Friction = density, elasticity, friction
}
