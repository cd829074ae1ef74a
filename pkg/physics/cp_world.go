package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/decker502/lol/pkg/diag"
)

var logger = diag.For("Physics")

// actorCollisionType 所有由引擎创建的形状共用同一碰撞类型，
// 通过单个 handler 把所有接触转交给 ContactFunc
const actorCollisionType cp.CollisionType = 1

// cpWorld 基于 Chipmunk2D 的 World 实现
type cpWorld struct {
	space    *cp.Space
	listener ContactFunc

	// Step 期间 space 被锁定，期间的销毁请求延迟执行
	stepping       bool
	pendingDestroy []*cpBody
	pendingReindex []*cpBody
}

// NewWorld 创建 Chipmunk2D 物理世界
//
// 参数：
//   - gravity: 初始重力（米/秒²，Y 轴向下为正）
func NewWorld(gravity Vec) World {
	w := &cpWorld{space: cp.NewSpace()}
	w.space.SetGravity(toCP(gravity))

	handler := w.space.NewCollisionHandler(actorCollisionType, actorCollisionType)
	handler.BeginFunc = w.onBegin
	return w
}

func toCP(v Vec) cp.Vector   { return cp.Vector{X: v.X, Y: v.Y} }
func fromCP(v cp.Vector) Vec { return Vec{X: v.X, Y: v.Y} }

// onBegin 新接触开始时调用，转换为 (Body, Body, Contact)
func (w *cpWorld) onBegin(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
	if w.listener == nil {
		return true
	}
	sa, sb := arb.Shapes()
	a, okA := sa.UserData.(*cpBody)
	b, okB := sb.UserData.(*cpBody)
	if !okA || !okB || a.destroyed || b.destroyed {
		return true
	}
	w.listener(a, b, cpContact{normal: fromCP(arb.Normal())})
	return true
}

func (w *cpWorld) CreateBody(def BodyDef) Body {
	var body *cp.Body
	switch def.Kind {
	case Static:
		body = cp.NewStaticBody()
	case Kinematic:
		body = cp.NewKinematicBody()
	default:
		body = cp.NewBody(0, 0)
	}
	body.SetPosition(toCP(def.Position))
	w.space.AddBody(body)

	var shape *cp.Shape
	switch def.Shape.Kind {
	case Circle:
		shape = cp.NewCircle(body, def.Shape.Radius(), cp.Vector{})
	case Polygon:
		verts := make([]cp.Vector, len(def.Shape.Vertices))
		for i, v := range def.Shape.Vertices {
			verts[i] = toCP(v)
		}
		if len(verts) < 3 {
			logger.Urgent("polygon needs at least 3 vertices, using box", "count", len(verts))
			shape = cp.NewBox(body, def.Shape.Width, def.Shape.Height, 0)
		} else {
			shape = cp.NewPolyShape(body, len(verts), verts, cp.NewTransformIdentity(), 0)
		}
	default:
		shape = cp.NewBox(body, def.Shape.Width, def.Shape.Height, 0)
	}
	shape.SetCollisionType(actorCollisionType)
	shape.SetSensor(def.Sensor)
	w.space.AddShape(shape)

	b := &cpBody{world: w, body: body, shape: shape, kind: def.Kind, gravityScale: 1}
	shape.UserData = b
	body.UserData = b
	b.SetPhysics(def.Density, def.Elasticity, def.Friction)
	return b
}

func (w *cpWorld) DestroyBody(b Body) {
	cb, ok := b.(*cpBody)
	if !ok || cb.destroyed {
		return
	}
	cb.destroyed = true
	if w.stepping {
		w.pendingDestroy = append(w.pendingDestroy, cb)
		return
	}
	w.remove(cb)
}

func (w *cpWorld) remove(cb *cpBody) {
	for _, j := range cb.joints {
		w.DestroyJoint(j)
	}
	w.space.RemoveShape(cb.shape)
	w.space.RemoveBody(cb.body)
}

func (w *cpWorld) SetGravity(g Vec) { w.space.SetGravity(toCP(g)) }
func (w *cpWorld) Gravity() Vec     { return fromCP(w.space.Gravity()) }

func (w *cpWorld) Step(dt float64) {
	w.stepping = true
	w.space.Step(dt)
	w.stepping = false

	for _, cb := range w.pendingDestroy {
		w.remove(cb)
	}
	w.pendingDestroy = w.pendingDestroy[:0]
	for _, cb := range w.pendingReindex {
		cb.reindex()
	}
	w.pendingReindex = w.pendingReindex[:0]
}

// SetIterations Chipmunk 只有一个迭代次数，取两者中较大值
func (w *cpWorld) SetIterations(velocity, position int) {
	n := velocity
	if position > n {
		n = position
	}
	if n < 1 {
		n = 1
	}
	w.space.Iterations = uint(n)
}

func (w *cpWorld) SetContactListener(fn ContactFunc) { w.listener = fn }

func (w *cpWorld) BodyAt(p Vec) Body {
	info := w.space.PointQueryNearest(toCP(p), 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil
	}
	if cb, ok := info.Shape.UserData.(*cpBody); ok && !cb.destroyed {
		return cb
	}
	return nil
}

func (w *cpWorld) addJoint(a, b Body, build func(ba, bb *cp.Body) []*cp.Constraint) Joint {
	ca, okA := a.(*cpBody)
	cb, okB := b.(*cpBody)
	if !okA || !okB {
		logger.Urgent("joint between foreign bodies ignored")
		return nil
	}
	j := &cpJoint{world: w, a: ca, b: cb}
	for _, c := range build(ca.body, cb.body) {
		j.constraints = append(j.constraints, w.space.AddConstraint(c))
	}
	ca.joints = append(ca.joints, j)
	cb.joints = append(cb.joints, j)
	return j
}

func (w *cpWorld) Revolute(a, b Body, anchorA, anchorB Vec) Joint {
	return w.addJoint(a, b, func(ba, bb *cp.Body) []*cp.Constraint {
		return []*cp.Constraint{cp.NewPivotJoint2(ba, bb, toCP(anchorA), toCP(anchorB))}
	})
}

// Weld 枢轴 + 齿轮（比例 1）锁定相对旋转
func (w *cpWorld) Weld(a, b Body, anchorA, anchorB Vec) Joint {
	return w.addJoint(a, b, func(ba, bb *cp.Body) []*cp.Constraint {
		return []*cp.Constraint{
			cp.NewPivotJoint2(ba, bb, toCP(anchorA), toCP(anchorB)),
			cp.NewGearJoint(ba, bb, bb.Angle()-ba.Angle(), 1),
		}
	})
}

func (w *cpWorld) Distance(a, b Body, anchorA, anchorB Vec) Joint {
	return w.addJoint(a, b, func(ba, bb *cp.Body) []*cp.Constraint {
		return []*cp.Constraint{cp.NewPinJoint(ba, bb, toCP(anchorA), toCP(anchorB))}
	})
}

func (w *cpWorld) DestroyJoint(j Joint) {
	cj, ok := j.(*cpJoint)
	if !ok || cj.destroyed {
		return
	}
	cj.destroyed = true
	for _, c := range cj.constraints {
		w.space.RemoveConstraint(c)
	}
	if cj.motor != nil {
		w.space.RemoveConstraint(cj.motor)
	}
	if cj.limit != nil {
		w.space.RemoveConstraint(cj.limit)
	}
}

// cpJoint 一个逻辑关节可能由多个 Chipmunk 约束组成
type cpJoint struct {
	world       *cpWorld
	a, b        *cpBody
	constraints []*cp.Constraint
	motor       *cp.Constraint
	limit       *cp.Constraint
	destroyed   bool
}

func (j *cpJoint) SetMotor(speed, maxTorque float64) {
	if j.destroyed {
		return
	}
	if j.motor != nil {
		j.world.space.RemoveConstraint(j.motor)
	}
	motor := cp.NewSimpleMotor(j.a.body, j.b.body, speed)
	motor.SetMaxForce(maxTorque)
	j.motor = j.world.space.AddConstraint(motor)
}

func (j *cpJoint) SetLimits(lower, upper float64) {
	if j.destroyed {
		return
	}
	if j.limit != nil {
		j.world.space.RemoveConstraint(j.limit)
	}
	j.limit = j.world.space.AddConstraint(cp.NewRotaryLimitJoint(j.a.body, j.b.body, lower, upper))
}

type cpContact struct {
	normal Vec
}

func (c cpContact) Normal() Vec { return c.normal }

// cpBody 一个刚体 + 一个形状
type cpBody struct {
	world        *cpWorld
	body         *cp.Body
	shape        *cp.Shape
	kind         BodyKind
	gravityScale float64
	fixed        bool
	userData     interface{}
	joints       []*cpJoint
	destroyed    bool
}

func (b *cpBody) Kind() BodyKind { return b.kind }

func (b *cpBody) SetKind(kind BodyKind) {
	b.kind = kind
	switch kind {
	case Static:
		b.body.SetType(cp.BODY_STATIC)
	case Kinematic:
		b.body.SetType(cp.BODY_KINEMATIC)
	default:
		b.body.SetType(cp.BODY_DYNAMIC)
		b.body.AccumulateMassFromShapes()
	}
}

func (b *cpBody) Position() Vec { return fromCP(b.body.Position()) }

func (b *cpBody) SetPosition(p Vec) {
	b.body.SetPosition(toCP(p))
	b.reindex()
}

// reindex 静态形状的包围盒只在加入 space 时计算，移动后需重新加入；
// Step 期间 space 被锁定，推迟到 Step 结束
func (b *cpBody) reindex() {
	if b.kind != Static || b.destroyed {
		return
	}
	if b.world.stepping {
		b.world.pendingReindex = append(b.world.pendingReindex, b)
		return
	}
	b.world.space.RemoveShape(b.shape)
	b.world.space.AddShape(b.shape)
}

func (b *cpBody) Angle() float64 { return b.body.Angle() }

func (b *cpBody) SetAngle(radians float64) {
	b.body.SetAngle(radians)
	b.reindex()
}

func (b *cpBody) Velocity() Vec            { return fromCP(b.body.Velocity()) }
func (b *cpBody) SetVelocity(v Vec)        { b.body.SetVelocity(v.X, v.Y) }
func (b *cpBody) AngularVelocity() float64 { return b.body.AngularVelocity() }
func (b *cpBody) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(w)
}

func (b *cpBody) ApplyImpulse(impulse Vec) {
	b.body.ApplyImpulseAtWorldPoint(toCP(impulse), b.body.Position())
}

// SetPhysics 密度为 0 时退化为 1，避免动态刚体质量为零
func (b *cpBody) SetPhysics(density, elasticity, friction float64) {
	if density <= 0 {
		density = 1
	}
	b.shape.SetElasticity(elasticity)
	b.shape.SetFriction(friction)
	if b.kind == Dynamic {
		b.shape.SetDensity(density)
		if b.fixed {
			b.body.SetMoment(math.Inf(1))
		}
	}
}

// SetGravityScale 通过自定义速度积分函数缩放重力
func (b *cpBody) SetGravityScale(scale float64) {
	b.gravityScale = scale
	b.body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, damping, dt float64) {
		cp.BodyUpdateVelocity(body, gravity.Mult(b.gravityScale), damping, dt)
	})
}

func (b *cpBody) SetFixedRotation(fixed bool) {
	b.fixed = fixed
	if b.kind != Dynamic {
		return
	}
	if fixed {
		b.body.SetAngularVelocity(0)
		b.body.SetMoment(math.Inf(1))
	} else {
		b.body.AccumulateMassFromShapes()
	}
}

// SetBullet Chipmunk 没有连续碰撞检测，这里只作记录
func (b *cpBody) SetBullet(bullet bool) {}

func (b *cpBody) Sensor() bool          { return b.shape.Sensor() }
func (b *cpBody) SetSensor(sensor bool) { b.shape.SetSensor(sensor) }

func (b *cpBody) UserData() interface{}        { return b.userData }
func (b *cpBody) SetUserData(data interface{}) { b.userData = data }
