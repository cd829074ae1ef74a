package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const stepDt = 1.0 / 45

func newCPWorld(gravity Vec) *cpWorld {
	return NewWorld(gravity).(*cpWorld)
}

func boxDef(kind BodyKind, x, y, w, h float64) BodyDef {
	return BodyDef{Kind: kind, Shape: Shape{Kind: Box, Width: w, Height: h}, Position: Vec{X: x, Y: y}, Density: 1}
}

func circleDef(kind BodyKind, x, y, d float64) BodyDef {
	return BodyDef{Kind: kind, Shape: Shape{Kind: Circle, Width: d, Height: d}, Position: Vec{X: x, Y: y}, Density: 1}
}

// contactCounter 记录监听器收到的接触
type contactCounter struct {
	n     int
	pairs [][2]Body
}

func (c *contactCounter) listen(a, b Body, _ Contact) {
	c.n++
	c.pairs = append(c.pairs, [2]Body{a, b})
}

func shapeCount(w *cpWorld) int {
	n := 0
	w.space.EachShape(func(*cp.Shape) { n++ })
	return n
}

func constraintCount(w *cpWorld) int {
	n := 0
	w.space.EachConstraint(func(*cp.Constraint) { n++ })
	return n
}

func TestStaticBodyMoveIsIndexed(t *testing.T) {
	w := newCPWorld(Vec{})
	var c contactCounter
	w.SetContactListener(c.listen)

	wall := w.CreateBody(boxDef(Static, 0, 0, 2, 2))
	ball := w.CreateBody(circleDef(Dynamic, 10, 0, 1))

	w.Step(stepDt)
	if c.n != 0 {
		t.Fatalf("contacts before the move = %d, want 0", c.n)
	}

	wall.SetPosition(Vec{X: 10, Y: 0})
	if got := wall.Position(); got.X != 10 || got.Y != 0 {
		t.Fatalf("Position = %v, want (10,0)", got)
	}
	if w.BodyAt(Vec{X: 0, Y: 0}) != nil {
		t.Error("old position should be empty after the move")
	}
	w.Step(stepDt)
	if c.n != 1 {
		t.Fatalf("contacts after the move = %d, want 1", c.n)
	}
	p := c.pairs[0]
	if !(p[0] == wall && p[1] == ball) && !(p[0] == ball && p[1] == wall) {
		t.Error("contact should report the wall and the ball")
	}
}

func TestStaticBodyMovedDuringStep(t *testing.T) {
	w := newCPWorld(Vec{})
	wall := w.CreateBody(boxDef(Static, 0, 0, 2, 2))
	w.CreateBody(circleDef(Dynamic, 0, 0, 1))

	w.SetContactListener(func(a, b Body, _ Contact) {
		wall.SetPosition(Vec{X: 20, Y: 20})
	})
	w.Step(stepDt)

	if len(w.pendingReindex) != 0 {
		t.Errorf("pending reindex = %d, want 0 after Step", len(w.pendingReindex))
	}
	if w.BodyAt(Vec{X: 20, Y: 20}) != wall {
		t.Error("wall should be found at its new position after Step")
	}
}

func TestDestroyDuringStepIsDeferred(t *testing.T) {
	w := newCPWorld(Vec{})
	pad := w.CreateBody(boxDef(Static, 0, 0, 2, 2))
	w.CreateBody(circleDef(Dynamic, 0, 0, 1))
	before := shapeCount(w)

	var deferred int
	w.SetContactListener(func(a, b Body, _ Contact) {
		w.DestroyBody(pad)
		deferred = len(w.pendingDestroy)
		// 重复销毁不再排队
		w.DestroyBody(pad)
	})
	w.Step(stepDt)

	if deferred != 1 {
		t.Errorf("pending destroy during Step = %d, want 1", deferred)
	}
	if len(w.pendingDestroy) != 0 {
		t.Errorf("pending destroy after Step = %d, want 0", len(w.pendingDestroy))
	}
	if got := shapeCount(w); got != before-1 {
		t.Errorf("shapes = %d, want %d", got, before-1)
	}
	if w.BodyAt(Vec{}) == pad {
		t.Error("destroyed body should not be found")
	}
}

func TestGravityScale(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
	}{
		{"no gravity", 0},
		{"normal", 1},
		{"double", 2},
		{"reversed", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newCPWorld(Vec{Y: 10})
			b := w.CreateBody(circleDef(Dynamic, 0, 0, 1))
			b.SetGravityScale(tt.scale)
			w.Step(stepDt)

			want := 10 * tt.scale * stepDt
			if got := b.Velocity().Y; math.Abs(got-want) > 1e-9 {
				t.Errorf("velocity y = %v, want %v", got, want)
			}
		})
	}
}

func TestFixedRotation(t *testing.T) {
	w := newCPWorld(Vec{})
	b := w.CreateBody(boxDef(Dynamic, 0, 0, 1, 2))
	b.SetAngularVelocity(3)

	b.SetFixedRotation(true)
	cb := b.(*cpBody)
	if !math.IsInf(cb.body.Moment(), 1) {
		t.Errorf("moment = %v, want +Inf", cb.body.Moment())
	}
	if b.AngularVelocity() != 0 {
		t.Errorf("angular velocity = %v, want 0", b.AngularVelocity())
	}

	// 修改材质参数时保持固定旋转
	b.SetPhysics(2, 0, 0.5)
	if !math.IsInf(cb.body.Moment(), 1) {
		t.Error("SetPhysics should keep the infinite moment")
	}

	b.SetFixedRotation(false)
	if m := cb.body.Moment(); math.IsInf(m, 0) || m <= 0 {
		t.Errorf("moment = %v, want finite and positive", m)
	}
}

func TestContactReportedOncePerTouch(t *testing.T) {
	tests := []struct {
		name   string
		sensor bool
		x      float64
		want   int
	}{
		{"sensor overlap", true, 0, 1},
		{"sensor apart", true, 10, 0},
		{"solid apart", false, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newCPWorld(Vec{})
			var c contactCounter
			w.SetContactListener(c.listen)

			def := boxDef(Static, 0, 0, 2, 2)
			def.Sensor = tt.sensor
			pad := w.CreateBody(def)
			w.CreateBody(circleDef(Dynamic, tt.x, 0, 1))
			if pad.Sensor() != tt.sensor {
				t.Fatalf("Sensor = %v, want %v", pad.Sensor(), tt.sensor)
			}

			for i := 0; i < 3; i++ {
				w.Step(stepDt)
			}
			if c.n != tt.want {
				t.Errorf("contacts = %d, want %d", c.n, tt.want)
			}
		})
	}
}

func TestBodyAt(t *testing.T) {
	w := newCPWorld(Vec{})
	b := w.CreateBody(boxDef(Static, 5, 5, 2, 2))

	tests := []struct {
		name string
		p    Vec
		want Body
	}{
		{"center", Vec{X: 5, Y: 5}, b},
		{"inside corner", Vec{X: 5.9, Y: 4.1}, b},
		{"outside", Vec{X: 20, Y: 20}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.BodyAt(tt.p); got != tt.want {
				t.Errorf("BodyAt(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	w.DestroyBody(b)
	if w.BodyAt(Vec{X: 5, Y: 5}) != nil {
		t.Error("destroyed body should not be found")
	}
}

func TestJointTeardown(t *testing.T) {
	tests := []struct {
		name string
		make func(w *cpWorld, a, b Body) Joint
		want int
	}{
		{"revolute with motor and limits", func(w *cpWorld, a, b Body) Joint {
			j := w.Revolute(a, b, Vec{}, Vec{})
			j.SetMotor(1, 100)
			j.SetMotor(2, 100) // 替换而不是叠加
			j.SetLimits(-1, 1)
			return j
		}, 3},
		{"weld", func(w *cpWorld, a, b Body) Joint { return w.Weld(a, b, Vec{}, Vec{}) }, 2},
		{"distance", func(w *cpWorld, a, b Body) Joint { return w.Distance(a, b, Vec{}, Vec{}) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name+" destroyed with body", func(t *testing.T) {
			w := newCPWorld(Vec{})
			a := w.CreateBody(circleDef(Dynamic, 0, 0, 1))
			b := w.CreateBody(circleDef(Dynamic, 3, 0, 1))
			tt.make(w, a, b)
			if got := constraintCount(w); got != tt.want {
				t.Fatalf("constraints = %d, want %d", got, tt.want)
			}
			w.DestroyBody(a)
			if got := constraintCount(w); got != 0 {
				t.Errorf("constraints after DestroyBody = %d, want 0", got)
			}
		})
		t.Run(tt.name+" destroyed directly", func(t *testing.T) {
			w := newCPWorld(Vec{})
			a := w.CreateBody(circleDef(Dynamic, 0, 0, 1))
			b := w.CreateBody(circleDef(Dynamic, 3, 0, 1))
			j := tt.make(w, a, b)
			w.DestroyJoint(j)
			w.DestroyJoint(j)
			if got := constraintCount(w); got != 0 {
				t.Errorf("constraints after DestroyJoint = %d, want 0", got)
			}
			// 关节已销毁后再销毁刚体不应重复移除
			w.DestroyBody(a)
			j.SetMotor(1, 1)
			if got := constraintCount(w); got != 0 {
				t.Errorf("destroyed joint should ignore SetMotor, constraints = %d", got)
			}
		})
	}
}
