package actors

import "github.com/decker502/lol/pkg/physics"

// ProjectileState 投射物专属状态
type ProjectileState struct {
	Damage             int
	Range              float64     // 离开 Origin 超过该距离后消失；<=0 表示不限
	Origin             physics.Vec // 最近一次抛出的位置
	DisappearOnCollide bool        // 撞到实体障碍物后消失
}

// NewProjectile 创建投射物（无重力的动态传感器）
func NewProjectile(env Env, world physics.World, cfg Config) *Actor {
	a := newActor(KindProjectile, env, world, cfg, physics.Dynamic, true)
	a.Projectile = &ProjectileState{Damage: 1, DisappearOnCollide: true}
	a.configureProjectileBody()
	return a
}

func (a *Actor) configureProjectileBody() {
	if a.body == nil {
		return
	}
	a.body.SetGravityScale(0)
	a.body.SetBullet(true)
}

// OutOfRange 是否已超出射程
func (a *Actor) OutOfRange() bool {
	p := a.Projectile
	if p == nil || p.Range <= 0 {
		return false
	}
	return a.Position().Sub(p.Origin).Len() > p.Range
}

// 投射物 vs 障碍物：有回调时由回调决定去留
func projectileObstacle(proj, obstacle *Actor, c physics.Contact) {
	if fn := obstacle.Obstacle.OnProjectile; fn != nil {
		fn(obstacle, proj, c)
		return
	}
	if !obstacle.Sensor() && proj.Projectile.DisappearOnCollide {
		proj.Remove(false)
	}
}
