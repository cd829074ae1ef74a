package actors

import "github.com/decker502/lol/pkg/physics"

// Pool 固定大小的投射物池
type Pool struct {
	items []*Actor
	next  int
	Sound string // 抛出音效
}

// NewPool 创建 n 个投射物，全部处于未启用状态
func NewPool(env Env, world physics.World, n int, cfg Config, damage int, rng float64) *Pool {
	if n <= 0 {
		logger.Urgent("projectile pool needs a positive size", "size", n)
		n = 1
	}
	p := &Pool{items: make([]*Actor, n)}
	for i := range p.items {
		a := NewProjectile(env, world, cfg)
		a.Projectile.Damage = damage
		a.Projectile.Range = rng
		a.Remove(true)
		a.pooled = true
		p.items[i] = a
	}
	return p
}

// Items 池中全部投射物，供场景注册渲染
func (p *Pool) Items() []*Actor { return p.items }

// Each 对每个投射物执行 fn
func (p *Pool) Each(fn func(a *Actor)) {
	for _, a := range p.items {
		fn(a)
	}
}

// Throw 从 from 的中心加 offset 处以 velocity 抛出下一个空闲投射物
//
// 没有空闲投射物时返回 nil。
func (p *Pool) Throw(from *Actor, offset, velocity physics.Vec) *Actor {
	for i := 0; i < len(p.items); i++ {
		idx := (p.next + i) % len(p.items)
		a := p.items[idx]
		if a.enabled {
			continue
		}
		p.next = (idx + 1) % len(p.items)
		start := from.Position().Add(offset)
		a.revive(start)
		a.configureProjectileBody()
		a.Projectile.Origin = start
		a.SetVelocity(velocity)
		if p.Sound != "" && a.env != nil {
			a.env.PlaySound(p.Sound)
		}
		return a
	}
	logger.Info("no projectile available")
	return nil
}

// Update 移除超出射程的投射物
func (p *Pool) Update() {
	for _, a := range p.items {
		if a.enabled && a.OutOfRange() {
			a.Remove(true)
		}
	}
}
