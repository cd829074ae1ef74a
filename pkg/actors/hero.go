package actors

import (
	"math"

	"github.com/decker502/lol/pkg/physics"
)

// HeroState 英雄专属状态
type HeroState struct {
	Strength     int         // 力量，受到的伤害 >= 力量时英雄被击败
	Invincible   float64     // 剩余无敌时间（秒）
	MustSurvive  bool        // 被击败时关卡立即失败
	InAir        bool        // 跳跃中
	Crawling     bool        // 爬行中
	Rotation     float64     // 人为施加的旋转（弧度），落地时清除
	JumpImpulse  physics.Vec // 起跳时叠加的速度
	MultiJump    bool        // 空中可再次起跳
	JumpSound    string
	DefeatSound  string
	OnStrength   func(h *Actor) // 力量变化回调
	OnInvincible func(h *Actor) // 无敌结束回调
}

// NewHero 创建英雄（动态刚体），并计入得分
func NewHero(env Env, world physics.World, cfg Config) *Actor {
	a := newActor(KindHero, env, world, cfg, physics.Dynamic, false)
	a.Hero = &HeroState{Strength: 1}
	if env != nil {
		env.Score().OnHeroCreated()
	}
	return a
}

// AddStrength 调整力量并触发回调
func (a *Actor) AddStrength(delta int) {
	h := a.Hero
	if h == nil {
		return
	}
	h.Strength += delta
	if h.OnStrength != nil {
		h.OnStrength(a)
	}
}

// SetInvincible 设置无敌持续时间（秒）
func (a *Actor) SetInvincible(seconds float64) {
	if a.Hero == nil {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	a.Hero.Invincible = seconds
}

// IsInvincible 是否处于无敌状态
func (a *Actor) IsInvincible() bool {
	return a.Hero != nil && a.Hero.Invincible > 0
}

func (a *Actor) tickInvincibility(elapsed float64) {
	h := a.Hero
	if h.Invincible <= 0 {
		return
	}
	h.Invincible -= elapsed
	if h.Invincible <= 0 {
		h.Invincible = 0
		if h.OnInvincible != nil {
			h.OnInvincible(a)
		}
	}
}

// Jump 起跳；已在空中且不允许多段跳时忽略
func (a *Actor) Jump() {
	h := a.Hero
	if h == nil || !a.enabled {
		return
	}
	if h.InAir && !h.MultiJump {
		return
	}
	a.SetVelocity(a.Velocity().Add(h.JumpImpulse))
	h.InAir = true
	if h.JumpSound != "" && a.env != nil {
		a.env.PlaySound(h.JumpSound)
	}
}

// crawlAngle 爬行姿态的角度
const crawlAngle = -math.Pi / 2

// Crawl 进入爬行：躺倒 90 度
//
// 姿态角直接设置，不计入人为旋转，因此接触障碍物不会把英雄扶正。
func (a *Actor) Crawl() {
	h := a.Hero
	if h == nil || h.Crawling {
		return
	}
	h.Crawling = true
	a.SetAngle(crawlAngle)
}

// StopCrawl 结束爬行并站直
func (a *Actor) StopCrawl() {
	h := a.Hero
	if h == nil || !h.Crawling {
		return
	}
	h.Crawling = false
	h.Rotation = 0
	a.SetAngle(0)
}

func (a *Actor) rotate(delta float64) {
	a.Hero.Rotation += delta
	a.SetAngle(a.Angle() + delta)
}

// DefeatHero 移除英雄并计为英雄损失
func (a *Actor) DefeatHero() {
	h := a.Hero
	if h == nil || !a.enabled {
		return
	}
	a.Remove(false)
	if h.DefeatSound != "" && a.env != nil {
		a.env.PlaySound(h.DefeatSound)
	}
	if a.env != nil {
		a.env.Score().OnDefeatHero(h.MustSurvive)
	}
}

// 英雄 vs 敌人：按顺序恰好触发一个分支
func heroEnemy(hero, enemy *Actor, c physics.Contact) {
	h, e := hero.Hero, enemy.Enemy
	switch {
	case e.AlwaysDoesDamage:
		hero.DefeatHero()
	case hero.IsInvincible() && !e.ImmuneToInvincibility:
		enemy.DefeatEnemy(true, hero)
	case h.Crawling && e.DefeatByCrawl:
		enemy.DefeatEnemy(true, hero)
	case h.InAir && e.DefeatByJump && hero.Bottom() < enemy.Y():
		enemy.DefeatEnemy(true, hero)
	case e.Damage >= h.Strength:
		hero.DefeatHero()
	default:
		hero.AddStrength(-e.Damage)
		enemy.DefeatEnemy(true, hero)
	}
}

// 英雄 vs 目的地
func heroDestination(hero, dest *Actor, c physics.Contact) {
	if !dest.Receive(hero) {
		return
	}
	hero.Remove(true)
	if hero.env != nil {
		hero.env.Score().OnDestinationArrive()
	}
}

// 英雄 vs 障碍物
func heroObstacle(hero, obstacle *Actor, c physics.Contact) {
	h, o := hero.Hero, obstacle.Obstacle
	solid := !obstacle.Sensor()
	if solid && h.Rotation != 0 {
		hero.rotate(-h.Rotation)
	}
	if o.OnHero != nil {
		o.OnHero(obstacle, hero, c)
	}
	if (h.InAir || h.MultiJump) && solid && !o.NoJumpReenable {
		h.InAir = false
	}
}

// 英雄 vs 奖励物
func heroGoodie(hero, goodie *Actor, c physics.Contact) {
	g := goodie.Goodie
	goodie.Remove(false)
	if g.OnCollect != nil {
		g.OnCollect(goodie, hero)
	}
	if hero.env != nil {
		hero.env.Score().OnGoodieCollected(g.Score)
	}
}
