package actors

import "github.com/decker502/lol/pkg/physics"

// EnemyState 敌人专属状态
type EnemyState struct {
	Damage                int  // 对英雄的伤害，同时也是承受投射物的伤害池
	DefeatByCrawl         bool // 可被爬行的英雄击败
	DefeatByJump          bool // 可被从上方落下的英雄击败
	ImmuneToInvincibility bool // 不受英雄无敌影响
	AlwaysDoesDamage      bool // 接触即击败英雄
	DefeatSound           string
	OnDefeated            func(e, by *Actor) // by 可能为 nil
}

// NewEnemy 创建敌人（静态刚体），并计入得分
func NewEnemy(env Env, world physics.World, cfg Config) *Actor {
	a := newActor(KindEnemy, env, world, cfg, physics.Static, false)
	a.Enemy = &EnemyState{Damage: 2}
	if env != nil {
		env.Score().OnEnemyCreated()
	}
	return a
}

// DefeatEnemy 移除敌人；increment 为 true 时计入击败数
func (a *Actor) DefeatEnemy(increment bool, by *Actor) {
	e := a.Enemy
	if e == nil || !a.enabled {
		return
	}
	a.Remove(false)
	if e.DefeatSound != "" && a.env != nil {
		a.env.PlaySound(e.DefeatSound)
	}
	if increment && a.env != nil {
		a.env.Score().OnDefeatEnemy()
	}
	if e.OnDefeated != nil {
		e.OnDefeated(a, by)
	}
}

// 敌人 vs 障碍物：只运行障碍物回调
func enemyObstacle(enemy, obstacle *Actor, c physics.Contact) {
	if fn := obstacle.Obstacle.OnEnemy; fn != nil {
		fn(obstacle, enemy, c)
	}
}

// 敌人 vs 投射物：扣减伤害池
func enemyProjectile(enemy, proj *Actor, c physics.Contact) {
	if !proj.enabled {
		return
	}
	e := enemy.Enemy
	e.Damage -= proj.Projectile.Damage
	if e.Damage <= 0 {
		enemy.DefeatEnemy(true, proj)
		proj.Remove(true)
		return
	}
	proj.Remove(false)
}
