package actors

import "github.com/decker502/lol/pkg/physics"

// CollideFunc 障碍物碰撞回调；o 为障碍物，other 为对方角色
type CollideFunc func(o, other *Actor, c physics.Contact)

// ObstacleState 障碍物专属状态，回调按对方变体区分
type ObstacleState struct {
	OnHero         CollideFunc
	OnEnemy        CollideFunc
	OnProjectile   CollideFunc
	OnGoodie       CollideFunc
	NoJumpReenable bool // 英雄接触后不恢复起跳能力（如墙壁）
}

// NewObstacle 创建障碍物（静态刚体）
func NewObstacle(env Env, world physics.World, cfg Config) *Actor {
	a := newActor(KindObstacle, env, world, cfg, physics.Static, false)
	a.Obstacle = &ObstacleState{}
	return a
}

// 障碍物 vs 奖励物：只运行回调
func obstacleGoodie(obstacle, goodie *Actor, c physics.Contact) {
	if fn := obstacle.Obstacle.OnGoodie; fn != nil {
		fn(obstacle, goodie, c)
	}
}
