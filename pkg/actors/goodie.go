package actors

import "github.com/decker502/lol/pkg/physics"

// GoodieState 奖励物专属状态
type GoodieState struct {
	Score     [4]int             // 拾取时累加到四个计数器的分值
	OnCollect func(g, by *Actor) // by 为拾取的英雄
}

// NewGoodie 创建奖励物（静态传感器），默认分值 (1,0,0,0)
func NewGoodie(env Env, world physics.World, cfg Config) *Actor {
	a := newActor(KindGoodie, env, world, cfg, physics.Static, true)
	a.Goodie = &GoodieState{Score: [4]int{1, 0, 0, 0}}
	return a
}

// SetScore 设置四维分值
func (a *Actor) SetScore(v1, v2, v3, v4 int) {
	if a.Goodie != nil {
		a.Goodie.Score = [4]int{v1, v2, v3, v4}
	}
}
