package actors

import "github.com/decker502/lol/pkg/physics"

// DestinationState 目的地专属状态
type DestinationState struct {
	Capacity     int
	Holding      int
	ArrivalSound string
	Gate         func(d, hero *Actor) bool // 返回 false 拒绝进入
}

// NewDestination 创建目的地（静态传感器），默认容量 1
func NewDestination(env Env, world physics.World, cfg Config) *Actor {
	a := newActor(KindDestination, env, world, cfg, physics.Static, true)
	a.Destination = &DestinationState{Capacity: 1}
	return a
}

// Receive 尝试接收英雄，成功时占用一个容量
func (a *Actor) Receive(hero *Actor) bool {
	d := a.Destination
	if d == nil {
		return false
	}
	if d.Holding >= d.Capacity {
		return false
	}
	if d.Gate != nil && !d.Gate(a, hero) {
		return false
	}
	d.Holding++
	if d.ArrivalSound != "" && a.env != nil {
		a.env.PlaySound(d.ArrivalSound)
	}
	return true
}
