// Package score 实现关卡的计分与胜负状态机
//
// 状态只有三种：Active → Won 或 Active → Lost，终态不可再转换。
// Score 只负责判定；"关卡结束"的转场由调用方（Stage）用一次性闩锁保证只触发一次。
package score

import "github.com/decker502/lol/pkg/diag"

var logger = diag.For("Score")

// State 关卡状态
type State int

const (
	// Active 进行中
	Active State = iota
	// Won 胜利（终态）
	Won
	// Lost 失败（终态）
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "active"
	}
}

// VictoryType 胜利条件类型
type VictoryType int

const (
	// VictoryByDestination 到达目的地的英雄数量
	VictoryByDestination VictoryType = iota
	// VictoryByGoodies 四个收集计数同时达标
	VictoryByGoodies
	// VictoryByEnemies 击败敌人数量
	VictoryByEnemies
)

// Disabled 倒计时/秒表的禁用哨兵值（与 0 不同）
const Disabled = -100.0

// AllEnemies 胜利敌人数的哨兵值：必须击败所有创建的敌人
const AllEnemies = -1

// Score 单个关卡的计分状态
type Score struct {
	state State

	victoryType        VictoryType
	victoryHeroCount   int
	victoryGoodieCount [4]int
	victoryEnemyCount  int

	goodiesCollected [4]int

	heroesCreated  int
	heroesDefeated int

	enemiesCreated  int
	enemiesDefeated int

	destinationArrivals int

	loseCountdown float64
	winCountdown  float64
	stopwatch     float64
}

// New 创建计分器（已 Reset）
func New() *Score {
	s := &Score{}
	s.Reset()
	return s
}

// Reset 每个关卡开始时调用
func (s *Score) Reset() {
	*s = Score{
		victoryType:      VictoryByDestination,
		victoryHeroCount: 1,
		loseCountdown:    Disabled,
		winCountdown:     Disabled,
		stopwatch:        Disabled,
	}
}

// State 当前状态
func (s *Score) State() State { return s.state }

// transition 只允许离开 Active
func (s *Score) transition(to State, reason string) {
	if s.state != Active {
		return
	}
	s.state = to
	logger.Info("level finished", "state", to.String(), "reason", reason)
}

// ---- 胜利条件配置 ----

// SetVictoryDestination 到达目的地的英雄数 >= count 时胜利
func (s *Score) SetVictoryDestination(count int) {
	s.victoryType = VictoryByDestination
	s.victoryHeroCount = count
}

// SetVictoryGoodies 四个计数同时 >= 阈值时胜利
func (s *Score) SetVictoryGoodies(v1, v2, v3, v4 int) {
	s.victoryType = VictoryByGoodies
	s.victoryGoodieCount = [4]int{v1, v2, v3, v4}
}

// SetVictoryEnemyCount 击败敌人数 >= count 时胜利；AllEnemies 表示全部击败
func (s *Score) SetVictoryEnemyCount(count int) {
	s.victoryType = VictoryByEnemies
	s.victoryEnemyCount = count
}

// VictoryType 当前胜利条件类型
func (s *Score) VictoryType() VictoryType { return s.victoryType }

// ---- 事件 ----

// OnHeroCreated 英雄创建时调用
func (s *Score) OnHeroCreated() { s.heroesCreated++ }

// OnEnemyCreated 敌人创建时调用
func (s *Score) OnEnemyCreated() { s.enemiesCreated++ }

// OnDestinationArrive 英雄进入目的地
func (s *Score) OnDestinationArrive() {
	s.destinationArrivals++
	if s.victoryType == VictoryByDestination && s.destinationArrivals >= s.victoryHeroCount {
		s.transition(Won, "destination")
	}
}

// OnGoodieCollected 按四维分值向量累加计数（分量可以为负）
func (s *Score) OnGoodieCollected(delta [4]int) {
	for i := range delta {
		s.goodiesCollected[i] += delta[i]
	}
	if s.victoryType != VictoryByGoodies {
		return
	}
	for i := range s.goodiesCollected {
		if s.goodiesCollected[i] < s.victoryGoodieCount[i] {
			return
		}
	}
	s.transition(Won, "goodies")
}

// OnDefeatHero 英雄被击败；mustSurvive 的英雄被击败时立即失败
func (s *Score) OnDefeatHero(mustSurvive bool) {
	s.heroesDefeated++
	if mustSurvive {
		s.transition(Lost, "must-survive hero defeated")
		return
	}
	if s.heroesDefeated >= s.heroesCreated {
		s.transition(Lost, "all heroes defeated")
	}
}

// OnDefeatEnemy 敌人被击败
func (s *Score) OnDefeatEnemy() {
	s.enemiesDefeated++
	if s.victoryType != VictoryByEnemies {
		return
	}
	if s.victoryEnemyCount == AllEnemies {
		if s.enemiesDefeated == s.enemiesCreated {
			s.transition(Won, "all enemies defeated")
		}
		return
	}
	if s.enemiesDefeated >= s.victoryEnemyCount {
		s.transition(Won, "enemy count")
	}
}

// ---- 计时 ----

// SetLoseCountdown 设置失败倒计时（秒），Disabled 表示关闭
func (s *Score) SetLoseCountdown(seconds float64) { s.loseCountdown = seconds }

// SetWinCountdown 设置胜利倒计时（秒），Disabled 表示关闭
func (s *Score) SetWinCountdown(seconds float64) { s.winCountdown = seconds }

// StartStopwatch 开启秒表（从 0 开始累加）
func (s *Score) StartStopwatch() { s.stopwatch = 0 }

// UpdateTimerExpiration 延长失败倒计时，不重置已流逝时间
func (s *Score) UpdateTimerExpiration(delta float64) {
	if s.loseCountdown == Disabled {
		return
	}
	s.loseCountdown += delta
}

// ExtendWinCountdown 延长胜利倒计时
func (s *Score) ExtendWinCountdown(delta float64) {
	if s.winCountdown == Disabled {
		return
	}
	s.winCountdown += delta
}

// Tick 每帧推进倒计时与秒表，返回推进后的状态
//
// 失败倒计时先于胜利倒计时检查。
func (s *Score) Tick(elapsed float64) State {
	if s.state != Active {
		return s.state
	}
	if s.loseCountdown != Disabled {
		s.loseCountdown -= elapsed
		if s.loseCountdown < 0 {
			s.transition(Lost, "lose countdown")
			return s.state
		}
	}
	if s.winCountdown != Disabled {
		s.winCountdown -= elapsed
		if s.winCountdown < 0 {
			s.transition(Won, "win countdown")
			return s.state
		}
	}
	if s.stopwatch != Disabled {
		s.stopwatch += elapsed
	}
	return s.state
}

// ---- 查询 ----

// Goodies 第 i 个收集计数（0..3）
func (s *Score) Goodies(i int) int { return s.goodiesCollected[i] }

// GoodieVector 四个收集计数
func (s *Score) GoodieVector() [4]int { return s.goodiesCollected }

// HeroesCreated 已创建英雄数
func (s *Score) HeroesCreated() int { return s.heroesCreated }

// HeroesDefeated 已击败英雄数
func (s *Score) HeroesDefeated() int { return s.heroesDefeated }

// EnemiesCreated 已创建敌人数
func (s *Score) EnemiesCreated() int { return s.enemiesCreated }

// EnemiesDefeated 已击败敌人数
func (s *Score) EnemiesDefeated() int { return s.enemiesDefeated }

// DestinationArrivals 到达目的地的英雄数
func (s *Score) DestinationArrivals() int { return s.destinationArrivals }

// LoseCountdown 失败倒计时剩余（Disabled 表示关闭）
func (s *Score) LoseCountdown() float64 { return s.loseCountdown }

// WinCountdown 胜利倒计时剩余（Disabled 表示关闭）
func (s *Score) WinCountdown() float64 { return s.winCountdown }

// Stopwatch 秒表读数（Disabled 表示关闭）
func (s *Score) Stopwatch() float64 { return s.stopwatch }
