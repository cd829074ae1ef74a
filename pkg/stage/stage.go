// Package stage 编排关卡：场景集合、覆盖层生命周期、固定步长的每帧顺序与关卡 API
//
// 任意时刻只有两种状态之一：
//   - WorldActive：世界场景与 HUD 场景模拟、渲染并接收手势
//   - OverlayActive：恰好一个覆盖层（欢迎/暂停/胜利/失败）渲染并接收手势，世界被冻结
//
// Stage 本身就是传给关卡构建函数的"关卡上下文"，所有创建角色、修改得分、
// 注册覆盖层的调用都显式经过它。
package stage

import (
	"image/color"

	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/camera"
	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/facts"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/scene"
	"github.com/decker502/lol/pkg/score"
)

var logger = diag.For("Stage")

// State 舞台状态
type State int

const (
	WorldActive State = iota
	OverlayActive
)

func (s State) String() string {
	if s == OverlayActive {
		return "overlay"
	}
	return "world"
}

// Navigator 关卡切换协作者
type Navigator interface {
	Advance() // 进入下一关
	Repeat()  // 重玩本关
	Quit()
}

// Recorder 关卡结果记录（可选）
type Recorder interface {
	Record(level int, won bool, seconds float64) error
}

// Audio 音频协作者
type Audio interface {
	PlaySound(name string)
	PlayMusic(name string)
	StopMusic()
	MusicPlaying() bool
}

// BuildFunc 关卡构建函数
type BuildFunc func(s *Stage)

// Deps 舞台的外部协作者；除 Config 与 NewWorld 外都可以为 nil
type Deps struct {
	Config   config.Engine
	Audio    Audio
	Input    Input
	Nav      Navigator
	Facts    *facts.Store
	Recorder Recorder
	NewWorld func(gravity physics.Vec) physics.World
}

type navRequest int

const (
	navNone navRequest = iota
	navAdvance
	navRepeat
	navQuit
)

// Stage 舞台
type Stage struct {
	cfg        config.Engine
	audio      Audio
	input      Input
	nav        Navigator
	facts      *facts.Store
	recorder   Recorder
	newWorld   func(gravity physics.Vec) physics.World
	score      *score.Score
	dispatcher *actors.Dispatcher

	level      int
	world      physics.World
	cam        *camera.Camera
	hudCam     *camera.Camera
	worldScene *scene.Scene
	hud        *scene.Scene
	background *scene.Scene
	foreground *scene.Scene
	pools      []*actors.Pool

	overlay      *Overlay
	welcome      Builder
	win          Builder
	lose         Builder
	pendingPause Builder
	welcomeDone  bool

	ended      bool
	pendingNav navRequest
	bg         color.RGBA
	music      string
	chase      *actors.Actor
	tilt       tilt
	drawDelta  float64
}

// New 创建舞台；之后调用 Start 加载关卡
func New(d Deps) *Stage {
	if d.NewWorld == nil {
		d.NewWorld = physics.NewWorld
	}
	if d.Facts == nil {
		d.Facts, _ = facts.New(nil)
	}
	s := &Stage{
		cfg:        d.Config,
		audio:      d.Audio,
		input:      d.Input,
		nav:        d.Nav,
		facts:      d.Facts,
		recorder:   d.Recorder,
		newWorld:   d.NewWorld,
		score:      score.New(),
		dispatcher: actors.NewDispatcher(),
	}
	s.hudCam = camera.New(d.Config.ScreenWidth, d.Config.ScreenHeight, 1,
		float64(d.Config.ScreenWidth), float64(d.Config.ScreenHeight))
	return s
}

// Start 拆除当前关卡并构建新关卡
func (s *Stage) Start(level int, build BuildFunc) {
	s.teardown()
	s.level = level

	s.world = s.newWorld(s.cfg.Gravity())
	s.world.SetIterations(s.cfg.VelocityIters, s.cfg.PositionIters)
	s.world.SetContactListener(s.dispatcher.OnContact)

	w, h := float64(s.cfg.ScreenWidth), float64(s.cfg.ScreenHeight)
	ppm := s.cfg.PixelsPerMeter
	s.cam = camera.New(s.cfg.ScreenWidth, s.cfg.ScreenHeight, ppm, w/ppm, h/ppm)
	s.worldScene = scene.New("world", s.world, s.cam)
	s.background = scene.New("background", nil, s.cam)
	s.foreground = scene.New("foreground", nil, s.cam)
	s.hud = scene.New("hud", nil, s.hudCam)

	logger.Info("level start", "level", level)
	if build != nil {
		build(s)
	}
}

// teardown 停止音乐、重置得分、清空关卡事实与覆盖层构建器、重置背景色并丢弃所有场景
func (s *Stage) teardown() {
	if s.audio != nil {
		s.audio.StopMusic()
	}
	s.music = ""
	s.score.Reset()
	s.facts.ClearLevel()
	s.welcome, s.win, s.lose, s.pendingPause = nil, nil, nil, nil
	s.welcomeDone = false
	s.overlay = nil
	s.bg = color.RGBA{}
	s.worldScene, s.hud, s.background, s.foreground = nil, nil, nil, nil
	s.world = nil
	s.pools = nil
	s.chase = nil
	s.tilt = tilt{}
	s.ended = false
	s.pendingNav = navNone
	s.drawDelta = 0
}

// State 当前舞台状态
func (s *Stage) State() State {
	if s.overlay != nil {
		return OverlayActive
	}
	return WorldActive
}

// Level 当前关卡序号
func (s *Stage) Level() int { return s.level }

// Config 引擎配置
func (s *Stage) Config() config.Engine { return s.cfg }

// Ended 本关是否已结束
func (s *Stage) Ended() bool { return s.ended }

// Score 本关得分（actors.Env）
func (s *Stage) Score() *score.Score { return s.score }

// PlaySound 播放音效（actors.Env）
func (s *Stage) PlaySound(name string) {
	if s.audio != nil && name != "" {
		s.audio.PlaySound(name)
	}
}

// endLevel 关卡结束，只生效一次
func (s *Stage) endLevel(won bool) {
	if s.ended {
		return
	}
	s.ended = true
	s.pendingPause = nil
	logger.Info("level ended", "level", s.level, "won", won)

	if s.recorder != nil {
		secs := s.score.Stopwatch()
		if secs == score.Disabled {
			secs = 0
		}
		if err := s.recorder.Record(s.level, won, secs); err != nil {
			logger.Urgent("failed to record outcome", "level", s.level, "err", err)
		}
	}
	if s.audio != nil {
		s.audio.StopMusic()
	}

	builder, kind, next := s.lose, OverlayLose, navRepeat
	if won {
		builder, kind, next = s.win, OverlayWin, navAdvance
	}
	if builder == nil {
		s.pendingNav = next
		return
	}
	s.show(kind, builder)
}

// Advance 请求进入下一关（在本帧结束时执行）
func (s *Stage) Advance() { s.pendingNav = navAdvance }

// Repeat 请求重玩本关
func (s *Stage) Repeat() { s.pendingNav = navRepeat }

// Quit 请求退出
func (s *Stage) Quit() { s.pendingNav = navQuit }

// navigate 执行挂起的关卡切换
func (s *Stage) navigate() {
	req := s.pendingNav
	s.pendingNav = navNone
	if s.nav == nil || req == navNone {
		return
	}
	switch req {
	case navAdvance:
		s.nav.Advance()
	case navRepeat:
		s.nav.Repeat()
	case navQuit:
		s.nav.Quit()
	}
}
