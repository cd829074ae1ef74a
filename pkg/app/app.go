// Package app 提供游戏应用的核心包装器
//
// App 实现 ebiten.Game，把配置、存储、资源、音频、输入与舞台组装在一起，
// 并作为舞台的 Navigator 负责关卡之间的切换。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/diag"
	"github.com/decker502/lol/pkg/facts"
	"github.com/decker502/lol/pkg/game"
	"github.com/decker502/lol/pkg/input"
	"github.com/decker502/lol/pkg/levels"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/records"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/stage"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var logger = diag.For("App")

// FactUnlocked 游戏级事实：已解锁的最高关卡
const FactUnlocked = "unlocked"

// Options 定义应用启动配置
type Options struct {
	ConfigPath string // 为空时按默认查找顺序
	DBPath     string // 覆盖配置中的记录数据库路径
	Level      int    // 起始关卡，0 表示从已解锁的最高关卡开始
	File       string // 非空时只玩这一个 YAML 关卡
	Verbose    bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg     config.Engine
	stage   *stage.Stage
	input   *input.Sampler
	res     *game.ResourceManager
	facts   *facts.Store
	records *records.Store // 可为 nil
	levels  []levels.Level
	current int // 当前关卡序号，从 1 开始
	quit    bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// New 创建并初始化游戏应用
//
// 存储不可用时降级运行：事实只保存在内存中，关卡结果不记录。
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}
	if opts.Verbose {
		cfg.Verbose = true
	}
	diag.SetVerbose(cfg.Verbose)
	if opts.DBPath != "" {
		cfg.RecordsPath = opts.DBPath
	}

	list := levels.All()
	if opts.File != "" {
		l, err := levels.LoadFile(opts.File)
		if err != nil {
			return nil, fmt.Errorf("关卡加载失败: %w", err)
		}
		list = []levels.Level{l}
	}
	if len(list) == 0 {
		return nil, errors.New("no levels available")
	}

	store := openFacts(cfg.AppName)

	rec, err := records.Open(cfg.RecordsPath)
	if err != nil {
		logger.Urgent("level records disabled", "err", err)
		rec = nil
	}

	audioContext := audio.NewContext(48000)
	res := game.NewResourceManager(os.DirFS(cfg.AssetDir), audioContext)
	am := game.NewAudioManager(res, store, cfg)

	a := &App{
		cfg:     cfg,
		input:   input.NewSampler(),
		res:     res,
		facts:   store,
		records: rec,
		levels:  list,
	}
	deps := stage.Deps{
		Config:   cfg,
		Audio:    am,
		Input:    a.input,
		Nav:      a,
		Facts:    store,
		NewWorld: physics.NewWorld,
	}
	if rec != nil {
		deps.Recorder = rec
	}
	a.stage = stage.New(deps)

	a.start(a.firstLevel(opts.Level))
	return a, nil
}

// newApp 用给定的协作者组装应用（无窗口、无音频）
func newApp(cfg config.Engine, deps stage.Deps, list []levels.Level, store *facts.Store) *App {
	a := &App{cfg: cfg, facts: store, levels: list}
	deps.Config = cfg
	deps.Nav = a
	deps.Facts = store
	a.stage = stage.New(deps)
	return a
}

// openFacts 打开 gdata；失败时退回内存模式
func openFacts(appName string) *facts.Store {
	gm, err := facts.OpenManager(appName)
	if err != nil {
		logger.Urgent("game facts will not persist", "err", err)
		gm = nil
	}
	store, err := facts.New(gm)
	if err != nil {
		logger.Info("starting with empty game facts", "err", err)
	}
	return store
}

// firstLevel 显式指定优先，否则从已解锁的最高关卡开始
func (a *App) firstLevel(requested int) int {
	if requested > 0 {
		if requested > len(a.levels) {
			logger.Urgent("level out of range, starting at 1", "level", requested, "count", len(a.levels))
			return 1
		}
		return requested
	}
	n := a.facts.GameInt(FactUnlocked, 1)
	if n < 1 || n > len(a.levels) {
		return 1
	}
	return n
}

// start 构建第 n 关
func (a *App) start(n int) {
	a.current = n
	l := a.levels[n-1]
	logger.Info("starting level", "level", n, "name", l.Name)
	a.stage.Start(n, l.Build)
}

// Advance 进入下一关；最后一关之后回到第一关（stage.Navigator）
func (a *App) Advance() {
	next := a.current + 1
	if next > len(a.levels) {
		next = 1
	}
	if next > a.facts.GameInt(FactUnlocked, 1) {
		if err := a.facts.SetGameInt(FactUnlocked, next); err != nil {
			logger.Info("unlock progress kept in memory only", "err", err)
		}
	}
	a.start(next)
}

// Repeat 重玩本关（stage.Navigator）
func (a *App) Repeat() {
	a.start(a.current)
}

// Quit 结束游戏循环（stage.Navigator）
func (a *App) Quit() {
	a.quit = true
}

// Current 当前关卡序号
func (a *App) Current() int { return a.current }

// tick 推进一帧；返回 ebiten.Termination 表示退出
func (a *App) tick(elapsed float64) error {
	if a.input != nil {
		a.input.Update(elapsed)
	}
	a.stage.Update(elapsed)
	if a.quit {
		return ebiten.Termination
	}
	return nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.ScreenWidth, a.cfg.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// Esc / P 暂停
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if a.stage.State() == stage.WorldActive {
			a.stage.ShowPause(levels.PauseOverlay)
		}
	}

	return a.tick(1.0 / float64(ebiten.TPS()))
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.stage.Draw(render.NewScreenFrame(screen, a.res))
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.ScreenWidth, a.cfg.ScreenHeight
}

// Run 打开窗口并运行游戏循环，直到窗口关闭或关卡请求退出
func (a *App) Run() error {
	ebiten.SetWindowSize(a.cfg.ScreenWidth, a.cfg.ScreenHeight)
	ebiten.SetWindowTitle(a.cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(a)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close 释放存储
func (a *App) Close() error {
	if a.records != nil {
		return a.records.Close()
	}
	return nil
}
