package app

import (
	"errors"
	"testing"

	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/facts"
	"github.com/decker502/lol/pkg/levels"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/physics/physicstest"
	"github.com/decker502/lol/pkg/stage"
	"github.com/hajimehoshi/ebiten/v2"
)

const dt = 1.0 / 60

type testApp struct {
	*App
	builds []int // 每关被构建的次数
}

// newTestApp n 个关卡；outcome 在每次构建时调用
func newTestApp(t *testing.T, n int, outcome func(s *stage.Stage)) *testApp {
	t.Helper()
	store, err := facts.New(nil)
	if err != nil {
		t.Fatalf("facts.New: %v", err)
	}
	ta := &testApp{builds: make([]int, n)}
	list := make([]levels.Level, n)
	for i := range list {
		i := i
		list[i] = levels.Level{Name: "L", Build: func(s *stage.Stage) {
			ta.builds[i]++
			if outcome != nil {
				outcome(s)
			}
		}}
	}
	deps := stage.Deps{NewWorld: func(physics.Vec) physics.World { return physicstest.NewWorld() }}
	ta.App = newApp(config.DefaultEngine(), deps, list, store)
	return ta
}

func TestFirstLevel(t *testing.T) {
	ta := newTestApp(t, 3, nil)
	if got := ta.firstLevel(0); got != 1 {
		t.Errorf("firstLevel(0) = %d, want 1", got)
	}
	if got := ta.firstLevel(2); got != 2 {
		t.Errorf("firstLevel(2) = %d, want 2", got)
	}
	if got := ta.firstLevel(9); got != 1 {
		t.Errorf("out of range level should start at 1, got %d", got)
	}
	if err := ta.facts.SetGameInt(FactUnlocked, 3); err != nil {
		t.Fatalf("SetGameInt: %v", err)
	}
	if got := ta.firstLevel(0); got != 3 {
		t.Errorf("firstLevel should resume at unlocked level, got %d", got)
	}
}

func TestAdvanceWrapsAndUnlocks(t *testing.T) {
	ta := newTestApp(t, 2, nil)
	ta.start(1)
	ta.Advance()
	if ta.Current() != 2 {
		t.Fatalf("Current = %d, want 2", ta.Current())
	}
	if got := ta.facts.GameInt(FactUnlocked, 1); got != 2 {
		t.Errorf("unlocked = %d, want 2", got)
	}
	ta.Advance()
	if ta.Current() != 1 {
		t.Errorf("Advance past the last level should wrap to 1, got %d", ta.Current())
	}
	if got := ta.facts.GameInt(FactUnlocked, 1); got != 2 {
		t.Errorf("wrapping must not lower unlocked, got %d", got)
	}
}

func TestRepeatRebuildsLevel(t *testing.T) {
	ta := newTestApp(t, 2, nil)
	ta.start(2)
	ta.Repeat()
	if ta.Current() != 2 || ta.builds[1] != 2 {
		t.Errorf("current=%d builds=%v", ta.Current(), ta.builds)
	}
}

func TestWinAdvancesThroughStage(t *testing.T) {
	ta := newTestApp(t, 2, func(s *stage.Stage) { s.Score().SetWinCountdown(0.01) })
	ta.start(1)
	if err := ta.tick(dt); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if ta.Current() != 2 || ta.stage.Level() != 2 {
		t.Errorf("won level should advance, current=%d stage=%d", ta.Current(), ta.stage.Level())
	}
}

func TestLoseRepeatsThroughStage(t *testing.T) {
	ta := newTestApp(t, 2, func(s *stage.Stage) { s.Score().SetLoseCountdown(0.01) })
	ta.start(1)
	if err := ta.tick(dt); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if ta.Current() != 1 || ta.builds[0] != 2 {
		t.Errorf("lost level should repeat, current=%d builds=%v", ta.Current(), ta.builds)
	}
}

func TestQuitTerminates(t *testing.T) {
	ta := newTestApp(t, 1, nil)
	ta.start(1)
	if err := ta.tick(dt); err != nil {
		t.Fatalf("tick: %v", err)
	}
	ta.stage.Quit()
	if err := ta.tick(dt); !errors.Is(err, ebiten.Termination) {
		t.Errorf("tick after quit = %v, want ebiten.Termination", err)
	}
}

func TestLayout(t *testing.T) {
	ta := newTestApp(t, 1, nil)
	w, h := ta.Layout(1920, 1080)
	cfg := config.DefaultEngine()
	if w != cfg.ScreenWidth || h != cfg.ScreenHeight {
		t.Errorf("Layout = %dx%d, want %dx%d", w, h, cfg.ScreenWidth, cfg.ScreenHeight)
	}
}
