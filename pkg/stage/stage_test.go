package stage

import (
	"image/color"
	"testing"

	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/parallax"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/physics/physicstest"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/score"
)

const dt = 1.0 / 60

type fakeNav struct{ advance, repeat, quit int }

func (n *fakeNav) Advance() { n.advance++ }
func (n *fakeNav) Repeat()  { n.repeat++ }
func (n *fakeNav) Quit()    { n.quit++ }

type fakeAudio struct {
	sounds  []string
	music   string
	playing bool
	stops   int
}

func (a *fakeAudio) PlaySound(name string) { a.sounds = append(a.sounds, name) }
func (a *fakeAudio) PlayMusic(name string) { a.music, a.playing = name, true }
func (a *fakeAudio) StopMusic()            { a.playing = false; a.stops++ }
func (a *fakeAudio) MusicPlaying() bool    { return a.playing }

type fakeInput struct {
	events       []Event
	tiltX, tiltY float64
}

func (in *fakeInput) Drain() []Event {
	e := in.events
	in.events = nil
	return e
}
func (in *fakeInput) Tilt() (float64, float64) { return in.tiltX, in.tiltY }

type outcome struct {
	level int
	won   bool
	secs  float64
}

type fakeRecorder struct{ got []outcome }

func (r *fakeRecorder) Record(level int, won bool, secs float64) error {
	r.got = append(r.got, outcome{level, won, secs})
	return nil
}

type harness struct {
	stage *Stage
	world *physicstest.World
	nav   *fakeNav
	audio *fakeAudio
	input *fakeInput
	rec   *fakeRecorder
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{nav: &fakeNav{}, audio: &fakeAudio{}, input: &fakeInput{}, rec: &fakeRecorder{}}
	h.stage = New(Deps{
		Config:   config.DefaultEngine(),
		Audio:    h.audio,
		Input:    h.input,
		Nav:      h.nav,
		Recorder: h.rec,
		NewWorld: func(g physics.Vec) physics.World {
			h.world = physicstest.NewWorld()
			h.world.SetGravity(g)
			return h.world
		},
	})
	return h
}

func (h *harness) tap(x, y float64) {
	h.input.events = append(h.input.events, Event{Kind: EventTap, X: x, Y: y})
}

func TestWelcomeOverlayOnFirstTick(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.SetWelcome(func(o *Overlay) { o.TapToDismiss() })
	})
	if h.stage.State() != WorldActive {
		t.Fatal("welcome should not show before the first tick")
	}

	h.stage.Update(dt)
	if h.stage.State() != OverlayActive || h.stage.Overlay().Kind() != OverlayWelcome {
		t.Fatal("welcome should show on the first tick")
	}
	h.stage.Update(dt)
	if h.world.Steps != 0 {
		t.Errorf("world stepped %d times under an overlay", h.world.Steps)
	}

	h.tap(10, 10)
	h.stage.Update(dt)
	if h.stage.State() != WorldActive {
		t.Fatal("tap should dismiss the welcome overlay")
	}
	if h.world.Steps != 1 {
		t.Errorf("steps = %d, want 1", h.world.Steps)
	}
	h.stage.Update(dt)
	if h.stage.State() != WorldActive {
		t.Error("welcome should only show once")
	}
}

func TestPauseShowsNextTick(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, nil)
	h.stage.Update(dt)

	h.stage.ShowPause(func(o *Overlay) { o.TapToDismiss() })
	if h.stage.State() != WorldActive {
		t.Fatal("pause should wait for the next tick")
	}
	h.stage.Update(dt)
	if h.stage.State() != OverlayActive || h.stage.Overlay().Kind() != OverlayPause {
		t.Fatal("pause should be showing")
	}
	if h.world.Steps != 1 {
		t.Errorf("steps = %d, want 1", h.world.Steps)
	}
	h.tap(1, 1)
	h.stage.Update(dt)
	if h.stage.State() != WorldActive || h.world.Steps != 2 {
		t.Errorf("state=%v steps=%d", h.stage.State(), h.world.Steps)
	}
}

func TestReentrantPause(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, nil)
	h.stage.Update(dt)

	var first, second *Overlay
	h.stage.ShowPause(func(o *Overlay) {
		first = o
		o.Control(0, 0, 10, 10, "", func() {
			o.Stage().ShowPause(func(o2 *Overlay) { second = o2 })
		})
	})
	h.stage.Update(dt)
	h.tap(5, 5)
	h.stage.Update(dt) // 子暂停在本帧（事件之后）显示
	if h.stage.Overlay() != second || second == nil {
		t.Fatal("sub-pause should replace the pause overlay")
	}

	first.Dismiss()
	if h.stage.State() != OverlayActive {
		t.Fatal("dismissing a replaced overlay should do nothing")
	}
	second.Dismiss()
	second.Dismiss()
	if h.stage.State() != WorldActive {
		t.Error("dismissing the current overlay should return to the world")
	}
}

func TestPauseWaitsForWelcome(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.SetWelcome(func(o *Overlay) { o.TapToDismiss() })
		s.ShowPause(func(o *Overlay) { o.TapToDismiss() })
	})
	h.stage.Update(dt)
	if h.stage.Overlay() == nil || h.stage.Overlay().Kind() != OverlayWelcome {
		t.Fatal("welcome should show first")
	}
	h.stage.Update(dt)
	if h.stage.Overlay().Kind() != OverlayWelcome {
		t.Fatal("pause must not replace the welcome overlay")
	}
	h.tap(1, 1)
	h.stage.Update(dt)
	if h.stage.Overlay() == nil || h.stage.Overlay().Kind() != OverlayPause {
		t.Fatal("pause should show once the welcome is dismissed")
	}
	h.tap(1, 1)
	h.stage.Update(dt)
	if h.stage.State() != WorldActive {
		t.Error("dismissing the pause should return to the world")
	}
}

func TestPauseAfterLevelEndIsDropped(t *testing.T) {
	h := newHarness(t)
	var hero, goodie *actors.Actor
	h.stage.Start(1, func(s *Stage) {
		s.Score().SetVictoryGoodies(1, 0, 0, 0)
		s.SetWin(func(o *Overlay) { o.TapToDismiss() })
		hero = s.MakeHero(actors.Config{W: 1, H: 1})
		goodie = s.MakeGoodie(actors.Config{W: 1, H: 1})
		goodie.Goodie.OnCollect = func(_, _ *actors.Actor) {
			s.ShowPause(func(o *Overlay) { o.TapToDismiss() })
		}
	})
	h.world.OnStep = func(w *physicstest.World) { w.Touch(goodie.Body(), hero.Body()) }

	h.stage.Update(dt)
	if h.stage.Overlay() == nil || h.stage.Overlay().Kind() != OverlayWin {
		t.Fatal("win overlay should show on the winning tick")
	}
	h.stage.Update(dt)
	if h.stage.Overlay() == nil || h.stage.Overlay().Kind() != OverlayWin {
		t.Fatal("pause must not replace the win overlay")
	}
	h.tap(1, 1)
	h.stage.Update(dt)
	if h.nav.advance != 1 {
		t.Errorf("dismissing the win overlay should advance, advance=%d", h.nav.advance)
	}
}

func TestVictoryWithoutOverlayAdvancesOnce(t *testing.T) {
	h := newHarness(t)
	var hero, dest *actors.Actor
	h.stage.Start(3, func(s *Stage) {
		hero = s.MakeHero(actors.Config{W: 1, H: 1})
		dest = s.MakeDestination(actors.Config{X: 5, W: 1, H: 1})
	})
	h.world.OnStep = func(w *physicstest.World) { w.Touch(hero.Body(), dest.Body()) }

	h.stage.Update(dt)
	if h.stage.Score().State() != score.Won {
		t.Fatalf("score = %v", h.stage.Score().State())
	}
	if h.nav.advance != 1 {
		t.Fatalf("advance = %d, want 1", h.nav.advance)
	}
	for i := 0; i < 5; i++ {
		h.stage.Update(dt)
	}
	if h.nav.advance != 1 || len(h.rec.got) != 1 {
		t.Errorf("level end fired again: advance=%d records=%d", h.nav.advance, len(h.rec.got))
	}
	if got := h.rec.got[0]; got != (outcome{3, true, 0}) {
		t.Errorf("record = %+v", got)
	}
	if h.world.Steps != 1 {
		t.Errorf("world should freeze after the level ends, steps=%d", h.world.Steps)
	}
}

func TestWinOverlayDismissAdvances(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.Score().SetWinCountdown(0.01)
		s.SetWin(func(o *Overlay) {
			o.Text(10, 10, render.Font{}, "You win")
			o.TapToDismiss()
		})
	})
	h.stage.Update(dt)
	if h.stage.State() != OverlayActive || h.stage.Overlay().Kind() != OverlayWin {
		t.Fatal("win overlay should show")
	}
	if h.nav.advance != 0 {
		t.Fatal("advance should wait for dismissal")
	}
	h.tap(100, 100)
	h.stage.Update(dt)
	if h.nav.advance != 1 || h.nav.repeat != 0 {
		t.Errorf("nav = %+v", h.nav)
	}
}

func TestLoseOverlayDismissRepeats(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.Score().SetLoseCountdown(0.01)
		s.SetLose(func(o *Overlay) { o.TapToDismiss() })
	})
	h.stage.Update(dt)
	if h.stage.Overlay() == nil || h.stage.Overlay().Kind() != OverlayLose {
		t.Fatal("lose overlay should show")
	}
	h.tap(1, 1)
	h.stage.Update(dt)
	if h.nav.repeat != 1 || h.nav.advance != 0 {
		t.Errorf("nav = %+v", h.nav)
	}
}

func TestCountdownEndsBeforePhysics(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) { s.Score().SetLoseCountdown(0.01) })
	h.stage.Update(dt)
	if h.world.Steps != 0 {
		t.Errorf("physics stepped after the countdown expired: %d", h.world.Steps)
	}
	if h.nav.repeat != 1 {
		t.Errorf("repeat = %d", h.nav.repeat)
	}
}

func TestTimersRunAfterPhysics(t *testing.T) {
	h := newHarness(t)
	seen := -1
	h.stage.Start(1, func(s *Stage) {
		s.After(0, func() { seen = h.world.Steps })
	})
	h.stage.Update(dt)
	if seen != 1 {
		t.Errorf("timer saw %d steps, want 1", seen)
	}
}

func TestCollisionScoreVisibleBeforeTimers(t *testing.T) {
	h := newHarness(t)
	var hero, goodie *actors.Actor
	got := -1
	h.stage.Start(1, func(s *Stage) {
		s.Score().SetVictoryGoodies(5, 0, 0, 0)
		hero = s.MakeHero(actors.Config{W: 1, H: 1})
		goodie = s.MakeGoodie(actors.Config{W: 1, H: 1})
		s.After(0, func() { got = s.Score().Goodies(0) })
	})
	h.world.OnStep = func(w *physicstest.World) { w.Touch(goodie.Body(), hero.Body()) }
	h.stage.Update(dt)
	if got != 1 {
		t.Errorf("timer saw goodies=%d, want 1", got)
	}
}

func TestTeardownResetsLevelState(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.SetMusic("theme.ogg")
		s.SetBackgroundColor(color.RGBA{R: 10, A: 255})
		s.Facts().SetLevel("door", "open")
		s.Facts().SetSession("visits", "1")
		s.Score().SetVictoryEnemyCount(2)
		s.SetWelcome(func(o *Overlay) {})
		s.MakeHero(actors.Config{W: 1, H: 1})
	})
	if h.stage.Score().HeroesCreated() != 1 {
		t.Fatal("hero should be counted")
	}
	h.stage.Start(2, nil)

	s := h.stage
	if s.Level() != 2 || s.Score().HeroesCreated() != 0 || s.Score().VictoryType() != score.VictoryByDestination {
		t.Error("score should be reset")
	}
	if s.Facts().Level("door", "") != "" || s.Facts().Session("visits", "") != "1" {
		t.Error("only level facts should be cleared")
	}
	if s.BackgroundColor() != (color.RGBA{}) {
		t.Error("background color should be reset")
	}
	if h.audio.stops == 0 {
		t.Error("music should be stopped")
	}
	s.Update(dt)
	if s.State() != WorldActive {
		t.Error("welcome builder should be cleared")
	}
	if h.audio.playing {
		t.Error("music from the previous level should not resume")
	}
}

func TestMusicResumes(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) { s.SetMusic("theme.ogg") })
	h.stage.Update(dt)
	if !h.audio.playing || h.audio.music != "theme.ogg" {
		t.Fatal("music should start")
	}
	h.audio.playing = false
	h.stage.Update(dt)
	if !h.audio.playing {
		t.Error("music should resume when it stopped")
	}
}

func TestDrawLayerOrder(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.SetBackgroundColor(color.RGBA{B: 200, A: 255})
		s.AddBackground(parallax.NewRelative("sky", parallax.Horizontal, 100, 32, 0, 0), 0)
		s.AddForeground(parallax.NewRelative("fog", parallax.Horizontal, 100, 32, 1, 0), 0)
		s.AddImage("button", 0, 0, 10, 10)
		s.MakeObstacle(actors.Config{X: 1, Y: 1, W: 1, H: 1, Image: "rock"})
	})
	h.stage.Update(dt)

	var rec render.Recorder
	h.stage.Draw(&rec)
	want := []string{"sky", "rock", "fog", "button"}
	got := rec.Names()
	if len(got) != len(want) {
		t.Fatalf("draw = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw = %v, want %v", got, want)
		}
	}
	if rec.Background.B != 200 {
		t.Error("background color should be set each frame")
	}
}

func TestDrawOverlayOnly(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.AddImage("button", 0, 0, 10, 10)
		s.SetWelcome(func(o *Overlay) { o.Image("splash", 0, 0, 960, 640) })
	})
	h.stage.Update(dt)
	var rec render.Recorder
	h.stage.Draw(&rec)
	if names := rec.Names(); len(names) != 1 || names[0] != "splash" {
		t.Errorf("draw = %v", names)
	}
}

func TestHUDGetsGesturesBeforeWorld(t *testing.T) {
	h := newHarness(t)
	var hud, world int
	h.stage.Start(1, func(s *Stage) {
		s.AddTapControl(0, 0, 100, 100, "", func(physics.Vec) { hud++ })
		o := s.MakeObstacle(actors.Config{W: 10, H: 10})
		o.Gestures.Tap = func(*actors.Actor, physics.Vec) bool { world++; return true }
	})
	h.tap(50, 50)
	h.stage.Update(dt)
	h.tap(150, 150) // 世界坐标 (7.5, 7.5)
	h.stage.Update(dt)
	if hud != 1 || world != 1 {
		t.Errorf("hud=%d world=%d", hud, world)
	}
}

func TestCameraChase(t *testing.T) {
	h := newHarness(t)
	var hero *actors.Actor
	h.stage.Start(1, func(s *Stage) {
		s.SetCameraBounds(200, 32)
		hero = s.MakeHero(actors.Config{X: 99.5, Y: 15.5, W: 1, H: 1})
		s.SetCameraChase(hero)
	})
	hero.SetVelocity(physics.Vec{X: 45})
	h.stage.Update(dt)
	c := h.stage.Camera().Center()
	if c.X != hero.Position().X || c.X <= 100 {
		t.Errorf("camera x = %v, hero x = %v", c.X, hero.Position().X)
	}
}

func TestTiltGravity(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.EnableTilt(5, 5)
		s.SetTiltMultiplier(2)
	})
	h.input.tiltX, h.input.tiltY = 1, 10
	h.stage.Update(dt)
	if g := h.world.Gravity(); g.X != 2 || g.Y != 5 {
		t.Errorf("gravity = %v", g)
	}
}

func TestTiltVelocity(t *testing.T) {
	h := newHarness(t)
	var e *actors.Actor
	h.stage.Start(1, func(s *Stage) {
		s.EnableTilt(3, 3)
		s.SetTiltVelocity(true)
		e = s.MakeEnemy(actors.Config{W: 1, H: 1})
		s.TiltMove(e)
	})
	h.input.tiltX, h.input.tiltY = -4, 1
	h.stage.Update(dt)
	if v := e.Velocity(); v.X != -3 || v.Y != 1 {
		t.Errorf("velocity = %v", v)
	}
	if g := h.world.Gravity(); g.X != 0 || g.Y != 0 {
		t.Errorf("gravity changed in velocity mode: %v", g)
	}
}

func TestProjectileRangeChecked(t *testing.T) {
	h := newHarness(t)
	var pool *actors.Pool
	var hero *actors.Actor
	h.stage.Start(1, func(s *Stage) {
		hero = s.MakeHero(actors.Config{W: 1, H: 1})
		pool = s.MakeProjectilePool(1, actors.Config{W: 0.2, H: 0.2}, 1, 1)
	})
	p := pool.Throw(hero, physics.Vec{}, physics.Vec{X: 45})
	for i := 0; i < 3; i++ {
		h.stage.Update(dt) // 每步 1 米，射程检查在步进之前
	}
	if p.Enabled() {
		t.Error("projectile past its range should be removed")
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	h.stage.Start(1, func(s *Stage) {
		s.After(0, s.Quit)
	})
	h.stage.Update(dt)
	if h.nav.quit != 1 {
		t.Errorf("quit = %d", h.nav.quit)
	}
}
