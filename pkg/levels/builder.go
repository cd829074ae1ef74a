package levels

import (
	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/config"
	"github.com/decker502/lol/pkg/parallax"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/route"
	"github.com/decker502/lol/pkg/score"
	"github.com/decker502/lol/pkg/stage"
)

// 覆盖层与 HUD 的文字样式
var (
	titleFont = render.Font{Size: 32}
	hudFont   = render.Font{Size: 18}
)

// FromConfig 把数据驱动的关卡描述转换为构建函数
func FromConfig(lc *config.LevelConfig) stage.BuildFunc {
	return func(s *stage.Stage) {
		s.SetCameraBounds(lc.Width, lc.Height)
		s.ResetGravity(lc.Gravity.X, lc.Gravity.Y)
		if lc.Background != "" {
			if c, err := render.ParseHexColor(lc.Background); err == nil {
				s.SetBackgroundColor(c)
			} else {
				logger.Urgent("bad background color", "level", lc.Name, "err", err)
			}
		}
		s.SetMusic(lc.Music)
		if lc.BoundingBox {
			s.DrawBoundingBox(lc.Width, lc.Height, lc.WallImage)
		}
		if t := lc.Tilt; t != nil {
			s.EnableTilt(t.MaxX, t.MaxY)
			s.SetTiltMultiplier(t.Multiplier)
			s.SetTiltVelocity(t.Velocity)
		}

		applyVictory(s.Score(), lc)

		for _, l := range lc.Layers {
			addLayer(s, l)
		}
		for _, ac := range lc.Actors {
			makeActor(s, ac)
		}

		if lc.Welcome != "" {
			s.SetWelcome(messageOverlay(lc.Welcome))
		}
		if lc.Win != "" {
			s.SetWin(messageOverlay(lc.Win))
		}
		if lc.Lose != "" {
			s.SetLose(messageOverlay(lc.Lose))
		}
		addStatusDisplay(s)
	}
}

func applyVictory(sc *score.Score, lc *config.LevelConfig) {
	switch lc.Victory.Type {
	case "goodies":
		g := lc.Victory.Goodies
		sc.SetVictoryGoodies(g[0], g[1], g[2], g[3])
	case "enemies":
		sc.SetVictoryEnemyCount(lc.Victory.Count)
	default:
		sc.SetVictoryDestination(lc.Victory.Count)
	}
	if lc.LoseCountdown > 0 {
		sc.SetLoseCountdown(lc.LoseCountdown)
	}
	if lc.WinCountdown > 0 {
		sc.SetWinCountdown(lc.WinCountdown)
	}
}

func addLayer(s *stage.Stage, l config.LayerConfig) {
	axis := parallax.Horizontal
	if l.Vertical {
		axis = parallax.Vertical
	}
	var layer *parallax.Layer
	if l.Speed != 0 {
		layer = parallax.NewAuto(l.Image, axis, l.Width, l.Height, l.Speed, l.Offset)
	} else {
		layer = parallax.NewRelative(l.Image, axis, l.Width, l.Height, l.Ratio, l.Offset)
	}
	if l.Foreground {
		s.AddForeground(layer, l.Z)
	} else {
		s.AddBackground(layer, l.Z)
	}
}

func makeActor(s *stage.Stage, ac config.ActorConfig) *actors.Actor {
	cfg := actors.Config{X: ac.X, Y: ac.Y, W: ac.W, H: ac.H, Image: ac.Image, Z: ac.Z}
	if ac.Circle {
		cfg.Shape = physics.Circle
	}

	var a *actors.Actor
	switch ac.Kind {
	case "hero":
		a = s.MakeHero(cfg)
		if ac.Strength > 0 {
			a.Hero.Strength = ac.Strength
		}
		a.Hero.MustSurvive = ac.MustSurvive
		if ac.Invincible > 0 {
			a.SetInvincible(ac.Invincible)
		}
		if ac.Jump != (config.Point{}) {
			a.Hero.JumpImpulse = physics.Vec{X: ac.Jump.X, Y: ac.Jump.Y}
			a.Gestures.Tap = func(h *actors.Actor, _ physics.Vec) bool {
				h.Jump()
				return true
			}
		}
		if ac.Chase {
			s.SetCameraChase(a)
		}
		if ac.TiltMove {
			s.TiltMove(a)
		}
	case "enemy":
		a = s.MakeEnemy(cfg)
		if ac.Damage > 0 {
			a.Enemy.Damage = ac.Damage
		}
		a.Enemy.DefeatByJump = ac.DefeatByJump
		a.Enemy.DefeatByCrawl = ac.DefeatByCrawl
	case "goodie":
		a = s.MakeGoodie(cfg)
		if ac.Score != nil {
			v := *ac.Score
			a.SetScore(v[0], v[1], v[2], v[3])
		}
	case "destination":
		a = s.MakeDestination(cfg)
		if ac.Capacity > 0 {
			a.Destination.Capacity = ac.Capacity
		}
	case "obstacle":
		a = s.MakeObstacle(cfg)
	default:
		a = s.MakeDecoration(cfg)
	}

	if ac.Moveable {
		a.SetMoveable()
	}
	if ac.CanFall {
		a.SetCanFall()
	}
	if ac.NoRotation {
		a.DisableRotation()
	}
	if r := ac.Route; r != nil {
		pts := make([]physics.Vec, len(r.Points))
		for i, p := range r.Points {
			pts[i] = physics.Vec{X: p.X, Y: p.Y}
		}
		a.SetRoute(route.New(pts...), r.Speed, r.Loop)
	}
	return a
}

// messageOverlay 居中显示一行文字，点击任意位置关闭
func messageOverlay(msg string) stage.Builder {
	return func(o *stage.Overlay) {
		cfg := o.Stage().Config()
		o.Text(float64(cfg.ScreenWidth)/2-float64(len(msg))*titleFont.Size/4, float64(cfg.ScreenHeight)/2, titleFont, msg)
		o.TapToDismiss()
	}
}

// addStatusDisplay HUD 左上角显示进度与倒计时
func addStatusDisplay(s *stage.Stage) {
	sc := s.Score()
	s.AddDisplay(10, 10, hudFont, func() string { return statusLine(sc) })
}
