package levels

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/parallax"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/route"
	"github.com/decker502/lol/pkg/score"
	"github.com/decker502/lol/pkg/stage"
)

// siege 的世界尺寸与投掷参数
const (
	siegeWidth   = 96.0
	siegeHeight  = 32.0
	stoneSpeed   = 25.0
	stoneRange   = 40.0
	stoneDamage  = 2
	siegeSeconds = 90.0
)

// siege 两屏宽的关卡：点击屏幕向该点投石，击败所有巡逻的敌人获胜
func siege(s *stage.Stage) {
	s.SetCameraBounds(siegeWidth, siegeHeight)
	s.ResetGravity(0, 10)
	s.SetBackgroundColor(color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff})
	s.SetMusic("audio/siege.ogg")

	s.AddBackground(parallax.NewAuto("#ffffffc0", parallax.Horizontal, 12, 3, -1.5, 3), 0)
	s.AddBackground(parallax.NewRelative("#4a7a3a", parallax.Horizontal, 24, 6, 0.5, siegeHeight-8), 1)

	s.DrawBoundingBox(siegeWidth, siegeHeight, "")
	s.MakeObstacle(actors.Config{X: 0, Y: siegeHeight - 2, W: siegeWidth, H: 2, Image: "#6b4f2a"})

	hero := s.MakeHero(actors.Config{X: 4, Y: siegeHeight - 5, W: 2, H: 3, Image: "#3050c0"})
	hero.Hero.MustSurvive = true
	hero.DisableRotation()
	s.SetCameraChase(hero)

	for i, x := range []float64{30, 50, 70, 88} {
		top := siegeHeight - 4.5 - float64(i%2)*6
		e := s.MakeEnemy(actors.Config{X: x, Y: top, W: 2, H: 2.5, Image: "#c03030"})
		e.Enemy.Damage = 3
		e.SetRoute(route.New().To(x, top+1.25).To(x-8, top+1.25), 3+float64(i), true)
	}

	stones := s.MakeProjectilePool(8, actors.Config{W: 0.6, H: 0.6, Shape: physics.Circle, Image: "#505050"}, stoneDamage, stoneRange)
	stones.Sound = "audio/throw.ogg"

	sc := s.Score()
	sc.SetVictoryEnemyCount(score.AllEnemies)
	sc.SetLoseCountdown(siegeSeconds)
	sc.StartStopwatch()

	cfg := s.Config()
	w, h := float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)
	s.AddTapControl(0, 0, w, h, "", func(p physics.Vec) {
		target := s.Camera().ScreenToWorld(p.X, p.Y)
		dir := target.Sub(hero.Position()).Normalize()
		stones.Throw(hero, dir.Scale(1.5), dir.Scale(stoneSpeed))
	})
	s.AddTapControl(w-60, 10, 50, 50, "#00000080", func(physics.Vec) {
		s.ShowPause(PauseOverlay)
	})

	attempts := bumpSession(s, "siege.attempts")
	s.AddDisplay(10, 10, hudFont, func() string { return statusLine(sc) })
	s.AddDisplay(10, 34, hudFont, func() string { return fmt.Sprintf("Attempt %d", attempts) })

	s.SetWelcome(messageOverlay("Tap to throw. Defeat every patrol!"))
	s.SetWin(messageOverlay("The siege is over"))
	s.SetLose(messageOverlay("Out of time"))
}

// PauseOverlay 暂停画面：点击关闭回到世界
func PauseOverlay(o *stage.Overlay) {
	cfg := o.Stage().Config()
	w, h := float64(cfg.ScreenWidth), float64(cfg.ScreenHeight)
	o.Image("#00000080", 0, 0, w, h)
	o.Text(w/2-60, h/2, render.Font{Size: 32}, "Paused")
	o.TapToDismiss()
}

// bumpSession 会话级计数加一并返回新值
func bumpSession(s *stage.Stage, key string) int {
	n, _ := strconv.Atoi(s.Facts().Session(key, "0"))
	n++
	s.Facts().SetSession(key, strconv.Itoa(n))
	return n
}
