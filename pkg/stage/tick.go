package stage

import (
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/score"
)

// Update 推进一帧；elapsed 为实测的帧间隔（秒），物理步长固定取自配置
//
// 世界激活时的顺序：
//  1. 恢复音乐
//  2. 推进得分倒计时，若结束则立即结束关卡
//  3. 采样倾斜，推进角色路径与投射物射程
//  4. 固定步长物理步（碰撞在此分发）
//  5. 执行计时器
//  6. 相机追随
func (s *Stage) Update(elapsed float64) {
	if s.worldScene == nil {
		return
	}
	defer s.navigate()

	if s.input != nil {
		for _, e := range s.input.Drain() {
			s.route(e)
		}
	}

	if !s.welcomeDone {
		s.welcomeDone = true
		if s.welcome != nil {
			s.show(OverlayWelcome, s.welcome)
		}
	}
	// 暂停只能盖在世界或另一个暂停之上；欢迎层关闭前保持挂起，关卡结束后丢弃
	if s.ended {
		s.pendingPause = nil
	}
	if b := s.pendingPause; b != nil && (s.overlay == nil || s.overlay.kind == OverlayPause) {
		s.pendingPause = nil
		s.show(OverlayPause, b)
	}
	if s.overlay != nil {
		s.overlay.RunTimers(elapsed)
		s.drawDelta += elapsed
		return
	}
	if s.ended {
		return
	}

	if s.music != "" && s.audio != nil && !s.audio.MusicPlaying() {
		s.audio.PlayMusic(s.music)
	}

	if st := s.score.Tick(elapsed); st != score.Active {
		s.endLevel(st == score.Won)
		return
	}

	s.applyTilt()
	s.worldScene.Update(elapsed)
	s.hud.Update(elapsed)
	for _, p := range s.pools {
		p.Update()
	}

	s.world.Step(s.cfg.StepSeconds)

	s.worldScene.RunTimers(elapsed)
	s.hud.RunTimers(elapsed)

	if s.chase != nil && s.chase.Enabled() {
		c := s.chase.Position()
		s.cam.SetCenter(c.X, c.Y)
	}

	s.drawDelta += elapsed
	// 碰撞或计时器触发的结束在本帧处理，相机与渲染仍可看到本帧的变化
	if st := s.score.State(); st != score.Active {
		s.endLevel(st == score.Won)
	}
}

// Draw 绘制一帧：背景色，然后覆盖层，或 背景 -> 世界 -> 前景 -> HUD
func (s *Stage) Draw(f render.Frame) {
	f.SetBackground(s.bg)
	elapsed := s.drawDelta
	s.drawDelta = 0
	if s.overlay != nil {
		s.overlay.Render(f, elapsed)
		return
	}
	if s.worldScene == nil {
		return
	}
	s.background.Render(f, elapsed)
	s.worldScene.Render(f, elapsed)
	s.foreground.Render(f, elapsed)
	s.hud.Render(f, elapsed)
}
