package stage

import (
	"github.com/decker502/lol/pkg/actors"
	"github.com/decker502/lol/pkg/physics"
	"github.com/decker502/lol/pkg/render"
	"github.com/decker502/lol/pkg/scene"
)

// OverlayKind 覆盖层类型
type OverlayKind int

const (
	OverlayWelcome OverlayKind = iota
	OverlayPause
	OverlayWin
	OverlayLose
)

var overlayNames = [...]string{"welcome", "pause", "win", "lose"}

func (k OverlayKind) String() string { return overlayNames[k] }

// Builder 构建覆盖层内容
type Builder func(o *Overlay)

// Overlay 模态覆盖层；坐标为屏幕像素
type Overlay struct {
	*scene.Scene
	stage *Stage
	kind  OverlayKind
}

// Kind 覆盖层类型
func (o *Overlay) Kind() OverlayKind { return o.kind }

// Stage 所属舞台
func (o *Overlay) Stage() *Stage { return o.stage }

// Image 添加图片
func (o *Overlay) Image(image string, x, y, w, h float64) *actors.Actor {
	return o.AddActor(actors.NewDecoration(o.stage, nil, actors.Config{X: x, Y: y, W: w, H: h, Image: image}))
}

// Text 添加固定文字
func (o *Overlay) Text(x, y float64, font render.Font, s string) *scene.Text {
	return o.AddText(scene.NewText(x, y, font, s), 0)
}

// Control 添加可点击控件；image 为空时是不可见的点击区域
func (o *Overlay) Control(x, y, w, h float64, image string, action func()) *actors.Actor {
	a := actors.NewDecoration(o.stage, nil, actors.Config{X: x, Y: y, W: w, H: h, Image: image, Z: actors.MaxZ})
	a.Gestures.Tap = func(*actors.Actor, physics.Vec) bool {
		action()
		return true
	}
	return o.AddActor(a)
}

// TapToDismiss 添加覆盖全屏的点击区域，点击即关闭覆盖层
func (o *Overlay) TapToDismiss() *actors.Actor {
	w, h := float64(o.stage.cfg.ScreenWidth), float64(o.stage.cfg.ScreenHeight)
	return o.Control(0, 0, w, h, "", o.Dismiss)
}

// Dismiss 关闭覆盖层
//
// 欢迎/暂停回到世界；胜利进入下一关；失败重玩本关。
// 已被替换或已关闭的覆盖层再次关闭时不产生效果。
func (o *Overlay) Dismiss() {
	s := o.stage
	if s.overlay != o {
		return
	}
	s.overlay = nil
	logger.Info("overlay dismissed", "kind", o.kind.String())
	switch o.kind {
	case OverlayWin:
		s.pendingNav = navAdvance
	case OverlayLose:
		s.pendingNav = navRepeat
	}
}

// show 构建并显示覆盖层，替换当前覆盖层
func (s *Stage) show(kind OverlayKind, b Builder) {
	o := &Overlay{Scene: scene.New(kind.String(), nil, s.hudCam), stage: s, kind: kind}
	s.overlay = o
	logger.Info("overlay shown", "kind", kind.String())
	b(o)
}

// Overlay 当前覆盖层（没有时为 nil）
func (s *Stage) Overlay() *Overlay { return s.overlay }

// SetWelcome 注册欢迎覆盖层，关卡第一帧显示
func (s *Stage) SetWelcome(b Builder) { s.welcome = b }

// SetWin 注册胜利覆盖层；未注册时胜利后直接进入下一关
func (s *Stage) SetWin(b Builder) { s.win = b }

// SetLose 注册失败覆盖层；未注册时失败后直接重玩
func (s *Stage) SetLose(b Builder) { s.lose = b }

// ShowPause 注册暂停覆盖层，下一帧显示；暂停显示中再次调用会替换当前暂停，
// 欢迎层显示时等到它关闭，关卡结束后的请求被丢弃
func (s *Stage) ShowPause(b Builder) { s.pendingPause = b }
