package render

import "image/color"

// Call 一次绘制调用
type Call struct {
	Kind  string // "sprite" 或 "text"
	Name  string // 图片名或文字内容
	X, Y  float64
	W, H  float64
	Angle float64
}

// Recorder 记录绘制调用的 Frame，用于测试与无头运行
type Recorder struct {
	Background color.RGBA
	Calls      []Call
}

func (r *Recorder) SetBackground(c color.RGBA) { r.Background = c }

func (r *Recorder) Sprite(image string, x, y, w, h, angle float64) {
	r.Calls = append(r.Calls, Call{Kind: "sprite", Name: image, X: x, Y: y, W: w, H: h, Angle: angle})
}

func (r *Recorder) Text(s string, font Font, x, y float64) {
	r.Calls = append(r.Calls, Call{Kind: "text", Name: s, X: x, Y: y})
}

// Names 按顺序返回所有调用的名字
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
