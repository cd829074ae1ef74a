// Package parallax 实现平铺滚动的视差背景/前景层
package parallax

import (
	"math"

	"github.com/decker502/lol/pkg/camera"
	"github.com/decker502/lol/pkg/diag"
)

var logger = diag.For("Parallax")

// Axis 滚动方向
type Axis int

const (
	// Horizontal 水平平铺
	Horizontal Axis = iota
	// Vertical 垂直平铺
	Vertical
)

// Tile 一个平铺副本的世界矩形（左上角 + 尺寸）
type Tile struct {
	X, Y, W, H float64
}

// Layer 视差层
//
// 两种模式：
//   - 相对模式：参考瓦片随相机位移 * ratio 移动（1 = 相对相机静止，0 = 相对世界静止）
//   - 自动模式：参考瓦片以固定速度移动，与相机无关
type Layer struct {
	Image string
	axis  Axis

	tileW, tileH float64

	// offset 垂直于滚动方向的位置（世界坐标）
	offset float64

	ratio     float64
	auto      bool
	autoSpeed float64

	ref     float64
	lastCam float64
	started bool

	tiles []Tile
}

// NewRelative 创建随相机滚动的视差层
func NewRelative(image string, axis Axis, tileW, tileH, ratio, offset float64) *Layer {
	return newLayer(image, axis, tileW, tileH, offset, ratio, false, 0)
}

// NewAuto 创建自动滚动的视差层，speed 为世界单位/秒
func NewAuto(image string, axis Axis, tileW, tileH, speed, offset float64) *Layer {
	return newLayer(image, axis, tileW, tileH, offset, 0, true, speed)
}

func newLayer(image string, axis Axis, tileW, tileH, offset, ratio float64, auto bool, speed float64) *Layer {
	if tileW <= 0 || tileH <= 0 {
		logger.Urgent("parallax tile size must be positive, using 1", "image", image, "w", tileW, "h", tileH)
		if tileW <= 0 {
			tileW = 1
		}
		if tileH <= 0 {
			tileH = 1
		}
	}
	return &Layer{
		Image:     image,
		axis:      axis,
		tileW:     tileW,
		tileH:     tileH,
		offset:    offset,
		ratio:     ratio,
		auto:      auto,
		autoSpeed: speed,
	}
}

// tileSize 沿滚动方向的瓦片尺寸
func (l *Layer) tileSize() float64 {
	if l.axis == Vertical {
		return l.tileH
	}
	return l.tileW
}

// edge 相机前缘（左/上）与沿滚动方向的可见跨度
func (l *Layer) edge(cam *camera.Camera) (lead, span float64) {
	x, y, w, h := cam.Visible()
	if l.axis == Vertical {
		return y, h
	}
	return x, w
}

// Instances 需要预分配的副本数：ceil(span/tile) + 1
func (l *Layer) Instances(cam *camera.Camera) int {
	_, span := l.edge(cam)
	return int(math.Ceil(span/l.tileSize())) + 1
}

// Ref 参考瓦片坐标（沿滚动方向）
func (l *Layer) Ref() float64 { return l.ref }

// Update 推进参考瓦片、归一化，并返回覆盖视口所需的瓦片
//
// 返回的切片在下一次 Update 前有效。
func (l *Layer) Update(cam *camera.Camera, elapsed float64) []Tile {
	lead, span := l.edge(cam)
	size := l.tileSize()

	if !l.started {
		l.started = true
		l.ref = lead
		l.lastCam = lead
	}

	if l.auto {
		l.ref += l.autoSpeed * elapsed
	} else {
		l.ref += (lead - l.lastCam) * l.ratio
	}
	l.lastCam = lead

	l.normalize(lead, size)

	n := l.Instances(cam)
	if cap(l.tiles) < n {
		l.tiles = make([]Tile, 0, n)
	}
	l.tiles = l.tiles[:0]
	for pos := l.ref; pos < lead+span && len(l.tiles) < n; pos += size {
		if l.axis == Vertical {
			l.tiles = append(l.tiles, Tile{X: l.offset, Y: pos, W: l.tileW, H: l.tileH})
		} else {
			l.tiles = append(l.tiles, Tile{X: pos, Y: l.offset, W: l.tileW, H: l.tileH})
		}
	}
	return l.tiles
}

// normalize 按整块瓦片平移参考瓦片，使 lead-size < ref <= lead
func (l *Layer) normalize(lead, size float64) {
	if l.ref > lead {
		steps := math.Ceil((l.ref - lead) / size)
		l.ref -= steps * size
	}
	if l.ref+size <= lead {
		steps := math.Floor((lead - l.ref) / size)
		l.ref += steps * size
		// 浮点误差可能留下一块
		for l.ref+size <= lead {
			l.ref += size
		}
	}
}
