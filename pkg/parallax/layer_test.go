package parallax

import (
	"io"
	"math"
	"testing"

	"github.com/decker502/lol/pkg/camera"
	"github.com/decker502/lol/pkg/diag"
)

func init() {
	diag.SetOutput(io.Discard)
}

const eps = 1e-9

// 可见 48x32 米，世界 200x100
func newTestCamera() *camera.Camera {
	return camera.New(960, 640, 20, 200, 100)
}

func checkCoverage(t *testing.T, l *Layer, cam *camera.Camera, tiles []Tile) {
	t.Helper()
	lead, span := l.edge(cam)
	if len(tiles) == 0 {
		t.Fatal("Expected at least one tile")
	}
	first := tiles[0].X
	last := tiles[len(tiles)-1].X + tiles[len(tiles)-1].W
	if l.axis == Vertical {
		first = tiles[0].Y
		last = tiles[len(tiles)-1].Y + tiles[len(tiles)-1].H
	}
	if first > lead+eps || first <= lead-l.tileSize()+eps {
		t.Errorf("First tile %v not in (lead-size, lead] for lead %v", first, lead)
	}
	if last < lead+span-eps {
		t.Errorf("Tiles end at %v, viewport ends at %v", last, lead+span)
	}
	if len(tiles) > l.Instances(cam) {
		t.Errorf("Used %d tiles, more than preallocated %d", len(tiles), l.Instances(cam))
	}
}

func TestInstances(t *testing.T) {
	cam := newTestCamera()
	l := NewRelative("bg", Horizontal, 10, 32, 0.5, 0)
	// ceil(48/10) + 1 = 6
	if got := l.Instances(cam); got != 6 {
		t.Errorf("Expected 6 instances, got %d", got)
	}
	v := NewRelative("bg", Vertical, 48, 7, 0.5, 0)
	// ceil(32/7) + 1 = 6
	if got := v.Instances(cam); got != 6 {
		t.Errorf("Expected 6 vertical instances, got %d", got)
	}
}

func TestRatioOneStaysWithCamera(t *testing.T) {
	cam := newTestCamera()
	l := NewRelative("fg", Horizontal, 10, 32, 1, 0)
	l.Update(cam, 0)
	startOffset := l.Ref() - 0

	cam.SetCenter(50, 16)
	x, _, _, _ := cam.Visible()
	tiles := l.Update(cam, 0)
	checkCoverage(t, l, cam, tiles)

	// 相对屏幕的偏移不变（对瓦片尺寸取模）
	got := math.Mod(l.Ref()-x+100, 10)
	want := math.Mod(startOffset+100, 10)
	if math.Abs(got-want) > eps && math.Abs(math.Abs(got-want)-10) > eps {
		t.Errorf("Ratio 1 layer moved relative to camera: offset %v, want %v", got, want)
	}
}

func TestRatioZeroStaysWithWorld(t *testing.T) {
	cam := newTestCamera()
	l := NewRelative("bg", Horizontal, 10, 32, 0, 0)
	l.Update(cam, 0)

	cam.SetCenter(57, 16) // 可见区域从 33 开始
	tiles := l.Update(cam, 0)
	checkCoverage(t, l, cam, tiles)

	// 世界静止：瓦片落在 10 的整数倍上
	for _, tile := range tiles {
		if math.Abs(math.Mod(tile.X, 10)) > eps {
			t.Errorf("Ratio 0 tile at %v is not aligned to the world grid", tile.X)
		}
	}
	if tiles[0].X != 30 {
		t.Errorf("Expected first tile at 30, got %v", tiles[0].X)
	}
}

func TestAutoScroll(t *testing.T) {
	cam := newTestCamera()
	l := NewAuto("clouds", Horizontal, 10, 32, 3, 0)
	l.Update(cam, 0)

	l.Update(cam, 1) // ref = 0 + 3 → 归一化后 -7
	if math.Abs(l.Ref()-(-7)) > eps {
		t.Errorf("Expected ref -7 after 1s at speed 3, got %v", l.Ref())
	}
	tiles := l.Update(cam, 1)
	checkCoverage(t, l, cam, tiles)
}

func TestNormalizeBounds(t *testing.T) {
	tests := []struct {
		name      string
		ref, lead float64
		want      float64
	}{
		{"already normalized", 5, 5, 5},
		{"far ahead", 95, 10, 5},
		{"far behind", -93, 10, 7},
		{"exactly one tile behind", 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Layer{ref: tt.ref, tileW: 10, tileH: 10}
			l.normalize(tt.lead, 10)
			if math.Abs(l.ref-tt.want) > eps {
				t.Errorf("normalize(%v, lead %v) = %v, want %v", tt.ref, tt.lead, l.ref, tt.want)
			}
		})
	}
}

func TestVerticalLayerCoverage(t *testing.T) {
	cam := newTestCamera()
	l := NewRelative("sky", Vertical, 48, 7, 0.3, 4)
	cam.SetCenter(24, 60)
	tiles := l.Update(cam, 0)
	checkCoverage(t, l, cam, tiles)
	for _, tile := range tiles {
		if tile.X != 4 {
			t.Errorf("Vertical tiles should sit at offset 4, got %v", tile.X)
		}
	}
}
