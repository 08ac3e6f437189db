package scenes

import (
	"image/color"
	"reflect"
	"strings"
	"testing"

	"github.com/decker502/luobo-captcha/pkg/captcha"
	"github.com/decker502/luobo-captcha/pkg/game"
	"github.com/decker502/luobo-captcha/pkg/utils"
)

func TestStatusClock(t *testing.T) {
	var c statusClock

	c.Tick(captcha.StatusPending, 0.1)
	c.Tick(captcha.StatusPending, 0.1)
	if c.since < 0.19 {
		t.Errorf("since = %v, want ~0.2", c.since)
	}

	c.Tick(captcha.StatusSuccess, 0.1)
	if c.since != 0 || c.status != captcha.StatusSuccess {
		t.Errorf("status change should restart clock, got (%s, %v)", c.status, c.since)
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		name string
		k    float64
		want color.RGBA
	}{
		{"不变", 1, color.RGBA{R: 200, G: 100, B: 50, A: 200}},
		{"一半", 0.5, color.RGBA{R: 100, G: 50, B: 25, A: 100}},
		{"透明", 0, color.RGBA{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fade(color.RGBA{R: 200, G: 100, B: 50, A: 200}, tt.k); got != tt.want {
				t.Errorf("fade = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrappedLines(t *testing.T) {
	face := game.FallbackFace()
	r := captcha.Rect{X: 0, Y: 0, Width: 100, Height: 60}

	lines, centers := wrappedLines("ok", face, r, 10, 30)
	if !reflect.DeepEqual(lines, []string{"ok"}) || !reflect.DeepEqual(centers, []float64{30}) {
		t.Errorf("short text = (%q, %v), want ([ok], [30])", lines, centers)
	}

	// 7x13 点阵字体每字 7 像素，可用宽度 80 放不下 19 个字符
	long := "aaaa bbbb cccc dddd"
	lines, centers = wrappedLines(long, face, r, 10, 30)
	if len(lines) != 2 {
		t.Fatalf("lines = %q, want 2 lines", lines)
	}
	for _, line := range lines {
		if w := utils.MeasureText(line, face); w > 80 {
			t.Errorf("line %q width %v exceeds 80", line, w)
		}
	}
	joined := strings.ReplaceAll(strings.Join(lines, ""), " ", "")
	if joined != strings.ReplaceAll(long, " ", "") {
		t.Errorf("wrapped text lost characters: %q", lines)
	}
	if !reflect.DeepEqual(centers, []float64{15, 45}) {
		t.Errorf("centers = %v, want [15 45]", centers)
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"3f2a9c1e-7b4d-4e8a-9f10-2c3d4e5f6a7b", "3f2a9c1e"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortID(tt.id); got != tt.want {
			t.Errorf("shortID(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
