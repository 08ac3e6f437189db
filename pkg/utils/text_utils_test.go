package utils

import (
	"reflect"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// basicfont.Face7x13 每个字符宽 7 像素
func testFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

func TestMeasureText(t *testing.T) {
	face := testFace()

	if got := MeasureText("abcde", face); got != 35 {
		t.Errorf("MeasureText = %v, want 35", got)
	}
	if got := MeasureText("", face); got != 0 {
		t.Errorf("MeasureText(empty) = %v, want 0", got)
	}
	if got := MeasureText("abc", nil); got != 0 {
		t.Errorf("MeasureText(nil face) = %v, want 0", got)
	}
}

func TestWrapText(t *testing.T) {
	face := testFace()

	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{"fits on one line", "abc", 35, []string{"abc"}},
		{"wraps at width", "abcdefghij", 35, []string{"abcde", "fghij"}},
		{"trims spaces at line ends", "abcd efgh", 35, []string{"abcd", "efgh"}},
		{"narrower than one glyph", "ab", 3, []string{"a", "b"}},
		{"empty", "", 35, []string{""}},
		{"invalid width", "abc", 0, []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.input, face, tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q, %v) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}
