package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestSampleColor(t *testing.T) {
	img := fill(100, 100, color.NRGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if result.Hex != "#ff8040" {
		t.Errorf("Hex: got %s, want #ff8040", result.Hex)
	}
	want := RGBAColor{R: 255, G: 128, B: 64, A: 255}
	if result.RGBA != want {
		t.Errorf("RGBA: got %+v, want %+v", result.RGBA, want)
	}
	if result.X != 50 || result.Y != 50 {
		t.Errorf("position: got (%d,%d)", result.X, result.Y)
	}
}

func TestSampleColor_HSL(t *testing.T) {
	tests := []struct {
		name  string
		color color.NRGBA
		want  HSLColor
	}{
		{"red", color.NRGBA{255, 0, 0, 255}, HSLColor{0, 100, 50}},
		{"green", color.NRGBA{0, 255, 0, 255}, HSLColor{120, 100, 50}},
		{"blue", color.NRGBA{0, 0, 255, 255}, HSLColor{240, 100, 50}},
		{"white", color.NRGBA{255, 255, 255, 255}, HSLColor{0, 0, 100}},
		{"black", color.NRGBA{0, 0, 0, 255}, HSLColor{0, 0, 0}},
		{"gray", color.NRGBA{128, 128, 128, 255}, HSLColor{0, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SampleColor(fill(2, 2, tt.color), 1, 1)
			if err != nil {
				t.Fatal(err)
			}
			if result.HSL != tt.want {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.want)
			}
		})
	}
}

func TestSampleColor_Transparent(t *testing.T) {
	result, err := SampleColor(fill(2, 2, color.NRGBA{200, 10, 10, 0}), 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.Hex != "#000000" || result.RGBA.A != 0 {
		t.Errorf("got %s alpha %d, want #000000 alpha 0", result.Hex, result.RGBA.A)
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x at width", 100, 50},
		{"y at height", 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SampleColor(img, tt.x, tt.y); err == nil {
				t.Errorf("SampleColor(%d,%d) should fail", tt.x, tt.y)
			}
		})
	}
}
