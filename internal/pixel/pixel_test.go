package pixel

import "testing"

func TestChannels(t *testing.T) {
	tests := []struct {
		name  string
		got   int
		want  int
		alpha bool
		gotA  bool
	}{
		{"mono u8", Channels[uint8, Mono[uint8]](), 1, false, HasAlpha[uint8, Mono[uint8]]()},
		{"pair i16", Channels[int16, Pair[int16]](), 2, true, HasAlpha[int16, Pair[int16]]()},
		{"triple f32", Channels[float32, Triple[float32]](), 3, false, HasAlpha[float32, Triple[float32]]()},
		{"quad u64", Channels[uint64, Quad[uint64]](), 4, true, HasAlpha[uint64, Quad[uint64]]()},
		{"raw array", Channels[float64, [3]float64](), 3, false, HasAlpha[float64, [3]float64]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("channels: got %d, want %d", tt.got, tt.want)
			}
			if tt.gotA != tt.alpha {
				t.Errorf("alpha: got %v, want %v", tt.gotA, tt.alpha)
			}
		})
	}
}

func TestNew(t *testing.T) {
	img := New[uint8, Triple[uint8]](12, SpaceRGB, Gamma(2.2))

	if img.Len() != 12 {
		t.Errorf("Len: got %d, want 12", img.Len())
	}
	if img.Channels() != 3 {
		t.Errorf("Channels: got %d, want 3", img.Channels())
	}
	if img.Space() != SpaceRGB {
		t.Errorf("Space: got %s, want rgb", img.Space())
	}
	if img.Encoding() != Gamma(2.2) {
		t.Errorf("Encoding: got %s, want gamma(2.2)", img.Encoding())
	}
	for i := 0; i < img.Len(); i++ {
		if img.At(i) != (Triple[uint8]{}) {
			t.Fatalf("pixel %d not zeroed: %v", i, img.At(i))
		}
	}
}

func TestNew_NegativeLength(t *testing.T) {
	img := New[float32, Mono[float32]](-5, SpaceLinear, Linear())
	if img.Len() != 0 {
		t.Errorf("Len: got %d, want 0", img.Len())
	}
}

func TestImage_SetAndPix(t *testing.T) {
	img := New[uint16, Pair[uint16]](3, SpaceLinear, Linear())
	img.Set(1, Pair[uint16]{1000, 65535})

	if got := img.At(1); got != (Pair[uint16]{1000, 65535}) {
		t.Errorf("At(1): got %v", got)
	}

	// Writes through Pix are visible through At
	img.Pix()[2][0] = 7
	if img.At(2)[0] != 7 {
		t.Errorf("write through Pix not visible: got %v", img.At(2))
	}
}

func TestImage_Clone(t *testing.T) {
	img := FromPixels[float32, Quad[float32]]([]Quad[float32]{{0.1, 0.2, 0.3, 1}}, SpaceRGB, Linear())
	cp := img.Clone()
	cp.Set(0, Quad[float32]{1, 1, 1, 1})
	cp.SetTags(SpaceLAB, Gamma(2))

	if img.At(0) != (Quad[float32]{0.1, 0.2, 0.3, 1}) {
		t.Errorf("clone shares pixels with original: %v", img.At(0))
	}
	if img.Space() != SpaceRGB || img.Encoding() != Linear() {
		t.Errorf("clone shares tags with original: %s %s", img.Space(), img.Encoding())
	}
}

func TestImage_String(t *testing.T) {
	img := New[uint8, Quad[uint8]](4, SpaceRGB, Gamma(2.2))
	want := "Image[4 px, 4 ch, rgb, gamma(2.2)]"
	if got := img.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestRaster(t *testing.T) {
	r, err := NewRaster[uint8, Mono[uint8]](4, 3, SpaceLinear, Linear())
	if err != nil {
		t.Fatalf("NewRaster failed: %v", err)
	}
	if r.Len() != 12 {
		t.Fatalf("Len: got %d, want 12", r.Len())
	}

	r.SetPixel(3, 2, Mono[uint8]{9})
	if r.At(11)[0] != 9 {
		t.Errorf("row-major layout: pixel (3,2) should be index 11")
	}
	if r.PixelAt(3, 2)[0] != 9 {
		t.Errorf("PixelAt(3,2): got %v", r.PixelAt(3, 2))
	}
}

func TestRaster_InvalidSize(t *testing.T) {
	if _, err := NewRaster[uint8, Mono[uint8]](-1, 3, SpaceLinear, Linear()); err == nil {
		t.Error("NewRaster should fail for negative width")
	}

	img := New[uint8, Mono[uint8]](10, SpaceLinear, Linear())
	tests := []struct {
		name string
		w, h int
	}{
		{"too small", 3, 3},
		{"too large", 4, 3},
		{"negative", -2, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := WrapRaster(img, tt.w, tt.h); err == nil {
				t.Errorf("WrapRaster(%d,%d) should fail for 10 pixels", tt.w, tt.h)
			}
		})
	}

	if _, err := WrapRaster(img, 5, 2); err != nil {
		t.Errorf("WrapRaster(5,2) failed: %v", err)
	}
}
