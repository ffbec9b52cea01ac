package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// ExportResult is a PNG-encoded region of an image.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ExportRegion crops r out of img and returns it PNG encoded. The region is
// clipped to the image bounds; an empty intersection is an error.
func ExportRegion(img image.Image, r image.Rectangle) (*ExportResult, error) {
	clipped := r.Intersect(img.Bounds())
	if clipped.Empty() {
		return nil, fmt.Errorf("export region %v does not overlap image bounds %v", r, img.Bounds())
	}

	return Encode(imaging.Crop(img, clipped))
}

// Encode returns img as a base64 PNG.
func Encode(img image.Image) (*ExportResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &ExportResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
