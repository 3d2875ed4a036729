package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// MaxEdge caps the longest edge of an uploaded photo.
	MaxEdge = 1200

	jpegQuality = 90
)

// ResizeJPEG decodes an image, shrinks it so its longest edge does not
// exceed maxEdge (preserving aspect ratio, never upscaling) and re-encodes
// it as JPEG.
func ResizeJPEG(data []byte, maxEdge uint) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	if width > maxEdge || height > maxEdge {
		if width >= height {
			img = resize.Resize(maxEdge, 0, img, resize.Lanczos3)
		} else {
			img = resize.Resize(0, maxEdge, img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
