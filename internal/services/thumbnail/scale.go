package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultSize is the thumbnail edge length in pixels.
const DefaultSize = 150

// Scale decodes raw (png, jpeg, gif or webp) and resizes it to size×size.
// The aspect ratio is not preserved.
func Scale(raw []byte, size int) (image.Image, error) {
	if size <= 0 {
		size = DefaultSize
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("decode image: empty %s", format)
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
