// Package images holds the two pixel transforms the gallery applies to
// photos: the storage-saving recompression pass and the 90° rotation.
package images

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// CompressionBound is the maximum edge length after recompression.
	CompressionBound = 1920
	// JPEGQuality is the quality used for every re-encode.
	JPEGQuality = 80
)

// Compress decodes the photo, scales it down to fit within
// CompressionBound×CompressionBound preserving aspect ratio (never
// upscaling), and re-encodes it as JPEG at JPEGQuality.
func Compress(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, CompressionBound, CompressionBound, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Rotate90 rotates the photo 90° clockwise and re-encodes it as JPEG.
func Rotate90(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Rotate270 turns counter-clockwise by 270°, i.e. 90° clockwise.
	rotated := imaging.Rotate270(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, rotated, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
